// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package state provides a single-goroutine state container for screen
// models: actions go in through a channel, effects come out through another,
// and the current state is published as an immutable snapshot.
package state

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by [Container.Dispatch] once the container stopped.
var ErrClosed = errors.New("state container closed")

// Handler processes one action. It runs on the container goroutine, so it
// may read and update the state through scope without locking.
type Handler[S, A, E any] func(ctx context.Context, action A, scope *Scope[S, E])

// Scope gives a [Handler] access to the state and the effect stream for the
// duration of one action.
type Scope[S, E any] struct {
	ctx     context.Context
	current func() S
	set     func(S)
	effects chan<- E
}

// State returns the current state.
func (s *Scope[S, E]) State() S {
	return s.current()
}

// Update replaces the state with fn(state) and publishes the new snapshot.
func (s *Scope[S, E]) Update(fn func(S) S) {
	s.set(fn(s.current()))
}

// Emit delivers a one-shot effect. It blocks until the effect is consumed or
// the container is stopped.
func (s *Scope[S, E]) Emit(effect E) {
	select {
	case s.effects <- effect:
	case <-s.ctx.Done():
	}
}

// Container owns one mutable state S and processes actions A one at a time,
// emitting effects E.
type Container[S, A, E any] struct {
	handle Handler[S, A, E]

	actions chan A
	effects chan E
	updates chan S
	done    chan struct{}

	mu    sync.RWMutex
	state S

	startOnce sync.Once
	stopOnce  sync.Once
}

// New creates a container in state initial. buffer sizes the action and
// effect channels.
func New[S, A, E any](initial S, handle Handler[S, A, E], buffer int) *Container[S, A, E] {
	if buffer < 0 {
		buffer = 0
	}
	return &Container[S, A, E]{
		handle:  handle,
		actions: make(chan A, buffer),
		effects: make(chan E, buffer),
		updates: make(chan S, 1),
		done:    make(chan struct{}),
		state:   initial,
	}
}

// Run processes actions until ctx is done or [Container.Close] is called,
// then closes the effect and update channels. It must be called once.
func (c *Container[S, A, E]) Run(ctx context.Context) {
	started := false
	c.startOnce.Do(func() { started = true })
	if !started {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	defer close(c.updates)
	defer close(c.effects)

	scope := &Scope[S, E]{
		ctx:     ctx,
		current: c.State,
		set:     c.publish,
		effects: c.effects,
	}

	for {
		select {
		case <-ctx.Done():
			return
		case action := <-c.actions:
			c.handle(ctx, action, scope)
		}
	}
}

// Dispatch queues an action. It blocks while the action buffer is full.
func (c *Container[S, A, E]) Dispatch(ctx context.Context, action A) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.actions <- action:
		return nil
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Effects is the stream of emitted effects. It is closed when Run returns.
func (c *Container[S, A, E]) Effects() <-chan E {
	return c.effects
}

// Updates carries the latest state after each change. Intermediate snapshots
// are dropped when the reader is slow. It is closed when Run returns.
func (c *Container[S, A, E]) Updates() <-chan S {
	return c.updates
}

// State returns the current snapshot.
func (c *Container[S, A, E]) State() S {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Close stops the container. Actions still queued are dropped.
func (c *Container[S, A, E]) Close() {
	c.stopOnce.Do(func() { close(c.done) })
}

func (c *Container[S, A, E]) publish(s S) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()

	// latest wins
	select {
	case <-c.updates:
	default:
	}
	select {
	case c.updates <- s:
	default:
	}
}
