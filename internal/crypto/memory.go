package crypto

import (
	"errors"
	"sync"
)

var errKeystoreLocked = errors.New("keystore locked")

// MemoryKeyProvider is an in-process [KeyProvider] for tests. Invalidate and
// Lock simulate the platform revoking the key or refusing access to it.
type MemoryKeyProvider struct {
	*aeadProvider
	src *memoryKeySource
}

type memoryKeySource struct {
	mu     sync.Mutex
	key    []byte
	locked bool
}

// NewMemoryProvider returns an empty [MemoryKeyProvider].
func NewMemoryProvider(alias string) *MemoryKeyProvider {
	src := &memoryKeySource{}
	return &MemoryKeyProvider{aeadProvider: newAEADProvider(alias, src), src: src}
}

// Invalidate discards the key. The next EnsureKey generates a new one.
func (p *MemoryKeyProvider) Invalidate() {
	p.src.mu.Lock()
	defer p.src.mu.Unlock()
	p.src.key = nil
}

// Lock makes every key access fail with ErrKeyUnavailable until Unlock.
func (p *MemoryKeyProvider) Lock() {
	p.src.mu.Lock()
	defer p.src.mu.Unlock()
	p.src.locked = true
}

func (p *MemoryKeyProvider) Unlock() {
	p.src.mu.Lock()
	defer p.src.mu.Unlock()
	p.src.locked = false
}

func (s *memoryKeySource) load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return nil, errKeystoreLocked
	}
	if s.key == nil {
		return nil, errKeyNotFound
	}
	return s.key, nil
}

func (s *memoryKeySource) store(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return errKeystoreLocked
	}
	s.key = key
	return nil
}
