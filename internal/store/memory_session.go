package store

import (
	"context"
	"sync"

	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

// memorySessionStore is a process-local [SessionStore]. Its content is lost
// on exit.
type memorySessionStore struct {
	mu  sync.RWMutex
	rec models.SessionRecord
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{}
}

func (m *memorySessionStore) LoadSession(context.Context) (models.SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.rec.IsZero() {
		return models.SessionRecord{}, ErrSessionNotFound
	}
	return m.rec, nil
}

func (m *memorySessionStore) SaveSession(_ context.Context, rec models.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rec = rec
	return nil
}

func (m *memorySessionStore) DeleteSession(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rec = models.SessionRecord{}
	return nil
}
