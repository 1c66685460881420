package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps entries in process memory. Used by the API server when
// no shared backend is configured, and by tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryRecord
}

type memoryRecord struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryRecord)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	rec, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !rec.expiresAt.IsZero() && time.Now().After(rec.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return append([]byte(nil), rec.data...), true, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, data []byte, retention time.Duration) error {
	rec := memoryRecord{data: append([]byte(nil), data...)}
	if retention > 0 {
		rec.expiresAt = time.Now().Add(retention)
	}
	m.mu.Lock()
	m.entries[key] = rec
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
