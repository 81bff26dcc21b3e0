// Package storage provides the key to JSON-string persistence collaborator
// the editor core depends on. The core never touches a concrete storage
// mechanism directly, so tests can substitute an in-memory store.
package storage

import "sync"

// Store is the persistence interface. Load reports whether the key was
// present; Save replaces the value for a key.
type Store interface {
	Load(key string) (string, bool)
	Save(key, value string) error
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

// Load implements Store.
func (m *MemStore) Load(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Save implements Store.
func (m *MemStore) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
