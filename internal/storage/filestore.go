package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const stateFile = "state.json"

// FileStore keeps key/value records in a JSON file under the user's config
// directory. A missing or unreadable file degrades to an empty store; the
// editor must stay usable without durable storage.
type FileStore struct {
	mu     sync.RWMutex
	values map[string]string
	path   string
}

// Open reads ~/.config/letterhead/state.json, or returns an empty store if
// it cannot.
func Open() *FileStore {
	s := &FileStore{values: make(map[string]string)}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	s.path = filepath.Join(configDir, "letterhead", stateFile)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s
	}
	_ = json.Unmarshal(data, &s.values)
	return s
}

// OpenPath is Open with an explicit file path, used by the cmd tools and
// tests.
func OpenPath(path string) *FileStore {
	s := &FileStore{values: make(map[string]string), path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	_ = json.Unmarshal(data, &s.values)
	return s
}

// Load implements Store.
func (s *FileStore) Load(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Save implements Store and writes the whole file through.
func (s *FileStore) Save(key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	data, err := json.MarshalIndent(s.values, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
