// internal/storefront/storage.go
package storefront

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrKeyNotFound is returned when a storage key has no persisted record
var ErrKeyNotFound = errors.New("storage key not found")

// Storage is the persistence boundary for the storefront stores. It mirrors
// a browser's key-value storage: whole-record reads and writes under fixed
// string keys, no transactions.
type Storage interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Remove(key string) error
}

// FileStorage persists records as JSON files inside a data directory,
// one file per key.
type FileStorage struct {
	dir string
}

// NewFileStorage creates a file-backed storage rooted at dir
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

// Read returns the record stored under key
func (f *FileStorage) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	return data, err
}

// Write replaces the record stored under key
func (f *FileStorage) Write(key string, data []byte) error {
	return os.WriteFile(f.path(key), data, 0o644)
}

// Remove deletes the record stored under key. Removing an absent key is
// not an error.
func (f *FileStorage) Remove(key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// MemoryStorage is an in-memory Storage used in tests
type MemoryStorage struct {
	records map[string][]byte
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[string][]byte)}
}

// Read returns the record stored under key
func (m *MemoryStorage) Read(key string) ([]byte, error) {
	data, ok := m.records[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return data, nil
}

// Write replaces the record stored under key
func (m *MemoryStorage) Write(key string, data []byte) error {
	m.records[key] = data
	return nil
}

// Remove deletes the record stored under key
func (m *MemoryStorage) Remove(key string) error {
	delete(m.records, key)
	return nil
}
