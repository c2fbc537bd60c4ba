package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Backend is durable, string-valued key/value storage for session
// state. Get reports presence separately from errors so an absent key
// is not a failure.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// DirBackend stores one file per key inside a state directory. It is
// the process-restart-surviving equivalent of the dashboard's browser
// storage.
type DirBackend struct {
	dir string
}

// NewDirBackend creates the state directory if needed.
func NewDirBackend(dir string) (*DirBackend, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &DirBackend{dir: dir}, nil
}

func (b *DirBackend) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(b.dir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

func (b *DirBackend) Set(key, value string) error {
	return os.WriteFile(filepath.Join(b.dir, key), []byte(value), 0o600)
}

func (b *DirBackend) Delete(key string) error {
	err := os.Remove(filepath.Join(b.dir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemBackend is an in-memory Backend for tests.
type MemBackend struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemBackend() *MemBackend {
	return &MemBackend{m: make(map[string]string)}
}

func (b *MemBackend) Get(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.m[key]
	return v, ok, nil
}

func (b *MemBackend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[key] = value
	return nil
}

func (b *MemBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.m, key)
	return nil
}
