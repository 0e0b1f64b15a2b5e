// Package memory provides an in-memory KeyValueStorage used by tests and
// as a no-persistence fallback.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vileo06/investliu/internal/interfaces"
)

// KVStorage is a map-backed implementation of interfaces.KeyValueStorage.
// Thread-safe with sync.RWMutex.
type KVStorage struct {
	mu    sync.RWMutex
	items map[string]string

	// FailWrites makes Set/Delete return an error. Tests use it to
	// exercise the best-effort cache paths.
	FailWrites bool
}

// NewKVStorage creates an empty in-memory store.
func NewKVStorage() *KVStorage {
	return &KVStorage{items: make(map[string]string)}
}

// Get retrieves a value by key.
func (s *KVStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", interfaces.ErrNotFound, key)
	}
	return v, nil
}

// Set stores a key-value pair.
func (s *KVStorage) Set(_ context.Context, key, value string) error {
	if s.FailWrites {
		return fmt.Errorf("storage write failure: %s", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Delete removes a key-value pair.
func (s *KVStorage) Delete(_ context.Context, key string) error {
	if s.FailWrites {
		return fmt.Errorf("storage delete failure: %s", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// GetAll retrieves all key-value pairs.
func (s *KVStorage) GetAll(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]string, len(s.items))
	for k, v := range s.items {
		result[k] = v
	}
	return result, nil
}

// Len returns the number of stored keys.
func (s *KVStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
