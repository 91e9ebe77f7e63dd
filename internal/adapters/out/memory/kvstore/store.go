// Package kvstore provides an in-memory ports.KeyValueStore. It backs tests
// and local runs that have no database; durability is process-lifetime only.
package kvstore

import (
	"context"
	"sync"

	"orderflow/internal/core/ports"
)

// InMemoryKeyValueStore is a map-backed key-value store guarded by a RWMutex.
type InMemoryKeyValueStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewInMemoryKeyValueStore creates an empty store.
func NewInMemoryKeyValueStore() *InMemoryKeyValueStore {
	return &InMemoryKeyValueStore{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key, or ports.ErrKeyNotFound.
func (s *InMemoryKeyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, ports.ErrKeyNotFound
	}

	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

// Put stores a copy of value under key, replacing any previous value.
func (s *InMemoryKeyValueStore) Put(_ context.Context, key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = cp
	return nil
}
