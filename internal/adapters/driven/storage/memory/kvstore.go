package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
)

// ErrClosed is returned by operations on a closed KVStore.
var ErrClosed = errors.New("memory: store closed")

// Ensure KVStore implements the interface.
var _ driven.KeyValueStore = (*KVStore)(nil)

// KVStore is a map-backed key-value medium. Nothing survives the process.
type KVStore struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// NewKVStore creates an empty in-memory key-value store.
func NewKVStore() *KVStore {
	return &KVStore{
		values: make(map[string]string),
	}
}

// Get returns the value stored under key.
func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.values[key] = value
	return nil
}

// Delete removes key.
func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	delete(s.values, key)
	return nil
}

// Close marks the store closed. Later calls fail with ErrClosed.
func (s *KVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
