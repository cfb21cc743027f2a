package store

import (
	"context"
	"errors"
	"sync"
)

// ErrKeyMissing is returned by a KeyValue when a key has never been written.
// The record store above it treats this as an empty collection.
var ErrKeyMissing = errors.New("key not present")

// KeyValue is the blob-per-key persistence primitive underneath the record
// store. Implementations hold one opaque payload per string key.
type KeyValue interface {
	GetBlob(ctx context.Context, key string) ([]byte, error)
	SetBlob(ctx context.Context, key string, value []byte) error
}

// MemoryKeyValue keeps blobs in a map. Used by tests and by the simulated
// client-local mode.
type MemoryKeyValue struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryKeyValue() *MemoryKeyValue {
	return &MemoryKeyValue{blobs: map[string][]byte{}}
}

func (m *MemoryKeyValue) GetBlob(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.blobs[key]
	if !ok {
		return nil, ErrKeyMissing
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (m *MemoryKeyValue) SetBlob(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]byte, len(value))
	copy(copied, value)
	m.blobs[key] = copied
	return nil
}
