package store

import (
	"context"
	"sync"

	"github.com/serroba/shortcode/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
// Insert checks and writes under one lock, so it behaves like a unique index.
type MemoryStore struct {
	mu       sync.RWMutex
	mappings map[shortener.Code]shortener.Mapping
}

// NewMemoryStore creates a new in-memory mapping store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mappings: make(map[shortener.Code]shortener.Mapping),
	}
}

func (m *MemoryStore) Exists(_ context.Context, code shortener.Code) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.mappings[code]

	return ok, nil
}

func (m *MemoryStore) Insert(_ context.Context, mapping *shortener.Mapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.mappings[mapping.ShortCode]; ok {
		return shortener.ErrConflict
	}

	m.mappings[mapping.ShortCode] = *mapping

	return nil
}

// Len returns the number of stored mappings.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.mappings)
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)
