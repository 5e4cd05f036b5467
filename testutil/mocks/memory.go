package mocks

import (
	"context"
	"sync"
)

// MemoryStore is a recording memory.Store for tests.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[string]any
	err    error
	Stores []string // keys passed to Store, in call order
}

// NewMemoryStore creates an empty recording store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]any)}
}

// WithError makes every call fail with err.
func (m *MemoryStore) WithError(err error) *MemoryStore {
	m.err = err
	return m
}

func (m *MemoryStore) Store(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	m.Stores = append(m.Stores, key)
	return nil
}

func (m *MemoryStore) Retrieve(ctx context.Context, key string) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	delete(m.data, key)
	return nil
}
