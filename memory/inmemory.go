package memory

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/graphflow-ai/graphflow/types"
)

// InMemoryStoreConfig configures an InMemoryStore.
type InMemoryStoreConfig struct {
	// MaxEntries caps the number of stored entries. 0 means unlimited.
	// When the cap is exceeded, the oldest entry is evicted.
	MaxEntries int

	// TTL is applied to every entry. 0 means entries never expire.
	TTL time.Duration

	// Now is used for testing. Defaults to time.Now.
	Now func() time.Time
}

type inMemoryEntry struct {
	value     any
	createdAt time.Time
	expiresAt time.Time
}

// InMemoryStore is a mutex-guarded map store with optional TTL support.
// It is intended for local development, testing, and small deployments.
type InMemoryStore struct {
	mu      sync.Mutex
	entries map[string]inMemoryEntry

	maxEntries int
	ttl        time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

// NewInMemoryStore creates an in-memory store.
func NewInMemoryStore(config InMemoryStoreConfig, logger *zap.Logger) *InMemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &InMemoryStore{
		entries:    make(map[string]inMemoryEntry),
		maxEntries: config.MaxEntries,
		ttl:        config.TTL,
		now:        now,
		logger:     logger.With(zap.String("component", "memory_inmemory")),
	}
}

func (s *InMemoryStore) Store(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return types.NewError(types.ErrMemoryError, "key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = now.Add(s.ttl)
	}

	s.entries[key] = inMemoryEntry{
		value:     value,
		createdAt: now,
		expiresAt: expiresAt,
	}

	s.cleanupExpiredLocked(now)
	s.evictIfNeededLocked()
	return nil
}

func (s *InMemoryStore) Retrieve(ctx context.Context, key string) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if key == "" {
		return nil, false, types.NewError(types.ErrMemoryError, "key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupExpiredLocked(s.now())

	ent, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return ent.value, true, nil
}

func (s *InMemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return types.NewError(types.ErrMemoryError, "key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Len returns the number of live entries.
func (s *InMemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupExpiredLocked(s.now())
	return len(s.entries)
}

func (s *InMemoryStore) cleanupExpiredLocked(now time.Time) {
	for key, ent := range s.entries {
		if !ent.expiresAt.IsZero() && now.After(ent.expiresAt) {
			delete(s.entries, key)
		}
	}
}

func (s *InMemoryStore) evictIfNeededLocked() {
	if s.maxEntries <= 0 {
		return
	}
	for len(s.entries) > s.maxEntries {
		oldestKey := ""
		var oldestAt time.Time
		for key, ent := range s.entries {
			if oldestKey == "" || ent.createdAt.Before(oldestAt) {
				oldestKey = key
				oldestAt = ent.createdAt
			}
		}
		delete(s.entries, oldestKey)
		s.logger.Debug("entry evicted", zap.String("key", oldestKey))
	}
}
