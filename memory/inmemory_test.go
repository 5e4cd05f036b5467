package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_StoreRetrieve(t *testing.T) {
	s := NewInMemoryStore(InMemoryStoreConfig{}, nil)
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "k", "v"))

	got, ok, err := s.Retrieve(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	_, ok, err = s.Retrieve(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInMemoryStore_Overwrite(t *testing.T) {
	s := NewInMemoryStore(InMemoryStoreConfig{}, nil)
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "k", 1))
	require.NoError(t, s.Store(ctx, "k", 2))

	got, ok, err := s.Retrieve(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestInMemoryStore_TTL(t *testing.T) {
	now := time.Unix(1000, 0)
	s := NewInMemoryStore(InMemoryStoreConfig{
		TTL: time.Minute,
		Now: func() time.Time { return now },
	}, nil)
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "k", "v"))

	_, ok, err := s.Retrieve(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)

	_, ok, err = s.Retrieve(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestInMemoryStore_Eviction(t *testing.T) {
	now := time.Unix(1000, 0)
	s := NewInMemoryStore(InMemoryStoreConfig{
		MaxEntries: 2,
		Now: func() time.Time {
			now = now.Add(time.Second)
			return now
		},
	}, nil)
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "a", 1))
	require.NoError(t, s.Store(ctx, "b", 2))
	require.NoError(t, s.Store(ctx, "c", 3))

	assert.Equal(t, 2, s.Len())
	_, ok, err := s.Retrieve(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "oldest entry should be evicted")
}

func TestInMemoryStore_Delete(t *testing.T) {
	s := NewInMemoryStore(InMemoryStoreConfig{}, nil)
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "k", "v"))
	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k")) // deleting twice is a no-op

	_, ok, err := s.Retrieve(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInMemoryStore_EmptyKey(t *testing.T) {
	s := NewInMemoryStore(InMemoryStoreConfig{}, nil)
	ctx := context.Background()

	assert.Error(t, s.Store(ctx, "", "v"))
	_, _, err := s.Retrieve(ctx, "")
	assert.Error(t, err)
}
