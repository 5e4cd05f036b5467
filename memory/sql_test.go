package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	s, err := NewSQLStore(":memory:", nil)
	require.NoError(t, err)
	return s
}

func TestSQLStore_StoreRetrieve(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "k", map[string]any{"analysis": "done"}))

	got, ok, err := s.Retrieve(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"analysis": "done"}, got)

	_, ok, err = s.Retrieve(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLStore_Upsert(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "k", "first"))
	require.NoError(t, s.Store(ctx, "k", "second"))

	got, ok, err := s.Retrieve(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestSQLStore_Delete(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "k", "v"))
	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))

	_, ok, err := s.Retrieve(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
