package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphflow-ai/graphflow/agent"
	"github.com/graphflow-ai/graphflow/types"
)

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()
	a := agent.New("a", nil)
	r.Register("worker", a)

	got, err := r.Resolve("worker")
	require.NoError(t, err)
	assert.Same(t, a, got)
}

func TestRegistryUnknownKey(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve("ghost")
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrAgentNotFound))
	assert.Contains(t, err.Error(), "ghost")
}

func TestRegistryLazyCachesAgent(t *testing.T) {
	r := NewRegistry()
	calls := 0
	r.RegisterLazy("lazy", func() (*agent.Agent, error) {
		calls++
		return agent.New("lazy", nil), nil
	})

	first, err := r.Resolve("lazy")
	require.NoError(t, err)
	second, err := r.Resolve("lazy")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestRegistryLazyCreateFailure(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.RegisterLazy("broken", func() (*agent.Agent, error) {
		return nil, boom
	})

	_, err := r.Resolve("broken")
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrAgentNotFound))
	assert.ErrorIs(t, err, boom)
}

func TestRegistryKeys(t *testing.T) {
	r := NewRegistry()
	r.Register("b", agent.New("b", nil))
	r.RegisterLazy("a", func() (*agent.Agent, error) { return agent.New("a", nil), nil })

	assert.Equal(t, []string{"a", "b"}, r.Keys())
}
