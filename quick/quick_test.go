package quick

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphflow-ai/graphflow/agent"
	"github.com/graphflow-ai/graphflow/testutil/mocks"
	"github.com/graphflow-ai/graphflow/types"
)

func TestAgentDefaultsToAssistant(t *testing.T) {
	a, err := Agent("helper", WithProvider(mocks.NewProvider("sure")))
	require.NoError(t, err)

	assert.Equal(t, "helper", a.Name())
	assert.Equal(t, "assistant", a.Role().Name())

	out, err := a.HandleTask(context.Background(), &agent.Task{
		Type: "chat",
		Data: map[string]any{"message": "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "sure", out)
}

func TestAgentExtraCapability(t *testing.T) {
	a, err := Agent("bob",
		WithTemplate("researcher"),
		WithProvider(mocks.NewProvider("ok")),
		WithCapability("ping", "", func(ctx context.Context, data map[string]any) (any, error) {
			return "pong", nil
		}))
	require.NoError(t, err)

	out, err := a.HandleTask(context.Background(), &agent.Task{Type: "ping"})
	require.NoError(t, err)
	assert.Equal(t, "pong", out)
	assert.Contains(t, a.Role().Capabilities(), "ping")
}

func TestAgentUnknownTemplate(t *testing.T) {
	_, err := Agent("x", WithTemplate("astronaut"))
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrTemplateNotFound))
}

func TestAgentInvalidOpenAIConfig(t *testing.T) {
	_, err := Agent("x", WithOpenAI(""))
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrInvalidConfig))
}

func TestAgentWithInMemory(t *testing.T) {
	a, err := Agent("x", WithInMemory())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, a.Remember(ctx, "k", "v"))
	v, ok, err := a.Recall(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", v)
}
