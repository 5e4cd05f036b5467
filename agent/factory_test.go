package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphflow-ai/graphflow/knowledge"
	"github.com/graphflow-ai/graphflow/testutil/mocks"
	"github.com/graphflow-ai/graphflow/types"
)

func TestFactoryBuiltinTemplates(t *testing.T) {
	f := NewFactory(nil)

	assert.Equal(t, []string{
		"assistant", "data_scientist", "developer",
		"executor", "product_manager", "researcher", "security",
	}, f.ListTemplates())
}

func TestFactoryUnknownTemplate(t *testing.T) {
	f := NewFactory(nil)

	_, err := f.CreateAgent("nonexistent", "a")
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrTemplateNotFound))
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestFactoryResearcher(t *testing.T) {
	f := NewFactory(nil)
	provider := mocks.NewProvider("the findings")

	a, err := f.CreateAgent("researcher", "ada", WithProvider(provider))
	require.NoError(t, err)
	assert.Equal(t, "ada", a.Name())
	assert.Equal(t, "researcher", a.Role().Name())
	assert.Equal(t, []string{"research", "analyze", "summarize"}, a.Role().Capabilities())

	out, err := a.HandleTask(context.Background(), &Task{
		Type: "research",
		Data: map[string]any{"topic": "go generics"},
	})
	require.NoError(t, err)
	assert.Equal(t, "the findings", out)
	require.Len(t, provider.Prompts, 1)
	assert.Equal(t, "Research about go generics", provider.Prompts[0])
}

func TestFactoryResearcherMissingField(t *testing.T) {
	f := NewFactory(nil)
	a, err := f.CreateAgent("researcher", "ada", WithProvider(mocks.NewProvider("x")))
	require.NoError(t, err)

	_, err = a.HandleTask(context.Background(), &Task{Type: "research"})
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrMalformedTask))
}

func TestFactoryExecutorRecordsResults(t *testing.T) {
	f := NewFactory(nil)
	store := mocks.NewMemoryStore()

	a, err := f.CreateAgent("executor", "exec",
		WithMemory(store),
		WithProcessor(func(ctx context.Context, task *Task) (any, error) {
			return map[string]any{"done": task.ID}, nil
		}))
	require.NoError(t, err)

	ctx := context.Background()
	out, err := a.HandleTask(ctx, &Task{
		Type: "execute",
		Data: map[string]any{"task_id": "t42"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"done": "t42"}, out)

	monitored, err := a.HandleTask(ctx, &Task{
		Type: "monitor",
		Data: map[string]any{"task_id": "t42"},
	})
	require.NoError(t, err)
	assert.Equal(t, out, monitored)

	report, err := a.HandleTask(ctx, &Task{
		Type: "report",
		Data: map[string]any{"task_ids": []string{"t42", "missing"}},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"task_results": []any{out}}, report)
}

func TestFactoryDataScientistStoresAnalysis(t *testing.T) {
	f := NewFactory(nil)
	store := mocks.NewMemoryStore()
	graph := knowledge.NewGraph(nil)

	a, err := f.CreateAgent("data_scientist", "ds",
		WithProvider(mocks.NewProvider("insight")),
		WithMemory(store),
		WithKnowledgeGraph(graph))
	require.NoError(t, err)

	ctx := context.Background()
	out, err := a.HandleTask(ctx, &Task{
		Type: "analyze_data",
		Data: map[string]any{"rows": 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "insight", out)

	stored, ok, err := store.Retrieve(ctx, "last_analysis")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "insight", stored)
	require.Len(t, store.Stores, 1)
}

func TestFactoryCustomTemplate(t *testing.T) {
	f := NewFactory(nil)
	err := f.RegisterTemplate(Template{
		Name:        "echo",
		Description: "echoes its input",
		Setup: func(a *Agent) {
			a.RegisterCapability("echo", "", func(ctx context.Context, data map[string]any) (any, error) {
				return data, nil
			})
		},
	})
	require.NoError(t, err)

	a, err := f.CreateAgent("echo", "")
	require.NoError(t, err)
	assert.Equal(t, "echo", a.Name())

	out, err := a.HandleTask(context.Background(), &Task{
		Type: "echo",
		Data: map[string]any{"k": "v"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k": "v"}, out)
}

func TestFactoryRegisterTemplateValidation(t *testing.T) {
	f := NewFactory(nil)
	err := f.RegisterTemplate(Template{})
	assert.True(t, types.IsErrorCode(err, types.ErrInvalidConfig))
}
