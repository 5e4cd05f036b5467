package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphflow-ai/graphflow/agent"
	"github.com/graphflow-ai/graphflow/types"
)

// recordingAgent builds an agent whose single capability records received
// payloads and returns output.
func recordingAgent(name, capability string, output any, calls *[]map[string]any) *agent.Agent {
	return agent.New(name, nil, agent.WithCapabilities(agent.CapabilitySpec{
		Name: capability,
		Handler: func(ctx context.Context, data map[string]any) (any, error) {
			if calls != nil {
				*calls = append(*calls, data)
			}
			return output, nil
		},
	}))
}

func TestExecuteConditionalThreadsOutput(t *testing.T) {
	var analyzeCalls []map[string]any

	r := NewRegistry()
	r.Register("researcher", recordingAgent("researcher", "research",
		map[string]any{"findings": "42"}, nil))
	r.Register("analyst", recordingAgent("analyst", "analyze", "done", &analyzeCalls))

	o := NewOrchestrator(r)
	results, err := o.ExecuteConditional(context.Background(), []ConditionalTask{{
		Task: &agent.Task{ID: "A", Type: "research", AssignedTo: "researcher",
			Data: map[string]any{"topic": "x"}},
		NextTasks: []SuccessorSpec{{
			ID: "B", Type: "analyze", DataSource: "A", AgentType: "analyst",
		}},
	}})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].TaskID)
	assert.Equal(t, map[string]any{"findings": "42"}, results[0].Output)
	assert.Equal(t, "B", results[1].TaskID)
	assert.Equal(t, "done", results[1].Output)

	require.Len(t, analyzeCalls, 1)
	assert.Equal(t, map[string]any{"findings": "42"}, analyzeCalls[0])
}

func TestExecuteConditionalMissingDependency(t *testing.T) {
	r := NewRegistry()
	r.Register("a", recordingAgent("a", "work", "out", nil))

	o := NewOrchestrator(r)
	results, err := o.ExecuteConditional(context.Background(), []ConditionalTask{{
		Task: &agent.Task{ID: "A", Type: "work", AssignedTo: "a"},
		NextTasks: []SuccessorSpec{{
			ID: "B", Type: "work", DataSource: "never-ran", AgentType: "a",
		}},
	}})

	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrMissingDependency))
	assert.Contains(t, err.Error(), "never-ran")
	assert.Nil(t, results)
}

func TestExecuteConditionalSiblingOrder(t *testing.T) {
	var order []string
	record := func(name string) *agent.Agent {
		return agent.New(name, nil, agent.WithCapabilities(agent.CapabilitySpec{
			Name: "step",
			Handler: func(ctx context.Context, data map[string]any) (any, error) {
				order = append(order, name)
				return name, nil
			},
		}))
	}

	r := NewRegistry()
	r.Register("root", record("root"))
	r.Register("s1", record("s1"))
	r.Register("s2", record("s2"))
	r.Register("root2", record("root2"))

	o := NewOrchestrator(r)
	results, err := o.ExecuteConditional(context.Background(), []ConditionalTask{
		{
			Task: &agent.Task{ID: "A", Type: "step", AssignedTo: "root"},
			NextTasks: []SuccessorSpec{
				{ID: "B1", Type: "step", DataSource: "A", AgentType: "s1"},
				{ID: "B2", Type: "step", DataSource: "A", AgentType: "s2"},
			},
		},
		{Task: &agent.Task{ID: "C", Type: "step", AssignedTo: "root2"}},
	})
	require.NoError(t, err)

	// Successors run depth-first, before the next root task.
	assert.Equal(t, []string{"root", "s1", "s2", "root2"}, order)
	require.Len(t, results, 4)
	assert.Equal(t, "C", results[3].TaskID)
}

func TestExecuteConditionalDeepChain(t *testing.T) {
	r := NewRegistry()
	r.Register("w", recordingAgent("w", "step", map[string]any{"depth": "next"}, nil))

	o := NewOrchestrator(r)
	results, err := o.ExecuteConditional(context.Background(), []ConditionalTask{{
		Task: &agent.Task{ID: "A", Type: "step", AssignedTo: "w"},
		NextTasks: []SuccessorSpec{{
			ID: "B", Type: "step", DataSource: "A", AgentType: "w",
			NextTasks: []SuccessorSpec{{
				ID: "C", Type: "step", DataSource: "B", AgentType: "w",
			}},
		}},
	}})
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, []string{"A", "B", "C"},
		[]string{results[0].TaskID, results[1].TaskID, results[2].TaskID})
}

func TestExecuteConditionalWrapsScalarOutput(t *testing.T) {
	var calls []map[string]any

	r := NewRegistry()
	r.Register("producer", recordingAgent("producer", "produce", "plain string", nil))
	r.Register("consumer", recordingAgent("consumer", "consume", "ok", &calls))

	o := NewOrchestrator(r)
	_, err := o.ExecuteConditional(context.Background(), []ConditionalTask{{
		Task: &agent.Task{ID: "A", Type: "produce", AssignedTo: "producer"},
		NextTasks: []SuccessorSpec{{
			Type: "consume", DataSource: "A", AgentType: "consumer",
		}},
	}})
	require.NoError(t, err)

	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{"result": "plain string"}, calls[0])
}

func TestExecuteConditionalAgentNotFound(t *testing.T) {
	o := NewOrchestrator(NewRegistry())

	results, err := o.ExecuteConditional(context.Background(), []ConditionalTask{{
		Task: &agent.Task{ID: "A", Type: "x", AssignedTo: "nobody"},
	}})
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrAgentNotFound))
	assert.Nil(t, results)
}

func TestExecuteConditionalValidation(t *testing.T) {
	r := NewRegistry()
	r.Register("a", recordingAgent("a", "x", "out", nil))
	o := NewOrchestrator(r)

	_, err := o.ExecuteConditional(context.Background(), []ConditionalTask{{}})
	assert.True(t, types.IsErrorCode(err, types.ErrMalformedTask))

	_, err = o.ExecuteConditional(context.Background(), []ConditionalTask{{
		Task: &agent.Task{Type: "x"},
	}})
	assert.True(t, types.IsErrorCode(err, types.ErrMalformedTask))
}

func TestExecuteConditionalFirstErrorAborts(t *testing.T) {
	var afterRan bool

	r := NewRegistry()
	r.Register("fail", agent.New("fail", nil, agent.WithCapabilities(agent.CapabilitySpec{
		Name: "step",
		Handler: func(ctx context.Context, data map[string]any) (any, error) {
			return nil, types.NewError(types.ErrProviderError, "upstream down")
		},
	})))
	r.Register("after", agent.New("after", nil, agent.WithCapabilities(agent.CapabilitySpec{
		Name: "step",
		Handler: func(ctx context.Context, data map[string]any) (any, error) {
			afterRan = true
			return "ok", nil
		},
	})))

	o := NewOrchestrator(r)
	results, err := o.ExecuteConditional(context.Background(), []ConditionalTask{
		{Task: &agent.Task{ID: "A", Type: "step", AssignedTo: "fail"}},
		{Task: &agent.Task{ID: "B", Type: "step", AssignedTo: "after"}},
	})

	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrProviderError))
	assert.Nil(t, results)
	assert.False(t, afterRan)
}

func TestExecuteConditionalHandlerCannotMutateCallerData(t *testing.T) {
	r := NewRegistry()
	r.Register("mutator", agent.New("mutator", nil, agent.WithCapabilities(agent.CapabilitySpec{
		Name: "mutate",
		Handler: func(ctx context.Context, data map[string]any) (any, error) {
			data["injected"] = true
			return nil, nil
		},
	})))

	original := map[string]any{"k": "v"}
	o := NewOrchestrator(r)
	_, err := o.ExecuteConditional(context.Background(), []ConditionalTask{{
		Task: &agent.Task{ID: "A", Type: "mutate", AssignedTo: "mutator", Data: original},
	}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k": "v"}, original)
}

func TestExecutePlainSequence(t *testing.T) {
	r := NewRegistry()
	r.Register("a", recordingAgent("a", "one", 1, nil))
	r.Register("b", recordingAgent("b", "two", 2, nil))

	o := NewOrchestrator(r)
	results, err := o.Execute(context.Background(), []*agent.Task{
		{ID: "t1", Type: "one", AssignedTo: "a"},
		{ID: "t2", Type: "two", AssignedTo: "b"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Output)
	assert.Equal(t, 2, results[1].Output)
}

func TestExecuteConditionalCancelledContext(t *testing.T) {
	r := NewRegistry()
	r.Register("a", recordingAgent("a", "x", "out", nil))
	o := NewOrchestrator(r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.ExecuteConditional(ctx, []ConditionalTask{{
		Task: &agent.Task{ID: "A", Type: "x", AssignedTo: "a"},
	}})
	assert.ErrorIs(t, err, context.Canceled)
}
