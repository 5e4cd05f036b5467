package team

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphflow-ai/graphflow/agent"
	"github.com/graphflow-ai/graphflow/types"
	"github.com/graphflow-ai/graphflow/workflow"
)

func capAgent(name, capability string, fn agent.CapabilityFunc) *agent.Agent {
	return agent.New(name, nil, agent.WithCapabilities(agent.CapabilitySpec{
		Name: capability, Handler: fn,
	}))
}

func TestShareKnowledgeMergeAndOverwrite(t *testing.T) {
	tm := New("research-team")

	tm.ShareKnowledge(map[string]any{"k": 1})
	tm.ShareKnowledge(map[string]any{"k2": "two"})
	assert.Equal(t, map[string]any{"k": 1, "k2": "two"}, tm.Knowledge())

	tm.ShareKnowledge(map[string]any{"k": 99})
	assert.Equal(t, map[string]any{"k": 99, "k2": "two"}, tm.Knowledge())

	v, ok := tm.KnowledgeValue("k2")
	require.True(t, ok)
	assert.Equal(t, "two", v)
}

func TestKnowledgeReturnsCopy(t *testing.T) {
	tm := New("t")
	tm.ShareKnowledge(map[string]any{"k": "v"})

	snapshot := tm.Knowledge()
	snapshot["k"] = "mutated"
	assert.Equal(t, map[string]any{"k": "v"}, tm.Knowledge())
}

func TestMembers(t *testing.T) {
	tm := New("t")
	tm.AddMember("writer", agent.New("w", nil))
	tm.AddMember("editor", agent.New("e", nil))

	assert.Equal(t, []string{"editor", "writer"}, tm.Members())

	a, ok := tm.Member("writer")
	require.True(t, ok)
	assert.Equal(t, "w", a.Name())

	_, ok = tm.Member("missing")
	assert.False(t, ok)
}

func TestDispatchUnknownMember(t *testing.T) {
	tm := New("t")

	_, err := tm.Dispatch(context.Background(), "ghost", &agent.Task{Type: "x"})
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrAgentNotFound))
	assert.Contains(t, err.Error(), "ghost")
}

func TestExecutePipelineThreadsOutputs(t *testing.T) {
	tm := New("pipeline")
	tm.AddMember("researcher", capAgent("r", "research",
		func(ctx context.Context, data map[string]any) (any, error) {
			return map[string]any{"findings": fmt.Sprintf("about %v", data["topic"])}, nil
		}))
	tm.AddMember("writer", capAgent("w", "write",
		func(ctx context.Context, data map[string]any) (any, error) {
			return fmt.Sprintf("report: %v", data["findings"]), nil
		}))

	out, err := tm.ExecutePipeline(context.Background(), []Stage{
		{
			Member: "researcher",
			Type:   "research",
			Share: func(output any) map[string]any {
				return map[string]any{"research_done": true}
			},
		},
		{Member: "writer", Type: "write"},
	}, map[string]any{"topic": "go"})
	require.NoError(t, err)

	assert.Equal(t, "report: about go", out)

	done, ok := tm.KnowledgeValue("research_done")
	require.True(t, ok)
	assert.Equal(t, true, done)
}

func TestExecutePipelineStageFailureKeepsEarlierKnowledge(t *testing.T) {
	tm := New("pipeline")
	tm.AddMember("ok", capAgent("ok", "step",
		func(ctx context.Context, data map[string]any) (any, error) {
			return "fine", nil
		}))
	tm.AddMember("bad", capAgent("bad", "step",
		func(ctx context.Context, data map[string]any) (any, error) {
			return nil, types.NewError(types.ErrProviderError, "down")
		}))

	_, err := tm.ExecutePipeline(context.Background(), []Stage{
		{
			Member: "ok", Type: "step",
			Share: func(output any) map[string]any {
				return map[string]any{"stage1": output}
			},
		},
		{Member: "bad", Type: "step"},
	}, nil)

	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrProviderError))
	// No rollback of already-shared knowledge.
	assert.Equal(t, map[string]any{"stage1": "fine"}, tm.Knowledge())
}

func TestTeamAsWorkflowResolver(t *testing.T) {
	tm := New("t")
	tm.AddMember("echo", capAgent("echo", "echo",
		func(ctx context.Context, data map[string]any) (any, error) {
			return data["msg"], nil
		}))

	o := workflow.NewOrchestrator(tm)
	results, err := o.Execute(context.Background(), []*agent.Task{
		{ID: "t1", Type: "echo", AssignedTo: "echo", Data: map[string]any{"msg": "hi"}},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "hi", results[0].Output)
}
