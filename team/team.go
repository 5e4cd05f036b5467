// Copyright (c) GraphFlow Authors.
// Licensed under the MIT License.

// Package team groups agents under role keys and shares knowledge between
// them. A team does not impose a pipeline shape; callers address members
// directly or describe stages with ExecutePipeline.
package team

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/graphflow-ai/graphflow/agent"
	"github.com/graphflow-ai/graphflow/types"
)

// Team is a named collection of agents with a shared knowledge map.
// Knowledge writes are merge-only; the core never prunes entries.
type Team struct {
	name string

	mu        sync.RWMutex
	members   map[string]*agent.Agent
	knowledge map[string]any

	logger *zap.Logger
}

// Option configures a Team.
type Option func(*Team)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Team) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates an empty team.
func New(name string, opts ...Option) *Team {
	t := &Team{
		name:      name,
		members:   make(map[string]*agent.Agent),
		knowledge: make(map[string]any),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With(
		zap.String("component", "team"),
		zap.String("team", name))
	return t
}

// Name returns the team name.
func (t *Team) Name() string { return t.name }

// AddMember registers an agent under a role key, replacing any holder.
func (t *Team) AddMember(key string, a *agent.Agent) {
	t.mu.Lock()
	t.members[key] = a
	t.mu.Unlock()

	t.logger.Debug("member added",
		zap.String("key", key),
		zap.String("agent", a.Name()))
}

// Member returns the agent registered under key.
func (t *Team) Member(key string) (*agent.Agent, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	a, ok := t.members[key]
	return a, ok
}

// Members returns the registered role keys, sorted.
func (t *Team) Members() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.members))
	for k := range t.members {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve makes a Team usable as a workflow resolver.
func (t *Team) Resolve(key string) (*agent.Agent, error) {
	a, ok := t.Member(key)
	if !ok {
		return nil, types.Errorf(types.ErrAgentNotFound, "team %s has no member %q", t.name, key)
	}
	return a, nil
}

// ShareKnowledge merges partial into the shared knowledge map.
// Existing keys are overwritten; other keys are untouched.
func (t *Team) ShareKnowledge(partial map[string]any) {
	t.mu.Lock()
	for k, v := range partial {
		t.knowledge[k] = v
	}
	t.mu.Unlock()

	t.logger.Debug("knowledge shared", zap.Int("keys", len(partial)))
}

// Knowledge returns a copy of the shared knowledge map.
func (t *Team) Knowledge() map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]any, len(t.knowledge))
	for k, v := range t.knowledge {
		out[k] = v
	}
	return out
}

// KnowledgeValue returns one shared knowledge entry.
func (t *Team) KnowledgeValue(key string) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.knowledge[key]
	return v, ok
}

// Dispatch routes a task to the member registered under key.
func (t *Team) Dispatch(ctx context.Context, key string, task *agent.Task) (any, error) {
	a, err := t.Resolve(key)
	if err != nil {
		return nil, err
	}
	return a.HandleTask(ctx, task)
}

// Stage is one step of a team pipeline. Input builds the stage's task data
// from the previous stage's output and the current shared knowledge; a nil
// Input passes the previous output wrapped under "input". Share, when set,
// maps the stage output to knowledge entries merged after the stage.
type Stage struct {
	Member string
	Type   string
	Input  func(prev any, knowledge map[string]any) map[string]any
	Share  func(output any) map[string]any
}

// ExecutePipeline runs the stages in order, threading each stage's output
// into the next stage's input. A stage failure aborts the pipeline;
// knowledge already shared by earlier stages is kept.
func (t *Team) ExecutePipeline(ctx context.Context, stages []Stage, initial map[string]any) (any, error) {
	var prev any = initial
	for i, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data map[string]any
		if stage.Input != nil {
			data = stage.Input(prev, t.Knowledge())
		} else if m, ok := prev.(map[string]any); ok {
			data = m
		} else {
			data = map[string]any{"input": prev}
		}

		out, err := t.Dispatch(ctx, stage.Member, &agent.Task{
			Type:       stage.Type,
			Data:       data,
			AssignedTo: stage.Member,
		})
		if err != nil {
			t.logger.Warn("pipeline stage failed",
				zap.Int("stage", i),
				zap.String("member", stage.Member),
				zap.Error(err))
			return nil, err
		}

		if stage.Share != nil {
			if partial := stage.Share(out); partial != nil {
				t.ShareKnowledge(partial)
			}
		}
		prev = out
	}
	return prev, nil
}
