package agent

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/graphflow-ai/graphflow/knowledge"
	"github.com/graphflow-ai/graphflow/llm"
	"github.com/graphflow-ai/graphflow/memory"
	"github.com/graphflow-ai/graphflow/types"
)

// Task is a typed, data-carrying unit of work submitted to an agent.
// Tasks are treated as immutable once dispatched.
type Task struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Data       map[string]any `json:"data,omitempty"`
	AssignedTo string         `json:"assigned_to,omitempty"`
}

// CapabilityFunc handles a task whose type matched the capability name.
// data is never nil; a task dispatched without data receives an empty map.
type CapabilityFunc func(ctx context.Context, data map[string]any) (any, error)

// ProcessorFunc is the generic fallback invoked when no capability matches.
// It receives the whole task, with Data normalized to a non-nil map.
type ProcessorFunc func(ctx context.Context, task *Task) (any, error)

// CapabilitySpec declares one capability for registration at construction.
type CapabilitySpec struct {
	Name        string
	Description string
	Handler     CapabilityFunc
}

// Metrics receives dispatch observations. Satisfied by the internal
// metrics collector; a nil Metrics disables recording.
type Metrics interface {
	ObserveDispatch(agentName, taskType, outcome string, elapsed time.Duration)
}

type capability struct {
	fn          CapabilityFunc
	description string
}

// Agent routes tasks to capability handlers and carries optional
// collaborators for LLM completion, memory, and shared knowledge.
type Agent struct {
	name string
	role *Role

	mu           sync.RWMutex
	capabilities map[string]capability

	provider  llm.Provider
	memory    memory.Store
	graph     *knowledge.Graph
	processor ProcessorFunc
	logger    *zap.Logger
	metrics   Metrics
}

// Option configures an Agent at construction.
type Option func(*Agent)

// WithProvider attaches an LLM provider.
func WithProvider(p llm.Provider) Option {
	return func(a *Agent) { a.provider = p }
}

// WithMemory attaches a memory store.
func WithMemory(s memory.Store) Option {
	return func(a *Agent) { a.memory = s }
}

// WithKnowledgeGraph attaches a knowledge graph.
func WithKnowledgeGraph(g *knowledge.Graph) Option {
	return func(a *Agent) { a.graph = g }
}

// WithProcessor sets the generic fallback processor.
func WithProcessor(p ProcessorFunc) Option {
	return func(a *Agent) { a.processor = p }
}

// WithLogger sets the logger. A nil logger falls back to a no-op.
func WithLogger(l *zap.Logger) Option {
	return func(a *Agent) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics attaches a metrics sink.
func WithMetrics(m Metrics) Option {
	return func(a *Agent) { a.metrics = m }
}

// WithCapabilities registers capabilities at construction time.
func WithCapabilities(specs ...CapabilitySpec) Option {
	return func(a *Agent) {
		for _, spec := range specs {
			a.registerLocked(spec.Name, spec.Description, spec.Handler)
		}
	}
}

// New creates an agent with the given name and role.
// A nil role gets a default role named after the agent.
func New(name string, role *Role, opts ...Option) *Agent {
	if role == nil {
		role = NewRole(name, nil, "")
	}
	a := &Agent{
		name:         name,
		role:         role,
		capabilities: make(map[string]capability),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(
		zap.String("component", "agent"),
		zap.String("agent", name))
	return a
}

// Name returns the agent name.
func (a *Agent) Name() string { return a.name }

// Role returns the agent's role.
func (a *Agent) Role() *Role { return a.role }

// Provider returns the attached LLM provider, or nil.
func (a *Agent) Provider() llm.Provider { return a.provider }

// Memory returns the attached memory store, or nil.
func (a *Agent) Memory() memory.Store { return a.memory }

// KnowledgeGraph returns the attached knowledge graph, or nil.
func (a *Agent) KnowledgeGraph() *knowledge.Graph { return a.graph }

// Logger returns the agent's logger.
func (a *Agent) Logger() *zap.Logger { return a.logger }

// RegisterCapability binds a handler to a capability name, overwriting any
// existing binding. The name is appended to the role's capability list if
// absent; re-registration never duplicates it.
func (a *Agent) RegisterCapability(name, description string, fn CapabilityFunc) {
	a.mu.Lock()
	a.registerLocked(name, description, fn)
	a.mu.Unlock()

	a.logger.Debug("capability registered", zap.String("capability", name))
}

func (a *Agent) registerLocked(name, description string, fn CapabilityFunc) {
	a.capabilities[name] = capability{fn: fn, description: description}
	a.role.appendCapability(name)
}

// HasCapability reports whether a handler is bound to the given name.
func (a *Agent) HasCapability(name string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.capabilities[name]
	return ok
}

// CapabilityDescription returns the description recorded for a capability.
func (a *Agent) CapabilityDescription(name string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	c, ok := a.capabilities[name]
	return c.description, ok
}

// HandleTask routes a task: an exact capability match on task.Type invokes
// the bound handler with the task's data; anything else goes to the generic
// processor. Without a processor the dispatch fails as not-implemented.
func (a *Agent) HandleTask(ctx context.Context, task *Task) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if task == nil {
		return nil, types.NewError(types.ErrMalformedTask, "task is nil")
	}
	if task.Type == "" {
		return nil, types.NewError(types.ErrMalformedTask, "task type is required")
	}

	data := task.Data
	if data == nil {
		data = make(map[string]any)
	}

	a.mu.RLock()
	handler, ok := a.capabilities[task.Type]
	processor := a.processor
	a.mu.RUnlock()

	start := time.Now()
	var (
		out any
		err error
	)

	switch {
	case ok:
		out, err = handler.fn(ctx, data)
	case processor != nil:
		normalized := *task
		normalized.Data = data
		out, err = processor(ctx, &normalized)
	default:
		err = types.Errorf(types.ErrNotImplemented,
			"no capability or generic processor for task type %q", task.Type)
	}

	elapsed := time.Since(start)
	outcome := "ok"
	if err != nil {
		outcome = string(types.GetErrorCode(err))
		if outcome == "" {
			outcome = "error"
		}
		a.logger.Warn("task failed",
			zap.String("task_id", task.ID),
			zap.String("task_type", task.Type),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	} else {
		a.logger.Debug("task handled",
			zap.String("task_id", task.ID),
			zap.String("task_type", task.Type),
			zap.Duration("elapsed", elapsed))
	}
	if a.metrics != nil {
		a.metrics.ObserveDispatch(a.name, task.Type, outcome, elapsed)
	}

	return out, err
}

// Complete generates an LLM completion for the prompt.
func (a *Agent) Complete(ctx context.Context, prompt string) (string, error) {
	if a.provider == nil {
		return "", ErrProviderNotSet
	}
	return a.provider.Complete(ctx, prompt)
}

// Chat generates an LLM response for a message sequence.
func (a *Agent) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	if a.provider == nil {
		return "", ErrProviderNotSet
	}
	return a.provider.Chat(ctx, messages)
}

// Remember stores a value in the agent's memory.
func (a *Agent) Remember(ctx context.Context, key string, value any) error {
	if a.memory == nil {
		return ErrMemoryNotSet
	}
	return a.memory.Store(ctx, key, value)
}

// Recall retrieves a value from the agent's memory.
func (a *Agent) Recall(ctx context.Context, key string) (any, bool, error) {
	if a.memory == nil {
		return nil, false, ErrMemoryNotSet
	}
	return a.memory.Retrieve(ctx, key)
}

// RejectUnknownTypes is a generic processor that refuses every task with an
// unsupported-type error naming the rejected type. Agents whose task surface
// is fully covered by capabilities use it to make strays fail loudly.
func RejectUnknownTypes(_ context.Context, task *Task) (any, error) {
	return nil, types.Errorf(types.ErrUnsupportedType, "unsupported task type %q", task.Type)
}
