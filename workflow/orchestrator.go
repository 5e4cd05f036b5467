package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/graphflow-ai/graphflow/agent"
	"github.com/graphflow-ai/graphflow/types"
)

const tracerName = "github.com/graphflow-ai/graphflow/workflow"

// Metrics receives workflow observations. Satisfied by the internal
// metrics collector; a nil Metrics disables recording.
type Metrics interface {
	ObserveWorkflow(outcome string, tasks int, elapsed time.Duration)
}

// Orchestrator dispatches task sequences against a Resolver.
type Orchestrator struct {
	resolver Resolver
	logger   *zap.Logger
	metrics  Metrics
	tracer   trace.Tracer
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics attaches a metrics sink.
func WithMetrics(m Metrics) OrchestratorOption {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithTracerProvider sets the tracer provider; the global provider is
// used otherwise.
func WithTracerProvider(tp trace.TracerProvider) OrchestratorOption {
	return func(o *Orchestrator) { o.tracer = tp.Tracer(tracerName) }
}

// NewOrchestrator creates an orchestrator resolving agents through resolver.
func NewOrchestrator(resolver Resolver, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		resolver: resolver,
		logger:   zap.NewNop(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With(zap.String("component", "orchestrator"))
	return o
}

// Execute runs a plain ordered task list with no successors.
func (o *Orchestrator) Execute(ctx context.Context, tasks []*agent.Task) ([]TaskResult, error) {
	entries := make([]ConditionalTask, len(tasks))
	for i, t := range tasks {
		entries[i] = ConditionalTask{Task: t}
	}
	return o.ExecuteConditional(ctx, entries)
}

// ExecuteConditional runs the entries in order, expanding each task's
// successors depth-first immediately after it completes. Results are
// returned in execution order. The first failure aborts the run; no
// partial results are returned.
func (o *Orchestrator) ExecuteConditional(ctx context.Context, entries []ConditionalTask) ([]TaskResult, error) {
	start := time.Now()
	ctx, span := o.tracer.Start(ctx, "workflow.execute",
		trace.WithAttributes(attribute.Int("workflow.root_tasks", len(entries))))
	defer span.End()

	run := &workflowRun{
		orch:    o,
		outputs: make(map[string]any),
	}

	var err error
	for _, entry := range entries {
		if err = ctx.Err(); err != nil {
			break
		}
		if entry.Task == nil {
			err = types.NewError(types.ErrMalformedTask, "workflow entry has no task")
			break
		}
		if err = run.dispatchRoot(ctx, entry); err != nil {
			break
		}
	}

	elapsed := time.Since(start)
	outcome := "ok"
	if err != nil {
		outcome = string(types.GetErrorCode(err))
		if outcome == "" {
			outcome = "error"
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logger.Warn("workflow aborted",
			zap.Int("completed", len(run.results)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	} else {
		o.logger.Info("workflow completed",
			zap.Int("tasks", len(run.results)),
			zap.Duration("elapsed", elapsed))
	}
	if o.metrics != nil {
		o.metrics.ObserveWorkflow(outcome, len(run.results), elapsed)
	}

	if err != nil {
		return nil, err
	}
	return run.results, nil
}

// workflowRun carries the per-run result sequence and output index.
type workflowRun struct {
	orch    *Orchestrator
	results []TaskResult
	outputs map[string]any
}

func (r *workflowRun) dispatchRoot(ctx context.Context, entry ConditionalTask) error {
	task := *entry.Task
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.AssignedTo == "" {
		return types.Errorf(types.ErrMalformedTask, "task %s has no assignee", task.ID)
	}

	if err := r.dispatch(ctx, &task, task.AssignedTo); err != nil {
		return err
	}
	return r.expandSuccessors(ctx, entry.NextTasks)
}

func (r *workflowRun) expandSuccessors(ctx context.Context, specs []SuccessorSpec) error {
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return err
		}

		output, ok := r.outputs[spec.DataSource]
		if !ok {
			return types.Errorf(types.ErrMissingDependency,
				"data source %q has no recorded output", spec.DataSource)
		}

		task := &agent.Task{
			ID:         spec.ID,
			Type:       spec.Type,
			Data:       successorData(output),
			AssignedTo: spec.AgentType,
		}
		if task.ID == "" {
			task.ID = uuid.NewString()
		}

		if err := r.dispatch(ctx, task, spec.AgentType); err != nil {
			return err
		}
		if err := r.expandSuccessors(ctx, spec.NextTasks); err != nil {
			return err
		}
	}
	return nil
}

// dispatch resolves the agent, executes the task, and records its output.
func (r *workflowRun) dispatch(ctx context.Context, task *agent.Task, agentKey string) error {
	ctx, span := r.orch.tracer.Start(ctx, "workflow.task",
		trace.WithAttributes(
			attribute.String("task.id", task.ID),
			attribute.String("task.type", task.Type),
			attribute.String("task.agent", agentKey)))
	defer span.End()

	a, err := r.orch.resolver.Resolve(agentKey)
	if err != nil {
		span.RecordError(err)
		return err
	}

	// Clone the payload so handlers can't mutate the caller's map.
	dispatched := *task
	dispatched.Data = cloneData(task.Data)

	output, err := a.HandleTask(ctx, &dispatched)
	if err != nil {
		span.RecordError(err)
		return err
	}

	r.results = append(r.results, TaskResult{TaskID: task.ID, Output: output})
	r.outputs[task.ID] = output

	r.orch.logger.Debug("task dispatched",
		zap.String("task_id", task.ID),
		zap.String("task_type", task.Type),
		zap.String("agent", agentKey))

	return nil
}

// successorData turns a predecessor's output into a task payload.
// Map outputs pass through copied; anything else is wrapped under "result".
func successorData(output any) map[string]any {
	if m, ok := output.(map[string]any); ok {
		return cloneData(m)
	}
	return map[string]any{"result": output}
}

func cloneData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
