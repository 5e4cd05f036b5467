// Package metrics exposes Prometheus collectors for task dispatch,
// workflow execution, and LLM usage.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector registers and records the framework's Prometheus metrics.
// It satisfies the agent and workflow metrics interfaces.
type Collector struct {
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec

	workflowTotal    *prometheus.CounterVec
	workflowTasks    *prometheus.HistogramVec
	workflowDuration *prometheus.HistogramVec

	llmRequestsTotal   *prometheus.CounterVec
	llmRequestDuration *prometheus.HistogramVec
	llmTokensUsed      *prometheus.CounterVec
}

// NewCollector registers the collectors on reg. Pass a fresh
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		dispatchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "task_dispatch_total",
				Help:      "Task dispatches by agent, task type, and outcome.",
			},
			[]string{"agent", "task_type", "outcome"},
		),
		dispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "task_dispatch_duration_seconds",
				Help:      "Task dispatch latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"agent", "task_type"},
		),
		workflowTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "workflow_runs_total",
				Help:      "Workflow runs by outcome.",
			},
			[]string{"outcome"},
		),
		workflowTasks: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "workflow_tasks",
				Help:      "Tasks completed per workflow run.",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"outcome"},
		),
		workflowDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "workflow_duration_seconds",
				Help:      "Workflow run latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		llmRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_requests_total",
				Help:      "LLM requests by provider, operation, and outcome.",
			},
			[]string{"provider", "op", "outcome"},
		),
		llmRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "llm_request_duration_seconds",
				Help:      "LLM request latency.",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"provider", "op"},
		),
		llmTokensUsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_tokens_total",
				Help:      "LLM tokens used by provider and kind (prompt/completion).",
			},
			[]string{"provider", "kind"},
		),
	}
}

// ObserveDispatch records one task dispatch.
func (c *Collector) ObserveDispatch(agentName, taskType, outcome string, elapsed time.Duration) {
	c.dispatchTotal.WithLabelValues(agentName, taskType, outcome).Inc()
	c.dispatchDuration.WithLabelValues(agentName, taskType).Observe(elapsed.Seconds())
}

// ObserveWorkflow records one workflow run.
func (c *Collector) ObserveWorkflow(outcome string, tasks int, elapsed time.Duration) {
	c.workflowTotal.WithLabelValues(outcome).Inc()
	c.workflowTasks.WithLabelValues(outcome).Observe(float64(tasks))
	c.workflowDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveLLMRequest records one provider call.
func (c *Collector) ObserveLLMRequest(provider, op, outcome string, elapsed time.Duration) {
	c.llmRequestsTotal.WithLabelValues(provider, op, outcome).Inc()
	c.llmRequestDuration.WithLabelValues(provider, op).Observe(elapsed.Seconds())
}

// AddLLMTokens accumulates token usage.
func (c *Collector) AddLLMTokens(provider, kind string, n int) {
	if n <= 0 {
		return
	}
	c.llmTokensUsed.WithLabelValues(provider, kind).Add(float64(n))
}
