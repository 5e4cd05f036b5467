package middleware

import (
	"context"
	"time"

	"github.com/graphflow-ai/graphflow/llm"
	"github.com/graphflow-ai/graphflow/types"
)

// Metrics receives provider call observations. Satisfied by the internal
// metrics collector.
type Metrics interface {
	ObserveLLMRequest(provider, op, outcome string, elapsed time.Duration)
	AddLLMTokens(provider, kind string, n int)
}

// InstrumentedProvider wraps a Provider with request metrics and estimated
// token accounting. Token counts are estimates from the local tokenizer,
// not the upstream usage report.
type InstrumentedProvider struct {
	next    llm.Provider
	metrics Metrics
	model   string
}

// Instrumented decorates next. model selects the tokenizer used for
// estimates.
func Instrumented(next llm.Provider, metrics Metrics, model string) *InstrumentedProvider {
	return &InstrumentedProvider{next: next, metrics: metrics, model: model}
}

func (p *InstrumentedProvider) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := p.next.Complete(ctx, prompt)
	p.record("complete", err, time.Since(start))
	if err == nil {
		p.metrics.AddLLMTokens(p.Name(), "prompt", llm.EstimateTokens(p.model, prompt))
		p.metrics.AddLLMTokens(p.Name(), "completion", llm.EstimateTokens(p.model, out))
	}
	return out, err
}

func (p *InstrumentedProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	start := time.Now()
	out, err := p.next.Chat(ctx, messages)
	p.record("chat", err, time.Since(start))
	if err == nil {
		prompt := 0
		for _, m := range messages {
			prompt += llm.EstimateTokens(p.model, m.Content)
		}
		p.metrics.AddLLMTokens(p.Name(), "prompt", prompt)
		p.metrics.AddLLMTokens(p.Name(), "completion", llm.EstimateTokens(p.model, out))
	}
	return out, err
}

func (p *InstrumentedProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	start := time.Now()
	out, err := p.next.Embed(ctx, text)
	p.record("embed", err, time.Since(start))
	return out, err
}

func (p *InstrumentedProvider) Name() string { return p.next.Name() }

func (p *InstrumentedProvider) record(op string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = string(types.GetErrorCode(err))
		if outcome == "" {
			outcome = "error"
		}
	}
	p.metrics.ObserveLLMRequest(p.Name(), op, outcome, elapsed)
}
