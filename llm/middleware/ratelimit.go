// Package middleware provides composable decorators around llm.Provider.
package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/graphflow-ai/graphflow/llm"
)

// RateLimitedProvider wraps a Provider with a token-bucket rate limiter.
// Each call blocks until the limiter admits it or the context expires.
type RateLimitedProvider struct {
	next    llm.Provider
	limiter *rate.Limiter
}

// RateLimited decorates next with the given limiter.
func RateLimited(next llm.Provider, limiter *rate.Limiter) *RateLimitedProvider {
	return &RateLimitedProvider{next: next, limiter: limiter}
}

func (p *RateLimitedProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return p.next.Complete(ctx, prompt)
}

func (p *RateLimitedProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return p.next.Chat(ctx, messages)
}

func (p *RateLimitedProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.next.Embed(ctx, text)
}

func (p *RateLimitedProvider) Name() string { return p.next.Name() }
