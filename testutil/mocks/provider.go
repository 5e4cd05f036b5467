// Package mocks provides canned collaborator implementations for tests.
package mocks

import (
	"context"
	"sync"

	"github.com/graphflow-ai/graphflow/llm"
)

// Provider is an llm.Provider with scripted responses and call recording.
type Provider struct {
	mu sync.Mutex

	name      string
	response  string
	responses map[string]string
	embedding []float64
	err       error

	// Prompts records every Complete prompt in call order.
	Prompts []string
	// Chats records every Chat message sequence in call order.
	Chats [][]llm.Message
}

// NewProvider creates a mock that answers every call with response.
func NewProvider(response string) *Provider {
	return &Provider{
		name:      "mock",
		response:  response,
		responses: make(map[string]string),
	}
}

// WithName sets the provider name.
func (p *Provider) WithName(name string) *Provider {
	p.name = name
	return p
}

// WithResponse scripts an exact-prompt response, taking precedence over the
// default response.
func (p *Provider) WithResponse(prompt, response string) *Provider {
	p.responses[prompt] = response
	return p
}

// WithEmbedding sets the vector returned by Embed.
func (p *Provider) WithEmbedding(vec []float64) *Provider {
	p.embedding = vec
	return p
}

// WithError makes every call fail with err.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.Prompts = append(p.Prompts, prompt)
	if p.err != nil {
		return "", p.err
	}
	if resp, ok := p.responses[prompt]; ok {
		return resp, nil
	}
	return p.response, nil
}

func (p *Provider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	copied := make([]llm.Message, len(messages))
	copy(copied, messages)
	p.Chats = append(p.Chats, copied)

	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func (p *Provider) Embed(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return nil, p.err
	}
	if p.embedding != nil {
		out := make([]float64, len(p.embedding))
		copy(out, p.embedding)
		return out, nil
	}
	return []float64{0.1, 0.2, 0.3}, nil
}

func (p *Provider) Name() string { return p.name }

// CallCount returns the total number of Complete and Chat calls.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Prompts) + len(p.Chats)
}
