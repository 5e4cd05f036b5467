// Copyright (c) GraphFlow Authors.
// Licensed under the MIT License.

/*
Package quick provides one-line agent construction for scripts and examples.

	a, err := quick.Agent("bob",
		quick.WithTemplate("researcher"),
		quick.WithOpenAI("sk-..."),
	)
*/
package quick

import (
	"go.uber.org/zap"

	"github.com/graphflow-ai/graphflow/agent"
	"github.com/graphflow-ai/graphflow/llm"
	"github.com/graphflow-ai/graphflow/memory"
	"github.com/graphflow-ai/graphflow/providers/openai"
)

type options struct {
	template  string
	specs     []agent.CapabilitySpec
	agentOpts []agent.Option
	err       error
}

// Option configures quick agent construction.
type Option func(*options)

// WithTemplate selects the factory template; defaults to "assistant".
func WithTemplate(name string) Option {
	return func(o *options) { o.template = name }
}

// WithCapability registers an extra capability on the created agent.
func WithCapability(name, description string, fn agent.CapabilityFunc) Option {
	return func(o *options) {
		o.specs = append(o.specs, agent.CapabilitySpec{
			Name: name, Description: description, Handler: fn,
		})
	}
}

// WithProvider attaches an LLM provider.
func WithProvider(p llm.Provider) Option {
	return func(o *options) { o.agentOpts = append(o.agentOpts, agent.WithProvider(p)) }
}

// WithOpenAI attaches an OpenAI provider with default settings.
func WithOpenAI(apiKey string) Option {
	return WithOpenAIConfig(openai.Config{APIKey: apiKey})
}

// WithOpenAIConfig attaches an OpenAI-compatible provider.
func WithOpenAIConfig(cfg openai.Config) Option {
	return func(o *options) {
		p, err := openai.New(cfg, nil)
		if err != nil {
			o.err = err
			return
		}
		o.agentOpts = append(o.agentOpts, agent.WithProvider(p))
	}
}

// WithMemory attaches a memory store.
func WithMemory(s memory.Store) Option {
	return func(o *options) { o.agentOpts = append(o.agentOpts, agent.WithMemory(s)) }
}

// WithInMemory attaches a fresh in-process memory store.
func WithInMemory() Option {
	return WithMemory(memory.NewInMemoryStore(memory.InMemoryStoreConfig{}, nil))
}

// WithProcessor sets the generic fallback processor.
func WithProcessor(p agent.ProcessorFunc) Option {
	return func(o *options) { o.agentOpts = append(o.agentOpts, agent.WithProcessor(p)) }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.agentOpts = append(o.agentOpts, agent.WithLogger(l)) }
}

// Agent creates an agent from a factory template in one call.
func Agent(name string, opts ...Option) (*agent.Agent, error) {
	o := &options{template: "assistant"}
	for _, opt := range opts {
		opt(o)
	}
	if o.err != nil {
		return nil, o.err
	}

	a, err := agent.NewFactory(nil).CreateAgent(o.template, name, o.agentOpts...)
	if err != nil {
		return nil, err
	}
	for _, spec := range o.specs {
		a.RegisterCapability(spec.Name, spec.Description, spec.Handler)
	}
	return a, nil
}
