// Package graphflow provides a top-level convenience entry point for
// creating agents with minimal boilerplate.
//
// Usage:
//
//	import "github.com/graphflow-ai/graphflow"
//
//	a, err := graphflow.NewAgent("bob",
//		graphflow.WithTemplate("researcher"),
//		graphflow.WithOpenAI("sk-..."))
//
// This is a thin wrapper around [quick.Agent]; both produce identical
// results. Use this package when you prefer the shorter import path.
package graphflow

import (
	"github.com/graphflow-ai/graphflow/agent"
	"github.com/graphflow-ai/graphflow/quick"
)

// Option configures the agent created by [NewAgent].
type Option = quick.Option

// NewAgent creates an [agent.Agent] from a factory template.
func NewAgent(name string, opts ...Option) (*agent.Agent, error) {
	return quick.Agent(name, opts...)
}

// Re-export quick options so callers never need to import quick/.

// WithTemplate selects the factory template; defaults to "assistant".
var WithTemplate = quick.WithTemplate

// WithCapability registers an extra capability on the created agent.
var WithCapability = quick.WithCapability

// WithProvider sets a pre-built LLM provider.
var WithProvider = quick.WithProvider

// WithOpenAI creates an OpenAI provider with default settings.
var WithOpenAI = quick.WithOpenAI

// WithOpenAIConfig creates an OpenAI-compatible provider.
var WithOpenAIConfig = quick.WithOpenAIConfig

// WithMemory attaches a memory store.
var WithMemory = quick.WithMemory

// WithInMemory attaches a fresh in-process memory store.
var WithInMemory = quick.WithInMemory

// WithProcessor sets the generic fallback processor.
var WithProcessor = quick.WithProcessor

// WithLogger sets a custom zap logger.
var WithLogger = quick.WithLogger
