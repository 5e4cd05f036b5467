package agent

import (
	"go.uber.org/zap"

	"github.com/graphflow-ai/graphflow/knowledge"
	"github.com/graphflow-ai/graphflow/llm"
	"github.com/graphflow-ai/graphflow/memory"
	"github.com/graphflow-ai/graphflow/types"
)

// Builder assembles an agent through a fluent call chain.
//
//	a, err := agent.NewBuilder("greeter").
//		Role("greeter", "greets people").
//		Capability("greet", "say hello", greetFn).
//		Provider(p).
//		Build()
type Builder struct {
	name     string
	roleName string
	roleDesc string
	roleCaps []string
	specs    []CapabilitySpec
	opts     []Option
	err      error
}

// NewBuilder starts building an agent with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Role sets the role name and description.
func (b *Builder) Role(name, description string) *Builder {
	b.roleName = name
	b.roleDesc = description
	return b
}

// Advertise declares role capabilities that need not yet be backed
// by handlers.
func (b *Builder) Advertise(capabilities ...string) *Builder {
	b.roleCaps = append(b.roleCaps, capabilities...)
	return b
}

// Capability registers a handler under the given name.
func (b *Builder) Capability(name, description string, fn CapabilityFunc) *Builder {
	if name == "" {
		b.err = types.NewError(types.ErrInvalidConfig, "capability name is required")
		return b
	}
	if fn == nil {
		b.err = types.Errorf(types.ErrInvalidConfig, "capability %q has no handler", name)
		return b
	}
	b.specs = append(b.specs, CapabilitySpec{Name: name, Description: description, Handler: fn})
	return b
}

// Provider attaches an LLM provider.
func (b *Builder) Provider(p llm.Provider) *Builder {
	b.opts = append(b.opts, WithProvider(p))
	return b
}

// Memory attaches a memory store.
func (b *Builder) Memory(s memory.Store) *Builder {
	b.opts = append(b.opts, WithMemory(s))
	return b
}

// KnowledgeGraph attaches a knowledge graph.
func (b *Builder) KnowledgeGraph(g *knowledge.Graph) *Builder {
	b.opts = append(b.opts, WithKnowledgeGraph(g))
	return b
}

// Processor sets the generic fallback processor.
func (b *Builder) Processor(p ProcessorFunc) *Builder {
	b.opts = append(b.opts, WithProcessor(p))
	return b
}

// Logger sets the logger.
func (b *Builder) Logger(l *zap.Logger) *Builder {
	b.opts = append(b.opts, WithLogger(l))
	return b
}

// Metrics attaches a metrics sink.
func (b *Builder) Metrics(m Metrics) *Builder {
	b.opts = append(b.opts, WithMetrics(m))
	return b
}

// Build validates the accumulated configuration and creates the agent.
func (b *Builder) Build() (*Agent, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.name == "" {
		return nil, types.NewError(types.ErrInvalidConfig, "agent name is required")
	}

	roleName := b.roleName
	if roleName == "" {
		roleName = b.name
	}
	role := NewRole(roleName, b.roleCaps, b.roleDesc)

	opts := append([]Option{WithCapabilities(b.specs...)}, b.opts...)
	return New(b.name, role, opts...), nil
}
