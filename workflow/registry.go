package workflow

import (
	"sort"
	"sync"

	"github.com/graphflow-ai/graphflow/agent"
	"github.com/graphflow-ai/graphflow/types"
)

// Resolver maps a task's assignee key to an executing agent.
type Resolver interface {
	Resolve(key string) (*agent.Agent, error)
}

// CreateFunc builds an agent on first use for a lazily registered key.
type CreateFunc func() (*agent.Agent, error)

// Registry is a mutex-guarded Resolver. Agents register either directly or
// lazily through a create function; lazily created agents are cached after
// the first successful resolve.
type Registry struct {
	mu       sync.RWMutex
	agents   map[string]*agent.Agent
	creators map[string]CreateFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		agents:   make(map[string]*agent.Agent),
		creators: make(map[string]CreateFunc),
	}
}

// Register binds an agent to a key, replacing any existing binding.
func (r *Registry) Register(key string, a *agent.Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[key] = a
	delete(r.creators, key)
}

// RegisterLazy binds a create function to a key. The agent is built on the
// first Resolve and cached.
func (r *Registry) RegisterLazy(key string, create CreateFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creators[key] = create
	delete(r.agents, key)
}

// Resolve returns the agent bound to key, building it first if the binding
// is lazy. An unknown key fails with an agent-not-found error.
func (r *Registry) Resolve(key string) (*agent.Agent, error) {
	r.mu.RLock()
	a, ok := r.agents[key]
	r.mu.RUnlock()
	if ok {
		return a, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check: another caller may have built it while we waited.
	if a, ok := r.agents[key]; ok {
		return a, nil
	}
	create, ok := r.creators[key]
	if !ok {
		return nil, types.Errorf(types.ErrAgentNotFound, "no agent registered for %q", key)
	}

	built, err := create()
	if err != nil {
		return nil, types.Errorf(types.ErrAgentNotFound, "creating agent for %q", key).WithCause(err)
	}
	r.agents[key] = built
	delete(r.creators, key)
	return built, nil
}

// Keys returns all registered keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.agents)+len(r.creators))
	for k := range r.agents {
		keys = append(keys, k)
	}
	for k := range r.creators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
