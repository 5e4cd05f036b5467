package agent

import "sync"

// Role describes an agent's purpose and the capability names it advertises.
// Roles are immutable to callers; only capability registration on the owning
// agent may append names (see Agent.RegisterCapability).
type Role struct {
	mu           sync.RWMutex
	name         string
	capabilities []string
	description  string
}

// NewRole creates a role. The capabilities slice is copied.
func NewRole(name string, capabilities []string, description string) *Role {
	caps := make([]string, len(capabilities))
	copy(caps, capabilities)
	return &Role{
		name:         name,
		capabilities: caps,
		description:  description,
	}
}

// Name returns the role name.
func (r *Role) Name() string { return r.name }

// Description returns the role description.
func (r *Role) Description() string { return r.description }

// Capabilities returns a copy of the advertised capability names, in
// first-registration order.
func (r *Role) Capabilities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	caps := make([]string, len(r.capabilities))
	copy(caps, r.capabilities)
	return caps
}

// HasCapability reports whether the role advertises the given name.
func (r *Role) HasCapability(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.capabilities {
		if c == name {
			return true
		}
	}
	return false
}

// appendCapability adds name to the advertised list if absent.
// Existing order is preserved; duplicates are never introduced.
func (r *Role) appendCapability(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.capabilities {
		if c == name {
			return
		}
	}
	r.capabilities = append(r.capabilities, name)
}
