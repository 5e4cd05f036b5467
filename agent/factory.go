package agent

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/graphflow-ai/graphflow/types"
)

// Template describes how to build a named agent variant.
type Template struct {
	// Name identifies the template in the factory.
	Name string
	// Role is the role name for created agents; defaults to Name.
	Role string
	// Description becomes the role description.
	Description string
	// Capabilities are advertised on the role even before handlers bind.
	Capabilities []string
	// Setup registers capability handlers on the freshly built agent.
	Setup func(a *Agent)
}

// Factory creates agents from registered templates. It is seeded with the
// built-in variants (researcher, assistant, executor, data_scientist,
// developer, product_manager, security) and accepts custom templates.
type Factory struct {
	mu        sync.RWMutex
	templates map[string]Template
	logger    *zap.Logger
}

// NewFactory creates a factory pre-loaded with the built-in templates.
func NewFactory(logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Factory{
		templates: make(map[string]Template),
		logger:    logger.With(zap.String("component", "agent_factory")),
	}
	for _, t := range builtinTemplates() {
		f.templates[t.Name] = t
	}
	return f
}

// RegisterTemplate adds or replaces a template.
func (f *Factory) RegisterTemplate(t Template) error {
	if t.Name == "" {
		return types.NewError(types.ErrInvalidConfig, "template name is required")
	}

	f.mu.Lock()
	f.templates[t.Name] = t
	f.mu.Unlock()

	f.logger.Debug("template registered", zap.String("template", t.Name))
	return nil
}

// CreateAgent builds an agent named agentName from the given template.
// Options are applied before the template's Setup runs, so collaborators
// (provider, memory, graph) are visible to template handlers.
func (f *Factory) CreateAgent(templateName, agentName string, opts ...Option) (*Agent, error) {
	f.mu.RLock()
	tpl, ok := f.templates[templateName]
	f.mu.RUnlock()

	if !ok {
		return nil, types.Errorf(types.ErrTemplateNotFound, "template %q not registered", templateName)
	}
	if agentName == "" {
		agentName = templateName
	}

	roleName := tpl.Role
	if roleName == "" {
		roleName = tpl.Name
	}
	role := NewRole(roleName, tpl.Capabilities, tpl.Description)

	a := New(agentName, role, opts...)
	if tpl.Setup != nil {
		tpl.Setup(a)
	}

	f.logger.Info("agent created",
		zap.String("template", templateName),
		zap.String("agent", agentName))

	return a, nil
}

// ListTemplates returns the registered template names, sorted.
func (f *Factory) ListTemplates() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.templates))
	for name := range f.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
