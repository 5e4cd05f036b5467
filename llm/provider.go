package llm

import (
	"context"

	"github.com/graphflow-ai/graphflow/types"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Provider defines the unified LLM adapter interface.
// Implementations must not retry on failure; error policy belongs to callers.
type Provider interface {
	// Complete generates a completion for a single prompt.
	Complete(ctx context.Context, prompt string) (string, error)

	// Chat generates a response for an ordered message sequence.
	Chat(ctx context.Context, messages []Message) (string, error)

	// Embed generates an embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float64, error)

	// Name returns the provider's unique identifier.
	Name() string
}

// WrapProviderError wraps an upstream provider failure in a structured error.
// The cause is preserved for errors.Is/As inspection.
func WrapProviderError(provider string, op string, cause error) *types.Error {
	return types.Errorf(types.ErrProviderError, "provider %s: %s failed", provider, op).WithCause(cause)
}
