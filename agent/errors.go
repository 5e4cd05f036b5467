package agent

import "github.com/graphflow-ai/graphflow/types"

// Sentinel errors for missing collaborators.
var (
	ErrProviderNotSet = types.NewError(types.ErrProviderError, "llm provider not configured")
	ErrMemoryNotSet   = types.NewError(types.ErrMemoryError, "memory store not configured")
)
