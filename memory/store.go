package memory

import "context"

// Store is the memory collaborator contract used by agents.
type Store interface {
	// Store saves a value under key, overwriting any previous value.
	Store(ctx context.Context, key string, value any) error

	// Retrieve loads the value for key. The boolean reports presence;
	// a missing key is not an error.
	Retrieve(ctx context.Context, key string) (any, bool, error)

	// Delete removes the value for key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}
