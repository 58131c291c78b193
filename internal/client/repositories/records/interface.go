package records

import (
	"context"
)

// Repository stores opaque values under string keys.
type Repository interface {
	// Get returns the value for key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set creates or replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns every stored record.
	List(ctx context.Context) (map[string][]byte, error)
	// Clear removes every stored record.
	Clear(ctx context.Context) error
}
