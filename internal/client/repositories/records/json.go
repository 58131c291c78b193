package records

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON reads key and decodes it into T. The bool is false when the key
// is absent, in which case the zero T is returned.
func GetJSON[T any](ctx context.Context, repo Repository, key string) (T, bool, error) {
	var v T

	raw, err := repo.Get(ctx, key)
	if err != nil {
		return v, false, err
	}
	if raw == nil {
		return v, false, nil
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("failed to decode record[%s]: %w", key, err)
	}
	return v, true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, repo Repository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode record[%s]: %w", key, err)
	}
	return repo.Set(ctx, key, raw)
}
