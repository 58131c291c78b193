package records

import (
	"context"
	"errors"
)

// Entry is one key/value pair of a batch write.
type Entry struct {
	Key   string
	Value []byte
}

// BatchSetter is implemented by repositories that can write several
// records atomically.
type BatchSetter interface {
	SetMany(ctx context.Context, entries []Entry) error
}

// SetMany writes all entries or none of them. Repositories without
// BatchSetter get sequential writes; on failure the keys already written
// are deleted again.
func SetMany(ctx context.Context, repo Repository, entries ...Entry) error {
	if b, ok := repo.(BatchSetter); ok {
		return b.SetMany(ctx, entries)
	}

	for i, e := range entries {
		if err := repo.Set(ctx, e.Key, e.Value); err != nil {
			for _, done := range entries[:i] {
				if derr := repo.Delete(ctx, done.Key); derr != nil {
					err = errors.Join(err, derr)
				}
			}
			return err
		}
	}
	return nil
}
