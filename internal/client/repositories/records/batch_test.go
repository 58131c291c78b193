package records

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainRepo hides the batch support of the wrapped repository and fails
// writes to the keys in failSet.
type plainRepo struct {
	Repository
	failSet map[string]error
}

func (r *plainRepo) Set(ctx context.Context, key string, value []byte) error {
	if err := r.failSet[key]; err != nil {
		return err
	}
	return r.Repository.Set(ctx, key, value)
}

func TestSetMany_FallbackWritesInOrder(t *testing.T) {
	ctx := context.Background()
	repo := &plainRepo{Repository: NewMemoryRepository()}

	require.NoError(t, SetMany(ctx, repo,
		Entry{Key: "token", Value: []byte("jwt")},
		Entry{Key: "current-user", Value: []byte(`{}`)},
	))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSetMany_FallbackUndoesPartialWrite(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	repo := &plainRepo{
		Repository: NewMemoryRepository(),
		failSet:    map[string]error{"current-user": boom},
	}

	err := SetMany(ctx, repo,
		Entry{Key: "token", Value: []byte("jwt")},
		Entry{Key: "current-user", Value: []byte(`{}`)},
	)
	require.ErrorIs(t, err, boom)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSetMany_NoEntries(t *testing.T) {
	require.NoError(t, SetMany(context.Background(), NewMemoryRepository()))
}
