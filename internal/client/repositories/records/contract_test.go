package records

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepository exercises the behaviour every backend must share.
func testRepository(t *testing.T, r Repository) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing returns nil, nil", func(t *testing.T) {
		v, err := r.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, r.Set(ctx, "token", []byte("abc")))
		v, err := r.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, r.Set(ctx, "token", []byte("new")))
		v, err := r.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), v)
	})

	t.Run("list returns all", func(t *testing.T) {
		require.NoError(t, r.Set(ctx, "blog-posts", []byte(`[]`)))
		all, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{
			"token":      []byte("new"),
			"blog-posts": []byte(`[]`),
		}, all)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, r.Delete(ctx, "token"))
		require.NoError(t, r.Delete(ctx, "token"))
		v, err := r.Get(ctx, "token")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("clear empties the store", func(t *testing.T) {
		require.NoError(t, r.Set(ctx, "users", []byte(`[]`)))
		require.NoError(t, r.Clear(ctx))
		all, err := r.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("set many writes every entry", func(t *testing.T) {
		require.NoError(t, SetMany(ctx, r,
			Entry{Key: "token", Value: []byte("jwt")},
			Entry{Key: "current-user", Value: []byte(`{"username":"demo"}`)},
		))
		all, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{
			"token":        []byte("jwt"),
			"current-user": []byte(`{"username":"demo"}`),
		}, all)
		require.NoError(t, r.Clear(ctx))
	})
}
