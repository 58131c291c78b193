package records

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		opts Options
		want any
	}{
		{"default is sqlite", Options{DSN: filepath.Join(dir, "a.db")}, &SQLRepository{}},
		{"sqlite", Options{Driver: DriverSQLite, DSN: ":memory:"}, &SQLRepository{}},
		{"sqlite in a new directory", Options{Driver: DriverSQLite, DSN: filepath.Join(dir, "nested", "c.db")}, &SQLRepository{}},
		{"bolt", Options{Driver: DriverBolt, BoltPath: filepath.Join(dir, "deep", "dir", "b.bolt")}, &BoltRepository{}},
		{"memory", Options{Driver: DriverMemory}, &MemoryRepository{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, closeFn, err := Open(context.Background(), tt.opts)
			require.NoError(t, err)
			require.NotNil(t, closeFn)
			t.Cleanup(func() { _ = closeFn() })

			assert.IsType(t, tt.want, repo)
			require.NoError(t, repo.Set(context.Background(), "k", []byte("v")))
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	_, closeFn, err := Open(context.Background(), Options{Driver: "floppy"})
	require.Error(t, err)
	require.NotNil(t, closeFn)
	assert.NoError(t, closeFn())

	_, _, err = Open(context.Background(), Options{Driver: DriverS3})
	require.Error(t, err)
}
