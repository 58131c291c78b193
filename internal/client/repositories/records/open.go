package records

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/localdb"
	"github.com/dmitrijs2005/gophblog/internal/filex"
)

// Storage drivers accepted by Open.
const (
	DriverSQLite   = localdb.DriverSQLite
	DriverPostgres = localdb.DriverPostgres
	DriverBolt     = "bolt"
	DriverS3       = "s3"
	DriverMemory   = "memory"
)

// Options selects and configures a backend for Open.
type Options struct {
	Driver string
	// DSN is the SQLite path or the PostgreSQL connection string.
	DSN      string
	BoltPath string
	S3       S3Options
}

// Open builds the repository for opts.Driver. The returned close function
// releases the backend and is never nil.
func Open(ctx context.Context, opts Options) (Repository, func() error, error) {
	noop := func() error { return nil }

	switch opts.Driver {
	case DriverSQLite, "":
		if filex.IsPlainSQLitePath(opts.DSN) {
			if err := filex.EnsureParentDir(opts.DSN); err != nil {
				return nil, noop, err
			}
		}
		db, err := localdb.Open(ctx, DriverSQLite, opts.DSN)
		if err != nil {
			return nil, noop, err
		}
		return NewSQLiteRepository(db), db.Close, nil

	case DriverPostgres:
		db, err := localdb.Open(ctx, DriverPostgres, opts.DSN)
		if err != nil {
			return nil, noop, err
		}
		return NewPostgresRepository(db), db.Close, nil

	case DriverBolt:
		if err := filex.EnsureParentDir(opts.BoltPath); err != nil {
			return nil, noop, err
		}
		repo, err := OpenBolt(opts.BoltPath)
		if err != nil {
			return nil, noop, err
		}
		return repo, repo.Close, nil

	case DriverS3:
		repo, err := NewS3Repository(ctx, opts.S3)
		if err != nil {
			return nil, noop, err
		}
		return repo, noop, nil

	case DriverMemory:
		return NewMemoryRepository(), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
