// Package records is the persistence adapter behind the client stores: a
// flat key/value store of opaque byte records.
//
// Several backends implement Repository:
//
//   - SQLRepository over SQLite (default) or PostgreSQL, table "records"
//   - BoltRepository over a bbolt file, bucket "records"
//   - S3Repository, one object per key under a prefix
//   - MemoryRepository, for tests and throwaway sessions
//
// A missing key is not an error: Get returns (nil, nil).
package records
