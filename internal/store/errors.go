package store

import "errors"

// Error kinds returned by store operations. Callers branch on them with
// errors.Is; the CLI boundary collapses them to their message text. None
// are retried internally: each needs external intervention (permissions,
// disk space, a valid database file) before a retry can succeed.
var (
	// ErrOpenFailed: the store file could not be created or opened.
	ErrOpenFailed = errors.New("store open failed")

	// ErrSchemaFailed: a schema statement was rejected.
	ErrSchemaFailed = errors.New("store schema apply failed")

	// ErrSeedFailed: the default account insert was rejected.
	ErrSeedFailed = errors.New("store seed insert failed")

	// ErrReadFailed: an aggregation or listing query failed.
	ErrReadFailed = errors.New("store read failed")
)
