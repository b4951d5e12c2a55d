package types

import "errors"

// Store lifecycle errors.
var (
	// ErrStoreUnavailable means no SQLite driver is registered in this
	// process. Callers are expected to degrade to an empty read-only
	// view rather than retry.
	ErrStoreUnavailable = errors.New("embedded store is not available in this process")

	// ErrStoreClosed is returned by operations on a store after Close.
	ErrStoreClosed = errors.New("store is closed")
)

// Entity errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidID     = errors.New("id must not be empty")
	ErrTitleRequired = errors.New("title must not be empty")
	ErrInvalidStatus = errors.New("unknown task status")
)

// ErrInvalidSnapshot is the base error for snapshot validation failures.
// Validation errors wrap it with a reason describing what was malformed.
var ErrInvalidSnapshot = errors.New("invalid snapshot")
