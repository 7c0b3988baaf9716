package repository

import "errors"

// Storage error constants
var (
	// ErrConflict is returned by Create when an active entry already exists
	// for the same (serviceKey, quantity) pair.
	ErrConflict = errors.New("an active entry already exists for this service and quantity")

	// ErrBackendUnavailable marks a backend the factory cannot use at
	// selection time. It downgrades the selection to the file backend and
	// never surfaces mid-request.
	ErrBackendUnavailable = errors.New("storage backend unavailable")
)
