package scoredb

import "errors"

// Sentinel errors for the repository layer.
// These are infrastructure-level errors that indicate database state, not business logic failures.
var (
	// ErrNotFound indicates the requested score snapshot does not exist in the database.
	ErrNotFound = errors.New("score snapshot not found")
)
