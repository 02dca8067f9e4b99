package models

import "errors"

// Error taxonomy shared by repositories, services and handlers.
// Exhausted and ConflictAbandoned are expected, recoverable states and are
// never logged as errors; StoreUnavailable is retried by the caller, not
// internally; Unauthenticated is always terminal for the call.
var (
	// ErrNotFound reports that a catalog, item or user does not exist at all.
	ErrNotFound = errors.New("not found")
	// ErrExhausted reports a valid catalog with no further items. A normal
	// terminal state, not a failure.
	ErrExhausted = errors.New("catalog exhausted")
	// ErrConflictAbandoned reports that a guarded write lost a race and was
	// abandoned. The caller should re-read and decide whether to retry.
	ErrConflictAbandoned = errors.New("conflicting write abandoned")
	// ErrStoreUnavailable reports a transient infrastructure failure.
	// Safe to retry with backoff.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrUnauthenticated reports that the caller's identity could not be
	// resolved. Calls fail closed, never defaulting to a guessed identity.
	ErrUnauthenticated = errors.New("unauthenticated")
)
