// Package common defines shared constants and sentinel errors used across
// the nbbackup server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Input validation errors.
	ErrMissingField   = errors.New("missing field")
	ErrInvalidFormat  = errors.New("invalid format")
	ErrMalformedInput = errors.New("incorrectly formatted request data")

	// Registry errors.
	ErrUserExists = errors.New("user already exists")
	ErrNotFound   = errors.New("not found")
	ErrMismatch   = errors.New("no matching record")

	// Admin access errors.
	ErrUnauthorized = errors.New("access denied")
	ErrRateLimited  = errors.New("too many requests")

	// ErrStorageFailure wraps any filesystem or object storage error. The
	// operation is aborted and previously committed state is left intact.
	ErrStorageFailure = errors.New("storage failure")
)
