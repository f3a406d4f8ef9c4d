// Package common defines shared sentinel errors used across the import
// pipeline. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrPreconditionFailed signals a conditional write against a record
	// that no longer exists (typically TTL-expired between read and write).
	// Handlers absorb it as "someone else already resolved this".
	ErrPreconditionFailed = errors.New("precondition failed")

	// Payload-specific errors.
	ErrValidation = errors.New("validation error")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")
)
