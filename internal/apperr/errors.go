// Package apperr holds the business error taxonomy. Services return these
// values (or wrap them); the transport layer maps them to HTTP statuses in
// one place. Anything not in this taxonomy is treated as an internal error.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrVersionNotFound = errors.New("version not found")
	ErrUserNotFound    = errors.New("user not found")

	// ErrReadPermissionRequired and ErrWritePermissionRequired are the two
	// distinct denial reasons: callers can tell "no access at all" on a read
	// from "read-only access" on a write.
	ErrReadPermissionRequired  = errors.New("read permission required")
	ErrWritePermissionRequired = errors.New("write permission required")

	// ErrShareExists: a grant for an existing (note, user) pair. The stored
	// share is left untouched, never overwritten.
	ErrShareExists       = errors.New("share already exists")
	ErrInvalidPermission = errors.New("permission must be read or write")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrVersionConflict: a concurrent update won the version-number race.
	// The whole operation failed cleanly and is safe to retry.
	ErrVersionConflict = errors.New("note was modified concurrently")
)

// ValidationError carries field-level detail for malformed input. No
// mutation has happened when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
