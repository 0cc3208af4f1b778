package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a product id does not exist in the store.
var ErrNotFound = errors.New("product not found")

// ErrUnauthorized is returned when the shared admin secret is missing
// or does not match.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError rejects a write before any mutation happens. The
// message is safe to show to the operator.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RemoteSyncError wraps a failed best-effort mirror call. The local
// mutation it followed has already been committed and stands.
type RemoteSyncError struct {
	Op  string
	Err error
}

func (e *RemoteSyncError) Error() string {
	return fmt.Sprintf("remote sync %s: %v", e.Op, e.Err)
}

func (e *RemoteSyncError) Unwrap() error {
	return e.Err
}
