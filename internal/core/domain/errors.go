package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNoAccount indicates no account is registered for the requested domain
	// and no default domain is configured.
	ErrNoAccount = errors.New("no account configured")

	// ErrConfirmationDeclined indicates the user answered no to a confirmation prompt.
	ErrConfirmationDeclined = errors.New("operation declined by user")

	// Authentication Errors.

	// ErrAuthRequired indicates the account has no usable credentials.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates the authentication has expired and refresh failed.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrPermissionDenied indicates the admin lacks the privilege for the call.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// ErrorCategory classifies an ErrorRecord.
type ErrorCategory string

const (
	// CategoryInvalidData is used for every failure reported by the Admin SDK.
	CategoryInvalidData ErrorCategory = "InvalidData"
	// CategoryInvalidArgument is used for rejected command input.
	CategoryInvalidArgument ErrorCategory = "InvalidArgument"
	// CategoryObjectNotFound is used when a local entity (account, setting) is missing.
	CategoryObjectNotFound ErrorCategory = "ObjectNotFound"
	// CategoryOperationStopped is used when a confirmation prompt was declined.
	CategoryOperationStopped ErrorCategory = "OperationStopped"
)

// ErrorRecord is the error reported at the command boundary.
// It carries the failing activity and target alongside the cause.
type ErrorRecord struct {
	Err      error
	Category ErrorCategory
	Activity string
	Target   string
}

// NewErrorRecord wraps err. A nil err yields nil.
func NewErrorRecord(err error, category ErrorCategory, activity, target string) error {
	if err == nil {
		return nil
	}
	var existing *ErrorRecord
	if errors.As(err, &existing) {
		return err
	}
	return &ErrorRecord{Err: err, Category: category, Activity: activity, Target: target}
}

func (e *ErrorRecord) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Activity, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Activity, e.Target, e.Err)
}

// Unwrap returns the wrapped cause.
func (e *ErrorRecord) Unwrap() error {
	return e.Err
}
