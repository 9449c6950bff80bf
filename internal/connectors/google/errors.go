package google

import (
	"errors"
	"net/http"
	"strconv"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

// kindError is a Google error class that also matches a domain error.
type kindError struct {
	msg    string
	domain error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.domain }

// Common Google API errors. Each also matches the corresponding domain error.
var (
	// ErrBadRequest indicates the API rejected the request parameters.
	ErrBadRequest error = &kindError{"google: bad request", domain.ErrInvalidInput}

	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized error = &kindError{"google: unauthorised (invalid credentials)", domain.ErrAuthExpired}

	// ErrForbidden indicates insufficient permissions.
	ErrForbidden error = &kindError{"google: forbidden (insufficient permissions)", domain.ErrPermissionDenied}

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound error = &kindError{"google: resource not found", domain.ErrNotFound}

	// ErrConflict indicates the resource already exists.
	ErrConflict error = &kindError{"google: resource already exists", domain.ErrAlreadyExists}

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited error = &kindError{"google: rate limit exceeded", domain.ErrRateLimited}
)

// APIError is a classified Google API failure. It matches both its Kind and
// the underlying *googleapi.Error with errors.Is and errors.As.
type APIError struct {
	Kind    error
	Code    int
	Message string
	cause   *googleapi.Error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

// Unwrap exposes the error class and the original API error.
func (e *APIError) Unwrap() []error {
	return []error{e.Kind, e.cause}
}

func statusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || statusCode(err) == http.StatusUnauthorized
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) || statusCode(err) == http.StatusForbidden
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || statusCode(err) == http.StatusNotFound
}

// IsConflict returns true if the error indicates a duplicate resource.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) || statusCode(err) == http.StatusConflict
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited) || statusCode(err) == http.StatusTooManyRequests
}

// WrapError classifies a Google API error while keeping the API's message.
// Errors that are not *googleapi.Error are returned unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	var kind error
	switch gerr.Code {
	case http.StatusBadRequest:
		kind = ErrBadRequest
	case http.StatusUnauthorized:
		kind = ErrUnauthorized
	case http.StatusForbidden:
		kind = ErrForbidden
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusConflict:
		kind = ErrConflict
	case http.StatusTooManyRequests:
		kind = ErrRateLimited
	default:
		return err
	}

	return &APIError{Kind: kind, Code: gerr.Code, Message: gerr.Message, cause: gerr}
}

// retryAfter reads the Retry-After header of a 429 response in seconds.
// Returns 0 when absent.
func retryAfter(err error) int {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	seconds, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil {
		return 0
	}
	return seconds
}
