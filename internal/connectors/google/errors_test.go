package google

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		code       int
		kind       error
		domainKind error
	}{
		{http.StatusBadRequest, ErrBadRequest, domain.ErrInvalidInput},
		{http.StatusUnauthorized, ErrUnauthorized, domain.ErrAuthExpired},
		{http.StatusForbidden, ErrForbidden, domain.ErrPermissionDenied},
		{http.StatusNotFound, ErrNotFound, domain.ErrNotFound},
		{http.StatusConflict, ErrConflict, domain.ErrAlreadyExists},
		{http.StatusTooManyRequests, ErrRateLimited, domain.ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			gerr := &googleapi.Error{Code: tt.code, Message: "Resource Not Found: userKey"}

			err := WrapError(fmt.Errorf("users.get: %w", gerr))

			assert.ErrorIs(t, err, tt.kind)
			assert.ErrorIs(t, err, tt.domainKind)
			assert.Contains(t, err.Error(), "Resource Not Found: userKey")

			var original *googleapi.Error
			require.ErrorAs(t, err, &original)
			assert.Equal(t, tt.code, original.Code)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestWrapError_PassesThroughOtherErrors(t *testing.T) {
	assert.NoError(t, WrapError(nil))

	plain := errors.New("dial tcp: refused")
	assert.Same(t, plain, WrapError(plain))

	server := &googleapi.Error{Code: http.StatusInternalServerError}
	assert.Equal(t, error(server), WrapError(server))
}

func TestAPIError_MessageFallsBackToKind(t *testing.T) {
	err := WrapError(&googleapi.Error{Code: http.StatusNotFound})

	assert.Equal(t, "google: resource not found", err.Error())
}

func TestClassifiers(t *testing.T) {
	notFound := &googleapi.Error{Code: http.StatusNotFound}
	conflict := &googleapi.Error{Code: http.StatusConflict}

	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsNotFound(WrapError(notFound)))
	assert.False(t, IsNotFound(conflict))
	assert.True(t, IsConflict(conflict))
	assert.True(t, IsForbidden(&googleapi.Error{Code: http.StatusForbidden}))
	assert.True(t, IsUnauthorized(ErrUnauthorized))
	assert.True(t, IsRateLimited(&googleapi.Error{Code: http.StatusTooManyRequests}))
	assert.False(t, IsRateLimited(errors.New("other")))
}

func TestRetryAfter(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "17")

	assert.Equal(t, 17, retryAfter(&googleapi.Error{Code: 429, Header: header}))
	assert.Equal(t, 0, retryAfter(&googleapi.Error{Code: 429}))
	assert.Equal(t, 0, retryAfter(errors.New("x")))
}
