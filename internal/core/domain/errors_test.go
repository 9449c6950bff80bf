package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrNoAccount", ErrNoAccount},
		{"ErrConfirmationDeclined", ErrConfirmationDeclined},
		{"ErrAuthRequired", ErrAuthRequired},
		{"ErrAuthExpired", ErrAuthExpired},
		{"ErrPermissionDenied", ErrPermissionDenied},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestNewErrorRecord_Nil(t *testing.T) {
	assert.NoError(t, NewErrorRecord(nil, CategoryInvalidData, "user get", "x"))
}

func TestNewErrorRecord_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("lookup: %w", ErrNotFound)

	err := NewErrorRecord(cause, CategoryInvalidData, "user get", "jdoe@example.com")

	var record *ErrorRecord
	require.True(t, errors.As(err, &record))
	assert.Equal(t, CategoryInvalidData, record.Category)
	assert.Equal(t, "user get", record.Activity)
	assert.Equal(t, "jdoe@example.com", record.Target)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, `user get "jdoe@example.com": lookup: not found`, err.Error())
}

func TestNewErrorRecord_NoTarget(t *testing.T) {
	err := NewErrorRecord(ErrNoAccount, CategoryObjectNotFound, "user list", "")

	assert.Equal(t, "user list: no account configured", err.Error())
}

func TestNewErrorRecord_DoesNotDoubleWrap(t *testing.T) {
	inner := NewErrorRecord(ErrConfirmationDeclined, CategoryOperationStopped, "user remove", "a")

	outer := NewErrorRecord(fmt.Errorf("wrapped: %w", inner), CategoryInvalidData, "other", "b")

	var record *ErrorRecord
	require.True(t, errors.As(outer, &record))
	assert.Equal(t, CategoryOperationStopped, record.Category)
	assert.Equal(t, "user remove", record.Activity)
}
