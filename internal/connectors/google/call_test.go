package google

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gshell/internal/core/domain"
	"github.com/custodia-labs/gshell/internal/logger"
)

func TestCall_ReturnsResultAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()

	got, err := Call(context.Background(), NewRateLimiter(ServiceDirectory), "directory", "users.get", "a@example.com",
		func(...googleapi.CallOption) (string, error) { return "ok", nil })

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Regexp(t, `^\[API\] directory users.get a@example.com \(\d+m?s\)\n$`, buf.String())
}

func TestCall_WrapsAPIErrors(t *testing.T) {
	_, err := Call(context.Background(), nil, "directory", "users.get", "x",
		func(...googleapi.CallOption) (*int, error) { return nil, &googleapi.Error{Code: http.StatusNotFound, Message: "missing"} })

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "missing")
}

func TestCall_RecordsBackoffOnRateLimit(t *testing.T) {
	limiter := NewRateLimiter(ServiceReports)

	err := Exec(context.Background(), limiter, "reports", "activities.list", "",
		func(...googleapi.CallOption) error { return &googleapi.Error{Code: http.StatusTooManyRequests} })

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.False(t, limiter.Allow())
}

func TestCall_ContextCancelledBeforeRequest(t *testing.T) {
	limiter := NewRateLimiter(ServiceDirectory)
	limiter.RecordRateLimitError(60)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false

	err := Exec(ctx, limiter, "directory", "users.delete", "x", func(...googleapi.CallOption) error {
		called = true
		return nil
	})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, called)
}
