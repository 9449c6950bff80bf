package google

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

func TestNewRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(ServiceDirectory)

	assert.Equal(t, ServiceDirectory, limiter.Service())
	assert.True(t, limiter.Allow())
}

func TestRateLimitConfigFor(t *testing.T) {
	settings := domain.RateLimitSettings{Directory: 3, Reports: 0, Reseller: 1.5, Burst: 4}

	assert.Equal(t, RateLimitConfig{RequestsPerSecond: 3, BurstSize: 4}, RateLimitConfigFor(ServiceDirectory, settings))
	assert.Equal(t, RateLimitConfig{RequestsPerSecond: 5, BurstSize: 4}, RateLimitConfigFor(ServiceReports, settings))
	assert.Equal(t, RateLimitConfig{RequestsPerSecond: 1.5, BurstSize: 4}, RateLimitConfigFor(ServiceReseller, settings))
}

func TestRateLimiter_BurstThenBlocks(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2})

	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}

func TestRateLimiter_BackoffBlocksAllow(t *testing.T) {
	limiter := NewRateLimiter(ServiceReports)

	limiter.RecordRateLimitError(30)

	assert.False(t, limiter.Allow())
}

func TestRateLimiter_WaitHonoursContextDuringBackoff(t *testing.T) {
	limiter := NewRateLimiter(ServiceReseller)
	limiter.RecordRateLimitError(0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_Wait(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 1})

	assert.NoError(t, limiter.Wait(context.Background()))
	assert.NoError(t, limiter.Wait(context.Background()))
}
