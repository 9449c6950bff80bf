package google

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

// ServiceType identifies an Admin SDK API for rate limiting purposes.
type ServiceType string

const (
	// ServiceDirectory is the Directory API.
	ServiceDirectory ServiceType = "directory"
	// ServiceReports is the Reports API.
	ServiceReports ServiceType = "reports"
	// ServiceReseller is the Reseller API.
	ServiceReseller ServiceType = "reseller"
)

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits provides conservative defaults for each API.
var DefaultRateLimits = map[ServiceType]RateLimitConfig{
	ServiceDirectory: {RequestsPerSecond: 10.0, BurstSize: 10},
	ServiceReports:   {RequestsPerSecond: 5.0, BurstSize: 10},
	ServiceReseller:  {RequestsPerSecond: 5.0, BurstSize: 10},
}

// RateLimitConfigFor returns the configured limits for a service.
func RateLimitConfigFor(service ServiceType, settings domain.RateLimitSettings) RateLimitConfig {
	cfg := DefaultRateLimits[service]
	var rps float64
	switch service {
	case ServiceDirectory:
		rps = settings.Directory
	case ServiceReports:
		rps = settings.Reports
	case ServiceReseller:
		rps = settings.Reseller
	}
	if rps > 0 {
		cfg.RequestsPerSecond = rps
	}
	if settings.Burst > 0 {
		cfg.BurstSize = settings.Burst
	}
	return cfg
}

// RateLimiter provides rate limiting for Admin SDK requests.
// It uses a token bucket algorithm with a backoff window after 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	service ServiceType
}

// NewRateLimiter creates a new rate limiter with the default limits for service.
func NewRateLimiter(service ServiceType) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}
	}
	limiter := NewRateLimiterWithConfig(cfg)
	limiter.service = service
	return limiter
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Service returns the API the limiter was created for, if any.
func (r *RateLimiter) Service() ServiceType {
	return r.service
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		timer := time.NewTimer(time.Until(retryAt))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError sets a backoff period after a 429 response.
// A non-positive retryAfterSeconds uses a 60 second backoff.
func (r *RateLimiter) RecordRateLimitError(retryAfterSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfterSeconds <= 0 {
		retryAfterSeconds = 60
	}

	r.retryAt = time.Now().Add(time.Duration(retryAfterSeconds) * time.Second)
}

// Allow checks if a request can be made immediately without blocking.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}

	return r.limiter.Allow()
}
