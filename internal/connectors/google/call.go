package google

import (
	"context"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gshell/internal/logger"
)

// Call runs one Admin SDK request: it waits for the limiter, logs the
// request, and classifies any error with WrapError. do is the Do method of
// a generated call. A nil limiter is allowed.
func Call[T any](ctx context.Context, limiter *RateLimiter, api, method, target string,
	do func(...googleapi.CallOption) (T, error)) (T, error) {
	var zero T
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return zero, err
		}
	}

	done := logger.Call(api, method, target)
	result, err := do()
	done(err)
	if err != nil {
		if limiter != nil && IsRateLimited(err) {
			limiter.RecordRateLimitError(retryAfter(err))
		}
		return zero, WrapError(err)
	}
	return result, nil
}

// Exec is Call for requests that return no body.
func Exec(ctx context.Context, limiter *RateLimiter, api, method, target string,
	do func(...googleapi.CallOption) error) error {
	_, err := Call(ctx, limiter, api, method, target, func(opts ...googleapi.CallOption) (struct{}, error) {
		return struct{}{}, do(opts...)
	})
	return err
}
