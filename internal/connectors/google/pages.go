package google

import (
	"context"
	"errors"

	"google.golang.org/api/googleapi"
)

// errStopPaging ends a Pages iteration early without reporting an error.
var errStopPaging = errors.New("stop paging")

// PageGate is called from a generated Pages callback after each page.
// It stops the iteration once max items were collected (max 0 means all)
// and otherwise waits for the limiter before the next page is fetched.
func PageGate(ctx context.Context, limiter *RateLimiter, collected, max int) error {
	if max > 0 && collected >= max {
		return errStopPaging
	}
	if limiter != nil {
		return limiter.Wait(ctx)
	}
	return nil
}

// Paged runs a generated Pages iteration as one logged, classified request.
// An iteration stopped by PageGate is not an error.
func Paged(ctx context.Context, limiter *RateLimiter, api, method, target string, pages func() error) error {
	return Exec(ctx, limiter, api, method, target, func(...googleapi.CallOption) error {
		if err := pages(); err != nil && !errors.Is(err, errStopPaging) {
			return err
		}
		return nil
	})
}

// Truncate returns at most max items. max 0 returns items unchanged.
func Truncate[T any](items []T, max int) []T {
	if max > 0 && len(items) > max {
		return items[:max]
	}
	return items
}

// PageSize returns the maxResults to request when at most max items are
// wanted and pages hold up to pageSize items.
func PageSize(pageSize, max int) int64 {
	if max > 0 && max < pageSize {
		return int64(max)
	}
	return int64(pageSize)
}
