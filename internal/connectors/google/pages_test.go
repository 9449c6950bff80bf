package google

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageGate(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, PageGate(ctx, nil, 10, 0))
	assert.NoError(t, PageGate(ctx, nil, 4, 5))
	assert.ErrorIs(t, PageGate(ctx, nil, 5, 5), errStopPaging)
	assert.NoError(t, PageGate(ctx, NewRateLimiter(ServiceDirectory), 1, 5))
}

func TestPaged_EarlyStopIsSuccess(t *testing.T) {
	err := Paged(context.Background(), nil, "directory", "users.list", "", func() error {
		return PageGate(context.Background(), nil, 3, 3)
	})

	assert.NoError(t, err)
}

func TestPaged_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	err := Paged(context.Background(), nil, "directory", "users.list", "", func() error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestTruncateAndPageSize(t *testing.T) {
	assert.Equal(t, []int{1, 2}, Truncate([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1, 2, 3}, Truncate([]int{1, 2, 3}, 0))
	assert.Equal(t, []int{1}, Truncate([]int{1}, 5))

	assert.Equal(t, int64(100), PageSize(100, 0))
	assert.Equal(t, int64(7), PageSize(100, 7))
	assert.Equal(t, int64(100), PageSize(100, 700))
}
