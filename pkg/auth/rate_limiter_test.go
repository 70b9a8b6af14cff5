package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindowLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewSlidingWindowLimiter(2, time.Minute)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, _ := limiter.Allow(ctx, "k")
	assert.False(t, ok, "third request inside the window")

	ok, _ = limiter.Allow(ctx, "other")
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Minute)
	ok, _ = limiter.Allow(ctx, "k")
	assert.True(t, ok, "window has slid past the first requests")

	require.NoError(t, limiter.Reset(ctx, "other"))
	ok, _ = limiter.Allow(ctx, "other")
	assert.True(t, ok)
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(1)
	ctx := context.Background()

	ok, _ := limiter.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)
	ok, _ = limiter.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)
	ok, _ = limiter.Allow(ctx, "10.0.0.2")
	assert.True(t, ok)
}
