package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/securepay/pkg/constants"
)

func TestLocalRateLimiter_BurstAndRefill(t *testing.T) {
	limiter := NewLocalRateLimiter(60, 3)
	clock := time.Unix(1_700_000_000, 0)
	limiter.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, remaining, _, err := limiter.Allow(ctx, constants.RateLimitScopeIP, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining, resetAt, err := limiter.Allow(ctx, constants.RateLimitScopeIP, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, clock.Add(3*time.Second), resetAt)

	// Other identifiers have their own bucket.
	allowed, _, _, _ = limiter.Allow(ctx, constants.RateLimitScopeIP, "10.0.0.2")
	assert.True(t, allowed)

	clock = clock.Add(time.Second)
	allowed, _, _, _ = limiter.Allow(ctx, constants.RateLimitScopeIP, "10.0.0.1")
	assert.True(t, allowed, "one token refills per second at 60 rpm")
}

func TestLocalRateLimiter_CleanupAndReset(t *testing.T) {
	limiter := NewLocalRateLimiter(0, 0)
	clock := time.Unix(1_700_000_000, 0)
	limiter.now = func() time.Time { return clock }
	ctx := context.Background()

	_, _, _, _ = limiter.Allow(ctx, constants.RateLimitScopeIP, "a")
	clock = clock.Add(10 * time.Minute)
	_, _, _, _ = limiter.Allow(ctx, constants.RateLimitScopeIP, "b")

	assert.Equal(t, 1, limiter.Cleanup(5*time.Minute))
	assert.Len(t, limiter.limiters, 1)

	limiter.Reset(constants.RateLimitScopeIP, "b")
	assert.Empty(t, limiter.limiters)
}

func newTestRedisLimiter(t *testing.T, cfg *RateLimiterConfig) (*miniredis.Miniredis, *RedisRateLimiter) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	rl, err := NewRedisRateLimiter(client, cfg, nil)
	require.NoError(t, err)
	return s, rl
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	s, rl := newTestRedisLimiter(t, &RateLimiterConfig{RequestsPerMinute: 1, Burst: 3})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, remaining, _, err := rl.Allow(ctx, constants.RateLimitScopeIP, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining, resetAt, err := rl.Allow(ctx, constants.RateLimitScopeIP, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, resetAt.After(time.Now()))

	assert.True(t, s.Exists("securepay:ratelimit:ip:203.0.113.7"))

	require.NoError(t, rl.ResetLimit(ctx, constants.RateLimitScopeIP, "203.0.113.7"))
	allowed, _, _, err = rl.Allow(ctx, constants.RateLimitScopeIP, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_FallsBackToLocal(t *testing.T) {
	s, rl := newTestRedisLimiter(t, &RateLimiterConfig{RequestsPerMinute: 60, Burst: 1, EnableLocalFallback: true})
	s.Close()
	ctx := context.Background()

	allowed, _, _, err := rl.Allow(ctx, constants.RateLimitScopeIP, "198.51.100.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, _, err = rl.Allow(ctx, constants.RateLimitScopeIP, "198.51.100.1")
	require.NoError(t, err)
	assert.False(t, allowed, "local bucket enforces the same burst")
}

func TestRedisRateLimiter_NoFallbackReturnsError(t *testing.T) {
	s, rl := newTestRedisLimiter(t, &RateLimiterConfig{RequestsPerMinute: 60, Burst: 1})
	s.Close()

	_, _, _, err := rl.Allow(context.Background(), constants.RateLimitScopeGlobal, "all")
	assert.Error(t, err)
}

func TestNewRedisRateLimiter_Validation(t *testing.T) {
	_, err := NewRedisRateLimiter(nil, nil, nil)
	assert.Error(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()
	_, err = NewRedisRateLimiter(client, &RateLimiterConfig{RequestsPerMinute: 0, Burst: 1}, nil)
	assert.Error(t, err)

	rl, err := NewRedisRateLimiter(client, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "securepay:ratelimit:ip:x", rl.buildKey(constants.RateLimitScopeIP, "x"))
}
