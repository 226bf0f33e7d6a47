// Package ratelimit provides distributed rate limiting using Redis, with an
// in-process fallback.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/errors"
	"github.com/turtacn/securepay/pkg/logger"
)

var _ service.RateLimiter = (*RedisRateLimiter)(nil)

// RedisRateLimiter implements distributed rate limiting using Redis.
type RedisRateLimiter struct {
	client   goredis.UniversalClient
	logger   logger.Logger
	config   *RateLimiterConfig
	script   *goredis.Script
	fallback *LocalRateLimiter
}

// RateLimiterConfig holds rate limiter configuration.
type RateLimiterConfig struct {
	// RequestsPerMinute is the sustained refill rate
	RequestsPerMinute int
	// Burst is the bucket capacity
	Burst int
	// EnableLocalFallback serves decisions from a local bucket when Redis fails
	EnableLocalFallback bool
	// KeyPrefix is the Redis key prefix
	KeyPrefix string
}

// DefaultRateLimiterConfig returns default rate limiter configuration.
func DefaultRateLimiterConfig() *RateLimiterConfig {
	return &RateLimiterConfig{
		RequestsPerMinute:   constants.DefaultRateLimitPerMinute,
		Burst:               constants.DefaultRateLimitBurst,
		EnableLocalFallback: true,
		KeyPrefix:           constants.CacheKeyPrefixRateLimit,
	}
}

// Lua script for atomic token bucket operations
const tokenBucketLuaScript = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local requested = tonumber(ARGV[3])
local now = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(bucket[1]) or capacity
local last_refill = tonumber(bucket[2]) or now

-- rate is tokens per second, elapsed is in ms
local elapsed = math.max(0, now - last_refill)
tokens = math.min(tokens + elapsed * rate / 1000, capacity)

local allowed = 0
if tokens >= requested then
    tokens = tokens - requested
    allowed = 1
end

local reset_ms = 0
if tokens < capacity then
    reset_ms = math.ceil((capacity - tokens) / rate * 1000)
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill', now)
redis.call('PEXPIRE', key, reset_ms + 60000)

return {allowed, math.floor(tokens), reset_ms}
`

// NewRedisRateLimiter creates a new Redis-based rate limiter.
func NewRedisRateLimiter(client goredis.UniversalClient, config *RateLimiterConfig, log logger.Logger) (*RedisRateLimiter, error) {
	if client == nil {
		return nil, errors.ErrInvalidRequest("redis client is required")
	}
	if config == nil {
		config = DefaultRateLimiterConfig()
	}
	if config.RequestsPerMinute <= 0 || config.Burst <= 0 {
		return nil, errors.ErrInvalidRequest("rate limit requires positive requests per minute and burst")
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = constants.CacheKeyPrefixRateLimit
	}
	if log == nil {
		log = logger.NewNoopLogger()
	}

	rl := &RedisRateLimiter{
		client: client,
		logger: log.WithComponent("ratelimit"),
		config: config,
		script: goredis.NewScript(tokenBucketLuaScript),
	}
	if config.EnableLocalFallback {
		rl.fallback = NewLocalRateLimiter(config.RequestsPerMinute, config.Burst)
	}

	rl.logger.Info(context.Background(), "Redis rate limiter initialized",
		logger.Int("requests_per_minute", config.RequestsPerMinute),
		logger.Int("burst", config.Burst),
		logger.Bool("local_fallback", config.EnableLocalFallback),
	)
	return rl, nil
}

// Allow checks if a request is allowed under the rate limit.
func (rl *RedisRateLimiter) Allow(ctx context.Context, scope constants.RateLimitScope, identifier string) (bool, int, time.Time, error) {
	now := time.Now()
	ratePerSecond := float64(rl.config.RequestsPerMinute) / 60.0

	res, err := rl.script.Run(ctx, rl.client, []string{rl.buildKey(scope, identifier)},
		rl.config.Burst, ratePerSecond, 1, now.UnixMilli()).Int64Slice()
	if err == nil && len(res) < 3 {
		err = fmt.Errorf("unexpected token bucket reply: %v", res)
	}
	if err != nil {
		if rl.fallback != nil {
			rl.logger.Warn(ctx, "Redis rate limiter unavailable, using local bucket",
				logger.String("scope", string(scope)), logger.Err(err))
			return rl.fallback.Allow(ctx, scope, identifier)
		}
		return false, 0, time.Time{}, errors.ErrServiceUnavailable("rate limiter unavailable").WithCause(err)
	}

	return res[0] == 1, int(res[1]), now.Add(time.Duration(res[2]) * time.Millisecond), nil
}

// ResetLimit clears the bucket for identifier within scope.
func (rl *RedisRateLimiter) ResetLimit(ctx context.Context, scope constants.RateLimitScope, identifier string) error {
	if err := rl.client.Del(ctx, rl.buildKey(scope, identifier)).Err(); err != nil {
		return errors.ErrServiceUnavailable("rate limiter unavailable").WithCause(err)
	}
	if rl.fallback != nil {
		rl.fallback.Reset(scope, identifier)
	}
	return nil
}

// buildKey builds a Redis key for rate limiting.
func (rl *RedisRateLimiter) buildKey(scope constants.RateLimitScope, identifier string) string {
	return fmt.Sprintf("%s:%s:%s", rl.config.KeyPrefix, scope, identifier)
}
