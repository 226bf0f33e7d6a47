package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/pkg/constants"
)

var _ service.RateLimiter = (*LocalRateLimiter)(nil)

// LocalRateLimiter keeps one in-process token bucket per scope and identifier.
// It serves single-instance deployments and the Redis fallback path.
type LocalRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*localEntry
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalRateLimiter creates a limiter refilling requestsPerMinute tokens per
// minute up to burst. Non-positive values use the defaults.
func NewLocalRateLimiter(requestsPerMinute, burst int) *LocalRateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = constants.DefaultRateLimitPerMinute
	}
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}
	return &LocalRateLimiter{
		limiters: make(map[string]*localEntry),
		limit:    rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow consumes one token for identifier within scope.
func (l *LocalRateLimiter) Allow(_ context.Context, scope constants.RateLimitScope, identifier string) (bool, int, time.Time, error) {
	now := l.now()
	limiter := l.get(string(scope)+":"+identifier, now)

	allowed := limiter.AllowN(now, 1)
	tokens := limiter.TokensAt(now)
	return allowed, remainingTokens(tokens), now.Add(l.refillDuration(tokens)), nil
}

// Cleanup drops buckets idle for longer than maxIdle and returns how many were removed.
func (l *LocalRateLimiter) Cleanup(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-maxIdle)
	removed := 0
	for key, e := range l.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(l.limiters, key)
			removed++
		}
	}
	return removed
}

// Reset removes the bucket for identifier within scope.
func (l *LocalRateLimiter) Reset(scope constants.RateLimitScope, identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.limiters, string(scope)+":"+identifier)
}

func (l *LocalRateLimiter) get(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.limiters[key]
	if !ok {
		e = &localEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// refillDuration is the time until the bucket is full again.
func (l *LocalRateLimiter) refillDuration(tokens float64) time.Duration {
	missing := float64(l.burst) - tokens
	if missing <= 0 || l.limit <= 0 {
		return 0
	}
	return time.Duration(missing / float64(l.limit) * float64(time.Second))
}

func remainingTokens(tokens float64) int {
	if tokens <= 0 {
		return 0
	}
	return int(math.Floor(tokens))
}
