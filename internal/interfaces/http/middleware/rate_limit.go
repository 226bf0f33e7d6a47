package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/securepay/internal/application/dto"
	"github.com/turtacn/securepay/internal/config"
	"github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/errors"
	"github.com/turtacn/securepay/pkg/logger"
)

// RateLimitMiddleware limits requests per client IP. Limiter errors fail open.
func RateLimitMiddleware(rateLimiter service.RateLimiter, cfg *config.RateLimitConfig, metrics service.Metrics, log logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		identifier := c.ClientIP()
		allowed, remaining, resetAt, err := rateLimiter.Allow(ctx, constants.RateLimitScopeIP, identifier)
		if err != nil {
			log.Error(ctx, "rate limiter failed", err, logger.String("identifier", identifier))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerMin))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			retryAfter := retryAfterSeconds(resetAt)
			if metrics != nil {
				metrics.RecordRateLimitHit(string(constants.RateLimitScopeIP))
			}
			log.Warn(ctx, "rate limit exceeded", logger.String("identifier", identifier), logger.Int("limit", cfg.RequestsPerMin))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			dto.SendError(c, errors.ErrRateLimitExceeded(string(constants.RateLimitScopeIP), cfg.RequestsPerMin).
				WithMetadata("retry_after", retryAfter))
			return
		}

		c.Next()
	}
}

func retryAfterSeconds(resetAt time.Time) int {
	seconds := int(time.Until(resetAt).Round(time.Second).Seconds())
	if seconds < 1 {
		return 1
	}
	return seconds
}

