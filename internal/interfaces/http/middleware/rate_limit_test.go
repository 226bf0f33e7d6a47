package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/securepay/internal/application/dto"
	"github.com/turtacn/securepay/internal/config"
	"github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/internal/domain/service/mocks"
	"github.com/turtacn/securepay/internal/infrastructure/ratelimit"
	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/logger"
)

func serve(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:4000"
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.NewNoopLogger()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	newRouter := func(cfg *config.RateLimitConfig, metrics service.Metrics) *gin.Engine {
		rateLimiter, err := ratelimit.NewRedisRateLimiter(redisClient, &ratelimit.RateLimiterConfig{
			RequestsPerMinute: cfg.RequestsPerMin,
			Burst:             cfg.BurstSize,
		}, log)
		require.NoError(t, err)

		router := gin.New()
		router.Use(RateLimitMiddleware(rateLimiter, cfg, metrics, log))
		router.GET("/", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	t.Run("should allow request when limit is not exceeded", func(t *testing.T) {
		mr.FlushAll()
		router := newRouter(&config.RateLimitConfig{Enabled: true, RequestsPerMin: 60, BurstSize: 10}, nil)

		w := serve(router)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "60", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "9", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("should deny request when limit is exceeded", func(t *testing.T) {
		mr.FlushAll()
		metrics := new(mocks.MockMetrics)
		metrics.On("RecordRateLimitHit", string(constants.RateLimitScopeIP)).Return().Once()
		router := newRouter(&config.RateLimitConfig{Enabled: true, RequestsPerMin: 60, BurstSize: 1}, metrics)

		assert.Equal(t, http.StatusOK, serve(router).Code)

		w := serve(router)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))

		var body dto.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, string(constants.ErrCodeRateLimitExceeded), body.Error.Code)
		assert.Equal(t, string(constants.RateLimitScopeIP), body.Error.Details["scope"])
		assert.Equal(t, "60", body.Error.Details["limit"])
		assert.Equal(t, w.Header().Get("Retry-After"), body.Error.Details["retry_after"])
		metrics.AssertExpectations(t)
	})

	t.Run("should not rate limit when disabled", func(t *testing.T) {
		mr.FlushAll()
		router := newRouter(&config.RateLimitConfig{Enabled: false, RequestsPerMin: 1, BurstSize: 1}, nil)

		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, serve(router).Code)
		}
	})
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := new(mocks.MockRateLimiter)
	limiter.On("Allow", mock.Anything, constants.RateLimitScopeIP, "203.0.113.7").
		Return(false, 0, time.Time{}, errors.New("redis down"))

	router := gin.New()
	router.Use(RateLimitMiddleware(limiter, &config.RateLimitConfig{Enabled: true, RequestsPerMin: 1, BurstSize: 1}, nil, nil))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router).Code)
	limiter.AssertExpectations(t)
}
