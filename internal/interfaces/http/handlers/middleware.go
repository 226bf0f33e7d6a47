package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/securepay/internal/application/dto"
	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/errors"
	"github.com/turtacn/securepay/pkg/logger"
)

// Middleware groups the request-scoped gin middleware shared by all routes.
type Middleware struct {
	logger logger.Logger
}

// NewMiddleware creates a new Middleware.
func NewMiddleware(log logger.Logger) *Middleware {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Middleware{logger: log.WithComponent("http")}
}

// RequestID propagates the X-Request-ID header, generating one when absent,
// and stores it in both the gin and request contexts.
func (m *Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(string(constants.ContextKeyRequestID), requestID)
		c.Header(constants.HeaderRequestID, requestID)

		ctx := context.WithValue(c.Request.Context(), constants.ContextKeyRequestID, requestID)
		ctx = context.WithValue(ctx, constants.ContextKeyClientIP, c.ClientIP())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Logger logs every request once it completes.
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.Int64("latency_ms", time.Since(start).Milliseconds()),
			logger.String("client_ip", c.ClientIP()),
		}
		switch {
		case c.Writer.Status() >= 500:
			m.logger.Warn(c.Request.Context(), "Request failed", fields...)
		default:
			m.logger.Info(c.Request.Context(), "Request processed", fields...)
		}
	}
}

// Recovery converts panics into a 500 response in the API envelope.
func (m *Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error(c.Request.Context(), "Panic recovered", fmt.Errorf("panic: %v", r),
					logger.String("path", c.Request.URL.Path))
				dto.SendError(c, errors.ErrInternal("internal server error"))
			}
		}()
		c.Next()
	}
}
