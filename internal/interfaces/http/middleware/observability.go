package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/turtacn/securepay/pkg/constants"
)

// HTTPMetrics is the request-level subset of the Prometheus metrics.
type HTTPMetrics interface {
	ActiveRequestsInc(path, method string)
	ActiveRequestsDec(path, method string)
	ObserveRequestDuration(path, method string, status int, seconds float64)
	IncRequestErrors(path, method string, status int)
}

// ObservabilityMiddleware returns a Gin middleware that integrates Prometheus metrics and OpenTelemetry tracing.
// Incoming trace context is continued when present; the trace ID is echoed in the X-Trace-ID header.
// Metrics are labeled with the route template rather than the raw path to keep cardinality low.
// ObservabilityMiddleware 返回一个集成了 Prometheus 指标和 OpenTelemetry 跟踪的 Gin 中间件。
// 请求携带追踪上下文时沿用该上下文，并通过 X-Trace-ID 响应头返回 Trace ID。
func ObservabilityMiddleware(tracer trace.Tracer, metrics HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "not_found"
		}
		method := c.Request.Method

		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		if sc := span.SpanContext(); sc.IsValid() {
			c.Header(constants.HeaderTraceID, sc.TraceID().String())
		}
		c.Request = c.Request.WithContext(ctx)

		metrics.ActiveRequestsInc(path, method)
		c.Next()
		metrics.ActiveRequestsDec(path, method)

		status := c.Writer.Status()
		metrics.ObserveRequestDuration(path, method, status, time.Since(start).Seconds())
		if status >= 400 {
			metrics.IncRequestErrors(path, method, status)
		}

		span.SetAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", path),
			attribute.Int("http.status_code", status),
			attribute.String("http.client_ip", c.ClientIP()),
		)
		if status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}
	}
}
