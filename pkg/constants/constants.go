// Package constants defines system-wide constants for the SecurePay risk service.
// This package provides type-safe constant definitions used across all modules.
package constants

import "time"

// ServiceName is the name reported to tracing and logs.
const ServiceName = "securepay-risk-service"

// ================================================================================
// Error Code Constants
// ================================================================================

// ErrorCode represents a machine-readable error code returned to clients
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates a malformed or unparsable request
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeValidationFailed indicates one or more fields failed validation
	ErrCodeValidationFailed ErrorCode = "validation_failed"

	// ErrCodeInvalidDomain indicates the supplied domain name is empty or malformed
	ErrCodeInvalidDomain ErrorCode = "invalid_domain"

	// ErrCodeNotFound indicates the requested resource does not exist
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeRateLimitExceeded indicates the caller exceeded its request budget
	ErrCodeRateLimitExceeded ErrorCode = "rate_limit_exceeded"

	// ErrCodeInternal indicates an unexpected server-side condition
	ErrCodeInternal ErrorCode = "internal_error"

	// ErrCodeServiceUnavailable indicates a dependency is temporarily unavailable
	ErrCodeServiceUnavailable ErrorCode = "service_unavailable"
)

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey is the type used for values stored in a context.Context
type ContextKey string

const (
	// ContextKeyRequestID carries the per-request correlation ID
	ContextKeyRequestID ContextKey = "request_id"

	// ContextKeyTraceID carries the trace ID when no span is present
	ContextKeyTraceID ContextKey = "trace_id"

	// ContextKeyClientIP carries the caller IP address
	ContextKeyClientIP ContextKey = "client_ip"
)

// HTTP headers
const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// ================================================================================
// Log Levels
// ================================================================================

// LogLevel represents logging verbosity
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// String returns the lowercase level name
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	case LogLevelFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ParseLogLevel converts a level name into a LogLevel. The second value
// reports whether the name was recognised.
func ParseLogLevel(s string) (LogLevel, bool) {
	switch s {
	case "debug":
		return LogLevelDebug, true
	case "info":
		return LogLevelInfo, true
	case "warn", "warning":
		return LogLevelWarn, true
	case "error":
		return LogLevelError, true
	case "fatal":
		return LogLevelFatal, true
	default:
		return LogLevelInfo, false
	}
}

// ================================================================================
// Cache Constants
// ================================================================================

const (
	// CacheKeyPrefixAssessment prefixes memoized assessment results
	CacheKeyPrefixAssessment = "securepay:assessment"

	// CacheKeyPrefixRateLimit prefixes rate limit buckets
	CacheKeyPrefixRateLimit = "securepay:ratelimit"

	// DefaultCacheTTL is how long memoized results live in the local cache
	DefaultCacheTTL = 5 * time.Minute

	// DefaultCacheCleanupInterval is the go-cache janitor interval
	DefaultCacheCleanupInterval = 10 * time.Minute

	// DefaultRemoteCacheTTL is how long memoized results live in Redis
	DefaultRemoteCacheTTL = 30 * time.Minute
)

// ================================================================================
// Rate Limit Constants
// ================================================================================

// RateLimitScope identifies what a rate limit bucket is keyed on
type RateLimitScope string

const (
	RateLimitScopeIP     RateLimitScope = "ip"
	RateLimitScopeGlobal RateLimitScope = "global"
)

const (
	// DefaultRateLimitPerMinute is the default request budget per client
	DefaultRateLimitPerMinute = 120

	// DefaultRateLimitBurst is the default burst allowance for the local limiter
	DefaultRateLimitBurst = 20
)

// ================================================================================
// Audit Event Types
// ================================================================================

// AuditEventType names an assessment event emitted to the audit sink
type AuditEventType string

const (
	AuditEventSignupAssessed AuditEventType = "assessment.signup"
	AuditEventDomainAssessed AuditEventType = "assessment.domain"
	AuditEventQuoteIssued    AuditEventType = "plan.quote"
)

// ================================================================================
// Server Defaults
// ================================================================================

const (
	DefaultHTTPPort        = 8080
	DefaultGRPCPort        = 50051
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	APIVersionPrefix       = "/api/v1"
)

// Environment names
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)
