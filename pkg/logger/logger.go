// Package logger provides structured logging capabilities for the SecurePay risk service.
// It exposes a context-first Logger interface backed by zap, with trace correlation via OpenTelemetry.
package logger

import (
	"context"
	"strings"
	"time"

	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/utils"
)

// ================================================================================
// Logger Interface
// ================================================================================

// Logger defines the interface for structured logging
type Logger interface {
	// Debug logs a debug message
	Debug(ctx context.Context, message string, fields ...Field)

	// Info logs an informational message
	Info(ctx context.Context, message string, fields ...Field)

	// Warn logs a warning message
	Warn(ctx context.Context, message string, fields ...Field)

	// Error logs an error message
	Error(ctx context.Context, message string, err error, fields ...Field)

	// Fatal logs a fatal message and exits the application
	Fatal(ctx context.Context, message string, err error, fields ...Field)

	// WithFields creates a new logger with additional fields
	WithFields(fields ...Field) Logger

	// WithComponent creates a new logger for a specific component
	WithComponent(component string) Logger

	// SetLevel sets the logging level
	SetLevel(level constants.LogLevel)

	// GetLevel returns the current logging level
	GetLevel() constants.LogLevel
}

// ================================================================================
// Field Type for Structured Logging
// ================================================================================

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// F is a shorthand constructor for Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// String creates a string field
func String(key string, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an integer field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates an int64 field
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Float64 creates a float64 field
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a boolean field
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Duration creates a duration field
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Any creates a field with any type
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// ================================================================================
// Sanitization
// ================================================================================

var sensitiveKeys = []string{
	"password",
	"secret",
	"token",
	"api_key",
	"authorization",
	"email",
}

// sanitizeValue masks values whose key looks sensitive
func sanitizeValue(key string, value interface{}) interface{} {
	keyLower := strings.ToLower(key)
	for _, sensitiveKey := range sensitiveKeys {
		if strings.Contains(keyLower, sensitiveKey) {
			if str, ok := value.(string); ok && len(str) > 0 {
				if sensitiveKey == "email" {
					return utils.MaskEmail(str)
				}
				return maskString(str)
			}
			return "***REDACTED***"
		}
	}
	return value
}

// maskString partially masks a string value
func maskString(s string) string {
	if len(s) <= 8 {
		return "***"
	}
	// Show first 4 and last 4 characters
	return s[:4] + "***" + s[len(s)-4:]
}

// ================================================================================
// Global Logger Instance
// ================================================================================

var globalLogger Logger = NewDefaultLogger()

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(l Logger) {
	if l == nil {
		l = NewNoopLogger()
	}
	globalLogger = l
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() Logger {
	return globalLogger
}

// Debug logs a debug message using the global logger
func Debug(ctx context.Context, message string, fields ...Field) {
	globalLogger.Debug(ctx, message, fields...)
}

// Info logs an info message using the global logger
func Info(ctx context.Context, message string, fields ...Field) {
	globalLogger.Info(ctx, message, fields...)
}

// Warn logs a warning message using the global logger
func Warn(ctx context.Context, message string, fields ...Field) {
	globalLogger.Warn(ctx, message, fields...)
}

// Error logs an error message using the global logger
func Error(ctx context.Context, message string, err error, fields ...Field) {
	globalLogger.Error(ctx, message, err, fields...)
}
