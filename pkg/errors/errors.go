// Package errors defines custom error types and error handling utilities for the SecurePay risk service.
// This package provides structured error types that map to API error codes and HTTP status codes.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/turtacn/securepay/pkg/constants"
)

// ================================================================================
// Base Error Interface
// ================================================================================

// ServiceError represents a structured error with additional metadata
type ServiceError interface {
	error

	// Code returns the API error code
	Code() constants.ErrorCode

	// HTTPStatus returns the HTTP status code
	HTTPStatus() int

	// Description returns a human-readable description
	Description() string

	// Unwrap returns the underlying error for error chain support
	Unwrap() error

	// WithCause adds a cause error to the error chain
	WithCause(cause error) ServiceError

	// WithMetadata adds additional context metadata
	WithMetadata(key string, value interface{}) ServiceError

	// Metadata returns all metadata
	Metadata() map[string]interface{}
}

// ================================================================================
// Base Error Implementation
// ================================================================================

type baseError struct {
	code        constants.ErrorCode
	httpStatus  int
	description string
	message     string
	cause       error
	metadata    map[string]interface{}
}

// Error implements the error interface
func (e *baseError) Error() string {
	if e.message != "" {
		return e.message
	}
	return e.description
}

func (e *baseError) Code() constants.ErrorCode { return e.code }

func (e *baseError) HTTPStatus() int { return e.httpStatus }

func (e *baseError) Description() string { return e.description }

func (e *baseError) Unwrap() error { return e.cause }

// WithCause adds a cause error to the error chain
func (e *baseError) WithCause(cause error) ServiceError {
	e.cause = cause
	return e
}

// WithMetadata adds additional context metadata
func (e *baseError) WithMetadata(key string, value interface{}) ServiceError {
	if e.metadata == nil {
		e.metadata = make(map[string]interface{})
	}
	e.metadata[key] = value
	return e
}

// Metadata returns all metadata
func (e *baseError) Metadata() map[string]interface{} {
	return e.metadata
}

// NewError creates a new ServiceError with the specified parameters
func NewError(code constants.ErrorCode, httpStatus int, description string, message string) ServiceError {
	return &baseError{
		code:        code,
		httpStatus:  httpStatus,
		description: description,
		message:     message,
		metadata:    make(map[string]interface{}),
	}
}

// ================================================================================
// Predefined Error Constructors
// ================================================================================

// ErrInvalidRequest creates an invalid_request error
func ErrInvalidRequest(message string) ServiceError {
	return NewError(
		constants.ErrCodeInvalidRequest,
		http.StatusBadRequest,
		"The request is missing a required parameter, includes an invalid parameter value, or is otherwise malformed.",
		message,
	)
}

// ErrValidation creates a validation_failed error carrying per-field messages
func ErrValidation(fields map[string]string) ServiceError {
	err := NewError(
		constants.ErrCodeValidationFailed,
		http.StatusBadRequest,
		"One or more fields failed validation.",
		"validation failed",
	)
	for k, v := range fields {
		err.WithMetadata(k, v)
	}
	return err
}

// ErrInvalidDomain creates an invalid_domain error with the user-facing message
func ErrInvalidDomain(message string, domain string) ServiceError {
	return NewError(
		constants.ErrCodeInvalidDomain,
		http.StatusBadRequest,
		"The domain name is empty or malformed.",
		message,
	).WithMetadata("domain", domain)
}

// ErrNotFound creates a not_found error for a resource kind and identifier
func ErrNotFound(kind, id string) ServiceError {
	return NewError(
		constants.ErrCodeNotFound,
		http.StatusNotFound,
		"The requested resource does not exist.",
		fmt.Sprintf("%s not found: %s", kind, id),
	).WithMetadata(kind, id)
}

// ErrRateLimitExceeded creates a rate limit exceeded error
func ErrRateLimitExceeded(scope string, limit int) ServiceError {
	return NewError(
		constants.ErrCodeRateLimitExceeded,
		http.StatusTooManyRequests,
		"Rate limit exceeded. Please try again later.",
		fmt.Sprintf("Rate limit exceeded for scope '%s': %d requests", scope, limit),
	).WithMetadata("scope", scope).
		WithMetadata("limit", limit)
}

// ErrInternal creates an internal_error error
func ErrInternal(message string) ServiceError {
	return NewError(
		constants.ErrCodeInternal,
		http.StatusInternalServerError,
		"The server encountered an unexpected condition that prevented it from fulfilling the request.",
		message,
	)
}

// ErrServiceUnavailable creates a service_unavailable error
func ErrServiceUnavailable(message string) ServiceError {
	return NewError(
		constants.ErrCodeServiceUnavailable,
		http.StatusServiceUnavailable,
		"The server is currently unable to handle the request due to a temporary overloading or maintenance.",
		message,
	)
}

// ErrCacheConnectionFailed creates a cache connection failed error
func ErrCacheConnectionFailed(reason string) ServiceError {
	return ErrServiceUnavailable(fmt.Sprintf("Failed to connect to cache: %s", reason)).
		WithMetadata("reason", reason)
}

// ErrKafkaConnectionFailed creates a Kafka connection failed error
func ErrKafkaConnectionFailed(reason string) ServiceError {
	return ErrServiceUnavailable(fmt.Sprintf("Failed to connect to Kafka: %s", reason)).
		WithMetadata("reason", reason)
}

// ErrInvalidParameterFormat creates an invalid parameter format error
func ErrInvalidParameterFormat(paramName string, expectedFormat string) ServiceError {
	return ErrInvalidRequest(fmt.Sprintf("Invalid format for parameter '%s': expected %s", paramName, expectedFormat)).
		WithMetadata("parameter", paramName).
		WithMetadata("expected_format", expectedFormat)
}

// ================================================================================
// Error Utilities
// ================================================================================

// AsServiceError finds the first ServiceError in err's chain
func AsServiceError(err error) (ServiceError, bool) {
	var svcErr ServiceError
	if stderrors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// WrapError wraps a generic error into a ServiceError
func WrapError(err error, code constants.ErrorCode, message string) ServiceError {
	return NewError(code, statusForCode(code), err.Error(), message).WithCause(err)
}

func statusForCode(code constants.ErrorCode) int {
	switch code {
	case constants.ErrCodeInvalidRequest, constants.ErrCodeValidationFailed, constants.ErrCodeInvalidDomain:
		return http.StatusBadRequest
	case constants.ErrCodeNotFound:
		return http.StatusNotFound
	case constants.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case constants.ErrCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// IsNotFoundError checks if an error is a not found error.
func IsNotFoundError(err error) bool {
	if svcErr, ok := AsServiceError(err); ok {
		return svcErr.Code() == constants.ErrCodeNotFound
	}
	return false
}

// IsRateLimitError checks if an error is related to rate limiting
func IsRateLimitError(err error) bool {
	if svcErr, ok := AsServiceError(err); ok {
		return svcErr.HTTPStatus() == http.StatusTooManyRequests
	}
	return false
}

// ShouldLogError determines if an error should be logged based on severity
func ShouldLogError(err error) bool {
	if svcErr, ok := AsServiceError(err); ok {
		// Don't log client errors (4xx) except rate limiting
		status := svcErr.HTTPStatus()
		return status >= 500 || status == http.StatusTooManyRequests
	}
	return true
}
