package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unified error code across the framework.
type ErrorCode string

// Task routing error codes
const (
	ErrMalformedTask   ErrorCode = "MALFORMED_TASK"
	ErrUnsupportedType ErrorCode = "UNSUPPORTED_TYPE"
	ErrNotImplemented  ErrorCode = "NOT_IMPLEMENTED"
)

// Workflow error codes
const (
	ErrMissingDependency ErrorCode = "MISSING_DEPENDENCY"
	ErrAgentNotFound     ErrorCode = "AGENT_NOT_FOUND"
	ErrTemplateNotFound  ErrorCode = "TEMPLATE_NOT_FOUND"
)

// Collaborator error codes
const (
	ErrProviderError ErrorCode = "PROVIDER_ERROR"
	ErrMemoryError   ErrorCode = "MEMORY_ERROR"
	ErrInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Error represents a structured error with code, message, and an optional cause.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
	Cause     error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf creates a new Error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithRetryable marks the error as retryable.
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}

// GetErrorCode extracts the error code from an error, walking the wrap chain.
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsErrorCode reports whether err carries the given error code.
func IsErrorCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}
