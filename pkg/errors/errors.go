package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies a failure by how the engine reacts to it.
type ErrorType string

const (
	// ErrorTypeParse marks a record whose fields or timestamp could not be
	// extracted. Isolated to that record: logged, skipped, never retried.
	ErrorTypeParse ErrorType = "parse"

	// ErrorTypeSurface marks a navigation or interaction failure on the
	// render surface, including timeouts. Fails the current fetch attempt.
	ErrorTypeSurface ErrorType = "surface"

	// ErrorTypeExhausted marks a detail fetch that failed on every attempt.
	ErrorTypeExhausted ErrorType = "exhausted_retries"

	// ErrorTypeConfig marks invalid configuration, fatal before a run starts.
	ErrorTypeConfig ErrorType = "config"

	ErrorTypeUnknown ErrorType = "unknown"
)

// Error carries the failure class alongside the message and, when the
// failure wraps a lower-level one, its cause.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewParseError reports a single malformed record.
func NewParseError(format string, args ...interface{}) *Error {
	return &Error{Type: ErrorTypeParse, Message: fmt.Sprintf(format, args...)}
}

// NewSurfaceError wraps a render-surface failure. cause may be nil.
func NewSurfaceError(cause error, format string, args ...interface{}) *Error {
	return &Error{Type: ErrorTypeSurface, Message: fmt.Sprintf(format, args...), Err: cause}
}

// NewExhaustedError records that every attempt of a detail fetch failed.
// cause is the error from the final attempt.
func NewExhaustedError(cause error, format string, args ...interface{}) *Error {
	return &Error{Type: ErrorTypeExhausted, Message: fmt.Sprintf(format, args...), Err: cause}
}

// NewConfigError reports an invalid configuration value.
func NewConfigError(format string, args ...interface{}) *Error {
	return &Error{Type: ErrorTypeConfig, Message: fmt.Sprintf(format, args...)}
}

// TypeOf extracts the ErrorType from err, unwrapping as needed.
// Errors that never passed through this package report ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// IsParse reports whether err is (or wraps) a parse error.
func IsParse(err error) bool {
	return TypeOf(err) == ErrorTypeParse
}

// IsSurface reports whether err is (or wraps) a surface error.
func IsSurface(err error) bool {
	return TypeOf(err) == ErrorTypeSurface
}

// IsExhausted reports whether err is (or wraps) an exhausted-retries error.
func IsExhausted(err error) bool {
	return TypeOf(err) == ErrorTypeExhausted
}

// IsRetryable reports whether an error of the given type is worth another
// attempt. Surface failures are transient; everything classified is not.
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeSurface, ErrorTypeUnknown:
		return true
	case ErrorTypeParse, ErrorTypeExhausted, ErrorTypeConfig:
		return false
	default:
		return false
	}
}
