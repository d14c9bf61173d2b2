// File: internal/errors/types.go
package errors

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigLoad       ErrorCode = "CONFIG_LOAD_FAILED"
	ErrCodeConfigSave       ErrorCode = "CONFIG_SAVE_FAILED"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION_FAILED"

	// Secure string errors
	ErrCodeCheckoutConflict ErrorCode = "CHECKOUT_CONFLICT"
	ErrCodeAllocation       ErrorCode = "ALLOCATION_FAILED"
	ErrCodeInvariant        ErrorCode = "INVARIANT_VIOLATION"
	ErrCodeDestroyed        ErrorCode = "SECURE_STRING_DESTROYED"

	// Input errors
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMismatch     ErrorCode = "SECRET_MISMATCH"

	// System errors
	ErrCodeFileSystem ErrorCode = "FILESYSTEM_ERROR"
	ErrCodeTerminal   ErrorCode = "TERMINAL_ERROR"
	ErrCodeClipboard  ErrorCode = "CLIPBOARD_ERROR"
	ErrCodeTimeout    ErrorCode = "TIMEOUT"

	// Generic errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "INFO"
	SeverityWarning  ErrorSeverity = "WARNING"
	SeverityError    ErrorSeverity = "ERROR"
	SeverityCritical ErrorSeverity = "CRITICAL"
)

// SecureError represents a standardized error structure
type SecureError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Severity ErrorSeverity          `json:"severity"`
	Context  map[string]interface{} `json:"context,omitempty"`
	Cause    error                  `json:"-"` // Don't serialize the underlying error
}

// Error implements the error interface
func (e *SecureError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping
func (e *SecureError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a specific code
func (e *SecureError) Is(target error) bool {
	if targetErr, ok := target.(*SecureError); ok {
		return e.Code == targetErr.Code
	}
	return false
}

// WithContext adds context information to the error
func (e *SecureError) WithContext(key string, value interface{}) *SecureError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// ToSlogAttrs converts error context to slog attributes
func (e *SecureError) ToSlogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("error_code", string(e.Code)),
		slog.String("error_message", e.Message),
		slog.String("severity", string(e.Severity)),
	}

	if e.Details != "" {
		attrs = append(attrs, slog.String("details", e.Details))
	}

	if e.Cause != nil {
		attrs = append(attrs, slog.String("cause", e.Cause.Error()))
	}

	for key, value := range e.Context {
		attrs = append(attrs, slog.Any(fmt.Sprintf("ctx_%s", key), value))
	}

	return attrs
}

// New creates a new SecureError
func New(code ErrorCode, message string) *SecureError {
	return &SecureError{
		Code:     code,
		Message:  message,
		Severity: SeverityError,
		Context:  make(map[string]interface{}),
	}
}

// Newf creates a new SecureError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SecureError {
	return &SecureError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityError,
		Context:  make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with SecureError
func Wrap(code ErrorCode, message string, cause error) *SecureError {
	return &SecureError{
		Code:     code,
		Message:  message,
		Severity: SeverityError,
		Context:  make(map[string]interface{}),
		Cause:    cause,
	}
}

// Wrapf wraps an existing error with formatted message
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *SecureError {
	return &SecureError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityError,
		Context:  make(map[string]interface{}),
		Cause:    cause,
	}
}

// WithSeverity sets the severity level
func (e *SecureError) WithSeverity(severity ErrorSeverity) *SecureError {
	e.Severity = severity
	return e
}

// WithDetails adds detailed information
func (e *SecureError) WithDetails(details string) *SecureError {
	e.Details = details
	return e
}

// IsCode checks if err, or anything it wraps, carries code
func IsCode(err error, code ErrorCode) bool {
	var sErr *SecureError
	if errors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}

// GetCode extracts error code from error
func GetCode(err error) ErrorCode {
	var sErr *SecureError
	if errors.As(err, &sErr) {
		return sErr.Code
	}
	return ErrCodeInternal
}

// GetSeverity extracts severity from error
func GetSeverity(err error) ErrorSeverity {
	var sErr *SecureError
	if errors.As(err, &sErr) {
		return sErr.Severity
	}
	return SeverityError
}
