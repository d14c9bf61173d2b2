// File: internal/errors/builders.go
package errors

import (
	"fmt"
	"os"
)

// Configuration Error Builders
func NewConfigLoadError(path string, cause error) *SecureError {
	return Wrap(ErrCodeConfigLoad, "failed to load configuration", cause).
		WithContext("config_path", path).
		WithSeverity(SeverityError)
}

func NewConfigSaveError(path string, cause error) *SecureError {
	return Wrap(ErrCodeConfigSave, "failed to save configuration", cause).
		WithContext("config_path", path).
		WithSeverity(SeverityError)
}

func NewConfigValidationError(field, value, message string) *SecureError {
	return Newf(ErrCodeConfigValidation, "configuration validation failed").
		WithDetails(fmt.Sprintf("field '%s' with value '%s': %s", field, value, message)).
		WithContext("field", field).
		WithContext("value", value).
		WithSeverity(SeverityError)
}

// Secure string Error Builders

// NewCheckoutConflictError reports a checkout requested while another
// plaintext view is still outstanding.
func NewCheckoutConflictError(operation string) *SecureError {
	return Newf(ErrCodeCheckoutConflict, "a plaintext view is already checked out").
		WithDetails("call CheckoutFinished before requesting another view").
		WithContext("operation", operation).
		WithSeverity(SeverityWarning)
}

func NewAllocationError(size int, cause error) *SecureError {
	return Wrap(ErrCodeAllocation, "failed to allocate secure buffer", cause).
		WithContext("size", size).
		WithSeverity(SeverityCritical)
}

func NewInvariantError(message string) *SecureError {
	return New(ErrCodeInvariant, message).
		WithSeverity(SeverityCritical)
}

func NewDestroyedError(operation string) *SecureError {
	return New(ErrCodeDestroyed, "secure string used after Destroy").
		WithContext("operation", operation).
		WithSeverity(SeverityCritical)
}

// Input Error Builders
func NewInvalidInputError(field, reason string) *SecureError {
	return Newf(ErrCodeInvalidInput, "invalid %s", field).
		WithDetails(reason).
		WithContext("field", field).
		WithSeverity(SeverityError)
}

func NewMismatchError() *SecureError {
	return New(ErrCodeMismatch, "secrets do not match").
		WithSeverity(SeverityWarning)
}

// System Error Builders
func NewFileSystemError(operation, path string, cause error) *SecureError {
	sErr := Wrap(ErrCodeFileSystem, fmt.Sprintf("filesystem operation '%s' failed", operation), cause).
		WithContext("operation", operation).
		WithContext("path", path).
		WithSeverity(SeverityError)

	if os.IsPermission(cause) {
		sErr.WithDetails("permission denied")
	} else if os.IsNotExist(cause) {
		sErr.WithDetails("file does not exist")
	}
	return sErr
}

func NewTerminalError(operation string, cause error) *SecureError {
	return Wrap(ErrCodeTerminal, "terminal operation failed", cause).
		WithContext("operation", operation).
		WithSeverity(SeverityError)
}

func NewClipboardError(operation string, cause error) *SecureError {
	return Wrap(ErrCodeClipboard, "clipboard operation failed", cause).
		WithContext("operation", operation).
		WithDetails("make sure a clipboard utility is available").
		WithSeverity(SeverityWarning)
}

func NewTimeoutError(operation string, seconds int) *SecureError {
	return Newf(ErrCodeTimeout, "operation '%s' timed out after %d seconds", operation, seconds).
		WithContext("operation", operation).
		WithSeverity(SeverityWarning)
}

func NewInternalError(message string, cause error) *SecureError {
	return Wrap(ErrCodeInternal, message, cause).
		WithSeverity(SeverityCritical)
}
