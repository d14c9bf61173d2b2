// File: internal/errors/handler.go
package errors

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"securestring.module/internal/audit"
	"securestring.module/internal/colors"
)

// Handler provides centralized error handling functionality
type Handler struct {
	logger *slog.Logger
}

// DefaultHandler is the global error handler instance
var DefaultHandler *Handler

// InitHandler initializes the global error handler
func InitHandler(logger *slog.Logger) {
	DefaultHandler = &Handler{
		logger: logger,
	}
}

// Handle processes an error with logging
func (h *Handler) Handle(err error) {
	if err == nil {
		return
	}

	var sErr *SecureError
	if !AsSecureError(err, &sErr) {
		sErr = Wrap(ErrCodeInternal, "unexpected error occurred", err)
	}

	h.logError(sErr)
}

// HandleWithExit processes an error and exits the program if severity is critical
func (h *Handler) HandleWithExit(err error) {
	if err == nil {
		return
	}

	h.Handle(err)

	if GetSeverity(err) == SeverityCritical {
		os.Exit(1)
	}
}

// logError logs the error with appropriate level based on severity
func (h *Handler) logError(sErr *SecureError) {
	attrs := sErr.ToSlogAttrs()
	ctx := context.Background()

	switch sErr.Severity {
	case SeverityInfo:
		h.logger.LogAttrs(ctx, slog.LevelInfo, "Operation info", attrs...)
	case SeverityWarning:
		h.logger.LogAttrs(ctx, slog.LevelWarn, "Operation warning", attrs...)
	case SeverityError:
		h.logger.LogAttrs(ctx, slog.LevelError, "Operation error", attrs...)
	case SeverityCritical:
		h.logger.LogAttrs(ctx, slog.LevelError, "Critical error", attrs...)
	default:
		h.logger.LogAttrs(ctx, slog.LevelError, "Unknown severity error", attrs...)
	}
}

// FormatForUser formats error for user display
func (h *Handler) FormatForUser(err error) string {
	if err == nil {
		return ""
	}

	var sErr *SecureError
	if !AsSecureError(err, &sErr) {
		return colors.SafeColor(err.Error(), colors.Error)
	}

	var colorFunc func(string) string
	switch sErr.Severity {
	case SeverityInfo:
		colorFunc = colors.Info
	case SeverityWarning:
		colorFunc = colors.Warning
	default:
		colorFunc = colors.Error
	}

	message := sErr.Message
	if sErr.Details != "" {
		message += " (" + sErr.Details + ")"
	}

	return colors.SafeColor(message, colorFunc)
}

// HandleAndFormat handles error and returns formatted message for user
func (h *Handler) HandleAndFormat(err error) string {
	if err == nil {
		return ""
	}

	h.Handle(err)
	return h.FormatForUser(err)
}

// Global convenience functions
func Handle(err error) {
	if DefaultHandler != nil {
		DefaultHandler.Handle(err)
	}
}

func HandleWithExit(err error) {
	if DefaultHandler != nil {
		DefaultHandler.HandleWithExit(err)
	}
}

func FormatForUser(err error) string {
	if DefaultHandler != nil {
		return DefaultHandler.FormatForUser(err)
	}
	if err == nil {
		return ""
	}
	return colors.SafeColor(err.Error(), colors.Error)
}

func HandleAndFormat(err error) string {
	if DefaultHandler != nil {
		return DefaultHandler.HandleAndFormat(err)
	}
	return FormatForUser(err)
}

// AsSecureError checks if error can be converted to SecureError
func AsSecureError(err error, target **SecureError) bool {
	return As(err, target)
}

// As is errors.As, re-exported so callers importing this package under the
// name errors keep access to it.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// WrapCommand wraps command execution with consistent error handling.
// A panic inside fn is converted into a critical error and returned.
func WrapCommand(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var sErr *SecureError
			if e, ok := r.(error); ok && AsSecureError(e, &sErr) {
				err = sErr
			} else {
				err = New(ErrCodeInternal, "unexpected panic occurred").
					WithSeverity(SeverityCritical).
					WithDetails("panic recovered in command execution")
			}
			Handle(err)
		}
	}()

	if err = fn(); err != nil {
		Handle(err)
		return err
	}

	return nil
}

// InitWithAuditLogger initializes error handler with audit logger
func InitWithAuditLogger() error {
	if audit.Logger == nil {
		return New(ErrCodeInternal, "audit logger not initialized")
	}

	InitHandler(audit.Logger)
	return nil
}
