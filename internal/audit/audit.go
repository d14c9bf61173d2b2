// File: internal/audit/audit.go
package audit

import (
	"io"
	"log/slog"
	"os"
)

var Logger *slog.Logger

// InitLogger initializes the logger for auditing purposes.
// An empty path discards audit records.
func InitLogger(path string) error {
	if path == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return nil
	}

	// Open or create the log file for appending.
	logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	// Create a logger that writes JSON to the specified file.
	Logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return nil
}
