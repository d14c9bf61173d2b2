// internal/clipboard/clipboard.go
package clipboard

import (
	"context"
	"time"

	"github.com/atotto/clipboard"

	"securestring.module/internal/errors"
	"securestring.module/internal/security"
)

// Backend access, replaced in tests.
var (
	writeAll = clipboard.WriteAll
	readAll  = clipboard.ReadAll
)

// Available reports whether the platform has a usable clipboard utility.
func Available() bool {
	return !clipboard.Unsupported
}

// Copy places the plaintext of secret on the system clipboard.
func Copy(secret *security.SecureString) error {
	if !Available() {
		return errors.NewClipboardError("no clipboard utility found (install xclip, xsel or wl-clipboard)", nil)
	}

	return secret.WithPlaintext(func(plaintext []byte) error {
		if err := writeAll(string(plaintext)); err != nil {
			return errors.NewClipboardError("failed to write to clipboard", err)
		}
		return nil
	})
}

// Clear empties the clipboard unconditionally.
func Clear() error {
	if err := writeAll(""); err != nil {
		return errors.NewClipboardError("failed to clear clipboard", err)
	}
	return nil
}

// ClearIfHolds empties the clipboard only while it still holds secret, so
// anything the user copied afterwards survives.
func ClearIfHolds(secret *security.SecureString) (bool, error) {
	current, err := readAll()
	if err != nil {
		return false, errors.NewClipboardError("failed to read clipboard", err)
	}
	if !secret.EqualsString(current) {
		return false, nil
	}
	return true, Clear()
}

// ClearAfter waits for timeout, or until ctx is done, and then clears the
// clipboard if it still holds secret.
func ClearAfter(ctx context.Context, secret *security.SecureString, timeout time.Duration) (bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
	return ClearIfHolds(secret)
}
