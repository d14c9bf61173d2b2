// File: cmd/copy.go
package cmd

import (
	"fmt"
	"log/slog"

	"securestring.module/internal/audit"
	"securestring.module/internal/clipboard"
	"securestring.module/internal/colors"
	"securestring.module/internal/config"
	"securestring.module/internal/errors"
	"securestring.module/internal/security"
	"securestring.module/internal/shutdown"

	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Prompts for a secret and places it on the clipboard for a limited time.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.WrapCommand(func() error {
			secret, err := askForSecretInput("Secret")
			if err != nil {
				return err
			}
			defer security.Release(secret)

			return copyWithTimeout(cmd, secret, "copy")
		})
	},
}

// copyWithTimeout hands secret to the clipboard and blocks until the
// configured timeout, or shutdown, clears it again.
func copyWithTimeout(cmd *cobra.Command, secret *security.SecureString, command string) error {
	if programmaticMode {
		return fmt.Errorf("clipboard hand-off is not available in programmatic mode")
	}

	shutdown.RegisterClipboardGlobal("clipboard: " + command)
	if err := clipboard.Copy(secret); err != nil {
		return err
	}

	timeout := config.GetClipboardTimeout()
	audit.Logger.Warn("Secret copied to clipboard",
		slog.String("command", command),
		slog.Duration("timeout", timeout))

	fmt.Fprintln(cmd.OutOrStdout(), colors.SafeColor(
		fmt.Sprintf("✅ Secret copied to clipboard. It will be cleared in %d seconds (Ctrl+C clears it now).", int(timeout.Seconds())),
		colors.Success))

	cleared, err := clipboard.ClearAfter(shutdown.GetManager().Context(), secret, timeout)
	if err != nil {
		return err
	}
	// Whatever is on the clipboard now belongs to the user.
	shutdown.UnregisterClipboardGlobal()
	if cleared {
		fmt.Fprintln(cmd.OutOrStdout(), colors.SafeColor("Clipboard cleared.", colors.Dim))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(copyCmd)
}
