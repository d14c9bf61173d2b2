// File: cmd/check.go
package cmd

import (
	"fmt"
	"log/slog"

	"securestring.module/internal/audit"
	"securestring.module/internal/colors"
	"securestring.module/internal/errors"
	"securestring.module/internal/security"

	"github.com/spf13/cobra"
)

var checkConstantTime bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Prompts for a secret twice and reports whether both entries match.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.WrapCommand(func() error {
			first, err := askForSecretInput("Secret")
			if err != nil {
				return err
			}
			defer security.Release(first)

			second, err := askForSecretInput("Confirm secret")
			if err != nil {
				return err
			}
			defer security.Release(second)

			return reportMatch(cmd, first, second)
		})
	},
}

// reportMatch prints length, checksum and match status of two secrets.
func reportMatch(cmd *cobra.Command, first, second *security.SecureString) error {
	var match bool
	if checkConstantTime {
		match = first.ConstantTimeEquals(second)
	} else {
		match = first.Equals(second)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Length:   %d\n", first.Len())
	fmt.Fprintf(out, "Checksum: %08x\n", first.Checksum())

	audit.Logger.Info("Secret confirmation checked",
		slog.String("command", "check"),
		slog.Bool("constant_time", checkConstantTime),
		slog.Bool("match", match))

	if !match {
		fmt.Fprintln(out, colors.SafeColor("❌ Secrets do not match", colors.Error))
		return errors.NewMismatchError()
	}
	fmt.Fprintln(out, colors.SafeColor("✅ Secrets match", colors.Success))
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkConstantTime, "constant-time", false, "Compare byte by byte in constant time instead of by checksum.")
}
