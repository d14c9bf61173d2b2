// File: cmd/generate.go
package cmd

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"

	"securestring.module/internal/audit"
	"securestring.module/internal/constants"
	"securestring.module/internal/errors"
	"securestring.module/internal/security"
)

var (
	generateWords int
	generateCopy  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates a BIP-39 mnemonic inside obfuscated memory.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.WrapCommand(func() error {
			mnemonic, err := generateMnemonic(generateWords)
			if err != nil {
				return err
			}
			defer security.Release(mnemonic)

			audit.Logger.Warn("Mnemonic generated",
				slog.String("command", "generate"),
				slog.Int("words", generateWords),
				slog.Bool("copy", generateCopy))

			if generateCopy {
				return copyWithTimeout(cmd, mnemonic, "generate")
			}

			out := cmd.OutOrStdout()
			return mnemonic.WithPlaintext(func(plaintext []byte) error {
				if _, err := out.Write(plaintext); err != nil {
					return err
				}
				_, err := fmt.Fprintln(out)
				return err
			})
		})
	},
}

// generateMnemonic returns a fresh mnemonic of the given word count held in
// a tracked SecureString.
func generateMnemonic(words int) (*security.SecureString, error) {
	if !slices.Contains(constants.MnemonicWordCounts, words) {
		return nil, errors.NewInvalidInputError("word count",
			fmt.Sprintf("must be one of %v", constants.MnemonicWordCounts))
	}

	// 12 words carry 128 bits of entropy, each further 3 words add 32.
	entropy, err := bip39.NewEntropy(words / 3 * 32)
	if err != nil {
		return nil, errors.NewInternalError("failed to generate entropy", err)
	}
	defer security.SecureClearBytes(entropy)

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, errors.NewInternalError("failed to build mnemonic", err)
	}

	mnemonic := newSecret("generated mnemonic")
	mnemonic.AssignString(phrase)

	valid := false
	_ = mnemonic.WithPlaintext(func(plaintext []byte) error {
		valid = bip39.IsMnemonicValid(string(plaintext))
		return nil
	})
	if !valid {
		security.Release(mnemonic)
		return nil, errors.NewInternalError("generated mnemonic failed validation", nil)
	}
	return mnemonic, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVarP(&generateWords, "words", "w", 24, "Number of words: 12, 15, 18, 21 or 24.")
	generateCmd.Flags().BoolVarP(&generateCopy, "copy", "c", false, "Copy the mnemonic to the clipboard instead of printing it.")
}
