// File: cmd/lines.go
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"securestring.module/internal/audit"
	"securestring.module/internal/checksum"
	"securestring.module/internal/errors"
	"securestring.module/internal/security"

	"github.com/spf13/cobra"
)

const readChunkSize = 4096

var linesReveal bool

var linesCmd = &cobra.Command{
	Use:   "lines [FILE]",
	Short: "Loads a secret file into obfuscated memory and lists its lines.",
	Long: `Reads FILE (or stdin) into obfuscated memory in small chunks, wiping each
chunk once absorbed, then walks it line by line. Line terminators are
"\n", "\r" and "\r\n". By default only the length and checksum of each line
are shown; --reveal prints the contents as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.WrapCommand(func() error {
			var (
				in   io.Reader = cmd.InOrStdin()
				name           = "stdin"
				size int
			)
			if len(args) == 1 {
				name = args[0]
				file, err := os.Open(name)
				if err != nil {
					return errors.NewFileSystemError("open", name, err)
				}
				defer file.Close()
				if info, err := file.Stat(); err == nil {
					size = int(info.Size())
				}
				in = file
			}

			// stdin may be the data itself, so only ask when reading a file
			if linesReveal && len(args) == 1 && !programmaticMode {
				if !askForConfirmation("Print secret lines to the terminal?") {
					linesReveal = false
				}
			}

			secret := newSecret("lines: " + name)
			defer security.Release(secret)
			secret.Reserve(size)

			if err := readAllInto(in, secret); err != nil {
				return errors.NewFileSystemError("read", name, err)
			}

			audit.Logger.Info("Secret file inspected",
				slog.String("command", "lines"),
				slog.String("source", name),
				slog.Bool("reveal", linesReveal))

			return printLines(cmd.OutOrStdout(), secret, linesReveal)
		})
	},
}

// readAllInto appends everything from r to secret, wiping the read buffer
// after each chunk.
func readAllInto(r io.Reader, secret *security.SecureString) error {
	chunk := make([]byte, readChunkSize)
	defer security.SecureClearBytes(chunk)

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			secret.AppendBytes(chunk[:n], n, true)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// printLines writes one row per line of secret: number, length, checksum and
// optionally the line itself.
func printLines(out io.Writer, secret *security.SecureString, reveal bool) error {
	return secret.EachLine(func(number int, line []byte) error {
		if _, err := fmt.Fprintf(out, "%4d  len=%-5d crc=%08x", number, len(line), checksum.Sum(line)); err != nil {
			return err
		}
		if reveal {
			if _, err := io.WriteString(out, "  "); err != nil {
				return err
			}
			if _, err := out.Write(line); err != nil {
				return err
			}
		}
		_, err := io.WriteString(out, "\n")
		return err
	})
}

func init() {
	rootCmd.AddCommand(linesCmd)
	linesCmd.Flags().BoolVar(&linesReveal, "reveal", false, "Print the content of each line.")
}
