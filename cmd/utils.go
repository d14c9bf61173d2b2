// cmd/utils.go
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"securestring.module/internal/audit"
	"securestring.module/internal/colors"
	"securestring.module/internal/config"
	"securestring.module/internal/errors"
	"securestring.module/internal/security"
)

// secureOptions builds SecureString options from the loaded configuration.
func secureOptions() []security.Option {
	opts := []security.Option{
		security.WithThreadSafety(config.Cfg.ThreadSafe),
		security.WithLogger(audit.Logger),
	}
	if config.Cfg.LockMemory {
		opts = append(opts, security.WithAllocator(security.NewMappedAllocator()))
	}
	return opts
}

// newSecret returns an empty SecureString sized from the configuration and
// registered for destruction at shutdown.
func newSecret(description string) *security.SecureString {
	size := config.Cfg.DefaultAllocated
	if size <= 0 {
		size = security.DefaultAllocated()
	}
	return security.Track(security.NewSize(size, secureOptions()...), description)
}

// askForSecretInput reads a secret without echo straight into a
// SecureString; the raw bytes are wiped once absorbed. When stdin is not a
// terminal a single line is read instead.
func askForSecretInput(prompt string) (*security.SecureString, error) {
	fd := int(os.Stdin.Fd())
	secret := newSecret("user input: " + prompt)

	if !term.IsTerminal(fd) {
		if err := readLineInto(os.Stdin, secret); err != nil {
			security.Release(secret)
			return nil, err
		}
		return secret, nil
	}

	fmt.Fprint(os.Stderr, colors.SafeColor(prompt+": ", colors.Info))
	bytePassword, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // New line after password input
	if err != nil {
		security.Release(secret)
		return nil, errors.NewTerminalError("read password", err)
	}

	secret.AssignBytes(bytePassword, len(bytePassword), true)
	return secret, nil
}

// readLineInto appends one line from r to secret, a byte at a time, and
// drops the line terminator. Nothing is buffered outside secret.
func readLineInto(r io.Reader, secret *security.SecureString) error {
	var buf [1]byte
	pendingCR := false
	for {
		n, err := r.Read(buf[:])
		if n == 1 {
			c := buf[0]
			if c == '\n' {
				buf[0] = 0
				return nil
			}
			if pendingCR {
				pendingCR = false
				secret.AppendBytes([]byte{'\r'}, 1, false)
			}
			if c == '\r' {
				pendingCR = true
			} else {
				secret.AppendBytes(buf[:], 1, true)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.NewInvalidInputError("secret input", "failed to read from stdin")
		}
	}
}

func askForConfirmation(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
