// File: cmd/config.go
package cmd

import (
	"fmt"
	"strings"

	"securestring.module/internal/config"
	"securestring.module/internal/errors"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manages the application settings.",
}

var configSetCmd = &cobra.Command{
	Use:   "set <KEY> <VALUE>",
	Short: "Sets a value for a configuration key.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.ToLower(args[0])
		value := args[1]

		if err := config.Set(key, value); err != nil {
			return err
		}
		if err := config.ValidateConfig(&config.Cfg); err != nil {
			var cfgErr *config.ConfigError
			if errors.As(err, &cfgErr) {
				return errors.NewConfigValidationError(cfgErr.Field, cfgErr.Value, cfgErr.Message)
			}
			return err
		}
		if err := config.SaveConfig(); err != nil {
			return errors.NewConfigSaveError("config.json", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Configuration updated: %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Shows the value of a configuration key, or of every key.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := config.Keys()
		if len(args) == 1 {
			keys = []string{strings.ToLower(args[0])}
		}

		for _, key := range keys {
			value, err := config.Get(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", key, value)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
}
