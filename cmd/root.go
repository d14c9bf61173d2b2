// File: cmd/root.go
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"securestring.module/internal/audit"
	"securestring.module/internal/config"
	"securestring.module/internal/constants"
	"securestring.module/internal/errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var programmaticMode bool

var rootCmd = &cobra.Command{
	Use:                   constants.AppName,
	Short:                 "Handles secrets in obfuscated memory: prompt, inspect, copy and generate.",
	DisableAutoGenTag:     true,
	DisableSuggestions:    false,
	DisableFlagsInUseLine: false,
	SilenceUsage:          true,
	SilenceErrors:         true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Show help if no subcommand is provided
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config commands must still run against an invalid file so it can be fixed
		if cmd.Parent() == configCmd {
			if err := config.LoadConfig(); err != nil {
				return errors.NewConfigLoadError(viper.ConfigFileUsed(), err)
			}
		} else if err := config.LoadConfigWithValidation(); err != nil {
			return err
		}
		if err := audit.InitLogger(config.Cfg.AuditLog); err != nil {
			return errors.NewFileSystemError("open audit log", config.Cfg.AuditLog, err)
		}
		if err := errors.InitWithAuditLogger(); err != nil {
			return fmt.Errorf("failed to initialize error handler: %w", err)
		}
		if cmd.Use != constants.AppName {
			audit.Logger.Info("Command executed", slog.String("command", cmd.CommandPath()))
		}
		return nil
	},
}

func Execute() error {
	// Отключаем автоматическую генерацию completion
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd.Execute()
}

func init() {
	// Check if programmatic mode is enabled via environment variable
	if os.Getenv(constants.EnvPrefix+"_PROGRAMMATIC") == "1" {
		programmaticMode = true
	}
}
