package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"securestring.module/internal/constants"
	"securestring.module/internal/errors"
)

// ValidateConfig checks every configured value
// Returns a *ConfigError describing the first invalid field.
func ValidateConfig(cfg *Config) error {
	if cfg.DefaultAllocated < constants.MinAllocated || cfg.DefaultAllocated > constants.MaxDefaultAllocated {
		return NewConfigError(constants.KeyDefaultAllocated, strconv.Itoa(cfg.DefaultAllocated),
			fmt.Sprintf("must be between %d and %d", constants.MinAllocated, constants.MaxDefaultAllocated))
	}
	if cfg.ClipboardTimeout < 1 || cfg.ClipboardTimeout > constants.MaxClipboardTimeout {
		return NewConfigError(constants.KeyClipboardTimeout, strconv.Itoa(cfg.ClipboardTimeout),
			fmt.Sprintf("must be between 1 and %d seconds", constants.MaxClipboardTimeout))
	}
	if cfg.AuditLog != "" {
		if err := ValidateFilePath(cfg.AuditLog, "audit log"); err != nil {
			return NewConfigError(constants.KeyAuditLog, cfg.AuditLog, err.Error())
		}
	}
	return nil
}

// ValidateFilePath validates file paths with security checks including symlink resolution
func ValidateFilePath(filePath string, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	// Clean the path to resolve any . and .. elements
	cleanPath := filepath.Clean(filePath)

	// Check for path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("%s path contains invalid path traversal elements", description)
	}

	realPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		// The file might not exist yet, so we check the directory
		dirPath := filepath.Dir(cleanPath)
		if _, dirErr := os.Stat(dirPath); os.IsNotExist(dirErr) {
			return fmt.Errorf("%s directory does not exist: %s", description, dirPath)
		}
		return nil
	}

	if realPath != cleanPath {
		if err := validateSymlinkSecurity(realPath, description); err != nil {
			return err
		}
	}

	stat, err := os.Stat(realPath)
	if err != nil {
		return fmt.Errorf("cannot access %s file: %v", description, err)
	}
	if stat.IsDir() {
		return fmt.Errorf("%s path points to a directory, not a file: %s", description, realPath)
	}
	return nil
}

// validateSymlinkSecurity checks if symlink is safe to use
func validateSymlinkSecurity(realPath, description string) error {
	absReal, err := filepath.Abs(realPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute real path for %s: %v", description, err)
	}

	systemDirs := []string{"/etc", "/sys", "/proc", "/dev", "/boot"}
	for _, sysDir := range systemDirs {
		if absReal == sysDir || strings.HasPrefix(absReal, sysDir+string(filepath.Separator)) {
			return fmt.Errorf("%s symlink points to restricted system directory: %s", description, absReal)
		}
	}
	return nil
}

// LoadConfigWithValidation loads the configuration and validates it,
// reporting failures as coded errors.
func LoadConfigWithValidation() error {
	if err := LoadConfig(); err != nil {
		return errors.NewConfigLoadError(viper.ConfigFileUsed(), err)
	}
	if err := ValidateConfig(&Cfg); err != nil {
		var cfgErr *ConfigError
		if stderrors.As(err, &cfgErr) {
			return errors.NewConfigValidationError(cfgErr.Field, cfgErr.Value, cfgErr.Message)
		}
		return errors.NewConfigValidationError("config", "", err.Error())
	}
	return nil
}
