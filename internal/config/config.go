// File: internal/config/config.go
package config

import (
	"time"

	"github.com/spf13/viper"

	"securestring.module/internal/constants"
	"securestring.module/internal/security"
)

// Config defines the structure of the configuration file.
type Config struct {
	ThreadSafe       bool   `mapstructure:"thread_safe"`
	DefaultAllocated int    `mapstructure:"default_allocated"`
	LockMemory       bool   `mapstructure:"lock_memory"`
	ClipboardTimeout int    `mapstructure:"clipboard_timeout"`
	AuditLog         string `mapstructure:"audit_log"`
}

// Cfg is a global variable that holds the loaded configuration.
var Cfg Config

// settable lists the keys `config set` accepts.
var settable = []string{
	constants.KeyThreadSafe,
	constants.KeyDefaultAllocated,
	constants.KeyLockMemory,
	constants.KeyClipboardTimeout,
	constants.KeyAuditLog,
}

// Keys returns the configuration keys in display order.
func Keys() []string {
	keys := make([]string, len(settable))
	copy(keys, settable)
	return keys
}

// IsKnownKey reports whether key names a configuration setting.
func IsKnownKey(key string) bool {
	for _, k := range settable {
		if k == key {
			return true
		}
	}
	return false
}

func setDefaults() {
	viper.SetDefault(constants.KeyThreadSafe, security.ThreadSafeByDefault())
	viper.SetDefault(constants.KeyDefaultAllocated, security.DefaultAllocated())
	viper.SetDefault(constants.KeyLockMemory, false)
	viper.SetDefault(constants.KeyClipboardTimeout, constants.DefaultClipboardTimeout)
	viper.SetDefault(constants.KeyAuditLog, constants.DefaultAuditLog)
}

// LoadConfig loads the configuration from a file and environment variables.
func LoadConfig() error {
	setDefaults()
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return viper.Unmarshal(&Cfg)
}

// Set stores value under key and refreshes Cfg. It does not persist.
func Set(key string, value any) error {
	if !IsKnownKey(key) {
		return NewConfigError(key, "", "unknown configuration key")
	}
	viper.Set(key, value)
	return viper.Unmarshal(&Cfg)
}

// Get returns the effective value of key.
func Get(key string) (any, error) {
	if !IsKnownKey(key) {
		return nil, NewConfigError(key, "", "unknown configuration key")
	}
	return viper.Get(key), nil
}

// SaveConfig saves the current configuration to a file.
func SaveConfig() error {
	viper.Set(constants.KeyThreadSafe, Cfg.ThreadSafe)
	viper.Set(constants.KeyDefaultAllocated, Cfg.DefaultAllocated)
	viper.Set(constants.KeyLockMemory, Cfg.LockMemory)
	viper.Set(constants.KeyClipboardTimeout, Cfg.ClipboardTimeout)
	viper.Set(constants.KeyAuditLog, Cfg.AuditLog)
	return viper.WriteConfigAs("config.json")
}

// GetClipboardTimeout returns how long a copied secret stays on the clipboard.
func GetClipboardTimeout() time.Duration {
	seconds := Cfg.ClipboardTimeout
	if seconds <= 0 {
		seconds = constants.DefaultClipboardTimeout
	}
	return time.Duration(seconds) * time.Second
}
