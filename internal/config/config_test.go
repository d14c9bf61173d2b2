package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"securestring.module/internal/constants"
	"securestring.module/internal/errors"
	"securestring.module/internal/security"
)

func freshViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	Cfg = Config{}
	t.Chdir(t.TempDir())
	t.Cleanup(viper.Reset)
}

func TestLoadConfig_Defaults(t *testing.T) {
	freshViper(t)

	require.NoError(t, LoadConfig())
	assert.Equal(t, security.ThreadSafeByDefault(), Cfg.ThreadSafe)
	assert.False(t, Cfg.LockMemory)
	assert.Equal(t, security.DefaultAllocated(), Cfg.DefaultAllocated)
	assert.Equal(t, constants.DefaultClipboardTimeout, Cfg.ClipboardTimeout)
	assert.Equal(t, constants.DefaultAuditLog, Cfg.AuditLog)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	freshViper(t)
	content := `{"thread_safe": true, "default_allocated": 256, "clipboard_timeout": 10}`
	require.NoError(t, os.WriteFile("config.json", []byte(content), 0600))
	t.Setenv("SECURESTRING_CLIPBOARD_TIMEOUT", "45")

	require.NoError(t, LoadConfig())
	assert.True(t, Cfg.ThreadSafe)
	assert.Equal(t, 256, Cfg.DefaultAllocated)
	assert.Equal(t, 45, Cfg.ClipboardTimeout)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	freshViper(t)
	require.NoError(t, LoadConfig())

	require.NoError(t, Set(constants.KeyLockMemory, true))
	require.NoError(t, SaveConfig())

	viper.Reset()
	Cfg = Config{}
	require.NoError(t, LoadConfig())
	assert.True(t, Cfg.LockMemory)
}

func TestSet_UnknownKey(t *testing.T) {
	freshViper(t)

	err := Set("active_profile", "x")
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "active_profile", cfgErr.Field)

	_, err = Get("active_profile")
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := Config{
		DefaultAllocated: constants.DefaultAllocated,
		ClipboardTimeout: constants.DefaultClipboardTimeout,
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "allocation below minimum", mutate: func(c *Config) { c.DefaultAllocated = 4 }, wantField: constants.KeyDefaultAllocated},
		{name: "allocation above maximum", mutate: func(c *Config) { c.DefaultAllocated = constants.MaxDefaultAllocated + 1 }, wantField: constants.KeyDefaultAllocated},
		{name: "zero clipboard timeout", mutate: func(c *Config) { c.ClipboardTimeout = 0 }, wantField: constants.KeyClipboardTimeout},
		{name: "audit log in missing directory", mutate: func(c *Config) { c.AuditLog = filepath.Join(t.TempDir(), "nope", "audit.log") }, wantField: constants.KeyAuditLog},
		{name: "audit log is a directory", mutate: func(c *Config) { c.AuditLog = t.TempDir() }, wantField: constants.KeyAuditLog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := ValidateConfig(&cfg)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestLoadConfigWithValidation_CodedError(t *testing.T) {
	freshViper(t)
	require.NoError(t, os.WriteFile("config.json", []byte(`{"default_allocated": 2}`), 0600))

	err := LoadConfigWithValidation()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigValidation))
}

func TestGetClipboardTimeout(t *testing.T) {
	saved := Cfg
	defer func() { Cfg = saved }()

	Cfg.ClipboardTimeout = 0
	assert.Equal(t, float64(constants.DefaultClipboardTimeout), GetClipboardTimeout().Seconds())

	Cfg.ClipboardTimeout = 5
	assert.Equal(t, float64(5), GetClipboardTimeout().Seconds())
}
