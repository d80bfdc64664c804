package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rvugdt/ftxclient/common/file"
	"github.com/rvugdt/ftxclient/log"
	"github.com/spf13/viper"
)

// DefaultFilePath returns the per-user settings file location
// ($HOME/.config/ftxclient/settings.json)
func DefaultFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ftxclient", File), nil
}

// Load reads the settings file at configPath, or the default path when empty.
// Environment variables prefixed with FTX_ override file values. When the
// file does not exist a template is written and ErrConfigMissing is returned.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		var err error
		configPath, err = DefaultFilePath()
		if err != nil {
			return nil, err
		}
	}

	if !file.Exists(configPath) {
		if err := file.Write(configPath, []byte(settingsTemplate)); err != nil {
			return nil, fmt.Errorf("unable to create settings template %s: %w", configPath, err)
		}
		log.Warnf(log.ConfigMgr, "Settings file not found, template created at %s", configPath)
		return nil, fmt.Errorf("%w: fill your keys in %s and retry", ErrConfigMissing, configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"api_key", "api_sec_key", "otp_secret", "api_url", "verbose"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	v.SetDefault("http_timeout", DefaultHTTPTimeout)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading settings file %s: %w", configPath, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("error decoding settings file %s: %w", configPath, err)
	}
	if c.Logging.Enabled == nil {
		c.Logging = log.GenDefaultSettings()
	}
	if err := c.CheckConfig(); err != nil {
		return nil, err
	}
	log.Debugf(log.ConfigMgr, "Loaded settings from %s", configPath)
	return &c, nil
}

// CheckConfig verifies that real credentials are present and fills unset
// client defaults
func (c *Config) CheckConfig() error {
	if c.APIKey == "" || c.APISecret == "" ||
		c.APIKey == DefaultUnsetAPIKey || c.APISecret == DefaultUnsetAPISecret {
		return ErrCredentialsUnset
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = DefaultHTTPTimeout
	}
	return nil
}
