package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

//nolint:gochecknoglobals // Process-wide configuration singleton.
var (
	globalConfig   *Config
	globalConfigMu sync.Mutex
)

// SetGlobalConfig installs cfg as the process configuration. The CLI calls
// it once after resolving --config and the project overlay.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the process configuration, loading it with New
// on first use.
func GetGlobalConfig() *Config {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if globalConfig == nil {
		globalConfig = New()
	}
	return globalConfig
}

// ResetGlobalConfigForTest clears the process configuration.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

// GetConfigDir returns $ESGREADY_HOME, or ~/.esgready.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".esgready"), nil
}

// EnsureConfigDir creates the configuration directory.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// EnsureSubDirs creates the configuration directory, the cache directory of
// cfg, and the parent of the configured log file.
func EnsureSubDirs(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	if cfg.Cache.Enabled {
		if err := os.MkdirAll(cfg.CacheDir(), 0o700); err != nil {
			return fmt.Errorf("failed to create cache directory %q: %w", cfg.CacheDir(), err)
		}
	}
	if cfg.Logging.File != "" {
		logDir := filepath.Dir(cfg.Logging.File)
		if err := os.MkdirAll(logDir, 0o700); err != nil {
			return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
		}
	}
	return nil
}
