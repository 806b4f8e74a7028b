// Package config loads, validates, and persists esgready settings.
//
// Settings come from, in increasing precedence: built-in defaults, the YAML
// file at $ESGREADY_HOME/config.yaml, an optional project-local overlay, and
// ESGREADY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is written to new configuration files.
const CurrentVersion = "1.0"

// Defaults.
const (
	DefaultOutputFormat = "table"
	DefaultPrecision    = 2
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultCacheTTL     = "1h"
	DefaultAlignment    = "fixed"
	DefaultModel        = "gemini-2.0-flash"
	DefaultTimeout      = "30s"
	DefaultServerAddr   = ":8080"
)

// Config is the full esgready configuration.
type Config struct {
	Version   string          `yaml:"version"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
	Cache     CacheConfig     `yaml:"cache"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Narrative NarrativeConfig `yaml:"narrative"`
	Server    ServerConfig    `yaml:"server"`

	configPath string
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
	Caller bool   `yaml:"caller,omitempty"`
}

// CacheConfig controls the evaluation memo cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	TTL     string `yaml:"ttl"`
	Dir     string `yaml:"dir,omitempty"`
}

// ScoringConfig selects scoring strategies.
type ScoringConfig struct {
	// FrameworkAlignment is "fixed" or "coverage".
	FrameworkAlignment string `yaml:"framework_alignment"`
}

// NarrativeConfig configures the optional generative narrative.
type NarrativeConfig struct {
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`

	// APIKey comes from GEMINI_API_KEY only and is never persisted.
	APIKey string `yaml:"-"`
}

// ServerConfig configures `esgready serve`.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns a Config holding built-in defaults only.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
			Precision:     DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     DefaultCacheTTL,
		},
		Scoring:   ScoringConfig{FrameworkAlignment: DefaultAlignment},
		Narrative: NarrativeConfig{Model: DefaultModel, Timeout: DefaultTimeout},
		Server:    ServerConfig{Addr: DefaultServerAddr},
	}
}

// New returns the effective configuration: defaults, then the global config
// file when it exists, then environment overrides. Errors reading the file
// are ignored so a broken file never blocks the CLI; `config validate`
// reports them.
func New() *Config {
	cfg := Default()
	if dir, err := GetConfigDir(); err == nil {
		cfg.configPath = filepath.Join(dir, "config.yaml")
		_ = cfg.loadFile(cfg.configPath)
	}
	cfg.ApplyEnv()
	return cfg
}

// Load reads the config file at path over the defaults and applies
// environment overrides. A missing file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ConfigPath returns the file the config was loaded from or will save to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes where Save writes.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// CacheDir returns the cache directory, defaulting to cache/ under the
// config directory.
func (c *Config) CacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	dir, err := GetConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "esgready-cache")
	}
	return filepath.Join(dir, "cache")
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}
