package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvHome          = "ESGREADY_HOME"
	EnvProjectDir    = "ESGREADY_PROJECT_DIR"
	EnvLogLevel      = "ESGREADY_LOG_LEVEL"
	EnvLogFormat     = "ESGREADY_LOG_FORMAT"
	EnvOutputFormat  = "ESGREADY_OUTPUT_FORMAT"
	EnvCacheDisabled = "ESGREADY_CACHE_DISABLED"
	EnvCacheTTL      = "ESGREADY_CACHE_TTL"
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
)

// ApplyEnv copies set environment overrides onto c.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = strings.ToLower(v)
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = strings.ToLower(v)
	}
	if v := os.Getenv(EnvCacheDisabled); v != "" {
		if disabled, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = !disabled
		}
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		c.Cache.TTL = v
	}
	if v := os.Getenv(EnvGeminiAPIKey); v != "" {
		c.Narrative.APIKey = v
	}
}

// LoadDotEnv loads KEY=value pairs from the given .env files into the
// process environment without overriding variables that are already set.
// Missing files are skipped. With no arguments it loads ./.env.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
