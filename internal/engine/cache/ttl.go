package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// TTL bounds and defaults.
const (
	DefaultTTL = time.Hour
	MinTTL     = time.Minute
	MaxTTL     = 7 * 24 * time.Hour

	// EnvTTL overrides the configured TTL, as seconds or a Go duration.
	EnvTTL = "ESGREADY_CACHE_TTL"

	// EnvCacheDisabled disables the cache when set to a true value.
	EnvCacheDisabled = "ESGREADY_CACHE_DISABLED"
)

// ErrInvalidTTL is returned by ParseTTL for out-of-range values.
var ErrInvalidTTL = constError(fmt.Sprintf("TTL must be between %s and %s", MinTTL, MaxTTL))

// ParseTTL accepts integer seconds ("3600") or a duration ("1h30m").
func ParseTTL(s string) (time.Duration, error) {
	var d time.Duration
	if secs, err := strconv.Atoi(s); err == nil {
		d = time.Duration(secs) * time.Second
	} else {
		parsed, parseErr := time.ParseDuration(s)
		if parseErr != nil {
			return 0, fmt.Errorf("invalid TTL format: %w", parseErr)
		}
		d = parsed
	}

	if d < MinTTL || d > MaxTTL {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidTTL, d)
	}
	return d, nil
}

// TTLFromEnv returns the EnvTTL override, or fallback when unset or invalid.
func TTLFromEnv(fallback time.Duration) time.Duration {
	v := os.Getenv(EnvTTL)
	if v == "" {
		return fallback
	}
	d, err := ParseTTL(v)
	if err != nil {
		return fallback
	}
	return d
}

// DisabledFromEnv reports whether EnvCacheDisabled asks for no caching.
func DisabledFromEnv() bool {
	disabled, err := strconv.ParseBool(os.Getenv(EnvCacheDisabled))
	return err == nil && disabled
}
