package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/engine/cache"
)

// SupportedVersions is the semver constraint config files must satisfy.
const SupportedVersions = ">= 1.0, < 2.0"

// Accepted enumerations.
//
//nolint:gochecknoglobals // Constant lookup tables.
var (
	OutputFormats = []string{"table", "json", "ndjson"}
	LogLevels     = []string{"trace", "debug", "info", "warn", "error"}
	LogFormats    = []string{"console", "json"}
)

// Validate checks every setting and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	if err := CheckVersion(c.Version); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains(OutputFormats, c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("%w: output.default_format %q (want one of %v)",
			ErrInvalidValue, c.Output.DefaultFormat, OutputFormats))
	}
	if c.Output.Precision < 0 || c.Output.Precision > 6 {
		errs = append(errs, fmt.Errorf("%w: output.precision %d (want 0-6)", ErrInvalidValue, c.Output.Precision))
	}
	if !slices.Contains(LogLevels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("%w: logging.level %q (want one of %v)",
			ErrInvalidValue, c.Logging.Level, LogLevels))
	}
	if !slices.Contains(LogFormats, c.Logging.Format) {
		errs = append(errs, fmt.Errorf("%w: logging.format %q (want one of %v)",
			ErrInvalidValue, c.Logging.Format, LogFormats))
	}
	if _, err := cache.ParseTTL(c.Cache.TTL); err != nil {
		errs = append(errs, fmt.Errorf("%w: cache.ttl: %w", ErrInvalidValue, err))
	}
	if _, err := audit.AlignmentByName(c.Scoring.FrameworkAlignment); err != nil {
		errs = append(errs, fmt.Errorf("%w: scoring.framework_alignment: %w", ErrInvalidValue, err))
	}
	if _, err := c.NarrativeTimeout(); err != nil {
		errs = append(errs, err)
	}
	if c.Server.Addr == "" {
		errs = append(errs, fmt.Errorf("%w: server.addr is empty", ErrInvalidValue))
	}

	return errors.Join(errs...)
}

// CheckVersion reports whether version satisfies SupportedVersions.
func CheckVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q is not a version", ErrUnsupportedVersion, version)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedVersion, version, SupportedVersions)
	}
	return nil
}

// NarrativeTimeout parses narrative.timeout.
func (c *Config) NarrativeTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Narrative.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: narrative.timeout %q", ErrInvalidValue, c.Narrative.Timeout)
	}
	return d, nil
}

// CacheTTL parses cache.ttl, falling back to the cache default.
func (c *Config) CacheTTL() time.Duration {
	d, err := cache.ParseTTL(c.Cache.TTL)
	if err != nil {
		return cache.DefaultTTL
	}
	return d
}
