// Package version exposes build version information.
package version

import (
	"github.com/Masterminds/semver/v3"
)

// These are set at build time via -ldflags.
//
//nolint:gochecknoglobals // Build-time injected values.
var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the build version string.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// IsRelease reports whether v is a semantic version without a prerelease tag.
func IsRelease(v string) bool {
	sv, err := semver.NewVersion(v)
	return err == nil && sv.Prerelease() == ""
}
