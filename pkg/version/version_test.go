package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/esgready/pkg/version"
)

func TestBuildMetadataDefaults(t *testing.T) {
	assert.Equal(t, "0.1.0-dev", version.GetVersion())
	assert.Equal(t, "unknown", version.GetGitCommit())
	assert.Equal(t, "unknown", version.GetBuildDate())
}

func TestIsRelease(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1.2.3", true},
		{"v1.0.0", true},
		{"0.1.0-dev", false},
		{"1.0.0-rc.1", false},
		{"test", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, version.IsRelease(tt.in))
		})
	}
}
