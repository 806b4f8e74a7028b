package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgready/internal/cli"
	"github.com/rshade/esgready/internal/config"
	"github.com/rshade/esgready/pkg/version"
)

func TestRun(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvCacheDisabled, "true")
	t.Cleanup(config.ResetGlobalConfigForTest)

	require.NoError(t, run(context.Background(), []string{"maturity", "--score", "40", "-o", "json"}))
	require.Error(t, run(context.Background(), []string{"no-such-command"}))
}

func TestMainComponents(t *testing.T) {
	assert.NotEmpty(t, version.GetVersion())

	root := cli.NewRootCmd(version.GetVersion())
	require.NotNil(t, root)
	assert.Equal(t, "esgready", root.Use)

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"score", "quality", "maturity", "compare", "report", "narrative",
		"frameworks", "dashboard", "serve", "mcp", "config", "cache"} {
		assert.Contains(t, names, want)
	}
}
