package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/config"
	"github.com/rshade/esgready/internal/engine"
	"github.com/rshade/esgready/internal/engine/cache"
	"github.com/rshade/esgready/internal/narrative"
)

// loadConfig builds the effective configuration for cmd: .env files, then
// the global or --config file, then the project overlay. The result is
// published with config.SetGlobalConfig.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not load .env: %v\n", err)
	}

	ctx := cmd.Context()
	flagDir, _ := cmd.Flags().GetString("project-dir")
	wd, _ := os.Getwd()
	projectDir := config.ResolveProjectDir(ctx, flagDir, wd)
	config.SetResolvedProjectDir(projectDir)

	var cfg *config.Config
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.NewWithProjectDir(ctx, projectDir)
	}

	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}

	config.SetGlobalConfig(cfg)
	return cfg, nil
}

// currentConfig returns the config loaded for this invocation.
func currentConfig() *config.Config {
	if cfg := config.GetGlobalConfig(); cfg != nil {
		return cfg
	}
	return config.New()
}

// newEngine builds an engine from cfg: the configured Framework Alignment
// strategy and, when enabled, the evaluation cache.
func newEngine(cfg *config.Config) (*engine.Engine, error) {
	alignment, err := audit.AlignmentByName(cfg.Scoring.FrameworkAlignment)
	if err != nil {
		return nil, fmt.Errorf("scoring.framework_alignment: %w", err)
	}
	eng := engine.New(alignment)

	if !cfg.Cache.Enabled {
		return eng, nil
	}
	store, err := cache.NewFileStore(cfg.CacheDir(), true, cfg.CacheTTL())
	if err != nil {
		logger.Warn().Err(err).Str("cache_dir", cfg.CacheDir()).Msg("cache unavailable, continuing without it")
		return eng, nil
	}
	return eng.WithCache(store), nil
}

// newNarrator builds the narrative service. Without an API key, or with
// ai false, every narrative uses the deterministic fallback.
func newNarrator(cfg *config.Config, ai bool) *narrative.Service {
	timeout, err := cfg.NarrativeTimeout()
	if err != nil {
		timeout = narrative.DefaultTimeout
	}
	if !ai {
		return narrative.NewService(nil, timeout)
	}

	gen, err := narrative.NewGemini(cfg.Narrative.APIKey, cfg.Narrative.Model)
	if err != nil {
		logger.Warn().Err(err).Msg("generative narrative unavailable, using deterministic text")
		return narrative.NewService(nil, timeout)
	}
	return narrative.NewService(gen, timeout)
}
