package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/esgready/internal/config"
)

// editableConfig loads the file that config set/get operate on: --config
// when given, otherwise the global config.
func editableConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.Load(path)
	}
	return config.New(), nil
}

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Print a configuration value",
		Example: `  esgready config get scoring.framework_alignment`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := currentConfig().Get(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

// NewConfigSetCmd creates the config set command.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set and save a configuration value",
		Example: `  esgready config set output.default_format json
  esgready config set scoring.framework_alignment coverage`,
		Args: cobra.ExactArgs(2), //nolint:mnd // key and value.
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := editableConfig(cmd)
			if err != nil {
				return err
			}
			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.Validate(); err != nil {
				return fmt.Errorf("refusing to save invalid configuration: %w", err)
			}
			if err = cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			cmd.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List effective configuration values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := currentConfig()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(w, "Key\tValue")
			fmt.Fprintln(w, "---\t-----")
			for _, key := range config.Keys() {
				value, err := cfg.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", key, value)
			}
			return w.Flush()
		},
	}
}

// NewConfigValidateCmd creates the config validate command.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the config file version against the supported
range, output and logging settings, durations, and the scoring strategy.`,
		Example: `  esgready config validate
  esgready config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := editableConfig(cmd)
			if err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			if err = cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			cmd.Printf("✅ Configuration is valid\n")

			if verbose {
				cmd.Println()
				cmd.Println("Configuration details:")
				cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
				cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
				cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
				cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
				cmd.Printf("  Framework alignment: %s\n", cfg.Scoring.FrameworkAlignment)
				cmd.Printf("  Cache enabled: %t (ttl %s)\n", cfg.Cache.Enabled, cfg.CacheTTL())
				cmd.Printf("  Gemini API key set: %t\n", cfg.Narrative.APIKey != "")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")
	return cmd
}
