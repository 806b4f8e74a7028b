// Package cli implements the esgready command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/esgready/internal/logging"
	"github.com/rshade/esgready/pkg/version"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root command for the esgready CLI. It loads
// configuration and .env files, wires logging and tracing, and registers
// every subcommand.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:          "esgready",
		Short:        "ESG audit readiness and CSRD maturity scoring",
		Long:         "esgready: score emissions datasets for ESG audit readiness, data quality and CSRD maturity",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return logResult.Close()
		},
	}

	cmd.SetVersionTemplate(versionTemplate(ver))

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to a config file (default $ESGREADY_HOME/config.yaml)")
	cmd.PersistentFlags().Bool("no-cache", false, "disable the evaluation cache")
	cmd.PersistentFlags().String("project-dir", "", "project-local .esgready directory")

	cmd.AddCommand(
		NewScoreCmd(), NewQualityCmd(), NewMaturityCmd(), NewCompareCmd(),
		NewReportCmd(), NewNarrativeCmd(), NewFrameworksCmd(), NewDashboardCmd(),
		NewServeCmd(), NewMCPCmd(ver), newConfigCmd(), newCacheCmd(),
	)

	return cmd
}

// versionTemplate renders --version with build metadata. Non-release
// versions are marked as development builds.
func versionTemplate(ver string) string {
	line := fmt.Sprintf("{{.Name}} version {{.Version}} (commit %s, built %s)",
		version.GetGitCommit(), version.GetBuildDate())
	if !version.IsRelease(ver) {
		line += " [development build]"
	}
	return line + "\n"
}

const rootCmdExample = `  # Score an emissions dataset
  esgready score --data emissions.csv

  # Include Scope 3 estimates from procurement spend
  esgready score --data emissions.csv --spend spend.csv --year 2025

  # Score several sites at once as JSON
  esgready score --data site-a.csv --data site-b.csv --output json

  # Compare two reporting periods
  esgready compare --current 2025.csv --previous 2024.csv

  # Render the ESG report with CSRD gap analysis as HTML
  esgready report --data emissions.csv --gap --format html --out report.html

  # Explore results interactively
  esgready dashboard --data emissions.csv

  # Serve the HTTP API
  esgready serve --addr :8080

  # Initialize configuration
  esgready config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
