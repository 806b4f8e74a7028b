package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewScoreCmd creates the score command.
func NewScoreCmd() *cobra.Command {
	var (
		flags  inputFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one or more emissions datasets for audit readiness",
		Long: `Calculates Scope 1 and Scope 2 emissions, aggregates KPIs, assesses data quality,
and scores audit readiness (0-100) with a per-area explanation and CSRD maturity level.

Repeat --data to evaluate several datasets concurrently; --spend and --year apply to all of them.`,
		Example: `  # Score a dataset
  esgready score --data emissions.csv

  # Add Scope 3 estimates
  esgready score --data emissions.csv --spend spend.csv

  # Score several sites as newline-delimited JSON
  esgready score --data a.csv --data b.csv --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, &flags, output)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or ndjson (default from config)")

	return cmd
}

func runScore(cmd *cobra.Command, flags *inputFlags, output string) error {
	format, err := resolveOutputFormat(output)
	if err != nil {
		return err
	}
	cfg := currentConfig()
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	spend, err := loadSpend(ctx, flags.spend)
	if err != nil {
		return err
	}
	results, err := evaluateFiles(ctx, eng, flags.data, spend, flags.year)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case outputJSON:
		if len(results) == 1 {
			return writeJSON(out, results[0].Result)
		}
		return writeJSON(out, results)
	case outputNDJSON:
		return writeNDJSON(out, results)
	default:
		for i, r := range results {
			if len(results) > 1 {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "== %s ==\n", r.Path)
			}
			if err := renderResult(out, r.Result, cfg.Output.Precision); err != nil {
				return err
			}
		}
		return nil
	}
}
