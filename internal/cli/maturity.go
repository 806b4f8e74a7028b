package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/esgready/internal/api"
	"github.com/rshade/esgready/internal/audit"
)

// NewMaturityCmd creates the maturity command.
func NewMaturityCmd() *cobra.Command {
	var (
		score  int
		scope3 bool
		year   int
		output string
	)

	cmd := &cobra.Command{
		Use:   "maturity",
		Short: "Classify CSRD maturity from an audit readiness score",
		Example: `  esgready maturity --score 72
  esgready maturity --score 90 --scope3 --year 2025`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}
			if year == 0 {
				year = time.Now().Year()
			}
			rating, err := api.Maturity(api.MaturityRequest{AuditScore: score, Scope3Present: scope3, Year: year})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format != outputTable {
				return writeJSON(out, rating)
			}
			fmt.Fprintf(out, "CSRD maturity %d: Level %d (%s)\n", rating.Year, rating.MaturityLevel, rating.MaturityLabel)
			for level := audit.LevelAdHoc; level <= audit.LevelOptimized; level++ {
				marker := " "
				if level == rating.MaturityLevel {
					marker = ">"
				}
				fmt.Fprintf(out, "%s %d %s\n", marker, level, audit.MaturityLabel(level))
			}
			if rating.MaturityLevel == audit.LevelManaged && !scope3 && score >= audit.MaturityThresholdOptimized {
				fmt.Fprintln(out, "Report Scope 3 emissions to reach Level 5 (Optimized).")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", 0, "audit readiness score (0-100)")
	cmd.Flags().BoolVar(&scope3, "scope3", false, "Scope 3 emissions are reported")
	cmd.Flags().IntVar(&year, "year", 0, "reporting year (default: current year)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json (default from config)")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}
