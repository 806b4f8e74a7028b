package cli

import (
	"github.com/spf13/cobra"
)

// NewQualityCmd creates the quality command.
func NewQualityCmd() *cobra.Command {
	var (
		flags  inputFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "quality",
		Short: "Assess data quality of an emissions dataset",
		Long: `Flags each expected metric as Measured, Estimated or Assumed and reports missing data,
negative energy values, renewable energy above total energy, and facility consistency anomalies.`,
		Example: `  esgready quality --data emissions.csv
  esgready quality --data emissions.csv --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}
			res, err := evaluateInput(cmd, &flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case outputJSON:
				return writeJSON(out, res.Quality)
			case outputNDJSON:
				return writeNDJSON(out, res.Quality.Issues)
			default:
				return renderQuality(out, res.Quality)
			}
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or ndjson (default from config)")

	return cmd
}
