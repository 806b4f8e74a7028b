package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/esgready/internal/engine"
	"github.com/rshade/esgready/internal/greenops"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	var (
		current  string
		previous string
		spend    string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare KPIs between two reporting periods",
		Long: `Evaluates two datasets and reports the change of every KPI present in both.
Metrics present in only one period are skipped.`,
		Example: `  esgready compare --current 2025.csv --previous 2024.csv
  esgready compare --current 2025.csv --previous 2024.csv --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			spendRecords, err := loadSpend(ctx, spend)
			if err != nil {
				return err
			}

			results, err := evaluateFiles(ctx, eng, []string{current, previous}, spendRecords, 0)
			if err != nil {
				return err
			}
			changes := engine.Compare(results[0].Result, results[1].Result)

			out := cmd.OutOrStdout()
			switch format {
			case outputJSON:
				return writeJSON(out, changes)
			case outputNDJSON:
				return writeNDJSON(out, changes)
			}

			if len(changes) == 0 {
				fmt.Fprintln(out, "No metrics in common.")
				return nil
			}
			fmt.Fprintln(out, heading(out, fmt.Sprintf("Period comparison (%s)", plural(len(changes), "metric"))))
			tw := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(tw, "Metric\tPrevious\tCurrent\tChange\tExplanation")
			fmt.Fprintln(tw, "------\t--------\t-------\t------\t-----------")
			for _, c := range changes {
				sign := ""
				if c.Change > 0 {
					sign = "+"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s%s\t%s\n", c.Metric,
					greenops.FormatFloat(c.Previous, cfg.Output.Precision),
					greenops.FormatFloat(c.Current, cfg.Output.Precision),
					sign, greenops.FormatFloat(c.Change, cfg.Output.Precision),
					c.Explanation)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "emissions dataset for the current period")
	cmd.Flags().StringVar(&previous, "previous", "", "emissions dataset for the previous period")
	cmd.Flags().StringVar(&spend, "spend", "", "procurement spend applied to both periods")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or ndjson (default from config)")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("previous")

	return cmd
}
