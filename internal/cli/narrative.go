package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/esgready/internal/api"
	"github.com/rshade/esgready/internal/narrative"
)

// NewNarrativeCmd creates the narrative command.
func NewNarrativeCmd() *cobra.Command {
	var (
		flags  inputFlags
		kind   string
		ai     bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "narrative",
		Short: "Write the ESG narrative or audit risk explanation for a dataset",
		Long: `Builds the ESG narrative (Environment, Governance, Strategy) or, with --kind risk,
the audit risk explanation. With --ai the text is generated by Gemini from the
evaluation context and falls back to the deterministic text on any failure.`,
		Example: `  esgready narrative --data emissions.csv
  esgready narrative --data emissions.csv --kind risk --ai`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}
			if kind != api.NarrativeKindSummary && kind != api.NarrativeKindRisk {
				return fmt.Errorf("invalid kind %q (valid: %s, %s)", kind, api.NarrativeKindSummary, api.NarrativeKindRisk)
			}

			res, err := evaluateInput(cmd, &flags)
			if err != nil {
				return err
			}
			svc := newNarrator(currentConfig(), ai)
			nc := api.NarrativeContext(res)

			var n narrative.Narrative
			if kind == api.NarrativeKindRisk {
				n = svc.ExplainRisk(cmd.Context(), nc)
			} else {
				n = svc.Narrate(cmd.Context(), nc)
			}

			out := cmd.OutOrStdout()
			if format != outputTable {
				return writeJSON(out, api.NarrativeResponse{EvaluationID: res.ID, Narrative: n})
			}
			fmt.Fprintln(out, strings.TrimRight(n.Text, "\n"))
			if ai && n.Source == narrative.SourceDeterministic && n.FallbackReason != "" {
				cmd.PrintErrf("Note: using deterministic narrative (%s)\n", n.FallbackReason)
			}
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVar(&kind, "kind", api.NarrativeKindSummary, "narrative or risk")
	cmd.Flags().BoolVar(&ai, "ai", false, "generate with Gemini (needs GEMINI_API_KEY)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json (default from config)")

	return cmd
}
