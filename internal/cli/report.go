package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/esgready/internal/api"
	"github.com/rshade/esgready/internal/report"
)

// Report formats.
const (
	reportMarkdown = "markdown"
	reportHTML     = "html"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	var (
		flags     inputFlags
		format    string
		gap       bool
		withStory bool
		ai        bool
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render an ESG audit readiness report",
		Long: `Evaluates a dataset and renders the ESG environmental report as Markdown or HTML.
--gap appends the CSRD gap analysis and --narrative appends the ESG narrative.`,
		Example: `  esgready report --data emissions.csv
  esgready report --data emissions.csv --gap --narrative --format html --out report.html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(format)
			if format == "md" {
				format = reportMarkdown
			}
			if format != reportMarkdown && format != reportHTML {
				return fmt.Errorf("invalid report format %q (valid: markdown, html)", format)
			}

			res, err := evaluateInput(cmd, &flags)
			if err != nil {
				return err
			}

			opts := report.Options{Gap: gap}
			if withStory {
				n := newNarrator(currentConfig(), ai).Narrate(cmd.Context(), api.NarrativeContext(res))
				opts.Narrative = &n
			}

			var md bytes.Buffer
			if err = report.RenderFull(&md, res, opts); err != nil {
				return fmt.Errorf("rendering report: %w", err)
			}
			doc := md.Bytes()
			if format == reportHTML {
				title := fmt.Sprintf("ESG Audit Readiness Report %d", res.Year)
				if doc, err = report.ToHTMLDocument(title, doc); err != nil {
					return err
				}
			}

			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}
			if err = os.WriteFile(outPath, doc, 0o600); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			cmd.Printf("Report written to %s\n", outPath)
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVar(&format, "format", reportMarkdown, "report format: markdown or html")
	cmd.Flags().BoolVar(&gap, "gap", false, "append the CSRD gap analysis")
	cmd.Flags().BoolVar(&withStory, "narrative", false, "append the ESG narrative")
	cmd.Flags().BoolVar(&ai, "ai", false, "generate the narrative with Gemini (needs GEMINI_API_KEY)")
	cmd.Flags().StringVar(&outPath, "out", "", "write the report to a file instead of stdout")

	return cmd
}
