package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/esgready/internal/api"
	"github.com/rshade/esgready/internal/frameworks"
)

// Framework selectors accepted by --framework.
const (
	selectCSRDGRI  = "csrd-gri"
	selectSASB     = "sasb"
	selectTCFD     = "tcfd"
	selectCoverage = "coverage"
)

// NewFrameworksCmd creates the frameworks command.
func NewFrameworksCmd() *cobra.Command {
	var (
		selector string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "frameworks",
		Short: "Show CSRD, GRI, SASB and TCFD disclosure mappings",
		Example: `  esgready frameworks
  esgready frameworks --framework coverage
  esgready frameworks --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if format != outputTable {
				return writeJSON(out, api.Frameworks())
			}

			switch strings.ToLower(selector) {
			case "":
				for _, set := range frameworks.SetNames() {
					if err := renderMappings(out, set); err != nil {
						return err
					}
					fmt.Fprintln(out)
				}
				return renderCoverage(out)
			case selectCSRDGRI:
				return renderMappings(out, frameworks.SetCSRDGRI)
			case selectSASB:
				return renderMappings(out, frameworks.SetSASB)
			case selectTCFD:
				return renderMappings(out, frameworks.SetTCFD)
			case selectCoverage:
				return renderCoverage(out)
			default:
				return fmt.Errorf("unknown framework %q (valid: %s, %s, %s, %s)",
					selector, selectCSRDGRI, selectSASB, selectTCFD, selectCoverage)
			}
		},
	}

	cmd.Flags().StringVar(&selector, "framework", "", "csrd-gri, sasb, tcfd or coverage (default: all)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json (default from config)")

	return cmd
}

func renderMappings(w io.Writer, set string) error {
	fmt.Fprintln(w, heading(w, set))
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	switch set {
	case frameworks.SetCSRDGRI:
		fmt.Fprintln(tw, "Metric\tCSRD\tGRI")
		fmt.Fprintln(tw, "------\t----\t---")
		for _, m := range frameworks.CSRDGRI() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Metric, m.CSRD, m.GRI)
		}
	case frameworks.SetSASB:
		fmt.Fprintln(tw, "Metric\tSASB")
		fmt.Fprintln(tw, "------\t----")
		for _, m := range frameworks.SASBMapping() {
			fmt.Fprintf(tw, "%s\t%s\n", m.Metric, m.SASB)
		}
	case frameworks.SetTCFD:
		fmt.Fprintln(tw, "Area\tTCFD\tCoverage")
		fmt.Fprintln(tw, "----\t----\t--------")
		for _, m := range frameworks.TCFDMapping() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Area, m.TCFD, m.Coverage)
		}
	}
	return tw.Flush()
}

func renderCoverage(w io.Writer) error {
	matrix := frameworks.Coverage()
	fmt.Fprintln(w, heading(w, "ESG coverage matrix"))

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Topic\t"+strings.Join(frameworks.Frameworks(), "\t"))
	for _, tc := range matrix {
		cells := make([]string, 0, len(frameworks.Frameworks()))
		for _, fw := range frameworks.Frameworks() {
			cells = append(cells, tc.Status[fw].Symbol())
		}
		fmt.Fprintf(tw, "%s\t%s\n", tc.Topic, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Coverage: %.1f%%\n", frameworks.CoverageRatio(matrix)*100) //nolint:mnd // Percent.
	return nil
}
