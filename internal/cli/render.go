package cli

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/engine"
	"github.com/rshade/esgready/internal/greenops"
	"github.com/rshade/esgready/internal/kpi"
	"github.com/rshade/esgready/internal/quality"
)

// renderResult writes the human-readable evaluation summary.
func renderResult(w io.Writer, res *engine.Result, precision int) error {
	fmt.Fprintln(w, heading(w, fmt.Sprintf("ESG Audit Readiness %d", res.Year)))
	fmt.Fprintf(w, "Audit score:    %d/%d\n", res.Score.TotalScore, audit.MaxScore)
	fmt.Fprintf(w, "CSRD maturity:  Level %d (%s)\n", res.Maturity.MaturityLevel, res.Maturity.MaturityLabel)
	fmt.Fprintf(w, "Rows evaluated: %d\n", res.Rows)
	if res.Cached {
		fmt.Fprintln(w, "(cached result)")
	}
	fmt.Fprintln(w)

	if err := renderKPIs(w, res.KPIs, precision); err != nil {
		return err
	}
	if eq := greenops.FromSnapshot(res.KPIs); !eq.Empty() {
		fmt.Fprintf(w, "\n%s\n", eq.Text)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading(w, "Score breakdown"))
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Area\tPoints\tReason\tImprovement")
	fmt.Fprintln(tw, "----\t------\t------\t-----------")
	for _, area := range audit.Areas() {
		entry := res.Trace[area]
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", area, res.Score.Points(area), entry.Reason, entry.Improvement)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if err := renderQuality(w, res.Quality); err != nil {
		return err
	}

	if res.Scope3 != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, heading(w, "Scope 3 estimates"))
		tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		fmt.Fprintln(tw, "Category\tSpend (EUR)\tFactor\tCO2 (kg)")
		fmt.Fprintln(tw, "--------\t-----------\t------\t--------")
		for _, est := range res.Scope3.Estimates {
			factor, co2 := "n/a", "n/a"
			if est.EmissionFactor != nil {
				factor = greenops.FormatFloat(*est.EmissionFactor, 2) //nolint:mnd // Factor precision.
			}
			if est.Scope3CO2Kg != nil {
				co2 = greenops.FormatFloat(*est.Scope3CO2Kg, precision)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				est.Category, greenops.FormatFloat(est.AnnualSpendEUR, precision), factor, co2)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		for _, warn := range res.Scope3.Warnings {
			fmt.Fprintf(w, "Warning: row %d: %s: %s\n", warn.Row+1, warn.Type, warn.Details)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading(w, "Financial linkage"))
	tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Driver\tStatus\tSignal\tFinancial area")
	fmt.Fprintln(tw, "------\t------\t------\t--------------")
	for _, in := range res.Finance {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", in.Driver, in.CurrentStatus, in.Signal, in.FinancialArea)
	}
	return tw.Flush()
}

// renderKPIs writes a metric/value table.
func renderKPIs(w io.Writer, kpis kpi.Snapshot, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Metric\tValue")
	fmt.Fprintln(tw, "------\t-----")
	for _, name := range kpis.Names() {
		fmt.Fprintf(tw, "%s\t%s\n", name, greenops.FormatFloat(kpis.Value(name), precision))
	}
	return tw.Flush()
}

// renderQuality writes quality flags and issues.
func renderQuality(w io.Writer, qr quality.Report) error {
	fmt.Fprintln(w, heading(w, "Data quality"))

	metrics := make([]string, 0, len(qr.Flags))
	for m := range qr.Flags {
		metrics = append(metrics, m)
	}
	slices.Sort(metrics)

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Metric\tFlag")
	fmt.Fprintln(tw, "------\t----")
	for _, m := range metrics {
		fmt.Fprintf(tw, "%s\t%s\n", m, qr.Flags[m])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !qr.HasIssues() {
		fmt.Fprintln(w, "No data quality issues found.")
		return nil
	}
	for _, issue := range qr.Issues {
		fmt.Fprintf(w, "- %s: %s\n", issue.Type, issue.Details)
	}
	return nil
}

// plural returns word with an "s" unless n is one.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
