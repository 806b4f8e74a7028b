// Package report renders evaluation results as Markdown documents (the ESG
// environmental report and the CSRD gap analysis) and converts them to HTML.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/engine"
	"github.com/rshade/esgready/internal/greenops"
	"github.com/rshade/esgready/internal/kpi"
	"github.com/rshade/esgready/internal/narrative"
)

const dateLayout = "2006-01-02"

// Options control RenderFull.
type Options struct {
	// Date is printed as the report date; zero means today.
	Date time.Time
	// Gap appends the CSRD gap analysis.
	Gap bool
	// Narrative is appended when set.
	Narrative *narrative.Narrative
}

// RenderESGReport writes the ESG environmental report: executive summary and
// the KPI table.
func RenderESGReport(w io.Writer, kpis kpi.Snapshot, date time.Time) error {
	var b strings.Builder
	b.WriteString("# ESG Environmental Report\n\n")
	fmt.Fprintf(&b, "Report Date: %s\n\n", reportDate(date))
	writeESGBody(&b, kpis)
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderGapAnalysis writes the CSRD gap analysis for kpis and auditScore.
func RenderGapAnalysis(w io.Writer, kpis kpi.Snapshot, auditScore int, date time.Time) error {
	var b strings.Builder
	b.WriteString("# CSRD Gap Analysis Report\n\n")
	fmt.Fprintf(&b, "Report Date: %s\n\n", reportDate(date))
	writeGapBody(&b, kpis, auditScore)
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderFull writes one document covering the whole evaluation.
func RenderFull(w io.Writer, res *engine.Result, opts Options) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# ESG Audit Readiness Report %d\n\n", res.Year)
	fmt.Fprintf(&b, "Report Date: %s  \nEvaluation ID: `%s`\n\n", reportDate(opts.Date), res.ID)

	writeESGBody(&b, res.Snapshot())

	b.WriteString("## Audit Readiness\n\n")
	fmt.Fprintf(&b, "Audit Readiness Score: **%d/100**  \n", res.Score.TotalScore)
	fmt.Fprintf(&b, "CSRD Maturity: **Level %d (%s)**\n\n",
		res.Maturity.MaturityLevel, res.Maturity.MaturityLabel)
	b.WriteString("| Area | Score | Reason | Improvement |\n|---|---:|---|---|\n")
	for _, area := range audit.Areas() {
		e := res.Trace[area]
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n", area, e.Score, escape(e.Reason), escape(e.Improvement))
	}
	b.WriteString("\n")

	b.WriteString("## Data Quality\n\n")
	if len(res.Quality.Issues) == 0 {
		b.WriteString("No data quality issues detected.\n\n")
	} else {
		for _, is := range res.Quality.Issues {
			fmt.Fprintf(&b, "- **%s**: %s\n", is.Type, is.Details)
		}
		b.WriteString("\n")
	}

	if res.Scope3 != nil {
		b.WriteString("## Scope 3 Estimate\n\n")
		fmt.Fprintf(&b, "Estimated Scope 3 emissions: **%s**\n\n", greenops.FormatCO2(res.Scope3.TotalKg))
		for _, wn := range res.Scope3.Warnings {
			fmt.Fprintf(&b, "- %s (row %d): %s\n", wn.Type, wn.Row+1, wn.Details)
		}
		if len(res.Scope3.Warnings) > 0 {
			b.WriteString("\n")
		}
	}

	if len(res.Finance) > 0 {
		b.WriteString("## Financial Linkage\n\n| ESG Driver | Financial Area | Status | Signal |\n|---|---|---|---|\n")
		for _, in := range res.Finance {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", in.Driver, escape(in.FinancialArea), in.CurrentStatus, in.Signal)
		}
		b.WriteString("\n")
	}

	if opts.Gap {
		writeGapBody(&b, res.Snapshot(), res.Score.TotalScore)
	}

	if opts.Narrative != nil {
		b.WriteString("## ESG Narrative\n\n")
		b.WriteString(demoteHeadings(opts.Narrative.Text))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ToHTML converts Markdown, including GFM tables, to an HTML fragment.
func ToHTML(markdown []byte) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// ToHTMLDocument wraps ToHTML output in a minimal standalone page.
func ToHTMLDocument(title string, markdown []byte) ([]byte, error) {
	body, err := ToHTML(markdown)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n",
		htmlEscaper.Replace(title))
	buf.Write(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

func writeESGBody(b *strings.Builder, kpis kpi.Snapshot) {
	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(b, "This report summarizes the environmental performance of the organization. "+
		"Total CO₂ emissions amount to **%s kg**, with renewable energy contributing **%s%%** "+
		"of total electricity consumption.\n\n",
		number(kpis, kpi.MetricTotalCO2), number(kpis, kpi.MetricRenewablePct))

	if eq := greenops.FromSnapshot(kpis); !eq.Empty() {
		fmt.Fprintf(b, "%s.\n\n", eq.Text)
	}

	b.WriteString("## Key ESG Metrics\n\n| Metric | Value |\n|---|---:|\n")
	for _, m := range kpis.Metrics() {
		fmt.Fprintf(b, "| %s | %s |\n", m.Name, strconv.FormatFloat(m.Value, 'f', -1, 64))
	}
	b.WriteString("\n")
}

func writeGapBody(b *strings.Builder, kpis kpi.Snapshot, auditScore int) {
	fmt.Fprintf(b, "Audit Readiness Score: **%d/100**\n\n", auditScore)
	b.WriteString("## Executive Summary\n\n")
	b.WriteString("This report evaluates the organization's readiness against the " +
		"Corporate Sustainability Reporting Directive (CSRD), focusing on " +
		"ESRS E1 – Climate Change disclosures.\n\n")

	b.WriteString("## CSRD Gap Analysis\n\n| CSRD Requirement (ESRS E1) | Status | Gap / Recommendation |\n|---|---|---|\n")
	for _, g := range GapAnalysis(kpis) {
		fmt.Fprintf(b, "| %s | %s | %s |\n", g.Requirement, StatusLabel(g.Status), g.Recommendation)
	}

	b.WriteString("\n## Key Recommendations\n\n")
	b.WriteString("- Improve renewable energy procurement transparency.\n")
	b.WriteString("- Expand emissions accounting to Scope 3 categories.\n")
	b.WriteString("- Automate ESG data validation to improve audit readiness.\n\n")
}

func number(kpis kpi.Snapshot, metric string) string {
	v, ok := kpis.Get(metric)
	if !ok {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func reportDate(d time.Time) string {
	if d.IsZero() {
		d = time.Now()
	}
	return d.Format(dateLayout)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// demoteHeadings nests generated headings under the narrative section.
func demoteHeadings(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, "#") {
			lines[i] = "#" + l
		}
	}
	return strings.Join(lines, "\n")
}

//nolint:gochecknoglobals // Immutable replacer.
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
