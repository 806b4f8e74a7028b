package narrative

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/kpi"
	"github.com/rshade/esgready/internal/quality"
)

// Governance strength thresholds on the audit score.
const (
	GovernanceStrongFrom   = 80
	GovernanceModerateFrom = 50
)

// Section titles, in narrative order.
const (
	SectionEnvironment = "Environment"
	SectionGovernance  = "Governance"
	SectionStrategy    = "Strategy"
)

// Sections is the deterministic narrative.
type Sections struct {
	Environment string `json:"Environment"`
	Governance  string `json:"Governance"`
	Strategy    string `json:"Strategy"`
}

// GovernanceStrength grades governance controls from the audit score.
func GovernanceStrength(auditScore int) string {
	switch {
	case auditScore >= GovernanceStrongFrom:
		return "strong"
	case auditScore >= GovernanceModerateFrom:
		return "moderate"
	default:
		return "developing"
	}
}

// Build writes the three narrative sections from the grounding context.
// Missing KPIs read as N/A.
func Build(c Context) Sections {
	environment := fmt.Sprintf(
		"The organization reported total greenhouse gas emissions of %s kg CO₂ during the reporting period. "+
			"Renewable energy contributed approximately %s%% of total energy consumption. "+
			"These figures reflect the organization's current environmental footprint "+
			"and progress toward decarbonization.",
		metricText(c.KPIs, kpi.MetricTotalCO2), metricText(c.KPIs, kpi.MetricRenewablePct))

	governance := fmt.Sprintf(
		"The organization achieved an ESG audit readiness score of %d, "+
			"indicating %s governance controls related to data quality, "+
			"internal reporting processes, and regulatory preparedness. "+
			"Ongoing improvements in data validation and documentation will further "+
			"enhance audit confidence.",
		c.AuditScore, GovernanceStrength(c.AuditScore))

	level, label := "N/A", "N/A"
	if c.Maturity.MaturityLevel > 0 {
		level = strconv.Itoa(c.Maturity.MaturityLevel)
		label = c.Maturity.MaturityLabel
	}
	strategy := fmt.Sprintf(
		"The organization is currently assessed at CSRD maturity level %s (%s), "+
			"indicating a structured approach to ESG integration and compliance. "+
			"Future focus areas include expanding Scope 3 coverage, strengthening "+
			"controls, and aligning ESG initiatives with long-term business strategy.",
		level, label)

	return Sections{Environment: environment, Governance: governance, Strategy: strategy}
}

// Markdown renders the sections under level-two headings.
func (s Sections) Markdown() string {
	var b strings.Builder
	for i, sec := range []struct{ title, body string }{
		{SectionEnvironment, s.Environment},
		{SectionGovernance, s.Governance},
		{SectionStrategy, s.Strategy},
	} {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n", sec.title, sec.body)
	}
	return b.String()
}

// ExplainRisk writes a deterministic audit risk explanation from the trace:
// the score level, each area below its maximum as a risk driver, and up to
// three remediation actions.
func ExplainRisk(c Context) string {
	score := audit.Score{TotalScore: c.AuditScore, Breakdown: c.AuditBreakdown}
	trace := audit.Explain(score)

	var b strings.Builder
	fmt.Fprintf(&b, "Audit readiness score is %d/100 (%s governance controls), CSRD maturity level %d (%s).\n\n",
		c.AuditScore, GovernanceStrength(c.AuditScore), c.Maturity.MaturityLevel, c.Maturity.MaturityLabel)

	b.WriteString("Key risk drivers:\n")
	var actions []string
	drivers := 0
	for _, area := range audit.Areas() {
		entry := trace[area]
		if entry.Score >= areaMax(area) {
			continue
		}
		drivers++
		fmt.Fprintf(&b, "- %s (%d/%d): %s\n", area, entry.Score, areaMax(area), entry.Reason)
		actions = append(actions, entry.Improvement)
	}
	for _, metric := range quality.ExpectedMetrics {
		if flag, ok := c.DataQuality[metric]; ok && flag != quality.FlagMeasured {
			drivers++
			fmt.Fprintf(&b, "- %s is %s rather than measured\n", metric, strings.ToLower(string(flag)))
		}
	}
	if drivers == 0 {
		b.WriteString("- None identified\n")
	}

	b.WriteString("\nRemediation actions:\n")
	if len(actions) == 0 {
		actions = append(actions, "Maintain current data controls and extend disclosures to SASB/TCFD")
	}
	for i, a := range actions[:min(len(actions), maxActions)] {
		fmt.Fprintf(&b, "%d. %s\n", i+1, a)
	}
	return b.String()
}

const maxActions = 3

func areaMax(area string) int {
	switch area {
	case audit.AreaDataCompleteness:
		return audit.MaxDataCompleteness
	case audit.AreaEmissionsCoverage:
		return audit.MaxEmissionsCoverage
	case audit.AreaRenewableTransparency:
		return audit.MaxRenewableTransparency
	default:
		return audit.MaxFrameworkAlignment
	}
}

func metricText(s kpi.Snapshot, name string) string {
	v, ok := s.Get(name)
	if !ok {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
