// Package narrative produces the ESG disclosure narrative and the audit risk
// explanation. A language model is used when one is configured; any failure
// falls back to deterministic text built from the same figures.
package narrative

import (
	"maps"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/kpi"
	"github.com/rshade/esgready/internal/quality"
)

// Context is the grounding data handed to a generator. It holds exactly the
// KPIs, the audit score and breakdown, the maturity rating and the quality
// flags.
type Context struct {
	KPIs           kpi.Snapshot            `json:"kpis"`
	AuditScore     int                     `json:"audit_score"`
	AuditBreakdown map[string]int          `json:"audit_breakdown"`
	Maturity       audit.MaturityRating    `json:"maturity"`
	DataQuality    map[string]quality.Flag `json:"data_quality"`
}

// NewContext assembles a grounding context. Maps are copied.
func NewContext(kpis kpi.Snapshot, score audit.Score, maturity audit.MaturityRating, qr quality.Report) Context {
	return Context{
		KPIs:           kpis,
		AuditScore:     score.TotalScore,
		AuditBreakdown: maps.Clone(score.Breakdown),
		Maturity:       maturity,
		DataQuality:    maps.Clone(qr.Flags),
	}
}

// JSON renders the context for embedding in a prompt.
func (c Context) JSON() (string, error) {
	return jsonIndent(c)
}

// RiskContext is the grounding data for the audit risk explanation.
type RiskContext struct {
	AuditScore       int                     `json:"audit_score"`
	AuditBreakdown   map[string]int          `json:"audit_breakdown"`
	DataQualityFlags map[string]quality.Flag `json:"data_quality_flags"`
	CSRDMaturity     audit.MaturityRating    `json:"csrd_maturity"`
}

// Risk derives the audit risk context from c.
func (c Context) Risk() RiskContext {
	return RiskContext{
		AuditScore:       c.AuditScore,
		AuditBreakdown:   c.AuditBreakdown,
		DataQualityFlags: c.DataQuality,
		CSRDMaturity:     c.Maturity,
	}
}
