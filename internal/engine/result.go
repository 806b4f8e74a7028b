package engine

import (
	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/emissions"
	"github.com/rshade/esgready/internal/finance"
	"github.com/rshade/esgready/internal/kpi"
	"github.com/rshade/esgready/internal/quality"
	"github.com/rshade/esgready/internal/scope3"
)

// Result bundles everything the surfaces render for one evaluation.
type Result struct {
	ID        string `json:"id"`
	Year      int    `json:"year"`
	Rows      int    `json:"rows"`
	Alignment string `json:"framework_alignment"`

	KPIs       kpi.Snapshot           `json:"kpis"`
	Degenerate bool                   `json:"degenerate,omitempty"`
	Score      audit.Score            `json:"audit"`
	Quality    quality.Report         `json:"quality"`
	Maturity   audit.MaturityRating   `json:"maturity"`
	Trace      audit.Trace            `json:"trace"`
	Scope3     *scope3.Report         `json:"scope3,omitempty"`
	Finance    []finance.Insight      `json:"finance"`
	Trend      []emissions.DailyTotal `json:"trend,omitempty"`

	// Cached is set when the result came from the memo cache.
	Cached bool `json:"-"`
}

// Scope3Present reports whether Scope 3 emissions were estimated.
func (r *Result) Scope3Present() bool {
	return r.Scope3 != nil && r.Scope3.Present()
}

// Snapshot returns the KPIs with the Degenerate flag restored, for results
// decoded from JSON.
func (r *Result) Snapshot() kpi.Snapshot {
	s := r.KPIs
	s.Degenerate = r.Degenerate
	return s
}
