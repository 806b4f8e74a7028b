// Package audit scores how ready an emissions dataset is for a CSRD audit,
// classifies the resulting maturity tier and explains every awarded point.
//
// The Score breakdown is the single source of truth: the trace derives its
// text from the points awarded, never from the raw inputs.
package audit

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rshade/esgready/internal/dataset"
	"github.com/rshade/esgready/internal/emissions"
	"github.com/rshade/esgready/internal/frameworks"
	"github.com/rshade/esgready/internal/kpi"
	"github.com/rshade/esgready/internal/logging"
)

// Rubric area names. They are the breakdown keys.
const (
	AreaDataCompleteness      = "Data Completeness"
	AreaEmissionsCoverage     = "Emissions Coverage"
	AreaRenewableTransparency = "Renewable Transparency"
	AreaFrameworkAlignment    = "Framework Alignment"
)

// Points available per area and the overall cap.
const (
	MaxDataCompleteness      = 30
	MaxEmissionsCoverage     = 30
	MaxRenewableTransparency = 20
	MaxFrameworkAlignment    = 20
	MaxScore                 = 100

	// PointsPerMissingColumn is deducted from Data Completeness for each
	// required column absent from the dataset.
	PointsPerMissingColumn = 6

	// PartialEmissionsCoverage is awarded when only one of Scope 1 or 2 is reported.
	PartialEmissionsCoverage = 15
)

// Renewable share thresholds, in percent.
const (
	// RenewableThresholdHigh earns the full 20 points at or above 40%.
	RenewableThresholdHigh = 40.0

	// RenewableThresholdMid earns 12 points at or above 20%.
	RenewableThresholdMid = 20.0

	renewablePointsMid = 12
	renewablePointsLow = 6
)

// Areas returns the rubric areas in scoring order.
func Areas() []string {
	return []string{
		AreaDataCompleteness,
		AreaEmissionsCoverage,
		AreaRenewableTransparency,
		AreaFrameworkAlignment,
	}
}

// Score is an audit readiness result.
type Score struct {
	TotalScore int            `json:"total_score"`
	Breakdown  map[string]int `json:"breakdown"`

	// MissingColumns lists the required columns that cost completeness points.
	MissingColumns []string `json:"missing_columns,omitempty"`

	// FrameworkGaps lists the coverage cells behind a partial Framework
	// Alignment award, taken from the matrix the alignment scored.
	FrameworkGaps []string `json:"framework_gaps,omitempty"`
}

// Points returns the points awarded for area.
func (s Score) Points(area string) int { return s.Breakdown[area] }

// Alignment names accepted by AlignmentByName.
const (
	AlignmentFixed    = "fixed"
	AlignmentCoverage = "coverage"
)

// ErrUnknownAlignment is returned by AlignmentByName for an unsupported name.
var ErrUnknownAlignment = constError("unknown framework alignment strategy")

// FrameworkAlignment decides the Framework Alignment points.
type FrameworkAlignment interface {
	Name() string
	Points() int
}

// GapReporter is implemented by alignments that can name the coverage gaps
// behind their points.
type GapReporter interface {
	Gaps() []string
}

// FixedAlignment treats the framework mapping tables as implemented and
// always awards full points.
type FixedAlignment struct{}

// Name implements FrameworkAlignment.
func (FixedAlignment) Name() string { return AlignmentFixed }

// Points implements FrameworkAlignment.
func (FixedAlignment) Points() int { return MaxFrameworkAlignment }

// CoverageAlignment awards points in proportion to coverage matrix
// completeness. A nil Matrix uses frameworks.Coverage.
type CoverageAlignment struct {
	Matrix []frameworks.TopicCoverage
}

// Name implements FrameworkAlignment.
func (CoverageAlignment) Name() string { return AlignmentCoverage }

// Points implements FrameworkAlignment.
func (c CoverageAlignment) Points() int {
	return int(math.Round(MaxFrameworkAlignment * frameworks.CoverageRatio(c.matrix())))
}

// Gaps implements GapReporter.
func (c CoverageAlignment) Gaps() []string {
	return frameworks.Gaps(c.matrix())
}

func (c CoverageAlignment) matrix() []frameworks.TopicCoverage {
	if c.Matrix == nil {
		return frameworks.Coverage()
	}
	return c.Matrix
}

// AlignmentByName resolves a configured strategy name. Empty means fixed.
func AlignmentByName(name string) (FrameworkAlignment, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", AlignmentFixed:
		return FixedAlignment{}, nil
	case AlignmentCoverage:
		return CoverageAlignment{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlignment, name)
	}
}

// Scorer computes audit readiness scores. The zero value uses FixedAlignment.
type Scorer struct {
	Alignment FrameworkAlignment
}

// NewScorer returns a Scorer using alignment, or FixedAlignment when nil.
func NewScorer(alignment FrameworkAlignment) *Scorer {
	return &Scorer{Alignment: alignment}
}

// Calculate scores t and kpis with the default fixed alignment.
func Calculate(ctx context.Context, t *dataset.Table, kpis kpi.Snapshot) Score {
	return Scorer{}.Score(ctx, t, kpis)
}

// Score evaluates the four rubric areas. Missing KPI keys count as zero and a
// nil table counts as having no columns; it never fails.
func (s Scorer) Score(ctx context.Context, t *dataset.Table, kpis kpi.Snapshot) Score {
	logger := logging.FromContext(ctx).With().
		Str("component", "audit").
		Str("operation", "Score").
		Logger()

	alignment := s.Alignment
	if alignment == nil {
		alignment = FixedAlignment{}
	}

	missing := emissions.MissingRequired(t)

	breakdown := map[string]int{
		AreaDataCompleteness:      completenessPoints(len(missing)),
		AreaEmissionsCoverage:     coveragePoints(kpis.Value(kpi.MetricScope1), kpis.Value(kpi.MetricScope2)),
		AreaRenewableTransparency: RenewablePoints(kpis.Value(kpi.MetricRenewablePct)),
		AreaFrameworkAlignment:    clamp(alignment.Points(), 0, MaxFrameworkAlignment),
	}

	total := 0
	for _, p := range breakdown {
		total += p
	}

	score := Score{
		TotalScore:     min(MaxScore, total),
		Breakdown:      breakdown,
		MissingColumns: missing,
	}
	if gr, ok := alignment.(GapReporter); ok && breakdown[AreaFrameworkAlignment] < MaxFrameworkAlignment {
		score.FrameworkGaps = gr.Gaps()
	}

	logger.Debug().
		Int("total_score", score.TotalScore).
		Str("alignment", alignment.Name()).
		Strs("missing_columns", missing).
		Msg("scored audit readiness")

	return score
}

func completenessPoints(missing int) int {
	return max(0, MaxDataCompleteness-PointsPerMissingColumn*missing)
}

func coveragePoints(scope1, scope2 float64) int {
	switch {
	case scope1 > 0 && scope2 > 0:
		return MaxEmissionsCoverage
	case scope1 > 0 || scope2 > 0:
		return PartialEmissionsCoverage
	default:
		return 0
	}
}

// RenewablePoints maps a renewable share to Renewable Transparency points.
//
// Tiers:
//   - 20: 40% and above
//   - 12: 20% up to 40%
//   - 6: above 0% up to 20%
//   - 0: zero or negative
func RenewablePoints(pct float64) int {
	switch {
	case pct >= RenewableThresholdHigh:
		return MaxRenewableTransparency
	case pct >= RenewableThresholdMid:
		return renewablePointsMid
	case pct > 0:
		return renewablePointsLow
	default:
		return 0
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
