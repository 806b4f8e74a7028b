// Package api holds the request and response shapes shared by the HTTP and
// MCP surfaces, and maps them onto the evaluation engine.
package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/emissions"
	"github.com/rshade/esgready/internal/engine"
	"github.com/rshade/esgready/internal/frameworks"
	"github.com/rshade/esgready/internal/ingest"
	"github.com/rshade/esgready/internal/kpi"
	"github.com/rshade/esgready/internal/narrative"
)

type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidRequest marks errors caused by the caller's input.
const ErrInvalidRequest = constError("invalid request")

// EvaluateRequest is the body of an evaluation. Spend is optional: absent
// skips Scope 3 estimation, an empty list estimates zero.
type EvaluateRequest struct {
	Records []map[string]any `json:"records"`
	Spend   []map[string]any `json:"spend,omitempty"`
	Year    int              `json:"year,omitempty"`
}

// Input converts the request into an engine input.
func (r EvaluateRequest) Input(ctx context.Context) (engine.Input, error) {
	if len(r.Records) == 0 {
		return engine.Input{}, fmt.Errorf("%w: records must be a non-empty array", ErrInvalidRequest)
	}
	if r.Year < 0 {
		return engine.Input{}, fmt.Errorf("%w: year must not be negative", ErrInvalidRequest)
	}

	table, err := ingest.EmissionsFromMaps(ctx, r.Records)
	if err != nil {
		return engine.Input{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	in := engine.Input{Table: table, Year: r.Year}

	if r.Spend != nil {
		spend, spendErr := ingest.SpendFromMaps(ctx, r.Spend)
		if spendErr != nil {
			return engine.Input{}, fmt.Errorf("%w: %w", ErrInvalidRequest, spendErr)
		}
		in.Spend = spend
	}
	return in, nil
}

// Evaluate validates req and runs it through eng. Schema problems in the
// records are reported as ErrInvalidRequest.
func Evaluate(ctx context.Context, eng *engine.Engine, req EvaluateRequest) (*engine.Result, error) {
	in, err := req.Input(ctx)
	if err != nil {
		return nil, err
	}
	res, err := eng.Evaluate(ctx, in)
	if err != nil {
		if errors.Is(err, emissions.ErrMissingColumn) || errors.Is(err, emissions.ErrNonNumeric) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		return nil, err
	}
	return res, nil
}

// CompareRequest holds two KPI snapshots.
type CompareRequest struct {
	Current  kpi.Snapshot `json:"current"`
	Previous kpi.Snapshot `json:"previous"`
}

// CompareResponse lists per-metric changes.
type CompareResponse struct {
	Changes []kpi.Change `json:"changes"`
}

// Compare runs kpi.Compare.
func Compare(req CompareRequest) CompareResponse {
	return CompareResponse{Changes: kpi.Compare(req.Current, req.Previous)}
}

// MaturityRequest classifies a score without a dataset.
type MaturityRequest struct {
	AuditScore    int  `json:"audit_score"`
	Scope3Present bool `json:"scope3_present"`
	Year          int  `json:"year"`
}

// Maturity validates req and classifies it.
func Maturity(req MaturityRequest) (audit.MaturityRating, error) {
	if req.AuditScore < 0 || req.AuditScore > audit.MaxScore {
		return audit.MaturityRating{}, fmt.Errorf("%w: audit_score must be between 0 and %d",
			ErrInvalidRequest, audit.MaxScore)
	}
	return audit.ClassifyMaturity(req.Year, req.AuditScore, req.Scope3Present), nil
}

// FrameworksResponse describes framework mappings and coverage.
type FrameworksResponse struct {
	Mappings      map[string][]frameworks.Mapping `json:"mappings"`
	Coverage      []frameworks.TopicCoverage      `json:"coverage"`
	CoverageRatio float64                         `json:"coverage_ratio"`
	Gaps          []string                        `json:"gaps"`
}

// Frameworks returns the static framework reference data.
func Frameworks() FrameworksResponse {
	matrix := frameworks.Coverage()
	return FrameworksResponse{
		Mappings:      frameworks.All(),
		Coverage:      matrix,
		CoverageRatio: kpi.Round(frameworks.CoverageRatio(matrix), 4),
		Gaps:          frameworks.Gaps(matrix),
	}
}

// Narrative kinds.
const (
	NarrativeKindSummary = "narrative"
	NarrativeKindRisk    = "risk"
)

// NarrativeRequest evaluates a dataset and narrates the result.
type NarrativeRequest struct {
	EvaluateRequest

	// Kind is "narrative" (default) or "risk".
	Kind string `json:"kind,omitempty"`
}

// NarrativeResponse pairs the narrative with the evaluation it describes.
type NarrativeResponse struct {
	EvaluationID string              `json:"evaluation_id"`
	Narrative    narrative.Narrative `json:"narrative"`
}

// Narrate evaluates req and narrates the result with svc.
func Narrate(ctx context.Context, eng *engine.Engine, svc *narrative.Service, req NarrativeRequest) (NarrativeResponse, error) {
	kind := req.Kind
	if kind == "" {
		kind = NarrativeKindSummary
	}
	if kind != NarrativeKindSummary && kind != NarrativeKindRisk {
		return NarrativeResponse{}, fmt.Errorf("%w: kind must be %q or %q",
			ErrInvalidRequest, NarrativeKindSummary, NarrativeKindRisk)
	}

	res, err := Evaluate(ctx, eng, req.EvaluateRequest)
	if err != nil {
		return NarrativeResponse{}, err
	}
	nc := NarrativeContext(res)

	var n narrative.Narrative
	if kind == NarrativeKindRisk {
		n = svc.ExplainRisk(ctx, nc)
	} else {
		n = svc.Narrate(ctx, nc)
	}
	return NarrativeResponse{EvaluationID: res.ID, Narrative: n}, nil
}

// NarrativeContext builds the grounding context for a result.
func NarrativeContext(res *engine.Result) narrative.Context {
	return narrative.NewContext(res.Snapshot(), res.Score, res.Maturity, res.Quality)
}
