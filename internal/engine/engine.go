// Package engine runs the audit readiness pipeline over one dataset:
// emissions, Scope 3, data quality, audit score, maturity, trace and
// financial linkage, in data-flow order.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/dataset"
	"github.com/rshade/esgready/internal/emissions"
	"github.com/rshade/esgready/internal/engine/cache"
	"github.com/rshade/esgready/internal/finance"
	"github.com/rshade/esgready/internal/kpi"
	"github.com/rshade/esgready/internal/logging"
	"github.com/rshade/esgready/internal/quality"
	"github.com/rshade/esgready/internal/scope3"
)

const cacheNamespace = "evaluate/v1"

// DegenerateInputDetails describes the zero-energy quality issue.
const DegenerateInputDetails = "Total energy_kwh is zero; renewable share reported as 0%"

// Engine evaluates datasets. It holds no per-evaluation state and is safe
// for concurrent use.
type Engine struct {
	scorer *audit.Scorer
	cache  *cache.FileStore
	now    func() time.Time
}

// New returns an Engine scoring Framework Alignment with alignment, or with
// audit.FixedAlignment when nil.
func New(alignment audit.FrameworkAlignment) *Engine {
	return NewWithTime(alignment, time.Now)
}

// NewWithTime is New with a custom clock, used for the default reporting year.
func NewWithTime(alignment audit.FrameworkAlignment, now func() time.Time) *Engine {
	if alignment == nil {
		alignment = audit.FixedAlignment{}
	}
	return &Engine{scorer: audit.NewScorer(alignment), now: now}
}

// WithCache memoizes evaluations in store. A nil or disabled store is ignored.
func (e *Engine) WithCache(store *cache.FileStore) *Engine {
	if store.Enabled() {
		e.cache = store
	}
	return e
}

// Alignment returns the configured Framework Alignment strategy name.
func (e *Engine) Alignment() string {
	return e.scorer.Alignment.Name()
}

// Input is one evaluation request.
type Input struct {
	Table *dataset.Table
	// Spend is optional; nil skips Scope 3 estimation.
	Spend []scope3.SpendRecord
	// Year is the reporting year; zero means the current year.
	Year int
}

// Evaluate runs the whole pipeline. It fails only when a column needed for
// the emissions calculation is missing or non-numeric; every other edge case
// yields a neutral result.
func (e *Engine) Evaluate(ctx context.Context, in Input) (*Result, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "engine").
		Str("operation", "Evaluate").
		Logger()

	year := in.Year
	if year == 0 {
		year = e.now().Year()
	}

	key := e.cacheKey(ctx, in, year)
	if cached := e.lookup(ctx, key); cached != nil {
		return cached, nil
	}

	enriched, err := emissions.Calculate(ctx, in.Table)
	if err != nil {
		return nil, fmt.Errorf("calculating emissions: %w", err)
	}
	kpis, err := emissions.Aggregate(enriched)
	if err != nil {
		return nil, fmt.Errorf("aggregating emissions: %w", err)
	}

	var s3 *scope3.Report
	if in.Spend != nil {
		report := scope3.EstimateAll(in.Spend)
		s3 = &report
		kpis = kpis.With(kpi.MetricScope3, report.TotalKg)
	}

	qr := quality.Assess(ctx, enriched)
	if kpis.Degenerate && enriched.Len() > 0 {
		qr = qr.WithIssue(quality.Issue{Type: quality.IssueDegenerateInput, Details: DegenerateInputDetails})
	}

	score := e.scorer.Score(ctx, enriched, kpis)

	result := &Result{
		ID:         logging.NewID(),
		Year:       year,
		Rows:       enriched.Len(),
		Alignment:  e.Alignment(),
		KPIs:       kpis,
		Degenerate: kpis.Degenerate,
		Score:      score,
		Quality:    qr,
		Trace:      audit.Explain(score),
		Scope3:     s3,
		Trend:      emissions.TrendByDate(enriched),
	}
	result.Maturity = audit.ClassifyMaturity(year, score.TotalScore, result.Scope3Present())
	result.Finance = finance.Linkage(kpis, score.TotalScore, result.Maturity.MaturityLevel)

	logger.Info().
		Str("evaluation_id", result.ID).
		Int("rows", result.Rows).
		Int("audit_score", score.TotalScore).
		Int("maturity_level", result.Maturity.MaturityLevel).
		Int("quality_issues", len(qr.Issues)).
		Msg("evaluation complete")

	e.store(ctx, key, result)
	return result, nil
}

// Compare returns the period changes between two results' KPIs.
func Compare(current, previous *Result) []kpi.Change {
	return kpi.Compare(current.KPIs, previous.KPIs)
}

type cacheKeyInput struct {
	Columns   []string             `json:"columns"`
	Records   []map[string]any     `json:"records"`
	Spend     []scope3.SpendRecord `json:"spend"`
	HasSpend  bool                 `json:"has_spend"`
	Year      int                  `json:"year"`
	Alignment string               `json:"alignment"`
}

func (e *Engine) cacheKey(ctx context.Context, in Input, year int) string {
	if e.cache == nil || in.Table == nil {
		return ""
	}
	key, err := cache.Key(cacheNamespace, cacheKeyInput{
		Columns:   in.Table.Columns(),
		Records:   in.Table.Records(),
		Spend:     in.Spend,
		HasSpend:  in.Spend != nil,
		Year:      year,
		Alignment: e.Alignment(),
	})
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("cache key unavailable")
		return ""
	}
	return key
}

func (e *Engine) lookup(ctx context.Context, key string) *Result {
	if key == "" {
		return nil
	}
	log := logging.FromContext(ctx)

	entry, err := e.cache.Get(key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheNotFound) {
			log.Debug().Err(err).Msg("cache lookup failed")
		}
		return nil
	}

	var result Result
	if err = entry.Decode(&result); err != nil {
		log.Debug().Err(err).Msg("cached result unreadable")
		return nil
	}
	result.Cached = true

	log.Debug().
		Str("component", "engine").
		Str("evaluation_id", result.ID).
		Dur("age", entry.Age()).
		Msg("evaluation served from cache")
	return &result
}

func (e *Engine) store(ctx context.Context, key string, result *Result) {
	if key == "" {
		return
	}
	data, err := json.Marshal(result)
	if err == nil {
		err = e.cache.Set(key, data)
	}
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("caching evaluation failed")
	}
}
