// Package quality inspects an enriched emissions dataset for missing,
// out-of-range and inconsistent values and classifies how each headline
// metric was obtained.
//
// Every check is schema tolerant: an absent column is reported through a
// flag or skipped, never returned as an error.
package quality

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rshade/esgready/internal/dataset"
	"github.com/rshade/esgready/internal/emissions"
	"github.com/rshade/esgready/internal/logging"
)

// Issue types, in the order checks run.
const (
	IssueMissingData        = "Missing Data"
	IssueRangeViolation     = "Range Violation"
	IssueConsistencyWarning = "Consistency Warning"
	IssueDegenerateInput    = "Degenerate Input"
)

// Flag records how a metric was obtained.
type Flag string

// Flag values.
const (
	// FlagMeasured means the column is present with no missing cells.
	FlagMeasured Flag = "Measured"
	// FlagEstimated means the column is present but has gaps.
	FlagEstimated Flag = "Estimated"
	// FlagAssumed means the column is absent from the dataset.
	FlagAssumed Flag = "Assumed"
)

// consistencyMultiplier is how many times the mean facility standard
// deviation a single facility may reach before the dataset is flagged.
const consistencyMultiplier = 2.0

// ExpectedMetrics are the columns that receive a quality flag.
//
//nolint:gochecknoglobals // Constant lookup table.
var ExpectedMetrics = []string{
	emissions.ColumnScope1,
	emissions.ColumnScope2,
	emissions.ColumnTotal,
	emissions.ColumnEnergyKWh,
}

// Issue is one finding.
type Issue struct {
	Type    string `json:"type"`
	Details string `json:"details"`
}

// Report is the outcome of Assess.
type Report struct {
	Issues []Issue         `json:"issues"`
	Flags  map[string]Flag `json:"quality_flags"`
}

// HasIssues reports whether any check raised an issue.
func (r Report) HasIssues() bool { return len(r.Issues) > 0 }

// WithIssue returns a copy of r with issue appended.
func (r Report) WithIssue(issue Issue) Report {
	out := Report{
		Issues: append(append([]Issue(nil), r.Issues...), issue),
		Flags:  make(map[string]Flag, len(r.Flags)),
	}
	for k, v := range r.Flags {
		out.Flags[k] = v
	}
	return out
}

// Assess runs the missing-data, range and consistency checks in that order
// and classifies each ExpectedMetrics column.
func Assess(ctx context.Context, t *dataset.Table) Report {
	logger := logging.FromContext(ctx).With().
		Str("component", "quality").
		Str("operation", "Assess").
		Logger()

	report := Report{Issues: []Issue{}, Flags: make(map[string]Flag, len(ExpectedMetrics))}

	if issue, ok := checkMissing(t); ok {
		report.Issues = append(report.Issues, issue)
	}
	if issue, ok := checkRange(t); ok {
		report.Issues = append(report.Issues, issue)
	}
	if issue, ok := checkConsistency(t); ok {
		report.Issues = append(report.Issues, issue)
	}

	for _, metric := range ExpectedMetrics {
		report.Flags[metric] = classify(t, metric)
	}

	logger.Debug().
		Int("issues", len(report.Issues)).
		Msg("assessed data quality")

	return report
}

func classify(t *dataset.Table, column string) Flag {
	switch {
	case !t.Has(column):
		return FlagAssumed
	case t.HasNull(column):
		return FlagEstimated
	default:
		return FlagMeasured
	}
}

func checkMissing(t *dataset.Table) (Issue, bool) {
	var cols []string
	for _, c := range t.Columns() {
		if t.HasNull(c) {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return Issue{}, false
	}
	return Issue{
		Type:    IssueMissingData,
		Details: "Missing values detected in columns: " + strings.Join(cols, ", "),
	}, true
}

func checkRange(t *dataset.Table) (Issue, bool) {
	values, ok := t.Column(emissions.ColumnTotal)
	if !ok {
		return Issue{}, false
	}
	for _, v := range values {
		if f, isNum := v.Float(); isNum && f < 0 {
			return Issue{
				Type:    IssueRangeViolation,
				Details: "Negative CO₂ emission values detected",
			}, true
		}
	}
	return Issue{}, false
}

// checkConsistency compares per-facility sample standard deviations of
// total_co2_kg. Facilities with fewer than two readings have no defined
// deviation and are left out of both the comparison and the mean.
func checkConsistency(t *dataset.Table) (Issue, bool) {
	if !t.Has(emissions.ColumnFacility) || !t.Has(emissions.ColumnTotal) {
		return Issue{}, false
	}

	groups := map[string][]float64{}
	for r := range t.Len() {
		fac := t.Value(emissions.ColumnFacility, r)
		if fac.Null {
			continue
		}
		if v, ok := t.Value(emissions.ColumnTotal, r).Float(); ok {
			key := fac.String()
			groups[key] = append(groups[key], v)
		}
	}

	var stds []float64
	for _, vals := range groups {
		if sd, ok := sampleStdDev(vals); ok {
			stds = append(stds, sd)
		}
	}
	if len(stds) < 2 {
		return Issue{}, false
	}

	var sum float64
	for _, sd := range stds {
		sum += sd
	}
	limit := sum / float64(len(stds)) * consistencyMultiplier

	for _, sd := range stds {
		if sd > limit {
			return Issue{
				Type:    IssueConsistencyWarning,
				Details: fmt.Sprintf("Large emission variance detected across facilities (std %.2f > %.2f)", sd, limit),
			}, true
		}
	}
	return Issue{}, false
}

// sampleStdDev returns the n-1 standard deviation, undefined below two values.
func sampleStdDev(vals []float64) (float64, bool) {
	n := len(vals)
	if n < 2 {
		return 0, false
	}
	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= float64(n)

	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1)), true
}
