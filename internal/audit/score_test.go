package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/dataset"
	"github.com/rshade/esgready/internal/emissions"
	"github.com/rshade/esgready/internal/frameworks"
	"github.com/rshade/esgready/internal/kpi"
)

func fullTable() *dataset.Table {
	return dataset.New(emissions.RequiredColumns...)
}

func snapshot(scope1, scope2, renewable float64) kpi.Snapshot {
	return kpi.New(
		kpi.Metric{Name: kpi.MetricRenewablePct, Value: renewable},
		kpi.Metric{Name: kpi.MetricScope1, Value: scope1},
		kpi.Metric{Name: kpi.MetricScope2, Value: scope2},
	)
}

func TestCalculate_FullMarks(t *testing.T) {
	score := audit.Calculate(context.Background(), fullTable(), snapshot(10, 10, 45))

	assert.Equal(t, map[string]int{
		audit.AreaDataCompleteness:      30,
		audit.AreaEmissionsCoverage:     30,
		audit.AreaRenewableTransparency: 20,
		audit.AreaFrameworkAlignment:    20,
	}, score.Breakdown)
	assert.Equal(t, 100, score.TotalScore)
	assert.Empty(t, score.MissingColumns)
}

func TestCalculate_MissingColumns(t *testing.T) {
	tbl := dataset.New(emissions.ColumnEnergyKWh, emissions.ColumnRenewableKWh, emissions.ColumnFuelLiters)

	score := audit.Calculate(context.Background(), tbl, snapshot(1, 1, 0))

	assert.Equal(t, 18, score.Points(audit.AreaDataCompleteness))
	assert.Equal(t, []string{emissions.ColumnDate, emissions.ColumnFacility}, score.MissingColumns)
	assert.Equal(t, 18+30+0+20, score.TotalScore)
}

func TestCalculate_NilTableAndEmptySnapshot(t *testing.T) {
	score := audit.Calculate(context.Background(), nil, kpi.Snapshot{})

	assert.Equal(t, 0, score.Points(audit.AreaDataCompleteness))
	assert.Equal(t, 0, score.Points(audit.AreaEmissionsCoverage))
	assert.Equal(t, 0, score.Points(audit.AreaRenewableTransparency))
	assert.Equal(t, 20, score.TotalScore)
}

func TestCalculate_EmissionsCoverageTiers(t *testing.T) {
	tests := []struct {
		name           string
		scope1, scope2 float64
		want           int
	}{
		{"both", 1, 1, 30},
		{"scope1 only", 1, 0, 15},
		{"scope2 only", 0, 2, 15},
		{"neither", 0, 0, 0},
		{"negative counts as absent", -5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := audit.Calculate(context.Background(), fullTable(), snapshot(tt.scope1, tt.scope2, 0))
			assert.Equal(t, tt.want, score.Points(audit.AreaEmissionsCoverage))
		})
	}
}

func TestRenewablePoints(t *testing.T) {
	tests := []struct {
		pct  float64
		want int
	}{
		{100, 20},
		{40, 20},
		{39.99, 12},
		{20, 12},
		{19.99, 6},
		{0.01, 6},
		{0, 0},
		{-3, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, audit.RenewablePoints(tt.pct), "pct=%v", tt.pct)
	}
}

func TestScorer_CoverageAlignment(t *testing.T) {
	scorer := audit.NewScorer(audit.CoverageAlignment{})
	score := scorer.Score(context.Background(), fullTable(), snapshot(1, 1, 45))

	// round(20 * 14.5/24) = 12
	assert.Equal(t, 12, score.Points(audit.AreaFrameworkAlignment))
	assert.Equal(t, 92, score.TotalScore)

	empty := audit.NewScorer(audit.CoverageAlignment{Matrix: []frameworks.TopicCoverage{}})
	assert.Equal(t, 0, empty.Score(context.Background(), fullTable(), kpi.Snapshot{}).Points(audit.AreaFrameworkAlignment))
}

type overAlignment struct{}

func (overAlignment) Name() string { return "over" }
func (overAlignment) Points() int  { return 500 }

func TestScorer_AlignmentIsClamped(t *testing.T) {
	score := audit.NewScorer(overAlignment{}).Score(context.Background(), fullTable(), snapshot(1, 1, 45))
	assert.Equal(t, audit.MaxFrameworkAlignment, score.Points(audit.AreaFrameworkAlignment))
	assert.Equal(t, 100, score.TotalScore)
}

func TestAlignmentByName(t *testing.T) {
	for name, want := range map[string]string{
		"":          audit.AlignmentFixed,
		"fixed":     audit.AlignmentFixed,
		" Coverage": audit.AlignmentCoverage,
	} {
		a, err := audit.AlignmentByName(name)
		require.NoError(t, err)
		assert.Equal(t, want, a.Name())
	}

	_, err := audit.AlignmentByName("weighted")
	require.Error(t, err)
	assert.True(t, errors.Is(err, audit.ErrUnknownAlignment))
}

func TestCalculate_Idempotent(t *testing.T) {
	tbl := fullTable()
	s := snapshot(3, 0, 25)
	assert.Equal(t, audit.Calculate(context.Background(), tbl, s), audit.Calculate(context.Background(), tbl, s))
}
