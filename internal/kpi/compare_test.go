package kpi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgready/internal/kpi"
)

func TestCompare(t *testing.T) {
	current := kpi.New(
		kpi.Metric{Name: kpi.MetricTotalEnergy, Value: 1200},
		kpi.Metric{Name: kpi.MetricTotalCO2, Value: 700.1},
		kpi.Metric{Name: kpi.MetricScope3, Value: 50},
	)
	previous := kpi.New(
		kpi.Metric{Name: kpi.MetricTotalCO2, Value: 771.5},
		kpi.Metric{Name: kpi.MetricTotalEnergy, Value: 1000},
		kpi.Metric{Name: kpi.MetricRenewablePct, Value: 20},
	)

	changes := kpi.Compare(current, previous)
	require.Len(t, changes, 2)

	assert.Equal(t, kpi.MetricTotalEnergy, changes[0].Metric)
	assert.InDelta(t, 200.0, changes[0].Change, 1e-9)
	assert.Equal(t, kpi.ExplanationIncrease, changes[0].Explanation)

	assert.Equal(t, kpi.MetricTotalCO2, changes[1].Metric)
	assert.InDelta(t, -71.4, changes[1].Change, 1e-9)
	assert.Equal(t, kpi.ExplanationDecrease, changes[1].Explanation)
}

func TestCompare_SelfIsZero(t *testing.T) {
	s := kpi.New(
		kpi.Metric{Name: kpi.MetricScope1, Value: 115.5},
		kpi.Metric{Name: kpi.MetricScope2, Value: 656},
	)
	for _, c := range kpi.Compare(s, s) {
		assert.Zero(t, c.Change, c.Metric)
		assert.Equal(t, kpi.ExplanationDecrease, c.Explanation)
	}
}

func TestCompare_Disjoint(t *testing.T) {
	a := kpi.New(kpi.Metric{Name: "x", Value: 1})
	b := kpi.New(kpi.Metric{Name: "y", Value: 1})
	assert.Empty(t, kpi.Compare(a, b))
	assert.Empty(t, kpi.Compare(kpi.Snapshot{}, kpi.Snapshot{}))
}
