package kpi_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgready/internal/kpi"
)

func TestSnapshot_OrderAndLookup(t *testing.T) {
	s := kpi.New(
		kpi.Metric{Name: kpi.MetricTotalEnergy, Value: 1000},
		kpi.Metric{Name: kpi.MetricRenewablePct, Value: 20},
	)

	assert.Equal(t, []string{kpi.MetricTotalEnergy, kpi.MetricRenewablePct}, s.Names())
	v, ok := s.Get(kpi.MetricRenewablePct)
	assert.True(t, ok)
	assert.InDelta(t, 20.0, v, 1e-9)
	assert.InDelta(t, 0.0, s.Value(kpi.MetricScope3), 1e-9)
	assert.False(t, s.Has(kpi.MetricScope3))
}

func TestSnapshot_WithCopies(t *testing.T) {
	base := kpi.New(kpi.Metric{Name: kpi.MetricScope1, Value: 1})
	base.Degenerate = true

	next := base.With(kpi.MetricScope3, 42)

	assert.False(t, base.Has(kpi.MetricScope3))
	assert.True(t, next.Has(kpi.MetricScope3))
	assert.True(t, next.Degenerate)
	assert.Equal(t, 2, next.Len())
}

func TestSnapshot_JSONKeepsOrder(t *testing.T) {
	s := kpi.New(
		kpi.Metric{Name: "b", Value: 2},
		kpi.Metric{Name: "a", Value: 1.5},
	)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2,"a":1.5}`, string(data))
	assert.Equal(t, `{"b":2,"a":1.5}`, string(data))

	var decoded kpi.Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"b", "a"}, decoded.Names())
	assert.InDelta(t, 1.5, decoded.Value("a"), 1e-9)
}

func TestSnapshot_UnmarshalRejectsNonObject(t *testing.T) {
	var s kpi.Snapshot
	require.Error(t, json.Unmarshal([]byte(`[1,2]`), &s))
	require.Error(t, json.Unmarshal([]byte(`{"a":"x"}`), &s))
}

func TestRound(t *testing.T) {
	assert.InDelta(t, 656.0, kpi.Round(655.9999999, 2), 1e-9)
	assert.InDelta(t, 1.24, kpi.Round(1.2351, 2), 1e-9)
	assert.InDelta(t, -1.24, kpi.Round(-1.2351, 2), 1e-9)
	assert.InDelta(t, 0.12, kpi.Round(0.125, 2), 1e-9, "exact halves go to even")
	assert.InDelta(t, 0.38, kpi.Round(0.375, 2), 1e-9)
	assert.InDelta(t, -0.12, kpi.Round(-0.125, 2), 1e-9)
}
