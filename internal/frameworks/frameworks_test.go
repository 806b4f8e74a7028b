package frameworks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgready/internal/frameworks"
)

func TestAll(t *testing.T) {
	all := frameworks.All()
	require.Len(t, all, 3)
	assert.Len(t, all[frameworks.SetCSRDGRI], 5)
	assert.Len(t, all[frameworks.SetSASB], 4)
	assert.Len(t, all[frameworks.SetTCFD], 3)

	for _, name := range frameworks.SetNames() {
		assert.Contains(t, all, name)
	}
	for _, m := range all[frameworks.SetCSRDGRI] {
		assert.NotEmpty(t, m.CSRD, m.Metric)
		assert.NotEmpty(t, m.GRI, m.Metric)
	}
}

func TestCoverageRatio(t *testing.T) {
	// 11 compliant, 7 partial, 6 uncovered out of 24 cells.
	assert.InDelta(t, 14.5/24, frameworks.CoverageRatio(frameworks.Coverage()), 1e-9)
	assert.InDelta(t, 0.0, frameworks.CoverageRatio(nil), 1e-9)

	full := []frameworks.TopicCoverage{{
		Topic: "x",
		Status: map[string]frameworks.Status{
			frameworks.CSRD: frameworks.Compliant,
			frameworks.GRI:  frameworks.Compliant,
			frameworks.SASB: frameworks.Compliant,
			frameworks.TCFD: frameworks.Compliant,
		},
	}}
	assert.InDelta(t, 1.0, frameworks.CoverageRatio(full), 1e-9)
	assert.Empty(t, frameworks.Gaps(full))
}

func TestCoverageRatio_MissingCellIsUncovered(t *testing.T) {
	m := []frameworks.TopicCoverage{{
		Topic:  "x",
		Status: map[string]frameworks.Status{frameworks.CSRD: frameworks.Compliant},
	}}
	assert.InDelta(t, 0.25, frameworks.CoverageRatio(m), 1e-9)
	assert.Equal(t, []string{"x (GRI)", "x (SASB)", "x (TCFD)"}, frameworks.Gaps(m))
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want frameworks.Status
	}{
		{"✔", frameworks.Compliant},
		{" ⚠ ", frameworks.Partial},
		{"❌", frameworks.NotCovered},
		{"Partial", frameworks.Partial},
	}
	for _, tt := range tests {
		got, err := frameworks.ParseStatus(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.want.Symbol(), got.Symbol())
	}

	_, err := frameworks.ParseStatus("maybe")
	require.Error(t, err)
}
