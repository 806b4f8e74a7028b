package audit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/esgready/internal/audit"
)

func TestClassifyMaturity(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		scope3    bool
		wantLevel int
		wantLabel string
	}{
		{"optimized", 85, true, 5, "Optimized"},
		{"85 without scope3", 85, false, 4, "Managed"},
		{"84 with scope3", 84, true, 4, "Managed"},
		{"managed floor", 70, false, 4, "Managed"},
		{"defined", 69, true, 3, "Defined"},
		{"defined floor", 50, false, 3, "Defined"},
		{"basic", 49, false, 2, "Basic"},
		{"basic floor", 30, true, 2, "Basic"},
		{"ad-hoc", 29, true, 1, "Ad-hoc"},
		{"negative", -10, false, 1, "Ad-hoc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := audit.ClassifyMaturity(2025, tt.score, tt.scope3)
			assert.Equal(t, tt.wantLevel, got.MaturityLevel)
			assert.Equal(t, tt.wantLabel, got.MaturityLabel)
			assert.Equal(t, tt.score, got.AuditScore)
			assert.Equal(t, 2025, got.Year)
		})
	}
}

func TestMaturityLabel(t *testing.T) {
	assert.Equal(t, "Defined", audit.MaturityLabel(3))
	assert.Empty(t, audit.MaturityLabel(0))
	assert.Empty(t, audit.MaturityLabel(6))
}
