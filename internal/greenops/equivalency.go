package greenops

import (
	"fmt"
	"math"
	"strings"

	"github.com/rshade/esgready/internal/kpi"
)

// Kind is a category of equivalency.
type Kind string

// Equivalency kinds, in display priority.
const (
	KindMilesDriven        Kind = "miles_driven"
	KindSmartphonesCharged Kind = "smartphones_charged"
	KindTreeSeedlings      Kind = "tree_seedlings"
	KindHomeDays           Kind = "home_days"
)

// Equivalency is one computed comparison.
type Equivalency struct {
	Kind      Kind    `json:"kind"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
	Label     string  `json:"label"`
}

// Summary is the equivalency block shown next to a CO2 total.
type Summary struct {
	InputKg       float64       `json:"input_kg"`
	Equivalencies []Equivalency `json:"equivalencies"`

	// Text reads "Equivalent to driving ~X miles or charging ~Y smartphones".
	Text string `json:"text"`
	// Compact reads "(≈ X mi, Y phones)".
	Compact string `json:"compact"`
}

// Empty reports whether the total was too small for any equivalency.
func (s Summary) Empty() bool { return len(s.Equivalencies) == 0 }

// Calculate computes equivalencies for value in unit. Totals below
// MinEquivalencyThresholdKg return an empty Summary without error. Tree
// seedlings are included only from TreeThresholdKg.
func Calculate(value float64, unit string) (Summary, error) {
	kg, err := NormalizeToKg(value, unit)
	if err != nil {
		return Summary{}, err
	}
	if kg < MinEquivalencyThresholdKg {
		return Summary{InputKg: kg}, nil
	}

	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor
	homeDays := kg / EPAHomeDayFactor
	if math.IsInf(miles, 0) || math.IsInf(phones, 0) {
		return Summary{}, ErrCalculationOverflow
	}

	out := Summary{InputKg: kg}
	out.add(KindMilesDriven, miles, "miles driven")
	out.add(KindSmartphonesCharged, phones, "smartphones charged")
	out.add(KindHomeDays, homeDays, "days of home electricity")
	if kg >= TreeThresholdKg {
		out.add(KindTreeSeedlings, kg/EPATreeSeedlingFactor, "tree seedlings grown for 10 years")
	}

	out.Text = fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
		out.Equivalencies[0].Formatted, out.Equivalencies[1].Formatted)
	out.Compact = fmt.Sprintf("(≈ %s mi, %s phones)",
		out.Equivalencies[0].Formatted, out.Equivalencies[1].Formatted)
	return out, nil
}

func (s *Summary) add(kind Kind, v float64, label string) {
	s.Equivalencies = append(s.Equivalencies, Equivalency{
		Kind:      kind,
		Value:     v,
		Formatted: formatEquivalency(v),
		Label:     label,
	})
}

// FromSnapshot computes equivalencies for the total footprint in kpis:
// Total CO₂ plus Scope 3 when present. Negative or missing totals yield an
// empty Summary.
func FromSnapshot(kpis kpi.Snapshot) Summary {
	kg := kpis.Value(kpi.MetricTotalCO2) + kpis.Value(kpi.MetricScope3)
	if kg <= 0 {
		return Summary{}
	}
	out, err := Calculate(kg, "kg")
	if err != nil {
		return Summary{}
	}
	return out
}

// Lines renders one "~X label" line per equivalency.
func (s Summary) Lines() []string {
	lines := make([]string, 0, len(s.Equivalencies))
	for _, e := range s.Equivalencies {
		lines = append(lines, "~"+e.Formatted+" "+e.Label)
	}
	return lines
}

// String implements fmt.Stringer.
func (s Summary) String() string {
	return strings.Join(s.Lines(), "; ")
}

func formatEquivalency(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
