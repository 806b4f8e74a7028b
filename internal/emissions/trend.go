package emissions

import (
	"sort"

	"github.com/rshade/esgready/internal/dataset"
	"github.com/rshade/esgready/internal/kpi"
)

// DailyTotal is the summed total CO2 for one date.
type DailyTotal struct {
	Date       string  `json:"date"`
	TotalCO2Kg float64 `json:"total_co2_kg"`
}

// TrendByDate groups total_co2_kg by the date column, sorted by date text.
// ISO dates sort chronologically. Returns nil when either column is absent.
func TrendByDate(t *dataset.Table) []DailyTotal {
	if !t.Has(ColumnDate) || !t.Has(ColumnTotal) {
		return nil
	}

	sums := map[string]float64{}
	for r := range t.Len() {
		date := t.Value(ColumnDate, r)
		if date.Null {
			continue
		}
		if v, ok := t.Value(ColumnTotal, r).Float(); ok {
			sums[date.String()] += v
		}
	}

	out := make([]DailyTotal, 0, len(sums))
	for d, v := range sums {
		out = append(out, DailyTotal{Date: d, TotalCO2Kg: kpi.Round(v, 2)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
