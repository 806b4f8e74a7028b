package kpi

// Explanations attached to period changes.
const (
	ExplanationIncrease = "Increase due to operational expansion"
	ExplanationDecrease = "Reduction driven by efficiency measures"
)

// Change is the movement of one metric between two periods.
type Change struct {
	Metric      string  `json:"metric"`
	Previous    float64 `json:"previous"`
	Current     float64 `json:"current"`
	Change      float64 `json:"change"`
	Explanation string  `json:"explanation"`
}

// Compare returns one Change per metric present in both snapshots, in the
// current snapshot's order. Metrics present in only one snapshot are skipped.
//
// The delta is rounded to two decimals so that float noise does not flip a
// flat metric into an "increase". A zero delta reads as a reduction.
func Compare(current, previous Snapshot) []Change {
	changes := make([]Change, 0, current.Len())
	for _, name := range current.names {
		prev, ok := previous.values[name]
		if !ok {
			continue
		}
		cur := current.values[name]
		delta := Round(cur-prev, 2)

		explanation := ExplanationDecrease
		if delta > 0 {
			explanation = ExplanationIncrease
		}

		changes = append(changes, Change{
			Metric:      name,
			Previous:    prev,
			Current:     cur,
			Change:      delta,
			Explanation: explanation,
		})
	}
	return changes
}
