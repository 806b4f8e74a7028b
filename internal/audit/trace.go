package audit

import (
	"fmt"
	"strings"
)

// maxGapsInTrace bounds how many coverage gaps the alignment improvement names.
const maxGapsInTrace = 3

// TraceEntry explains the points awarded for one rubric area.
type TraceEntry struct {
	Score       int    `json:"score"`
	Reason      string `json:"reason"`
	Improvement string `json:"improvement"`
}

// Trace maps each rubric area to its explanation. Iterate with Areas for a
// stable order.
type Trace map[string]TraceEntry

// Explain builds the trace for score. It reads only the breakdown and the
// missing column and framework gap lists, so its text always agrees with the
// points awarded.
func Explain(score Score) Trace {
	return Trace{
		AreaDataCompleteness:      explainCompleteness(score),
		AreaEmissionsCoverage:     explainCoverage(score.Points(AreaEmissionsCoverage)),
		AreaRenewableTransparency: explainRenewable(score.Points(AreaRenewableTransparency)),
		AreaFrameworkAlignment:    explainAlignment(score),
	}
}

func explainCompleteness(score Score) TraceEntry {
	pts := score.Points(AreaDataCompleteness)
	if pts == MaxDataCompleteness {
		return TraceEntry{
			Score:       pts,
			Reason:      "All required ESG columns present",
			Improvement: "None required",
		}
	}

	cols := strings.Join(score.MissingColumns, ", ")
	if cols == "" {
		cols = "one or more required columns"
	}
	return TraceEntry{
		Score:       pts,
		Reason:      "Missing required ESG columns: " + cols,
		Improvement: "Capture " + cols + " for every record",
	}
}

func explainCoverage(pts int) TraceEntry {
	e := TraceEntry{Score: pts}
	switch pts {
	case MaxEmissionsCoverage:
		e.Reason = "Scope 1 and Scope 2 emissions available"
		e.Improvement = "Add Scope 3 for extended coverage"
	case PartialEmissionsCoverage:
		e.Reason = "Only one of Scope 1 or Scope 2 emissions available"
		e.Improvement = "Report both fuel combustion and purchased electricity"
	default:
		e.Reason = "No Scope 1 or Scope 2 emissions reported"
		e.Improvement = "Record fuel and electricity consumption per facility"
	}
	return e
}

func explainRenewable(pts int) TraceEntry {
	e := TraceEntry{Score: pts}
	switch pts {
	case MaxRenewableTransparency:
		e.Reason = "Renewable energy share at or above 40%"
		e.Improvement = "Maintain renewable sourcing and keep certificates on file"
	case renewablePointsMid:
		e.Reason = "Renewable energy share between 20% and 40%"
		e.Improvement = "Increase renewable sourcing"
	case renewablePointsLow:
		e.Reason = "Renewable energy share below 20%"
		e.Improvement = "Increase renewable sourcing"
	default:
		e.Reason = "No renewable energy reported"
		e.Improvement = "Report renewable_kwh and start renewable procurement"
	}
	return e
}

func explainAlignment(score Score) TraceEntry {
	pts := score.Points(AreaFrameworkAlignment)
	if pts >= MaxFrameworkAlignment {
		return TraceEntry{
			Score:       pts,
			Reason:      "CSRD and GRI mappings implemented",
			Improvement: "Extend to SASB/TCFD disclosures",
		}
	}

	improvement := "Complete the framework coverage matrix"
	if gaps := score.FrameworkGaps; len(gaps) > 0 {
		improvement = "Close coverage gaps: " + strings.Join(gaps[:min(len(gaps), maxGapsInTrace)], ", ")
	}
	return TraceEntry{
		Score:       pts,
		Reason:      fmt.Sprintf("Framework coverage matrix partially implemented (%d of %d points)", pts, MaxFrameworkAlignment),
		Improvement: improvement,
	}
}
