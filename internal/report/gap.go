package report

import (
	"github.com/rshade/esgready/internal/frameworks"
	"github.com/rshade/esgready/internal/kpi"
)

// RenewableCompliantFrom is the renewable share at which the ESRS E1
// renewable requirement reads Compliant rather than Partial.
const RenewableCompliantFrom = 40.0

// Gap is one ESRS E1 requirement and its status.
type Gap struct {
	Requirement    string            `json:"requirement"`
	Status         frameworks.Status `json:"status"`
	Recommendation string            `json:"recommendation"`
}

// GapAnalysis assesses the ESRS E1 climate requirements against kpis.
func GapAnalysis(kpis kpi.Snapshot) []Gap {
	presence := func(metric string) frameworks.Status {
		if kpis.Value(metric) > 0 {
			return frameworks.Compliant
		}
		return frameworks.NotCovered
	}

	renewable := frameworks.Compliant
	if kpis.Value(kpi.MetricRenewablePct) < RenewableCompliantFrom {
		renewable = frameworks.Partial
	}

	return []Gap{
		{
			Requirement:    "Energy Consumption Disclosure",
			Status:         presence(kpi.MetricTotalEnergy),
			Recommendation: "Ensure continuous energy data capture across facilities.",
		},
		{
			Requirement:    "Scope 1 GHG Emissions",
			Status:         presence(kpi.MetricScope1),
			Recommendation: "Fuel consumption data must be tracked consistently.",
		},
		{
			Requirement:    "Scope 2 GHG Emissions",
			Status:         presence(kpi.MetricScope2),
			Recommendation: "Grid electricity emissions should be calculated using regional factors.",
		},
		{
			Requirement:    "Renewable Energy Share",
			Status:         renewable,
			Recommendation: "Increase renewable sourcing or improve traceability.",
		},
	}
}

// StatusLabel renders a gap status the way the report table shows it.
func StatusLabel(s frameworks.Status) string {
	if s == frameworks.NotCovered {
		return s.Symbol() + " Missing"
	}
	return s.Symbol() + " " + string(s)
}
