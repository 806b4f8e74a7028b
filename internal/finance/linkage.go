// Package finance links ESG performance to financial exposure signals for
// the dashboard and reports.
package finance

import (
	"fmt"
	"strconv"

	"github.com/rshade/esgready/internal/kpi"
)

// Financial signals.
const (
	SignalHigh      = "High"
	SignalModerate  = "Moderate"
	SignalLow       = "Low"
	SignalImproving = "Improving"
	SignalWeak      = "Weak"
)

// Thresholds for the derived signals.
const (
	// RenewableHighRiskBelow marks energy cost risk High under a 25% share.
	RenewableHighRiskBelow = 25.0
	// RenewableModerateRiskBelow marks energy cost risk Moderate under 50%.
	RenewableModerateRiskBelow = 50.0

	// AuditLowRiskFrom marks compliance risk Low from a score of 80.
	AuditLowRiskFrom = 80
	// AuditModerateRiskFrom marks compliance risk Moderate from a score of 50.
	AuditModerateRiskFrom = 50

	// MaturityImprovingFrom is the first maturity level read as Improving.
	MaturityImprovingFrom = 3
)

// Insight ties one ESG driver to a financial area.
type Insight struct {
	Driver        string `json:"esg_driver"`
	FinancialArea string `json:"financial_area"`
	ImpactType    string `json:"impact_type"`
	CurrentStatus string `json:"current_status"`
	Signal        string `json:"financial_signal"`
	Explanation   string `json:"explanation"`
}

// Linkage returns the four financial insights for a KPI snapshot, audit
// score and maturity level, in display order.
func Linkage(kpis kpi.Snapshot, auditScore, maturityLevel int) []Insight {
	renewable := kpis.Value(kpi.MetricRenewablePct)

	return []Insight{
		{
			Driver:        "Renewable Energy Usage",
			FinancialArea: "Energy Cost Volatility",
			ImpactType:    "Cost Risk Reduction",
			CurrentStatus: formatNumber(renewable) + "%",
			Signal:        EnergyRisk(renewable),
			Explanation:   "Higher renewable share reduces exposure to energy price volatility",
		},
		{
			Driver:        "Scope 1 & 2 Emissions",
			FinancialArea: "Carbon Cost Exposure",
			ImpactType:    "Regulatory Risk",
			CurrentStatus: formatNumber(kpis.Value(kpi.MetricTotalCO2)) + " kg",
			Signal:        SignalModerate,
			Explanation:   "Lower emissions reduce future carbon pricing and compliance costs",
		},
		{
			Driver:        "Audit Readiness",
			FinancialArea: "Compliance & Penalty Risk",
			ImpactType:    "Risk Mitigation",
			CurrentStatus: fmt.Sprintf("Score %d", auditScore),
			Signal:        AuditRisk(auditScore),
			Explanation:   "Higher readiness lowers probability of penalties and audit overruns",
		},
		{
			Driver:        "CSRD Maturity",
			FinancialArea: "Long-term Value & Cost of Capital",
			ImpactType:    "Strategic Value",
			CurrentStatus: fmt.Sprintf("Level %d", maturityLevel),
			Signal:        MaturitySignal(maturityLevel),
			Explanation:   "Higher ESG maturity improves investor confidence and financing access",
		},
	}
}

// EnergyRisk grades energy cost exposure from the renewable share.
func EnergyRisk(renewablePct float64) string {
	switch {
	case renewablePct < RenewableHighRiskBelow:
		return SignalHigh
	case renewablePct < RenewableModerateRiskBelow:
		return SignalModerate
	default:
		return SignalLow
	}
}

// AuditRisk grades compliance and penalty risk from the audit score.
func AuditRisk(score int) string {
	switch {
	case score >= AuditLowRiskFrom:
		return SignalLow
	case score >= AuditModerateRiskFrom:
		return SignalModerate
	default:
		return SignalHigh
	}
}

// MaturitySignal grades long-term value from the maturity level.
func MaturitySignal(level int) string {
	if level >= MaturityImprovingFrom {
		return SignalImproving
	}
	return SignalWeak
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
