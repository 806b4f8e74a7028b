// Package scope3 estimates value-chain (Scope 3) emissions from categorised
// annual spend using fixed spend-based emission factors.
package scope3

import (
	"fmt"
	"strings"

	"github.com/rshade/esgready/internal/kpi"
)

// Spend categories with a known emission factor.
const (
	CategoryRawMaterials          = "raw_materials"
	CategoryLogistics             = "logistics"
	CategoryITServices            = "it_services"
	CategoryManufacturingServices = "manufacturing_services"
)

// EmissionFactors are kg CO2 per EUR spent, by category.
//
//nolint:gochecknoglobals // Constant lookup table.
var EmissionFactors = map[string]float64{
	CategoryRawMaterials:          0.45,
	CategoryLogistics:             0.18,
	CategoryITServices:            0.05,
	CategoryManufacturingServices: 0.32,
}

// Warning types raised per spend record.
const (
	WarningUnrecognizedCategory = "Unrecognized Category"
	WarningRangeViolation       = "Range Violation"
)

// SpendRecord is one line of annual supplier spend.
type SpendRecord struct {
	Category       string  `json:"category"`
	AnnualSpendEUR float64 `json:"annual_spend_eur"`
}

// Estimate is a SpendRecord with its derived factor and emissions.
// EmissionFactor and Scope3CO2Kg are nil when the category is unknown.
type Estimate struct {
	SpendRecord

	EmissionFactor *float64 `json:"emission_factor"`
	Scope3CO2Kg    *float64 `json:"scope3_co2_kg"`
}

// Warning flags a single spend record.
type Warning struct {
	Row     int    `json:"row"`
	Type    string `json:"type"`
	Details string `json:"details"`
}

// Report is the full Scope 3 estimation result.
type Report struct {
	Estimates []Estimate `json:"estimates"`
	Warnings  []Warning  `json:"warnings"`
	TotalKg   float64    `json:"total_co2_kg"`
}

// Present reports whether any Scope 3 emissions were estimated.
func (r Report) Present() bool {
	return r.TotalKg > 0
}

// Factor returns the emission factor for a category.
func Factor(category string) (float64, bool) {
	f, ok := EmissionFactors[strings.TrimSpace(category)]
	return f, ok
}

// EstimateAll attaches an emission factor to every record and computes
// scope3_co2_kg = annual_spend_eur * factor.
//
// Records with an unknown category are kept with nil factor and emissions and
// produce an "Unrecognized Category" warning; their spend never silently
// vanishes from the report. Negative spend is computed but warned about.
func EstimateAll(records []SpendRecord) Report {
	report := Report{
		Estimates: make([]Estimate, 0, len(records)),
		Warnings:  []Warning{},
	}

	for i, rec := range records {
		est := Estimate{SpendRecord: rec}

		if rec.AnnualSpendEUR < 0 {
			report.Warnings = append(report.Warnings, Warning{
				Row:     i,
				Type:    WarningRangeViolation,
				Details: fmt.Sprintf("negative annual spend %.2f EUR", rec.AnnualSpendEUR),
			})
		}

		if factor, ok := Factor(rec.Category); ok {
			co2 := rec.AnnualSpendEUR * factor
			est.EmissionFactor = &factor
			est.Scope3CO2Kg = &co2
		} else {
			report.Warnings = append(report.Warnings, Warning{
				Row:  i,
				Type: WarningUnrecognizedCategory,
				Details: fmt.Sprintf("no emission factor for category %q (known: %s)",
					rec.Category, strings.Join(Categories(), ", ")),
			})
		}

		report.Estimates = append(report.Estimates, est)
	}

	report.TotalKg = Aggregate(report.Estimates)
	return report
}

// Aggregate sums the known scope3_co2_kg values, rounded to two decimals.
func Aggregate(estimates []Estimate) float64 {
	var total float64
	for _, e := range estimates {
		if e.Scope3CO2Kg != nil {
			total += *e.Scope3CO2Kg
		}
	}
	return kpi.Round(total, 2)
}

// Categories returns the known categories in a stable order.
func Categories() []string {
	return []string{
		CategoryRawMaterials,
		CategoryLogistics,
		CategoryITServices,
		CategoryManufacturingServices,
	}
}
