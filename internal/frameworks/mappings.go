// Package frameworks holds the static disclosure mappings from ESG metrics to
// CSRD (ESRS), GRI, SASB and TCFD requirements, and the topic coverage
// matrix used to gauge how complete those mappings are.
package frameworks

// Framework names as they appear in the coverage matrix.
const (
	CSRD = "CSRD"
	GRI  = "GRI"
	SASB = "SASB"
	TCFD = "TCFD"
)

// Mapping set keys returned by All.
const (
	SetCSRDGRI = "CSRD / GRI"
	SetSASB    = "SASB"
	SetTCFD    = "TCFD"
)

// Mapping links one reported metric or disclosure area to a framework
// requirement. Unused fields are empty.
type Mapping struct {
	Metric   string `json:"metric,omitempty"   yaml:"metric,omitempty"`
	Area     string `json:"area,omitempty"     yaml:"area,omitempty"`
	CSRD     string `json:"csrd,omitempty"     yaml:"csrd,omitempty"`
	GRI      string `json:"gri,omitempty"      yaml:"gri,omitempty"`
	SASB     string `json:"sasb,omitempty"     yaml:"sasb,omitempty"`
	TCFD     string `json:"tcfd,omitempty"     yaml:"tcfd,omitempty"`
	Coverage string `json:"coverage,omitempty" yaml:"coverage,omitempty"`
}

// CSRDGRI returns the ESRS and GRI mapping for the headline climate metrics.
func CSRDGRI() []Mapping {
	return []Mapping{
		{
			Metric: "Total Energy Consumption",
			CSRD:   "ESRS E1 – Climate Change (Energy)",
			GRI:    "GRI 302-1 – Energy consumption within the organization",
		},
		{
			Metric: "Renewable Energy Percentage",
			CSRD:   "ESRS E1 – Climate Change (Renewables)",
			GRI:    "GRI 302-1 / 302-4 – Reduction of energy consumption",
		},
		{
			Metric: "Scope 1 CO₂ Emissions",
			CSRD:   "ESRS E1 – Scope 1 GHG emissions",
			GRI:    "GRI 305-1 – Direct (Scope 1) GHG emissions",
		},
		{
			Metric: "Scope 2 CO₂ Emissions",
			CSRD:   "ESRS E1 – Scope 2 GHG emissions",
			GRI:    "GRI 305-2 – Energy indirect (Scope 2) GHG emissions",
		},
		{
			Metric: "Total CO₂ Emissions",
			CSRD:   "ESRS E1 – Total GHG emissions",
			GRI:    "GRI 305-1 / 305-2",
		},
	}
}

// SASBMapping returns an industry-agnostic SASB baseline for energy and
// emissions metrics.
func SASBMapping() []Mapping {
	return []Mapping{
		{Metric: "Energy Consumption", SASB: "IF-EU-130a.1 – Energy Management"},
		{Metric: "Scope 1 GHG Emissions", SASB: "IF-EU-110a.1 – Gross global Scope 1 emissions"},
		{Metric: "Scope 2 GHG Emissions", SASB: "IF-EU-110a.1 – Gross global Scope 2 emissions"},
		{Metric: "Renewable Energy Use", SASB: "IF-EU-130a.2 – Renewable energy usage"},
	}
}

// TCFDMapping returns the TCFD Metrics & Targets and Risk Management
// disclosures with their implementation status.
func TCFDMapping() []Mapping {
	return []Mapping{
		{Area: "Metrics & Targets", TCFD: "Disclose Scope 1 and Scope 2 GHG emissions", Coverage: "Implemented"},
		{Area: "Metrics & Targets", TCFD: "Describe targets used to manage climate risks", Coverage: "Partial"},
		{Area: "Risk Management", TCFD: "Describe how climate risks are identified", Coverage: "Not Implemented"},
	}
}

// All returns every mapping set keyed by SetCSRDGRI, SetSASB and SetTCFD.
func All() map[string][]Mapping {
	return map[string][]Mapping{
		SetCSRDGRI: CSRDGRI(),
		SetSASB:    SASBMapping(),
		SetTCFD:    TCFDMapping(),
	}
}

// SetNames returns the mapping set keys in display order.
func SetNames() []string {
	return []string{SetCSRDGRI, SetSASB, SetTCFD}
}
