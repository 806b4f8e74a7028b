package frameworks

import (
	"fmt"
	"strings"
)

// Status is the coverage level of one ESG topic under one framework.
type Status string

// Coverage statuses.
const (
	Compliant  Status = "Compliant"
	Partial    Status = "Partial"
	NotCovered Status = "Not Covered"
)

// Symbol returns the matrix glyph for s.
func (s Status) Symbol() string {
	switch s {
	case Compliant:
		return "✔"
	case Partial:
		return "⚠"
	default:
		return "❌"
	}
}

// weight is the contribution of a cell to CoverageRatio.
func (s Status) weight() float64 {
	switch s {
	case Compliant:
		return 1
	case Partial:
		return 0.5 //nolint:mnd // Half credit for partial coverage.
	default:
		return 0
	}
}

// ParseStatus accepts a status name or its glyph.
func ParseStatus(s string) (Status, error) {
	switch strings.TrimSpace(s) {
	case "✔", string(Compliant):
		return Compliant, nil
	case "⚠", string(Partial):
		return Partial, nil
	case "❌", string(NotCovered):
		return NotCovered, nil
	default:
		return "", fmt.Errorf("unknown coverage status %q", s)
	}
}

// TopicCoverage is one row of the coverage matrix.
type TopicCoverage struct {
	Topic  string            `json:"esg_topic"`
	Status map[string]Status `json:"status"`
}

// Frameworks returns the matrix columns in display order.
func Frameworks() []string {
	return []string{CSRD, GRI, SASB, TCFD}
}

func row(topic string, csrd, gri, sasb, tcfd Status) TopicCoverage {
	return TopicCoverage{
		Topic:  topic,
		Status: map[string]Status{CSRD: csrd, GRI: gri, SASB: sasb, TCFD: tcfd},
	}
}

// Coverage returns the ESG topic by framework coverage matrix.
func Coverage() []TopicCoverage {
	return []TopicCoverage{
		row("Energy Consumption", Compliant, Compliant, Compliant, Partial),
		row("Scope 1 Emissions", Compliant, Compliant, Compliant, Compliant),
		row("Scope 2 Emissions", Compliant, Compliant, Compliant, Compliant),
		row("Scope 3 Emissions", Partial, Partial, Partial, NotCovered),
		row("Climate Risk Management", Partial, NotCovered, NotCovered, Partial),
		row("Targets & Transition Plan", NotCovered, NotCovered, NotCovered, Partial),
	}
}

// CoverageRatio scores a matrix in [0, 1]: compliant cells count 1, partial
// cells 0.5 and uncovered cells 0. An empty matrix scores 0.
func CoverageRatio(matrix []TopicCoverage) float64 {
	var cells, credit float64
	for _, tc := range matrix {
		for _, fw := range Frameworks() {
			cells++
			credit += tc.Status[fw].weight()
		}
	}
	if cells == 0 {
		return 0
	}
	return credit / cells
}

// Gaps lists "topic (framework)" for every cell that is not compliant, in
// matrix order.
func Gaps(matrix []TopicCoverage) []string {
	var gaps []string
	for _, tc := range matrix {
		for _, fw := range Frameworks() {
			if tc.Status[fw] != Compliant {
				gaps = append(gaps, fmt.Sprintf("%s (%s)", tc.Topic, fw))
			}
		}
	}
	return gaps
}
