package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/emissions"
	"github.com/rshade/esgready/internal/finance"
	"github.com/rshade/esgready/internal/frameworks"
	"github.com/rshade/esgready/internal/kpi"
	"github.com/rshade/esgready/internal/quality"
)

const trendBarWidth = 30

// ScoreStyle picks a color for an audit score on the compliance-risk scale.
func ScoreStyle(score int) lipgloss.Style {
	switch finance.AuditRisk(score) {
	case finance.SignalLow:
		return OKStyle
	case finance.SignalModerate:
		return WarningStyle
	default:
		return CriticalStyle
	}
}

// RenderScore renders "NN/100" colored by risk.
func RenderScore(score int) string {
	return ScoreStyle(score).Render(fmt.Sprintf("%d/100", score))
}

// RenderSignal colors a financial signal badge.
func RenderSignal(signal string) string {
	switch signal {
	case finance.SignalLow, finance.SignalImproving:
		return OKStyle.Render(signal)
	case finance.SignalModerate:
		return WarningStyle.Render(signal)
	case finance.SignalHigh, finance.SignalWeak:
		return CriticalStyle.Render(signal)
	default:
		return ValueStyle.Render(signal)
	}
}

// RenderFlag colors a data-quality flag.
func RenderFlag(flag quality.Flag) string {
	switch flag {
	case quality.FlagMeasured:
		return OKStyle.Render(string(flag))
	case quality.FlagEstimated:
		return WarningStyle.Render(string(flag))
	default:
		return CriticalStyle.Render(string(flag))
	}
}

// RenderStatus renders a coverage status glyph in its color.
func RenderStatus(s frameworks.Status) string {
	switch s {
	case frameworks.Compliant:
		return OKStyle.Render(s.Symbol())
	case frameworks.Partial:
		return WarningStyle.Render(s.Symbol())
	default:
		return CriticalStyle.Render(s.Symbol())
	}
}

// RenderMaturityLadder lists every maturity level and marks the current one.
func RenderMaturityLadder(current int) string {
	var b strings.Builder
	for level := audit.LevelOptimized; level >= audit.LevelAdHoc; level-- {
		label := fmt.Sprintf("Level %d  %s", level, audit.MaturityLabel(level))
		if level == current {
			b.WriteString(OKStyle.Render(IconArrowRight + " " + label))
		} else {
			b.WriteString(SubtleStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderTrend draws one horizontal bar per date scaled to the largest total,
// with an arrow showing the move from the previous date.
func RenderTrend(trend []emissions.DailyTotal) string {
	if len(trend) == 0 {
		return SubtleStyle.Render("No dated emissions to chart.")
	}

	peak := 0.0
	for _, d := range trend {
		peak = math.Max(peak, d.TotalCO2Kg)
	}

	var b strings.Builder
	for i, d := range trend {
		width := 0
		if peak > 0 {
			width = int(math.Round(d.TotalCO2Kg / peak * trendBarWidth))
		}
		arrow := " "
		if i > 0 {
			arrow = trendArrow(d.TotalCO2Kg - trend[i-1].TotalCO2Kg)
		}
		fmt.Fprintf(&b, "%s %s %s %s\n",
			LabelStyle.Render(d.Date),
			InfoStyle.Render(strings.Repeat(IconBar, width)),
			ValueStyle.Render(fmt.Sprintf("%.2f kg", d.TotalCO2Kg)),
			arrow,
		)
	}
	return b.String()
}

func trendArrow(delta float64) string {
	switch rounded := kpi.Round(delta, 2); {
	case rounded > 0:
		return WarningStyle.Render(IconArrowUp)
	case rounded < 0:
		return OKStyle.Render(IconArrowDown)
	default:
		return SubtleStyle.Render(IconArrowRight)
	}
}
