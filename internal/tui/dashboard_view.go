package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/frameworks"
	"github.com/rshade/esgready/internal/greenops"
	"github.com/rshade/esgready/internal/kpi"
)

// View renders the current state (Bubble Tea interface).
func (m DashboardModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return m.loading.View()
	case ViewStateError:
		return CriticalStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" +
			SubtleStyle.Render("Press 'r' to retry, 'q' to quit") + "\n"
	default:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			m.renderTabs(),
			m.renderBody(),
			SubtleStyle.Render("tab/←→ switch • 1-6 jump • r reload • q quit"),
		)
	}
}

func (m DashboardModel) renderHeader() string {
	res := m.result
	title := HeaderStyle.Render(fmt.Sprintf("ESG AUDIT READINESS %d", res.Year))
	score := LabelStyle.Render("  Score: ") + RenderScore(res.Score.TotalScore)
	maturity := LabelStyle.Render("  Maturity: ") +
		ValueStyle.Render(fmt.Sprintf("L%d %s", res.Maturity.MaturityLevel, res.Maturity.MaturityLabel))
	cached := ""
	if res.Cached {
		cached = SubtleStyle.Render("  (cached)")
	}
	return title + score + maturity + cached + "\n"
}

func (m DashboardModel) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := range tabCount {
		label := fmt.Sprintf("%d %s", t+1, t)
		if t == m.tab {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m DashboardModel) renderBody() string {
	var b strings.Builder
	res := m.result

	switch m.tab {
	case TabOverview:
		kpis := res.Snapshot()
		b.WriteString(LabelStyle.Render("Total CO₂: "))
		b.WriteString(ValueStyle.Render(greenops.FormatCO2(kpis.Value(kpi.MetricTotalCO2))))
		if eq := greenops.FromSnapshot(kpis); !eq.Empty() {
			b.WriteString("  " + SubtleStyle.Render(eq.Compact))
		}
		b.WriteString("\n\n")
		b.WriteString(m.table.View())
		b.WriteString("\n\n")
		b.WriteString(HeaderStyle.Render("CO₂ TREND"))
		b.WriteString("\n")
		b.WriteString(RenderTrend(res.Trend))

	case TabAudit:
		for _, area := range audit.Areas() {
			e := res.Trace[area]
			if e.Improvement == "" {
				continue
			}
			fmt.Fprintf(&b, "%s %s\n", WarningStyle.Render(IconArrowRight), e.Improvement)
		}
		if len(res.Score.MissingColumns) > 0 {
			fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Missing columns:"),
				CriticalStyle.Render(strings.Join(res.Score.MissingColumns, ", ")))
		}
		b.WriteString("\n")
		b.WriteString(m.table.View())

	case TabQuality:
		if len(res.Quality.Issues) == 0 {
			b.WriteString(OKStyle.Render("No data quality issues detected."))
			b.WriteString("\n")
		}
		for _, is := range res.Quality.Issues {
			fmt.Fprintf(&b, "%s %s\n", WarningStyle.Render(is.Type+":"), is.Details)
		}
		b.WriteString("\n")
		b.WriteString(m.table.View())

	case TabScope3:
		if res.Scope3 == nil {
			b.WriteString(SubtleStyle.Render("No supplier spend provided. Pass --spend to estimate Scope 3."))
			b.WriteString("\n")
			break
		}
		b.WriteString(LabelStyle.Render("Estimated Scope 3: "))
		b.WriteString(ValueStyle.Render(greenops.FormatCO2(res.Scope3.TotalKg)))
		b.WriteString("\n")
		for _, w := range res.Scope3.Warnings {
			fmt.Fprintf(&b, "%s %s\n", WarningStyle.Render(w.Type+":"), w.Details)
		}
		b.WriteString("\n")
		b.WriteString(m.table.View())

	case TabMaturity:
		b.WriteString(RenderMaturityLadder(res.Maturity.MaturityLevel))
		b.WriteString("\n")
		for _, in := range res.Finance {
			fmt.Fprintf(&b, "%s %s\n", RenderSignal(in.Signal), SubtleStyle.Render(in.Explanation))
		}
		b.WriteString("\n")
		b.WriteString(m.table.View())

	case TabFrameworks:
		matrix := frameworks.Coverage()
		b.WriteString(LabelStyle.Render("Coverage: "))
		b.WriteString(ValueStyle.Render(fmt.Sprintf("%.0f%%", frameworks.CoverageRatio(matrix)*100))) //nolint:mnd // Percent.
		b.WriteString(LabelStyle.Render("  Alignment strategy: "))
		b.WriteString(ValueStyle.Render(res.Alignment))
		b.WriteString("\n")
		if gaps := frameworks.Gaps(matrix); len(gaps) > 0 {
			b.WriteString(LabelStyle.Render("Gaps: "))
			b.WriteString(CriticalStyle.Render(strings.Join(gaps, ", ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.table.View())

	case tabCount:
	}

	return BoxStyle.Width(max(m.width-borderPadding, 0)).Render(b.String())
}
