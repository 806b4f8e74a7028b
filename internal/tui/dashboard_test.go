package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/emissions"
	"github.com/rshade/esgready/internal/engine"
	"github.com/rshade/esgready/internal/finance"
	"github.com/rshade/esgready/internal/frameworks"
	"github.com/rshade/esgready/internal/scope3"
)

func testResult(t *testing.T, withSpend bool) *engine.Result {
	t.Helper()
	in := engine.Input{
		Table: emissions.NewTable([]emissions.Record{
			{Date: "2024-01-01", Facility: "Plant A", EnergyKWh: 1000, RenewableKWh: 200, FuelLiters: 50},
			{Date: "2024-01-02", Facility: "Plant B", EnergyKWh: 800, RenewableKWh: 400, FuelLiters: 20},
		}),
		Year: 2024,
	}
	if withSpend {
		in.Spend = []scope3.SpendRecord{{Category: "logistics", AnnualSpendEUR: 1000}}
	}
	res, err := engine.New(audit.FixedAlignment{}).Evaluate(context.Background(), in)
	require.NoError(t, err)
	return res
}

func update(t *testing.T, m DashboardModel, msg tea.Msg) (DashboardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	dm, ok := next.(DashboardModel)
	require.True(t, ok)
	return dm, cmd
}

func TestDashboard_LoadsResult(t *testing.T) {
	res := testResult(t, false)
	m := NewDashboardModel(context.Background(), func(context.Context) (*engine.Result, error) {
		return res, nil
	})
	assert.Equal(t, ViewStateLoading, m.State())
	require.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Evaluating ESG data")

	m, _ = update(t, m, evaluatedMsg{result: res})
	assert.Equal(t, ViewStateReady, m.State())
	view := m.View()
	assert.Contains(t, view, "ESG AUDIT READINESS 2024")
	assert.Contains(t, view, "Total Energy (kWh)")
	assert.Contains(t, view, "CO₂ TREND")
	assert.Contains(t, view, "2024-01-02")
}

func TestDashboard_ErrorAndRetry(t *testing.T) {
	m := NewDashboardModel(context.Background(), func(context.Context) (*engine.Result, error) {
		return nil, errors.New("boom")
	})
	m, _ = update(t, m, evaluatedMsg{err: errors.New("boom")})
	assert.Equal(t, ViewStateError, m.State())
	assert.Contains(t, m.View(), "boom")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, ViewStateLoading, m.State())
	assert.NotNil(t, cmd)
}

func TestDashboard_TabNavigation(t *testing.T) {
	m := NewDashboardModelWithResult(context.Background(), testResult(t, false))
	assert.Equal(t, TabOverview, m.Tab())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabAudit, m.Tab())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabFrameworks, m.Tab())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	assert.Equal(t, TabQuality, m.Tab())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")})
	assert.Equal(t, TabQuality, m.Tab())
}

func TestDashboard_TabViews(t *testing.T) {
	tests := []struct {
		tab  Tab
		want []string
	}{
		{TabAudit, []string{"Data Completeness", "Renewable Transparency"}},
		{TabQuality, []string{"No data quality issues", "energy_kwh"}},
		{TabScope3, []string{"Estimated Scope 3", "logistics"}},
		{TabMaturity, []string{"Level 5  Optimized", "Renewable Energy Usage"}},
		{TabFrameworks, []string{"Coverage: 60%", "Alignment strategy: fixed", "Climate Risk Management"}},
	}
	res := testResult(t, true)
	for _, tt := range tests {
		t.Run(tt.tab.String(), func(t *testing.T) {
			m := NewDashboardModelWithResult(context.Background(), res)
			m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
			m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{rune('1' + int(tt.tab))}})
			view := m.View()
			for _, w := range tt.want {
				assert.Contains(t, view, w)
			}
		})
	}
}

func TestDashboard_Scope3Absent(t *testing.T) {
	m := NewDashboardModelWithResult(context.Background(), testResult(t, false))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	assert.Contains(t, m.View(), "No supplier spend provided")
}

func TestDashboard_Quit(t *testing.T) {
	m := NewDashboardModelWithResult(context.Background(), testResult(t, false))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, ViewStateQuitting, m.State())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestRenderHelpers(t *testing.T) {
	assert.Contains(t, RenderScore(92), "92/100")
	assert.Contains(t, RenderSignal(finance.SignalHigh), "High")
	assert.Contains(t, RenderStatus(frameworks.Partial), "⚠")
	assert.Contains(t, RenderTrend(nil), "No dated emissions")

	trend := RenderTrend([]emissions.DailyTotal{
		{Date: "2024-01-01", TotalCO2Kg: 10},
		{Date: "2024-01-02", TotalCO2Kg: 5},
	})
	assert.Contains(t, trend, "2024-01-01")
	assert.Contains(t, trend, IconArrowDown)

	ladder := RenderMaturityLadder(audit.LevelDefined)
	assert.Contains(t, ladder, IconArrowRight+" Level 3  Defined")
}

func TestTabString(t *testing.T) {
	assert.Equal(t, "Scope 3", TabScope3.String())
	assert.Equal(t, "Unknown", Tab(99).String())
}
