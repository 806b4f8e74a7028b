package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/engine"
	"github.com/rshade/esgready/internal/frameworks"
	"github.com/rshade/esgready/internal/greenops"
	"github.com/rshade/esgready/internal/logging"
	"github.com/rshade/esgready/internal/quality"
)

// Tab is one dashboard page.
type Tab int

// Tabs in display order.
const (
	TabOverview Tab = iota
	TabAudit
	TabQuality
	TabScope3
	TabMaturity
	TabFrameworks
	tabCount
)

// String returns the tab title.
func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabAudit:
		return "Audit"
	case TabQuality:
		return "Quality"
	case TabScope3:
		return "Scope 3"
	case TabMaturity:
		return "Maturity"
	case TabFrameworks:
		return "Frameworks"
	default:
		return "Unknown"
	}
}

// EvaluateFunc produces the result the dashboard shows. It should honor
// ctx cancellation.
type EvaluateFunc func(ctx context.Context) (*engine.Result, error)

// evaluatedMsg carries the outcome of EvaluateFunc.
type evaluatedMsg struct {
	result *engine.Result
	err    error
}

// DashboardModel is the Bubble Tea model for `esgready dashboard`.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	ctx      context.Context
	evaluate EvaluateFunc

	state   ViewState
	tab     Tab
	result  *engine.Result
	err     error
	loading *LoadingState

	table  table.Model
	width  int
	height int
}

// NewDashboardModel returns a model that runs evaluate on Init.
func NewDashboardModel(ctx context.Context, evaluate EvaluateFunc) DashboardModel {
	return DashboardModel{
		ctx:      ctx,
		evaluate: evaluate,
		state:    ViewStateLoading,
		loading:  NewLoadingState(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// NewDashboardModelWithResult returns a ready model for an existing result.
func NewDashboardModelWithResult(ctx context.Context, res *engine.Result) DashboardModel {
	m := NewDashboardModel(ctx, func(context.Context) (*engine.Result, error) { return res, nil })
	m.state = ViewStateReady
	m.result = res
	m.rebuildTable()
	return m
}

// Tab returns the active tab.
func (m DashboardModel) Tab() Tab { return m.tab }

// State returns the lifecycle state.
func (m DashboardModel) State() ViewState { return m.state }

// Init starts the spinner and the evaluation (Bubble Tea interface).
func (m DashboardModel) Init() tea.Cmd {
	if m.state != ViewStateLoading {
		return nil
	}
	return tea.Batch(m.loading.Init(), m.evaluateCmd())
}

func (m DashboardModel) evaluateCmd() tea.Cmd {
	ctx, evaluate := m.ctx, m.evaluate
	return func() tea.Msg {
		res, err := evaluate(ctx)
		return evaluatedMsg{result: res, err: err}
	}
}

// Update handles messages (Bubble Tea interface).
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTable()
		return m, nil
	case evaluatedMsg:
		return m.handleEvaluated(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == ViewStateLoading {
		return m, m.loading.Update(msg)
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m DashboardModel) handleEvaluated(msg evaluatedMsg) (tea.Model, tea.Cmd) {
	log := logging.FromContext(m.ctx)
	if msg.err != nil {
		log.Error().Str("component", "tui").Err(msg.err).Msg("dashboard evaluation failed")
		m.err = msg.err
		m.state = ViewStateError
		return m, nil
	}
	log.Debug().Str("component", "tui").Str("evaluation_id", msg.result.ID).Msg("dashboard loaded")
	m.result = msg.result
	m.state = ViewStateReady
	m.rebuildTable()
	return m, nil
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == keyCtrlC || key == keyQuit {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	if m.state != ViewStateReady {
		if m.state == ViewStateError && key == keyR {
			m.state = ViewStateLoading
			m.err = nil
			return m, tea.Batch(m.loading.Init(), m.evaluateCmd())
		}
		return m, nil
	}

	switch key {
	case keyTab, keyRight, keyL:
		m.tab = (m.tab + 1) % tabCount
	case keyShiftTab, keyLeft, keyH:
		m.tab = (m.tab + tabCount - 1) % tabCount
	case keyR:
		m.state = ViewStateLoading
		return m, tea.Batch(m.loading.Init(), m.evaluateCmd())
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= int(tabCount) {
			m.tab = Tab(n - 1)
		} else {
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}
	m.rebuildTable()
	return m, nil
}

// rebuildTable builds the table for the active tab.
func (m *DashboardModel) rebuildTable() {
	if m.result == nil {
		return
	}
	columns, rows := tableFor(m.tab, m.result)

	// One line for the header row.
	height := min(len(rows)+1, m.height-chromeHeight)
	height = max(height, minTableRows)

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	m.table = t
}

//nolint:mnd // Column widths.
func tableFor(tab Tab, res *engine.Result) ([]table.Column, []table.Row) {
	switch tab {
	case TabOverview:
		cols := []table.Column{{Title: "Metric", Width: 24}, {Title: "Value", Width: 16}}
		var rows []table.Row
		for _, m := range res.KPIs.Metrics() {
			rows = append(rows, table.Row{m.Name, greenops.FormatFloat(m.Value, 2)})
		}
		return cols, rows

	case TabAudit:
		cols := []table.Column{
			{Title: "Area", Width: 24}, {Title: "Score", Width: 7},
			{Title: "Reason", Width: 48},
		}
		var rows []table.Row
		for _, area := range audit.Areas() {
			e := res.Trace[area]
			rows = append(rows, table.Row{area, strconv.Itoa(e.Score), e.Reason})
		}
		return cols, rows

	case TabQuality:
		cols := []table.Column{{Title: "Metric", Width: 16}, {Title: "Source", Width: 12}}
		var rows []table.Row
		for _, metric := range quality.ExpectedMetrics {
			rows = append(rows, table.Row{metric, string(res.Quality.Flags[metric])})
		}
		return cols, rows

	case TabScope3:
		cols := []table.Column{
			{Title: "Category", Width: 20}, {Title: "Spend (EUR)", Width: 14},
			{Title: "Factor", Width: 8}, {Title: "CO₂ (kg)", Width: 14},
		}
		var rows []table.Row
		if res.Scope3 != nil {
			for _, e := range res.Scope3.Estimates {
				factor, co2 := "-", "-"
				if e.EmissionFactor != nil {
					factor = strconv.FormatFloat(*e.EmissionFactor, 'f', -1, 64)
				}
				if e.Scope3CO2Kg != nil {
					co2 = greenops.FormatFloat(*e.Scope3CO2Kg, 2)
				}
				rows = append(rows, table.Row{e.Category, greenops.FormatFloat(e.AnnualSpendEUR, 2), factor, co2})
			}
		}
		return cols, rows

	case TabMaturity:
		cols := []table.Column{
			{Title: "ESG Driver", Width: 22}, {Title: "Financial Area", Width: 26},
			{Title: "Status", Width: 14}, {Title: "Signal", Width: 10},
		}
		var rows []table.Row
		for _, in := range res.Finance {
			rows = append(rows, table.Row{in.Driver, in.FinancialArea, in.CurrentStatus, in.Signal})
		}
		return cols, rows

	default:
		cols := []table.Column{{Title: "ESG Topic", Width: 26}}
		for _, fw := range frameworks.Frameworks() {
			cols = append(cols, table.Column{Title: fw, Width: 6})
		}
		var rows []table.Row
		for _, tc := range frameworks.Coverage() {
			row := table.Row{tc.Topic}
			for _, fw := range frameworks.Frameworks() {
				row = append(row, tc.Status[fw].Symbol())
			}
			rows = append(rows, row)
		}
		return cols, rows
	}
}
