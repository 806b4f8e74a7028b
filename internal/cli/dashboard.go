package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/esgready/internal/engine"
	"github.com/rshade/esgready/internal/tui"
)

// errNotInteractive is returned when the dashboard has no terminal to draw on.
var errNotInteractive = errors.New("dashboard requires an interactive terminal; use `esgready score` instead")

// NewDashboardCmd creates the dashboard command.
func NewDashboardCmd() *cobra.Command {
	var flags inputFlags

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Explore an evaluation in an interactive terminal dashboard",
		Long: `Opens a tabbed dashboard with the overview, audit score breakdown, data quality,
Scope 3 estimates, CSRD maturity ladder and framework coverage.
Press r to re-evaluate the dataset and q to quit.`,
		Example: `  esgready dashboard --data emissions.csv --spend spend.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
				return errNotInteractive
			}
			path, err := flags.single()
			if err != nil {
				return err
			}
			eng, err := newEngine(currentConfig())
			if err != nil {
				return err
			}

			evaluate := func(ctx context.Context) (*engine.Result, error) {
				spend, spendErr := loadSpend(ctx, flags.spend)
				if spendErr != nil {
					return nil, spendErr
				}
				return evaluateFile(ctx, eng, path, spend, flags.year)
			}
			return runDashboard(cmd.Context(), evaluate)
		},
	}

	flags.register(cmd, false)
	return cmd
}

func runDashboard(ctx context.Context, evaluate tui.EvaluateFunc) error {
	p := tea.NewProgram(tui.NewDashboardModel(ctx, evaluate), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
