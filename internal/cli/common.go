package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/esgready/internal/engine"
	"github.com/rshade/esgready/internal/ingest"
	"github.com/rshade/esgready/internal/logging"
	"github.com/rshade/esgready/internal/scope3"
)

// Output formats.
const (
	outputTable  = "table"
	outputJSON   = "json"
	outputNDJSON = "ndjson"
)

const tabPadding = 2

//nolint:gochecknoglobals // Constant lookup table.
var outputFormats = []string{outputTable, outputJSON, outputNDJSON}

// inputFlags are shared by every command that evaluates a dataset.
type inputFlags struct {
	data  []string
	spend string
	year  int
}

func (f *inputFlags) register(cmd *cobra.Command, multi bool) {
	if multi {
		cmd.Flags().StringArrayVar(&f.data, "data", nil, "emissions dataset (CSV or JSON); repeat for several files")
	} else {
		cmd.Flags().StringArrayVar(&f.data, "data", nil, "emissions dataset (CSV or JSON)")
	}
	cmd.Flags().StringVar(&f.spend, "spend", "", "procurement spend file (CSV or JSON) for Scope 3 estimation")
	cmd.Flags().IntVar(&f.year, "year", 0, "reporting year (default: current year)")
	_ = cmd.MarkFlagRequired("data")
}

// single returns the only --data path, rejecting repeats.
func (f *inputFlags) single() (string, error) {
	if len(f.data) != 1 {
		return "", fmt.Errorf("exactly one --data file is required, got %d", len(f.data))
	}
	return f.data[0], nil
}

// resolveOutputFormat returns flagValue, or the configured default when empty.
func resolveOutputFormat(flagValue string) (string, error) {
	format := flagValue
	if format == "" {
		format = currentConfig().Output.DefaultFormat
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if !slices.Contains(outputFormats, format) {
		return "", fmt.Errorf("invalid output format %q (valid: %s)", format, strings.Join(outputFormats, ", "))
	}
	return format, nil
}

// loadSpend reads the spend file, or returns nil when path is empty.
func loadSpend(ctx context.Context, path string) ([]scope3.SpendRecord, error) {
	if path == "" {
		return nil, nil
	}
	spend, err := ingest.LoadSpend(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading spend: %w", err)
	}
	if spend == nil {
		spend = []scope3.SpendRecord{}
	}
	return spend, nil
}

// evaluateFile loads one dataset and evaluates it.
func evaluateFile(
	ctx context.Context, eng *engine.Engine, path string, spend []scope3.SpendRecord, year int,
) (*engine.Result, error) {
	table, err := ingest.LoadEmissions(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	res, err := eng.Evaluate(ctx, engine.Input{Table: table, Spend: spend, Year: year})
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", path, err)
	}
	return res, nil
}

// fileResult pairs a dataset path with its evaluation.
type fileResult struct {
	Path   string         `json:"path"`
	Result *engine.Result `json:"result"`
}

// evaluateFiles evaluates every path concurrently with a concurrency limit
// of runtime.NumCPU(). Results keep the order of paths. The first failure
// cancels the remaining evaluations.
func evaluateFiles(
	ctx context.Context, eng *engine.Engine, paths []string, spend []scope3.SpendRecord, year int,
) ([]fileResult, error) {
	log := logging.FromContext(ctx)
	results := make([]fileResult, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			res, err := evaluateFile(gCtx, eng, path, spend, year)
			if err != nil {
				return err
			}
			results[i] = fileResult{Path: path, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Ctx(ctx).Err(err).Msg("evaluation failed")
		return nil, err
	}

	log.Debug().Ctx(ctx).Int("file_count", len(paths)).Msg("datasets evaluated")
	return results, nil
}

// evaluateInput loads the single --data file and evaluates it with the
// configured engine.
func evaluateInput(cmd *cobra.Command, flags *inputFlags) (*engine.Result, error) {
	path, err := flags.single()
	if err != nil {
		return nil, err
	}
	eng, err := newEngine(currentConfig())
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	spend, err := loadSpend(ctx, flags.spend)
	if err != nil {
		return nil, err
	}
	return evaluateFile(ctx, eng, path, spend, flags.year)
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeNDJSON writes one compact JSON document per item.
func writeNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

// isWriterTerminal reports whether w is an *os.File attached to a terminal.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// heading renders a section title, styled only on a terminal.
func heading(w io.Writer, title string) string {
	if isWriterTerminal(w) {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Render(title)
	}
	return title
}
