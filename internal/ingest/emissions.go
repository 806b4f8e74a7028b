// Package ingest reads emissions datasets and Scope 3 spend records from CSV
// and JSON. Readers keep every column they find; required-column checks
// belong to the components that need them.
package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rshade/esgready/internal/dataset"
	"github.com/rshade/esgready/internal/logging"
)

// Supported file formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

const utf8BOM = "\ufeff"

// FormatFromPath infers the input format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ParseEmissionsCSV reads a CSV with a header row into a table. Column order
// is preserved, blank and NA-like cells become nulls, numeric-looking cells
// become numbers and everything else stays text.
func ParseEmissionsCSV(ctx context.Context, r io.Reader) (*dataset.Table, error) {
	log := logging.FromContext(ctx)

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	t := dataset.New(header...)
	for line := 2; ; line++ {
		rec, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, readErr)
		}

		values := make([]dataset.Value, len(rec))
		for i, cell := range rec {
			values[i] = dataset.ParseCell(cell)
		}
		if addErr := t.AddRow(values...); addErr != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, addErr)
		}
	}

	log.Debug().
		Str("component", "ingest").
		Str("operation", "parse_emissions_csv").
		Int("columns", len(header)).
		Int("rows", t.Len()).
		Msg("emissions CSV parsed")

	return t, nil
}

// ParseEmissionsJSON reads a JSON array of flat objects into a table.
func ParseEmissionsJSON(ctx context.Context, data []byte) (*dataset.Table, error) {
	rows, err := decodeObjects(data)
	if err != nil {
		return nil, err
	}
	return EmissionsFromMaps(ctx, rows)
}

// EmissionsFromMaps builds a table from already decoded objects, as received
// by the HTTP and MCP surfaces.
func EmissionsFromMaps(ctx context.Context, rows []map[string]any) (*dataset.Table, error) {
	t, err := dataset.FromMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("building emissions table: %w", err)
	}

	logging.FromContext(ctx).Debug().
		Str("component", "ingest").
		Str("operation", "parse_emissions_json").
		Int("columns", len(t.Columns())).
		Int("rows", t.Len()).
		Msg("emissions JSON parsed")

	return t, nil
}

// LoadEmissions reads an emissions dataset from a CSV or JSON file.
func LoadEmissions(ctx context.Context, path string) (*dataset.Table, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "ingest").
		Str("operation", "load_emissions").
		Str("path", path).
		Msg("loading emissions dataset")

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().
			Str("component", "ingest").
			Err(err).
			Str("path", path).
			Msg("failed to read emissions file")
		return nil, fmt.Errorf("reading emissions file: %w", err)
	}

	var t *dataset.Table
	if format == FormatJSON {
		t, err = ParseEmissionsJSON(ctx, data)
	} else {
		t, err = ParseEmissionsCSV(ctx, bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

func decodeObjects(data []byte) ([]map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding JSON array: %w", err)
	}
	return rows, nil
}
