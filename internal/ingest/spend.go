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
	"strconv"
	"strings"

	"github.com/rshade/esgready/internal/logging"
	"github.com/rshade/esgready/internal/scope3"
)

// Spend column names.
const (
	ColumnCategory    = "category"
	ColumnAnnualSpend = "annual_spend_eur"
)

// ParseSpendCSV reads category and annual_spend_eur columns from a CSV with a
// header row. Other columns are ignored. A blank spend reads as zero.
func ParseSpendCSV(ctx context.Context, r io.Reader) ([]scope3.SpendRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	catIdx, spendIdx := -1, -1
	for i, h := range header {
		switch strings.TrimPrefix(strings.TrimSpace(h), utf8BOM) {
		case ColumnCategory:
			catIdx = i
		case ColumnAnnualSpend:
			spendIdx = i
		}
	}
	if catIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnCategory)
	}
	if spendIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnAnnualSpend)
	}

	var records []scope3.SpendRecord
	for line := 2; ; line++ {
		rec, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, readErr)
		}

		spend, parseErr := parseSpend(rec[spendIdx])
		if parseErr != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, parseErr)
		}
		records = append(records, scope3.SpendRecord{
			Category:       strings.TrimSpace(rec[catIdx]),
			AnnualSpendEUR: spend,
		})
	}

	logging.FromContext(ctx).Debug().
		Str("component", "ingest").
		Str("operation", "parse_spend_csv").
		Int("records", len(records)).
		Msg("spend CSV parsed")

	return records, nil
}

// ParseSpendJSON reads a JSON array of spend objects. annual_spend_eur may be
// a number or a numeric string.
func ParseSpendJSON(ctx context.Context, data []byte) ([]scope3.SpendRecord, error) {
	rows, err := decodeObjects(data)
	if err != nil {
		return nil, err
	}
	return SpendFromMaps(ctx, rows)
}

// SpendFromMaps converts decoded spend objects into records.
func SpendFromMaps(ctx context.Context, rows []map[string]any) ([]scope3.SpendRecord, error) {
	records := make([]scope3.SpendRecord, 0, len(rows))
	for i, row := range rows {
		category, _ := row[ColumnCategory].(string)

		var spend float64
		switch v := row[ColumnAnnualSpend].(type) {
		case nil:
		case float64:
			spend = v
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return nil, fmt.Errorf("record %d: %w: %q", i, ErrInvalidNumber, v.String())
			}
			spend = f
		case string:
			f, err := parseSpend(v)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			spend = f
		default:
			return nil, fmt.Errorf("record %d: %w: %v", i, ErrInvalidNumber, v)
		}

		records = append(records, scope3.SpendRecord{
			Category:       strings.TrimSpace(category),
			AnnualSpendEUR: spend,
		})
	}

	logging.FromContext(ctx).Debug().
		Str("component", "ingest").
		Str("operation", "parse_spend_json").
		Int("records", len(records)).
		Msg("spend JSON parsed")

	return records, nil
}

// LoadSpend reads spend records from a CSV or JSON file.
func LoadSpend(ctx context.Context, path string) ([]scope3.SpendRecord, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spend file: %w", err)
	}

	var records []scope3.SpendRecord
	if format == FormatJSON {
		records, err = ParseSpendJSON(ctx, data)
	} else {
		records, err = ParseSpendCSV(ctx, bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

func parseSpend(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return f, nil
}
