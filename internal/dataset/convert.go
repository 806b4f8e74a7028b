package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// nullTokens are cell spellings treated as missing values.
//
//nolint:gochecknoglobals // Constant lookup table.
var nullTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

// ParseCell converts raw text into a cell: null tokens become null,
// numeric text becomes a number, anything else stays text.
func ParseCell(raw string) Value {
	s := strings.TrimSpace(raw)
	if nullTokens[strings.ToLower(s)] {
		return NullValue()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) {
		return Number(f)
	}
	return Text(s)
}

// FromAny converts a decoded JSON value into a cell.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return NullValue(), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", x.String(), err)
		}
		return Number(f), nil
	case string:
		return Text(x), nil
	case bool:
		return Text(strconv.FormatBool(x)), nil
	default:
		return Value{}, fmt.Errorf("unsupported cell type %T", v)
	}
}

// FromMaps builds a table from row objects. Columns appear in first-seen
// order, with keys inside a row visited in sorted order so the result is
// deterministic.
func FromMaps(rows []map[string]any) (*Table, error) {
	var columns []string
	seen := map[string]bool{}
	for _, row := range rows {
		for _, k := range sortedKeys(row) {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}

	t := New(columns...)
	for i, row := range rows {
		rec := make(map[string]Value, len(row))
		for k, raw := range row {
			v, err := FromAny(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i, k, err)
			}
			rec[k] = v
		}
		t.AddRecord(rec)
	}
	return t, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
