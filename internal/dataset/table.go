// Package dataset provides the column-oriented in-memory table read by the
// scoring engine.
//
// A Table keeps two facts that a slice of structs cannot: whether a column
// exists at all, and whether an individual cell is null. Both matter for
// audit scoring, where an absent column and an empty cell are scored
// differently.
package dataset

import (
	"fmt"
	"math"
	"strconv"
)

// Value is a single table cell.
type Value struct {
	Text  string  `json:"text,omitempty"`
	Num   float64 `json:"num,omitempty"`
	IsNum bool    `json:"is_num,omitempty"`
	Null  bool    `json:"null,omitempty"`
}

// NullValue returns a null cell.
func NullValue() Value { return Value{Null: true} }

// Number returns a numeric cell. NaN is stored as null.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return NullValue()
	}
	return Value{Num: f, IsNum: true}
}

// Text returns a string cell.
func Text(s string) Value { return Value{Text: s} }

// Float returns the numeric value of v and whether it holds one.
func (v Value) Float() (float64, bool) {
	if v.Null || !v.IsNum {
		return 0, false
	}
	return v.Num, true
}

// String renders the cell for display and grouping.
func (v Value) String() string {
	switch {
	case v.Null:
		return ""
	case v.IsNum:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return v.Text
	}
}

// Table is an immutable-by-convention column store. Builders use AddRow;
// transformations return new tables through WithColumn.
type Table struct {
	columns []string
	index   map[string]int
	cells   [][]Value
	rows    int
}

// New returns an empty table with the given columns.
// Duplicate column names keep their first position.
func New(columns ...string) *Table {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if _, dup := t.index[c]; dup {
			continue
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
		t.cells = append(t.cells, nil)
	}
	return t
}

// AddRow appends one row. values must match the column count.
func (t *Table) AddRow(values ...Value) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	for i, v := range values {
		t.cells[i] = append(t.cells[i], v)
	}
	t.rows++
	return nil
}

// AddRecord appends a row given as column -> value. Unknown keys are ignored
// and columns absent from the record are null.
func (t *Table) AddRecord(record map[string]Value) {
	for i, c := range t.columns {
		v, ok := record[c]
		if !ok {
			v = NullValue()
		}
		t.cells[i] = append(t.cells[i], v)
	}
	t.rows++
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// Has reports whether the column exists.
func (t *Table) Has(column string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[column]
	return ok
}

// Value returns the cell at (column, row). Missing columns and out-of-range
// rows read as null.
func (t *Table) Value(column string, row int) Value {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= t.rows {
		return NullValue()
	}
	return t.cells[i][row]
}

// Column returns a copy of the column's cells.
func (t *Table) Column(column string) ([]Value, bool) {
	i, ok := t.index[column]
	if !ok {
		return nil, false
	}
	out := make([]Value, t.rows)
	copy(out, t.cells[i])
	return out, true
}

// HasNull reports whether the column exists and contains a null cell.
func (t *Table) HasNull(column string) bool {
	i, ok := t.index[column]
	if !ok {
		return false
	}
	for _, v := range t.cells[i] {
		if v.Null {
			return true
		}
	}
	return false
}

// Sum adds the numeric cells of a column, skipping nulls and text.
func (t *Table) Sum(column string) float64 {
	i, ok := t.index[column]
	if !ok {
		return 0
	}
	var total float64
	for _, v := range t.cells[i] {
		if f, isNum := v.Float(); isNum {
			total += f
		}
	}
	return total
}

// WithColumn returns a copy of t with the column set to values.
// An existing column is replaced in place; a new one is appended.
func (t *Table) WithColumn(column string, values []Value) (*Table, error) {
	if len(values) != t.rows {
		return nil, fmt.Errorf("column %q has %d values, table has %d rows", column, len(values), t.rows)
	}
	out := t.Clone()
	col := make([]Value, len(values))
	copy(col, values)
	if i, ok := out.index[column]; ok {
		out.cells[i] = col
		return out, nil
	}
	out.index[column] = len(out.columns)
	out.columns = append(out.columns, column)
	out.cells = append(out.cells, col)
	return out, nil
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := &Table{
		columns: append([]string(nil), t.columns...),
		index:   make(map[string]int, len(t.index)),
		cells:   make([][]Value, len(t.cells)),
		rows:    t.rows,
	}
	for k, v := range t.index {
		out.index[k] = v
	}
	for i, col := range t.cells {
		out.cells[i] = append([]Value(nil), col...)
	}
	return out
}

// Records returns the table as a slice of column -> value maps, with nulls
// as nil and numbers as float64. The shape is safe to encode as JSON.
func (t *Table) Records() []map[string]any {
	out := make([]map[string]any, t.rows)
	for r := range t.rows {
		rec := make(map[string]any, len(t.columns))
		for i, c := range t.columns {
			v := t.cells[i][r]
			switch {
			case v.Null:
				rec[c] = nil
			case v.IsNum:
				rec[c] = v.Num
			default:
				rec[c] = v.Text
			}
		}
		out[r] = rec
	}
	return out
}
