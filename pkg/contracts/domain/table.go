package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateColumn is returned when a column name is already present
	ErrDuplicateColumn = errors.New("duplicate column")
	// ErrLengthMismatch is returned when a column or row does not fit the table shape
	ErrLengthMismatch = errors.New("length mismatch")
)

// ColumnType is the declared type of a column, derived from its non-null cells.
type ColumnType string

const (
	ColumnEmpty   ColumnType = "empty"
	ColumnInteger ColumnType = "integer"
	ColumnReal    ColumnType = "real"
	ColumnText    ColumnType = "text"
	ColumnMixed   ColumnType = "mixed"
)

// IsNumeric reports whether every non-null value of the column is a number.
func (c ColumnType) IsNumeric() bool {
	return c == ColumnInteger || c == ColumnReal
}

// Column is a named sequence of cells.
type Column struct {
	Name   string
	Values []Value
}

// NewColumn creates a column of n Null cells.
func NewColumn(name string, n int) *Column {
	return &Column{Name: name, Values: make([]Value, n)}
}

func (c *Column) Len() int { return len(c.Values) }

// Type reports the declared column type. A column holding only numbers is
// Real as soon as one cell is Real.
func (c *Column) Type() ColumnType {
	var hasInt, hasReal, hasText bool
	for _, v := range c.Values {
		switch v.Kind() {
		case KindInteger:
			hasInt = true
		case KindReal:
			hasReal = true
		case KindText:
			hasText = true
		}
	}
	switch {
	case hasText && (hasInt || hasReal):
		return ColumnMixed
	case hasText:
		return ColumnText
	case hasReal:
		return ColumnReal
	case hasInt:
		return ColumnInteger
	default:
		return ColumnEmpty
	}
}

// NonNullCount returns the number of non-null cells.
func (c *Column) NonNullCount() int {
	n := 0
	for _, v := range c.Values {
		if !v.IsNull() {
			n++
		}
	}
	return n
}

func (c *Column) clone() *Column {
	values := make([]Value, len(c.Values))
	copy(values, c.Values)
	return &Column{Name: c.Name, Values: values}
}

// Table is an ordered set of equally long named columns. Name carries the
// sheet name for multi-sheet formats.
type Table struct {
	Name    string
	columns []*Column
	index   map[string]int
	rows    int
}

// NewTable creates an empty table with the given header.
// Duplicate header names are suffixed (".1", ".2") so every column stays addressable.
func NewTable(name string, header []string) *Table {
	t := &Table{Name: name, index: make(map[string]int, len(header))}
	for _, h := range header {
		col := uniqueName(t.index, h)
		t.index[col] = len(t.columns)
		t.columns = append(t.columns, &Column{Name: col})
	}
	return t
}

func uniqueName(index map[string]int, name string) string {
	if _, taken := index[name]; !taken {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%d", name, i)
		if _, taken := index[candidate]; !taken {
			return candidate
		}
	}
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return t.rows }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// Header returns the column names in order.
func (t *Table) Header() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Columns returns the columns in order. Callers may mutate cell values but
// must not change slice lengths.
func (t *Table) Columns() []*Column { return t.columns }

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// ColumnIndex returns the position of a column or -1.
func (t *Table) ColumnIndex(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// HasColumns returns the first missing name, or "" when all are present.
func (t *Table) HasColumns(names ...string) (missing string) {
	for _, n := range names {
		if _, ok := t.index[n]; !ok {
			return n
		}
	}
	return ""
}

// AddColumn appends a new column. The first column of an empty table sets
// the row count.
func (t *Table) AddColumn(name string, values []Value) error {
	if _, ok := t.index[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	if len(t.columns) > 0 && len(values) != t.rows {
		return fmt.Errorf("%w: column %q has %d values, table has %d rows", ErrLengthMismatch, name, len(values), t.rows)
	}
	if len(t.columns) == 0 {
		t.rows = len(values)
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, &Column{Name: name, Values: values})
	return nil
}

// SetColumn replaces the values of an existing column or appends a new one.
func (t *Table) SetColumn(name string, values []Value) error {
	i, ok := t.index[name]
	if !ok {
		return t.AddColumn(name, values)
	}
	if len(values) != t.rows {
		return fmt.Errorf("%w: column %q has %d values, table has %d rows", ErrLengthMismatch, name, len(values), t.rows)
	}
	t.columns[i].Values = values
	return nil
}

// Row returns a copy of row i in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Values[i]
	}
	return row
}

// AppendRow adds a row. Short rows are padded with Null; long rows are rejected.
func (t *Table) AppendRow(values []Value) error {
	if len(values) > len(t.columns) {
		return fmt.Errorf("%w: row has %d cells, table has %d columns", ErrLengthMismatch, len(values), len(t.columns))
	}
	for j, c := range t.columns {
		var v Value
		if j < len(values) {
			v = values[j]
		}
		c.Values = append(c.Values, v)
	}
	t.rows++
	return nil
}

// Slice returns a copy of rows [start, end) with the same header and name.
func (t *Table) Slice(start, end int) *Table {
	if start < 0 {
		start = 0
	}
	if end > t.rows {
		end = t.rows
	}
	if start > end {
		start = end
	}
	out := NewTable(t.Name, t.Header())
	for j, c := range t.columns {
		values := make([]Value, end-start)
		copy(values, c.Values[start:end])
		out.columns[j].Values = values
	}
	out.rows = end - start
	return out
}

// SelectRows returns a copy holding only the given rows, in the given order.
func (t *Table) SelectRows(rows []int) *Table {
	out := NewTable(t.Name, t.Header())
	for j, c := range t.columns {
		values := make([]Value, len(rows))
		for k, r := range rows {
			values[k] = c.Values[r]
		}
		out.columns[j].Values = values
	}
	out.rows = len(rows)
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := &Table{Name: t.Name, index: make(map[string]int, len(t.index)), rows: t.rows}
	for i, c := range t.columns {
		out.columns = append(out.columns, c.clone())
		out.index[c.Name] = i
	}
	return out
}
