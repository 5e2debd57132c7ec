package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	tbl := NewTable("Sheet1", []string{"id", "name"})
	require.NoError(t, tbl.AppendRow([]Value{Int(1), Text("a")}))
	require.NoError(t, tbl.AppendRow([]Value{Int(2), Text("b")}))
	require.NoError(t, tbl.AppendRow([]Value{Int(3)}))
	return tbl
}

func TestTableAppendRowPadsWithNull(t *testing.T) {
	tbl := newTestTable(t)

	assert.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, []Value{Int(3), Null()}, tbl.Row(2))

	err := tbl.AppendRow([]Value{Int(1), Int(2), Int(3)})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestTableColumns(t *testing.T) {
	tbl := newTestTable(t)

	col, ok := tbl.Column("name")
	require.True(t, ok)
	assert.Equal(t, "name", col.Name)
	assert.Equal(t, 1, tbl.ColumnIndex("name"))
	assert.Equal(t, -1, tbl.ColumnIndex("missing"))
	assert.Equal(t, "missing", tbl.HasColumns("id", "missing"))
	assert.Empty(t, tbl.HasColumns("id", "name"))

	err := tbl.AddColumn("id", make([]Value, 3))
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	err = tbl.AddColumn("short", make([]Value, 1))
	assert.ErrorIs(t, err, ErrLengthMismatch)

	require.NoError(t, tbl.SetColumn("flag", []Value{Int(1), Int(0), Int(1)}))
	assert.Equal(t, []string{"id", "name", "flag"}, tbl.Header())

	require.NoError(t, tbl.SetColumn("flag", []Value{Int(0), Int(0), Int(0)}))
	assert.Equal(t, 3, tbl.ColumnCount())
}

func TestNewTableDeduplicatesHeader(t *testing.T) {
	tbl := NewTable("s", []string{"a", "a", "b", "a"})
	assert.Equal(t, []string{"a", "a.1", "b", "a.2"}, tbl.Header())
}

func TestTableSliceAndClone(t *testing.T) {
	tbl := newTestTable(t)

	part := tbl.Slice(1, 10)
	assert.Equal(t, 2, part.RowCount())
	assert.Equal(t, []Value{Int(2), Text("b")}, part.Row(0))

	clone := tbl.Clone()
	col, _ := clone.Column("id")
	col.Values[0] = Int(99)
	orig, _ := tbl.Column("id")
	assert.Equal(t, Int(1), orig.Values[0])

	sel := tbl.SelectRows([]int{2, 0})
	assert.Equal(t, []Value{Int(3), Null()}, sel.Row(0))
	assert.Equal(t, []Value{Int(1), Text("a")}, sel.Row(1))
}

func TestColumnType(t *testing.T) {
	tests := []struct {
		name   string
		values []Value
		want   ColumnType
	}{
		{"empty", []Value{Null(), Null()}, ColumnEmpty},
		{"integer", []Value{Int(1), Null(), Int(2)}, ColumnInteger},
		{"real wins over integer", []Value{Int(1), Real(2)}, ColumnReal},
		{"text", []Value{Text("a"), Null()}, ColumnText},
		{"mixed", []Value{Text("a"), Int(1)}, ColumnMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := &Column{Name: "c", Values: tt.values}
			assert.Equal(t, tt.want, col.Type())
		})
	}
}

func TestWorkbook(t *testing.T) {
	wb := NewWorkbook(NewTable("one", nil), NewTable("two", nil))
	assert.Equal(t, []string{"one", "two"}, wb.SheetNames())
	s, ok := wb.Sheet("two")
	require.True(t, ok)
	assert.Equal(t, "two", s.Name)
	assert.Equal(t, "one", wb.First().Name)
	assert.Nil(t, NewWorkbook().First())
}
