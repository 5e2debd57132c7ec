package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"sheetcli/pkg/contracts/domain"
)

// Row builds a table row from Go literals: nil is Null, strings are Text,
// ints are Integer and floats are Real.
func Row(values ...any) []domain.Value {
	row := make([]domain.Value, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case nil:
			row[i] = domain.Null()
		case domain.Value:
			row[i] = x
		case string:
			row[i] = domain.Text(x)
		case int:
			row[i] = domain.Int(int64(x))
		case int64:
			row[i] = domain.Int(x)
		case float64:
			row[i] = domain.Real(x)
		default:
			panic("testutil.Row: unsupported literal")
		}
	}
	return row
}

// NewTable builds a table from a header and literal rows.
func NewTable(t testing.TB, name string, header []string, rows ...[]domain.Value) *domain.Table {
	t.Helper()
	table := domain.NewTable(name, header)
	for _, r := range rows {
		if err := table.AppendRow(r); err != nil {
			t.Fatalf("append row: %v", err)
		}
	}
	return table
}

// WriteFile writes content under dir and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Values returns the values of a column, failing the test when it is absent.
func Values(t testing.TB, table *domain.Table, column string) []domain.Value {
	t.Helper()
	col, ok := table.Column(column)
	if !ok {
		t.Fatalf("column %q not in %v", column, table.Header())
	}
	return col.Values
}

// Strings renders values the way they print in a spreadsheet cell.
func Strings(values []domain.Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
