package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sheetcli/pkg/contracts/domain"
)

// newTable builds a table from a header and rows of cells.
func newTable(t *testing.T, name string, header []string, rows ...[]domain.Value) *domain.Table {
	t.Helper()
	tbl := domain.NewTable(name, header)
	for _, r := range rows {
		require.NoError(t, tbl.AppendRow(r))
	}
	return tbl
}

func row(values ...domain.Value) []domain.Value { return values }

func columnValues(t *testing.T, tbl *domain.Table, name string) []domain.Value {
	t.Helper()
	col, ok := tbl.Column(name)
	require.True(t, ok, "column %s missing", name)
	return col.Values
}

var (
	null = domain.Null
	txt  = domain.Text
	num  = domain.Int
	flt  = domain.Real
)
