package exporter

import (
	"math"
	"strconv"

	"sheetcli/internal/dataprocessing"
	"sheetcli/pkg/contracts/domain"
)

// cellValue prepares a value for output. Numbers beyond the precision
// threshold become their exact decimal text; NaN becomes an empty cell.
func cellValue(v domain.Value) domain.Value {
	if f, ok := v.RealValue(); ok && math.IsNaN(f) {
		return domain.Null()
	}
	return dataprocessing.PrecisionSafe(v)
}

// formatCell renders a value for delimited output.
func formatCell(v domain.Value) string {
	return cellValue(v).String()
}

// formatFloat formats a float for a typed spreadsheet cell, using the
// shortest representation that round-trips.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an integer for a typed spreadsheet cell
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// tableRecords renders every data row of t as strings.
func tableRecords(t *domain.Table) [][]string {
	records := make([][]string, t.RowCount())
	cols := t.Columns()
	for i := range records {
		record := make([]string, len(cols))
		for j, c := range cols {
			record[j] = formatCell(c.Values[i])
		}
		records[i] = record
	}
	return records
}
