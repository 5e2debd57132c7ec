package exporter

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"sheetcli/pkg/contracts/domain"
)

// writeXLSX writes every sheet of wb as an Office Open XML workbook.
func writeXLSX(w io.Writer, wb *domain.Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, table := range wb.Sheets {
		name := sheetName(table, i)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", name, err)
		}
		if err := writeXLSXSheet(f, name, table); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	return f.Write(w)
}

func writeXLSXSheet(f *excelize.File, sheet string, table *domain.Table) error {
	header := table.Header()
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}

	row := make([]interface{}, table.ColumnCount())
	for r := 0; r < table.RowCount(); r++ {
		for c, col := range table.Columns() {
			row[c] = xlsxCell(col.Values[r])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func xlsxCell(v domain.Value) interface{} {
	v = cellValue(v)
	switch v.Kind() {
	case domain.KindInteger:
		i, _ := v.IntValue()
		return i
	case domain.KindReal:
		f, _ := v.RealValue()
		if math.IsInf(f, 0) {
			return v.String()
		}
		return f
	case domain.KindText:
		s, _ := v.TextValue()
		return s
	}
	return nil
}

// sheetName returns the table name or a positional default.
func sheetName(t *domain.Table, i int) string {
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("Sheet%d", i+1)
}
