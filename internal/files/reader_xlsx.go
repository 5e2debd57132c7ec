package files

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

// readXLSX loads every worksheet of an Office Open XML workbook.
func readXLSX(path string, opts LoadOptions) (*domain.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	wb := domain.NewWorkbook()
	for _, sheet := range f.GetSheetList() {
		if opts.Sheet != "" && sheet != opts.Sheet {
			continue
		}
		table, err := readXLSXSheet(f, sheet)
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q of %s", sheet, path), err)
		}
		wb.Sheets = append(wb.Sheets, table)
	}
	return wb, nil
}

func readXLSXSheet(f *excelize.File, sheet string) (*domain.Table, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := make([][]domain.Value, 0, len(rows))
	for r, row := range rows {
		values := make([]domain.Value, len(row))
		for c, raw := range row {
			if raw == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, err
			}
			values[c] = xlsxValue(cellType, raw)
		}
		grid = append(grid, values)
	}
	return buildTable(sheet, grid)
}

// xlsxValue maps a raw cell to a Value. Cells without an explicit type are
// numbers in the file format.
func xlsxValue(cellType excelize.CellType, raw string) domain.Value {
	switch cellType {
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeFormula:
		if v, ok := parseNumber(raw); ok {
			return v
		}
	}
	return domain.Text(raw)
}
