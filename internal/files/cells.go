package files

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"sheetcli/pkg/contracts/domain"
)

// missingMarkers are the cell texts read as missing values in delimited
// files, the same set spreadsheet users expect from pandas.
var missingMarkers = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

var integerText = regexp.MustCompile(`^[+-]?[0-9]+$`)

func isMissing(s string) bool {
	_, ok := missingMarkers[s]
	return ok
}

// parseNumber reads s as an integer when it is a plain run of digits and
// as a float otherwise. Digits that overflow int64 are not a number: a float
// would lose them, so the column has to stay text.
func parseNumber(s string) (domain.Value, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Null(), false
	}
	if integerText.MatchString(s) {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return domain.Null(), false
		}
		return domain.Int(i), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.Null(), false
	}
	return domain.Real(f), true
}

// inferColumn converts the raw texts of one column. A column whose non-missing
// cells all parse as integers becomes Integer; if they all parse as numbers
// it becomes Real; otherwise every cell stays Text.
func inferColumn(raw []string) []domain.Value {
	out := make([]domain.Value, len(raw))
	kind := domain.KindInteger
	seen := false
	for i, s := range raw {
		if isMissing(s) {
			out[i] = domain.Null()
			continue
		}
		seen = true
		v, ok := parseNumber(s)
		if !ok {
			kind = domain.KindText
			break
		}
		if v.Kind() == domain.KindReal {
			kind = domain.KindReal
		}
		out[i] = v
	}
	if !seen {
		return out
	}

	for i, s := range raw {
		if isMissing(s) {
			out[i] = domain.Null()
			continue
		}
		switch kind {
		case domain.KindText:
			out[i] = domain.Text(s)
		case domain.KindReal:
			f, _ := out[i].Float()
			out[i] = domain.Real(f)
		}
	}
	return out
}

// headerNames turns the first row of a sheet into column names. Blank
// header cells get positional names.
func headerNames(row []domain.Value, width int) []string {
	names := make([]string, width)
	for i := range names {
		if i < len(row) && !row[i].IsNull() {
			names[i] = row[i].String()
			continue
		}
		names[i] = fmt.Sprintf("Unnamed: %d", i)
	}
	return names
}

// buildTable assembles a table from a grid whose first row is the header.
// Rows shorter than the widest row are padded with Null.
func buildTable(name string, grid [][]domain.Value) (*domain.Table, error) {
	if len(grid) == 0 {
		return domain.NewTable(name, nil), nil
	}
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}

	table := domain.NewTable(name, headerNames(grid[0], width))
	for _, row := range grid[1:] {
		if err := table.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return table, nil
}
