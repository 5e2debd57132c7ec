package files

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

// OpenDocument namespaces used in content.xml.
const (
	NSOffice = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	NSTable  = "urn:oasis:names:tc:opendocument:xmlns:table:1.0"
	NSText   = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
)

// maxRepeat bounds how many copies of a repeated non-empty row or cell are
// materialized.
const maxRepeat = 1 << 16

// readODS loads every table of an OpenDocument spreadsheet.
func readODS(path string, opts LoadOptions) (*domain.Workbook, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer zr.Close()

	var content *zip.File
	for _, f := range zr.File {
		if f.Name == "content.xml" {
			content = f
			break
		}
	}
	if content == nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("%s has no content.xml", path), nil)
	}

	rc, err := content.Open()
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open content of %s", path), err)
	}
	defer rc.Close()

	wb, err := ReadODSContent(rc, opts.Sheet)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to parse %s", path), err)
	}
	return wb, nil
}

// odsSheet accumulates one table:table element. Runs of empty rows and
// cells are counted instead of stored, so trailing padding costs nothing.
type odsSheet struct {
	name         string
	grid         [][]domain.Value
	pendingEmpty int

	row         []domain.Value
	pendingNull int
}

func (s *odsSheet) addCell(v domain.Value, repeat int) {
	if v.IsNull() {
		s.pendingNull += repeat
		return
	}
	for ; s.pendingNull > 0; s.pendingNull-- {
		s.row = append(s.row, domain.Null())
	}
	for i := 0; i < min(repeat, maxRepeat); i++ {
		s.row = append(s.row, v)
	}
}

func (s *odsSheet) endRow(repeat int) {
	row := s.row
	s.row, s.pendingNull = nil, 0
	if len(row) == 0 {
		s.pendingEmpty += repeat
		return
	}
	for ; s.pendingEmpty > 0; s.pendingEmpty-- {
		s.grid = append(s.grid, nil)
	}
	for i := 0; i < min(repeat, maxRepeat); i++ {
		s.grid = append(s.grid, row)
	}
}

// odsCell is the state of the cell being decoded.
type odsCell struct {
	valueType string
	value     string
	repeat    int
	text      strings.Builder
	paras     int
}

func (c *odsCell) result() domain.Value {
	switch c.valueType {
	case "float", "percentage", "currency":
		if v, ok := parseNumber(c.value); ok {
			return v
		}
	case "", "void":
		return domain.Null()
	}
	if c.value != "" && c.paras == 0 {
		return domain.Text(c.value)
	}
	return domain.Text(c.text.String())
}

// ReadODSContent decodes a content.xml stream. When sheet is not empty only
// that table is kept.
func ReadODSContent(r io.Reader, sheet string) (*domain.Workbook, error) {
	dec := xml.NewDecoder(r)
	wb := domain.NewWorkbook()

	var (
		cur    *odsSheet
		cell   *odsCell
		rowRep int
		inText int
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Space == NSTable && t.Name.Local == "table":
				name := attr(t, NSTable, "name")
				if sheet == "" || name == sheet {
					cur = &odsSheet{name: name}
				}
			case cur == nil:
			case t.Name.Space == NSTable && t.Name.Local == "table-row":
				rowRep = repeatAttr(t, "number-rows-repeated")
			case t.Name.Space == NSTable && (t.Name.Local == "table-cell" || t.Name.Local == "covered-table-cell"):
				cell = &odsCell{
					valueType: attr(t, NSOffice, "value-type"),
					repeat:    repeatAttr(t, "number-columns-repeated"),
				}
				cell.value = cellValueAttr(t, cell.valueType)
			case cell == nil:
			case t.Name.Space == NSText && t.Name.Local == "p":
				if cell.paras > 0 {
					cell.text.WriteByte('\n')
				}
				cell.paras++
				inText++
			case t.Name.Space == NSText && t.Name.Local == "s":
				cell.text.WriteString(strings.Repeat(" ", max(repeatAttrNS(t, NSText, "c"), 1)))
			case t.Name.Space == NSText && t.Name.Local == "tab":
				cell.text.WriteByte('\t')
			case t.Name.Space == NSText && t.Name.Local == "line-break":
				cell.text.WriteByte('\n')
			}

		case xml.CharData:
			if cell != nil && inText > 0 {
				cell.text.Write(t)
			}

		case xml.EndElement:
			switch {
			case t.Name.Space == NSTable && t.Name.Local == "table":
				if cur != nil {
					table, err := buildTable(cur.name, cur.grid)
					if err != nil {
						return nil, err
					}
					wb.Sheets = append(wb.Sheets, table)
				}
				cur = nil
			case cur == nil:
			case t.Name.Space == NSTable && t.Name.Local == "table-row":
				cur.endRow(rowRep)
			case t.Name.Space == NSTable && (t.Name.Local == "table-cell" || t.Name.Local == "covered-table-cell"):
				if cell != nil {
					cur.addCell(cell.result(), cell.repeat)
				}
				cell = nil
			case t.Name.Space == NSText && t.Name.Local == "p":
				if inText > 0 {
					inText--
				}
			}
		}
	}
	return wb, nil
}

func attr(t xml.StartElement, space, local string) string {
	for _, a := range t.Attr {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func repeatAttr(t xml.StartElement, local string) int {
	return max(repeatAttrNS(t, NSTable, local), 1)
}

func repeatAttrNS(t xml.StartElement, space, local string) int {
	n, err := strconv.Atoi(attr(t, space, local))
	if err != nil {
		return 0
	}
	return n
}

// cellValueAttr returns the typed value attribute matching valueType.
func cellValueAttr(t xml.StartElement, valueType string) string {
	switch valueType {
	case "boolean":
		return attr(t, NSOffice, "boolean-value")
	case "date":
		return attr(t, NSOffice, "date-value")
	case "time":
		return attr(t, NSOffice, "time-value")
	case "string":
		return attr(t, NSOffice, "string-value")
	}
	return attr(t, NSOffice, "value")
}
