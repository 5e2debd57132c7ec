package files

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

// CSVSheetName is the sheet name given to the single table of a CSV file.
const CSVSheetName = "Sheet1"

// textDecoder returns the decoder for a configured CSV encoding. UTF-8
// input may start with a byte order mark.
func textDecoder(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM.NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case "iso-8859-1", "latin-1", "latin1":
		return charmap.ISO8859_1.NewDecoder(), nil
	}
	return nil, apperrors.NewConfigError(fmt.Sprintf("unsupported csv encoding %q", name), nil)
}

// readCSV loads a delimited file as a single-sheet workbook.
func readCSV(path string, opts LoadOptions) (*domain.Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewFileNotFoundError(path, err)
	}
	defer f.Close()

	table, err := ReadCSV(f, CSVSheetName, opts)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read %s", path), err)
	}
	return domain.NewWorkbook(table), nil
}

// ReadCSV parses delimited text from r. The first record is the header.
func ReadCSV(r io.Reader, name string, opts LoadOptions) (*domain.Table, error) {
	dec, err := textDecoder(opts.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(transform.NewReader(r, dec))
	reader.Comma = opts.delimiter()
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return domain.NewTable(name, nil), nil
	}

	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}

	header := make([]domain.Value, len(records[0]))
	for i, h := range records[0] {
		if h != "" {
			header[i] = domain.Text(h)
		}
	}
	table := domain.NewTable(name, headerNames(header, width))

	body := records[1:]
	columns := make([][]domain.Value, width)
	raw := make([]string, len(body))
	for j := 0; j < width; j++ {
		for i, rec := range body {
			raw[i] = ""
			if j < len(rec) {
				raw[i] = rec[j]
			}
		}
		columns[j] = inferColumn(raw)
	}

	row := make([]domain.Value, width)
	for i := range body {
		for j := range columns {
			row[j] = columns[j][i]
		}
		if err := table.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return table, nil
}
