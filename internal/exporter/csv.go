package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"sheetcli/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Delimiter rune
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes headers and records to w
func WriteCSV(w io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if options.Delimiter != 0 {
		writer.Comma = options.Delimiter
	}

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteTableCSV writes a table as delimited text. The header row is always
// written, even for a table without data rows.
func WriteTableCSV(w io.Writer, table *domain.Table, opts Options) error {
	return WriteCSV(w, WriteOptions{
		Headers:   table.Header(),
		Records:   tableRecords(table),
		Delimiter: opts.Delimiter,
		BOMPrefix: opts.BOM,
	})
}

// writeCSVWorkbook writes the first sheet of wb. CSV holds a single sheet;
// extra sheets are dropped with a warning.
func writeCSVWorkbook(w io.Writer, path string, wb *domain.Workbook, opts Options) error {
	table := wb.First()
	if len(wb.Sheets) > 1 {
		slog.Warn("csv output keeps only the first sheet",
			slog.String("path", path),
			slog.String("sheet", table.Name),
			slog.Int("dropped", len(wb.Sheets)-1))
	}
	return WriteTableCSV(w, table, opts)
}
