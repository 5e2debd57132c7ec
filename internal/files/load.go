package files

import (
	"fmt"
	"log/slog"
	"os"

	"sheetcli/internal/config"
	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

// LoadOptions controls how spreadsheet files are read.
type LoadOptions struct {
	// Delimiter separates CSV fields; zero means a comma.
	Delimiter rune
	// Encoding of CSV input: utf-8 (BOM tolerated), windows-1252 or iso-8859-1.
	Encoding string
	// Sheet restricts multi-sheet formats to one sheet.
	Sheet string
}

// LoadOptionsFrom maps the processing section of the configuration.
func LoadOptionsFrom(cfg config.ProcessingConfig) LoadOptions {
	return LoadOptions{
		Delimiter: cfg.Delimiter(),
		Encoding:  cfg.CSVEncoding,
	}
}

func (o LoadOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// Load reads every sheet of the file at path.
func Load(path string, opts LoadOptions) (*domain.Workbook, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, apperrors.NewFileNotFoundError(path, err)
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	slog.Debug("loading spreadsheet",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.Int64("size_bytes", info.Size()))

	var wb *domain.Workbook
	switch format {
	case FormatCSV:
		wb, err = readCSV(path, opts)
	case FormatXLSX:
		wb, err = readXLSX(path, opts)
	case FormatODS:
		wb, err = readODS(path, opts)
	}
	if err != nil {
		return nil, err
	}
	if opts.Sheet != "" && len(wb.Sheets) == 0 && format != FormatCSV {
		return nil, apperrors.NewValidationError(fmt.Sprintf("sheet %q not found in %s", opts.Sheet, path)).
			WithContext("path", path)
	}
	return wb, nil
}

// LoadTable reads a single sheet: the one named in opts, or the first.
func LoadTable(path string, opts LoadOptions) (*domain.Table, error) {
	wb, err := Load(path, opts)
	if err != nil {
		return nil, err
	}
	table := wb.First()
	if table == nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s contains no sheets", path)).
			WithContext("path", path)
	}
	return table, nil
}
