package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"sheetcli/internal/config"
	apperrors "sheetcli/internal/errors"
	"sheetcli/internal/files"
	"sheetcli/pkg/contracts/domain"
)

// Options configures how tables are saved.
type Options struct {
	// Format overrides the format implied by the output file extension.
	Format files.Format
	// Delimiter separates CSV fields; zero means a comma.
	Delimiter rune
	// BOM prefixes CSV output with a UTF-8 byte order mark.
	BOM bool
}

// OptionsFrom maps the processing section of the configuration.
func OptionsFrom(cfg config.ProcessingConfig) Options {
	return Options{
		Delimiter: cfg.Delimiter(),
		BOM:       cfg.CSVBOM,
	}
}

// Save writes a single table to path.
func Save(path string, table *domain.Table, opts Options) error {
	return SaveWorkbook(path, domain.NewWorkbook(table), opts)
}

// SaveWorkbook writes wb to path, replacing any existing file. The new
// content goes to a temporary file in the same directory that is renamed
// over path, so a failed write leaves the old file in place. Numbers whose
// magnitude exceeds the precision threshold are written as text.
func SaveWorkbook(path string, wb *domain.Workbook, opts Options) error {
	if wb == nil || len(wb.Sheets) == 0 {
		return apperrors.NewValidationError(fmt.Sprintf("nothing to write to %s", path))
	}

	format := opts.Format
	if format == "" {
		var err error
		if format, err = files.DetectFormat(path); err != nil {
			return err
		}
	}

	var write func(io.Writer) error
	switch format {
	case files.FormatCSV:
		write = func(w io.Writer) error { return writeCSVWorkbook(w, path, wb, opts) }
	case files.FormatXLSX:
		write = func(w io.Writer) error { return writeXLSX(w, wb) }
	case files.FormatODS:
		write = func(w io.Writer) error { return WriteODS(w, wb) }
	default:
		return apperrors.NewUnsupportedFormatError(path, string(format))
	}

	start := time.Now()
	if err := replaceFile(path, write); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write %s", path), err).
			WithContext("path", path).
			WithContext("format", string(format))
	}

	rows := 0
	for _, s := range wb.Sheets {
		rows += s.RowCount()
	}
	slog.Info("Wrote spreadsheet",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.Int("sheets", len(wb.Sheets)),
		slog.Int("rows", rows),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// replaceFile runs write against a temporary sibling of path and renames it
// into place once the write and close succeed.
func replaceFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
