package files

import (
	"path/filepath"
	"strings"

	"sheetcli/internal/config"
	apperrors "sheetcli/internal/errors"
)

// Format identifies a spreadsheet container.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatODS  Format = "ods"
)

// Ext returns the file extension of the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// ParseFormat accepts a format name with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	case "ods":
		return FormatODS, nil
	}
	return "", apperrors.NewUnsupportedFormatError("", s)
}

// DetectFormat picks the reader for path from its extension. Legacy binary
// workbooks (.xls) are rejected.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case config.ExtCSV:
		return FormatCSV, nil
	case config.ExtXLSX:
		return FormatXLSX, nil
	case config.ExtODS:
		return FormatODS, nil
	}
	return "", apperrors.NewUnsupportedFormatError(path, ext)
}

// IsSpreadsheet reports whether path has an extension DetectFormat accepts.
func IsSpreadsheet(path string) bool {
	_, err := DetectFormat(path)
	return err == nil
}
