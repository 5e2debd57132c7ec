package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "sheetcli/internal/errors"
	"sheetcli/internal/files"
	"sheetcli/pkg/contracts/domain"
)

// FileValidator checks inputs and outputs before a tool touches them
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewFileNotFoundError(path, err)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewFileNotFoundError(path, fmt.Errorf("%s is a directory", path))
	}

	// Check if file is readable by opening it
	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// IsLockFile reports whether path is an office suite lock or temporary file
// (~$book.xlsx, .~lock.book.ods#).
func IsLockFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~lock.")
}

// ValidateSpreadsheet checks that path is a readable file in a supported format
func (v *FileValidator) ValidateSpreadsheet(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	if _, err := files.DetectFormat(path); err != nil {
		v.logger.Error("Unsupported spreadsheet format",
			slog.String("file", path),
			slog.String("extension", filepath.Ext(path)))
		return err
	}

	if IsLockFile(path) {
		v.logger.Warn("Skipping temporary office file",
			slog.String("file", path))
		return apperrors.NewValidationError(fmt.Sprintf("file %s is a temporary office file", path)).
			WithContext("path", path)
	}
	return nil
}

// ValidateColumns checks that every named column exists in table
func (v *FileValidator) ValidateColumns(table *domain.Table, source string, columns ...string) error {
	if missing := table.HasColumns(columns...); missing != "" {
		v.logger.Error("Column not found",
			slog.String("file", source),
			slog.String("column", missing),
			slog.Any("available", table.Header()))
		return apperrors.NewInvalidColumnError(missing, source)
	}
	return nil
}

// CountSpreadsheets counts the supported spreadsheets in a directory
func (v *FileValidator) CountSpreadsheets(dir string) (int, error) {
	found, err := files.NewDiscovery("").FindSpreadsheets(dir)
	if err != nil {
		v.logger.Error("Failed to count files",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return 0, err
	}

	v.logger.Debug("Files counted",
		slog.String("directory", dir),
		slog.Int("count", len(found)))
	return len(found), nil
}
