package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sheetcli/internal/config"
)

// Manager resolves input and output locations and prepares the output
// directory for writers.
type Manager struct {
	paths *config.Paths
}

// NewManager creates a new file manager instance
func NewManager(paths *config.Paths) *Manager {
	return &Manager{paths: paths}
}

// Paths returns the directories the manager resolves against.
func (m *Manager) Paths() *config.Paths {
	return m.paths
}

// FileExists checks if a regular file exists at the given input path
func (m *Manager) FileExists(path string) bool {
	fullPath := m.InputPath(path)
	info, err := os.Stat(fullPath)
	exists := err == nil && !info.IsDir()

	slog.Debug("FileExists check",
		slog.String("path", path),
		slog.String("full_path", fullPath),
		slog.Bool("exists", exists))

	return exists
}

// InputPath resolves a user supplied input file against the working directory
func (m *Manager) InputPath(path string) string {
	if m.paths == nil {
		return filepath.Clean(path)
	}
	return m.paths.InputPath(path)
}

// OutputPath places name in the output directory
func (m *Manager) OutputPath(name string) string {
	if m.paths == nil {
		return name
	}
	return m.paths.OutputPath(name)
}

// PrepareOutput ensures the parent directory of an output file exists and
// removes a previous file of the same name.
func (m *Manager) PrepareOutput(path string) error {
	if err := m.EnsureDirectory(filepath.Dir(path)); err != nil {
		return err
	}
	return m.RemoveIfExists(path)
}

// RemoveIfExists deletes path, ignoring a missing file
func (m *Manager) RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err == nil {
		slog.Debug("removed existing output", slog.String("path", path))
		return nil
	}
	if os.IsNotExist(err) {
		return nil
	}
	return fmt.Errorf("failed to remove %s: %w", path, err)
}

// EnsureDirectory creates a directory with all parent directories
func (m *Manager) EnsureDirectory(path string) error {
	slog.Debug("Ensuring directory exists", slog.String("path", path))

	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// BaseName returns the file name of path without directory or extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ProcessedName names the output of a tool that rewrites one sheet:
// <base>_processed_<sheet>.<ext>.
func ProcessedName(input, sheet string, format Format) string {
	return fmt.Sprintf("%s_processed_%s%s", BaseName(input), sheet, format.Ext())
}

// ChunkName names the n-th (1-based) piece of a split sheet:
// <base>_<sheet>_<n>.<ext>.
func ChunkName(input, sheet string, n int, format Format) string {
	return fmt.Sprintf("%s_%s_%d%s", BaseName(input), sheet, n, format.Ext())
}

// ReplaceExt swaps the extension of input's file name for format's.
func ReplaceExt(input string, format Format) string {
	return BaseName(input) + format.Ext()
}
