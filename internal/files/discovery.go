package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	Format  Format
}

// Discovery finds spreadsheet inputs relative to a base directory
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(path string) string {
	if filepath.IsAbs(path) || d.basePath == "" {
		return path
	}
	return filepath.Join(d.basePath, path)
}

// FindSpreadsheets lists the .csv, .xlsx and .ods files directly inside dir,
// sorted by name.
func (d *Discovery) FindSpreadsheets(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format, err := DetectFormat(entry.Name())
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Format:  format,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// FindFilesByPattern finds spreadsheets in dir matching a glob pattern
func (d *Discovery) FindFilesByPattern(dir string, pattern string) ([]FileInfo, error) {
	searchPattern := filepath.Join(d.resolve(dir), pattern)

	matches, err := filepath.Glob(searchPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []FileInfo
	for _, match := range matches {
		format, err := DetectFormat(match)
		if err != nil {
			continue
		}
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, FileInfo{
			Path:    match,
			Name:    filepath.Base(match),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Format:  format,
		})
	}
	return files, nil
}

// ExpandInputs turns command line arguments into input paths. Directories
// contribute the spreadsheets they contain and glob patterns are expanded;
// plain paths pass through untouched so that a missing file is reported by
// the loader.
func (d *Discovery) ExpandInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		full := d.resolve(arg)

		if info, err := os.Stat(full); err == nil && info.IsDir() {
			found, err := d.FindSpreadsheets(full)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				paths = append(paths, f.Path)
			}
			continue
		}

		if hasMeta(arg) {
			matches, err := d.FindFilesByPattern(filepath.Dir(full), filepath.Base(full))
			if err != nil {
				return nil, err
			}
			for _, f := range matches {
				paths = append(paths, f.Path)
			}
			continue
		}

		paths = append(paths, full)
	}
	return paths, nil
}

func hasMeta(path string) bool {
	for _, c := range path {
		switch c {
		case '*', '?', '[':
			return true
		}
	}
	return false
}
