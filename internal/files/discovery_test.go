package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("test content"), 0644))
	}
}

func TestNewDiscovery(t *testing.T) {
	basePath := "/test/base"
	discovery := NewDiscovery(basePath)

	assert.NotNil(t, discovery)
	assert.Equal(t, basePath, discovery.basePath)
}

func TestFindSpreadsheets(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected []string
	}{
		{
			name:     "only spreadsheets",
			files:    []string{"b.ods", "a.csv", "c.XLSX"},
			expected: []string{"a.csv", "b.ods", "c.XLSX"},
		},
		{
			name:     "mixed file types",
			files:    []string{"report.xlsx", "legacy.xls", "doc.pdf", "notes.odt"},
			expected: []string{"report.xlsx"},
		},
		{
			name:     "no spreadsheets",
			files:    []string{"doc.pdf", "readme.txt"},
			expected: nil,
		},
		{
			name:     "empty directory",
			files:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "in"), 0755))
			for _, f := range tt.files {
				touch(t, filepath.Join(tmpDir, "in"), f)
			}

			found, err := NewDiscovery(tmpDir).FindSpreadsheets("in")
			require.NoError(t, err)

			var names []string
			for _, f := range found {
				names = append(names, f.Name)
				assert.Equal(t, filepath.Join(tmpDir, "in", f.Name), f.Path)
				assert.Greater(t, f.Size, int64(0))
				assert.False(t, f.ModTime.IsZero())
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFindSpreadsheetsSetsFormat(t *testing.T) {
	tmpDir := t.TempDir()
	touch(t, tmpDir, "a.csv", "b.ods")

	found, err := NewDiscovery("").FindSpreadsheets(tmpDir)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, FormatCSV, found[0].Format)
	assert.Equal(t, FormatODS, found[1].Format)
}

func TestFindSpreadsheetsMissingDirectory(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).FindSpreadsheets("nope")
	assert.Error(t, err)
}

func TestFindFilesByPattern(t *testing.T) {
	tmpDir := t.TempDir()
	touch(t, tmpDir, "stock_1.csv", "stock_2.ods", "stock_3.pdf", "other.csv")

	found, err := NewDiscovery(tmpDir).FindFilesByPattern(".", "stock_*")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "stock_1.csv", found[0].Name)
	assert.Equal(t, "stock_2.ods", found[1].Name)
}

func TestExpandInputs(t *testing.T) {
	tmpDir := t.TempDir()
	touch(t, tmpDir, "dir/a.csv", "dir/b.ods", "dir/skip.txt", "x_1.xlsx", "x_2.xlsx", "single.csv")

	d := NewDiscovery(tmpDir)
	paths, err := d.ExpandInputs([]string{"dir", "x_*.xlsx", "single.csv", "missing.ods"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "dir", "a.csv"),
		filepath.Join(tmpDir, "dir", "b.ods"),
		filepath.Join(tmpDir, "x_1.xlsx"),
		filepath.Join(tmpDir, "x_2.xlsx"),
		filepath.Join(tmpDir, "single.csv"),
		filepath.Join(tmpDir, "missing.ods"),
	}, paths)
}
