package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetcli/pkg/contracts/domain"
)

func sampleTable(t *testing.T) *domain.Table {
	t.Helper()
	table := domain.NewTable("Hoja1", []string{"sku", "name", "price", "barcode"})
	rows := [][]domain.Value{
		{domain.Int(1001), domain.Text("Café, molido"), domain.Real(2.5), domain.Int(7501031311309123)},
		{domain.Int(1002), domain.Text("a  b\tc"), domain.Null(), domain.Null()},
		{domain.Null(), domain.Text(` quoted "x" `), domain.Real(-0.75), domain.Int(42)},
	}
	for _, r := range rows {
		require.NoError(t, table.AppendRow(r))
	}
	return table
}

func TestWriteCSV(t *testing.T) {
	tests := []struct {
		name     string
		options  WriteOptions
		expected string
	}{
		{
			name:     "headers and records",
			options:  WriteOptions{Headers: []string{"a", "b"}, Records: [][]string{{"1", "x,y"}}},
			expected: "a,b\n1,\"x,y\"\n",
		},
		{
			name:     "semicolon delimiter",
			options:  WriteOptions{Headers: []string{"a", "b"}, Records: [][]string{{"1", "x,y"}}, Delimiter: ';'},
			expected: "a;b\n1;x,y\n",
		},
		{
			name:     "bom prefix",
			options:  WriteOptions{Headers: []string{"a"}, BOMPrefix: true},
			expected: "\xef\xbb\xbfa\n",
		},
		{
			name:     "no headers",
			options:  WriteOptions{Records: [][]string{{"1"}}},
			expected: "1\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteCSV(&buf, tt.options))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteTableCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTableCSV(&buf, sampleTable(t), Options{}))

	expected := "sku,name,price,barcode\n" +
		"1001,\"Café, molido\",2.5,7501031311309123\n" +
		"1002,a  b\tc,,\n" +
		",\" quoted \"\"x\"\" \",-0.75,42\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteTableCSVEmptyTableKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTableCSV(&buf, domain.NewTable("t", []string{"a", "b"}), Options{}))
	assert.Equal(t, "a,b\n", buf.String())
}

func TestSaveCSVKeepsFirstSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	first := domain.NewTable("one", []string{"a"})
	second := domain.NewTable("two", []string{"b"})

	require.NoError(t, SaveWorkbook(path, domain.NewWorkbook(first, second), Options{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(data))
}
