package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sheetcli/internal/errors"
	"sheetcli/internal/files"
	"sheetcli/internal/shared/testutil"
	"sheetcli/pkg/contracts/domain"
)

const stockCSV = "sku,qty\nA1,'5'\nB2, 7 \nB2, 7 \nC3,\nD4,abc\n"

func TestCleanColumnToInteger(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "stock.csv", stockCSV)
	outDir := filepath.Join(dir, "clean")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-column", "qty", "-type", "integer", "-ops", "1,2,3", "-out-dir", outDir, "-log-level", "error", input}, &stdout, &stderr)
	require.Equal(t, apperrors.ExitOK, code, stderr.String())

	out := filepath.Join(outDir, "stock.csv")
	assert.Contains(t, stdout.String(), out)

	table, err := files.LoadTable(out, files.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B2", "C3", "D4"}, testutil.Strings(testutil.Values(t, table, "sku")))
	assert.Equal(t,
		[]domain.Value{domain.Int(5), domain.Int(7), domain.Int(0), domain.Null()},
		testutil.Values(t, table, "qty"))
}

func TestCleanColumnFloatToODS(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "prices.csv", "item,price\na, 1.5\nb,2\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{input, "-column", "price", "-type", "float", "-ops", "strip_spaces", "-format", "ods", "-out-dir", dir}, &stdout, &stderr)
	require.Equal(t, apperrors.ExitOK, code, stderr.String())

	table, err := files.LoadTable(filepath.Join(dir, "prices.ods"), files.LoadOptions{})
	require.NoError(t, err)
	// the writer stores 2.0 as a plain number, which reads back as an integer
	assert.Equal(t, []string{"1.5", "2"}, testutil.Strings(testutil.Values(t, table, "price")))
}

func TestCleanColumnErrors(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "stock.csv", stockCSV)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no column flag", []string{input}, apperrors.ExitUsage},
		{"unknown op", []string{"-column", "qty", "-ops", "9", input}, apperrors.ExitUsage},
		{"unknown type", []string{"-column", "qty", "-type", "date", input}, apperrors.ExitUsage},
		{"missing column", []string{"-column", "price", input}, apperrors.ExitInvalidColumn},
		{"no inputs", []string{"-column", "qty"}, apperrors.ExitUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"-out-dir", filepath.Join(dir, "out"), "-log-level", "error"}, tt.args...)
			assert.Equal(t, tt.want, run(args, &stdout, &stderr), stderr.String())
		})
	}
}
