package app

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetcli/internal/config"
	apperrors "sheetcli/internal/errors"
	"sheetcli/internal/files"
	"sheetcli/internal/shared/testutil"
	"sheetcli/pkg/contracts"
)

func TestParseInterspersed(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		positional []string
		prefix     string
		rows       int
	}{
		{"flags first", []string{"-p=X", "-rows", "5", "a", "b"}, []string{"a", "b"}, "X", 5},
		{"flags last", []string{"a", "b", "-p=X"}, []string{"a", "b"}, "X", 0},
		{"mixed", []string{"a", "-rows=3", "b", "-p", "Y", "c"}, []string{"a", "b", "c"}, "Y", 3},
		{"double dash", []string{"a", "--", "-p=X"}, []string{"a", "-p=X"}, "", 0},
		{"none", nil, nil, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			prefix := fs.String("p", "", "")
			rows := fs.Int("rows", 0, "")

			got, err := ParseInterspersed(fs, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.positional, got)
			assert.Equal(t, tt.prefix, *prefix)
			assert.Equal(t, tt.rows, *rows)
		})
	}
}

func TestParseInterspersedUnknownFlag(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	_, err := ParseInterspersed(fs, []string{"a", "-nope"})
	assert.Error(t, err)
}

func TestCommonFlagsApply(t *testing.T) {
	cfg := config.Default()
	flags := &CommonFlags{
		OutDir:    "out",
		Format:    ".CSV",
		Workers:   8,
		LogLevel:  "DEBUG",
		Delimiter: "tab",
		Encoding:  "Windows-1252",
		BOM:       true,
	}
	flags.apply(cfg)

	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, 8, cfg.Processing.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "\t", cfg.Processing.CSVDelimiter)
	assert.Equal(t, "windows-1252", cfg.Processing.CSVEncoding)
	assert.True(t, cfg.Processing.CSVBOM)
	assert.NoError(t, cfg.Validate())

	untouched := config.Default()
	(&CommonFlags{}).apply(untouched)
	assert.Equal(t, config.Default(), untouched)
}

func TestNewApplication(t *testing.T) {
	dir := t.TempDir()
	a, err := NewApplication("lookupfill", &CommonFlags{OutDir: dir, Format: "csv", Workers: 2, LogLevel: "error"})
	require.NoError(t, err)
	defer a.Shutdown(context.Background())

	assert.Equal(t, dir, a.Paths.OutputDir)
	assert.Equal(t, files.FormatCSV, a.OutputFormat())
	assert.Equal(t, filepath.Join(dir, "x.csv"), a.Files.OutputPath("x.csv"))
	assert.Equal(t, ',', a.LoadOptions().Delimiter)
	assert.NotNil(t, a.Runner())
	assert.NotNil(t, a.Metrics)
}

func TestNewApplicationRejectsBadFlags(t *testing.T) {
	_, err := NewApplication("lookupfill", &CommonFlags{OutDir: t.TempDir(), Format: "pdf"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUsage(err))
}

func TestApplicationLoadTable(t *testing.T) {
	dir := t.TempDir()
	a, err := NewApplication("searchwrite", &CommonFlags{OutDir: dir, LogLevel: "error"})
	require.NoError(t, err)
	defer a.Shutdown(context.Background())

	path := testutil.WriteFile(t, dir, "stock.csv", "sku,qty\nA,1\nB,2\n")
	table, err := a.LoadTable(path, "")
	require.NoError(t, err)
	assert.Equal(t, 2, table.RowCount())

	_, err = a.LoadTable(filepath.Join(dir, "missing.csv"), "")
	assert.True(t, apperrors.IsFileNotFound(err))

	_, err = a.LoadTable(testutil.WriteFile(t, dir, "notes.txt", "x"), "")
	assert.True(t, apperrors.IsUnsupportedFormat(err))
}

func TestCommandExecute(t *testing.T) {
	tests := []struct {
		name       string
		args       func(dir string) []string
		run        RunFunc
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "version",
			args:       func(string) []string { return []string{"-version"} },
			wantCode:   apperrors.ExitOK,
			wantStdout: "v" + contracts.Version,
		},
		{
			name:       "missing arguments",
			args:       func(string) []string { return []string{"only-one"} },
			wantCode:   apperrors.ExitUsage,
			wantStderr: "Usage: tool <a> <b>",
		},
		{
			name:     "unknown flag",
			args:     func(string) []string { return []string{"-bogus", "a", "b"} },
			wantCode: apperrors.ExitUsage,
		},
		{
			name: "invalid flag value",
			args: func(dir string) []string {
				return []string{"-out-dir", dir, "-workers", "1000", "a", "b"}
			},
			wantCode:   apperrors.ExitUsage,
			wantStderr: "invalid flags",
		},
		{
			name: "success",
			args: func(dir string) []string { return []string{"a", "-out-dir", dir, "b"} },
			run: func(ctx context.Context, a *Application, args []string) error {
				if len(args) != 2 || args[0] != "a" || args[1] != "b" {
					return apperrors.NewUsageError("unexpected arguments")
				}
				return nil
			},
			wantCode: apperrors.ExitOK,
		},
		{
			name: "invalid column",
			args: func(dir string) []string { return []string{"-out-dir", dir, "a", "b"} },
			run: func(ctx context.Context, a *Application, args []string) error {
				return apperrors.NewInvalidColumnError("sku", "stock.csv")
			},
			wantCode:   apperrors.ExitInvalidColumn,
			wantStderr: `tool: [INVALID_COLUMN] column "sku" not found in stock.csv`,
		},
		{
			name: "interrupted",
			args: func(dir string) []string { return []string{"-out-dir", dir, "a", "b"} },
			run: func(ctx context.Context, a *Application, args []string) error {
				return context.Canceled
			},
			wantCode: apperrors.ExitInterrupted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := tt.run
			if run == nil {
				run = func(context.Context, *Application, []string) error { return nil }
			}
			cmd := NewCommand("tool", "<a> <b>", 2, run)
			cmd.Flags.Bool("extra", false, "tool specific flag")

			var stdout, stderr bytes.Buffer
			code := cmd.Execute(context.Background(), tt.args(t.TempDir()), &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code, stderr.String())
			assert.Contains(t, stdout.String(), tt.wantStdout)
			assert.Contains(t, stderr.String(), tt.wantStderr)
		})
	}
}
