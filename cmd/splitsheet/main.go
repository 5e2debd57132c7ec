// Command splitsheet cuts every sheet of the given spreadsheets into files
// of at most -rows data rows, each keeping the header row. Pieces are named
// <base>_<sheet>_<n>.<format> with n counting from 1. Several inputs, whole
// directories and glob patterns are processed in parallel.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"sheetcli/internal/app"
	"sheetcli/internal/dataprocessing"
	apperrors "sheetcli/internal/errors"
	"sheetcli/internal/files"
	"sheetcli/internal/operations"
	"sheetcli/pkg/contracts/domain"
)

const synopsis = "[flags] <file|dir|pattern>..."

type options struct {
	rows  int
	sheet string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	cmd := app.NewCommand("splitsheet", synopsis, 1, func(ctx context.Context, a *app.Application, args []string) error {
		return split(ctx, a, opts, args)
	})
	cmd.Flags.IntVar(&opts.rows, "rows", 0, "maximum data rows per output file (default from config)")
	cmd.Flags.StringVar(&opts.sheet, "sheet", "", "only split this `sheet`")
	cmd.Flags.StringVar(&cmd.Common.OutDir, "dir", "", "alias for -out-dir")
	return cmd.Execute(context.Background(), args, stdout, stderr)
}

func split(ctx context.Context, a *app.Application, opts options, args []string) error {
	maxRows := opts.rows
	if maxRows == 0 {
		maxRows = a.Config.Processing.MaxRows
	}
	if maxRows < 0 {
		return apperrors.NewUsageError("-rows must be positive")
	}

	inputs, err := a.Inputs(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return apperrors.NewFileNotFoundError(args[0], nil)
	}
	format := a.OutputFormat()

	return a.RunFiles(ctx, inputs, func(ctx context.Context, file string) (operations.Result, error) {
		wb, err := a.LoadWorkbook(file, opts.sheet)
		if err != nil {
			return operations.Result{}, err
		}

		var res operations.Result
		for _, sheet := range wb.Sheets {
			chunks, err := dataprocessing.SplitTable(sheet, maxRows)
			if err != nil {
				return res, err
			}
			if len(chunks) == 0 {
				a.Logger.InfoContext(ctx, "Sheet has no data rows",
					slog.String("file", file),
					slog.String("sheet", sheet.Name))
			}
			for i, chunk := range chunks {
				if err := ctx.Err(); err != nil {
					return res, err
				}
				out := a.Files.OutputPath(files.ChunkName(file, sheet.Name, i+1, format))
				if err := a.Save(out, domain.NewWorkbook(chunk)); err != nil {
					return res, err
				}
				res.Outputs = append(res.Outputs, out)
			}
			res.Rows += sheet.RowCount()
		}
		return res, nil
	})
}
