// Command cleancolumn cleans one column of each input spreadsheet and
// coerces it to a type. Duplicate rows are dropped first. Cleaning steps are
// given by name or number:
//
//	1 strip_spaces    trim surrounding whitespace
//	2 remove_quotes   delete single quotes
//	3 handle_missing  replace empty cells with 0
//
// Values that cannot be converted become empty and are logged as warnings.
// Results are written as <base>.csv unless -format says otherwise.
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

const synopsis = "-column <name> [-type integer|float|text] [-ops 1,2,3] <file|dir|pattern>..."

type options struct {
	column   string
	typeName string
	ops      string
	sheet    string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	cmd := app.NewCommand("cleancolumn", synopsis, 1, nil)
	cmd.Run = func(ctx context.Context, a *app.Application, args []string) error {
		format := files.FormatCSV
		if cmd.Common.Format != "" {
			format = a.OutputFormat()
		}
		return clean(ctx, a, opts, format, args)
	}
	cmd.Flags.StringVar(&opts.column, "column", "", "`name` of the column to clean (required)")
	cmd.Flags.StringVar(&opts.typeName, "type", string(dataprocessing.TargetInteger), "target type: integer, float or text")
	cmd.Flags.StringVar(&opts.ops, "ops", "", "comma separated cleaning steps: strip_spaces, remove_quotes, handle_missing or 1,2,3")
	cmd.Flags.StringVar(&opts.sheet, "sheet", "", "`sheet` to read (default: the first)")
	return cmd.Execute(context.Background(), args, stdout, stderr)
}

func clean(ctx context.Context, a *app.Application, opts options, format files.Format, args []string) error {
	if opts.column == "" {
		return apperrors.NewUsageError("-column is required")
	}
	target, err := dataprocessing.ParseTargetType(opts.typeName)
	if err != nil {
		return apperrors.NewUsageError(err.Error())
	}
	ops, err := dataprocessing.ParseCleanOps(opts.ops)
	if err != nil {
		return apperrors.NewUsageError(err.Error())
	}
	if len(ops) == 0 {
		a.Logger.InfoContext(ctx, "No cleaning steps selected, column is left as read")
	}

	inputs, err := a.Inputs(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return apperrors.NewFileNotFoundError(args[0], nil)
	}

	return a.RunFiles(ctx, inputs, func(ctx context.Context, file string) (operations.Result, error) {
		table, err := a.LoadTable(file, opts.sheet)
		if err != nil {
			return operations.Result{}, err
		}
		if err := a.Validator.ValidateColumns(table, file, opts.column); err != nil {
			return operations.Result{}, err
		}

		rows := table.RowCount()
		table, dropped := dataprocessing.DropDuplicateRows(table)
		if dropped > 0 {
			a.Logger.InfoContext(ctx, "Dropped duplicate rows",
				slog.String("file", file),
				slog.Int("rows", dropped))
		}

		res, err := dataprocessing.CleanColumn(table, opts.column, dataprocessing.CleanOptions{
			Ops:    ops,
			Target: target,
			OnWarning: func(w *apperrors.AppError) {
				a.ConversionWarning(ctx, w.WithContext("file", file))
			},
		})
		if err != nil {
			return operations.Result{}, err
		}

		out := a.Files.OutputPath(files.ReplaceExt(file, format))
		if err := a.Save(out, domain.NewWorkbook(table)); err != nil {
			return operations.Result{}, err
		}
		return operations.Result{
			Rows:     rows,
			Outputs:  []string{out},
			Warnings: res.Failed,
		}, nil
	})
}
