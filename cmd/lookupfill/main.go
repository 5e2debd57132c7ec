// Command lookupfill fills a column of one spreadsheet from another.
//
// A mapping is built from <search_col> to <taken_col> in the source file and
// applied to <target_col> of the target file. Values whose key is not in the
// mapping are kept, so the tool fills rather than projects. The target file
// is overwritten unless -out is given.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"sheetcli/internal/app"
	"sheetcli/internal/dataprocessing"
	apperrors "sheetcli/internal/errors"
	"sheetcli/internal/operations"
	"sheetcli/pkg/contracts/domain"
)

const synopsis = "[flags] <source> <target> <search_col> <taken_col> <target_col>"

type options struct {
	out    string
	sheet  string
	policy string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	cmd := app.NewCommand("lookupfill", synopsis, 5, func(ctx context.Context, a *app.Application, args []string) error {
		return lookupFill(ctx, a, opts, args)
	})
	cmd.Flags.StringVar(&opts.out, "out", "", "output `file` (default: overwrite the target)")
	cmd.Flags.StringVar(&opts.sheet, "sheet", "", "target `sheet` (default: the first)")
	cmd.Flags.StringVar(&opts.policy, "policy", "", "duplicate source keys: first_wins or last_wins (default from config)")
	return cmd.Execute(context.Background(), args, stdout, stderr)
}

func lookupFill(ctx context.Context, a *app.Application, opts options, args []string) error {
	sourcePath, targetPath := args[0], a.Files.InputPath(args[1])
	searchCol, takenCol, targetCol := args[2], args[3], args[4]

	policyName := opts.policy
	if policyName == "" {
		policyName = a.Config.Processing.DuplicatePolicy
	}
	policy, err := dataprocessing.ParseDuplicatePolicy(policyName)
	if err != nil {
		return apperrors.NewUsageError(err.Error())
	}

	source, err := a.LoadTable(sourcePath, "")
	if err != nil {
		return err
	}
	if err := a.Validator.ValidateColumns(source, sourcePath, searchCol, takenCol); err != nil {
		return err
	}
	mapping, err := dataprocessing.BuildMapping(source, searchCol, takenCol, policy)
	if err != nil {
		return err
	}
	stats := mapping.Stats()
	a.Logger.InfoContext(ctx, "Mapping built",
		slog.String("source", sourcePath),
		slog.Int("keys", mapping.Len()),
		slog.Int("rows", stats.RowsScanned),
		slog.Int("duplicates", stats.DuplicateKeys))

	outPath := targetPath
	if opts.out != "" {
		outPath = a.Files.OutputPath(opts.out)
	}

	return a.RunFiles(ctx, []string{targetPath}, func(ctx context.Context, file string) (operations.Result, error) {
		wb, err := a.LoadWorkbook(file, "")
		if err != nil {
			return operations.Result{}, err
		}
		table := wb.First()
		if opts.sheet != "" {
			var ok bool
			if table, ok = wb.Sheet(opts.sheet); !ok {
				return operations.Result{}, apperrors.NewValidationError(fmt.Sprintf("sheet %q not found in %s", opts.sheet, file))
			}
		}
		if err := a.Validator.ValidateColumns(table, file, targetCol); err != nil {
			return operations.Result{}, err
		}

		res, err := dataprocessing.ApplyMappingWithOptions(table, targetCol, mapping, dataprocessing.ApplyOptions{
			OnWarning: func(v domain.Value, mode dataprocessing.Mode, err error) {
				a.Logger.DebugContext(ctx, "Key kept as text",
					slog.String("column", targetCol),
					slog.String("value", v.String()))
			},
		})
		if err != nil {
			return operations.Result{}, err
		}
		a.Logger.InfoContext(ctx, "Column filled",
			slog.String("column", targetCol),
			slog.Int("matched", res.Matched),
			slog.Int("missed", res.Missed),
			slog.Int("empty", res.Nulls),
			slog.Int("unconverted", res.Unconverted),
			slog.Bool("tightened", res.Tightened))

		if err := a.Save(outPath, wb); err != nil {
			return operations.Result{}, err
		}
		return operations.Result{
			Rows:     table.RowCount(),
			Outputs:  []string{outPath},
			Matched:  res.Matched,
			Missed:   res.Missed,
			Warnings: res.Unconverted,
		}, nil
	})
}
