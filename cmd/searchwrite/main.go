// Command searchwrite performs a lookup inside a single table. For every row
// the value of <search_col> is looked up in <target_col>; the <taken_col>
// value of the first matching row is written to <output_col>, which is
// created when missing. Rows without a match get an empty cell.
//
// Each sheet is written to <file>_processed_<sheet>.<format>.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"sheetcli/internal/app"
	"sheetcli/internal/dataprocessing"
	"sheetcli/internal/files"
	"sheetcli/internal/operations"
	"sheetcli/pkg/contracts/domain"
)

const synopsis = "[flags] <file> <search_col> <target_col> <output_col> <taken_col>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var sheet string
	cmd := app.NewCommand("searchwrite", synopsis, 5, func(ctx context.Context, a *app.Application, args []string) error {
		return searchWrite(ctx, a, sheet, args[0], dataprocessing.SearchWriteOptions{
			SearchColumn: args[1],
			TargetColumn: args[2],
			OutputColumn: args[3],
			TakenColumn:  args[4],
		})
	})
	cmd.Flags.StringVar(&sheet, "sheet", "", "only process this `sheet`")
	return cmd.Execute(context.Background(), args, stdout, stderr)
}

func searchWrite(ctx context.Context, a *app.Application, sheetName, input string, opts dataprocessing.SearchWriteOptions) error {
	format := a.OutputFormat()

	return a.RunFiles(ctx, []string{a.Files.InputPath(input)}, func(ctx context.Context, file string) (operations.Result, error) {
		wb, err := a.LoadWorkbook(file, sheetName)
		if err != nil {
			return operations.Result{}, err
		}

		var res operations.Result
		for _, sheet := range wb.Sheets {
			if err := a.Validator.ValidateColumns(sheet, file, opts.SearchColumn, opts.TargetColumn, opts.TakenColumn); err != nil {
				return res, err
			}
			applied, err := dataprocessing.SearchAndWrite(sheet, opts)
			if err != nil {
				return res, err
			}
			a.Logger.InfoContext(ctx, "Search and write complete",
				slog.String("sheet", sheet.Name),
				slog.Int("matched", applied.Matched),
				slog.Int("missed", applied.Missed))

			out := a.Files.OutputPath(files.ProcessedName(input, sheet.Name, format))
			if err := a.Save(out, domain.NewWorkbook(sheet)); err != nil {
				return res, err
			}
			res.Rows += sheet.RowCount()
			res.Matched += applied.Matched
			res.Missed += applied.Missed
			res.Outputs = append(res.Outputs, out)
		}
		return res, nil
	})
}
