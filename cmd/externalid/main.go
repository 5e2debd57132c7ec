// Command externalid adds a composite identifier column to every sheet of a
// spreadsheet. The identifier joins the slugged values of the given columns
// with "_", optionally wrapped in a prefix and suffix:
//
//	externalid products.ods brand model -p=prod_ -s=_v1
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

const synopsis = "[flags] <file> <column> [<column>...] [-p=PREFIX] [-s=SUFFIX]"

type options struct {
	prefix      string
	suffix      string
	column      string
	keepSources bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	cmd := app.NewCommand("externalid", synopsis, 2, func(ctx context.Context, a *app.Application, args []string) error {
		return generate(ctx, a, opts, args[0], args[1:])
	})
	cmd.Flags.StringVar(&opts.prefix, "prefix", "", "text prepended to every identifier")
	cmd.Flags.StringVar(&opts.prefix, "p", "", "short for -prefix")
	cmd.Flags.StringVar(&opts.suffix, "suffix", "", "text appended to every identifier")
	cmd.Flags.StringVar(&opts.suffix, "s", "", "short for -suffix")
	cmd.Flags.StringVar(&opts.column, "column", dataprocessing.DefaultIDColumn, "name of the identifier `column`")
	cmd.Flags.BoolVar(&opts.keepSources, "keep-sources", false, "leave the source columns unslugged")
	return cmd.Execute(context.Background(), args, stdout, stderr)
}

func generate(ctx context.Context, a *app.Application, opts options, input string, columns []string) error {
	idOpts := dataprocessing.CompositeIDOptions{
		Prefix:      opts.prefix,
		Suffix:      opts.suffix,
		ColumnName:  opts.column,
		SlugSources: !opts.keepSources,
	}
	format := a.OutputFormat()

	return a.RunFiles(ctx, []string{a.Files.InputPath(input)}, func(ctx context.Context, file string) (operations.Result, error) {
		wb, err := a.LoadWorkbook(file, "")
		if err != nil {
			return operations.Result{}, err
		}

		var res operations.Result
		for _, sheet := range wb.Sheets {
			if err := a.Validator.ValidateColumns(sheet, file, columns...); err != nil {
				return res, err
			}
			col, err := dataprocessing.AddCompositeID(sheet, columns, idOpts)
			if err != nil {
				return res, err
			}
			if dups := dataprocessing.DuplicateIDs(col); len(dups) > 0 {
				res.Warnings += len(dups)
				a.Logger.WarnContext(ctx, "Duplicate identifiers generated",
					slog.String("sheet", sheet.Name),
					slog.Int("identifiers", len(dups)))
			}

			out := a.Files.OutputPath(files.ProcessedName(input, sheet.Name, format))
			if err := a.Save(out, domain.NewWorkbook(sheet)); err != nil {
				return res, err
			}
			res.Rows += sheet.RowCount()
			res.Outputs = append(res.Outputs, out)
		}
		return res, nil
	})
}
