// Command uomcheck validates that the purchase and normal units of measure
// of each product belong to the same category. The categories file lists a
// category only on the first row of each group; the remaining rows inherit
// it. Products gain a "validacion" column holding 1 for consistent units
// and 0 otherwise, and are written to productos_validados.csv.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"sheetcli/internal/app"
	"sheetcli/internal/config"
	"sheetcli/internal/dataprocessing"
	"sheetcli/internal/operations"
	"sheetcli/pkg/contracts/domain"
)

const synopsis = "[flags] <products> <categories> <purchase_col> <normal_col>"

type options struct {
	out            string
	uomColumn      string
	categoryColumn string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	cmd := app.NewCommand("uomcheck", synopsis, 4, func(ctx context.Context, a *app.Application, args []string) error {
		return check(ctx, a, opts, args)
	})
	cmd.Flags.StringVar(&opts.out, "out", config.UoMOutputFile, "output `file`")
	cmd.Flags.StringVar(&opts.uomColumn, "uom-column", dataprocessing.DefaultUoMColumn, "unit identifier column of the categories file")
	cmd.Flags.StringVar(&opts.categoryColumn, "category-column", dataprocessing.DefaultCategoryColumn, "category column of the categories file")
	return cmd.Execute(context.Background(), args, stdout, stderr)
}

func check(ctx context.Context, a *app.Application, opts options, args []string) error {
	productsPath, categoriesPath := args[0], args[1]
	uomOpts := dataprocessing.UoMOptions{
		PurchaseColumn: args[2],
		NormalColumn:   args[3],
		UoMColumn:      opts.uomColumn,
		CategoryColumn: opts.categoryColumn,
	}

	categories, err := a.LoadTable(categoriesPath, "")
	if err != nil {
		return err
	}
	if err := a.Validator.ValidateColumns(categories, categoriesPath, uomOpts.UoMColumn, uomOpts.CategoryColumn); err != nil {
		return err
	}
	out := a.Files.OutputPath(opts.out)

	return a.RunFiles(ctx, []string{a.Files.InputPath(productsPath)}, func(ctx context.Context, file string) (operations.Result, error) {
		products, err := a.LoadTable(file, "")
		if err != nil {
			return operations.Result{}, err
		}
		if err := a.Validator.ValidateColumns(products, file, uomOpts.PurchaseColumn, uomOpts.NormalColumn); err != nil {
			return operations.Result{}, err
		}

		res, err := dataprocessing.ValidateUnitCategories(products, categories, uomOpts)
		if err != nil {
			return operations.Result{}, err
		}
		a.Logger.InfoContext(ctx, "Units validated",
			slog.Int("valid", res.Valid),
			slog.Int("invalid", res.Invalid),
			slog.Int("units", res.Mapping.DistinctEntries))

		if err := a.Save(out, domain.NewWorkbook(products)); err != nil {
			return operations.Result{}, err
		}
		return operations.Result{
			Rows:    products.RowCount(),
			Outputs: []string{out},
		}, nil
	})
}
