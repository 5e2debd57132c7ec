package dataprocessing

import (
	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

// Column names used by unit of measure validation.
const (
	DefaultUoMColumn        = "uom_external_id"
	DefaultCategoryColumn   = "id"
	DefaultValidationColumn = "validacion"
)

// UoMOptions names the columns involved in ValidateUnitCategories.
type UoMOptions struct {
	PurchaseColumn   string
	NormalColumn     string
	UoMColumn        string
	CategoryColumn   string
	ValidationColumn string
}

func (o UoMOptions) withDefaults() UoMOptions {
	if o.UoMColumn == "" {
		o.UoMColumn = DefaultUoMColumn
	}
	if o.CategoryColumn == "" {
		o.CategoryColumn = DefaultCategoryColumn
	}
	if o.ValidationColumn == "" {
		o.ValidationColumn = DefaultValidationColumn
	}
	return o
}

// UoMResult summarizes a validation run.
type UoMResult struct {
	Valid   int
	Invalid int
	Mapping MappingStats
}

// ValidateUnitCategories checks that each product's purchase and normal
// units belong to the same category. The categories table lists categories
// only on the first row of each group, so it is forward-filled before the
// unit to category mapping is built (last occurrence wins). The products
// table gains a column holding 1 when both units resolve to the same
// category and 0 otherwise. Two unknown units count as the same category.
func ValidateUnitCategories(products, categories *domain.Table, opts UoMOptions) (UoMResult, error) {
	var res UoMResult
	opts = opts.withDefaults()

	if missing := products.HasColumns(opts.PurchaseColumn, opts.NormalColumn); missing != "" {
		return res, apperrors.NewInvalidColumnError(missing, products.Name)
	}
	if missing := categories.HasColumns(opts.UoMColumn, opts.CategoryColumn); missing != "" {
		return res, apperrors.NewInvalidColumnError(missing, categories.Name)
	}

	filled := categories.Clone()
	if err := ForwardFillColumns(filled); err != nil {
		return res, err
	}
	m, err := BuildMapping(filled, opts.UoMColumn, opts.CategoryColumn, LastWins)
	if err != nil {
		return res, err
	}
	res.Mapping = m.Stats()

	purchase, _ := products.Column(opts.PurchaseColumn)
	normal, _ := products.Column(opts.NormalColumn)
	out := make([]domain.Value, products.RowCount())
	for i := range out {
		a, _ := m.Lookup(purchase.Values[i])
		b, _ := m.Lookup(normal.Values[i])
		if a.Equal(b) {
			out[i] = domain.Int(1)
			res.Valid++
		} else {
			out[i] = domain.Int(0)
			res.Invalid++
		}
	}
	if err := products.SetColumn(opts.ValidationColumn, out); err != nil {
		return res, apperrors.NewValidationError(err.Error())
	}
	return res, nil
}
