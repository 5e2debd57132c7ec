package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

func uomCategories(t *testing.T) *domain.Table {
	return newTable(t, "categorias", []string{"id", "uom_external_id"},
		row(txt("Weight"), txt("kg")),
		row(null(), txt("g")),
		row(txt("Volume"), txt("l")),
		row(null(), txt("ml")),
	)
}

func TestValidateUnitCategories(t *testing.T) {
	products := newTable(t, "productos", []string{"name", "purchase", "normal"},
		row(txt("flour"), txt("kg"), txt("g")),
		row(txt("milk"), txt("kg"), txt("l")),
		row(txt("mystery"), txt("zz"), txt("yy")),
		row(txt("half"), txt("kg"), txt("yy")),
	)
	categories := uomCategories(t)

	res, err := ValidateUnitCategories(products, categories, UoMOptions{PurchaseColumn: "purchase", NormalColumn: "normal"})
	require.NoError(t, err)

	assert.Equal(t, []domain.Value{num(1), num(0), num(1), num(0)}, columnValues(t, products, DefaultValidationColumn))
	assert.Equal(t, 2, res.Valid)
	assert.Equal(t, 2, res.Invalid)
	assert.Equal(t, 4, res.Mapping.DistinctEntries)

	// categories are filled on a copy
	assert.Equal(t, null(), columnValues(t, categories, "id")[1])
}

func TestValidateUnitCategoriesLastWins(t *testing.T) {
	categories := newTable(t, "categorias", []string{"id", "uom_external_id"},
		row(txt("Weight"), txt("unit")),
		row(txt("Count"), txt("unit")),
		row(null(), txt("dozen")),
	)
	products := newTable(t, "productos", []string{"purchase", "normal"}, row(txt("unit"), txt("dozen")))

	_, err := ValidateUnitCategories(products, categories, UoMOptions{PurchaseColumn: "purchase", NormalColumn: "normal"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Value{num(1)}, columnValues(t, products, DefaultValidationColumn))
}

func TestValidateUnitCategoriesMissingColumns(t *testing.T) {
	products := newTable(t, "productos", []string{"purchase", "normal"})

	_, err := ValidateUnitCategories(products, uomCategories(t), UoMOptions{PurchaseColumn: "purchase", NormalColumn: "other"})
	assert.True(t, apperrors.IsInvalidColumn(err))

	_, err = ValidateUnitCategories(products, uomCategories(t), UoMOptions{PurchaseColumn: "purchase", NormalColumn: "normal", UoMColumn: "code"})
	assert.True(t, apperrors.IsInvalidColumn(err))
}

func TestSearchAndWrite(t *testing.T) {
	tbl := newTable(t, "Sheet1", []string{"parent", "code", "name"},
		row(txt("20"), num(10), txt("ten")),
		row(num(10), num(20), txt("twenty")),
		row(txt("99"), num(10), txt("dup")),
		row(null(), num(30), txt("thirty")),
	)

	res, err := SearchAndWrite(tbl, SearchWriteOptions{
		SearchColumn: "parent",
		TargetColumn: "code",
		OutputColumn: "parent_name",
		TakenColumn:  "name",
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.Value{txt("twenty"), txt("ten"), null(), null()}, columnValues(t, tbl, "parent_name"))
	assert.Equal(t, 2, res.Matched)
	assert.Equal(t, 1, res.Missed)

	_, err = SearchAndWrite(tbl, SearchWriteOptions{SearchColumn: "parent", TargetColumn: "nope", OutputColumn: "x", TakenColumn: "name"})
	assert.True(t, apperrors.IsInvalidColumn(err))
}
