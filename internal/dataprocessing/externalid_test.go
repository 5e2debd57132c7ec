package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

func TestGenerateCompositeID(t *testing.T) {
	tbl := newTable(t, "Sheet1", []string{"A", "B"}, row(txt("Red Car"), flt(7.0)))

	col, err := GenerateCompositeID(tbl, []string{"A", "B"}, CompositeIDOptions{Prefix: "x_"})
	require.NoError(t, err)

	assert.Equal(t, DefaultIDColumn, col.Name)
	assert.Equal(t, []domain.Value{txt("x_red_car_7")}, col.Values)
	assert.Equal(t, []domain.Value{num(7)}, columnValues(t, tbl, "B"), "integral reals become integers")
	assert.Equal(t, []string{"A", "B"}, tbl.Header(), "generate does not add the column")
}

func TestGenerateCompositeIDCases(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]domain.Value
		columns []string
		opts    CompositeIDOptions
		want    []domain.Value
	}{
		{
			name:    "prefix and suffix verbatim",
			rows:    [][]domain.Value{row(txt("Blue"), num(3), txt("L"))},
			columns: []string{"A", "B"},
			opts:    CompositeIDOptions{Prefix: "P-", Suffix: "!X"},
			want:    []domain.Value{txt("P-blue_3!X")},
		},
		{
			name:    "column order follows arguments",
			rows:    [][]domain.Value{row(txt("Blue"), num(3), txt("L"))},
			columns: []string{"C", "A"},
			want:    []domain.Value{txt("l_blue")},
		},
		{
			name:    "null contributes empty part",
			rows:    [][]domain.Value{row(txt("a"), null(), txt("c"))},
			columns: []string{"A", "B", "C"},
			want:    []domain.Value{txt("a__c")},
		},
		{
			name:    "mixed column keeps real formatting",
			rows:    [][]domain.Value{row(txt("a"), flt(7), txt("c")), row(txt("b"), txt("x y"), txt("c"))},
			columns: []string{"B"},
			want:    []domain.Value{txt("7.0"), txt("x_y")},
		},
		{
			name:    "fractional values keep dot",
			rows:    [][]domain.Value{row(txt("a"), flt(2.5), txt("c")), row(txt("b"), flt(3), txt("c"))},
			columns: []string{"B", "A"},
			want:    []domain.Value{txt("2.5_a"), txt("3_b")},
		},
		{
			name:    "custom separator",
			rows:    [][]domain.Value{row(txt("a"), num(1), txt("c"))},
			columns: []string{"A", "B"},
			opts:    CompositeIDOptions{Separator: "-"},
			want:    []domain.Value{txt("a-1")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := newTable(t, "s", []string{"A", "B", "C"}, tt.rows...)
			col, err := GenerateCompositeID(tbl, tt.columns, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, col.Values)
		})
	}
}

func TestAddCompositeID(t *testing.T) {
	tbl := newTable(t, "s", []string{"Brand", "Size"},
		row(txt("Acme Co."), num(10)),
		row(txt("Acme Co."), num(10)),
	)

	col, err := AddCompositeID(tbl, []string{"Brand", "Size"}, CompositeIDOptions{SlugSources: true, ColumnName: "sku"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Brand", "Size", "sku"}, tbl.Header())
	assert.Equal(t, []domain.Value{txt("acme_co."), txt("acme_co.")}, columnValues(t, tbl, "Brand"))
	assert.Equal(t, []domain.Value{txt("10"), txt("10")}, columnValues(t, tbl, "Size"))
	assert.Equal(t, map[string][]int{"acme_co._10": {0, 1}}, DuplicateIDs(col))
}

func TestGenerateCompositeIDErrors(t *testing.T) {
	tbl := newTable(t, "s", []string{"A"}, row(txt("a")))

	_, err := GenerateCompositeID(tbl, []string{"A", "Z"}, CompositeIDOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidColumn(err))
	assert.Equal(t, []string{"A"}, tbl.Header())

	_, err = GenerateCompositeID(tbl, nil, CompositeIDOptions{})
	assert.Equal(t, apperrors.ErrTypeValidation, apperrors.TypeOf(err))
}
