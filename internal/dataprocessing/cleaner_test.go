package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

func TestCleanColumn(t *testing.T) {
	input := []domain.Value{txt(" 12 "), txt("'34'"), txt(""), null(), txt("abc"), txt("5.5"), num(7)}

	tests := []struct {
		name   string
		opts   CleanOptions
		want   []domain.Value
		failed int
	}{
		{
			name: "no operations leaves column untouched",
			opts: CleanOptions{Target: TargetInteger},
			want: input,
		},
		{
			name:   "integer with every operation",
			opts:   CleanOptions{Ops: []CleanOp{StripSpaces, RemoveQuotes, HandleMissing}, Target: TargetInteger},
			want:   []domain.Value{num(12), num(34), num(0), num(0), null(), flt(5.5), num(7)},
			failed: 1,
		},
		{
			name:   "float",
			opts:   CleanOptions{Ops: []CleanOp{StripSpaces, RemoveQuotes}, Target: TargetFloat},
			want:   []domain.Value{flt(12), flt(34), null(), null(), null(), flt(5.5), flt(7)},
			failed: 1,
		},
		{
			name: "text",
			opts: CleanOptions{Ops: []CleanOp{StripSpaces}, Target: TargetText},
			want: []domain.Value{txt("12"), txt("'34'"), txt(""), null(), txt("abc"), txt("5.5"), txt("7")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make([]domain.Value, len(input))
			copy(values, input)
			tbl := domain.NewTable("s", nil)
			require.NoError(t, tbl.AddColumn("qty", values))

			var warnings []*apperrors.AppError
			tt.opts.OnWarning = func(w *apperrors.AppError) { warnings = append(warnings, w) }

			res, err := CleanColumn(tbl, "qty", tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, columnValues(t, tbl, "qty"))
			assert.Equal(t, tt.failed, res.Failed)
			assert.Len(t, warnings, tt.failed)
		})
	}
}

func TestCleanColumnTightensIntegers(t *testing.T) {
	tbl := domain.NewTable("s", nil)
	require.NoError(t, tbl.AddColumn("qty", []domain.Value{txt("1.0"), txt("2"), null()}))

	_, err := CleanColumn(tbl, "qty", CleanOptions{Ops: []CleanOp{StripSpaces}, Target: TargetInteger})
	require.NoError(t, err)
	assert.Equal(t, []domain.Value{num(1), num(2), null()}, columnValues(t, tbl, "qty"))
}

func TestCleanColumnMissing(t *testing.T) {
	tbl := domain.NewTable("s", []string{"a"})
	_, err := CleanColumn(tbl, "b", CleanOptions{Ops: []CleanOp{StripSpaces}})
	assert.True(t, apperrors.IsInvalidColumn(err))
}

func TestParseCleanOps(t *testing.T) {
	ops, err := ParseCleanOps("1, remove_quotes,3,1")
	require.NoError(t, err)
	assert.Equal(t, []CleanOp{StripSpaces, RemoveQuotes, HandleMissing}, ops)

	ops, err = ParseCleanOps("")
	require.NoError(t, err)
	assert.Empty(t, ops)

	_, err = ParseCleanOps("4")
	assert.Error(t, err)
}

func TestParseTargetType(t *testing.T) {
	tt, err := ParseTargetType("Integer")
	require.NoError(t, err)
	assert.Equal(t, TargetInteger, tt)

	_, err = ParseTargetType("date")
	assert.Error(t, err)
}

func TestDropDuplicateRows(t *testing.T) {
	tbl := newTable(t, "s", []string{"a", "b"},
		row(num(1), txt("x")),
		row(flt(1), txt("x")),
		row(txt("1"), txt("x")),
		row(num(1), txt("y")),
		row(null(), null()),
		row(null(), null()),
	)

	out, dropped := DropDuplicateRows(tbl)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 4, out.RowCount())
	assert.Equal(t, []domain.Value{txt("1"), txt("x")}, out.Row(1))
	assert.Equal(t, 6, tbl.RowCount(), "input is not modified")
}

func TestSplitTable(t *testing.T) {
	tbl := newTable(t, "data", []string{"n"})
	for i := 0; i < 25; i++ {
		require.NoError(t, tbl.AppendRow(row(num(int64(i)))))
	}

	chunks, err := SplitTable(tbl, 10)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, 10, chunks[0].RowCount())
	assert.Equal(t, 5, chunks[2].RowCount())
	assert.Equal(t, []domain.Value{num(20)}, chunks[2].Row(0))
	assert.Equal(t, "data", chunks[1].Name)
	assert.Equal(t, []string{"n"}, chunks[1].Header())

	chunks, err = SplitTable(newTable(t, "empty", []string{"n"}), 10)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	_, err = SplitTable(tbl, 0)
	assert.Equal(t, apperrors.ErrTypeValidation, apperrors.TypeOf(err))
}
