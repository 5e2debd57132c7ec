package dataprocessing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

func TestForwardFillProcessor(t *testing.T) {
	tbl := newTable(t, "cat", []string{"id", "uom"},
		row(null(), txt("x")),
		row(txt("Weight"), txt("kg")),
		row(null(), txt("g")),
		row(txt("Volume"), null()),
		row(null(), null()),
	)

	stats, err := NewForwardFillProcessor("id").FillWithStats(tbl)
	require.NoError(t, err)

	assert.Equal(t, []domain.Value{null(), txt("Weight"), txt("Weight"), txt("Volume"), txt("Volume")}, columnValues(t, tbl, "id"))
	assert.Equal(t, []domain.Value{txt("x"), txt("kg"), txt("g"), null(), null()}, columnValues(t, tbl, "uom"))
	assert.Equal(t, ForwardFillStatistics{ColumnsProcessed: 1, CellsFilled: 2, LeadingNulls: 1}, stats)

	require.NoError(t, ForwardFillColumns(tbl))
	assert.Equal(t, []domain.Value{txt("x"), txt("kg"), txt("g"), txt("g"), txt("g")}, columnValues(t, tbl, "uom"))
}

func TestForwardFillProcessorMissingColumn(t *testing.T) {
	tbl := newTable(t, "cat", []string{"id"})
	err := NewForwardFillProcessor("nope").Process(tbl)
	assert.True(t, apperrors.IsInvalidColumn(err))
}

func TestChain(t *testing.T) {
	var calls []string
	step := func(name string, err error) Processor {
		return ProcessorFunc(func(*domain.Table) error {
			calls = append(calls, name)
			return err
		})
	}
	boom := errors.New("boom")

	err := Chain(step("a", nil), step("b", boom), step("c", nil)).Process(newTable(t, "t", nil))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b"}, calls)
}
