package dataprocessing

import (
	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

// ForwardFillProcessor fills Null cells with the last non-null value above
// them in the same column. Leading Nulls stay Null.
type ForwardFillProcessor struct {
	columns []string
}

// NewForwardFillProcessor creates a processor for the named columns.
// With no names every column is filled.
func NewForwardFillProcessor(columns ...string) *ForwardFillProcessor {
	return &ForwardFillProcessor{columns: columns}
}

// ForwardFillStatistics represents forward-fill operation statistics
type ForwardFillStatistics struct {
	ColumnsProcessed int
	CellsFilled      int
	LeadingNulls     int
}

// Process implements Processor.
func (f *ForwardFillProcessor) Process(t *domain.Table) error {
	_, err := f.FillWithStats(t)
	return err
}

// FillWithStats performs forward-fill and returns statistics
func (f *ForwardFillProcessor) FillWithStats(t *domain.Table) (ForwardFillStatistics, error) {
	var stats ForwardFillStatistics

	cols := t.Columns()
	if len(f.columns) > 0 {
		if missing := t.HasColumns(f.columns...); missing != "" {
			return stats, apperrors.NewInvalidColumnError(missing, t.Name)
		}
		cols = make([]*domain.Column, len(f.columns))
		for i, name := range f.columns {
			cols[i], _ = t.Column(name)
		}
	}

	for _, col := range cols {
		stats.ColumnsProcessed++
		var last domain.Value
		for i, v := range col.Values {
			if !v.IsNull() {
				last = v
				continue
			}
			if last.IsNull() {
				stats.LeadingNulls++
				continue
			}
			col.Values[i] = last
			stats.CellsFilled++
		}
	}
	return stats, nil
}

// ForwardFillColumns forward-fills the named columns of t, or every column
// when none are named.
func ForwardFillColumns(t *domain.Table, columns ...string) error {
	return NewForwardFillProcessor(columns...).Process(t)
}
