package dataprocessing

import (
	"fmt"

	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

// DefaultMaxRows is the chunk size used when splitting sheets.
const DefaultMaxRows = 10000

// SplitTable cuts t into consecutive chunks of at most maxRows data rows.
// Every chunk keeps the header and sheet name. An empty table yields no chunks.
func SplitTable(t *domain.Table, maxRows int) ([]*domain.Table, error) {
	if maxRows <= 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("max rows must be positive, got %d", maxRows))
	}

	n := t.RowCount()
	chunks := make([]*domain.Table, 0, (n+maxRows-1)/maxRows)
	for start := 0; start < n; start += maxRows {
		chunks = append(chunks, t.Slice(start, start+maxRows))
	}
	return chunks, nil
}
