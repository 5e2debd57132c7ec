package dataprocessing

import (
	"sheetcli/pkg/contracts/domain"
)

// SearchWriteOptions names the four columns of a self lookup.
type SearchWriteOptions struct {
	// SearchColumn holds the values being looked for.
	SearchColumn string
	// TargetColumn is where those values are searched.
	TargetColumn string
	// OutputColumn receives the result; it is created when missing.
	OutputColumn string
	// TakenColumn supplies the value copied from the matching row.
	TakenColumn string
}

// SearchAndWrite looks up every SearchColumn value in TargetColumn of the
// same table and writes TakenColumn of the first matching row into
// OutputColumn. Rows without a match get Null.
func SearchAndWrite(t *domain.Table, opts SearchWriteOptions) (ApplyResult, error) {
	m, err := BuildMapping(t, opts.TargetColumn, opts.TakenColumn, FirstWins)
	if err != nil {
		return ApplyResult{}, err
	}
	return ProjectMapping(t, opts.SearchColumn, opts.OutputColumn, m)
}
