package dataprocessing

import (
	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

// ApplyResult counts what happened to a column during ApplyMapping.
type ApplyResult struct {
	Matched   int
	Missed    int
	Nulls     int
	Tightened bool
	// Unconverted counts non-empty text cells numeric_exact left as text
	Unconverted int
}

// ApplyOptions tunes ApplyMapping.
type ApplyOptions struct {
	// OnWarning receives cells whose key could not be coerced.
	OnWarning WarningFunc
}

// ApplyMapping rewrites targetColumn in place. Each cell is normalized with
// NumericExact; a hit is replaced by the mapped value and a miss keeps the
// normalized cell. Rows are never dropped or blanked. The column is then
// tightened to integers when every non-null value is integral.
func ApplyMapping(target *domain.Table, targetColumn string, m *Mapping) (ApplyResult, error) {
	return ApplyMappingWithOptions(target, targetColumn, m, ApplyOptions{})
}

// ApplyMappingWithOptions is ApplyMapping with a warning hook.
func ApplyMappingWithOptions(target *domain.Table, targetColumn string, m *Mapping, opts ApplyOptions) (ApplyResult, error) {
	var res ApplyResult
	col, ok := target.Column(targetColumn)
	if !ok {
		return res, apperrors.NewInvalidColumnError(targetColumn, target.Name)
	}

	warn := func(v domain.Value, mode Mode, err error) {
		res.Unconverted++
		if opts.OnWarning != nil {
			opts.OnWarning(v, mode, err)
		}
	}

	for i, cell := range col.Values {
		key := NormalizeWithWarning(cell, NumericExact, warn)
		if key.IsNull() {
			res.Nulls++
			col.Values[i] = key
			continue
		}
		if mapped, hit := m.lookupNormalized(key); hit {
			res.Matched++
			col.Values[i] = mapped
			continue
		}
		res.Missed++
		col.Values[i] = key
	}

	res.Tightened = TightenColumn(col)
	return res, nil
}

// ProjectMapping writes m's value for each keyColumn cell into
// outputColumn, creating it when absent. Misses become Null.
func ProjectMapping(t *domain.Table, keyColumn, outputColumn string, m *Mapping) (ApplyResult, error) {
	var res ApplyResult
	keys, ok := t.Column(keyColumn)
	if !ok {
		return res, apperrors.NewInvalidColumnError(keyColumn, t.Name)
	}

	out := make([]domain.Value, t.RowCount())
	for i, cell := range keys.Values {
		key := NumericExactValue(cell)
		if key.IsNull() {
			res.Nulls++
			continue
		}
		if mapped, hit := m.lookupNormalized(key); hit {
			res.Matched++
			out[i] = mapped
			continue
		}
		res.Missed++
	}
	if err := t.SetColumn(outputColumn, out); err != nil {
		return res, apperrors.NewValidationError(err.Error())
	}
	col, _ := t.Column(outputColumn)
	res.Tightened = TightenColumn(col)
	return res, nil
}

// TightenColumn converts a Real column to Integer when every non-null value
// is integral and within safe magnitude. A single fractional value, or any
// text, leaves the column untouched. It reports whether a conversion happened.
func TightenColumn(col *domain.Column) bool {
	if col.Type() != domain.ColumnReal {
		return false
	}
	for _, v := range col.Values {
		if !v.IsNull() && !v.IsIntegral() {
			return false
		}
	}
	for i, v := range col.Values {
		if iv, ok := v.AsInteger(); ok {
			col.Values[i] = iv
		}
	}
	return true
}
