package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

// CleanOp is a single cleaning step applied before type coercion.
type CleanOp string

const (
	StripSpaces   CleanOp = "strip_spaces"
	RemoveQuotes  CleanOp = "remove_quotes"
	HandleMissing CleanOp = "handle_missing"
)

// TargetType is the type a cleaned column is coerced to.
type TargetType string

const (
	TargetInteger TargetType = "integer"
	TargetFloat   TargetType = "float"
	TargetText    TargetType = "text"
)

// ParseCleanOps accepts names or the menu numbers 1, 2 and 3, separated by commas.
func ParseCleanOps(s string) ([]CleanOp, error) {
	var ops []CleanOp
	seen := make(map[CleanOp]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		var op CleanOp
		switch part {
		case "":
			continue
		case "1", string(StripSpaces):
			op = StripSpaces
		case "2", string(RemoveQuotes):
			op = RemoveQuotes
		case "3", string(HandleMissing):
			op = HandleMissing
		default:
			return nil, fmt.Errorf("unknown cleaning operation %q", part)
		}
		if !seen[op] {
			seen[op] = true
			ops = append(ops, op)
		}
	}
	return ops, nil
}

// ParseTargetType converts a type name.
func ParseTargetType(s string) (TargetType, error) {
	switch t := TargetType(strings.ToLower(strings.TrimSpace(s))); t {
	case TargetInteger, TargetFloat, TargetText:
		return t, nil
	case "int":
		return TargetInteger, nil
	case "real", "number":
		return TargetFloat, nil
	default:
		return "", fmt.Errorf("unsupported data type %q", s)
	}
}

// CleanOptions configures CleanColumn.
type CleanOptions struct {
	Ops       []CleanOp
	Target    TargetType
	OnWarning func(*apperrors.AppError)
}

// CleanResult reports how many cells changed kind or failed coercion.
type CleanResult struct {
	Coerced int
	Failed  int
}

// CleanColumn runs the cleaning steps in a fixed order (strip, quotes,
// missing) and then coerces to opts.Target. Cells that cannot be coerced
// become Null and are reported through OnWarning. With no ops the column is
// left untouched.
func CleanColumn(t *domain.Table, column string, opts CleanOptions) (CleanResult, error) {
	var res CleanResult
	col, ok := t.Column(column)
	if !ok {
		return res, apperrors.NewInvalidColumnError(column, t.Name)
	}
	if len(opts.Ops) == 0 {
		return res, nil
	}

	has := make(map[CleanOp]bool, len(opts.Ops))
	for _, op := range opts.Ops {
		has[op] = true
	}

	for i, v := range col.Values {
		if has[StripSpaces] && !v.IsNull() {
			v = domain.Text(strings.TrimSpace(v.String()))
		}
		if has[RemoveQuotes] && v.IsText() {
			s, _ := v.TextValue()
			v = domain.Text(strings.ReplaceAll(s, "'", ""))
		}
		if has[HandleMissing] && isMissing(v) {
			v = domain.Text("0")
		}
		col.Values[i] = v
	}

	for i, v := range col.Values {
		out, err := coerce(v, opts.Target)
		if err != nil {
			res.Failed++
			if opts.OnWarning != nil {
				opts.OnWarning(apperrors.NewConversionWarning(column, i, v.String(), err))
			}
		}
		if out.Kind() != v.Kind() {
			res.Coerced++
		}
		col.Values[i] = out
	}

	if opts.Target == TargetInteger {
		TightenColumn(col)
	}
	return res, nil
}

func isMissing(v domain.Value) bool {
	if v.IsNull() {
		return true
	}
	s, ok := v.TextValue()
	return ok && s == ""
}

func coerce(v domain.Value, target TargetType) (domain.Value, error) {
	if v.IsNull() {
		return v, nil
	}
	switch target {
	case TargetText:
		return domain.Text(v.String()), nil
	case TargetInteger, TargetFloat:
	default:
		return v, nil
	}

	n := v
	if s, ok := v.TextValue(); ok {
		parsed, err := parseNumber(s)
		if err != nil {
			return domain.Null(), err
		}
		if parsed.IsNull() {
			return parsed, nil
		}
		n = parsed
	}
	if target == TargetFloat {
		f, _ := n.Float()
		return domain.Real(f), nil
	}
	return n, nil
}

func parseNumber(s string) (domain.Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Null(), nil
	}
	if signedDigits.MatchString(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return domain.Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.Null(), err
	}
	return domain.Real(f), nil
}

// DropDuplicateRows returns a copy of t without rows identical to an
// earlier row. Integer and integral Real cells compare equal.
func DropDuplicateRows(t *domain.Table) (*domain.Table, int) {
	seen := make(map[string]struct{}, t.RowCount())
	keep := make([]int, 0, t.RowCount())
	var b strings.Builder
	for row := 0; row < t.RowCount(); row++ {
		b.Reset()
		for _, v := range t.Row(row) {
			if iv, ok := v.AsInteger(); ok {
				v = iv
			}
			b.WriteByte(byte('0' + v.Kind()))
			b.WriteString(v.String())
			b.WriteByte(0)
		}
		k := b.String()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keep = append(keep, row)
	}
	return t.SelectRows(keep), t.RowCount() - len(keep)
}
