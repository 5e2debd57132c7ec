package dataprocessing

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"sheetcli/pkg/contracts/domain"
)

// Mode selects a normalization strategy.
type Mode string

const (
	// NumericExact turns digit strings into integers. Reals are kept as they
	// are; Value.Key already gives 123 and 123.0 the same lookup key.
	NumericExact Mode = "numeric_exact"
	// IdentifierSlug reduces a value to [a-z0-9_.] for identifier building.
	IdentifierSlug Mode = "identifier_slug"
	// PrecisionSafeNumber renders numbers above PrecisionThreshold as exact text.
	PrecisionSafeNumber Mode = "precision_safe_number"
)

// PrecisionThreshold is the magnitude above which numbers are written as text.
const PrecisionThreshold = 1e15

// ErrNotInteger is reported to warning hooks when numeric_exact leaves text unchanged.
var ErrNotInteger = errors.New("not an integer")

var (
	whitespaceRun  = regexp.MustCompile(`[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]+`)
	nonIdentifiers = regexp.MustCompile(`[^a-zA-Z0-9_.]+`)
	signedDigits   = regexp.MustCompile(`^[+-]?[0-9]+$`)
)

// WarningFunc receives values a normalization could not coerce.
type WarningFunc func(v domain.Value, mode Mode, err error)

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case NumericExact, IdentifierSlug, PrecisionSafeNumber:
		return m, nil
	default:
		return "", fmt.Errorf("unknown normalization mode %q", s)
	}
}

// Normalize applies mode to v. It never fails: values that cannot be
// coerced are returned unchanged.
func Normalize(v domain.Value, mode Mode) domain.Value {
	return NormalizeWithWarning(v, mode, nil)
}

// NormalizeWithWarning is Normalize with a hook for coercion failures.
func NormalizeWithWarning(v domain.Value, mode Mode, warn WarningFunc) domain.Value {
	switch mode {
	case NumericExact:
		out, err := numericExact(v)
		if err != nil && warn != nil {
			warn(v, mode, err)
		}
		return out
	case IdentifierSlug:
		if v.IsNull() {
			return domain.Text("")
		}
		return domain.Text(Slug(v.String()))
	case PrecisionSafeNumber:
		return PrecisionSafe(v)
	default:
		return v
	}
}

// NumericExactValue is Normalize(v, NumericExact).
func NumericExactValue(v domain.Value) domain.Value {
	out, _ := numericExact(v)
	return out
}

func numericExact(v domain.Value) (domain.Value, error) {
	switch v.Kind() {
	case domain.KindNull, domain.KindInteger, domain.KindReal:
		return v, nil
	}

	s, _ := v.TextValue()
	cleaned := stripQuotes(s)
	if !signedDigits.MatchString(cleaned) {
		if cleaned == "" {
			return v, nil
		}
		return v, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	i, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		// out of int64 range: keep the digits as text so nothing is lost
		return v, err
	}
	return domain.Int(i), nil
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `'"`)
	return strings.TrimSpace(s)
}

// Slug collapses whitespace runs to "_", drops everything outside
// [a-zA-Z0-9_.] and lowercases the result.
func Slug(s string) string {
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = nonIdentifiers.ReplaceAllString(s, "")
	return strings.ToLower(s)
}

// PrecisionSafe returns numbers whose magnitude exceeds PrecisionThreshold
// as their exact decimal text. Other values are returned unchanged.
func PrecisionSafe(v domain.Value) domain.Value {
	if i, ok := v.IntValue(); ok {
		if i > PrecisionThreshold || i < -PrecisionThreshold {
			return domain.Text(strconv.FormatInt(i, 10))
		}
		return v
	}
	if f, ok := v.RealValue(); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) <= PrecisionThreshold {
			return v
		}
		return domain.Text(exactDecimal(f))
	}
	return v
}

// exactDecimal expands f without rounding. Above the threshold a float64
// has at most three fractional bits, so three decimal places are exact.
func exactDecimal(f float64) string {
	d, err := decimal.NewFromString(new(big.Float).SetFloat64(f).Text('f', 3))
	if err != nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return d.String()
}
