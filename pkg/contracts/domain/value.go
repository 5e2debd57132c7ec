package domain

import (
	"math"
	"strconv"
	"strings"
)

// MaxSafeInteger is the largest magnitude at which every integer is exactly
// representable as a float64 (2^53).
const MaxSafeInteger = 1 << 53

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindInteger
	KindReal
)

// String returns the lowercase kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	default:
		return "unknown"
	}
}

// Value is a single spreadsheet cell: Null, Text, Integer or Real.
// The zero value is Null.
type Value struct {
	kind Kind
	text string
	i    int64
	f    float64
}

// Null returns the absent-cell value.
func Null() Value { return Value{} }

// Text returns a text cell.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Int returns an integer cell.
func Int(i int64) Value { return Value{kind: KindInteger, i: i} }

// Real returns a floating point cell.
func Real(f float64) Value { return Value{kind: KindReal, f: f} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }
func (v Value) IsText() bool    { return v.kind == KindText }
func (v Value) IsNumeric() bool { return v.kind == KindInteger || v.kind == KindReal }

// TextValue returns the text payload and whether v is Text.
func (v Value) TextValue() (string, bool) { return v.text, v.kind == KindText }

// IntValue returns the integer payload and whether v is Integer.
func (v Value) IntValue() (int64, bool) { return v.i, v.kind == KindInteger }

// RealValue returns the float payload and whether v is Real.
func (v Value) RealValue() (float64, bool) { return v.f, v.kind == KindReal }

// Float returns the numeric payload as float64. Non-numeric values yield 0, false.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.i), true
	case KindReal:
		return v.f, true
	default:
		return 0, false
	}
}

// IsIntegral reports whether v is an Integer, or a Real without a fractional
// part whose magnitude does not exceed MaxSafeInteger.
func (v Value) IsIntegral() bool {
	switch v.kind {
	case KindInteger:
		return true
	case KindReal:
		return isSafeIntegral(v.f)
	default:
		return false
	}
}

// AsInteger converts an integral value to Integer. Other values are returned
// unchanged with ok=false.
func (v Value) AsInteger() (Value, bool) {
	switch {
	case v.kind == KindInteger:
		return v, true
	case v.kind == KindReal && isSafeIntegral(v.f):
		return Int(int64(v.f)), true
	default:
		return v, false
	}
}

// Equal compares two values. Integer and integral Real values compare by
// numeric value; everything else compares by kind and payload.
func (v Value) Equal(o Value) bool {
	return v.Key() == o.Key()
}

// Key is a comparable representation of a Value suitable for map keys.
// Integral reals share the key of the matching integer.
type Key struct {
	kind Kind
	text string
	i    int64
	f    float64
}

// Key returns the map key for v.
func (v Value) Key() Key {
	if iv, ok := v.AsInteger(); ok {
		return Key{kind: KindInteger, i: iv.i}
	}
	return Key{kind: v.kind, text: v.text, f: v.f}
}

// String renders the value the way it would be stringified for display:
// Null is empty, integers are base 10 and integral reals keep a ".0" suffix.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return formatReal(v.f)
	default:
		return ""
	}
}

// GoString makes test failures readable.
func (v Value) GoString() string {
	if v.kind == KindText {
		return v.kind.String() + "(" + strconv.Quote(v.text) + ")"
	}
	return v.kind.String() + "(" + v.String() + ")"
}

func isSafeIntegral(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f == math.Trunc(f) && math.Abs(f) <= MaxSafeInteger
}

func formatReal(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
