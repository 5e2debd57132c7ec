package dataprocessing

import (
	"fmt"
	"strings"

	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

// DuplicatePolicy decides which row wins when a key appears more than once.
type DuplicatePolicy string

const (
	// FirstWins keeps the first occurrence in table order.
	FirstWins DuplicatePolicy = "first_wins"
	// LastWins keeps the last occurrence in table order.
	LastWins DuplicatePolicy = "last_wins"
)

// ParseDuplicatePolicy converts a policy name. The empty string means FirstWins.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", FirstWins:
		return FirstWins, nil
	case LastWins:
		return LastWins, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q", s)
	}
}

// MappingStats describes how a mapping was built.
type MappingStats struct {
	RowsScanned     int
	NullKeys        int
	NullValues      int
	DuplicateKeys   int
	DistinctEntries int
}

// Mapping is an immutable key to value snapshot built from a source table.
type Mapping struct {
	entries map[domain.Key]domain.Value
	order   []domain.Value
	stats   MappingStats
}

// BuildMapping reads keyColumn and valueColumn from src, normalizing both
// with NumericExact. Rows whose key or value is Null are skipped.
// Both columns are checked before any row is read.
func BuildMapping(src *domain.Table, keyColumn, valueColumn string, policy DuplicatePolicy) (*Mapping, error) {
	if missing := src.HasColumns(keyColumn, valueColumn); missing != "" {
		return nil, apperrors.NewInvalidColumnError(missing, src.Name)
	}
	if policy == "" {
		policy = FirstWins
	}
	if policy != FirstWins && policy != LastWins {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown duplicate policy %q", policy))
	}

	keys, _ := src.Column(keyColumn)
	values, _ := src.Column(valueColumn)

	m := &Mapping{entries: make(map[domain.Key]domain.Value, keys.Len())}
	for row := 0; row < src.RowCount(); row++ {
		m.stats.RowsScanned++

		key := NumericExactValue(keys.Values[row])
		if key.IsNull() {
			m.stats.NullKeys++
			continue
		}
		value := NumericExactValue(values.Values[row])
		if value.IsNull() {
			m.stats.NullValues++
			continue
		}

		k := key.Key()
		if _, seen := m.entries[k]; seen {
			m.stats.DuplicateKeys++
			if policy == FirstWins {
				continue
			}
		} else {
			m.order = append(m.order, key)
		}
		m.entries[k] = value
	}
	m.stats.DistinctEntries = len(m.entries)
	return m, nil
}

// Lookup normalizes v with NumericExact and returns the mapped value.
func (m *Mapping) Lookup(v domain.Value) (domain.Value, bool) {
	return m.lookupNormalized(NumericExactValue(v))
}

func (m *Mapping) lookupNormalized(key domain.Value) (domain.Value, bool) {
	if key.IsNull() {
		return domain.Null(), false
	}
	out, ok := m.entries[key.Key()]
	return out, ok
}

// Len returns the number of distinct keys.
func (m *Mapping) Len() int { return len(m.entries) }

// Keys returns the normalized keys in first-seen order.
func (m *Mapping) Keys() []domain.Value {
	out := make([]domain.Value, len(m.order))
	copy(out, m.order)
	return out
}

// Stats reports counters collected while building.
func (m *Mapping) Stats() MappingStats { return m.stats }
