package dataprocessing

import (
	"strings"

	apperrors "sheetcli/internal/errors"
	"sheetcli/pkg/contracts/domain"
)

// DefaultIDColumn is the column CompositeID writes to when no name is given.
const DefaultIDColumn = "external_id"

// CompositeIDOptions configures identifier generation.
type CompositeIDOptions struct {
	Prefix     string
	Suffix     string
	ColumnName string
	Separator  string
	// SlugSources replaces the source columns with their slugged values.
	SlugSources bool
}

func (o CompositeIDOptions) withDefaults() CompositeIDOptions {
	if o.ColumnName == "" {
		o.ColumnName = DefaultIDColumn
	}
	if o.Separator == "" {
		o.Separator = "_"
	}
	return o
}

// GenerateCompositeID builds one identifier per row from sourceColumns.
// Numeric source columns have their integral reals converted to integers in
// place first, so 7.0 contributes "7". Every value is slugged and the parts
// are joined in sourceColumns order; prefix and suffix are added verbatim.
func GenerateCompositeID(t *domain.Table, sourceColumns []string, opts CompositeIDOptions) (*domain.Column, error) {
	opts = opts.withDefaults()
	if len(sourceColumns) == 0 {
		return nil, apperrors.NewValidationError("at least one source column is required")
	}
	if missing := t.HasColumns(sourceColumns...); missing != "" {
		return nil, apperrors.NewInvalidColumnError(missing, t.Name)
	}

	sources := make([]*domain.Column, len(sourceColumns))
	for i, name := range sourceColumns {
		col, _ := t.Column(name)
		if col.Type().IsNumeric() {
			integerize(col)
		}
		sources[i] = col
	}

	slugs := make([][]string, len(sources))
	for i, col := range sources {
		slugs[i] = make([]string, col.Len())
		for row, v := range col.Values {
			s, _ := Normalize(v, IdentifierSlug).TextValue()
			slugs[i][row] = s
		}
	}

	out := domain.NewColumn(opts.ColumnName, t.RowCount())
	parts := make([]string, len(sources))
	var b strings.Builder
	for row := 0; row < t.RowCount(); row++ {
		for i := range sources {
			parts[i] = slugs[i][row]
		}
		b.Reset()
		b.WriteString(opts.Prefix)
		b.WriteString(strings.Join(parts, opts.Separator))
		b.WriteString(opts.Suffix)
		out.Values[row] = domain.Text(b.String())
	}

	if opts.SlugSources {
		for i, col := range sources {
			for row := range col.Values {
				col.Values[row] = domain.Text(slugs[i][row])
			}
		}
	}
	return out, nil
}

// AddCompositeID generates the identifier column and stores it on t,
// replacing an existing column of the same name.
func AddCompositeID(t *domain.Table, sourceColumns []string, opts CompositeIDOptions) (*domain.Column, error) {
	col, err := GenerateCompositeID(t, sourceColumns, opts)
	if err != nil {
		return nil, err
	}
	if err := t.SetColumn(col.Name, col.Values); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return col, nil
}

// DuplicateIDs returns identifiers that occur more than once, with the rows
// they occur on. Generation itself does not reject collisions.
func DuplicateIDs(col *domain.Column) map[string][]int {
	rows := make(map[string][]int)
	for i, v := range col.Values {
		s := v.String()
		rows[s] = append(rows[s], i)
	}
	for id, r := range rows {
		if len(r) < 2 {
			delete(rows, id)
		}
	}
	return rows
}

func integerize(col *domain.Column) {
	for i, v := range col.Values {
		if iv, ok := v.AsInteger(); ok {
			col.Values[i] = iv
		}
	}
}
