package domain

// Workbook is an ordered list of sheets. Single-sheet formats such as CSV
// produce a workbook with one sheet.
type Workbook struct {
	Sheets []*Table
}

// NewWorkbook wraps the given sheets.
func NewWorkbook(sheets ...*Table) *Workbook {
	return &Workbook{Sheets: sheets}
}

// Sheet returns the sheet with the given name.
func (w *Workbook) Sheet(name string) (*Table, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// First returns the first sheet or nil for an empty workbook.
func (w *Workbook) First() *Table {
	if len(w.Sheets) == 0 {
		return nil
	}
	return w.Sheets[0]
}

// SheetNames lists sheet names in order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}
