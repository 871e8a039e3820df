package domain

// Table is row-oriented tabular data loaded from one worksheet.
// Every row has exactly len(Columns) cells.
type Table struct {
	// Columns holds the header names in sheet order.
	Columns []string

	// Rows holds the data rows below the header.
	Rows [][]string

	index map[string]int
}

// NewTable builds a table from a header and data rows. Rows shorter than
// the header are padded with empty cells and longer rows are truncated.
// When the header repeats a name, the first occurrence wins lookups.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		Columns: columns,
		Rows:    make([][]string, 0, len(rows)),
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range columns {
		if name == "" {
			continue
		}
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	for _, row := range rows {
		cells := make([]string, len(columns))
		copy(cells, row)
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Require returns a SchemaError naming every column in names that the
// table lacks, or nil when all are present.
func (t *Table) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return MissingColumns(missing...)
	}
	return nil
}

// Filter returns a new table holding only the rows for which keep is true.
// The receiver is not modified; row slices are shared.
func (t *Table) Filter(keep func(row []string) bool) *Table {
	out := &Table{
		Columns: t.Columns,
		Rows:    make([][]string, 0, len(t.Rows)),
		index:   t.index,
	}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
