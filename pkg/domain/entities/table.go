package entities

import "strings"

// Table is an ordered set of named columns with rows of cells aligned by column index.
// Tables returned by the aging services share row storage with nothing they did not
// create; callers should treat Rows as read-only.
type Table struct {
	Columns []string
	Rows    [][]Value
}

// NewTable creates a table, padding or truncating each row to the column count
func NewTable(columns []string, rows [][]Value) *Table {
	t := &Table{
		Columns: columns,
		Rows:    make([][]Value, len(rows)),
	}
	for i, row := range rows {
		t.Rows[i] = fitRow(row, len(columns))
	}
	return t
}

func fitRow(row []Value, width int) []Value {
	if len(row) == width {
		return row
	}
	fitted := make([]Value, width)
	copy(fitted, row)
	return fitted
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of the first column with the given name, or -1
func (t *Table) Index(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Has reports whether a column with the given name exists
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Cell returns the value at row, col. Out of range positions are empty.
func (t *Table) Cell(row, col int) Value {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return Empty()
	}
	return t.Rows[row][col]
}

// Column returns the cells of the named column
func (t *Table) Column(name string) ([]Value, bool) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]Value, len(t.Rows))
	for i := range t.Rows {
		values[i] = t.Cell(i, idx)
	}
	return values, true
}

// WithTrimmedColumns returns a table whose column names have surrounding whitespace removed.
// Rows are shared with t.
func (t *Table) WithTrimmedColumns() *Table {
	columns := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		columns[i] = strings.TrimSpace(col)
	}
	return &Table{Columns: columns, Rows: t.Rows}
}

// Head returns a table holding at most the first n rows
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}
