package entity

import (
	"fmt"
	"slices"
)

// Table is an ordered set of named columns over rows of Values.
//
// Operations that reshape a table return a new Table and leave the receiver
// untouched; only Append and SetColumn mutate.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) (*Table, error) {
	t := &Table{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for _, c := range columns {
		if _, dup := t.index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}

	return t, nil
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// HasColumn reports whether the column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// HasColumns reports whether every named column exists.
func (t *Table) HasColumns(names ...string) bool {
	for _, n := range names {
		if !t.HasColumn(n) {
			return false
		}
	}
	return true
}

// Append adds a row. The number of values must match the number of columns.
func (t *Table) Append(values ...Value) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	t.rows = append(t.rows, slices.Clone(values))
	return nil
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []Value {
	return slices.Clone(t.rows[i])
}

// Rows returns a copy of every row.
func (t *Table) Rows() [][]Value {
	out := make([][]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = slices.Clone(r)
	}
	return out
}

// At returns the cell of row i in column name, or missing when the column is absent.
func (t *Table) At(i int, name string) Value {
	c, ok := t.index[name]
	if !ok {
		return Missing()
	}
	return t.rows[i][c]
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]Value, bool) {
	c, ok := t.index[name]
	if !ok {
		return nil, false
	}

	out := make([]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[c]
	}
	return out, true
}

// Record returns row i keyed by column name.
func (t *Table) Record(i int) map[string]Value {
	out := make(map[string]Value, len(t.columns))
	for c, name := range t.columns {
		out[name] = t.rows[i][c]
	}
	return out
}

// SetColumn replaces the named column, or appends it when absent.
func (t *Table) SetColumn(name string, values []Value) error {
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.rows))
	}

	c, ok := t.index[name]
	if !ok {
		c = len(t.columns)
		t.index[name] = c
		t.columns = append(t.columns, name)
		for i := range t.rows {
			t.rows[i] = append(t.rows[i], Missing())
		}
	}

	for i, v := range values {
		t.rows[i][c] = v
	}
	return nil
}

// Select returns a table with exactly the named columns, in that order.
func (t *Table) Select(names ...string) (*Table, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		c, ok := t.index[n]
		if !ok {
			return nil, fmt.Errorf("column %q not found", n)
		}
		idx[i] = c
	}

	out, err := NewTable(names...)
	if err != nil {
		return nil, err
	}

	out.rows = make([][]Value, len(t.rows))
	for i, r := range t.rows {
		row := make([]Value, len(idx))
		for j, c := range idx {
			row[j] = r[c]
		}
		out.rows[i] = row
	}
	return out, nil
}

// Without returns a table without the named columns; absent names are ignored.
func (t *Table) Without(names ...string) *Table {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}

	keep := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if _, ok := drop[c]; !ok {
			keep = append(keep, c)
		}
	}

	out, _ := t.Select(keep...) // keep is a subset of unique existing columns
	return out
}

// Filter returns the rows for which keep reports true, in order.
func (t *Table) Filter(keep func(i int, row []Value) bool) *Table {
	out := t.Empty()
	for i, r := range t.rows {
		if keep(i, r) {
			out.rows = append(out.rows, slices.Clone(r))
		}
	}
	return out
}

// Take returns the rows at the given indices, in the given order.
func (t *Table) Take(indices []int) *Table {
	out := t.Empty()
	out.rows = make([][]Value, 0, len(indices))
	for _, i := range indices {
		out.rows = append(out.rows, slices.Clone(t.rows[i]))
	}
	return out
}

// Head returns the first n rows.
func (t *Table) Head(n int) *Table {
	n = max(0, min(n, len(t.rows)))
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return t.Take(idx)
}

// Empty returns a table with the same columns and no rows.
func (t *Table) Empty() *Table {
	out, _ := NewTable(t.columns...) // columns are already unique
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := t.Empty()
	out.rows = t.Rows()
	return out
}
