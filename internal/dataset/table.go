package dataset

import "sort"

// Table is an in-memory columnar view over incident records: ordered column
// names plus row-major cells. Loaded tables are read-only by convention;
// every transforming operation returns a new Table and shares row slices
// where it can.
type Table struct {
	cols []string
	idx  map[string]int
	rows [][]Value
}

// New creates an empty table with the given columns.
func New(cols ...string) *Table {
	t := &Table{
		cols: append([]string(nil), cols...),
		idx:  make(map[string]int, len(cols)),
	}
	for i, c := range t.cols {
		t.idx[c] = i
	}
	return t
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.idx[name]
	return ok
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.idx[name]
	return i, ok
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// AppendRow adds one row. Short rows are padded with missing values, long
// rows truncated, so loaders can feed ragged source records directly.
func (t *Table) AppendRow(row []Value) {
	r := make([]Value, len(t.cols))
	for i := range r {
		if i < len(row) {
			r[i] = row[i]
		} else {
			r[i] = Missing()
		}
	}
	t.rows = append(t.rows, r)
}

// Row returns the i-th row. Callers must not mutate it.
func (t *Table) Row(i int) []Value {
	return t.rows[i]
}

// Value returns the cell at (row, col), or missing when the column does not
// exist.
func (t *Table) Value(row int, col string) Value {
	i, ok := t.idx[col]
	if !ok {
		return Missing()
	}
	return t.rows[row][i]
}

// Select returns a new table containing the rows for which keep returns
// true. Row slices are shared with the receiver; the receiver is never
// mutated.
func (t *Table) Select(keep func(row []Value) bool) *Table {
	out := New(t.cols...)
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// SelectIndices returns a new table containing exactly the rows at the given
// positions, in the given order, sharing row storage.
func (t *Table) SelectIndices(indices []int) *Table {
	out := New(t.cols...)
	out.rows = make([][]Value, 0, len(indices))
	for _, i := range indices {
		out.rows = append(out.rows, t.rows[i])
	}
	return out
}

// Head returns a new table with at most n leading rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	out := New(t.cols...)
	out.rows = append(out.rows, t.rows[:n]...)
	return out
}

// Distinct returns the sorted canonical string forms of the non-missing
// values in the named column. An absent column yields nil.
func (t *Table) Distinct(col string) []string {
	i, ok := t.idx[col]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.rows {
		v := r[i]
		if v.IsMissing() {
			continue
		}
		s := v.String()
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Concat concatenates tables row-wise in the order given. The result's
// column set is the union of all inputs' columns in first-seen order; cells
// for columns a source table lacks are filled with missing values.
func Concat(tables ...*Table) *Table {
	var cols []string
	seen := make(map[string]struct{})
	for _, t := range tables {
		for _, c := range t.cols {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			cols = append(cols, c)
		}
	}

	out := New(cols...)
	for _, t := range tables {
		for _, r := range t.rows {
			row := make([]Value, len(cols))
			for j, c := range cols {
				if i, ok := t.idx[c]; ok {
					row[j] = r[i]
				} else {
					row[j] = Missing()
				}
			}
			out.rows = append(out.rows, row)
		}
	}
	return out
}
