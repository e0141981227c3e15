package dataset

import "fmt"

// Row maps a column name to its cell. Missing columns read as null.
type Row map[string]Value

// Get returns the cell for column, or null when the row lacks it.
func (r Row) Get(column string) Value {
	return r[column]
}

// Dataset is an ordered sequence of rows with a declared column order and
// a display label identifying which side of a comparison it came from.
type Dataset struct {
	// Label identifies the dataset in reports (e.g., "SQL", "orders.xlsx").
	Label string `json:"label"`

	// Columns lists the column names in their source order.
	Columns []string `json:"columns"`

	// Rows holds the data in source order.
	Rows []Row `json:"rows"`
}

// New creates an empty dataset with the given label and columns.
func New(label string, columns ...string) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{Label: label, Columns: cols}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// HasColumn reports whether name is a declared column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row given positionally in column order.
func (d *Dataset) Append(values ...Value) error {
	if len(values) != len(d.Columns) {
		return fmt.Errorf("row has %d values, dataset %q has %d columns", len(values), d.Label, len(d.Columns))
	}
	row := make(Row, len(values))
	for i, col := range d.Columns {
		row[col] = values[i]
	}
	d.Rows = append(d.Rows, row)
	return nil
}

// Column returns every cell of column name in row order.
func (d *Dataset) Column(name string) []Value {
	out := make([]Value, len(d.Rows))
	for i, row := range d.Rows {
		out[i] = row.Get(name)
	}
	return out
}

// Clone returns a deep copy that shares no mutable state with d.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := New(d.Label, d.Columns...)
	out.Rows = make([]Row, len(d.Rows))
	for i, row := range d.Rows {
		cp := make(Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}

// Head returns at most n leading rows.
func (d *Dataset) Head(n int) []Row {
	n = max(0, min(n, len(d.Rows)))
	return d.Rows[:n]
}
