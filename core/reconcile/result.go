package reconcile

// Report columns appended after the identifier and common columns.
const (
	SourceColumn = "source"
	StatusColumn = "status"
)

// Columns is the flat report header: identifier columns, common columns,
// then the side label and status.
func (r *Result) Columns() []string {
	cols := make([]string, 0, len(r.IdentityColumns)+len(r.CommonColumns)+2)
	cols = append(cols, r.IdentityColumns...)
	cols = append(cols, r.CommonColumns...)
	return append(cols, SourceColumn, StatusColumn)
}

// Cell returns the display text of column col in row.
func (r *Result) Cell(row DisplayRow, col string) string {
	switch col {
	case SourceColumn:
		return row.Source
	case StatusColumn:
		return row.StatusText
	}
	if v, ok := row.Identity[col]; ok {
		return v.Display()
	}
	return row.Values[col].Display()
}

// Record flattens row into display text keyed by every report column.
func (r *Result) Record(row DisplayRow) map[string]string {
	cols := r.Columns()
	out := make(map[string]string, len(cols))
	for _, col := range cols {
		out[col] = r.Cell(row, col)
	}
	return out
}
