package dataset

// ColumnMapping pairs a reference-side column with the comparand-side
// column that carries the same data.
type ColumnMapping struct {
	// Reference is the column name on the reference side; it becomes the
	// shared name after mapping.
	Reference string `json:"sql"`
	// Comparand is the column name on the comparand side.
	Comparand string `json:"file"`
}

// ApplyMapping selects the mapped columns on both sides and renames the
// comparand columns to their reference names. Mapped columns missing from a
// side are skipped rather than reported, since hand-built mappings are often
// partial. With no mappings both datasets are returned as independent copies.
// The inputs are never modified.
func ApplyMapping(ref, cmp *Dataset, mappings []ColumnMapping) (*Dataset, *Dataset) {
	if len(mappings) == 0 {
		return ref.Clone(), cmp.Clone()
	}

	var refCols []string
	refRename := make(map[string]string)
	var cmpCols []string
	cmpRename := make(map[string]string)

	for _, m := range mappings {
		if ref.HasColumn(m.Reference) {
			if _, dup := refRename[m.Reference]; !dup {
				refCols = append(refCols, m.Reference)
				refRename[m.Reference] = m.Reference
			}
		}
		if cmp.HasColumn(m.Comparand) {
			if _, dup := cmpRename[m.Comparand]; !dup {
				cmpCols = append(cmpCols, m.Comparand)
				cmpRename[m.Comparand] = m.Reference
			}
		}
	}

	return project(ref, refCols, refRename), project(cmp, cmpCols, cmpRename)
}

// project copies the listed columns of d into a new dataset, renaming each
// through rename.
func project(d *Dataset, cols []string, rename map[string]string) *Dataset {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = rename[c]
	}
	out := New(d.Label, names...)
	out.Rows = make([]Row, len(d.Rows))
	for i, row := range d.Rows {
		cp := make(Row, len(cols))
		for _, c := range cols {
			cp[rename[c]] = row.Get(c)
		}
		out.Rows[i] = cp
	}
	return out
}
