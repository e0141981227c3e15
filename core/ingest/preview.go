package ingest

import "table-reconciler/core/dataset"

// PreviewRow is a row rendered as display text keyed by column.
type PreviewRow map[string]string

// Preview is a truncated view of a dataset.
type Preview struct {
	Columns []string     `json:"columns"`
	Rows    []PreviewRow `json:"preview_data"`
	LastRow PreviewRow   `json:"last_row"`
	Total   int          `json:"total_rows"`
}

// NewPreview renders the first n rows of ds. When ds has more than n rows the
// last row is included separately so a truncated view can show where the
// data ends.
func NewPreview(ds *dataset.Dataset, n int) Preview {
	n = max(0, n)
	p := Preview{
		Columns: append([]string{}, ds.Columns...),
		Rows:    make([]PreviewRow, 0, min(n, ds.Len())),
		Total:   ds.Len(),
	}
	for _, row := range ds.Head(n) {
		p.Rows = append(p.Rows, render(ds.Columns, row))
	}
	if ds.Len() > n {
		p.LastRow = render(ds.Columns, ds.Rows[ds.Len()-1])
	}
	return p
}

func render(columns []string, row dataset.Row) PreviewRow {
	out := make(PreviewRow, len(columns))
	for _, col := range columns {
		out[col] = row.Get(col).Display()
	}
	return out
}
