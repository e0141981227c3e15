package ingest

import (
	"fmt"
	"io"

	"table-reconciler/core/dataset"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the first sheet of an Excel workbook. The first row is the
// header; cells are read as their formatted text, so dates and numbers arrive
// the way the spreadsheet displays them.
func ReadXLSX(r io.Reader, label string) (*dataset.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyUpload
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyUpload
	}

	ds := dataset.New(label, headerNames(rows[0])...)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		if err := ds.Append(textCells(row, len(ds.Columns))...); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// isBlank reports whether every cell of row is empty. GetRows returns such
// rows for formatted but empty lines.
func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
