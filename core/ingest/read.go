package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"table-reconciler/core/dataset"
)

// Read parses an uploaded file, choosing the parser from the file extension.
// The dataset label is the file's base name.
func Read(name string, r io.Reader) (*dataset.Dataset, error) {
	label := filepath.Base(name)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ReadCSV(r, label)
	case ".xlsx":
		return ReadXLSX(r, label)
	case ".xls":
		return nil, fmt.Errorf("%w: legacy .xls workbooks must be saved as .xlsx", ErrUnsupportedFormat)
	default:
		return nil, ErrUnsupportedFormat
	}
}
