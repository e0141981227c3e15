package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"table-reconciler/core/dataset"
)

// ReadCSV parses a comma-separated file whose first record is the header.
// Empty cells become null, everything else text. Rows shorter than the
// header are padded with nulls; longer rows are truncated.
func ReadCSV(r io.Reader, label string) (*dataset.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyUpload
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	ds := dataset.New(label, headerNames(header)...)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record %d: %w", line, err)
		}
		if err := ds.Append(textCells(record, len(ds.Columns))...); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// headerNames trims header cells, strips a UTF-8 byte order mark and names
// blank or repeated headers the way spreadsheet tools do ("Unnamed: 3",
// "Amount.1"). A generated name that is already taken gets a further suffix,
// so every returned name is unique.
func headerNames(header []string) []string {
	names := make([]string, len(header))
	counts := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		n := counts[h]
		for n > 0 {
			counts[h] = n + 1
			h = fmt.Sprintf("%s.%d", h, n)
			n = counts[h]
		}
		counts[h] = 1
		names[i] = h
	}
	return names
}

// textCells converts raw cells to values, fitted to width.
func textCells(cells []string, width int) []dataset.Value {
	values := make([]dataset.Value, width)
	for i := range values {
		if i >= len(cells) || cells[i] == "" {
			values[i] = dataset.Null()
			continue
		}
		values[i] = dataset.Text(cells[i])
	}
	return values
}
