package export

import (
	"fmt"
	"io"
	"slices"
	"unicode/utf8"

	"table-reconciler/core/reconcile"

	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single report sheet.
const SheetName = "Reconciliation Results"

// AllMatchedMessage is written when a result has no discrepancies.
const AllMatchedMessage = "No discrepancies found - data matches perfectly!"

const (
	maxColumnWidth  = 40
	widthSampleRows = 100
)

// WriteXLSX renders a reconciliation result as a color-coded workbook.
//
// Rows are grouped into three sections (mismatches, reference-only,
// comparand-only), each with a title and header row. Mismatched cells are
// highlighted on both rows of a pair.
func WriteXLSX(w io.Writer, res *reconcile.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("failed to create styles: %w", err)
	}

	r := &reportWriter{f: f, st: st, res: res, columns: res.Columns()}

	if len(res.Rows) == 0 {
		if err := r.setCell(1, 1, AllMatchedMessage, st.allMatched); err != nil {
			return err
		}
	} else {
		var mismatched, refOnly, cmpOnly []reconcile.DisplayRow
		for _, row := range res.Rows {
			switch row.Status {
			case reconcile.StatusMismatch:
				mismatched = append(mismatched, row)
			case reconcile.StatusOnlyInReference:
				refOnly = append(refOnly, row)
			case reconcile.StatusOnlyInComparand:
				cmpOnly = append(cmpOnly, row)
			}
		}

		sections := []struct {
			title string
			rows  []reconcile.DisplayRow
		}{
			{fmt.Sprintf("Mismatched Rows (%d)", len(mismatched)/2), mismatched},
			{fmt.Sprintf("Missing from %s / %s Only (%d)", res.ComparandLabel, res.ReferenceLabel, len(refOnly)), refOnly},
			{fmt.Sprintf("Extra in %s / Not in %s (%d)", res.ComparandLabel, res.ReferenceLabel, len(cmpOnly)), cmpOnly},
		}

		line := 1
		for _, sec := range sections {
			if len(sec.rows) == 0 {
				continue
			}
			if line, err = r.writeSection(sec.title, sec.rows, line); err != nil {
				return err
			}
		}
	}

	if err := r.fitColumns(); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

type reportWriter struct {
	f       *excelize.File
	st      *styles
	res     *reconcile.Result
	columns []string
}

func (r *reportWriter) setCell(col, line int, value string, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, line)
	if err != nil {
		return err
	}
	if err := r.f.SetCellStr(SheetName, cell, value); err != nil {
		return err
	}
	return r.f.SetCellStyle(SheetName, cell, cell, style)
}

// writeSection writes a title, a header and the rows starting at line. It
// returns the line after the section plus one blank line.
func (r *reportWriter) writeSection(title string, rows []reconcile.DisplayRow, line int) (int, error) {
	first, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return 0, err
	}
	last, err := excelize.CoordinatesToCellName(len(r.columns), line)
	if err != nil {
		return 0, err
	}
	if err := r.f.MergeCell(SheetName, first, last); err != nil {
		return 0, err
	}
	if err := r.setCell(1, line, title, r.st.title); err != nil {
		return 0, err
	}
	line++

	for c, name := range r.columns {
		if err := r.setCell(c+1, line, name, r.st.header); err != nil {
			return 0, err
		}
	}
	line++

	for _, row := range rows {
		base := r.rowStyle(row)
		for c, name := range r.columns {
			style := base
			if row.Status == reconcile.StatusMismatch && slices.Contains(row.Mismatched, name) {
				style = r.st.mismatchCell
			}
			if err := r.setCell(c+1, line, r.res.Cell(row, name), style); err != nil {
				return 0, err
			}
		}
		line++
	}
	return line + 1, nil
}

func (r *reportWriter) rowStyle(row reconcile.DisplayRow) int {
	switch row.Status {
	case reconcile.StatusMismatch:
		if row.Reference {
			return r.st.referenceRow
		}
		return r.st.comparandRow
	case reconcile.StatusOnlyInReference:
		return r.st.referenceOnly
	default:
		return r.st.comparandOnly
	}
}

// fitColumns sizes each column to its longest value among the header and the
// first rows, capped at maxColumnWidth.
func (r *reportWriter) fitColumns() error {
	sample := r.res.Rows[:min(len(r.res.Rows), widthSampleRows)]
	for c, name := range r.columns {
		width := utf8.RuneCountInString(name)
		for _, row := range sample {
			width = max(width, utf8.RuneCountInString(r.res.Cell(row, name)))
		}
		colName, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := r.f.SetColWidth(SheetName, colName, colName, float64(min(width+3, maxColumnWidth))); err != nil {
			return err
		}
	}
	return nil
}
