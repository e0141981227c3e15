package reconcile

import (
	"table-reconciler/core/dataset"
)

// toDisplayRows expands entries into report rows. A mismatch becomes two rows,
// reference first; a one-sided entry becomes one. The mismatched-column set
// is recomputed here from the raw values and is the one reported.
func toDisplayRows(entries []DiffEntry, identityCols, common []string, refLabel, cmpLabel string) []DisplayRow {
	rows := make([]DisplayRow, 0, len(entries)+countMismatches(entries))

	for _, e := range entries {
		identity := make(map[string]dataset.Value, len(identityCols))
		for i, col := range identityCols {
			if i < len(e.Identity) {
				identity[col] = e.Identity[i]
			}
		}

		mismatched := []string{}
		if e.Status == StatusMismatch {
			mismatched = mismatchedColumns(e.Reference, e.Comparand, common)
		}
		text := statusText(e.Status, refLabel, cmpLabel)

		if e.Status == StatusMismatch || e.Status == StatusOnlyInReference {
			rows = append(rows, DisplayRow{
				Identity:   identity,
				Values:     sideValues(e.Reference, common),
				Source:     refLabel,
				Status:     e.Status,
				StatusText: text,
				Reference:  true,
				Mismatched: mismatched,
			})
		}
		if e.Status == StatusMismatch || e.Status == StatusOnlyInComparand {
			rows = append(rows, DisplayRow{
				Identity:   identity,
				Values:     sideValues(e.Comparand, common),
				Source:     cmpLabel,
				Status:     e.Status,
				StatusText: text,
				Mismatched: mismatched,
			})
		}
	}
	return rows
}

// mismatchedColumns re-normalizes both sides of every common column with the
// scalar normalizer.
func mismatchedColumns(ref, cmp dataset.Row, common []string) []string {
	out := []string{}
	for _, col := range common {
		if Normalize(ref.Get(col)) != Normalize(cmp.Get(col)) {
			out = append(out, col)
		}
	}
	return out
}

func sideValues(row dataset.Row, common []string) map[string]dataset.Value {
	values := make(map[string]dataset.Value, len(common))
	for _, col := range common {
		values[col] = row.Get(col)
	}
	return values
}

func statusText(s Status, refLabel, cmpLabel string) string {
	switch s {
	case StatusOnlyInReference:
		return "Only in " + refLabel
	case StatusOnlyInComparand:
		return "Only in " + cmpLabel
	default:
		return string(s)
	}
}

func countMismatches(entries []DiffEntry) int {
	n := 0
	for _, e := range entries {
		if e.Status == StatusMismatch {
			n++
		}
	}
	return n
}
