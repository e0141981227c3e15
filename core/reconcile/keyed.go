package reconcile

import (
	"strings"

	"table-reconciler/core/dataset"
)

// keySeparator joins composite key parts (ASCII unit separator).
const keySeparator = "\x1f"

// reconcileByKey performs a full outer equi-join of ref and cmp on keys and
// diffs the common columns of every joined pair.
//
// Key values are compared as trimmed text, so 101 and "101" join. A key that
// repeats on either side multiplies like a relational outer join: every
// reference occurrence pairs with every comparand occurrence.
//
// Entries follow reference order; comparand-only rows come last, in
// comparand order.
func reconcileByKey(ref, cmp *dataset.Dataset, keys, common []string) *outcome {
	refKeys := keyTexts(ref, keys)
	cmpKeys := keyTexts(cmp, keys)

	index := make(map[string][]int, len(cmpKeys))
	for j, k := range cmpKeys {
		index[k] = append(index[k], j)
	}

	refNorm := normalizeFrame(ref, common)
	cmpNorm := normalizeFrame(cmp, common)

	out := &outcome{}
	cmpJoined := make([]bool, cmp.Len())

	for i, k := range refKeys {
		positions, ok := index[k]
		if !ok {
			out.entries = append(out.entries, DiffEntry{
				Status:    StatusOnlyInReference,
				Identity:  keyIdentity(ref.Rows[i], keys),
				Reference: ref.Rows[i],
			})
			continue
		}

		for _, j := range positions {
			cmpJoined[j] = true
			diff := differingColumns(refNorm[i], cmpNorm[j], common)
			if len(diff) == 0 {
				out.matched++
				continue
			}
			out.entries = append(out.entries, DiffEntry{
				Status:     StatusMismatch,
				Identity:   keyIdentity(ref.Rows[i], keys),
				Reference:  ref.Rows[i],
				Comparand:  cmp.Rows[j],
				Mismatched: diff,
			})
		}
	}

	for j, joined := range cmpJoined {
		if joined {
			continue
		}
		out.entries = append(out.entries, DiffEntry{
			Status:    StatusOnlyInComparand,
			Identity:  keyIdentity(cmp.Rows[j], keys),
			Comparand: cmp.Rows[j],
		})
	}

	return out
}

// keyTexts renders the composite key of every row.
func keyTexts(ds *dataset.Dataset, keys []string) []string {
	out := make([]string, ds.Len())
	parts := make([]string, len(keys))
	for i, row := range ds.Rows {
		for k, col := range keys {
			parts[k] = strings.TrimSpace(row.Get(col).String())
		}
		out[i] = strings.Join(parts, keySeparator)
	}
	return out
}

// keyIdentity returns the trimmed key text of row as per-column values.
func keyIdentity(row dataset.Row, keys []string) []dataset.Value {
	ids := make([]dataset.Value, len(keys))
	for i, col := range keys {
		ids[i] = dataset.Text(strings.TrimSpace(row.Get(col).String()))
	}
	return ids
}

// differingColumns returns the columns whose normalized values differ.
func differingColumns(a, b []string, columns []string) []string {
	var diff []string
	for c, col := range columns {
		if a[c] != b[c] {
			diff = append(diff, col)
		}
	}
	return diff
}
