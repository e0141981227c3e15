// Package reconcile compares two tabular datasets and reports row-level and
// cell-level discrepancies.
//
// The reconciliation pipeline consists of four stages:
//
// 1. Normalizer: canonicalizes every cell to a comparison string (null-like
// values, midnight datetimes and numeric spellings collapse to one form).
// Normalize is the scalar path, NormalizeColumn the memoized bulk path; both
// produce identical output for every input.
//
// 2. Reconciler: either a key-based outer join on explicit key columns, or,
// when no usable key exists, an order-independent fingerprint match:
// rows are hashed over their normalized content, identical rows are paired
// off as multisets, and the leftovers are greedily paired by the number of
// agreeing columns.
//
// 3. Display transform: each mismatch expands to a reference row followed by
// a comparand row; one-sided entries expand to a single row.
//
// 4. Summary: per-side totals, per-status counts, the mode used and timing.
//
// # Limits
//
// Similarity pairing is quadratic in the worst case. When both leftover pools
// exceed Options.PairCeiling pairing is skipped, Summary.PairingSkipped is
// set, and all leftovers are reported as one-sided rows.
//
// Duplicate keys in key mode multiply like a relational outer join.
//
// # Usage Example
//
//	result, err := reconcile.Reconcile(sqlData, fileData, reconcile.Options{
//	    Keys:           []string{"RecordID"},
//	    ComparandLabel: "users.xlsx",
//	    Logger:         log,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Summary.Mismatches)
package reconcile
