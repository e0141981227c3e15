// Package dataset defines the in-memory tabular model shared by every
// reconciliation component.
//
// Cells are a closed sum type (Value) over null, bool, int, float/decimal,
// text, date, time and datetime. Loosely typed inputs from SQL drivers or
// parsed files are converted once at ingestion with Of, after which all
// downstream code works over the sum type only.
//
// # Ownership
//
// A Dataset is owned by whoever built it. Functions in this package that
// reshape data (Clone, ApplyMapping) always return new datasets and never
// modify their inputs, so a caller can hand the same dataset to several
// concurrent reconciliations.
//
// # Usage
//
//	ref := dataset.New("SQL", "RecordID", "Salary")
//	_ = ref.Append(dataset.Int(1), dataset.Float(45000.5))
//
//	cmp := dataset.New("orders.xlsx", "ID", "Salary")
//	_ = cmp.Append(dataset.Text("1"), dataset.Text("45000.50"))
//
//	ref, cmp = dataset.ApplyMapping(ref, cmp, []dataset.ColumnMapping{
//	    {Reference: "RecordID", Comparand: "ID"},
//	    {Reference: "Salary", Comparand: "Salary"},
//	})
package dataset
