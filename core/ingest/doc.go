// Package ingest turns uploaded CSV and Excel files into datasets.
//
// Every cell is read as text; empty cells become null. Typing is left to the
// normalizer, which treats "1750.0" and 1750 alike, so no column type
// inference happens here.
package ingest
