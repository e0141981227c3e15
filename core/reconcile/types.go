package reconcile

import (
	"table-reconciler/core/dataset"

	"go.uber.org/zap"
)

// Status classifies a single reconciliation outcome.
type Status string

const (
	// StatusMismatch marks a row present on both sides with differing cells.
	StatusMismatch Status = "Mismatch"
	// StatusOnlyInReference marks a row found only on the reference side.
	StatusOnlyInReference Status = "Only in Reference"
	// StatusOnlyInComparand marks a row found only on the comparand side.
	StatusOnlyInComparand Status = "Only in Comparand"
)

// Mode names the strategy used to line rows up.
type Mode string

const (
	// ModeKeyBased joins rows on an explicit composite key.
	ModeKeyBased Mode = "Key-Based"
	// ModeFingerprint matches rows by content when no key is available.
	ModeFingerprint Mode = "Smart Fingerprint"
)

// MatchColumn is the identifier column emitted in fingerprint mode.
const MatchColumn = "Match#"

// Default option values.
const (
	DefaultReferenceLabel = "SQL"
	DefaultComparandLabel = "File"
	DefaultPairCeiling    = 5000
)

// similarityPercent is the share of common columns a candidate pair must agree
// on before it is considered for pairing.
const similarityPercent = 30

// DiffEntry is one internal reconciliation outcome.
type DiffEntry struct {
	// Status is the outcome class.
	Status Status

	// Identity holds the key values (key mode) or the match number
	// (fingerprint mode), in identifier-column order.
	Identity []dataset.Value

	// Reference holds the reference-side row; nil for OnlyInComparand.
	Reference dataset.Row

	// Comparand holds the comparand-side row; nil for OnlyInReference.
	Comparand dataset.Row

	// Mismatched lists the common columns whose normalized values differ.
	// Only set for StatusMismatch.
	Mismatched []string
}

// DisplayRow is one flat row of the human-facing report.
type DisplayRow struct {
	// Identity maps each identifier column (key columns or Match#) to its value.
	Identity map[string]dataset.Value `json:"identity"`

	// Values maps each common column to this side's raw value.
	Values map[string]dataset.Value `json:"values"`

	// Source is the side label ("SQL", the file name, ...).
	Source string `json:"source"`

	// Status is the outcome class of the entry this row came from.
	Status Status `json:"status"`

	// StatusText is Status rendered with the side labels, e.g. "Only in SQL".
	StatusText string `json:"status_text"`

	// Reference is true when the row carries reference-side values.
	Reference bool `json:"reference"`

	// Mismatched lists the columns that differ. Empty for OnlyIn rows.
	Mismatched []string `json:"mismatched_cols"`
}

// Summary holds aggregate statistics for one reconciliation.
type Summary struct {
	// TotalReferenceRows is the row count of the reference dataset.
	TotalReferenceRows int `json:"total_reference_rows"`

	// TotalComparandRows is the row count of the comparand dataset.
	TotalComparandRows int `json:"total_comparand_rows"`

	// MatchedRows counts rows found identical on both sides.
	MatchedRows int `json:"matched_rows"`

	// TotalDiscrepancies counts every emitted DiffEntry.
	TotalDiscrepancies int `json:"total_discrepancies"`

	// Mismatches counts StatusMismatch entries.
	Mismatches int `json:"mismatches"`

	// OnlyInReference counts StatusOnlyInReference entries.
	OnlyInReference int `json:"only_in_reference"`

	// OnlyInComparand counts StatusOnlyInComparand entries.
	OnlyInComparand int `json:"only_in_comparand"`

	// Mode is the strategy used.
	Mode Mode `json:"comparison_mode"`

	// PairingSkipped is true when similarity pairing was skipped because
	// both leftover pools exceeded the pair ceiling.
	PairingSkipped bool `json:"pairing_skipped"`

	// KeyColumns lists the identifier columns actually used: the resolved key
	// columns, or Match# in fingerprint mode.
	KeyColumns []string `json:"key_cols"`

	// CommonColumns lists the compared non-key columns.
	CommonColumns []string `json:"common_cols"`

	// ElapsedSeconds is the wall-clock time, rounded to hundredths.
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// Options controls a reconciliation call. The zero value is usable.
type Options struct {
	// Keys is the requested composite key. Empty selects fingerprint mode.
	Keys []string

	// ReferenceLabel names the reference side in the report. Default "SQL".
	ReferenceLabel string

	// ComparandLabel names the comparand side in the report. Default "File".
	ComparandLabel string

	// PairCeiling bounds similarity pairing: when both leftover pools are
	// larger, pairing is skipped. Default 5000.
	PairCeiling int

	// Logger receives per-phase debug output. Default zap.NewNop().
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.ReferenceLabel == "" {
		o.ReferenceLabel = DefaultReferenceLabel
	}
	if o.ComparandLabel == "" {
		o.ComparandLabel = DefaultComparandLabel
	}
	if o.PairCeiling <= 0 {
		o.PairCeiling = DefaultPairCeiling
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Result is the output of Reconcile.
type Result struct {
	// Rows is the display-ready report in entry order.
	Rows []DisplayRow `json:"rows"`

	// Summary holds the aggregate statistics.
	Summary Summary `json:"summary"`

	// IdentityColumns lists the identifier columns of every row
	// (the key columns, or Match# in fingerprint mode).
	IdentityColumns []string `json:"identity_cols"`

	// CommonColumns lists the compared non-key columns.
	CommonColumns []string `json:"common_cols"`

	// ReferenceLabel and ComparandLabel echo the resolved side labels.
	ReferenceLabel string `json:"reference_label"`
	ComparandLabel string `json:"comparand_label"`
}

// outcome is what a reconciler hands to the display and summary stages.
type outcome struct {
	entries        []DiffEntry
	matched        int
	pairingSkipped bool
}
