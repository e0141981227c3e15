package reconcile

import (
	"errors"
	"fmt"
	"time"

	"table-reconciler/core/dataset"

	"go.uber.org/zap"
)

// ErrNilDataset is returned when either input dataset is nil.
var ErrNilDataset = errors.New("reconcile: nil dataset")

// Reconcile compares ref against cmp and returns the display-ready report.
//
// When opts.Keys names at least one column present on both sides, rows are
// joined on those keys; requested keys missing from either side are dropped.
// Otherwise rows are matched by content (fingerprint mode) and identified by
// a sequential Match# number.
//
// Both inputs are copied on entry and never modified. An error aborts the
// whole call; no partial result is returned.
func Reconcile(ref, cmp *dataset.Dataset, opts Options) (*Result, error) {
	if ref == nil || cmp == nil {
		return nil, ErrNilDataset
	}
	start := time.Now()
	opts = opts.withDefaults()
	log := opts.Logger

	ref = ref.Clone()
	cmp = cmp.Clone()

	keys, dropped := resolveKeys(ref, cmp, opts.Keys)
	if len(dropped) > 0 {
		log.Warn("Key columns missing from one side were ignored", zap.Strings("dropped", dropped))
	}

	var (
		out          *outcome
		mode         Mode
		identityCols []string
		common       []string
		err          error
	)

	if len(keys) > 0 {
		mode = ModeKeyBased
		identityCols = keys
		common = commonColumns(ref, cmp, keys)
		log.Debug("Key-based reconciliation", zap.Strings("keys", keys), zap.Int("columns", len(common)))
		out = reconcileByKey(ref, cmp, keys, common)
	} else {
		mode = ModeFingerprint
		identityCols = []string{MatchColumn}
		common = commonColumns(ref, cmp, nil)
		log.Debug("Fingerprint reconciliation", zap.Int("columns", len(common)))
		out, err = reconcileByFingerprint(ref, cmp, common, opts.PairCeiling, log)
		if err != nil {
			return nil, fmt.Errorf("fingerprint reconciliation: %w", err)
		}
	}

	rows := toDisplayRows(out.entries, identityCols, common, opts.ReferenceLabel, opts.ComparandLabel)
	summary := summarize(out, ref.Len(), cmp.Len(), mode, identityCols, common, time.Since(start))

	log.Debug("Reconciliation finished",
		zap.String("mode", string(mode)),
		zap.Int("matched", summary.MatchedRows),
		zap.Int("discrepancies", summary.TotalDiscrepancies),
		zap.Float64("elapsed_seconds", summary.ElapsedSeconds))

	return &Result{
		Rows:            rows,
		Summary:         summary,
		IdentityColumns: identityCols,
		CommonColumns:   common,
		ReferenceLabel:  opts.ReferenceLabel,
		ComparandLabel:  opts.ComparandLabel,
	}, nil
}

// resolveKeys keeps the requested keys present on both sides,
// de-duplicated, and reports the rest.
func resolveKeys(ref, cmp *dataset.Dataset, requested []string) (keys, dropped []string) {
	seen := make(map[string]struct{}, len(requested))
	for _, k := range requested {
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if ref.HasColumn(k) && cmp.HasColumn(k) {
			keys = append(keys, k)
		} else {
			dropped = append(dropped, k)
		}
	}
	return keys, dropped
}

// commonColumns lists the reference columns also present on the comparand
// side, in reference order, excluding keys.
func commonColumns(ref, cmp *dataset.Dataset, keys []string) []string {
	excluded := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		excluded[k] = struct{}{}
	}
	var common []string
	for _, col := range ref.Columns {
		if _, skip := excluded[col]; skip {
			continue
		}
		if cmp.HasColumn(col) {
			common = append(common, col)
		}
	}
	return common
}
