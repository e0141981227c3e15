package reconcile

import (
	"encoding/binary"
	"fmt"
	"slices"
	"time"

	"table-reconciler/core/dataset"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// fingerprintGroup collects the positions of content-identical rows.
type fingerprintGroup struct {
	tuple []string
	ref   []int
	cmp   []int
}

// fingerprintIndex groups rows of both sides by normalized content. Hash
// collisions are resolved by comparing the full tuple.
type fingerprintIndex struct {
	byHash map[uint64][]int
	groups []*fingerprintGroup
	buf    []byte
}

func newFingerprintIndex(capacity int) *fingerprintIndex {
	return &fingerprintIndex{byHash: make(map[uint64][]int, capacity)}
}

// hash returns the xxhash of the length-prefixed tuple, so ("ab","c") and
// ("a","bc") hash differently.
func (x *fingerprintIndex) hash(tuple []string) uint64 {
	x.buf = x.buf[:0]
	for _, s := range tuple {
		x.buf = binary.AppendUvarint(x.buf, uint64(len(s)))
		x.buf = append(x.buf, s...)
	}
	return xxhash.Sum64(x.buf)
}

// group returns the group for tuple, creating it on first sight. Groups keep
// first-occurrence order.
func (x *fingerprintIndex) group(tuple []string) *fingerprintGroup {
	h := x.hash(tuple)
	for _, g := range x.byHash[h] {
		if slices.Equal(x.groups[g].tuple, tuple) {
			return x.groups[g]
		}
	}
	g := &fingerprintGroup{tuple: tuple}
	x.byHash[h] = append(x.byHash[h], len(x.groups))
	x.groups = append(x.groups, g)
	return g
}

// reconcileByFingerprint diffs ref and cmp without keys, independent of row
// order.
//
// Phase 1 normalizes and fingerprints every row. Phase 2 pairs off
// content-identical rows up to the smaller multiplicity on either side.
// Phase 3 greedily pairs the leftovers by the number of agreeing columns,
// unless both leftover pools exceed ceiling. Phase 4 reports accepted pairs
// as mismatches and the rest as one-sided rows.
func reconcileByFingerprint(ref, cmp *dataset.Dataset, common []string, ceiling int, log *zap.Logger) (*outcome, error) {
	start := time.Now()

	refNorm := normalizeFrame(ref, common)
	cmpNorm := normalizeFrame(cmp, common)

	index := newFingerprintIndex(len(refNorm))
	for i, tuple := range refNorm {
		g := index.group(tuple)
		g.ref = append(g.ref, i)
	}
	for j, tuple := range cmpNorm {
		g := index.group(tuple)
		g.cmp = append(g.cmp, j)
	}
	log.Debug("Rows fingerprinted",
		zap.Int("reference_rows", len(refNorm)),
		zap.Int("comparand_rows", len(cmpNorm)),
		zap.Int("distinct", len(index.groups)),
		zap.Duration("duration", time.Since(start)))

	out := &outcome{}
	refMatched := make([]bool, len(refNorm))
	cmpMatched := make([]bool, len(cmpNorm))
	for _, g := range index.groups {
		n := min(len(g.ref), len(g.cmp))
		for k := 0; k < n; k++ {
			refMatched[g.ref[k]] = true
			cmpMatched[g.cmp[k]] = true
		}
		out.matched += n
	}

	leftRef := unmatched(refMatched)
	leftCmp := unmatched(cmpMatched)
	log.Debug("Exact matches eliminated",
		zap.Int("matched", out.matched),
		zap.Int("reference_left", len(leftRef)),
		zap.Int("comparand_left", len(leftCmp)))

	var pairs [][2]int
	if len(leftRef) > 0 && len(leftCmp) > 0 {
		if len(leftRef) > ceiling && len(leftCmp) > ceiling {
			out.pairingSkipped = true
			log.Debug("Similarity pairing skipped",
				zap.Int("reference_left", len(leftRef)),
				zap.Int("comparand_left", len(leftCmp)),
				zap.Int("ceiling", ceiling))
		} else {
			pairStart := time.Now()
			pairs = pairBySimilarity(refNorm, cmpNorm, leftRef, leftCmp, len(common))
			log.Debug("Similarity pairs found",
				zap.Int("pairs", len(pairs)),
				zap.Int("threshold", similarityThreshold(len(common))),
				zap.Int("columns", len(common)),
				zap.Duration("duration", time.Since(pairStart)))
		}
	}

	refPaired := make([]bool, len(refNorm))
	cmpPaired := make([]bool, len(cmpNorm))
	match := 0
	nextMatch := func() []dataset.Value {
		match++
		return []dataset.Value{dataset.Int(int64(match))}
	}

	for _, p := range pairs {
		i, j := p[0], p[1]
		refPaired[i] = true
		cmpPaired[j] = true
		out.entries = append(out.entries, DiffEntry{
			Status:     StatusMismatch,
			Identity:   nextMatch(),
			Reference:  ref.Rows[i],
			Comparand:  cmp.Rows[j],
			Mismatched: differingColumns(refNorm[i], cmpNorm[j], common),
		})
	}
	for _, i := range leftRef {
		if refPaired[i] {
			continue
		}
		out.entries = append(out.entries, DiffEntry{
			Status:    StatusOnlyInReference,
			Identity:  nextMatch(),
			Reference: ref.Rows[i],
		})
	}
	for _, j := range leftCmp {
		if cmpPaired[j] {
			continue
		}
		out.entries = append(out.entries, DiffEntry{
			Status:    StatusOnlyInComparand,
			Identity:  nextMatch(),
			Comparand: cmp.Rows[j],
		})
	}

	if err := checkAccounting(out, len(refNorm), len(cmpNorm)); err != nil {
		return nil, err
	}

	log.Debug("Fingerprint reconciliation finished", zap.Duration("duration", time.Since(start)))
	return out, nil
}

// similarityThreshold is the minimum number of agreeing columns for a
// candidate pair: 30% of the columns, truncated, at least one.
func similarityThreshold(columns int) int {
	return max(1, columns*similarityPercent/100)
}

// pairBySimilarity greedily pairs leftover reference rows with leftover
// comparand rows. Candidates scoring at least the threshold are taken in
// descending score order, ties broken by ascending leftover index (reference
// first, then comparand); a candidate is skipped when either row is already
// taken. The result is a heuristic, not an optimal assignment.
//
// Scores are counted through per-column postings of the comparand leftovers,
// so the cost follows the number of agreeing cells rather than the full
// cross product.
func pairBySimilarity(refNorm, cmpNorm [][]string, leftRef, leftCmp []int, columns int) [][2]int {
	if columns == 0 {
		return nil
	}
	threshold := similarityThreshold(columns)

	// postings[c][value] lists comparand leftover indices holding value in c.
	postings := make([]map[string][]int32, columns)
	for c := range postings {
		postings[c] = make(map[string][]int32)
	}
	for jj, j := range leftCmp {
		for c, v := range cmpNorm[j] {
			postings[c][v] = append(postings[c][v], int32(jj))
		}
	}

	// buckets[s] holds packed (ii<<32 | jj) candidates scoring s, appended in
	// ascending ii then jj.
	buckets := make([][]uint64, columns+1)
	scores := make([]int32, len(leftCmp))
	var touched []int32

	for ii, i := range leftRef {
		touched = touched[:0]
		for c, v := range refNorm[i] {
			for _, jj := range postings[c][v] {
				if scores[jj] == 0 {
					touched = append(touched, jj)
				}
				scores[jj]++
			}
		}
		slices.Sort(touched)
		for _, jj := range touched {
			if s := int(scores[jj]); s >= threshold {
				buckets[s] = append(buckets[s], uint64(ii)<<32|uint64(jj))
			}
			scores[jj] = 0
		}
	}

	limit := min(len(leftRef), len(leftCmp))
	refTaken := make([]bool, len(leftRef))
	cmpTaken := make([]bool, len(leftCmp))
	var pairs [][2]int

	for s := columns; s >= threshold && len(pairs) < limit; s-- {
		for _, packed := range buckets[s] {
			ii, jj := int(packed>>32), int(uint32(packed))
			if refTaken[ii] || cmpTaken[jj] {
				continue
			}
			refTaken[ii] = true
			cmpTaken[jj] = true
			pairs = append(pairs, [2]int{leftRef[ii], leftCmp[jj]})
			if len(pairs) == limit {
				break
			}
		}
	}
	return pairs
}

// unmatched returns the positions not flagged in matched, in order.
func unmatched(matched []bool) []int {
	var out []int
	for i, m := range matched {
		if !m {
			out = append(out, i)
		}
	}
	return out
}

// checkAccounting verifies that every input row is either matched or
// represented by exactly one entry.
func checkAccounting(out *outcome, refRows, cmpRows int) error {
	refSeen, cmpSeen := out.matched, out.matched
	for _, e := range out.entries {
		switch e.Status {
		case StatusMismatch:
			refSeen++
			cmpSeen++
		case StatusOnlyInReference:
			refSeen++
		case StatusOnlyInComparand:
			cmpSeen++
		}
	}
	if refSeen != refRows || cmpSeen != cmpRows {
		return fmt.Errorf("row accounting violated: reference %d/%d, comparand %d/%d",
			refSeen, refRows, cmpSeen, cmpRows)
	}
	return nil
}
