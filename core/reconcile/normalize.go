package reconcile

import (
	"regexp"
	"strconv"
	"strings"

	"table-reconciler/core/dataset"

	"github.com/shopspring/decimal"
)

// NullToken is the canonical form of every missing value.
const NullToken = "__NULL__"

// float64 spans roughly 1e-324 .. 1e308; numeric text outside that range is
// treated the way a binary float parser would (overflow keeps the text,
// underflow reads as zero). Exponents beyond maxExponent are settled by
// their sign before any decimal parsing.
const (
	maxMagnitude = 309
	minMagnitude = -324
	maxExponent  = 100000
)

var (
	dateOnlyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	numericPattern  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

// Normalize returns the canonical comparison string for a single cell.
// It never fails: anything that is not null-like, date-like or numeric is
// returned as its trimmed text.
func Normalize(v dataset.Value) string {
	if v.IsNull() {
		return NullToken
	}
	return normalizeText(v.String())
}

// NormalizeColumn normalizes a whole column at once. Its output is identical
// to calling Normalize on every element; it is faster on real data because
// columns repeat values heavily and each distinct raw text is canonicalized
// only once.
func NormalizeColumn(values []dataset.Value) []string {
	out := make([]string, len(values))
	seen := make(map[string]string)
	for i, v := range values {
		if v.IsNull() {
			out[i] = NullToken
			continue
		}
		raw := v.String()
		if norm, ok := seen[raw]; ok {
			out[i] = norm
			continue
		}
		norm := normalizeText(raw)
		seen[raw] = norm
		out[i] = norm
	}
	return out
}

func normalizeText(raw string) string {
	s := strings.TrimSpace(raw)
	if dataset.IsNullLiteral(s) {
		return NullToken
	}

	s = dataset.StripMidnight(s)
	if dataset.IsNullLiteral(s) {
		return NullToken
	}

	if dateOnlyPattern.MatchString(s) {
		return s
	}

	if numericPattern.MatchString(s) {
		if norm, ok := canonicalNumber(s); ok {
			return norm
		}
	}

	return s
}

// canonicalNumber renders numeric text as its shortest exact decimal: whole
// numbers lose any fractional zeros, fractions lose trailing zeros.
func canonicalNumber(s string) (string, bool) {
	if mantissa, exp, ok := strings.Cut(strings.ToLower(s), "e"); ok {
		e, err := strconv.ParseInt(exp, 10, 64)
		if err != nil || e > maxExponent || e < -maxExponent {
			if strings.Trim(mantissa, "+-0.") == "" || strings.HasPrefix(exp, "-") {
				return "0", true
			}
			return "", false
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", false
	}
	if d.IsZero() {
		return "0", true
	}

	digits := len(strings.TrimPrefix(d.Coefficient().String(), "-"))
	magnitude := digits + int(d.Exponent())
	switch {
	case magnitude > maxMagnitude:
		return "", false
	case magnitude < minMagnitude:
		return "0", true
	}
	return d.String(), true
}

// normalizeFrame normalizes the given columns of ds column by column and
// returns the row-major tuples in column order.
func normalizeFrame(ds *dataset.Dataset, columns []string) [][]string {
	tuples := make([][]string, ds.Len())
	for i := range tuples {
		tuples[i] = make([]string, len(columns))
	}
	for c, col := range columns {
		for i, norm := range NormalizeColumn(ds.Column(col)) {
			tuples[i][c] = norm
		}
	}
	return tuples
}
