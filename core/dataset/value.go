package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies which variant of the cell sum type a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindDate
	KindTime
	KindDateTime
)

var kindNames = [...]string{"null", "bool", "int", "float", "text", "date", "time", "datetime"}

// String returns the lowercase kind name used in persisted payloads.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func parseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return KindNull, false
}

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// nullLiterals are the textual spellings treated as a missing value.
var nullLiterals = map[string]struct{}{
	"":     {},
	"None": {},
	"nan":  {},
	"NaT":  {},
	"NaN":  {},
	"<NA>": {},
}

var midnightSuffix = regexp.MustCompile(`\s+00:00:00(\.\d+)?$`)

// IsNullLiteral reports whether trimmed text spells a missing value.
// The comparison is case-sensitive.
func IsNullLiteral(s string) bool {
	_, ok := nullLiterals[s]
	return ok
}

// StripMidnight removes trailing " 00:00:00[.ffffff]" suffixes so that a
// datetime at exact midnight reads like a plain date.
func StripMidnight(s string) string {
	for {
		loc := midnightSuffix.FindStringIndex(s)
		if loc == nil {
			return s
		}
		s = s[:loc[0]]
	}
}

// Value is a single scalar cell. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string // text payload, or exact decimal text for KindFloat
	t    time.Time
}

// Null returns the missing value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a binary float. NaN is stored as null.
func Float(f float64) Value {
	if math.IsNaN(f) {
		return Null()
	}
	return Value{kind: KindFloat, f: f}
}

// Decimal wraps an exact decimal without going through float64.
func Decimal(d decimal.Decimal) Value {
	return Value{kind: KindFloat, f: d.InexactFloat64(), s: d.String()}
}

// Text wraps a string verbatim. Null-ish spellings are kept as text; the
// normalizer is responsible for unifying them.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Date wraps the calendar date of t.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// TimeOfDay wraps the wall-clock time of t.
func TimeOfDay(t time.Time) Value {
	return Value{kind: KindTime, t: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

// DateTime wraps a timestamp. The location is kept as given.
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, t: t} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the missing value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// String renders the canonical raw text of v. Null renders as "".
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		if v.s != "" {
			return v.s
		}
		switch {
		case math.IsInf(v.f, 1):
			return "inf"
		case math.IsInf(v.f, -1):
			return "-inf"
		}
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindText:
		return v.s
	case KindDate:
		return v.t.Format(dateLayout)
	case KindTime:
		return v.t.Format(timeLayout) + fraction(v.t)
	case KindDateTime:
		return v.t.Format(dateTimeLayout) + fraction(v.t)
	}
	return ""
}

func fraction(t time.Time) string {
	if t.Nanosecond() == 0 {
		return ""
	}
	return fmt.Sprintf(".%06d", t.Nanosecond()/int(time.Microsecond))
}

// Display renders v for a human-facing report: nulls and null-ish text
// become "", and a midnight time suffix is dropped.
func (v Value) Display() string {
	if v.IsNull() {
		return ""
	}
	s := strings.TrimSpace(v.String())
	if IsNullLiteral(s) {
		return ""
	}
	return StripMidnight(s)
}

// Equal reports whether a and b hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindDate, KindTime, KindDateTime:
		return v.t.Equal(o.t)
	}
	return v.String() == o.String()
}

type wireValue struct {
	Kind  string `json:"k"`
	Value string `json:"v,omitempty"`
}

// MarshalJSON encodes v as {"k": kind, "v": text} so that persisted
// datasets round-trip without losing their variant.
func (v Value) MarshalJSON() ([]byte, error) {
	w := wireValue{Kind: v.kind.String()}
	switch v.kind {
	case KindNull:
	case KindDateTime:
		w.Value = v.t.Format(time.RFC3339Nano)
	default:
		w.Value = v.String()
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, ok := parseKind(w.Kind)
	if !ok {
		return fmt.Errorf("unknown value kind %q", w.Kind)
	}

	switch kind {
	case KindNull:
		*v = Null()
	case KindBool:
		*v = Bool(w.Value == "True")
	case KindInt:
		i, err := strconv.ParseInt(w.Value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid int value %q: %w", w.Value, err)
		}
		*v = Int(i)
	case KindFloat:
		d, err := decimal.NewFromString(w.Value)
		if err != nil {
			f, ferr := strconv.ParseFloat(w.Value, 64)
			if ferr != nil {
				return fmt.Errorf("invalid float value %q: %w", w.Value, err)
			}
			*v = Float(f)
			return nil
		}
		*v = Decimal(d)
	case KindText:
		*v = Text(w.Value)
	case KindDate:
		t, err := time.Parse(dateLayout, w.Value)
		if err != nil {
			return fmt.Errorf("invalid date value %q: %w", w.Value, err)
		}
		*v = Date(t)
	case KindTime:
		t, err := time.Parse(timeLayout, strings.SplitN(w.Value, ".", 2)[0])
		if err != nil {
			return fmt.Errorf("invalid time value %q: %w", w.Value, err)
		}
		if parts := strings.SplitN(w.Value, ".", 2); len(parts) == 2 {
			micros, _ := strconv.Atoi(parts[1])
			t = t.Add(time.Duration(micros) * time.Microsecond)
		}
		*v = TimeOfDay(t)
	case KindDateTime:
		t, err := time.Parse(time.RFC3339Nano, w.Value)
		if err != nil {
			return fmt.Errorf("invalid datetime value %q: %w", w.Value, err)
		}
		*v = DateTime(t)
	}
	return nil
}
