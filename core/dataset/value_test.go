package dataset

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_String(t *testing.T) {
	ts := time.Date(2024, 12, 1, 10, 20, 30, 123000000, time.UTC)
	midnight := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"null", Null(), ""},
		{"true", Bool(true), "True"},
		{"false", Bool(false), "False"},
		{"int", Int(-42), "-42"},
		{"whole float", Float(1750), "1750"},
		{"fractional float", Float(1750.5), "1750.5"},
		{"positive infinity", Float(math.Inf(1)), "inf"},
		{"decimal trims trailing zeros", Decimal(decimal.RequireFromString("45000.50")), "45000.5"},
		{"text verbatim", Text("  padded "), "  padded "},
		{"date", Date(ts), "2024-12-01"},
		{"time with fraction", TimeOfDay(ts), "10:20:30.123000"},
		{"datetime with fraction", DateTime(ts), "2024-12-01 10:20:30.123000"},
		{"datetime at midnight", DateTime(midnight), "2025-11-01 00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestFloat_NaNIsNull(t *testing.T) {
	assert.True(t, Float(math.NaN()).IsNull())
}

func TestValue_Display(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"null", Null(), ""},
		{"null literal", Text("NaT"), ""},
		{"none literal padded", Text("  None "), ""},
		{"midnight stripped", Text("2025-11-01 00:00:00.000000"), "2025-11-01"},
		{"non-midnight kept", Text("2025-11-01 10:00:00"), "2025-11-01 10:00:00"},
		{"trimmed", Text(" India "), "India"},
		{"number", Float(4.5), "4.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Display())
		})
	}
}

func TestStripMidnight(t *testing.T) {
	assert.Equal(t, "2025-11-01", StripMidnight("2025-11-01 00:00:00"))
	assert.Equal(t, "2025-11-01", StripMidnight("2025-11-01 00:00:00 00:00:00"))
	assert.Equal(t, "00:00:00", StripMidnight("00:00:00"))
	assert.Equal(t, "2025-11-01T00:00:00", StripMidnight("2025-11-01T00:00:00"))
}

func TestIsNullLiteral(t *testing.T) {
	for _, s := range []string{"", "None", "nan", "NaT", "NaN", "<NA>"} {
		assert.True(t, IsNullLiteral(s), s)
	}
	for _, s := range []string{"NULL", "none", "NA", "0"} {
		assert.False(t, IsNullLiteral(s), s)
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	ts := time.Date(2024, 12, 1, 10, 20, 30, 123456000, time.UTC)
	values := []Value{
		Null(),
		Bool(true),
		Int(101),
		Float(0.1),
		Float(math.Inf(-1)),
		Decimal(decimal.RequireFromString("60000.75")),
		Text("Arjun"),
		Date(ts),
		TimeOfDay(ts),
		DateTime(ts),
	}

	data, err := json.Marshal(values)
	require.NoError(t, err)

	var decoded []Value
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, len(values))

	for i := range values {
		assert.Equal(t, values[i].Kind(), decoded[i].Kind(), "kind of %d", i)
		assert.Equal(t, values[i].String(), decoded[i].String(), "text of %d", i)
	}
}

func TestValue_UnmarshalUnknownKind(t *testing.T) {
	var v Value
	err := json.Unmarshal([]byte(`{"k":"blob","v":"x"}`), &v)
	assert.Error(t, err)
}
