package dataset

import (
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Of converts a loosely typed Go or driver value into the closed Value sum
// type using explicit type switching. Pointers are dereferenced, driver
// valuers are unwrapped, and anything unrecognised falls back to its
// formatted text.
func Of(val any) Value {
	switch v := val.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case bool:
		return Bool(v)
	case int:
		return Int(int64(v))
	case int64:
		return Int(v)
	case int32:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case uint:
		return fromUint(uint64(v))
	case uint64:
		return fromUint(v)
	case uint32:
		return Int(int64(v))
	case uint16:
		return Int(int64(v))
	case uint8:
		return Int(int64(v))
	case float64:
		return Float(v)
	case float32:
		return Float(float64(v))
	case decimal.Decimal:
		return Decimal(v)
	case string:
		return Text(v)
	case []byte:
		if v == nil {
			return Null()
		}
		return Text(string(v))
	case time.Time:
		if v.IsZero() {
			return Null()
		}
		return DateTime(v)
	case driver.Valuer:
		inner, err := v.Value()
		if err != nil {
			return Text(fmt.Sprintf("%v", v))
		}
		return Of(inner)
	}

	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Null()
		}
		return Of(rv.Elem().Interface())
	}
	if s, ok := val.(fmt.Stringer); ok {
		return Text(s.String())
	}
	return Text(fmt.Sprintf("%v", val))
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Text(strconv.FormatUint(u, 10))
	}
	return Int(int64(u))
}
