// Package coerce normalizes the Go values a storage layer hands back for
// integer and integer-array columns.
package coerce

import (
	"database/sql"
	"database/sql/driver"
	"reflect"
	"strconv"

	"github.com/lib/pq"
)

// Int reads v as an int64.
// ok is false when v is NULL-like or not an integer type.
func Int(v any) (n int64, ok bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), true
	case sql.NullInt64:
		if !t.Valid {
			return 0, false
		}

		return t.Int64, true
	case sql.NullInt32:
		if !t.Valid {
			return 0, false
		}

		return int64(t.Int32), true
	case sql.NullInt16:
		if !t.Valid {
			return 0, false
		}

		return int64(t.Int16), true
	case []byte:
		// NOTE: some drivers scan integers into map[string]any as text.
		i, err := strconv.ParseInt(string(t), 10, 64)
		return i, err == nil
	case driver.Valuer:
		val, err := t.Value()
		if err != nil {
			return 0, false
		}

		return Int(val)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0, false
		}

		return Int(rv.Elem().Interface())
	}

	return 0, false
}

// Float reads v as a float64, accepting any integer type Int accepts.
// ok is false when v is NULL-like or not a number.
func Float(v any) (f float64, ok bool) {
	switch t := v.(type) {
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case sql.NullFloat64:
		return t.Float64, t.Valid
	}

	if n, ok := Int(v); ok {
		return float64(n), true
	}

	return 0, false
}

// Ints reads v as a sequence of int64.
// A nil sequence yields an empty, non-nil slice.
// ok is false when v is not an integer sequence.
func Ints(v any) (ns []int64, ok bool) {
	switch t := v.(type) {
	case nil:
		return []int64{}, true
	case pq.Int64Array:
		return append([]int64{}, t...), true
	case []int64:
		return append([]int64{}, t...), true
	case pq.Int32Array:
		ns = make([]int64, len(t))
		for i, n := range t {
			ns[i] = int64(n)
		}

		return ns, true
	case []byte:
		var arr pq.Int64Array
		if err := arr.Scan(t); err != nil {
			return nil, false
		}

		return append([]int64{}, arr...), true
	case string:
		var arr pq.Int64Array
		if err := arr.Scan(t); err != nil {
			return nil, false
		}

		return append([]int64{}, arr...), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return []int64{}, true
		}

		return Ints(rv.Elem().Interface())
	}

	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	ns = make([]int64, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		n, ok := Int(rv.Index(i).Interface())
		if !ok {
			return nil, false
		}
		ns[i] = n
	}

	return ns, true
}

// IsNull asserts whether v represents a SQL NULL.
func IsNull(v any) bool {
	if v == nil {
		return true
	}

	if valuer, ok := v.(driver.Valuer); ok {
		val, err := valuer.Value()
		return err == nil && val == nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}

	return false
}

// Equal compares a and b, treating all integer types as the same type.
func Equal(a, b any) bool {
	an, aok := Int(a)
	bn, bok := Int(b)
	if aok && bok {
		return an == bn
	}

	if aok != bok {
		return false
	}

	if IsNull(a) || IsNull(b) {
		return false
	}

	if av, ok := a.(driver.Valuer); ok {
		if val, err := av.Value(); err == nil {
			a = val
		}
	}

	if bv, ok := b.(driver.Valuer); ok {
		if val, err := bv.Value(); err == nil {
			b = val
		}
	}

	return reflect.DeepEqual(a, b)
}
