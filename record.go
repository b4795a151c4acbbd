package enums

import (
	"database/sql"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/xy-planning-network/enums/filter"
	"github.com/xy-planning-network/enums/internal/coerce"
)

// A Record is a row of an entity as seen by this package:
// a set of named columns that can be read and written.
//
// The storage layer owns the lifecycle of a Record.
// Fields read a single column off it and write that column back;
// they never retain it.
type Record interface {
	filter.Getter
	SetColumn(name string, value any) error
}

var (
	_ Record = Row{}
	_ Record = (*structRecord)(nil)
)

// A Row is a Record backed by a map of column name to value,
// the shape GORM scans into with Find(&[]map[string]any{}).
type Row map[string]any

// Column returns the value stored for name.
func (r Row) Column(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// SetColumn stores value for name.
func (r Row) SetColumn(name string, value any) error {
	if r == nil {
		return fmt.Errorf("%w: nil Row", ErrUnaddressable)
	}

	r[name] = value
	return nil
}

// Struct adapts ptr, a pointer to a struct, into a Record.
// Columns are matched on the "db" struct tag, falling back to the column named in a "gorm" tag.
// Fields without either are not columns.
//
// If ptr is not a non-nil pointer to a struct, Struct returns ErrUnaddressable.
func Struct(ptr any) (Record, error) {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T must be a non-nil pointer to a struct", ErrUnaddressable, ptr)
	}

	elem := rv.Elem()
	rec := &structRecord{v: elem, cols: make(map[string][]int)}
	for _, f := range reflect.VisibleFields(elem.Type()) {
		if f.Anonymous || !f.IsExported() {
			continue
		}

		name := columnName(f)
		if name == "" {
			continue
		}

		// NOTE: the shallowest field wins, matching Go's own promotion rules.
		if prev, ok := rec.cols[name]; ok && len(prev) <= len(f.Index) {
			continue
		}
		rec.cols[name] = f.Index
	}

	return rec, nil
}

// MustStruct is Struct but panics on error.
func MustStruct(ptr any) Record {
	rec, err := Struct(ptr)
	if err != nil {
		panic(err)
	}

	return rec
}

func columnName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup("db"); ok {
		name := strings.SplitN(tag, ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	}

	for _, part := range strings.Split(f.Tag.Get("gorm"), ";") {
		if k, v, ok := strings.Cut(part, ":"); ok && strings.TrimSpace(k) == "column" {
			return strings.TrimSpace(v)
		}
	}

	return ""
}

type structRecord struct {
	v    reflect.Value
	cols map[string][]int
}

func (s *structRecord) Column(name string) (any, bool) {
	idx, ok := s.cols[name]
	if !ok {
		return nil, false
	}

	return s.v.FieldByIndex(idx).Interface(), true
}

func (s *structRecord) SetColumn(name string, value any) error {
	idx, ok := s.cols[name]
	if !ok {
		return fmt.Errorf("%w: column %q on %s", ErrNotExist, name, s.v.Type())
	}

	if err := assign(s.v.FieldByIndex(idx), value); err != nil {
		return fmt.Errorf("column %q on %s: %w", name, s.v.Type(), err)
	}

	return nil
}

var nullInt64Type = reflect.TypeOf(sql.NullInt64{})

// assign writes v into dst, converting between integer types and integer slice types.
func assign(dst reflect.Value, v any) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	src := reflect.ValueOf(v)
	switch {
	case src.Type().AssignableTo(dst.Type()):
		dst.Set(src)
		return nil

	case dst.Type() == nullInt64Type:
		n, ok := coerce.Int(v)
		dst.Set(reflect.ValueOf(sql.NullInt64{Int64: n, Valid: ok}))
		return nil

	case dst.Kind() == reflect.Pointer:
		elem := reflect.New(dst.Type().Elem())
		if err := assign(elem.Elem(), v); err != nil {
			return err
		}
		dst.Set(elem)
		return nil

	case isInt(dst.Kind()) && isInt(src.Kind()):
		dst.Set(src.Convert(dst.Type()))
		return nil

	case dst.Kind() == reflect.Slice && (src.Kind() == reflect.Slice || src.Kind() == reflect.Array):
		out := reflect.MakeSlice(dst.Type(), src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			if err := assign(out.Index(i), src.Index(i).Interface()); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	}

	return fmt.Errorf("%w: cannot assign %T to %s", ErrNotValid, v, dst.Type())
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// codeOf reads v as a code that fits an int.
func codeOf(v any) (int, bool) {
	n, ok := coerce.Int(v)
	if !ok || n < math.MinInt || n > math.MaxInt {
		return 0, false
	}

	return int(n), true
}
