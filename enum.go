package enums

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// Implementing a new Enumerable or adding a new constant value ought to include updating the database with the same
// types and values.
type Enumerable interface {
	String() string
	Valid() error
}

var (
	_ Enumerable     = Value{}
	_ driver.Valuer  = Value{}
	_ json.Marshaler = Value{}
)

// A Value is one label of a Definition.
// The zero-value Value belongs to no Definition and is not valid.
type Value struct {
	def  *Definition
	code int
}

// Code returns the integer stored for the Value.
func (v Value) Code() int { return v.code }

// Definition returns the Definition the Value belongs to.
func (v Value) Definition() *Definition { return v.def }

// Is asserts whether v is label.
func (v Value) Is(label string) bool {
	if v.def == nil {
		return false
	}

	code, err := v.def.CodeOf(label)
	return err == nil && code == v.code
}

// String returns the label of the Value, or the empty string if v is not valid.
//
// String implements fmt.Stringer.
func (v Value) String() string {
	if v.def == nil {
		return ""
	}

	label, _ := v.def.LabelOf(v.code)
	return label
}

// Valid returns ErrNotValid for the zero-value Value.
func (v Value) Valid() error {
	if v.def == nil {
		return fmt.Errorf("%w: value has no definition", ErrNotValid)
	}

	if !v.def.Valid(v.code) {
		return fmt.Errorf("%w: %d in %s", ErrUnknownCode, v.code, v.def.Name())
	}

	return nil
}

// Value returns the code as an int64, or NULL for the zero-value Value.
//
// Value implements driver.Valuer.
func (v Value) Value() (driver.Value, error) {
	if v.def == nil {
		return nil, nil
	}

	return int64(v.code), nil
}

// MarshalJSON encodes the Value as its label.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.def == nil {
		return []byte("null"), nil
	}

	return json.Marshal(v.String())
}
