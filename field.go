package enums

import (
	"fmt"

	"github.com/xy-planning-network/enums/filter"
)

// A Strategy decides how a field's method names are derived from its labels.
type Strategy int

const (
	// NamingNone names methods after the bare label: critical.
	NamingNone Strategy = iota

	// NamingPrefix puts the qualifier first: priority_critical.
	NamingPrefix

	// NamingSuffix puts the qualifier last: critical_priority.
	NamingSuffix
)

func (s Strategy) String() string {
	switch s {
	case NamingPrefix:
		return "prefix"
	case NamingSuffix:
		return "suffix"
	default:
		return "none"
	}
}

// A Naming disambiguates the method names of fields sharing labels on one entity.
// The zero-value Naming uses bare labels.
type Naming struct {
	Strategy  Strategy
	Qualifier string
}

// Prefix qualifies method names with q in front of the label.
// An empty q uses the column name.
func Prefix(q string) Naming { return Naming{Strategy: NamingPrefix, Qualifier: q} }

// Suffix qualifies method names with q after the label.
// An empty q uses the column name.
func Suffix(q string) Naming { return Naming{Strategy: NamingSuffix, Qualifier: q} }

func (n Naming) name(column, label string) string {
	q := n.Qualifier
	if q == "" {
		q = column
	}

	switch n.Strategy {
	case NamingPrefix:
		return q + "_" + label
	case NamingSuffix:
		return label + "_" + q
	default:
		return label
	}
}

// A Field binds a Definition to one integer column of an entity.
//
// A Field is configured as part of an Entity passed to NewRegistry.
// Fields returned from a *Registry are complete and read-only.
type Field struct {
	Column     string
	Definition *Definition
	Naming     Naming

	// Default overrides the default label of Definition for this column.
	Default string

	entity     string
	predicates []Predicate
}

// Entity returns the name of the entity the Field is registered on.
func (f *Field) Entity() string { return f.entity }

// MethodName returns the generated name for label under the Field's Naming.
func (f *Field) MethodName(label string) string { return f.Naming.name(f.Column, label) }

// DefaultLabel returns the label Init writes, if any.
func (f *Field) DefaultLabel() (string, bool) {
	if f.Default != "" {
		return f.Default, true
	}

	return f.Definition.Default()
}

// Predicates returns one Predicate per label, in declaration order.
func (f *Field) Predicates() []Predicate { return append([]Predicate{}, f.predicates...) }

// Code reads the code stored in rec.
// A column rec does not have returns ErrNotExist; a NULL column returns ErrMissingData.
func (f *Field) Code(rec Record) (int, error) {
	v, ok := rec.Column(f.Column)
	if !ok {
		return 0, fmt.Errorf("%w: column %q", ErrNotExist, f.Column)
	}

	code, ok := codeOf(v)
	if !ok {
		return 0, fmt.Errorf("%w: column %q holds %v", ErrMissingData, f.Column, v)
	}

	return code, nil
}

// Get returns the label for the code stored in rec.
// A stored code with no label returns ErrUnknownCode.
func (f *Field) Get(rec Record) (string, error) {
	code, err := f.Code(rec)
	if err != nil {
		return "", err
	}

	return f.Definition.LabelOf(code)
}

// Value returns the Value stored in rec.
func (f *Field) Value(rec Record) (Value, error) {
	code, err := f.Code(rec)
	if err != nil {
		return Value{}, err
	}

	return f.Definition.ValueOf(code)
}

// Is asserts whether rec holds label.
// An unknown label returns ErrUnknownLabel;
// a stored code with no label is simply not label.
func (f *Field) Is(rec Record, label string) (bool, error) {
	want, err := f.Definition.CodeOf(label)
	if err != nil {
		return false, err
	}

	got, err := f.Code(rec)
	if err != nil {
		return false, err
	}

	return got == want, nil
}

// Set writes the code of label into rec.
func (f *Field) Set(rec Record, label string) error {
	code, err := f.Definition.CodeOf(label)
	if err != nil {
		return err
	}

	return rec.SetColumn(f.Column, code)
}

// Assign writes v into rec, where v is anything Definition.Normalize accepts.
func (f *Field) Assign(rec Record, v any) error {
	code, err := f.Definition.Normalize(v)
	if err != nil {
		return err
	}

	return rec.SetColumn(f.Column, code)
}

// Init writes the default code into rec.
// Without a default, Init does nothing.
func (f *Field) Init(rec Record) error {
	label, ok := f.DefaultLabel()
	if !ok {
		return nil
	}

	return f.Set(rec, label)
}

// In returns a filter matching records whose column holds any of labels.
func (f *Field) In(labels ...string) (filter.Filter, error) {
	codes, err := f.Definition.CodesOf(labels...)
	if err != nil {
		return filter.Filter{}, err
	}

	vals := make([]any, len(codes))
	for i, c := range codes {
		vals[i] = c
	}

	return filter.In(f.Column, vals...), nil
}

// NotIn returns a filter matching records whose column holds none of labels.
func (f *Field) NotIn(labels ...string) (filter.Filter, error) {
	in, err := f.In(labels...)
	if err != nil {
		return filter.Filter{}, err
	}

	return filter.Not(in), nil
}

// Eq returns a filter matching records whose column holds label.
func (f *Field) Eq(label string) (filter.Filter, error) {
	code, err := f.Definition.CodeOf(label)
	if err != nil {
		return filter.Filter{}, err
	}

	return filter.Eq(f.Column, code), nil
}

// A Predicate is the set of helpers generated for one label of a Field:
// the query, the check and the mutation.
type Predicate struct {
	Name  string
	Label string
	Code  int

	field *Field
}

// Field returns the Field the Predicate was generated for.
func (p Predicate) Field() *Field { return p.field }

// Is asserts whether rec holds the Predicate's label.
func (p Predicate) Is(rec Record) (bool, error) {
	got, err := p.field.Code(rec)
	if err != nil {
		return false, err
	}

	return got == p.Code, nil
}

// Set writes the Predicate's code into rec.
func (p Predicate) Set(rec Record) error { return rec.SetColumn(p.field.Column, p.Code) }

// Filter matches records holding the Predicate's label.
func (p Predicate) Filter() filter.Filter { return filter.Eq(p.field.Column, p.Code) }
