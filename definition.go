package enums

import (
	"fmt"
	"strconv"
	"strings"
)

// A Label pairs a symbolic name with the integer code persisted for it.
type Label struct {
	Name string
	Code int
}

// A Definition is a closed, ordered set of labels and the codes stored for them.
//
// A Definition is immutable once returned from Define
// and safe to share between goroutines.
type Definition struct {
	name   string
	labels []Label
	byName map[string]int
	byCode map[int]string
	def    string
}

// A DefinitionOption configures a Definition during Define.
type DefinitionOption func(*Definition)

// WithDefault sets the label new records take when a field using the Definition is initialized.
func WithDefault(label string) DefinitionOption {
	return func(d *Definition) {
		d.def = label
	}
}

// Define constructs a Definition called name from labels, preserving their order.
//
// The mapping must be bijective:
// a code repeated across labels returns ErrDuplicateCode,
// a repeated label returns ErrDuplicateLabel.
// Codes must be non-negative and labels non-empty, otherwise ErrNotValid returns.
// A default label not among labels returns ErrUnknownLabel.
func Define(name string, labels []Label, opts ...DefinitionOption) (*Definition, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: definition name is empty", ErrMissingData)
	}

	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: definition %q has no labels", ErrMissingData, name)
	}

	d := &Definition{
		name:   name,
		labels: make([]Label, 0, len(labels)),
		byName: make(map[string]int, len(labels)),
		byCode: make(map[int]string, len(labels)),
	}

	for _, l := range labels {
		if l.Name == "" {
			return nil, fmt.Errorf("%w: definition %q has an empty label", ErrNotValid, name)
		}

		if l.Code < 0 {
			return nil, fmt.Errorf("%w: definition %q label %q has negative code %d", ErrNotValid, name, l.Name, l.Code)
		}

		if _, ok := d.byName[l.Name]; ok {
			return nil, fmt.Errorf("%w: definition %q repeats label %q", ErrDuplicateLabel, name, l.Name)
		}

		if prev, ok := d.byCode[l.Code]; ok {
			return nil, fmt.Errorf("%w: definition %q maps %q and %q to %d", ErrDuplicateCode, name, prev, l.Name, l.Code)
		}

		d.byName[l.Name] = l.Code
		d.byCode[l.Code] = l.Name
		d.labels = append(d.labels, l)
	}

	for _, opt := range opts {
		opt(d)
	}

	if _, ok := d.byName[d.def]; d.def != "" && !ok {
		return nil, fmt.Errorf("%w: definition %q default %q", ErrUnknownLabel, name, d.def)
	}

	return d, nil
}

// MustDefine is Define but panics on error.
// Use it for package-level Definitions.
func MustDefine(name string, labels []Label, opts ...DefinitionOption) *Definition {
	d, err := Define(name, labels, opts...)
	if err != nil {
		panic(err)
	}

	return d
}

// Sequential defines name with labels coded 0 through len(labels)-1, in order.
func Sequential(name string, labels ...string) (*Definition, error) {
	ls := make([]Label, len(labels))
	for i, l := range labels {
		ls[i] = Label{Name: l, Code: i}
	}

	return Define(name, ls)
}

// Name returns the name of the Definition.
func (d *Definition) Name() string { return d.name }

// CodeOf returns the code stored for label.
// If label is not part of the Definition, ErrUnknownLabel returns.
func (d *Definition) CodeOf(label string) (int, error) {
	code, ok := d.byName[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q in %s", ErrUnknownLabel, label, d.name)
	}

	return code, nil
}

// LabelOf returns the label for the stored code.
// If no label maps to code, ErrUnknownCode returns;
// LabelOf never guesses at or coerces a code.
func (d *Definition) LabelOf(code int) (string, error) {
	label, ok := d.byCode[code]
	if !ok {
		return "", fmt.Errorf("%w: %d in %s", ErrUnknownCode, code, d.name)
	}

	return label, nil
}

// Has asserts whether label is part of the Definition.
func (d *Definition) Has(label string) bool {
	_, ok := d.byName[label]
	return ok
}

// Valid asserts whether code maps to a label.
func (d *Definition) Valid(code int) bool {
	_, ok := d.byCode[code]
	return ok
}

// Len returns the number of labels.
func (d *Definition) Len() int { return len(d.labels) }

// Labels returns the labels in declaration order.
func (d *Definition) Labels() []string {
	ls := make([]string, len(d.labels))
	for i, l := range d.labels {
		ls[i] = l.Name
	}

	return ls
}

// Codes returns the codes in declaration order.
func (d *Definition) Codes() []int {
	cs := make([]int, len(d.labels))
	for i, l := range d.labels {
		cs[i] = l.Code
	}

	return cs
}

// Pairs returns a copy of the label-code pairs in declaration order.
func (d *Definition) Pairs() []Label { return append([]Label{}, d.labels...) }

// Default returns the default label, if one is set.
func (d *Definition) Default() (string, bool) { return d.def, d.def != "" }

// CodesOf translates labels into codes, in order.
// The first unknown label stops translation and returns ErrUnknownLabel.
func (d *Definition) CodesOf(labels ...string) ([]int, error) {
	codes := make([]int, len(labels))
	for i, l := range labels {
		code, err := d.CodeOf(l)
		if err != nil {
			return nil, err
		}
		codes[i] = code
	}

	return codes, nil
}

// Normalize resolves v into a code.
// v may be a label, a decimal string of a code, or an integer code.
// Normalize returns ErrUnknownLabel or ErrUnknownCode when v resolves to nothing in the Definition
// and ErrNotValid for any other type.
func (d *Definition) Normalize(v any) (int, error) {
	switch t := v.(type) {
	case Value:
		if t.def == nil {
			return 0, fmt.Errorf("%w: value has no definition", ErrNotValid)
		}

		if t.def != d {
			return 0, fmt.Errorf("%w: value of %s used with %s", ErrNotValid, t.def.Name(), d.name)
		}

		return t.code, nil

	case string:
		if code, ok := d.byName[t]; ok {
			return code, nil
		}

		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, fmt.Errorf("%w: %q in %s", ErrUnknownLabel, t, d.name)
		}

		if !d.Valid(n) {
			return 0, fmt.Errorf("%w: %d in %s", ErrUnknownCode, n, d.name)
		}

		return n, nil

	case fmt.Stringer:
		return d.Normalize(t.String())
	}

	n, ok := codeOf(v)
	if !ok {
		return 0, fmt.Errorf("%w: cannot resolve %T in %s", ErrNotValid, v, d.name)
	}

	if !d.Valid(n) {
		return 0, fmt.Errorf("%w: %d in %s", ErrUnknownCode, n, d.name)
	}

	return n, nil
}

// Value returns the Value for label.
func (d *Definition) Value(label string) (Value, error) {
	code, err := d.CodeOf(label)
	if err != nil {
		return Value{}, err
	}

	return Value{def: d, code: code}, nil
}

// ValueOf returns the Value for code.
func (d *Definition) ValueOf(code int) (Value, error) {
	if !d.Valid(code) {
		return Value{}, fmt.Errorf("%w: %d in %s", ErrUnknownCode, code, d.name)
	}

	return Value{def: d, code: code}, nil
}

// equal asserts whether d and other declare the same name, pairs and default.
func (d *Definition) equal(other *Definition) bool {
	if d == other {
		return true
	}

	if d.name != other.name || d.def != other.def || len(d.labels) != len(other.labels) {
		return false
	}

	for i := range d.labels {
		if d.labels[i] != other.labels[i] {
			return false
		}
	}

	return true
}
