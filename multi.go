package enums

import (
	"fmt"

	"github.com/lib/pq"
	"github.com/xy-planning-network/enums/filter"
	"github.com/xy-planning-network/enums/internal/coerce"
)

// A MultiField binds a Definition to a column holding an ordered sequence of codes,
// such as a PostgreSQL integer[].
//
// Storage does not enforce uniqueness;
// Add and Remove keep the sequence free of duplicates they would introduce
// and preserve the relative order of everything else.
// Every mutation writes a new pq.Int64Array back to the record;
// the slice previously stored there is never modified in place.
type MultiField struct {
	Column     string
	Definition *Definition
	Naming     Naming

	// Default is the sequence of labels new records start with.
	Default []string

	entity string
}

// Entity returns the name of the entity the MultiField is registered on.
func (m *MultiField) Entity() string { return m.entity }

// MethodName returns the generated name for label under the MultiField's Naming.
func (m *MultiField) MethodName(label string) string { return m.Naming.name(m.Column, label) }

// DefaultCodes returns the codes of Default, in order.
func (m *MultiField) DefaultCodes() ([]int, error) { return m.Definition.CodesOf(m.Default...) }

// Codes reads the sequence of codes stored in rec.
// A NULL column reads as an empty sequence.
func (m *MultiField) Codes(rec Record) ([]int, error) {
	v, ok := rec.Column(m.Column)
	if !ok {
		return nil, fmt.Errorf("%w: column %q", ErrNotExist, m.Column)
	}

	ns, ok := coerce.Ints(v)
	if !ok {
		return nil, fmt.Errorf("%w: column %q holds %T, not a sequence", ErrNotValid, m.Column, v)
	}

	codes := make([]int, len(ns))
	for i, n := range ns {
		codes[i] = int(n)
	}

	return codes, nil
}

// Labels returns the labels for the codes stored in rec, in stored order.
// A stored code with no label returns ErrUnknownCode.
func (m *MultiField) Labels(rec Record) ([]string, error) {
	codes, err := m.Codes(rec)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(codes))
	for i, c := range codes {
		if labels[i], err = m.Definition.LabelOf(c); err != nil {
			return nil, err
		}
	}

	return labels, nil
}

// Has asserts whether the sequence in rec includes label.
func (m *MultiField) Has(rec Record, label string) (bool, error) {
	code, err := m.Definition.CodeOf(label)
	if err != nil {
		return false, err
	}

	codes, err := m.Codes(rec)
	if err != nil {
		return false, err
	}

	for _, c := range codes {
		if c == code {
			return true, nil
		}
	}

	return false, nil
}

// Add appends label to the sequence in rec unless it is already present.
func (m *MultiField) Add(rec Record, label string) error {
	code, err := m.Definition.CodeOf(label)
	if err != nil {
		return err
	}

	codes, err := m.Codes(rec)
	if err != nil {
		return err
	}

	for _, c := range codes {
		if c == code {
			return nil
		}
	}

	return m.write(rec, append(codes, code))
}

// Remove deletes every occurrence of label from the sequence in rec.
// Removing an absent label is not an error and leaves rec untouched.
func (m *MultiField) Remove(rec Record, label string) error {
	code, err := m.Definition.CodeOf(label)
	if err != nil {
		return err
	}

	codes, err := m.Codes(rec)
	if err != nil {
		return err
	}

	kept := make([]int, 0, len(codes))
	for _, c := range codes {
		if c != code {
			kept = append(kept, c)
		}
	}

	if len(kept) == len(codes) {
		return nil
	}

	return m.write(rec, kept)
}

// Replace overwrites the sequence in rec with labels, dropping repeats.
func (m *MultiField) Replace(rec Record, labels ...string) error {
	codes, err := m.Definition.CodesOf(labels...)
	if err != nil {
		return err
	}

	seen := make(map[int]bool, len(codes))
	uniq := make([]int, 0, len(codes))
	for _, c := range codes {
		if !seen[c] {
			seen[c] = true
			uniq = append(uniq, c)
		}
	}

	return m.write(rec, uniq)
}

// Init writes the default sequence into rec.
// Without a Default, Init writes an empty sequence.
func (m *MultiField) Init(rec Record) error {
	codes, err := m.DefaultCodes()
	if err != nil {
		return err
	}

	return m.write(rec, codes)
}

// Containing returns a filter matching records whose sequence includes label.
func (m *MultiField) Containing(label string) (filter.Filter, error) {
	code, err := m.Definition.CodeOf(label)
	if err != nil {
		return filter.Filter{}, err
	}

	return filter.Contains(m.Column, code), nil
}

// ContainingAny returns a filter matching records whose sequence includes at least one of labels.
func (m *MultiField) ContainingAny(labels ...string) (filter.Filter, error) {
	fs := make([]filter.Filter, len(labels))
	for i, l := range labels {
		f, err := m.Containing(l)
		if err != nil {
			return filter.Filter{}, err
		}
		fs[i] = f
	}

	return filter.Or(fs...), nil
}

func (m *MultiField) write(rec Record, codes []int) error {
	arr := make(pq.Int64Array, len(codes))
	for i, c := range codes {
		arr[i] = int64(c)
	}

	return rec.SetColumn(m.Column, arr)
}
