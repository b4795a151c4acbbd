/*
Package filter builds storage-agnostic filter expressions over record columns.

A [Filter] is an immutable tree of operations:
equality, ordering, set membership, array containment, NULL checks, negation, conjunction and disjunction.
Nothing here executes a query.
A storage layer walks the tree using [Filter.Op], [Filter.Column], [Filter.Values] and [Filter.Children]
and translates each node into its own query language;
package postgres does so for GORM.

Where a store has no native equivalent for an operation, notably [Contains],
[Filter.Match] evaluates the same tree against a record in memory.
Match follows SQL's three-valued logic: a comparison against a NULL or absent column is unknown,
and an unknown result never matches, negated or not.
*/
package filter

import (
	"fmt"
	"strings"

	"github.com/xy-planning-network/enums/internal/coerce"
)

// An Op is the kind of operation a Filter node performs.
type Op int

const (
	OpTrue Op = iota
	OpEq
	OpGt
	OpIn
	OpContains
	OpIsNull
	OpNot
	OpAnd
	OpOr
)

func (op Op) String() string {
	switch op {
	case OpTrue:
		return "TRUE"
	case OpEq:
		return "="
	case OpGt:
		return ">"
	case OpIn:
		return "IN"
	case OpContains:
		return "CONTAINS"
	case OpIsNull:
		return "IS NULL"
	case OpNot:
		return "NOT"
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		return "UNKNOWN"
	}
}

// A Getter reads the value of a column off a record.
// ok is false when the record has no such column.
type Getter interface {
	Column(name string) (value any, ok bool)
}

// A Filter is a predicate over the columns of a record.
// The zero-value Filter matches every record.
type Filter struct {
	op       Op
	column   string
	values   []any
	children []Filter
}

// True returns a Filter matching every record.
func True() Filter { return Filter{op: OpTrue} }

// Eq returns a Filter matching records where column equals value.
// A nil value is equivalent to IsNull(column).
func Eq(column string, value any) Filter {
	if value == nil {
		return IsNull(column)
	}

	return Filter{op: OpEq, column: column, values: []any{value}}
}

// Gt returns a Filter matching records where column is greater than value.
// Gt compares numbers only.
func Gt(column string, value any) Filter {
	return Filter{op: OpGt, column: column, values: []any{value}}
}

// In returns a Filter matching records where column is one of values.
// With no values, In matches no record, and neither does its negation.
func In(column string, values ...any) Filter {
	return Filter{op: OpIn, column: column, values: append([]any{}, values...)}
}

// Contains returns a Filter matching records where the sequence stored in column
// includes value.
func Contains(column string, value any) Filter {
	return Filter{op: OpContains, column: column, values: []any{value}}
}

// IsNull returns a Filter matching records where column is NULL or absent.
func IsNull(column string) Filter { return Filter{op: OpIsNull, column: column} }

// Not negates f.
// Double negation collapses.
func Not(f Filter) Filter {
	if f.op == OpNot {
		return f.children[0]
	}

	return Filter{op: OpNot, children: []Filter{f}}
}

// And returns a Filter matching records every one of fs matches.
// With no filters, And matches every record; with one, And returns it.
func And(fs ...Filter) Filter { return group(OpAnd, fs) }

// Or returns a Filter matching records any one of fs matches.
// With no filters, Or matches no record; with one, Or returns it.
func Or(fs ...Filter) Filter { return group(OpOr, fs) }

func group(op Op, fs []Filter) Filter {
	if len(fs) == 1 {
		return fs[0]
	}

	children := make([]Filter, 0, len(fs))
	for _, f := range fs {
		// NOTE: flatten (a AND (b AND c)) into (a AND b AND c)
		if f.op == op {
			children = append(children, f.children...)
			continue
		}
		children = append(children, f)
	}

	return Filter{op: op, children: children}
}

// Op returns the operation f performs.
func (f Filter) Op() Op { return f.op }

// Column returns the column f tests.
// Column is empty for OpTrue, OpNot, OpAnd and OpOr.
func (f Filter) Column() string { return f.column }

// Values returns a copy of the operands f compares the column against.
func (f Filter) Values() []any { return append([]any{}, f.values...) }

// Children returns a copy of the filters f combines.
func (f Filter) Children() []Filter { return append([]Filter{}, f.children...) }

// Columns lists every column f references, in the order they first appear.
func (f Filter) Columns() []string {
	var cols []string
	seen := make(map[string]bool)
	var walk func(Filter)
	walk = func(f Filter) {
		if f.column != "" && !seen[f.column] {
			seen[f.column] = true
			cols = append(cols, f.column)
		}

		for _, c := range f.children {
			walk(c)
		}
	}
	walk(f)

	return cols
}

// Match evaluates f against rec.
// Match returns an error when a Contains operation meets a column
// that does not hold a sequence of integers, or a Gt operation meets a value that is not a number.
func (f Filter) Match(rec Getter) (bool, error) {
	t, err := f.eval(rec)
	return t == yes, err
}

// truth is a SQL boolean: unknown is the result of comparing against NULL.
type truth int

const (
	no truth = iota
	yes
	unknown
)

func truthOf(b bool) truth {
	if b {
		return yes
	}

	return no
}

// value reads column off rec; ok is false when it is absent or NULL.
func (f Filter) value(rec Getter) (any, bool) {
	v, ok := rec.Column(f.column)
	if !ok || coerce.IsNull(v) {
		return nil, false
	}

	return v, true
}

func (f Filter) eval(rec Getter) (truth, error) {
	switch f.op {
	case OpTrue:
		return yes, nil

	case OpEq:
		v, ok := f.value(rec)
		if !ok {
			return unknown, nil
		}

		return truthOf(coerce.Equal(v, f.values[0])), nil

	case OpGt:
		v, ok := f.value(rec)
		if !ok {
			return unknown, nil
		}

		have, ok := coerce.Float(v)
		if !ok {
			return no, fmt.Errorf("%w: column %q holds %T", ErrNotNumber, f.column, v)
		}

		want, ok := coerce.Float(f.values[0])
		if !ok {
			return no, fmt.Errorf("%w: %s > %T", ErrNotNumber, f.column, f.values[0])
		}

		return truthOf(have > want), nil

	case OpIn:
		v, ok := f.value(rec)
		if !ok || len(f.values) == 0 {
			return unknown, nil
		}

		for _, want := range f.values {
			if coerce.Equal(v, want) {
				return yes, nil
			}
		}

		return no, nil

	case OpContains:
		v, ok := f.value(rec)
		if !ok {
			return unknown, nil
		}

		seq, ok := coerce.Ints(v)
		if !ok {
			return no, fmt.Errorf("%w: column %q holds %T, not a sequence", ErrNotSequence, f.column, v)
		}

		want, ok := coerce.Int(f.values[0])
		if !ok {
			return unknown, nil
		}

		for _, n := range seq {
			if n == want {
				return yes, nil
			}
		}

		return no, nil

	case OpIsNull:
		_, ok := f.value(rec)
		return truthOf(!ok), nil

	case OpNot:
		t, err := f.children[0].eval(rec)
		if err != nil {
			return no, err
		}

		switch t {
		case yes:
			return no, nil
		case no:
			return yes, nil
		}

		return unknown, nil

	case OpAnd:
		result := yes
		for _, c := range f.children {
			t, err := c.eval(rec)
			if err != nil {
				return no, err
			}

			if t == no {
				return no, nil
			}

			if t == unknown {
				result = unknown
			}
		}

		return result, nil

	case OpOr:
		result := no
		for _, c := range f.children {
			t, err := c.eval(rec)
			if err != nil {
				return no, err
			}

			if t == yes {
				return yes, nil
			}

			if t == unknown {
				result = unknown
			}
		}

		return result, nil
	}

	return no, fmt.Errorf("%w: %d", ErrUnknownOp, f.op)
}

// String renders f in a SQL-like notation for logs and debugging.
// String is not a query; use a storage adapter for that.
func (f Filter) String() string {
	switch f.op {
	case OpTrue:
		return "TRUE"

	case OpEq:
		return fmt.Sprintf("%s = %v", f.column, f.values[0])

	case OpGt:
		return fmt.Sprintf("%s > %v", f.column, f.values[0])

	case OpIn:
		parts := make([]string, len(f.values))
		for i, v := range f.values {
			parts[i] = fmt.Sprint(v)
		}

		return fmt.Sprintf("%s IN (%s)", f.column, strings.Join(parts, ", "))

	case OpContains:
		return fmt.Sprintf("%v = ANY(%s)", f.values[0], f.column)

	case OpIsNull:
		return f.column + " IS NULL"

	case OpNot:
		return "NOT (" + f.children[0].String() + ")"

	case OpAnd, OpOr:
		if len(f.children) == 0 {
			if f.op == OpAnd {
				return "TRUE"
			}
			return "FALSE"
		}

		parts := make([]string, len(f.children))
		for i, c := range f.children {
			parts[i] = c.String()
		}

		return "(" + strings.Join(parts, " "+f.op.String()+" ") + ")"
	}

	return f.op.String()
}
