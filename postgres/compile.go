package postgres

import (
	"fmt"

	"github.com/xy-planning-network/enums"
	"github.com/xy-planning-network/enums/filter"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Compile translates f into a clause.Expression GORM can apply as a WHERE condition.
//
// An empty And compiles to TRUE and an empty Or to FALSE.
func Compile(f filter.Filter) (clause.Expression, error) {
	col := clause.Column{Name: f.Column()}
	switch f.Op() {
	case filter.OpTrue:
		return clause.Expr{SQL: "TRUE"}, nil

	case filter.OpEq:
		return clause.Eq{Column: col, Value: bindable(f.Values()[0])}, nil

	case filter.OpGt:
		return clause.Gt{Column: col, Value: bindable(f.Values()[0])}, nil

	case filter.OpIn:
		vals := f.Values()
		for i, v := range vals {
			vals[i] = bindable(v)
		}

		return clause.IN{Column: col, Values: vals}, nil

	case filter.OpContains:
		return clause.Expr{SQL: "? = ANY(?)", Vars: []any{bindable(f.Values()[0]), col}}, nil

	case filter.OpIsNull:
		return clause.Eq{Column: col, Value: nil}, nil

	case filter.OpNot:
		inner, err := Compile(f.Children()[0])
		if err != nil {
			return nil, err
		}

		return clause.Expr{SQL: "NOT (?)", Vars: []any{inner}}, nil

	case filter.OpAnd, filter.OpOr:
		children := f.Children()
		if len(children) == 0 {
			if f.Op() == filter.OpAnd {
				return clause.Expr{SQL: "TRUE"}, nil
			}
			return clause.Expr{SQL: "FALSE"}, nil
		}

		exprs := make([]clause.Expression, len(children))
		for i, c := range children {
			expr, err := Compile(c)
			if err != nil {
				return nil, err
			}
			exprs[i] = expr
		}

		if f.Op() == filter.OpAnd {
			return clause.And(exprs...), nil
		}

		return clause.Or(exprs...), nil
	}

	return nil, fmt.Errorf("%w: %s", filter.ErrUnknownOp, f.Op())
}

// Scope adapts f into a GORM scope for callers holding a bare *gorm.DB:
//
//	gdb.Scopes(postgres.Scope(f)).Find(&tickets)
func Scope(f filter.Filter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		expr, err := Compile(f)
		if err != nil {
			_ = tx.AddError(err)
			return tx
		}

		return tx.Where(expr)
	}
}

// bindable unwraps an enums.Value into the integer code stored for it.
func bindable(v any) any {
	if ev, ok := v.(enums.Value); ok {
		return ev.Code()
	}

	return v
}
