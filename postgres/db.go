package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/xy-planning-network/enums"
	"github.com/xy-planning-network/enums/filter"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var (
	errNilArg = errors.New("nil arg")

	// safeGORMSession forces a fresh *gorm.DB that still carries the current statement.
	safeGORMSession = &gorm.Session{}
)

type DB struct {
	// *gorm.DB's methods are generally unsafe to use.
	// Specifically, some *gorm.DB methods are not thread-safe
	// and mutate the state of the *gorm.DB backing DB.
	//
	// If a *gorm.DB method calls *gorm.DB.getInstance,
	// this appears to render a method "safe" since it creates a new pointer.
	//
	// If a *gorm.DB method does not, be aware.
	// One solution is to use *gorm.DB.Session to force a clean pointer.
	db *gorm.DB
}

// NewDB constructs a *DB from a *gorm.DB.
func NewDB(db *gorm.DB) *DB { return &DB{db: db} }

// DB exposes the underlying *gorm.DB backing DB.
//
// NB: use in exceptional circumstances only.
func (db *DB) DB() *gorm.DB { return db.db }

// Debug prints the current query to the logger.
func (db *DB) Debug() *DB { return &DB{db.db.Debug()} }

// ToSQL renders the SQL the query built by fn would execute, without executing it.
func (db *DB) ToSQL(fn func(*DB) *DB) string {
	return db.db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return fn(NewDB(tx)).DB()
	})
}

// **************************************************************************
// FINISHER METHODS
//
// These methods close out a current query, executing it.
// All finisher methods are terminal and cannot be chained.
// They return any errors occurring within the query chain
// or when executing the query.
//
// **************************************************************************

// Count returns the number of records matching the current query or an error.
func (db *DB) Count() (int64, error) {
	if db.db.Error != nil {
		return 0, db.db.Error
	}

	var count int64
	if err := db.db.Count(&count).Error; err != nil {
		err = fmt.Errorf("%w: %s", enums.ErrUnexpected, err)
		return 0, err
	}

	return count, nil
}

// Create inserts value into the database, updating value with new data yielding from that insertion.
// Almost always, value is a pointer to a struct that is a database table.
//
// Value must be a pointer, otherwise ErrUnaddressable returns.
// If value violates a foreign key or check constraint defined by the database, ErrNotValid returns.
// If value violates a unique constraint defined by the database, ErrExists returns.
// If value is not a database table, ErrMissingData returns.
func (db *DB) Create(value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %T must be a non-nil pointer or slice", enums.ErrUnaddressable, value)
		}
	}()

	if db.db.Error != nil {
		return db.db.Error
	}

	if v, ok := value.(Updates); ok {
		if err = v.valid(); err != nil {
			return err
		}

		value = map[string]any(v)
	}

	err = db.db.Session(&gorm.Session{FullSaveAssociations: false}).Create(value).Error
	switch {
	case err == nil:
		return nil

	case errors.Is(err, schema.ErrUnsupportedDataType), errors.Is(err, gorm.ErrInvalidData):
		return fmt.Errorf("%w: %T is not a table", enums.ErrMissingData, value)

	case strings.Contains(err.Error(), violatesFK), errCheckViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", enums.ErrNotValid, err)

	case errUniqViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", enums.ErrExists, err)

	default:
		return fmt.Errorf("%w: failed creating %T: %s", enums.ErrUnexpected, value, err)
	}
}

// Delete removes the database records matching value and the current query.
func (db *DB) Delete(value any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Delete(value)
	if errors.Is(res.Error, schema.ErrUnsupportedDataType) {
		return fmt.Errorf("%w: cannot parse table name from %T", enums.ErrMissingData, value)
	}

	if res.Error != nil {
		return fmt.Errorf("%w: failed deleting %T: %s", enums.ErrUnexpected, value, res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %T", enums.ErrNotFound, value)
	}

	return nil
}

// Exec executes SQL query sql, passing values to it.
//
// If the query executed does not affect any records, Exec returns ErrNotFound.
// There are many use cases where the caller ought to specifically ignore this error,
// since the execution may not change existing records.
func (db *DB) Exec(sql string, values ...any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	var err error
	values, err = unwrap(values...)
	if err != nil && !errors.Is(err, errNilArg) {
		return err
	}

	res := db.db.Exec(sql, values...)
	if res.Error != nil {
		return fmt.Errorf("%w: %s", enums.ErrUnexpected, res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: exec failed to affect any rows", enums.ErrNotFound)
	}

	return nil
}

// Exists asserts whether any record matches the current query.
func (db *DB) Exists() (bool, error) {
	if db.db.Error != nil {
		return false, db.db.Error
	}

	var exists bool
	// NOTE: without *gorm.DB.Session,
	// GORM fails to render the current query as a sub-query.
	err := db.db.Raw("SELECT EXISTS(?)", db.db.Session(safeGORMSession)).Scan(&exists).Error
	if err != nil {
		err = fmt.Errorf("%w: %s", enums.ErrUnexpected, err)
		return false, err
	}

	return exists, nil
}

// Find retrieves all records matching the current query
// and stores them in dest.
//
// If dest is not a valid type for the table queried,
// then ErrNotValid returns.
// If no matches are found, Find returns ErrNotFound.
func (db *DB) Find(dest any) (err error) {
	badDest := fmt.Errorf("%w: %T cannot be scanned into", enums.ErrNotValid, dest)
	defer func() {
		if r := recover(); r != nil {
			err = badDest
		}
	}()

	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Find(dest)
	err = res.Error
	if err != nil && errSQLScan.MatchString(err.Error()) {
		return badDest
	}

	if err != nil && errSQLSyntax.MatchString(err.Error()) {
		return fmt.Errorf("%w: %s", enums.ErrNotValid, err)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", enums.ErrUnexpected, err)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w", enums.ErrNotFound)
	}

	return nil
}

// First retrieves a single record from the database matching the query
// and stores it in dest.
//
// If no matches are found, First returns ErrNotFound.
func (db *DB) First(dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	err := db.db.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %T", enums.ErrNotFound, dest)
	}

	if err != nil && errSQLSyntax.MatchString(err.Error()) {
		return fmt.Errorf("%w: %s", enums.ErrNotValid, err)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", enums.ErrUnexpected, err)
	}

	return nil
}

// Raw executes sql, passing values to it, and scans the results into dest.
func (db *DB) Raw(dest any, sql string, values ...any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	var err error
	values, err = unwrap(values...)
	if err != nil && !errors.Is(err, errNilArg) {
		return err
	}

	err = db.db.Raw(sql, values...).Scan(dest).Error
	if err != nil && errSQLSyntax.MatchString(err.Error()) {
		return fmt.Errorf("%w: %s", enums.ErrNotValid, err)
	}

	if err != nil && errSQLUnaddressable.MatchString(err.Error()) {
		return fmt.Errorf("%w: %s", enums.ErrUnaddressable, err)
	}

	if err != nil {
		return fmt.Errorf("%w: failed scanning results: %s", enums.ErrUnexpected, err)
	}

	return nil
}

// Rows retrieves all records matching the current query as enums.Rows,
// one column per key.
// The current query must name its table with Model or Table.
//
// Unlike Find, Rows returns an empty slice when no records match.
func (db *DB) Rows() ([]enums.Row, error) {
	if db.db.Error != nil {
		return nil, db.db.Error
	}

	if db.db.Statement.Table == "" && db.db.Statement.Model == nil {
		return nil, fmt.Errorf("%w: must use Model or Table with Rows", enums.ErrUnaddressable)
	}

	var ms []map[string]any
	err := db.db.Find(&ms).Error
	if err != nil && errSQLSyntax.MatchString(err.Error()) {
		return nil, fmt.Errorf("%w: %s", enums.ErrNotValid, err)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s", enums.ErrUnexpected, err)
	}

	rows := make([]enums.Row, len(ms))
	for i, m := range ms {
		rows[i] = enums.Row(m)
	}

	return rows, nil
}

// Update replaces existing data on all records matching the query with values.
//
// If no records are updated, ErrNotFound returns.
// The caller ought to specifically handle this error
// when it is expected a query may not mutate records.
func (db *DB) Update(values Updates) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	if err := values.valid(); err != nil {
		return err
	}

	res := db.db.Updates(values.bindable())
	switch {
	case res.RowsAffected == 0 && res.Error == nil:
		return fmt.Errorf("%w", enums.ErrNotFound)

	case res.Error == nil:
		return nil

	case errUniqViolation.MatchString(res.Error.Error()):
		return fmt.Errorf("%w: %s", enums.ErrExists, res.Error)

	case errCheckViolation.MatchString(res.Error.Error()):
		return fmt.Errorf("%w: %s", enums.ErrNotValid, res.Error)

	default:
		return fmt.Errorf("%w: %s", enums.ErrUnexpected, res.Error)
	}
}

// **************************************************************************
// QUERY BUILDING METHODS
//
// Query building methods initiate a query and then add clauses to it
// until a finisher method is called.
// The caller can chain methods.
//
// **************************************************************************

// Limit applies a LIMIT clause to the current query.
func (db *DB) Limit(limit int) *DB {
	// NOTE: GORM interprets negatives by not applying a LIMIT clause.
	// PostgreSQL errors on negative numbers:
	//     ERROR:  LIMIT must not be negative
	//
	// This Limit mirrors PostgreSQL, not GORM.
	if limit < 0 {
		return db.withError(fmt.Errorf("%w: limit must not be negative", enums.ErrNotValid))
	}

	return &DB{db: db.db.Limit(limit)}
}

// Model declares the table used for the query.
//
// Model computes the name for the database table from the type of model,
// taking the plural of the table, for example:
// - Order -> orders
// - SupportTicket -> support_tickets
//
// Unless, model implements: func TableName() string
// The value returned from that function is used instead.
//
// Calling Model multiple times or in conjunction with Table is undefined behavior.
func (db *DB) Model(model any) *DB { return &DB{db: db.db.Model(model)} }

// Not applies a NOT condition to the current query.
// query can be a filter.Filter, in which case Not takes no args.
func (db *DB) Not(query any, args ...any) *DB {
	q, args, err := conditions(query, args)
	if err != nil {
		return db.withError(err)
	}

	return &DB{db: db.db.Not(q, args...)}
}

// Offset applies an OFFSET clause to the current query.
func (db *DB) Offset(offset int) *DB {
	if offset < 0 {
		return db.withError(fmt.Errorf("%w: offset must not be negative", enums.ErrNotValid))
	}

	return &DB{db: db.db.Offset(offset)}
}

// Or applies an OR clause to the current query.
// query can be a filter.Filter, in which case Or takes no args.
func (db *DB) Or(query any, args ...any) *DB {
	q, args, err := conditions(query, args)
	if err != nil {
		return db.withError(err)
	}

	return &DB{db: db.db.Or(q, args...)}
}

// Order applies an ORDER BY clause to the current query.
func (db *DB) Order(order string) *DB { return &DB{db: db.db.Order(order)} }

// Scopes applies each of scopes, in order, to the current query.
func (db *DB) Scopes(scopes ...func(*DB) *DB) *DB {
	next := db
	for _, scope := range scopes {
		next = scope(next)
	}

	return next
}

// Select applies a SELECT statement to the current query.
func (db *DB) Select(columns ...string) *DB { return &DB{db: db.db.Select(columns)} }

// Table defines which database table to query for the current query.
// Table is similar to Model but allows for explicit definition of the table.
//
// Calling Table multiple times or in conjunction with Model
// in the same query chain is undefined behavior.
func (db *DB) Table(name string) *DB { return &DB{db: db.db.Table(name)} }

// Where applies the query fragment, subquery or filter.Filter to the current query
// as a WHERE or AND clause.
//
// Where supports one or none args.
// If more than one arg is passed, finisher methods will return ErrNotValid.
func (db *DB) Where(query any, args ...any) *DB {
	q, args, err := conditions(query, args)
	if err != nil {
		return db.withError(err)
	}

	return &DB{db.db.Where(q, args...)}
}

// WithContext sets ctx on the current query, cancelling it when ctx is done.
func (db *DB) WithContext(ctx context.Context) *DB { return &DB{db: db.db.WithContext(ctx)} }

// **************************************************************************
// TRANSACTION METHODS
//
// These methods control database transactions.
// **************************************************************************

// Begin initializes a database transaction.
func (db *DB) Begin(opts ...*sql.TxOptions) *DB {
	return &DB{db: db.db.Begin(opts...)}
}

// Commit completes the current transaction,
// applying any state changes and making them visible to other database connections.
func (db *DB) Commit() error {
	if db.db.Error != nil {
		return db.db.Error
	}

	if err := db.db.Commit().Error; err != nil {
		err = fmt.Errorf("%w: failed committing tx: %s", enums.ErrUnexpected, err)
		return err
	}

	return nil
}

// Rollback reverts the current transaction.
// If no transaction is open, Rollback returns an error.
func (db *DB) Rollback() error {
	err := db.db.Rollback().Error
	if err != nil {
		return fmt.Errorf("%w: failed rolling back tx: %s", enums.ErrUnexpected, err)
	}

	return nil
}

// Transaction runs fn inside a transaction,
// committing when fn returns nil and rolling back otherwise.
func (db *DB) Transaction(fn func(tx *DB) error) error {
	tx := db.Begin()
	if tx.db.Error != nil {
		return fmt.Errorf("%w: failed beginning tx: %s", enums.ErrUnexpected, tx.db.Error)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// **************************************************************************
// HELPERS
//
// **************************************************************************

// withError returns a *DB whose finisher methods return err.
func (db *DB) withError(err error) *DB {
	gdb := db.DB().Session(safeGORMSession)
	_ = gdb.AddError(err)
	return &DB{db: gdb}
}

// conditions prepares the query and args of a Where, Or or Not.
func conditions(query any, args []any) (any, []any, error) {
	if len(args) > 1 {
		return nil, nil, fmt.Errorf("%w: conditions support one or none args", enums.ErrNotValid)
	}

	if _, ok := query.(filter.Filter); ok && len(args) > 0 {
		return nil, nil, fmt.Errorf("%w: a filter takes no args", enums.ErrNotValid)
	}

	var err error
	args, err = unwrap(args...)
	if err != nil && !errors.Is(err, errNilArg) {
		return nil, nil, err
	}

	q, err := unwrap(query)
	if err != nil {
		return nil, nil, err
	}

	return q[0], args, nil
}

// unwrap converts any custom types that are troublesome for GORM into types it can handle.
// unwrap ought to be applied to parameters of any type.
//
// If unwrapping a parameter uncovers some error, unwrap returns the error.
// Notably, if a *DB is passed as a parameter,
// and that *DB is in an error state, that fact is surfaced.
// This enables a *DB method to return early and prevent partial queries from running.
func unwrap(args ...any) ([]any, error) {
	var err error
	res := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case *DB:
			gdb := v.DB()
			if gdb.Error != nil {
				err = errors.Join(err, gdb.Error)
			}
			res[i] = gdb

		case filter.Filter:
			expr, cerr := Compile(v)
			if cerr != nil {
				err = errors.Join(err, fmt.Errorf("%w: %s", enums.ErrNotValid, cerr))
			}
			res[i] = expr

		case enums.Value:
			res[i] = v.Code()

		case nil:
			res[i] = arg
			err = errors.Join(err, enums.ErrNotValid, errNilArg)

		default:
			res[i] = arg
		}
	}

	return res, err
}
