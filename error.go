package enums

import "errors"

var (
	ErrBadConfig     = errors.New("bad config")
	ErrExists        = errors.New("exists")
	ErrMissingData   = errors.New("missing data")
	ErrNotExist      = errors.New("not exist")
	ErrNotFound      = errors.New("not found")
	ErrNotValid      = errors.New("invalid")
	ErrUnaddressable = errors.New("unaddressable")
	ErrUnexpected    = errors.New("unexpected")

	// ErrDuplicateCode is returned when a Definition maps two labels to one code.
	ErrDuplicateCode = errors.New("duplicate code")

	// ErrDuplicateLabel is returned when a Definition repeats a label.
	ErrDuplicateLabel = errors.New("duplicate label")

	// ErrUnknownLabel is returned when a label is not part of a Definition.
	ErrUnknownLabel = errors.New("unknown label")

	// ErrUnknownCode is returned when a stored code has no label in a Definition.
	// Legacy or corrupted data surfaces this way; callers decide how to report it.
	ErrUnknownCode = errors.New("unknown code")

	// ErrNameCollision is returned when two fields, or a field and a scope,
	// on the same entity generate the same method name.
	ErrNameCollision = errors.New("name collision")
)

// A ColumnError reports which enum column of an entity a problem was found in.
type ColumnError struct {
	Entity string
	Column string
	Err    error
}

func (e *ColumnError) Error() string { return e.Entity + "." + e.Column + ": " + e.Err.Error() }

func (e *ColumnError) Unwrap() error { return e.Err }
