package filter

import "errors"

var (
	ErrNotNumber   = errors.New("not a number")
	ErrNotSequence = errors.New("not a sequence")
	ErrUnknownOp   = errors.New("unknown op")
)
