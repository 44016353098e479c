package coerce

import (
	"errors"
	"fmt"
)

var (
	ErrInputType       = errors.New("wrong input type")
	ErrOutputType      = errors.New("wrong output type")
	ErrInvalidEncoding = errors.New("invalid encoding")
	ErrCoercerConflict = errors.New("coercer conflict")
)

// Dir is the direction of a coercion.
type Dir uint8

const (
	// ToStorage converts a typed value to its stored form.
	ToStorage Dir = iota
	// FromStorage converts a stored value to a typed value.
	FromStorage
)

func (d Dir) String() string {
	if d == ToStorage {
		return "input"
	}
	return "output"
}

// CastError reports a failed coercion. It unwraps to ErrInputType or
// ErrOutputType depending on Dir, and to Err when set.
type CastError struct {
	Dir      Dir
	Value    any
	Expected string
	Err      error
}

func (e *CastError) Error() string {
	msg := fmt.Sprintf("%s: cannot coerce %T (%v) to %s", e.kind(), e.Value, e.Value, e.Expected)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CastError) kind() error {
	if e.Dir == ToStorage {
		return ErrInputType
	}
	return ErrOutputType
}

func (e *CastError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.kind()}
	}
	return []error{e.kind(), e.Err}
}

func inputError(v any, expected string, err error) error {
	return &CastError{Dir: ToStorage, Value: v, Expected: expected, Err: err}
}

func outputError(v any, expected string, err error) error {
	return &CastError{Dir: FromStorage, Value: v, Expected: expected, Err: err}
}
