package tmpl

import (
	"errors"
	"fmt"

	"github.com/signadot/datatemplate/coerce"
	"github.com/signadot/datatemplate/data"
)

var (
	ErrInputType       = coerce.ErrInputType
	ErrOutputType      = coerce.ErrOutputType
	ErrInvalidEncoding = coerce.ErrInvalidEncoding
	ErrIndexOutOfRange = data.ErrIndexOutOfRange

	ErrRequiredFieldMissing = errors.New("required field missing")
	ErrNullNotAllowed       = errors.New("null not allowed")
	ErrRemoveMandatoryField = errors.New("cannot remove mandatory field")
	ErrNullUnion            = errors.New("unsupported operation on null union")
	ErrNoConstructor        = errors.New("no matching constructor")
	ErrConstructorConflict  = errors.New("constructor conflict")
	ErrWrongSize            = errors.New("wrong size")
	ErrUnknownField         = errors.New("unknown field")
	ErrUnknownMember        = errors.New("unknown union member")
)

// FieldError is returned by record accessors.
type FieldError struct {
	Record string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Record, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
