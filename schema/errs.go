package schema

import "errors"

var (
	ErrFieldOwned      = errors.New("field already belongs to a record")
	ErrDuplicateField  = errors.New("duplicate field")
	ErrDuplicateMember = errors.New("duplicate union member")
	ErrParse           = errors.New("schema parse error")
	ErrUnknownType     = errors.New("unknown type")
	ErrDefault         = errors.New("invalid default value")
)
