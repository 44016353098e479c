package data

import "errors"

var (
	ErrNotStorable     = errors.New("value not storable in data tree")
	ErrSelfReference   = errors.New("container cannot contain itself")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrPath            = errors.New("invalid path")
)
