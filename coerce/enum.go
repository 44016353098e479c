package coerce

import (
	"reflect"
	"slices"
)

// UnknownSymbol is the symbol an enum output coercion yields for a name the
// enum does not declare, when the enum declares it.
const UnknownSymbol = "$UNKNOWN"

// Enum is implemented by string-kinded enum types. EnumSymbols must be
// callable on the zero value.
type Enum interface {
	EnumSymbols() []string
}

func enumOf(t reflect.Type) (Enum, bool) {
	if t.Kind() != reflect.String {
		return nil, false
	}
	e, ok := reflect.Zero(t).Interface().(Enum)
	return e, ok
}

func enumInput(v any, e Enum) (any, error) {
	s := reflect.ValueOf(v).String()
	if !slices.Contains(e.EnumSymbols(), s) {
		return nil, inputError(v, reflect.TypeOf(v).String(), nil)
	}
	return s, nil
}

func enumOutput(raw any, t reflect.Type, e Enum) (reflect.Value, error) {
	s, ok := raw.(string)
	if !ok {
		return reflect.Value{}, outputError(raw, t.String(), nil)
	}
	syms := e.EnumSymbols()
	if !slices.Contains(syms, s) {
		if !slices.Contains(syms, UnknownSymbol) {
			return reflect.Value{}, outputError(raw, t.String(), nil)
		}
		s = UnknownSymbol
	}
	res := reflect.New(t).Elem()
	res.SetString(s)
	return res, nil
}
