package tmpl

import (
	"fmt"

	"github.com/signadot/datatemplate/coerce"
	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/schema"
)

// Generic returns a view of raw chosen from s: a *Record, *Array[any],
// *Map[any], *Union or *Fixed. Primitive and enum values are returned in
// their storage form, with numbers converted to the declared kind and
// bytes decoded to data.ByteString.
func Generic(raw any, s schema.Schema) (any, error) {
	switch d := schema.Dereference(s).(type) {
	case *schema.Record:
		m, ok := raw.(*data.Map)
		if !ok {
			return nil, fmt.Errorf("%w: record %s expects a map, got %T", ErrOutputType, d, raw)
		}
		return NewRecord(m, d), nil
	case *schema.Array:
		l, ok := raw.(*data.List)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a list, got %T", ErrOutputType, d, raw)
		}
		return NewGenericArray(l, d)
	case *schema.Map:
		m, ok := raw.(*data.Map)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a map, got %T", ErrOutputType, d, raw)
		}
		return NewGenericMap(m, d)
	case *schema.Union:
		return NewUnion(raw, d)
	case *schema.Fixed:
		return NewFixed(raw, d)
	case *schema.Enum, *schema.Primitive:
		return directOutput(raw, d)
	}
	return nil, fmt.Errorf("%w: schema %s", ErrNoConstructor, s)
}

// directOutput checks a value read from a primitive or enum slot against its
// schema and returns it in storage form. An unknown enum symbol reads as
// coerce.UnknownSymbol when the enum declares it.
func directOutput(raw any, s schema.Schema) (any, error) {
	switch d := schema.Dereference(s).(type) {
	case *schema.Enum:
		sym, ok := raw.(string)
		switch {
		case !ok:
		case d.HasSymbol(sym):
			return sym, nil
		case d.HasSymbol(coerce.UnknownSymbol):
			return coerce.UnknownSymbol, nil
		}
		return nil, &coerce.CastError{Dir: coerce.FromStorage, Value: raw, Expected: d.FullName()}
	case *schema.Primitive:
		return coerce.OutputKind(raw, schema.StorageKind(d))
	}
	return nil, fmt.Errorf("%w: schema %s", ErrNoConstructor, s)
}

// readDirect applies directOutput when s is a primitive or enum.
func readDirect(raw any, s schema.Schema) (any, error) {
	if !schema.IsDirect(s) {
		return raw, nil
	}
	return directOutput(raw, s)
}

// checkInput rejects a stored form that s does not admit: an enum value that
// is not one of its symbols.
func checkInput(raw any, s schema.Schema) error {
	e, ok := schema.Dereference(s).(*schema.Enum)
	if !ok {
		return nil
	}
	if sym, isStr := raw.(string); isStr && e.HasSymbol(sym) {
		return nil
	}
	return &coerce.CastError{Dir: coerce.ToStorage, Value: raw, Expected: e.FullName()}
}
