// Package coerce converts between typed Go values and the values stored in
// data trees.
//
// Conversions are looked up by the Go type in a process wide table. Numbers,
// booleans, strings and bytes are built in; other types are bound with
// Register, usually from an init function. String kinded types implementing
// Enum are stored as their symbol.
package coerce

import (
	"fmt"
	"reflect"

	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/debug"
)

// Input converts v to a value storable with the given kind. Numbers are
// converted freely between the numeric kinds. A storage kind of
// data.NullKind accepts any storable result.
func Input[T any](v T, storage data.Kind) (any, error) {
	raw, err := input(any(v), reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return toStorage(raw, storage)
}

func input(v any, t reflect.Type) (any, error) {
	if v == nil {
		return nil, inputError(v, t.String(), nil)
	}
	if t.Kind() == reflect.Interface {
		t = reflect.TypeOf(v)
	}
	if e, ok := lookup(t); ok {
		return e.input(v)
	}
	if e, ok := enumOf(t); ok {
		return enumInput(v, e)
	}
	if _, ok := data.KindOf(v); ok {
		return v, nil
	}
	if t.Kind() == reflect.String {
		return reflect.ValueOf(v).String(), nil
	}
	return nil, inputError(v, t.String(), nil)
}

func toStorage(raw any, storage data.Kind) (any, error) {
	k, ok := data.KindOf(raw)
	if !ok {
		return nil, inputError(raw, storage.String(), data.ErrNotStorable)
	}
	if storage == data.NullKind || k == storage {
		return raw, nil
	}
	if n, ok := convertNumber(raw, storage); ok {
		return n, nil
	}
	return nil, inputError(raw, storage.String(), nil)
}

func convertNumber(v any, k data.Kind) (any, bool) {
	var (
		i     int64
		f     float64
		isInt bool
	)
	switch x := v.(type) {
	case int32:
		i, isInt = int64(x), true
	case int64:
		i, isInt = x, true
	case float32:
		f = float64(x)
	case float64:
		f = x
	default:
		return nil, false
	}
	if isInt {
		f = float64(i)
	} else {
		i = int64(f)
	}
	switch k {
	case data.IntKind:
		return int32(i), true
	case data.LongKind:
		return i, true
	case data.FloatKind:
		return float32(f), true
	case data.DoubleKind:
		return f, true
	}
	return nil, false
}

// Output converts a stored value to T. When T is an interface type the raw
// value is returned if it implements T.
func Output[T any](raw any) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()
	res, err := output(raw, t)
	if err != nil {
		if debug.Coerce() {
			debug.Logf("output coercion failed", "type", t, "value", raw, "error", err)
		}
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	v, ok := res.(T)
	if !ok {
		return zero, outputError(raw, t.String(), fmt.Errorf("coercer returned %T", res))
	}
	return v, nil
}

func output(raw any, t reflect.Type) (any, error) {
	if t.Kind() == reflect.Interface {
		if raw != nil && reflect.TypeOf(raw).Implements(t) {
			return raw, nil
		}
		return nil, outputError(raw, t.String(), nil)
	}
	if e, ok := lookup(t); ok {
		return e.output(raw)
	}
	if e, ok := enumOf(t); ok {
		v, err := enumOutput(raw, t, e)
		if err != nil {
			return nil, err
		}
		return v.Interface(), nil
	}
	if raw != nil && reflect.TypeOf(raw) == t {
		return raw, nil
	}
	if t.Kind() == reflect.String {
		if s, ok := raw.(string); ok {
			return reflect.ValueOf(s).Convert(t).Interface(), nil
		}
	}
	return nil, outputError(raw, t.String(), nil)
}

// OutputKind checks a value read from a tree against the storage kind k and
// returns it in that kind. Numbers convert between the numeric kinds, the
// float kinds also accept "NaN", "Infinity" and "-Infinity", and bytes are
// decoded from their string form. Failures are output errors.
func OutputKind(raw any, k data.Kind) (any, error) {
	switch k {
	case data.NullKind:
		if data.IsNull(raw) {
			return raw, nil
		}
	case data.BytesKind:
		return Output[data.ByteString](raw)
	default:
		rk, ok := data.KindOf(raw)
		if ok && rk == k {
			return raw, nil
		}
		if s, isStr := raw.(string); isStr && (k == data.FloatKind || k == data.DoubleKind) {
			if f, ok := nonFinite(s); ok {
				raw = f
			}
		}
		if n, ok := convertNumber(raw, k); ok {
			return n, nil
		}
	}
	return nil, outputError(raw, k.String(), nil)
}
