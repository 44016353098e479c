package coerce

import (
	"math"
	"reflect"

	"github.com/signadot/datatemplate/data"
)

type number interface {
	int | int32 | int64 | float32 | float64
}

type numberCoercer[T number] struct{}

func (numberCoercer[T]) Input(v T) (any, error) {
	switch x := any(v).(type) {
	case int:
		return int64(x), nil
	}
	return any(v), nil
}

func (numberCoercer[T]) Output(v any) (T, error) {
	switch x := v.(type) {
	case int32:
		return T(x), nil
	case int64:
		return T(x), nil
	case float32:
		return T(x), nil
	case float64:
		return T(x), nil
	case string:
		var zero T
		switch any(zero).(type) {
		case float32, float64:
			if f, ok := nonFinite(x); ok {
				return T(f), nil
			}
		}
	}
	var zero T
	return zero, outputError(v, reflect.TypeFor[T]().String(), nil)
}

func nonFinite(s string) (float64, bool) {
	switch s {
	case "NaN":
		return math.NaN(), true
	case "Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	return 0, false
}

type boolCoercer struct{}

func (boolCoercer) Input(v bool) (any, error) { return v, nil }

func (boolCoercer) Output(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, outputError(v, "bool", nil)
	}
	return b, nil
}

type stringCoercer struct{}

func (stringCoercer) Input(v string) (any, error) { return v, nil }

func (stringCoercer) Output(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", outputError(v, "string", nil)
	}
	return s, nil
}

type bytesCoercer struct{}

func (bytesCoercer) Input(v data.ByteString) (any, error) { return v, nil }

func (bytesCoercer) Output(v any) (data.ByteString, error) {
	switch x := v.(type) {
	case data.ByteString:
		return x, nil
	case string:
		b, ok := data.FromAvroString(x)
		if !ok {
			return data.ByteString{}, outputError(v, "bytes", ErrInvalidEncoding)
		}
		return b, nil
	}
	return data.ByteString{}, outputError(v, "bytes", nil)
}

type byteSliceCoercer struct{}

func (byteSliceCoercer) Input(v []byte) (any, error) { return data.CopyBytes(v), nil }

func (byteSliceCoercer) Output(v any) ([]byte, error) {
	b, err := bytesCoercer{}.Output(v)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func registerBuiltins() {
	for _, e := range []*entry{
		newEntry[int](numberCoercer[int]{}, false),
		newEntry[int32](numberCoercer[int32]{}, false),
		newEntry[int64](numberCoercer[int64]{}, false),
		newEntry[float32](numberCoercer[float32]{}, false),
		newEntry[float64](numberCoercer[float64]{}, false),
		newEntry[bool](boolCoercer{}, false),
		newEntry[string](stringCoercer{}, false),
		newEntry[data.ByteString](bytesCoercer{}, false),
		newEntry[[]byte](byteSliceCoercer{}, false),
	} {
		if err := register(e); err != nil {
			panic(err)
		}
	}
}
