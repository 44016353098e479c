package coerce

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/signadot/datatemplate/data"
)

// Stringify returns the string form of a scalar value as used in keys and
// query values. Bytes use their avro string form; enums their symbol; types
// with a coercer are first converted to their stored form.
func Stringify(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float32:
		return formatFloat(float64(x), 32), nil
	case float64:
		return formatFloat(x, 64), nil
	case data.ByteString:
		return x.AvroString(), nil
	case []byte:
		return data.CopyBytes(x).AvroString(), nil
	case nil, data.NullValue, *data.Map, *data.List:
		return "", inputError(v, "string", fmt.Errorf("%T has no string form", v))
	}
	raw, err := input(v, reflect.TypeOf(v))
	if err != nil {
		return "", err
	}
	if reflect.TypeOf(raw) == reflect.TypeOf(v) {
		return "", inputError(v, "string", nil)
	}
	return Stringify(raw)
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}
