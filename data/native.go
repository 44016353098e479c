package data

import (
	"fmt"
	"math"
	"slices"
)

func sortedKeys(m *Map) []string {
	ks := slices.Clone(m.keys)
	slices.Sort(ks)
	return ks
}

// FromNative converts Go values of the shapes produced by generic decoders
// (map[string]any, []any, nil, bool, numbers, strings, []byte) to a tree.
// map[string]any keys are inserted in sorted order. Integers that fit in 32
// bits become int32, other integers int64.
func FromNative(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return Null, nil
	case NullValue, bool, int32, int64, float32, float64, string, ByteString, *Map, *List:
		return x, nil
	case int:
		return fromInt64(int64(x)), nil
	case int8:
		return int32(x), nil
	case int16:
		return int32(x), nil
	case uint8:
		return int32(x), nil
	case uint16:
		return int32(x), nil
	case uint32:
		return fromInt64(int64(x)), nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return float64(x), nil
		}
		return fromInt64(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			return float64(x), nil
		}
		return fromInt64(int64(x)), nil
	case []byte:
		return CopyBytes(x), nil
	case []any:
		l := NewListSize(len(x))
		for i, e := range x {
			d, err := FromNative(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			l.vals = append(l.vals, d)
		}
		return l, nil
	case map[string]any:
		m := NewMapSize(len(x))
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			d, err := FromNative(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			if err := m.Put(k, d); err != nil {
				return nil, err
			}
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotStorable, v)
}

func fromInt64(i int64) any {
	if i >= math.MinInt32 && i <= math.MaxInt32 {
		return int32(i)
	}
	return i
}

// ToNative converts a tree to map[string]any, []any and plain scalars. Null
// becomes nil and ByteString becomes its avro string form.
func ToNative(v any) any {
	switch x := v.(type) {
	case NullValue:
		return nil
	case ByteString:
		return x.AvroString()
	case *Map:
		res := make(map[string]any, x.Len())
		for i, k := range x.keys {
			res[k] = ToNative(x.vals[i])
		}
		return res
	case *List:
		res := make([]any, len(x.vals))
		for i, e := range x.vals {
			res[i] = ToNative(e)
		}
		return res
	}
	return v
}
