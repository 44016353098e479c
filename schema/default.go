package schema

import (
	"fmt"
	"math"

	"github.com/signadot/datatemplate/data"
)

// DefaultValue converts a decoded default to the storage representation
// of s. Numbers are converted within the numeric family, bytes and fixed
// defaults are read from their avro string form, and union defaults are
// either null or a single entry map keyed by a member.
func DefaultValue(v any, s Schema) (any, error) {
	s = Dereference(s)
	bad := func() error {
		return fmt.Errorf("%w: %v for %s", ErrDefault, v, s)
	}
	switch s.Kind() {
	case NullKind:
		if data.IsNull(v) {
			return data.Null, nil
		}
	case BooleanKind:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case IntKind:
		if i, ok := intValue(v); ok && i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i), nil
		}
	case LongKind:
		if i, ok := intValue(v); ok {
			return i, nil
		}
	case FloatKind:
		if f, ok := floatValue(v); ok {
			return float32(f), nil
		}
	case DoubleKind:
		if f, ok := floatValue(v); ok {
			return f, nil
		}
	case StringKind:
		if str, ok := v.(string); ok {
			return str, nil
		}
	case EnumKind:
		if str, ok := v.(string); ok && s.(*Enum).HasSymbol(str) {
			return str, nil
		}
	case BytesKind, FixedKind:
		str, ok := v.(string)
		if !ok {
			break
		}
		b, ok := data.FromAvroString(str)
		if !ok {
			break
		}
		if f, isFixed := s.(*Fixed); isFixed && b.Len() != f.Size {
			break
		}
		return b, nil
	case ArrayKind:
		l, ok := v.(*data.List)
		if !ok {
			break
		}
		res := data.NewListSize(l.Len())
		for _, e := range l.All() {
			d, err := DefaultValue(e, s.(*Array).Items)
			if err != nil {
				return nil, err
			}
			if err := res.Append(d); err != nil {
				return nil, err
			}
		}
		return res, nil
	case MapKind:
		m, ok := v.(*data.Map)
		if !ok {
			break
		}
		res := data.NewMapSize(m.Len())
		for k, e := range m.All() {
			d, err := DefaultValue(e, s.(*Map).Values)
			if err != nil {
				return nil, err
			}
			if err := res.Put(k, d); err != nil {
				return nil, err
			}
		}
		return res, nil
	case RecordKind:
		m, ok := v.(*data.Map)
		if !ok {
			break
		}
		rec := s.(*Record)
		res := data.NewMapSize(m.Len())
		for k, e := range m.All() {
			f, ok := rec.Field(k)
			if !ok {
				return nil, fmt.Errorf("%w: unknown field %s of %s", ErrDefault, k, rec.FullName())
			}
			d, err := DefaultValue(e, f.Type)
			if err != nil {
				return nil, err
			}
			if err := res.Put(k, d); err != nil {
				return nil, err
			}
		}
		return res, nil
	case UnionKind:
		u := s.(*Union)
		if data.IsNull(v) && u.HasNull() {
			return data.Null, nil
		}
		m, ok := v.(*data.Map)
		if !ok || m.Len() != 1 {
			break
		}
		key := m.Keys()[0]
		mt, ok := u.Member(key)
		if !ok {
			break
		}
		e, _ := m.Get(key)
		d, err := DefaultValue(e, mt)
		if err != nil {
			return nil, err
		}
		return data.MapOf(key, d), nil
	}
	return nil, bad()
}

func floatValue(v any) (float64, bool) {
	switch x := v.(type) {
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
