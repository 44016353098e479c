package tmpl

import (
	"fmt"
	"maps"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/debug"
	"github.com/signadot/datatemplate/schema"
)

// Constructor builds views of type T. FromMap serves record and map
// schemas, FromList array schemas, and FromValue fixed and union schemas,
// whose tree values may be scalars or null. Unset functions mean T cannot
// be built for that kind of schema.
type Constructor[T Template] struct {
	FromMap   func(*data.Map, schema.Schema) (T, error)
	FromList  func(*data.List, schema.Schema) (T, error)
	FromValue func(any, schema.Schema) (T, error)
}

type ctorEntry struct {
	typ       reflect.Type
	fromMap   func(*data.Map, schema.Schema) (any, error)
	fromList  func(*data.List, schema.Schema) (any, error)
	fromValue func(any, schema.Schema) (any, error)
}

var (
	ctorMu sync.Mutex
	ctors  atomic.Pointer[map[reflect.Type]*ctorEntry]
)

func init() {
	mustRegister(Constructor[*Record]{
		FromMap: func(m *data.Map, s schema.Schema) (*Record, error) {
			rs, ok := s.(*schema.Record)
			if !ok {
				return nil, noConstructor(reflect.TypeFor[*Record](), s)
			}
			return NewRecord(m, rs), nil
		},
	})
	mustRegister(Constructor[*Union]{
		FromValue: func(v any, s schema.Schema) (*Union, error) {
			us, ok := s.(*schema.Union)
			if !ok {
				return nil, noConstructor(reflect.TypeFor[*Union](), s)
			}
			return NewUnion(v, us)
		},
	})
	mustRegister(Constructor[*Fixed]{
		FromValue: func(v any, s schema.Schema) (*Fixed, error) {
			fs, ok := s.(*schema.Fixed)
			if !ok {
				return nil, noConstructor(reflect.TypeFor[*Fixed](), s)
			}
			return NewFixed(v, fs)
		},
	})
	mustRegister(Constructor[*Array[any]]{
		FromList: func(l *data.List, s schema.Schema) (*Array[any], error) {
			as, ok := s.(*schema.Array)
			if !ok {
				return nil, noConstructor(reflect.TypeFor[*Array[any]](), s)
			}
			return NewGenericArray(l, as)
		},
	})
	mustRegister(Constructor[*Map[any]]{
		FromMap: func(m *data.Map, s schema.Schema) (*Map[any], error) {
			ms, ok := s.(*schema.Map)
			if !ok {
				return nil, noConstructor(reflect.TypeFor[*Map[any]](), s)
			}
			return NewGenericMap(m, ms)
		},
	})
}

func mustRegister[T Template](c Constructor[T]) {
	if err := RegisterConstructor(c); err != nil {
		panic(err)
	}
}

// RegisterConstructor makes T available to Wrap and to wrapping arrays and
// maps of T. It is meant to be called from init functions, once per type.
func RegisterConstructor[T Template](c Constructor[T]) error {
	e := &ctorEntry{typ: reflect.TypeFor[T]()}
	if c.FromMap != nil {
		e.fromMap = func(m *data.Map, s schema.Schema) (any, error) { return c.FromMap(m, s) }
	}
	if c.FromList != nil {
		e.fromList = func(l *data.List, s schema.Schema) (any, error) { return c.FromList(l, s) }
	}
	if c.FromValue != nil {
		e.fromValue = func(v any, s schema.Schema) (any, error) { return c.FromValue(v, s) }
	}
	ctorMu.Lock()
	defer ctorMu.Unlock()
	cur := loadCtors()
	if _, ok := cur[e.typ]; ok {
		return fmt.Errorf("%w: %s already has a constructor", ErrConstructorConflict, e.typ)
	}
	next := make(map[reflect.Type]*ctorEntry, len(cur)+1)
	maps.Copy(next, cur)
	next[e.typ] = e
	ctors.Store(&next)
	if debug.Registry() {
		debug.Logf("constructor registered", "type", e.typ)
	}
	return nil
}

func loadCtors() map[reflect.Type]*ctorEntry {
	if p := ctors.Load(); p != nil {
		return *p
	}
	return nil
}

func noConstructor(t reflect.Type, s schema.Schema) error {
	return fmt.Errorf("%w: %s for %s schema %s", ErrNoConstructor, t, schema.Dereference(s).Kind(), s)
}

type ctorFunc func(raw any) (any, error)

// resolve picks the constructor of t for s once, so that containers do not
// repeat the lookup per element.
func resolve(t reflect.Type, s schema.Schema) (ctorFunc, error) {
	d := schema.Dereference(s)
	if t == templateType {
		return func(raw any) (any, error) { return Generic(raw, d) }, nil
	}
	e, ok := loadCtors()[t]
	if !ok {
		return nil, noConstructor(t, s)
	}
	var f ctorFunc
	switch d.Kind() {
	case schema.RecordKind, schema.MapKind:
		if e.fromMap != nil {
			f = func(raw any) (any, error) {
				m, ok := raw.(*data.Map)
				if !ok {
					return nil, fmt.Errorf("%w: %s expects a map, got %T", ErrOutputType, d, raw)
				}
				return e.fromMap(m, d)
			}
		}
	case schema.ArrayKind:
		if e.fromList != nil {
			f = func(raw any) (any, error) {
				l, ok := raw.(*data.List)
				if !ok {
					return nil, fmt.Errorf("%w: %s expects a list, got %T", ErrOutputType, d, raw)
				}
				return e.fromList(l, d)
			}
		}
	case schema.FixedKind, schema.UnionKind:
		if e.fromValue != nil {
			f = func(raw any) (any, error) { return e.fromValue(raw, d) }
		}
	}
	if f == nil {
		return nil, noConstructor(t, s)
	}
	if debug.Wrap() {
		inner := f
		f = func(raw any) (any, error) {
			debug.Logf("wrap", "type", t, "schema", d.String(), "node", data.IdentityKey(raw))
			return inner(raw)
		}
	}
	return f, nil
}

var templateType = reflect.TypeFor[Template]()

func resolveFor[T Template](s schema.Schema) (func(any) (T, error), error) {
	f, err := resolve(reflect.TypeFor[T](), s)
	if err != nil {
		return nil, err
	}
	return func(raw any) (T, error) {
		var zero T
		v, err := f(raw)
		if err != nil {
			return zero, err
		}
		t, ok := v.(T)
		if !ok {
			return zero, fmt.Errorf("%w: constructor returned %T", ErrNoConstructor, v)
		}
		return t, nil
	}, nil
}

// Wrap builds a view of type T over raw, declared with schema s. T must
// have a registered constructor for the kind of s, or be Template itself,
// in which case the view is chosen from s as by Generic.
func Wrap[T Template](raw any, s schema.Schema) (T, error) {
	f, err := resolveFor[T](s)
	if err != nil {
		var zero T
		return zero, err
	}
	return f(raw)
}
