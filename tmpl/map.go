package tmpl

import (
	"reflect"

	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/schema"
)

// Map is a view of a string keyed map whose values are E.
type Map[E any] struct {
	m     *data.Map
	s     *schema.Map
	elems strategy[E]
}

// NewDirectMap returns a view of m whose primitive or enum values are read
// and written as E. A nil m is replaced by a new empty map.
func NewDirectMap[E any](m *data.Map, s *schema.Map) (*Map[E], error) {
	st, err := newDirect[E](s.Values)
	if err != nil {
		return nil, err
	}
	return newMap(m, s, st), nil
}

// NewWrappingMap returns a view of m whose values are views of type E.
func NewWrappingMap[E Template](m *data.Map, s *schema.Map, opts ...Option) (*Map[E], error) {
	st, err := newWrapping[E](reflect.TypeFor[E](), s.Values, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return newMap(m, s, st), nil
}

// NewGenericMap returns a view of m for code without generated types.
func NewGenericMap(m *data.Map, s *schema.Map, opts ...Option) (*Map[any], error) {
	st, err := genericStrategy(s.Values, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return newMap(m, s, st), nil
}

func newMap[E any](m *data.Map, s *schema.Map, st strategy[E]) *Map[E] {
	if m == nil {
		m = data.NewMap()
	}
	return &Map[E]{m: m, s: s, elems: st}
}

func (m *Map[E]) Schema() schema.Schema { return m.s }
func (m *Map[E]) Data() any             { return m.m }

// Map returns the underlying map.
func (m *Map[E]) Map() *data.Map { return m.m }

func (m *Map[E]) Len() int { return m.m.Len() }

// Get returns the value for key; ok is false if key is absent.
func (m *Map[E]) Get(key string) (v E, ok bool, err error) {
	raw, ok := m.m.Get(key)
	if !ok {
		return v, false, nil
	}
	v, err = m.elems.get(raw)
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

// Put sets the value for key.
func (m *Map[E]) Put(key string, v E) error {
	raw, err := m.elems.toRaw(v)
	if err != nil {
		return err
	}
	old, had := m.m.Get(key)
	if err := m.m.Put(key, raw); err != nil {
		return err
	}
	if had && !data.Same(old, raw) {
		m.elems.forget(old)
	}
	m.elems.stored(raw, v)
	return nil
}

// Remove deletes key and returns its value.
func (m *Map[E]) Remove(key string) (v E, ok bool, err error) {
	raw, ok := m.m.Get(key)
	if !ok {
		return v, false, nil
	}
	v, err = m.elems.get(raw)
	if err != nil {
		return v, false, err
	}
	m.m.Remove(key)
	m.elems.forget(raw)
	return v, true, nil
}

func (m *Map[E]) ContainsKey(key string) bool {
	return m.m.Has(key)
}

// ContainsValue reports whether some value's tree form equals that of v.
// A v that cannot be converted is compared as is rather than failing.
func (m *Map[E]) ContainsValue(v E) bool {
	raw, err := m.elems.toRaw(v)
	if err != nil {
		return m.m.ContainsValue(any(v))
	}
	return m.m.ContainsValue(raw)
}

// Keys returns the keys in insertion order.
func (m *Map[E]) Keys() []string {
	return m.m.Keys()
}

// Clear removes every entry.
func (m *Map[E]) Clear() {
	m.m.Clear()
	m.elems = m.elems.fresh()
}

// Range calls fn for each entry in insertion order until fn returns
// false. It stops at the first value that cannot be read and returns the
// error.
func (m *Map[E]) Range(fn func(string, E) bool) error {
	for k, raw := range m.m.All() {
		v, err := m.elems.get(raw)
		if err != nil {
			return err
		}
		if !fn(k, v) {
			return nil
		}
	}
	return nil
}

// Clone returns a view of a shallow clone of the map sharing the cached
// value views.
func (m *Map[E]) Clone() *Map[E] {
	return &Map[E]{m: m.m.Clone(), s: m.s, elems: m.elems.clone()}
}

// Copy returns a view of a deep copy of the map with an empty cache.
func (m *Map[E]) Copy() *Map[E] {
	return &Map[E]{m: m.m.Copy(), s: m.s, elems: m.elems.fresh()}
}

func (m *Map[E]) Equal(o *Map[E]) bool {
	if m == nil || o == nil {
		return m == o
	}
	return data.Equal(m.m, o.m)
}

func (m *Map[E]) Hash() uint64   { return m.m.Hash() }
func (m *Map[E]) String() string { return m.m.String() }
