package data

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Map is a string keyed container that iterates in insertion order.
// A Map is not safe for concurrent mutation.
type Map struct {
	handle uint64
	keys   []string
	vals   []any
	index  map[string]int
}

func NewMap() *Map {
	return NewMapSize(0)
}

// NewMapSize returns an empty map with room for n entries.
func NewMapSize(n int) *Map {
	return &Map{
		handle: nextHandle(),
		keys:   make([]string, 0, n),
		vals:   make([]any, 0, n),
		index:  make(map[string]int, n),
	}
}

// MapOf builds a map from alternating keys and values. It panics if kvs is
// malformed or holds a value that is not storable; it is meant for literals.
func MapOf(kvs ...any) *Map {
	if len(kvs)%2 != 0 {
		panic("data: MapOf called with odd number of arguments")
	}
	m := NewMapSize(len(kvs) / 2)
	for i := 0; i < len(kvs); i += 2 {
		k, ok := kvs[i].(string)
		if !ok {
			panic(fmt.Sprintf("data: MapOf key %v is not a string", kvs[i]))
		}
		if err := m.Put(k, kvs[i+1]); err != nil {
			panic(err)
		}
	}
	return m
}

// Handle returns the identity handle assigned when m was created.
func (m *Map) Handle() uint64 {
	return m.handle
}

func (m *Map) Len() int {
	return len(m.keys)
}

func (m *Map) Get(key string) (any, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.vals[i], true
}

func (m *Map) Has(key string) bool {
	_, ok := m.index[key]
	return ok
}

// Put sets key to v. An existing key keeps its position. v must not contain
// m.
func (m *Map) Put(key string, v any) error {
	if err := checkStorable(m, v); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	if i, ok := m.index[key]; ok {
		m.vals[i] = v
		return nil
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, v)
	return nil
}

// Remove deletes key and returns the value it held.
func (m *Map) Remove(key string) (any, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	v := m.vals[i]
	delete(m.index, key)
	m.keys = slices.Delete(m.keys, i, i+1)
	m.vals = slices.Delete(m.vals, i, i+1)
	for j := i; j < len(m.keys); j++ {
		m.index[m.keys[j]] = j
	}
	return v, true
}

func (m *Map) Clear() {
	clear(m.index)
	m.keys = m.keys[:0]
	clear(m.vals)
	m.vals = m.vals[:0]
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	return slices.Clone(m.keys)
}

func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

// ContainsValue reports whether some entry holds a value Equal to v.
func (m *Map) ContainsValue(v any) bool {
	for _, x := range m.vals {
		if Equal(x, v) {
			return true
		}
	}
	return false
}

// Clone returns a new map with the same entries. Nested containers are
// shared.
func (m *Map) Clone() *Map {
	return &Map{
		handle: nextHandle(),
		keys:   slices.Clone(m.keys),
		vals:   slices.Clone(m.vals),
		index:  maps.Clone(m.index),
	}
}

// Copy returns a deep copy of m.
func (m *Map) Copy() *Map {
	res := m.Clone()
	for i, v := range res.vals {
		res.vals[i] = copyValue(v)
	}
	return res
}

func (m *Map) Hash() uint64 {
	return Hash(m)
}

func (m *Map) String() string {
	d, err := Marshal(m)
	if err != nil {
		return fmt.Sprintf("<map %d: %v>", m.handle, err)
	}
	return string(d)
}

func copyValue(v any) any {
	switch x := v.(type) {
	case *Map:
		return x.Copy()
	case *List:
		return x.Copy()
	}
	return v
}
