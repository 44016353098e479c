package tmpl

import (
	"reflect"

	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/schema"
)

// Array is a view of a list whose elements are E. Elements are either
// coerced scalars (direct arrays) or views (wrapping arrays).
type Array[E any] struct {
	l     *data.List
	s     *schema.Array
	elems strategy[E]
}

// NewDirectArray returns a view of l whose primitive or enum elements are
// read and written as E. A nil l is replaced by a new empty list.
func NewDirectArray[E any](l *data.List, s *schema.Array) (*Array[E], error) {
	st, err := newDirect[E](s.Items)
	if err != nil {
		return nil, err
	}
	return newArray(l, s, st), nil
}

// NewWrappingArray returns a view of l whose elements are views of type E.
// E must have a registered constructor for the item schema.
func NewWrappingArray[E Template](l *data.List, s *schema.Array, opts ...Option) (*Array[E], error) {
	st, err := newWrapping[E](reflect.TypeFor[E](), s.Items, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return newArray(l, s, st), nil
}

// NewGenericArray returns a view of l for code without generated types.
// Elements are raw scalars or views chosen as by Generic.
func NewGenericArray(l *data.List, s *schema.Array, opts ...Option) (*Array[any], error) {
	st, err := genericStrategy(s.Items, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return newArray(l, s, st), nil
}

func newArray[E any](l *data.List, s *schema.Array, st strategy[E]) *Array[E] {
	if l == nil {
		l = data.NewList()
	}
	return &Array[E]{l: l, s: s, elems: st}
}

func (a *Array[E]) Schema() schema.Schema { return a.s }
func (a *Array[E]) Data() any             { return a.l }

// List returns the underlying list.
func (a *Array[E]) List() *data.List { return a.l }

func (a *Array[E]) Len() int { return a.l.Len() }

// Get returns the element at i.
func (a *Array[E]) Get(i int) (E, error) {
	raw, err := a.l.Get(i)
	if err != nil {
		var zero E
		return zero, err
	}
	return a.elems.get(raw)
}

// Set replaces the element at i.
func (a *Array[E]) Set(i int, v E) error {
	raw, err := a.elems.toRaw(v)
	if err != nil {
		return err
	}
	old, err := a.l.Set(i, raw)
	if err != nil {
		return err
	}
	if !data.Same(old, raw) {
		a.elems.forget(old)
	}
	a.elems.stored(raw, v)
	return nil
}

// Append adds vs at the end. Nothing is added if any of vs cannot be
// stored.
func (a *Array[E]) Append(vs ...E) error {
	raws := make([]any, len(vs))
	for i, v := range vs {
		raw, err := a.elems.toRaw(v)
		if err != nil {
			return err
		}
		raws[i] = raw
	}
	if err := a.l.Append(raws...); err != nil {
		return err
	}
	for i, v := range vs {
		a.elems.stored(raws[i], v)
	}
	return nil
}

// Insert places v at i, shifting later elements. i may equal Len.
func (a *Array[E]) Insert(i int, v E) error {
	raw, err := a.elems.toRaw(v)
	if err != nil {
		return err
	}
	if err := a.l.Insert(i, raw); err != nil {
		return err
	}
	a.elems.stored(raw, v)
	return nil
}

// Remove deletes the element at i and returns it.
func (a *Array[E]) Remove(i int) (E, error) {
	var zero E
	raw, err := a.l.Get(i)
	if err != nil {
		return zero, err
	}
	v, err := a.elems.get(raw)
	if err != nil {
		return zero, err
	}
	if _, err := a.l.Remove(i); err != nil {
		return zero, err
	}
	a.elems.forget(raw)
	return v, nil
}

// RemoveRange deletes the elements in [from, to).
func (a *Array[E]) RemoveRange(from, to int) error {
	var removed []any
	if from >= 0 && to <= a.l.Len() && from <= to {
		for i := from; i < to; i++ {
			raw, _ := a.l.Get(i)
			removed = append(removed, raw)
		}
	}
	if err := a.l.RemoveRange(from, to); err != nil {
		return err
	}
	for _, raw := range removed {
		a.elems.forget(raw)
	}
	return nil
}

// Clear removes every element.
func (a *Array[E]) Clear() {
	a.l.Clear()
	a.elems = a.elems.fresh()
}

// IndexOf returns the index of the first element whose tree value equals
// that of v, or -1. A v that cannot be converted is compared as is.
func (a *Array[E]) IndexOf(v E) int {
	raw, err := a.elems.toRaw(v)
	if err != nil {
		return a.l.IndexOf(any(v))
	}
	return a.l.IndexOf(raw)
}

func (a *Array[E]) Contains(v E) bool {
	return a.IndexOf(v) >= 0
}

// Range calls fn for each element in order until fn returns false. It
// stops at the first element that cannot be read and returns the error.
func (a *Array[E]) Range(fn func(int, E) bool) error {
	for i, raw := range a.l.All() {
		v, err := a.elems.get(raw)
		if err != nil {
			return err
		}
		if !fn(i, v) {
			return nil
		}
	}
	return nil
}

// Values returns all elements.
func (a *Array[E]) Values() ([]E, error) {
	res := make([]E, 0, a.l.Len())
	err := a.Range(func(_ int, v E) bool {
		res = append(res, v)
		return true
	})
	return res, err
}

// Clone returns a view of a shallow clone of the list sharing the cached
// element views.
func (a *Array[E]) Clone() *Array[E] {
	return &Array[E]{l: a.l.Clone(), s: a.s, elems: a.elems.clone()}
}

// Copy returns a view of a deep copy of the list with an empty cache.
func (a *Array[E]) Copy() *Array[E] {
	return &Array[E]{l: a.l.Copy(), s: a.s, elems: a.elems.fresh()}
}

func (a *Array[E]) Equal(o *Array[E]) bool {
	if a == nil || o == nil {
		return a == o
	}
	return data.Equal(a.l, o.l)
}

func (a *Array[E]) Hash() uint64   { return a.l.Hash() }
func (a *Array[E]) String() string { return a.l.String() }
