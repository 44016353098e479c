package tmpl

import (
	"fmt"
	"reflect"

	"github.com/signadot/datatemplate/coerce"
	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/schema"
)

// strategy converts container elements between their tree form and E.
type strategy[E any] interface {
	get(raw any) (E, error)
	toRaw(v E) (any, error)
	// stored records that v now lives in the tree as raw.
	stored(raw any, v E)
	// forget drops anything remembered about a removed raw value.
	forget(raw any)
	clone() strategy[E]
	fresh() strategy[E]
}

// direct elements are checked against the item schema and coerced on every
// access, and never cached.
type direct[E any] struct {
	item    schema.Schema
	storage data.Kind
}

func newDirect[E any](item schema.Schema) (strategy[E], error) {
	if !schema.IsDirect(item) {
		return nil, fmt.Errorf("%w: %s elements need a wrapping container", ErrNoConstructor, item)
	}
	return direct[E]{item: item, storage: schema.StorageKind(item)}, nil
}

func (d direct[E]) get(raw any) (E, error) {
	v, err := directOutput(raw, d.item)
	if err != nil {
		var zero E
		return zero, err
	}
	return coerce.Output[E](v)
}

func (d direct[E]) toRaw(v E) (any, error) {
	raw, err := coerce.Input(v, d.storage)
	if err != nil {
		return nil, err
	}
	if err := checkInput(raw, d.item); err != nil {
		return nil, err
	}
	return raw, nil
}

func (direct[E]) stored(any, E)        {}
func (direct[E]) forget(any)           {}
func (d direct[E]) clone() strategy[E] { return d }
func (d direct[E]) fresh() strategy[E] { return d }

// wrapping elements are views built by a constructor resolved once for the
// container, and memoized by tree identity.
type wrapping[E any] struct {
	item  schema.Schema
	ctor  ctorFunc
	cache *Cache
}

func newWrapping[E any](t reflect.Type, item schema.Schema, o options) (strategy[E], error) {
	ctor, err := resolve(t, item)
	if err != nil {
		return nil, err
	}
	return &wrapping[E]{item: item, ctor: ctor, cache: newCache(o.cacheCapacity)}, nil
}

func (w *wrapping[E]) get(raw any) (E, error) {
	var zero E
	if c, ok := w.cache.Get(raw); ok {
		if v, ok := c.(E); ok {
			return v, nil
		}
	}
	c, err := w.ctor(raw)
	if err != nil {
		return zero, err
	}
	v, ok := c.(E)
	if !ok {
		return zero, fmt.Errorf("%w: constructor returned %T", ErrNoConstructor, c)
	}
	w.cache.Put(raw, v)
	return v, nil
}

func (w *wrapping[E]) toRaw(v E) (any, error) {
	t, ok := any(v).(Template)
	if !ok {
		if isNil(any(v)) {
			return nil, ErrNullNotAllowed
		}
		return nil, fmt.Errorf("%w: %T is not a view", ErrInputType, v)
	}
	return unwrap(t, w.item)
}

func (w *wrapping[E]) stored(raw any, v E) { w.cache.Put(raw, v) }
func (w *wrapping[E]) forget(raw any)      { w.cache.Remove(raw) }

func (w *wrapping[E]) clone() strategy[E] {
	return &wrapping[E]{item: w.item, ctor: w.ctor, cache: w.cache.Clone()}
}

func (w *wrapping[E]) fresh() strategy[E] {
	return &wrapping[E]{item: w.item, ctor: w.ctor, cache: newCache(w.cache.capacity)}
}

// genericStrategy picks direct or wrapping elements from the item schema.
func genericStrategy(item schema.Schema, o options) (strategy[any], error) {
	if schema.IsDirect(item) {
		return newDirect[any](item)
	}
	return newWrapping[any](templateType, item, o)
}
