package coerce

import (
	"fmt"
	"maps"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/signadot/datatemplate/debug"
)

// Coercer converts values of T to and from the form stored in a tree.
// Input must return a storable value (see data.KindOf).
type Coercer[T any] interface {
	Input(T) (any, error)
	Output(any) (T, error)
}

type entry struct {
	typ    reflect.Type
	impl   reflect.Type
	custom bool
	input  func(any) (any, error)
	output func(any) (any, error)
}

// The table is replaced wholesale under mu; readers load it without locking.
var (
	mu    sync.Mutex
	table atomic.Pointer[map[reflect.Type]*entry]
)

func init() {
	registerBuiltins()
}

func load() map[reflect.Type]*entry {
	if p := table.Load(); p != nil {
		return *p
	}
	return nil
}

func lookup(t reflect.Type) (*entry, bool) {
	e, ok := load()[t]
	return e, ok
}

func newEntry[T any](c Coercer[T], custom bool) *entry {
	return &entry{
		typ:    reflect.TypeFor[T](),
		impl:   reflect.TypeOf(c),
		custom: custom,
		input: func(v any) (any, error) {
			x, ok := v.(T)
			if !ok {
				return nil, inputError(v, reflect.TypeFor[T]().String(), nil)
			}
			return c.Input(x)
		},
		output: func(v any) (any, error) {
			return c.Output(v)
		},
	}
}

// Register binds c to T. Registering a coercer of the same implementation
// type again is a no-op; registering a different implementation for a type
// that already has one fails with ErrCoercerConflict. Register is meant to be
// called from init functions.
func Register[T any](c Coercer[T]) error {
	return register(newEntry(c, true))
}

func register(e *entry) error {
	mu.Lock()
	defer mu.Unlock()
	cur := load()
	if old, ok := cur[e.typ]; ok {
		if old.impl == e.impl {
			return nil
		}
		return fmt.Errorf("%w: %s already has a coercer %s, cannot register %s",
			ErrCoercerConflict, e.typ, old.impl, e.impl)
	}
	next := make(map[reflect.Type]*entry, len(cur)+1)
	maps.Copy(next, cur)
	next[e.typ] = e
	table.Store(&next)
	if debug.Registry() {
		debug.Logf("coercer registered", "type", e.typ, "impl", e.impl)
	}
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister[T any](c Coercer[T]) {
	if err := Register(c); err != nil {
		panic(err)
	}
}

// Has reports whether T has a coercer, built in or registered.
func Has[T any]() bool {
	_, ok := lookup(reflect.TypeFor[T]())
	return ok
}

// Custom reports whether T has a coercer registered with Register.
func Custom[T any]() bool {
	e, ok := lookup(reflect.TypeFor[T]())
	return ok && e.custom
}
