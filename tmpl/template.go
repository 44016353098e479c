package tmpl

import (
	"reflect"

	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/schema"
)

// Template is implemented by every view.
type Template interface {
	// Schema returns the schema the view was built with.
	Schema() schema.Schema
	// Data returns the underlying tree value.
	Data() any
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// compatible reports whether a view with schema got may be stored where
// want is declared.
func compatible(got, want schema.Schema) bool {
	g, w := schema.Dereference(got), schema.Dereference(want)
	if g.Kind() != w.Kind() {
		return false
	}
	gn, gok := g.(schema.Named)
	wn, wok := w.(schema.Named)
	if gok && wok {
		return gn.FullName() == wn.FullName()
	}
	return true
}

// unwrap returns the tree value of t after checking it fits a position
// declared as s.
func unwrap(t Template, s schema.Schema) (any, error) {
	if isNil(t) {
		return nil, ErrNullNotAllowed
	}
	if !compatible(t.Schema(), s) {
		return nil, &typeMismatch{got: t.Schema(), want: s}
	}
	raw := t.Data()
	k, ok := data.KindOf(raw)
	if !ok {
		return nil, &typeMismatch{got: t.Schema(), want: s}
	}
	want := schema.StorageKind(s)
	if k != want && !(k == data.NullKind && schema.Dereference(s).Kind() == schema.UnionKind) {
		return nil, &typeMismatch{got: t.Schema(), want: s}
	}
	return raw, nil
}

type typeMismatch struct {
	got, want schema.Schema
}

func (e *typeMismatch) Error() string {
	return ErrInputType.Error() + ": view of " + e.got.String() + " where " + e.want.String() + " is declared"
}

func (e *typeMismatch) Unwrap() error {
	return ErrInputType
}
