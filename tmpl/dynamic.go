package tmpl

import (
	"fmt"
	"reflect"

	"github.com/signadot/datatemplate/coerce"
	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/schema"
)

// Def is implemented by FieldDef for every value type.
type Def interface {
	DefName() string
	DefSchema() schema.Schema
	DefOptional() bool
}

// FieldDef declares a field of a dynamic record whose values are T.
type FieldDef[T any] struct {
	name     string
	s        schema.Schema
	optional bool
}

// NewFieldDef returns a field definition. A nil s is inferred from T for
// booleans, numbers, strings, bytes and enums.
func NewFieldDef[T any](name string, s schema.Schema) (*FieldDef[T], error) {
	if s == nil {
		var err error
		if s, err = inferSchema(reflect.TypeFor[T]()); err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
	}
	return &FieldDef[T]{name: name, s: s}, nil
}

// Optional marks the field optional and returns d.
func (d *FieldDef[T]) Optional() *FieldDef[T] {
	d.optional = true
	return d
}

func (d *FieldDef[T]) DefName() string          { return d.name }
func (d *FieldDef[T]) DefSchema() schema.Schema { return d.s }
func (d *FieldDef[T]) DefOptional() bool        { return d.optional }

func inferSchema(t reflect.Type) (schema.Schema, error) {
	switch t {
	case reflect.TypeFor[bool]():
		return schema.Boolean, nil
	case reflect.TypeFor[int32]():
		return schema.Int, nil
	case reflect.TypeFor[int](), reflect.TypeFor[int64]():
		return schema.Long, nil
	case reflect.TypeFor[float32]():
		return schema.Float, nil
	case reflect.TypeFor[float64]():
		return schema.Double, nil
	case reflect.TypeFor[string]():
		return schema.String, nil
	case reflect.TypeFor[data.ByteString](), reflect.TypeFor[[]byte]():
		return schema.Bytes, nil
	}
	if t.Kind() == reflect.String {
		if e, ok := reflect.Zero(t).Interface().(coerce.Enum); ok {
			return schema.NewEnum(t.Name(), e.EnumSymbols()...), nil
		}
	}
	return nil, fmt.Errorf("%w: cannot infer a schema for %s", ErrNoConstructor, t)
}

// DynamicRecord is a record whose schema is built at run time from field
// definitions.
type DynamicRecord struct {
	*Record
}

// NewDynamicRecord builds a record schema named name from defs and returns
// a view of m with it.
func NewDynamicRecord(name string, defs []Def, m *data.Map, opts ...Option) (*DynamicRecord, error) {
	fields := make([]*schema.Field, len(defs))
	for i, d := range defs {
		fields[i] = &schema.Field{Name: d.DefName(), Type: d.DefSchema(), Optional: d.DefOptional()}
	}
	s, err := schema.NewRecord(name, fields...)
	if err != nil {
		return nil, err
	}
	return &DynamicRecord{Record: NewRecord(m, s, opts...)}, nil
}

func (r *DynamicRecord) field(d Def) (*schema.Field, error) {
	return r.Field(d.DefName())
}

// GetValue returns the value of the field declared by d, as a view when T
// is a view type and as a coerced value otherwise.
func GetValue[T any](r *DynamicRecord, d *FieldDef[T], mode GetMode) (v T, ok bool, err error) {
	f, err := r.field(d)
	if err != nil {
		return v, false, err
	}
	t := reflect.TypeFor[T]()
	if !t.Implements(templateType) {
		return GetDirect[T](r.Record, f, mode)
	}
	raw, ok, stable, err := r.lookup(f, mode)
	if err != nil || !ok {
		return v, false, err
	}
	w, err := r.wrapped(f, raw, stable, t)
	if err != nil {
		return v, false, err
	}
	v, ok = w.(T)
	if !ok {
		return v, false, r.fieldError(f, ErrOutputType)
	}
	return v, true, nil
}

// SetValue stores v in the field declared by d. A nil v is handled
// according to mode.
func SetValue[T any](r *DynamicRecord, d *FieldDef[T], v *T, mode SetMode) error {
	f, err := r.field(d)
	if err != nil {
		return err
	}
	if !reflect.TypeFor[T]().Implements(templateType) {
		return SetDirect(r.Record, f, v, mode)
	}
	if v == nil || isNil(any(*v)) {
		return r.putNull(f, mode)
	}
	return SetWrapped(r.Record, f, any(*v).(Template), mode)
}
