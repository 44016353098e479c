package tmpl

import (
	"reflect"

	"github.com/signadot/datatemplate/coerce"
	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/schema"
)

// Record is a view of a map as a record. Generated record types embed a
// *Record and call the package level accessors with their field
// descriptors.
type Record struct {
	m     *data.Map
	s     *schema.Record
	cache *Cache
	// defaults holds the private copies of container defaults read so far,
	// dropped when the field is written or removed.
	defaults map[*schema.Field]any
}

// NewRecord returns a view of m as a record of schema s. A nil m is
// replaced by a new empty map.
func NewRecord(m *data.Map, s *schema.Record, opts ...Option) *Record {
	if m == nil {
		m = data.NewMap()
	}
	o := applyOptions(opts)
	return &Record{m: m, s: s, cache: newCache(o.cacheCapacity)}
}

func (r *Record) Schema() schema.Schema { return r.s }

// RecordSchema returns the record schema.
func (r *Record) RecordSchema() *schema.Record { return r.s }

func (r *Record) Data() any { return r.m }

// Map returns the underlying map.
func (r *Record) Map() *data.Map { return r.m }

// Field returns the field of the record schema with the given name.
func (r *Record) Field(name string) (*schema.Field, error) {
	f, ok := r.s.Field(name)
	if !ok {
		return nil, &FieldError{Record: r.s.FullName(), Field: name, Err: ErrUnknownField}
	}
	return f, nil
}

// Contains reports whether f is present in the map, null included.
func (r *Record) Contains(f *schema.Field) bool {
	return r.m.Has(f.Name)
}

// Remove removes f from the map and reports whether it was present.
func (r *Record) Remove(f *schema.Field) bool {
	old, ok := r.m.Remove(f.Name)
	if ok {
		r.cache.Remove(old)
	}
	r.forgetDefault(f)
	return ok
}

func (r *Record) fieldError(f *schema.Field, err error) error {
	return &FieldError{Record: r.s.FullName(), Field: f.Name, Err: err}
}

func (r *Record) checkField(f *schema.Field) error {
	if f == nil {
		return &FieldError{Record: r.s.FullName(), Field: "<nil>", Err: ErrUnknownField}
	}
	if f.Record() != r.s {
		return r.fieldError(f, ErrUnknownField)
	}
	return nil
}

// lookup returns the raw value of f under mode. stable is true when raw
// keeps its identity across reads: values from the map and the record's
// copies of container defaults. ok is false when there is no value.
func (r *Record) lookup(f *schema.Field, mode GetMode) (raw any, ok, stable bool, err error) {
	if err := r.checkField(f); err != nil {
		return nil, false, false, err
	}
	if v, ok := r.m.Get(f.Name); ok {
		return v, true, true, nil
	}
	if mode == GetNull {
		return nil, false, false, nil
	}
	if f.Default != nil {
		raw, stable := r.defaultValue(f)
		return raw, true, stable, nil
	}
	if mode == GetStrict && !f.Optional {
		return nil, false, false, r.fieldError(f, ErrRequiredFieldMissing)
	}
	return nil, false, false, nil
}

// defaultValue returns the default of f. A container default is copied once
// per record so views over it cannot modify the schema, and later reads
// return the same copy.
func (r *Record) defaultValue(f *schema.Field) (any, bool) {
	if v, ok := r.defaults[f]; ok {
		return v, true
	}
	var v any
	switch x := f.Default.(type) {
	case *data.Map:
		v = x.Copy()
	case *data.List:
		v = x.Copy()
	default:
		return f.Default, false
	}
	if r.defaults == nil {
		r.defaults = make(map[*schema.Field]any)
	}
	r.defaults[f] = v
	return v, true
}

func (r *Record) forgetDefault(f *schema.Field) {
	if v, ok := r.defaults[f]; ok {
		r.cache.Remove(v)
		delete(r.defaults, f)
	}
}

// GetDirect returns the value of a primitive, enum or custom typed field.
// ok is false when the field has no value under mode. Values of types with
// a registered coercer are memoized in the record's cache.
func GetDirect[T any](r *Record, f *schema.Field, mode GetMode) (v T, ok bool, err error) {
	raw, ok, stable, err := r.lookup(f, mode)
	if err != nil || !ok {
		return v, false, err
	}
	custom := stable && coerce.Custom[T]()
	if custom {
		if c, hit := r.cache.Get(raw); hit {
			if v, ok := c.(T); ok {
				return v, true, nil
			}
		}
	}
	checked, err := readDirect(raw, f.Type)
	if err != nil {
		return v, false, r.fieldError(f, err)
	}
	v, err = coerce.Output[T](checked)
	if err != nil {
		return v, false, r.fieldError(f, err)
	}
	if custom {
		r.cache.Put(raw, v)
	}
	return v, true, nil
}

// SetDirect stores a primitive, enum or custom typed value in f. A nil v
// is handled according to mode.
func SetDirect[T any](r *Record, f *schema.Field, v *T, mode SetMode) error {
	if err := r.checkField(f); err != nil {
		return err
	}
	if v == nil {
		return r.putNull(f, mode)
	}
	raw, err := coerce.Input(*v, schema.StorageKind(f.Type))
	if err != nil {
		return r.fieldError(f, err)
	}
	if err := checkInput(raw, f.Type); err != nil {
		return r.fieldError(f, err)
	}
	if err := r.put(f, raw); err != nil {
		return err
	}
	if coerce.Custom[T]() {
		r.cache.Put(raw, *v)
	}
	return nil
}

// GetWrapped returns a view of f. Reading the same unchanged field value
// again returns the same view. An absent field with a container default
// reads as a view over a copy of the default owned by r; the copy and its
// view are reused until f is written or removed, and writes through the
// view do not add f to the map.
func GetWrapped[T Template](r *Record, f *schema.Field, mode GetMode) (T, bool, error) {
	var zero T
	raw, ok, stable, err := r.lookup(f, mode)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := r.wrapped(f, raw, stable, reflect.TypeFor[T]())
	if err != nil {
		return zero, false, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, false, r.fieldError(f, ErrOutputType)
	}
	return t, true, nil
}

func (r *Record) wrapped(f *schema.Field, raw any, stable bool, t reflect.Type) (any, error) {
	if stable {
		if c, hit := r.cache.Get(raw); hit && c != nil && reflect.TypeOf(c).AssignableTo(t) {
			return c, nil
		}
	}
	ctor, err := resolve(t, f.Type)
	if err != nil {
		return nil, r.fieldError(f, err)
	}
	v, err := ctor(raw)
	if err != nil {
		return nil, r.fieldError(f, err)
	}
	if stable {
		r.cache.Put(raw, v)
	}
	return v, nil
}

// SetWrapped stores the tree value of v in f. v must be a view of a schema
// compatible with the field type. A nil v is handled according to mode.
func SetWrapped[T Template](r *Record, f *schema.Field, v T, mode SetMode) error {
	if err := r.checkField(f); err != nil {
		return err
	}
	if isNil(v) {
		return r.putNull(f, mode)
	}
	raw, err := unwrap(v, f.Type)
	if err != nil {
		return r.fieldError(f, err)
	}
	if err := r.put(f, raw); err != nil {
		return err
	}
	r.cache.Put(raw, v)
	return nil
}

func (r *Record) put(f *schema.Field, raw any) error {
	old, had := r.m.Get(f.Name)
	if err := r.m.Put(f.Name, raw); err != nil {
		return r.fieldError(f, err)
	}
	r.forgetDefault(f)
	if had && !data.Same(old, raw) {
		r.cache.Remove(old)
	}
	return nil
}

func (r *Record) putNull(f *schema.Field, mode SetMode) error {
	switch mode {
	case IgnoreNull:
		return nil
	case RemoveIfNull:
		r.Remove(f)
		return nil
	case RemoveOptionalIfNull:
		if !f.Optional {
			return r.fieldError(f, ErrRemoveMandatoryField)
		}
		r.Remove(f)
		return nil
	}
	return r.fieldError(f, ErrNullNotAllowed)
}

// Clone returns a view of a shallow clone of the map. The clone starts with
// the entries of r's cache since child values are still shared.
func (r *Record) Clone() *Record {
	return &Record{m: r.m.Clone(), s: r.s, cache: r.cache.Clone()}
}

// Copy returns a view of a deep copy of the map with an empty cache.
func (r *Record) Copy() *Record {
	return &Record{m: r.m.Copy(), s: r.s, cache: newCache(r.cache.capacity)}
}

// Equal reports whether r and o have the same schema name and equal data.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.s.FullName() == o.s.FullName() && data.Equal(r.m, o.m)
}

func (r *Record) Hash() uint64 {
	return r.m.Hash()
}

func (r *Record) String() string {
	return r.m.String()
}
