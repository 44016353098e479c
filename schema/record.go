package schema

import (
	"fmt"
	"strings"
)

// Field describes one field of a Record. Default, when non-nil, is a data
// tree value stored in the field's storage representation.
type Field struct {
	Name     string
	Type     Schema
	Optional bool
	Default  any
	Doc      string

	record *Record
}

// Record returns the record the field belongs to, or nil before the field
// is added to one.
func (f *Field) Record() *Record {
	return f.record
}

func (f *Field) String() string {
	if f.record == nil {
		return f.Name
	}
	return f.record.FullName() + "." + f.Name
}

// Record describes a structure with an ordered list of named fields.
type Record struct {
	Name
	fields []*Field
	byName map[string]int
}

// NewRecord builds a record owning fields. It fails if a field is nil, if a
// field name repeats or if a field already belongs to another record.
func NewRecord(name string, fields ...*Field) (*Record, error) {
	r := &Record{Name: SplitName(name)}
	if err := r.SetFields(fields...); err != nil {
		return nil, err
	}
	return r, nil
}

// SetFields sets the fields of a record that has none yet. It exists so that
// recursive records can be declared before their fields are known.
func (r *Record) SetFields(fields ...*Field) error {
	if r.fields != nil {
		return fmt.Errorf("record %s already has fields", r.FullName())
	}
	byName := make(map[string]int, len(fields))
	for i, f := range fields {
		if f == nil {
			return fmt.Errorf("record %s: nil field at %d", r.FullName(), i)
		}
		if f.record != nil && f.record != r {
			return fmt.Errorf("%w: %s cannot be added to %s", ErrFieldOwned, f, r.FullName())
		}
		if _, dup := byName[f.Name]; dup {
			return fmt.Errorf("%w: %s in %s", ErrDuplicateField, f.Name, r.FullName())
		}
		byName[f.Name] = i
	}
	for _, f := range fields {
		f.record = r
	}
	r.fields = append([]*Field{}, fields...)
	r.byName = byName
	return nil
}

func (r *Record) Kind() Kind     { return RecordKind }
func (r *Record) String() string { return r.FullName() }

// Fields returns the fields in declaration order.
func (r *Record) Fields() []*Field {
	return r.fields
}

func (r *Record) Field(name string) (*Field, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.fields[i], true
}

// Describe renders the record with its fields, one per line.
func (r *Record) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "record %s {\n", r.FullName())
	for _, f := range r.fields {
		opt := ""
		if f.Optional {
			opt = "optional "
		}
		fmt.Fprintf(&sb, "  %s%s: %s\n", opt, f.Name, f.Type)
	}
	sb.WriteString("}")
	return sb.String()
}
