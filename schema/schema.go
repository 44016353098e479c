package schema

import (
	"fmt"
	"strings"

	"github.com/signadot/datatemplate/data"
)

// Kind identifies the shape described by a Schema.
type Kind uint8

const (
	NullKind Kind = iota
	BooleanKind
	IntKind
	LongKind
	FloatKind
	DoubleKind
	StringKind
	BytesKind
	EnumKind
	FixedKind
	RecordKind
	ArrayKind
	MapKind
	UnionKind
	TyperefKind
)

var kindNames = [...]string{
	NullKind:    "null",
	BooleanKind: "boolean",
	IntKind:     "int",
	LongKind:    "long",
	FloatKind:   "float",
	DoubleKind:  "double",
	StringKind:  "string",
	BytesKind:   "bytes",
	EnumKind:    "enum",
	FixedKind:   "fixed",
	RecordKind:  "record",
	ArrayKind:   "array",
	MapKind:     "map",
	UnionKind:   "union",
	TyperefKind: "typeref",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsPrimitive reports whether k is null, boolean, a number, string or bytes.
func (k Kind) IsPrimitive() bool {
	return k <= BytesKind
}

// Schema is implemented by every descriptor.
type Schema interface {
	Kind() Kind
	String() string
}

// Named is implemented by schemas that carry a name.
type Named interface {
	Schema
	FullName() string
}

// Dereference follows typerefs until reaching a non-typeref schema.
func Dereference(s Schema) Schema {
	for {
		tr, ok := s.(*Typeref)
		if !ok || tr.Ref == nil {
			return s
		}
		s = tr.Ref
	}
}

// StorageKind returns the data kind used to store values of s.
func StorageKind(s Schema) data.Kind {
	switch Dereference(s).Kind() {
	case BooleanKind:
		return data.BoolKind
	case IntKind:
		return data.IntKind
	case LongKind:
		return data.LongKind
	case FloatKind:
		return data.FloatKind
	case DoubleKind:
		return data.DoubleKind
	case StringKind, EnumKind:
		return data.StringKind
	case BytesKind, FixedKind:
		return data.BytesKind
	case RecordKind, MapKind, UnionKind:
		return data.MapKind
	case ArrayKind:
		return data.ListKind
	}
	return data.NullKind
}

// IsDirect reports whether values of s are accessed without a wrapping view:
// primitives and enums.
func IsDirect(s Schema) bool {
	k := Dereference(s).Kind()
	return k.IsPrimitive() || k == EnumKind
}

// UnionKey returns the key that identifies s as a union member: the kind name
// for primitives and unnamed complex types, the full name for named types.
func UnionKey(s Schema) string {
	if n, ok := s.(Named); ok {
		return n.FullName()
	}
	return s.Kind().String()
}

// Primitive describes a scalar kind.
type Primitive struct {
	kind Kind
}

var (
	Null    = &Primitive{kind: NullKind}
	Boolean = &Primitive{kind: BooleanKind}
	Int     = &Primitive{kind: IntKind}
	Long    = &Primitive{kind: LongKind}
	Float   = &Primitive{kind: FloatKind}
	Double  = &Primitive{kind: DoubleKind}
	String  = &Primitive{kind: StringKind}
	Bytes   = &Primitive{kind: BytesKind}
)

var primitives = map[string]*Primitive{
	"null":    Null,
	"boolean": Boolean,
	"int":     Int,
	"long":    Long,
	"float":   Float,
	"double":  Double,
	"string":  String,
	"bytes":   Bytes,
}

// PrimitiveByName returns the primitive schema with the given kind name.
func PrimitiveByName(name string) (*Primitive, bool) {
	p, ok := primitives[name]
	return p, ok
}

func (p *Primitive) Kind() Kind     { return p.kind }
func (p *Primitive) String() string { return p.kind.String() }

// Name holds the name and namespace of a named schema.
type Name struct {
	Name      string
	Namespace string
	Doc       string
}

// FullName returns namespace.name, or name when there is no namespace.
func (n Name) FullName() string {
	if n.Namespace == "" {
		return n.Name
	}
	return n.Namespace + "." + n.Name
}

// SplitName splits a full name into namespace and simple name.
func SplitName(full string) Name {
	i := strings.LastIndexByte(full, '.')
	if i < 0 {
		return Name{Name: full}
	}
	return Name{Namespace: full[:i], Name: full[i+1:]}
}

type Enum struct {
	Name
	Symbols []string
}

func NewEnum(name string, symbols ...string) *Enum {
	return &Enum{Name: SplitName(name), Symbols: symbols}
}

func (e *Enum) Kind() Kind     { return EnumKind }
func (e *Enum) String() string { return e.FullName() }

// HasSymbol reports whether sym is one of the enum's symbols.
func (e *Enum) HasSymbol(sym string) bool {
	for _, s := range e.Symbols {
		if s == sym {
			return true
		}
	}
	return false
}

// Fixed describes a byte sequence of exactly Size bytes.
type Fixed struct {
	Name
	Size int
}

func NewFixed(name string, size int) *Fixed {
	return &Fixed{Name: SplitName(name), Size: size}
}

func (f *Fixed) Kind() Kind     { return FixedKind }
func (f *Fixed) String() string { return f.FullName() }

type Array struct {
	Items Schema
}

func NewArray(items Schema) *Array { return &Array{Items: items} }

func (a *Array) Kind() Kind     { return ArrayKind }
func (a *Array) String() string { return "array<" + a.Items.String() + ">" }

type Map struct {
	Values Schema
}

func NewMap(values Schema) *Map { return &Map{Values: values} }

func (m *Map) Kind() Kind     { return MapKind }
func (m *Map) String() string { return "map<" + m.Values.String() + ">" }

// Typeref gives another name to Ref.
type Typeref struct {
	Name
	Ref Schema
}

func NewTyperef(name string, ref Schema) *Typeref {
	return &Typeref{Name: SplitName(name), Ref: ref}
}

func (t *Typeref) Kind() Kind     { return TyperefKind }
func (t *Typeref) String() string { return t.FullName() }
