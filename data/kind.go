package data

import "fmt"

// Kind identifies the representation of a value stored in a tree.
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	LongKind
	FloatKind
	DoubleKind
	StringKind
	BytesKind
	MapKind
	ListKind
)

var kindNames = [...]string{
	NullKind:   "null",
	BoolKind:   "boolean",
	IntKind:    "int",
	LongKind:   "long",
	FloatKind:  "float",
	DoubleKind: "double",
	StringKind: "string",
	BytesKind:  "bytes",
	MapKind:    "map",
	ListKind:   "list",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsContainer reports whether k is MapKind or ListKind.
func (k Kind) IsContainer() bool {
	return k == MapKind || k == ListKind
}

// IsNumber reports whether k is one of the numeric kinds.
func (k Kind) IsNumber() bool {
	switch k {
	case IntKind, LongKind, FloatKind, DoubleKind:
		return true
	}
	return false
}

// NullValue is the type of Null.
type NullValue struct{}

func (NullValue) String() string { return "null" }

// Null is the explicit null value.
var Null = NullValue{}

// IsNull reports whether v is the Null sentinel.
func IsNull(v any) bool {
	_, ok := v.(NullValue)
	return ok
}

// KindOf returns the kind of a storable value. ok is false when v cannot be
// stored in a tree.
func KindOf(v any) (k Kind, ok bool) {
	switch x := v.(type) {
	case NullValue:
		return NullKind, true
	case bool:
		return BoolKind, true
	case int32:
		return IntKind, true
	case int64:
		return LongKind, true
	case float32:
		return FloatKind, true
	case float64:
		return DoubleKind, true
	case string:
		return StringKind, true
	case ByteString:
		return BytesKind, true
	case *Map:
		return MapKind, x != nil
	case *List:
		return ListKind, x != nil
	}
	return NullKind, false
}

func checkStorable(owner, v any) error {
	if _, ok := KindOf(v); !ok {
		return fmt.Errorf("%w: %T", ErrNotStorable, v)
	}
	if reaches(v, owner) {
		return ErrSelfReference
	}
	return nil
}

// reaches reports whether target is v or a container nested in v. Storing
// v in target would then make a cycle.
func reaches(v, target any) bool {
	if v == target {
		return true
	}
	switch x := v.(type) {
	case *Map:
		for _, c := range x.All() {
			if reaches(c, target) {
				return true
			}
		}
	case *List:
		for _, c := range x.All() {
			if reaches(c, target) {
				return true
			}
		}
	}
	return false
}
