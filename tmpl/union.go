package tmpl

import (
	"fmt"
	"reflect"

	"github.com/signadot/datatemplate/coerce"
	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/schema"
)

// NullMemberKey is the member key reported by a null union.
const NullMemberKey = "null"

// Union is a view of a union value: either null, or a map with exactly
// one entry whose key names the member and whose value is the member
// value. A union is null or valued for its whole life.
type Union struct {
	s *schema.Union
	m *data.Map

	// last member value converted or wrapped, keyed by its tree value.
	cached struct {
		raw any
		val any
	}
}

// NewUnion returns a view of v as a union of schema s. v may be data.Null,
// for the null union, or a map. A nil v gives a valued union over a new
// empty map.
func NewUnion(v any, s *schema.Union) (*Union, error) {
	u := &Union{s: s}
	switch x := v.(type) {
	case nil:
		u.m = data.NewMap()
	case data.NullValue:
	case *data.Map:
		u.m = x
	default:
		return nil, fmt.Errorf("%w: union data must be null or a map, got %T", ErrOutputType, v)
	}
	return u, nil
}

func (u *Union) Schema() schema.Schema { return u.s }

func (u *Union) Data() any {
	if u.m == nil {
		return data.Null
	}
	return u.m
}

func (u *Union) IsNull() bool {
	return u.m == nil
}

func (u *Union) checkNotNull() error {
	if u.m == nil {
		return fmt.Errorf("%w: %s", ErrNullUnion, u.s)
	}
	return nil
}

// MemberKey returns the key of the current member.
func (u *Union) MemberKey() (string, error) {
	if u.m == nil {
		return NullMemberKey, nil
	}
	if u.m.Len() != 1 {
		return "", fmt.Errorf("%w: union map must have exactly one entry, has %d", ErrOutputType, u.m.Len())
	}
	return u.m.Keys()[0], nil
}

// MemberType returns the schema of the current member.
func (u *Union) MemberType() (schema.Schema, error) {
	if u.m == nil {
		return schema.Null, nil
	}
	key, err := u.MemberKey()
	if err != nil {
		return nil, err
	}
	s, ok := u.s.Member(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a member of %s", ErrOutputType, key, u.s)
	}
	return s, nil
}

// MemberIs reports whether the current member has the given key.
func (u *Union) MemberIs(key string) bool {
	if u.m == nil {
		return key == NullMemberKey
	}
	return u.m.Len() == 1 && u.m.Has(key)
}

func (u *Union) member(key string) (schema.Schema, error) {
	s, ok := u.s.Member(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrUnknownMember, key, u.s)
	}
	return s, nil
}

// GetMember returns the value of a primitive, enum or custom typed member.
// ok is false when the current member is not key.
func GetMember[T any](u *Union, key string) (v T, ok bool, err error) {
	if err := u.checkNotNull(); err != nil {
		return v, false, err
	}
	if !u.MemberIs(key) {
		return v, false, nil
	}
	raw, _ := u.m.Get(key)
	custom := coerce.Custom[T]()
	if custom && u.cached.raw != nil && data.Same(u.cached.raw, raw) {
		if v, ok := u.cached.val.(T); ok {
			return v, true, nil
		}
	}
	s, err := u.member(key)
	if err != nil {
		return v, false, err
	}
	checked, err := readDirect(raw, s)
	if err != nil {
		return v, false, err
	}
	v, err = coerce.Output[T](checked)
	if err != nil {
		return v, false, err
	}
	if custom {
		u.remember(raw, v)
	}
	return v, true, nil
}

// GetWrappedMember returns a view of the member. ok is false when the
// current member is not key.
func GetWrappedMember[T Template](u *Union, key string) (v T, ok bool, err error) {
	if err := u.checkNotNull(); err != nil {
		return v, false, err
	}
	if !u.MemberIs(key) {
		return v, false, nil
	}
	raw, _ := u.m.Get(key)
	if u.cached.raw != nil && data.Same(u.cached.raw, raw) {
		if v, ok := u.cached.val.(T); ok {
			return v, true, nil
		}
	}
	s, err := u.member(key)
	if err != nil {
		return v, false, err
	}
	ctor, err := resolve(reflect.TypeFor[T](), s)
	if err != nil {
		return v, false, err
	}
	c, err := ctor(raw)
	if err != nil {
		return v, false, err
	}
	v, ok = c.(T)
	if !ok {
		return v, false, fmt.Errorf("%w: constructor returned %T", ErrNoConstructor, c)
	}
	u.remember(raw, v)
	return v, true, nil
}

// SelectMember makes key the member, with value v.
func SelectMember[T any](u *Union, key string, v T) error {
	if err := u.checkNotNull(); err != nil {
		return err
	}
	s, err := u.member(key)
	if err != nil {
		return err
	}
	raw, err := coerce.Input(v, schema.StorageKind(s))
	if err != nil {
		return err
	}
	if err := checkInput(raw, s); err != nil {
		return err
	}
	if err := u.selectRaw(key, raw); err != nil {
		return err
	}
	if coerce.Custom[T]() {
		u.remember(raw, v)
	}
	return nil
}

// SelectWrappedMember makes key the member, with the tree value of v.
func SelectWrappedMember[T Template](u *Union, key string, v T) error {
	if err := u.checkNotNull(); err != nil {
		return err
	}
	s, err := u.member(key)
	if err != nil {
		return err
	}
	raw, err := unwrap(v, s)
	if err != nil {
		return err
	}
	if err := u.selectRaw(key, raw); err != nil {
		return err
	}
	u.remember(raw, v)
	return nil
}

func (u *Union) selectRaw(key string, raw any) error {
	if raw == any(u.m) {
		return data.ErrSelfReference
	}
	u.m.Clear()
	u.forget()
	return u.m.Put(key, raw)
}

func (u *Union) remember(raw, v any) {
	u.cached.raw, u.cached.val = raw, v
}

func (u *Union) forget() {
	u.cached.raw, u.cached.val = nil, nil
}

// Clone returns a view of a shallow clone of the map, keeping the cached
// member.
func (u *Union) Clone() *Union {
	c := &Union{s: u.s, cached: u.cached}
	if u.m != nil {
		c.m = u.m.Clone()
	}
	return c
}

// Copy returns a view of a deep copy of the map with no cached member.
func (u *Union) Copy() *Union {
	c := &Union{s: u.s}
	if u.m != nil {
		c.m = u.m.Copy()
	}
	return c
}

func (u *Union) Equal(o *Union) bool {
	if u == nil || o == nil {
		return u == o
	}
	return data.Equal(u.Data(), o.Data())
}

func (u *Union) Hash() uint64 {
	return data.Hash(u.Data())
}

func (u *Union) String() string {
	if u.m == nil {
		return "null"
	}
	return u.m.String()
}
