package schema

import (
	"fmt"
	"strings"
)

// Member is one alternative of a Union. Key is the discriminator stored in
// the data tree; when empty it defaults to UnionKey(Type).
type Member struct {
	Key  string
	Type Schema
}

// Union describes a value that holds at most one of its members.
type Union struct {
	members []Member
	byKey   map[string]int
}

func NewUnion(members ...Member) (*Union, error) {
	u := &Union{byKey: make(map[string]int, len(members))}
	for _, m := range members {
		if m.Type == nil {
			return nil, fmt.Errorf("union member %q has no type", m.Key)
		}
		if m.Key == "" {
			m.Key = UnionKey(m.Type)
		}
		if _, dup := u.byKey[m.Key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMember, m.Key)
		}
		u.byKey[m.Key] = len(u.members)
		u.members = append(u.members, m)
	}
	return u, nil
}

// UnionOf builds a union keyed by the members' default keys.
func UnionOf(types ...Schema) (*Union, error) {
	ms := make([]Member, len(types))
	for i, t := range types {
		ms[i] = Member{Type: t}
	}
	return NewUnion(ms...)
}

func (u *Union) Kind() Kind { return UnionKind }

func (u *Union) String() string {
	keys := make([]string, len(u.members))
	for i, m := range u.members {
		keys[i] = m.Key
	}
	return "union[" + strings.Join(keys, ",") + "]"
}

func (u *Union) Members() []Member {
	return u.members
}

// Member returns the type of the member with the given key.
func (u *Union) Member(key string) (Schema, bool) {
	i, ok := u.byKey[key]
	if !ok {
		return nil, false
	}
	return u.members[i].Type, true
}

// HasNull reports whether null is a member.
func (u *Union) HasNull() bool {
	_, ok := u.byKey[NullKind.String()]
	return ok
}
