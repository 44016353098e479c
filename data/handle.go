package data

import "sync/atomic"

var lastHandle atomic.Uint64

func nextHandle() uint64 {
	return lastHandle.Add(1)
}

// IdentityKey returns a cheap key identifying v. For containers it is the
// container's handle; for scalars it is the structural hash. Two values with
// the same key are not necessarily the same value, use Same to confirm.
func IdentityKey(v any) uint64 {
	switch x := v.(type) {
	case *Map:
		return x.handle
	case *List:
		return x.handle
	}
	return Hash(v)
}

// Same reports whether a and b are the same tree value: the same container
// (pointer identity) or equal scalars.
func Same(a, b any) bool {
	switch x := a.(type) {
	case *Map:
		y, ok := b.(*Map)
		return ok && x == y
	case *List:
		y, ok := b.(*List)
		return ok && x == y
	}
	if _, ok := KindOf(a); !ok {
		return false
	}
	if kb, ok := KindOf(b); !ok || kb.IsContainer() {
		return false
	}
	return a == b
}
