package data

import (
	"cmp"
	"strings"
)

// Equal reports whether a and b are structurally equal. Maps are equal when
// they hold the same keys with Equal values regardless of insertion order.
// Numbers are equal only when they have the same kind and value.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case *Map:
		y, ok := b.(*Map)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if x.Len() != y.Len() {
			return false
		}
		for i, k := range x.keys {
			yv, ok := y.Get(k)
			if !ok || !Equal(x.vals[i], yv) {
				return false
			}
		}
		return true
	case *List:
		y, ok := b.(*List)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if len(x.vals) != len(y.vals) {
			return false
		}
		for i := range x.vals {
			if !Equal(x.vals[i], y.vals[i]) {
				return false
			}
		}
		return true
	}
	if _, ok := b.(*Map); ok {
		return false
	}
	if _, ok := b.(*List); ok {
		return false
	}
	return a == b
}

// Compare returns an integer comparing two values.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Values of different kinds order by kind rank:
// Null < Bool < Number < String < Bytes < List < Map.
func Compare(a, b any) int {
	ka, _ := KindOf(a)
	kb, _ := KindOf(b)
	ra, rb := rank(ka), rank(kb)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ka {
	case NullKind:
		return 0
	case BoolKind:
		x, y := a.(bool), b.(bool)
		if x == y {
			return 0
		}
		if !x {
			return -1
		}
		return 1
	case IntKind, LongKind, FloatKind, DoubleKind:
		return compareNumbers(a, b)
	case StringKind:
		return strings.Compare(a.(string), b.(string))
	case BytesKind:
		return strings.Compare(a.(ByteString).s, b.(ByteString).s)
	case ListKind:
		return compareLists(a.(*List), b.(*List))
	case MapKind:
		return compareMaps(a.(*Map), b.(*Map))
	}
	return 0
}

func rank(k Kind) int {
	switch k {
	case NullKind:
		return 0
	case BoolKind:
		return 1
	case IntKind, LongKind, FloatKind, DoubleKind:
		return 2
	case StringKind:
		return 3
	case BytesKind:
		return 4
	case ListKind:
		return 5
	case MapKind:
		return 6
	}
	return 7
}

func compareNumbers(a, b any) int {
	ia, aInt := asInt64(a)
	ib, bInt := asInt64(b)
	if aInt && bInt {
		return cmp.Compare(ia, ib)
	}
	return cmp.Compare(asFloat64(a), asFloat64(b))
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int32:
		return int64(x), true
	case int64:
		return x, true
	}
	return 0, false
}

func asFloat64(v any) float64 {
	switch x := v.(type) {
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	}
	return 0
}

func compareLists(a, b *List) int {
	n := min(len(a.vals), len(b.vals))
	for i := range n {
		if c := Compare(a.vals[i], b.vals[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.vals), len(b.vals))
}

// compareMaps orders by sorted keys, then values in key order.
func compareMaps(a, b *Map) int {
	ak, bk := sortedKeys(a), sortedKeys(b)
	n := min(len(ak), len(bk))
	for i := range n {
		if c := strings.Compare(ak[i], bk[i]); c != 0 {
			return c
		}
		av, _ := a.Get(ak[i])
		bv, _ := b.Get(bk[i])
		if c := Compare(av, bv); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ak), len(bk))
}
