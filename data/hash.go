package data

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var seed = maphash.MakeSeed()

// Hash returns a 64-bit structural hash of v. Values that are Equal have the
// same hash within a process. Numeric kinds hash by kind and value, so
// int32(1) and int64(1) hash differently.
func Hash(v any) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	writeHash(&h, v)
	return h.Sum64()
}

func writeHash(h *maphash.Hash, v any) {
	k, _ := KindOf(v)
	h.WriteByte(byte(k))
	var b [8]byte
	switch x := v.(type) {
	case bool:
		if x {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case int32:
		binary.LittleEndian.PutUint64(b[:], uint64(x))
		h.Write(b[:])
	case int64:
		binary.LittleEndian.PutUint64(b[:], uint64(x))
		h.Write(b[:])
	case float32:
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(float64(x)))
		h.Write(b[:])
	case float64:
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(x))
		h.Write(b[:])
	case string:
		h.WriteString(x)
	case ByteString:
		h.WriteString(x.s)
	case *List:
		for _, e := range x.vals {
			// order dependent
			binary.LittleEndian.PutUint64(b[:], Hash(e))
			h.Write(b[:])
		}
	case *Map:
		// Equal maps may differ in insertion order, so entries are combined
		// with an order independent sum.
		var sum uint64
		for i, key := range x.keys {
			var eh maphash.Hash
			eh.SetSeed(seed)
			eh.WriteString(key)
			binary.LittleEndian.PutUint64(b[:], Hash(x.vals[i]))
			eh.Write(b[:])
			sum += eh.Sum64()
		}
		binary.LittleEndian.PutUint64(b[:], sum)
		h.Write(b[:])
	}
}
