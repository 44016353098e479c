// Package data provides the dynamically typed tree that typed views are
// layered over.
//
// # Overview
//
// A tree is built from two container types and a closed set of scalars:
//
//   - *Map: string keys to values, iterated in insertion order
//   - *List: an ordered sequence of values
//   - scalars: bool, int32, int64, float32, float64, string, ByteString and
//     the Null sentinel
//
// Null is an explicit value. It is distinct from an absent map entry, which
// is reported by the ok result of (*Map).Get.
//
// # Identity
//
// Every container is assigned a Handle when it is created. Handles are small
// process-unique integers; they never change for the life of the container
// and are not copied by Clone or Copy. Caches that need to recognize "the same
// container" use IdentityKey as a map key and Same to confirm a hit, which
// avoids hashing whole subtrees.
//
// # Clone and Copy
//
// Clone duplicates the container structure only: the result is a new
// container (with a new handle) holding the same child values, so nested
// containers are shared between the original and the clone. Copy duplicates
// every descendant container.
//
//	m := data.MapOf("a", data.ListOf(int32(1)))
//	c := m.Clone() // c.Get("a") is the same *List as m.Get("a")
//	d := m.Copy()  // d.Get("a") is a distinct *List
//
// # Encoding
//
// Unmarshal reads JSON or YAML while preserving key order. Marshal writes
// compact JSON.
package data
