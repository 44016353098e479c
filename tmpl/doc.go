// Package tmpl provides typed views over data trees.
//
// A view pairs a schema with a tree value and exposes typed accessors
// while the tree stays the source of truth: writes go straight into the
// tree, and the same tree may be encoded, diffed or projected without
// knowing about the views.
//
// Records, arrays, maps, unions and fixed byte strings each have a view
// type. Nested views are built lazily and memoized in a per view identity
// cache, so reading an unchanged position twice returns the same view.
// Scalars are converted with package coerce.
//
// Views are not safe for concurrent mutation. Hand a Copy to another
// goroutine instead of sharing a view.
package tmpl
