package tmpl

import (
	"maps"

	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/debug"
)

// Cache maps tree values to the views built over them. Entries are keyed
// by data.IdentityKey and checked with data.Same, so an entry whose node
// has been replaced in the tree is never returned.
type Cache struct {
	capacity int
	entries  map[uint64]cacheEntry
}

type cacheEntry struct {
	node any
	val  any
}

func newCache(capacity int) *Cache {
	return &Cache{capacity: capacity}
}

// Get returns the value cached for node.
func (c *Cache) Get(node any) (any, bool) {
	e, ok := c.entries[data.IdentityKey(node)]
	if !ok || !data.Same(e.node, node) {
		if debug.Cache() {
			debug.Logf("cache miss", "node", data.IdentityKey(node), "stale", ok)
		}
		return nil, false
	}
	if debug.Cache() {
		debug.Logf("cache hit", "node", data.IdentityKey(node))
	}
	return e.val, true
}

// Put caches val for node, replacing any previous entry with the same key.
func (c *Cache) Put(node, val any) {
	if c.entries == nil {
		c.entries = make(map[uint64]cacheEntry, c.capacity)
	}
	c.entries[data.IdentityKey(node)] = cacheEntry{node: node, val: val}
}

// Remove drops the entry for node, if it is cached.
func (c *Cache) Remove(node any) {
	k := data.IdentityKey(node)
	if e, ok := c.entries[k]; ok && data.Same(e.node, node) {
		delete(c.entries, k)
	}
}

func (c *Cache) Len() int {
	return len(c.entries)
}

// Clone returns a cache holding the same entries.
func (c *Cache) Clone() *Cache {
	return &Cache{capacity: c.capacity, entries: maps.Clone(c.entries)}
}

// Option configures a view.
type Option func(*options)

type options struct {
	cacheCapacity int
}

// WithCacheCapacity sets the initial capacity of a view's identity cache.
func WithCacheCapacity(n int) Option {
	return func(o *options) { o.cacheCapacity = n }
}

func applyOptions(opts []Option) options {
	var o options
	for _, f := range opts {
		f(&o)
	}
	return o
}
