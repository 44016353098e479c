package tmpl

import (
	"testing"

	"github.com/signadot/datatemplate/data"
)

func TestCache(t *testing.T) {
	c := newCache(4)
	a, b := data.NewMap(), data.NewMap()
	c.Put(a, "A")
	if v, ok := c.Get(a); !ok || v != "A" {
		t.Errorf("Get(a) = %v %v", v, ok)
	}
	if _, ok := c.Get(b); ok {
		t.Error("Get(b) hit")
	}
	// an equal but distinct container is a different node
	if _, ok := c.Get(a.Clone()); ok {
		t.Error("clone hit")
	}
	c.Put(int64(5), "five")
	if _, ok := c.Get(int32(5)); ok {
		t.Error("int32 hit the int64 entry")
	}
	if v, _ := c.Get(int64(5)); v != "five" {
		t.Errorf("scalar entry = %v", v)
	}

	cl := c.Clone()
	c.Remove(b)
	if c.Len() != 2 {
		t.Error("Remove of an absent node removed an entry")
	}
	c.Remove(a)
	if _, ok := c.Get(a); ok {
		t.Error("removed entry still present")
	}
	if _, ok := cl.Get(a); !ok {
		t.Error("remove visible in clone")
	}
}
