package data

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMapInsertionOrder(t *testing.T) {
	m := NewMap()
	for _, k := range []string{"z", "a", "m"} {
		if err := m.Put(k, k); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Put("a", "again"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, m.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if _, ok := m.Remove("z"); !ok {
		t.Fatal("expected z to be removed")
	}
	if diff := cmp.Diff([]string{"a", "m"}, m.Keys()); diff != "" {
		t.Errorf("keys after remove (-want +got):\n%s", diff)
	}
	v, ok := m.Get("m")
	if !ok || v != "m" {
		t.Errorf("Get(m) = %v, %v", v, ok)
	}
}

func TestMapPutRejects(t *testing.T) {
	m := NewMap()
	if err := m.Put("x", 3); !errors.Is(err, ErrNotStorable) {
		t.Errorf("Put(int) err = %v, want ErrNotStorable", err)
	}
	if err := m.Put("x", nil); !errors.Is(err, ErrNotStorable) {
		t.Errorf("Put(nil) err = %v, want ErrNotStorable", err)
	}
	if err := m.Put("self", m); !errors.Is(err, ErrSelfReference) {
		t.Errorf("Put(self) err = %v, want ErrSelfReference", err)
	}
	if m.Len() != 0 {
		t.Errorf("failed puts changed the map: %v", m)
	}
}

func TestPutRejectsCycles(t *testing.T) {
	a, b := NewMap(), NewMap()
	if err := a.Put("b", b); err != nil {
		t.Fatal(err)
	}
	if err := b.Put("a", a); !errors.Is(err, ErrSelfReference) {
		t.Errorf("b.Put(a) err = %v, want ErrSelfReference", err)
	}
	l := ListOf(MapOf("c", NewList()))
	if err := b.Put("l", l); err != nil {
		t.Fatal(err)
	}
	inner, _ := l.Get(0)
	c, _ := inner.(*Map).Get("c")
	if err := c.(*List).Append(a); !errors.Is(err, ErrSelfReference) {
		t.Errorf("Append(a) err = %v, want ErrSelfReference", err)
	}
	if _, err := l.Set(0, b); !errors.Is(err, ErrSelfReference) {
		t.Errorf("Set(0, b) err = %v, want ErrSelfReference", err)
	}
	if err := a.Put("b2", b); err != nil {
		t.Errorf("sharing a child twice: %v", err)
	}
	if !Equal(a.Copy(), a) {
		t.Errorf("Copy() differs from %v", a)
	}
}

func TestCloneSharesCopyDuplicates(t *testing.T) {
	inner := ListOf(int32(1), int32(2))
	m := MapOf("list", inner, "s", "x")

	c := m.Clone()
	if c.Handle() == m.Handle() {
		t.Error("clone kept the handle")
	}
	cv, _ := c.Get("list")
	if cv.(*List) != inner {
		t.Error("clone does not share nested list")
	}
	if err := c.Put("s", "y"); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.Get("s"); v != "x" {
		t.Error("clone top-level write visible in original")
	}

	d := m.Copy()
	dv, _ := d.Get("list")
	if dv.(*List) == inner {
		t.Error("copy shares nested list")
	}
	if !Equal(d, m) {
		t.Errorf("copy %v not equal to original %v", d, m)
	}
	if err := dv.(*List).Append(int32(3)); err != nil {
		t.Fatal(err)
	}
	if inner.Len() != 2 {
		t.Error("copy mutation visible in original")
	}
}

func TestSameAndIdentityKey(t *testing.T) {
	a := MapOf("k", int32(1))
	b := a.Copy()
	tests := []struct {
		name string
		x, y any
		same bool
	}{
		{"same map", a, a, true},
		{"equal maps", a, b, false},
		{"equal ints", int32(1), int32(1), true},
		{"int vs long", int32(1), int64(1), false},
		{"bytes", BytesOf("ab"), BytesOf("ab"), true},
		{"null", Null, Null, true},
		{"map vs scalar", a, "k", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Same(tt.x, tt.y); got != tt.same {
				t.Errorf("Same() = %v, want %v", got, tt.same)
			}
		})
	}
	if IdentityKey(a) != a.Handle() {
		t.Error("map identity key is not its handle")
	}
	if IdentityKey("s") != Hash("s") {
		t.Error("scalar identity key is not its hash")
	}
}
