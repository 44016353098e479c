package tmpl

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/schema"
)

func TestDirectArray(t *testing.T) {
	a, err := NewDirectArray[int32](nil, intsSchema)
	if err != nil {
		t.Fatal(err)
	}
	steps := []struct {
		name string
		op   func() error
		want []int32
	}{
		{"append", func() error { return a.Append(1, 2, 3) }, []int32{1, 2, 3}},
		{"insert front", func() error { return a.Insert(0, 0) }, []int32{0, 1, 2, 3}},
		{"insert end", func() error { return a.Insert(4, 4) }, []int32{0, 1, 2, 3, 4}},
		{"set", func() error { return a.Set(2, 20) }, []int32{0, 1, 20, 3, 4}},
		{"remove", func() error {
			v, err := a.Remove(1)
			if err == nil && v != 1 {
				t.Errorf("removed %d", v)
			}
			return err
		}, []int32{0, 20, 3, 4}},
		{"remove range", func() error { return a.RemoveRange(1, 3) }, []int32{0, 4}},
	}
	for _, st := range steps {
		if err := st.op(); err != nil {
			t.Fatalf("%s: %v", st.name, err)
		}
		got, err := a.Values()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(st.want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", st.name, diff)
		}
	}
	if a.IndexOf(4) != 1 || !a.Contains(0) || a.Contains(7) {
		t.Error("IndexOf/Contains")
	}
	if _, err := a.Get(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Get(5): %v", err)
	}
	if err := a.RemoveRange(1, 9); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveRange: %v", err)
	}
}

func TestDirectArrayTypeErrors(t *testing.T) {
	a, err := NewGenericArray(nil, intsSchema)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Append(int32(1), "x"); !errors.Is(err, ErrInputType) {
		t.Errorf("append string: %v", err)
	}
	if a.Len() != 0 {
		t.Errorf("failed append left %d elements", a.Len())
	}
	if a.Contains("x") {
		t.Error("Contains of an unconvertible value")
	}

	b, _ := NewDirectArray[int32](data.ListOf("x"), intsSchema)
	if _, err := b.Get(0); !errors.Is(err, ErrOutputType) {
		t.Errorf("get string as int: %v", err)
	}
	if err := b.Range(func(int, int32) bool { return true }); !errors.Is(err, ErrOutputType) {
		t.Errorf("range: %v", err)
	}
	if _, err := NewDirectArray[int32](nil, barsSchema); !errors.Is(err, ErrNoConstructor) {
		t.Errorf("direct array of records: %v", err)
	}
}

func TestWrappingArray(t *testing.T) {
	a, err := NewWrappingArray[*Bar](data.ListOf(data.MapOf("x", int32(1))), barsSchema)
	if err != nil {
		t.Fatal(err)
	}
	b0, err := a.Get(0)
	if err != nil {
		t.Fatal(err)
	}
	if again, _ := a.Get(0); again != b0 {
		t.Error("element view not stable")
	}

	nb := NewBar(nil)
	_ = nb.SetX(5)
	if err := a.Append(nb); err != nil {
		t.Fatal(err)
	}
	if got, _ := a.Get(1); got != nb {
		t.Error("appended view not returned")
	}
	if !a.Contains(nb) || a.IndexOf(nb) != 1 {
		t.Error("Contains appended view")
	}

	repl := NewBar(data.MapOf("x", int32(9)))
	if err := a.Set(0, repl); err != nil {
		t.Fatal(err)
	}
	if got, _ := a.Get(0); got != repl {
		t.Error("Set did not replace the cached view")
	}

	removed, err := a.Remove(0)
	if err != nil || removed != repl {
		t.Errorf("Remove = %v %v", removed, err)
	}
	if a.Len() != 1 {
		t.Errorf("len = %d", a.Len())
	}

	var nilBar *Bar
	if err := a.Append(nilBar); !errors.Is(err, ErrNullNotAllowed) {
		t.Errorf("append nil: %v", err)
	}
	if a.Contains(nilBar) {
		t.Error("Contains(nil)")
	}
	fa, err := NewWrappingArray[*Foo](nil, barsSchema)
	if err != nil {
		t.Fatal(err)
	}
	if err := fa.Append(NewFoo(nil)); !errors.Is(err, ErrInputType) {
		t.Errorf("foo into bar array: %v", err)
	}
}

func TestWrappingArrayNoConstructor(t *testing.T) {
	type unregistered struct{ *Record }
	if _, err := NewWrappingArray[*unregistered](nil, barsSchema); !errors.Is(err, ErrNoConstructor) {
		t.Errorf("got %v", err)
	}
	// *Bar has no list constructor
	nested := schema.NewArray(schema.NewArray(barSchema))
	if _, err := NewWrappingArray[*Bar](nil, nested); !errors.Is(err, ErrNoConstructor) {
		t.Errorf("got %v", err)
	}
}

func TestArrayCloneAndCopy(t *testing.T) {
	a, _ := NewWrappingArray[*Bar](data.ListOf(data.MapOf("x", int32(1))), barsSchema)
	b0, _ := a.Get(0)

	clone := a.Clone()
	if got, _ := clone.Get(0); got != b0 {
		t.Error("clone lost the cached view")
	}
	_ = clone.Append(NewBar(nil))
	if a.Len() != 1 {
		t.Error("clone append visible in original")
	}

	cp := a.Copy()
	c0, _ := cp.Get(0)
	if c0 == b0 || c0.Map() == b0.Map() {
		t.Error("copy shares the element")
	}
	_ = b0.SetX(2)
	if x, _, _ := c0.X(); x != 1 {
		t.Errorf("copy saw write: x = %d", x)
	}
	if !cp.Equal(cp.Copy()) || cp.Hash() != cp.Copy().Hash() {
		t.Error("copies not equal")
	}
}

func TestGenericArray(t *testing.T) {
	a, err := NewGenericArray(data.ListOf(data.MapOf("x", int32(1))), barsSchema)
	if err != nil {
		t.Fatal(err)
	}
	e, err := a.Get(0)
	if err != nil {
		t.Fatal(err)
	}
	r, ok := e.(*Record)
	if !ok {
		t.Fatalf("got %T", e)
	}
	if again, _ := a.Get(0); again != e {
		t.Error("generic element not stable")
	}
	if x, _, _ := GetDirect[int32](r, barX, GetStrict); x != 1 {
		t.Errorf("x = %d", x)
	}
	if err := a.Append(NewBar(nil)); err != nil {
		t.Errorf("append generated view: %v", err)
	}
	if err := a.Append(int32(1)); !errors.Is(err, ErrInputType) {
		t.Errorf("append scalar: %v", err)
	}
}

func TestGenericArrayChecksElements(t *testing.T) {
	a, err := NewGenericArray(data.ListOf(int32(1), "abc", int64(9)), schema.NewArray(schema.Int))
	if err != nil {
		t.Fatal(err)
	}
	if v, err := a.Get(0); err != nil || v != int32(1) {
		t.Errorf("Get(0) = %T %v, %v", v, v, err)
	}
	if v, err := a.Get(1); !errors.Is(err, ErrOutputType) || errors.Is(err, ErrInputType) {
		t.Errorf("Get(1) = %v, %v; want an output type error", v, err)
	}
	if v, err := a.Get(2); err != nil || v != int32(9) {
		t.Errorf("Get(2) = %T %v, %v", v, v, err)
	}
	if _, err := a.Values(); !errors.Is(err, ErrOutputType) {
		t.Errorf("Values: %v", err)
	}

	enum := schema.NewEnum("test.AB", "A", "B")
	e, err := NewGenericArray(data.ListOf("A", "ZZZ"), schema.NewArray(enum))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Get(1); !errors.Is(err, ErrOutputType) {
		t.Errorf("Get(ZZZ): %v", err)
	}
	if err := e.Append("ZZZ"); !errors.Is(err, ErrInputType) {
		t.Errorf("Append(ZZZ): %v", err)
	}
	if err := e.Set(0, "C"); !errors.Is(err, ErrInputType) {
		t.Errorf("Set(0, C): %v", err)
	}
	if e.Len() != 2 || e.Contains("C") {
		t.Errorf("failed writes changed the list: %v", e.Data())
	}
	s, err := NewDirectArray[string](nil, schema.NewArray(enum))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Append("B", "PURPLE"); !errors.Is(err, ErrInputType) {
		t.Errorf("direct Append(PURPLE): %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("failed append left %d elements", s.Len())
	}
}
