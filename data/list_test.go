package data

import (
	"errors"
	"testing"
)

func TestListOps(t *testing.T) {
	l := ListOf("a", "b", "c", "d")
	if err := l.Insert(4, "e"); err != nil {
		t.Fatal(err)
	}
	if err := l.Insert(0, "start"); err != nil {
		t.Fatal(err)
	}
	if v, err := l.Remove(1); err != nil || v != "a" {
		t.Fatalf("Remove(1) = %v, %v", v, err)
	}
	if err := l.RemoveRange(1, 3); err != nil {
		t.Fatal(err)
	}
	want := ListOf("start", "d", "e")
	if !Equal(l, want) {
		t.Errorf("got %v, want %v", l, want)
	}
	if old, err := l.Set(2, "E"); err != nil || old != "e" {
		t.Errorf("Set = %v, %v", old, err)
	}
	if i := l.IndexOf("E"); i != 2 {
		t.Errorf("IndexOf = %d", i)
	}
}

func TestListBounds(t *testing.T) {
	l := ListOf(int32(1))
	tests := []struct {
		name string
		op   func() error
	}{
		{"get", func() error { _, err := l.Get(1); return err }},
		{"set", func() error { _, err := l.Set(-1, int32(0)); return err }},
		{"insert", func() error { return l.Insert(2, int32(0)) }},
		{"remove", func() error { _, err := l.Remove(1); return err }},
		{"range", func() error { return l.RemoveRange(1, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.op(); !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("err = %v, want ErrIndexOutOfRange", err)
			}
		})
	}
}
