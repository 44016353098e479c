package tmpl

import (
	"errors"
	"testing"

	"github.com/signadot/datatemplate/data"
)

func TestFixed(t *testing.T) {
	tests := []struct {
		name string
		in   any
		err  error
	}{
		{"three bytes", []byte{1, 2, 3}, ErrWrongSize},
		{"four bytes", []byte{1, 2, 3, 4}, nil},
		{"byte string", data.BytesOf("abcd"), nil},
		{"avro string", "ÿþ\u0000a", nil},
		{"long avro string", "abcde", ErrWrongSize},
		{"invalid avro string", "ĀĀĀĀ", ErrInvalidEncoding},
		{"not bytes", int32(4), ErrOutputType},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewFixed(tc.in, hashSchema)
			if !errors.Is(err, tc.err) {
				t.Fatalf("err = %v, want %v", err, tc.err)
			}
			if err == nil && f.Bytes().Len() != 4 {
				t.Errorf("len = %d", f.Bytes().Len())
			}
		})
	}
}

func TestFixedEquality(t *testing.T) {
	a, _ := NewFixed([]byte("abcd"), hashSchema)
	b, _ := NewFixed("abcd", hashSchema)
	c, _ := NewFixed("abce", hashSchema)
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Error("equal payloads differ")
	}
	if a.Equal(c) {
		t.Error("different payloads equal")
	}
}

func TestFixedField(t *testing.T) {
	foo := NewFoo(data.MapOf("hash", "abcd"))
	f, ok, err := GetWrapped[*Fixed](foo.Record, fHash, GetStrict)
	if err != nil || !ok {
		t.Fatal(ok, err)
	}
	if f.Bytes().Raw() != "abcd" {
		t.Errorf("bytes = %q", f.Bytes().Raw())
	}
	g, _ := NewFixed([]byte{0, 1, 2, 3}, hashSchema)
	if err := SetWrapped(foo.Record, fHash, g, DisallowNull); err != nil {
		t.Fatal(err)
	}
	if raw, _ := foo.Map().Get("hash"); raw != data.BytesOf("\x00\x01\x02\x03") {
		t.Errorf("stored %v", raw)
	}
}
