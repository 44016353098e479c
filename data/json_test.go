package data

import (
	"math"
	"testing"
)

func TestUnmarshalPreservesOrder(t *testing.T) {
	v, err := Unmarshal([]byte(`{"z": 1, "a": [true, null, 2.5, "s"], "big": 5000000000}`))
	if err != nil {
		t.Fatal(err)
	}
	m := v.(*Map)
	got, err := Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"z":1,"a":[true,null,2.5,"s"],"big":5000000000}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if z, _ := m.Get("z"); z != int32(1) {
		t.Errorf("z = %T %v, want int32", z, z)
	}
	if big, _ := m.Get("big"); big != int64(5000000000) {
		t.Errorf("big = %T %v, want int64", big, big)
	}
}

func TestUnmarshalYAML(t *testing.T) {
	v, err := Unmarshal([]byte("b: x\na:\n  - 1\n  - 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := MapOf("b", "x", "a", ListOf(int32(1), int32(2)))
	if !Equal(v, want) {
		t.Errorf("got %v, want %v", v, want)
	}
	if keys := v.(*Map).Keys(); keys[0] != "b" {
		t.Errorf("order lost: %v", keys)
	}
}

func TestMarshalScalars(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{Null, "null"},
		{float64(2), "2.0"},
		{float32(1.5), "1.5"},
		{math.Inf(-1), `"-Infinity"`},
		{math.NaN(), `"NaN"`},
		{BytesOf("\x01\xff"), `"\u0001ÿ"`},
		{"q\"", `"q\""`},
	}
	for _, tt := range tests {
		got, err := Marshal(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestAvroString(t *testing.T) {
	b := CopyBytes([]byte{0, 1, 0x7f, 0x80, 0xff})
	back, ok := FromAvroString(b.AvroString())
	if !ok || back != b {
		t.Errorf("round trip failed: %v %v", back, ok)
	}
	if _, ok := FromAvroString("Ā"); ok {
		t.Error("code point above U+00FF accepted")
	}
}
