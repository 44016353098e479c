package data

import (
	"math"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     any
		expected int
	}{
		{"Null < Bool", Null, false, -1},
		{"Bool < Number", true, int32(1), -1},
		{"Number < String", int64(1), "a", -1},
		{"String < Bytes", "a", BytesOf("a"), -1},
		{"Bytes < List", BytesOf("a"), NewList(), -1},
		{"List < Map", NewList(), NewMap(), -1},
		{"false < true", false, true, -1},
		{"int < long", int32(1), int64(2), -1},
		{"int == long", int32(2), int64(2), 0},
		{"float < double", float32(1.5), 2.5, -1},
		{"short list", ListOf(int32(1)), ListOf(int32(1), int32(2)), -1},
		{"list elem", ListOf(int32(1)), ListOf(int32(2)), -1},
		{"map key", MapOf("a", int32(1)), MapOf("b", int32(1)), -1},
		{"map value", MapOf("a", int32(1)), MapOf("a", int32(2)), -1},
		{"map order ignored", MapOf("a", int32(1), "b", int32(2)), MapOf("b", int32(2), "a", int32(1)), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %v, want %v", got, tt.expected)
			}
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("Compare(b, a) = %v, want %v", got, -tt.expected)
			}
		})
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	a := MapOf("x", ListOf("p", BytesOf("\x00\xff")), "y", 1.5)
	b := MapOf("y", 1.5, "x", ListOf("p", BytesOf("\x00\xff")))
	if !Equal(a, b) {
		t.Fatal("maps should be equal")
	}
	if Hash(a) != Hash(b) {
		t.Error("equal maps hash differently")
	}
	if Hash(int32(1)) == Hash(int64(1)) {
		t.Error("int and long hash the same")
	}
	if Equal(math.NaN(), math.NaN()) {
		t.Error("NaN equal to itself")
	}
}
