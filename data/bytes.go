package data

import (
	"strings"
	"unicode/utf8"
)

// ByteString is an immutable byte sequence. It is comparable and may be
// used as a map key.
type ByteString struct {
	s string
}

// CopyBytes returns a ByteString holding a copy of b.
func CopyBytes(b []byte) ByteString {
	return ByteString{s: string(b)}
}

// BytesOf returns a ByteString holding the bytes of s.
func BytesOf(s string) ByteString {
	return ByteString{s: s}
}

// Bytes returns a copy of the bytes.
func (b ByteString) Bytes() []byte {
	return []byte(b.s)
}

func (b ByteString) Len() int {
	return len(b.s)
}

// Raw returns the bytes as a Go string without any encoding.
func (b ByteString) Raw() string {
	return b.s
}

// AvroString encodes the bytes as a string with one code point per byte,
// in the range U+0000 to U+00FF.
func (b ByteString) AvroString() string {
	var sb strings.Builder
	sb.Grow(len(b.s) * 2)
	for i := 0; i < len(b.s); i++ {
		sb.WriteRune(rune(b.s[i]))
	}
	return sb.String()
}

func (b ByteString) String() string {
	return b.AvroString()
}

// FromAvroString decodes a string produced by AvroString. ok is false when s
// contains a code point above U+00FF or is not valid UTF-8.
func FromAvroString(s string) (b ByteString, ok bool) {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && n <= 1 {
			return ByteString{}, false
		}
		if r > 0xFF {
			return ByteString{}, false
		}
		buf = append(buf, byte(r))
		i += n
	}
	return ByteString{s: string(buf)}, true
}

// Equal reports whether b and o hold the same bytes.
func (b ByteString) Equal(o ByteString) bool {
	return b.s == o.s
}
