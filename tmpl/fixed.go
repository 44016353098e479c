package tmpl

import (
	"fmt"

	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/schema"
)

// Fixed is a view of a byte string whose length is fixed by its schema.
type Fixed struct {
	s *schema.Fixed
	b data.ByteString
}

// NewFixed returns a view of v, which may be a data.ByteString, a []byte or
// a string in avro string form.
func NewFixed(v any, s *schema.Fixed) (*Fixed, error) {
	var b data.ByteString
	switch x := v.(type) {
	case data.ByteString:
		b = x
	case []byte:
		b = data.CopyBytes(x)
	case string:
		var ok bool
		if b, ok = data.FromAvroString(x); !ok {
			return nil, fmt.Errorf("%w: %s: %q is not an avro string", ErrInvalidEncoding, s, x)
		}
	default:
		return nil, fmt.Errorf("%w: %s expects bytes, got %T", ErrOutputType, s, v)
	}
	if b.Len() != s.Size {
		return nil, fmt.Errorf("%w: %s has size %d, got %d bytes", ErrWrongSize, s, s.Size, b.Len())
	}
	return &Fixed{s: s, b: b}, nil
}

func (f *Fixed) Schema() schema.Schema { return f.s }
func (f *Fixed) Data() any             { return f.b }

func (f *Fixed) Bytes() data.ByteString { return f.b }

func (f *Fixed) Equal(o *Fixed) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.b == o.b
}

func (f *Fixed) Hash() uint64 {
	return data.Hash(f.b)
}

func (f *Fixed) String() string {
	return f.b.AvroString()
}
