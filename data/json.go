package data

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	gojson "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Unmarshal decodes a JSON or YAML document into a tree, preserving the
// order of object keys.
func Unmarshal(d []byte) (any, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return fromDecoded(v)
}

// UnmarshalAll decodes every document of a YAML stream.
func UnmarshalAll(d []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(d), yaml.UseOrderedMap())
	var res []any
	for i := 0; ; i++ {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		t, err := fromDecoded(v)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		res = append(res, t)
	}
}

func fromDecoded(v any) (any, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		m := NewMapSize(len(x))
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}
			d, err := fromDecoded(item.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			if err := m.Put(key, d); err != nil {
				return nil, err
			}
		}
		return m, nil
	case []any:
		l := NewListSize(len(x))
		for i, e := range x {
			d, err := fromDecoded(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			l.vals = append(l.vals, d)
		}
		return l, nil
	case map[string]any:
		return FromNative(x)
	}
	return FromNative(v)
}

// Marshal encodes a tree as compact JSON. Map keys are written in insertion
// order. Non-finite floats are written as the strings "NaN", "Infinity" and
// "-Infinity".
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *Map) MarshalJSON() ([]byte, error) {
	return Marshal(m)
}

func (l *List) MarshalJSON() ([]byte, error) {
	return Marshal(l)
}

func writeJSON(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case NullValue:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(x))
	case int32:
		buf.WriteString(strconv.FormatInt(int64(x), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(x, 10))
	case float32:
		return writeFloat(buf, float64(x), 32)
	case float64:
		return writeFloat(buf, x, 64)
	case string:
		return writeString(buf, x)
	case ByteString:
		return writeString(buf, x.AvroString())
	case *List:
		buf.WriteByte('[')
		for i, e := range x.vals {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *Map:
		buf.WriteByte('{')
		for i, k := range x.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, x.vals[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: %T", ErrNotStorable, v)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	d, err := gojson.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(d)
	return nil
}

func writeFloat(buf *bytes.Buffer, f float64, bits int) error {
	switch {
	case math.IsNaN(f):
		buf.WriteString(`"NaN"`)
	case math.IsInf(f, 1):
		buf.WriteString(`"Infinity"`)
	case math.IsInf(f, -1):
		buf.WriteString(`"-Infinity"`)
	default:
		s := strconv.FormatFloat(f, 'g', -1, bits)
		buf.WriteString(s)
		if !bytes.ContainsAny([]byte(s), ".eE") {
			buf.WriteString(".0")
		}
	}
	return nil
}
