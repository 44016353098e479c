// Package encode renders data trees as JSON or YAML, optionally colored.
package encode

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/signadot/datatemplate/data"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/printer"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

func (f Format) String() string {
	if f == JSONFormat {
		return "json"
	}
	return "yaml"
}

// ParseFormat parses "json" or "yaml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSONFormat, nil
	case "yaml", "yml":
		return YAMLFormat, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

type EncState struct {
	format Format
	indent int
	colors *Colors
}

type EncodeOption func(*EncState)

func EncodeFormat(f Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// Indent sets the JSON indentation. Zero gives compact output.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.colors = c }
}

// Encode writes v to w, followed by a newline.
func Encode(v any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	var (
		out []byte
		err error
	)
	switch es.format {
	case YAMLFormat:
		out, err = es.yaml(v)
	default:
		out, err = es.json(v)
	}
	if err != nil {
		return err
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err
}

func MustString(v any, opts ...EncodeOption) string {
	var buf bytes.Buffer
	if err := Encode(v, &buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}

func (es *EncState) json(v any) ([]byte, error) {
	if es.colors == nil && es.indent == 0 {
		return data.Marshal(v)
	}
	var buf bytes.Buffer
	if err := es.writeJSON(&buf, v, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (es *EncState) color(k data.Kind, a ColorAttr, s string) string {
	if es.colors == nil {
		return s
	}
	return es.colors.Color(k, a, s)
}

func (es *EncState) newline(buf *bytes.Buffer, depth int) {
	if es.indent == 0 {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", depth*es.indent))
}

func (es *EncState) writeJSON(buf *bytes.Buffer, v any, depth int) error {
	switch x := v.(type) {
	case *data.Map:
		if x.Len() == 0 {
			buf.WriteString(es.color(data.MapKind, SepColor, "{}"))
			return nil
		}
		buf.WriteString(es.color(data.MapKind, SepColor, "{"))
		i := 0
		for k, e := range x.All() {
			if i > 0 {
				buf.WriteString(es.color(data.MapKind, SepColor, ","))
			}
			i++
			es.newline(buf, depth+1)
			key, err := data.Marshal(k)
			if err != nil {
				return err
			}
			buf.WriteString(es.color(data.MapKind, FieldColor, string(key)))
			buf.WriteString(es.color(data.MapKind, SepColor, ":"))
			if es.indent > 0 {
				buf.WriteByte(' ')
			}
			if err := es.writeJSON(buf, e, depth+1); err != nil {
				return err
			}
		}
		es.newline(buf, depth)
		buf.WriteString(es.color(data.MapKind, SepColor, "}"))
		return nil
	case *data.List:
		if x.Len() == 0 {
			buf.WriteString(es.color(data.ListKind, SepColor, "[]"))
			return nil
		}
		buf.WriteString(es.color(data.ListKind, SepColor, "["))
		for i, e := range x.All() {
			if i > 0 {
				buf.WriteString(es.color(data.ListKind, SepColor, ","))
			}
			es.newline(buf, depth+1)
			if err := es.writeJSON(buf, e, depth+1); err != nil {
				return err
			}
		}
		es.newline(buf, depth)
		buf.WriteString(es.color(data.ListKind, SepColor, "]"))
		return nil
	}
	k, ok := data.KindOf(v)
	if !ok {
		return fmt.Errorf("%w: %T", data.ErrNotStorable, v)
	}
	d, err := data.Marshal(v)
	if err != nil {
		return err
	}
	buf.WriteString(es.color(k, ValueColor, string(d)))
	return nil
}

func (es *EncState) yaml(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(toYAML(v), yaml.IndentSequence(true))
	if err != nil {
		return nil, err
	}
	if es.colors == nil {
		return out, nil
	}
	return []byte(es.yamlPrinter().PrintTokens(lexer.Tokenize(string(out)))), nil
}

func (es *EncState) yamlPrinter() *printer.Printer {
	prop := func(k data.Kind, a ColorAttr) func() *printer.Property {
		pre, suf := es.colors.wrap(k, a)
		return func() *printer.Property {
			return &printer.Property{Prefix: pre, Suffix: suf}
		}
	}
	return &printer.Printer{
		MapKey: prop(data.MapKind, FieldColor),
		Bool:   prop(data.BoolKind, ValueColor),
		String: prop(data.StringKind, ValueColor),
		Number: prop(data.DoubleKind, ValueColor),
	}
}

// toYAML converts a tree to values the YAML encoder writes in order.
func toYAML(v any) any {
	switch x := v.(type) {
	case *data.Map:
		ms := make(yaml.MapSlice, 0, x.Len())
		for k, e := range x.All() {
			ms = append(ms, yaml.MapItem{Key: k, Value: toYAML(e)})
		}
		return ms
	case *data.List:
		res := make([]any, 0, x.Len())
		for _, e := range x.All() {
			res = append(res, toYAML(e))
		}
		return res
	case data.NullValue:
		return nil
	case data.ByteString:
		return x.AvroString()
	case float32:
		return nonFinite(float64(x), x)
	case float64:
		return nonFinite(x, x)
	}
	return v
}

func nonFinite(f float64, v any) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return v
}
