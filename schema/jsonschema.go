package schema

import (
	"github.com/invopop/jsonschema"

	"github.com/signadot/datatemplate/data"
)

// JSONSchema renders s as a JSON Schema document describing the JSON form of
// data trees shaped by s. Named records, enums and fixed types are placed in
// $defs and referenced, so recursive records are supported.
func JSONSchema(s Schema) *jsonschema.Schema {
	c := &jsConverter{defs: jsonschema.Definitions{}}
	root := c.convert(s)
	root.Version = jsonschema.Version
	if len(c.defs) > 0 {
		root.Definitions = c.defs
	}
	return root
}

type jsConverter struct {
	defs jsonschema.Definitions
}

func defRef(name string) *jsonschema.Schema {
	return &jsonschema.Schema{Ref: "#/$defs/" + name}
}

func (c *jsConverter) convert(s Schema) *jsonschema.Schema {
	switch x := s.(type) {
	case *Primitive:
		switch x.kind {
		case NullKind:
			return &jsonschema.Schema{Type: "null"}
		case BooleanKind:
			return &jsonschema.Schema{Type: "boolean"}
		case IntKind, LongKind:
			return &jsonschema.Schema{Type: "integer"}
		case FloatKind, DoubleKind:
			return &jsonschema.Schema{Type: "number"}
		case StringKind:
			return &jsonschema.Schema{Type: "string"}
		case BytesKind:
			return &jsonschema.Schema{Type: "string", Format: "avro-bytes"}
		}
	case *Enum:
		name := x.FullName()
		if _, ok := c.defs[name]; !ok {
			enum := make([]any, len(x.Symbols))
			for i, sym := range x.Symbols {
				enum[i] = sym
			}
			c.defs[name] = &jsonschema.Schema{Type: "string", Enum: enum, Description: x.Doc}
		}
		return defRef(name)
	case *Fixed:
		name := x.FullName()
		if _, ok := c.defs[name]; !ok {
			c.defs[name] = &jsonschema.Schema{
				Type:        "string",
				Format:      "avro-bytes",
				Description: x.Doc,
				Extras:      map[string]any{"x-fixed-size": x.Size},
			}
		}
		return defRef(name)
	case *Record:
		name := x.FullName()
		if _, ok := c.defs[name]; ok {
			return defRef(name)
		}
		rs := &jsonschema.Schema{Type: "object", Title: name, Description: x.Doc}
		// placeholder first, fields may refer back to this record
		c.defs[name] = rs
		rs.Properties = jsonschema.NewProperties()
		for _, f := range x.Fields() {
			fs := c.convert(f.Type)
			if f.Default != nil || f.Doc != "" {
				fs = &jsonschema.Schema{AllOf: []*jsonschema.Schema{fs}, Description: f.Doc}
				if f.Default != nil {
					fs.Default = data.ToNative(f.Default)
				}
			}
			rs.Properties.Set(f.Name, fs)
			if !f.Optional && f.Default == nil {
				rs.Required = append(rs.Required, f.Name)
			}
		}
		return defRef(name)
	case *Array:
		return &jsonschema.Schema{Type: "array", Items: c.convert(x.Items)}
	case *Map:
		return &jsonschema.Schema{Type: "object", AdditionalProperties: c.convert(x.Values)}
	case *Union:
		var one []*jsonschema.Schema
		for _, m := range x.Members() {
			if m.Type.Kind() == NullKind {
				one = append(one, &jsonschema.Schema{Type: "null"})
				continue
			}
			props := jsonschema.NewProperties()
			props.Set(m.Key, c.convert(m.Type))
			one = append(one, &jsonschema.Schema{
				Type:                 "object",
				Properties:           props,
				Required:             []string{m.Key},
				AdditionalProperties: jsonschema.FalseSchema,
			})
		}
		return &jsonschema.Schema{OneOf: one}
	case *Typeref:
		if x.Ref == nil {
			return &jsonschema.Schema{}
		}
		inner := c.convert(x.Ref)
		if x.Doc == "" {
			return inner
		}
		return &jsonschema.Schema{AllOf: []*jsonschema.Schema{inner}, Description: x.Doc}
	}
	return &jsonschema.Schema{}
}
