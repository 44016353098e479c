package eval

import (
	"fmt"
	"os"

	"github.com/signadot/datatemplate/coerce"
	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/schema"
	"github.com/signadot/datatemplate/tmpl"

	"github.com/expr-lang/expr"
)

func exprOpts(t tmpl.Template) []expr.Option {
	root := t.Data()
	return []expr.Option{
		expr.Function("getpath", func(params ...any) (any, error) {
			v, ok, err := getPath(root, params[0].(string))
			if err != nil || !ok {
				return nil, err
			}
			return data.ToNative(v), nil
		},
			new(func(string) any)),
		expr.Function("haspath", func(params ...any) (any, error) {
			_, ok, err := getPath(root, params[0].(string))
			return ok, err
		},
			new(func(string) bool)),
		expr.Function("typeof", func(params ...any) (any, error) {
			p, err := data.ParsePath(params[0].(string))
			if err != nil {
				return nil, err
			}
			s, err := SchemaAt(t.Schema(), p)
			if err != nil {
				return nil, err
			}
			return s.String(), nil
		},
			new(func(string) string)),
		expr.Function("stringify", func(params ...any) (any, error) {
			v, err := data.FromNative(params[0])
			if err != nil {
				return nil, err
			}
			return coerce.Stringify(v)
		},
			new(func(any) string)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

func getPath(root any, path string) (any, bool, error) {
	p, err := data.ParsePath(path)
	if err != nil {
		return nil, false, err
	}
	return data.GetPath(root, p)
}

// SchemaAt returns the schema governing the value at p below s. Union
// segments name a member key.
func SchemaAt(s schema.Schema, p data.Path) (schema.Schema, error) {
	for i, seg := range p {
		switch x := schema.Dereference(s).(type) {
		case *schema.Record:
			if !seg.IsKey {
				return nil, fmt.Errorf("%w: index %s applied to record %s", data.ErrPath, seg, x.FullName())
			}
			f, ok := x.Field(seg.Key)
			if !ok {
				return nil, fmt.Errorf("%w: %s has no field %q", tmpl.ErrUnknownField, x.FullName(), seg.Key)
			}
			s = f.Type
		case *schema.Map:
			if !seg.IsKey {
				return nil, fmt.Errorf("%w: index %s applied to map", data.ErrPath, seg)
			}
			s = x.Values
		case *schema.Array:
			if seg.IsKey {
				return nil, fmt.Errorf("%w: key %s applied to array", data.ErrPath, seg)
			}
			s = x.Items
		case *schema.Union:
			m, ok := x.Member(seg.Key)
			if !seg.IsKey || !ok {
				return nil, fmt.Errorf("%w: %s in %s", tmpl.ErrUnknownMember, seg, x)
			}
			s = m
		default:
			return nil, fmt.Errorf("%w: %s applied to %s at %s", data.ErrPath, seg, s, p[:i])
		}
	}
	return s, nil
}
