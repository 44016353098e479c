package schema

import (
	"fmt"
	"math"

	"github.com/signadot/datatemplate/data"
)

// Registry holds named schemas so that parsed documents can refer to types
// by name.
type Registry struct {
	named map[string]Named
}

func NewRegistry() *Registry {
	return &Registry{named: map[string]Named{}}
}

// Register adds n under its full name.
func (r *Registry) Register(n Named) error {
	name := n.FullName()
	if _, ok := r.named[name]; ok {
		return fmt.Errorf("%w: %s already defined", ErrParse, name)
	}
	r.named[name] = n
	return nil
}

func (r *Registry) Lookup(name string) (Named, bool) {
	n, ok := r.named[name]
	return n, ok
}

// Parse parses a schema document. See (*Registry).Parse.
func Parse(d []byte) (Schema, error) {
	return NewRegistry().Parse(d)
}

// Parse parses a single schema document, JSON or YAML, and registers every
// named type it defines. A document is one of:
//
//   - a string: a primitive name or the name of a registered type
//   - a list: a union whose entries are types or {alias, type} maps
//   - a map with "type" one of record, enum, fixed, array, map, typeref
func (r *Registry) Parse(d []byte) (Schema, error) {
	doc, err := data.Unmarshal(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	p := &parser{reg: r}
	s, err := p.parse(doc, "")
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ParseAll parses a YAML stream of schema documents into r, in order, so
// later documents may refer to types named by earlier ones.
func (r *Registry) ParseAll(d []byte) ([]Schema, error) {
	docs, err := data.UnmarshalAll(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	res := make([]Schema, 0, len(docs))
	for _, doc := range docs {
		s, err := (&parser{reg: r}).parse(doc, "")
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}

type parser struct {
	reg *Registry
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}

func (p *parser) parse(v any, ns string) (Schema, error) {
	switch x := v.(type) {
	case data.NullValue:
		// YAML reads a bare null as the null value
		return Null, nil
	case string:
		return p.lookup(x, ns)
	case *data.List:
		return p.parseUnion(x, ns)
	case *data.Map:
		return p.parseComplex(x, ns)
	}
	return nil, p.errorf("unexpected %T in type position", v)
}

func (p *parser) lookup(name, ns string) (Schema, error) {
	if prim, ok := PrimitiveByName(name); ok {
		return prim, nil
	}
	if n, ok := p.reg.Lookup(name); ok {
		return n, nil
	}
	if ns != "" {
		if n, ok := p.reg.Lookup(ns + "." + name); ok {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
}

func getString(m *data.Map, key string) (string, bool, error) {
	v, ok := m.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", true, fmt.Errorf("%w: %q must be a string, got %T", ErrParse, key, v)
	}
	return s, true, nil
}

func (p *parser) name(m *data.Map, ns string) (Name, error) {
	name, ok, err := getString(m, "name")
	if err != nil {
		return Name{}, err
	}
	if !ok || name == "" {
		return Name{}, p.errorf("named type without name")
	}
	n := SplitName(name)
	if n.Namespace == "" {
		n.Namespace = ns
	}
	if explicit, ok, err := getString(m, "namespace"); err != nil {
		return Name{}, err
	} else if ok {
		n.Namespace = explicit
	}
	if doc, _, err := getString(m, "doc"); err != nil {
		return Name{}, err
	} else {
		n.Doc = doc
	}
	return n, nil
}

func (p *parser) parseComplex(m *data.Map, ns string) (Schema, error) {
	typ, ok, err := getString(m, "type")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, p.errorf("missing \"type\" in %v", m)
	}
	switch typ {
	case "record":
		return p.parseRecord(m, ns)
	case "enum":
		n, err := p.name(m, ns)
		if err != nil {
			return nil, err
		}
		e := &Enum{Name: n}
		syms, _ := m.Get("symbols")
		l, ok := syms.(*data.List)
		if !ok {
			return nil, p.errorf("enum %s: symbols must be a list", n.FullName())
		}
		for _, s := range l.All() {
			str, ok := s.(string)
			if !ok {
				return nil, p.errorf("enum %s: symbol %v is not a string", n.FullName(), s)
			}
			e.Symbols = append(e.Symbols, str)
		}
		return e, p.reg.Register(e)
	case "fixed":
		n, err := p.name(m, ns)
		if err != nil {
			return nil, err
		}
		size, _ := m.Get("size")
		sz, ok := intValue(size)
		if !ok || sz < 0 {
			return nil, p.errorf("fixed %s: size must be a non-negative integer", n.FullName())
		}
		f := &Fixed{Name: n, Size: int(sz)}
		return f, p.reg.Register(f)
	case "array":
		items, ok := m.Get("items")
		if !ok {
			return nil, p.errorf("array without items")
		}
		is, err := p.parse(items, ns)
		if err != nil {
			return nil, err
		}
		return NewArray(is), nil
	case "map":
		values, ok := m.Get("values")
		if !ok {
			return nil, p.errorf("map without values")
		}
		vs, err := p.parse(values, ns)
		if err != nil {
			return nil, err
		}
		return NewMap(vs), nil
	case "typeref":
		n, err := p.name(m, ns)
		if err != nil {
			return nil, err
		}
		ref, ok := m.Get("ref")
		if !ok {
			return nil, p.errorf("typeref %s without ref", n.FullName())
		}
		t := &Typeref{Name: n}
		if err := p.reg.Register(t); err != nil {
			return nil, err
		}
		if t.Ref, err = p.parse(ref, n.Namespace); err != nil {
			return nil, err
		}
		return t, nil
	}
	// {"type": "int"} and {"type": "com.x.Named"}
	return p.lookup(typ, ns)
}

func (p *parser) parseRecord(m *data.Map, ns string) (Schema, error) {
	n, err := p.name(m, ns)
	if err != nil {
		return nil, err
	}
	rec := &Record{Name: n}
	// registered first so fields may refer to the record itself
	if err := p.reg.Register(rec); err != nil {
		return nil, err
	}
	fv, ok := m.Get("fields")
	if !ok {
		return rec, rec.SetFields()
	}
	fl, ok := fv.(*data.List)
	if !ok {
		return nil, p.errorf("record %s: fields must be a list", n.FullName())
	}
	fields := make([]*Field, 0, fl.Len())
	for i, e := range fl.All() {
		fm, ok := e.(*data.Map)
		if !ok {
			return nil, p.errorf("record %s: field %d is not a map", n.FullName(), i)
		}
		f, err := p.parseField(fm, n.Namespace)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", n.FullName(), err)
		}
		fields = append(fields, f)
	}
	if err := rec.SetFields(fields...); err != nil {
		return nil, err
	}
	return rec, nil
}

func (p *parser) parseField(m *data.Map, ns string) (*Field, error) {
	name, ok, err := getString(m, "name")
	if err != nil {
		return nil, err
	}
	if !ok || name == "" {
		return nil, p.errorf("field without name")
	}
	tv, ok := m.Get("type")
	if !ok {
		return nil, p.errorf("field %s without type", name)
	}
	typ, err := p.parse(tv, ns)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", name, err)
	}
	f := &Field{Name: name, Type: typ}
	if opt, ok := m.Get("optional"); ok {
		b, isBool := opt.(bool)
		if !isBool {
			return nil, p.errorf("field %s: optional must be a boolean", name)
		}
		f.Optional = b
	}
	if doc, _, err := getString(m, "doc"); err == nil {
		f.Doc = doc
	}
	if dv, ok := m.Get("default"); ok {
		if f.Default, err = DefaultValue(dv, typ); err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
	}
	return f, nil
}

func (p *parser) parseUnion(l *data.List, ns string) (Schema, error) {
	ms := make([]Member, 0, l.Len())
	for _, e := range l.All() {
		if em, ok := e.(*data.Map); ok {
			if alias, ok, err := getString(em, "alias"); err != nil {
				return nil, err
			} else if ok {
				tv, _ := em.Get("type")
				t, err := p.parse(tv, ns)
				if err != nil {
					return nil, err
				}
				ms = append(ms, Member{Key: alias, Type: t})
				continue
			}
		}
		t, err := p.parse(e, ns)
		if err != nil {
			return nil, err
		}
		ms = append(ms, Member{Type: t})
	}
	u, err := NewUnion(ms...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return u, nil
}

func intValue(v any) (int64, bool) {
	switch x := v.(type) {
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case float64:
		if x == math.Trunc(x) {
			return int64(x), true
		}
	}
	return 0, false
}
