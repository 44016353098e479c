package main

import (
	"fmt"

	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/schema"
	"github.com/signadot/datatemplate/tmpl"
)

// view returns the typed view of a document.
func view(doc any, s schema.Schema) (any, error) {
	return tmpl.Generic(doc, s)
}

// navigate follows p from the view v. ok is false when a record field, map
// key or union member along the way is absent.
func navigate(v any, p data.Path, mode tmpl.GetMode) (res any, ok bool, err error) {
	res = v
	for i, seg := range p {
		res, ok, err = step(res, seg, mode)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", p[:i+1], err)
		}
		if !ok {
			return nil, false, nil
		}
	}
	return res, true, nil
}

func step(v any, seg data.Segment, mode tmpl.GetMode) (any, bool, error) {
	switch x := v.(type) {
	case *tmpl.Record:
		if !seg.IsKey {
			return nil, false, fmt.Errorf("%w: index applied to record", data.ErrPath)
		}
		f, err := x.Field(seg.Key)
		if err != nil {
			return nil, false, err
		}
		if schema.IsDirect(f.Type) {
			return tmpl.GetDirect[any](x, f, mode)
		}
		return tmpl.GetWrapped[tmpl.Template](x, f, mode)
	case *tmpl.Map[any]:
		if !seg.IsKey {
			return nil, false, fmt.Errorf("%w: index applied to map", data.ErrPath)
		}
		return x.Get(seg.Key)
	case *tmpl.Array[any]:
		if seg.IsKey {
			return nil, false, fmt.Errorf("%w: key applied to array", data.ErrPath)
		}
		e, err := x.Get(seg.Index)
		return e, err == nil, err
	case *tmpl.Union:
		if !seg.IsKey {
			return nil, false, fmt.Errorf("%w: index applied to union", data.ErrPath)
		}
		ms, err := member(x, seg.Key)
		if err != nil {
			return nil, false, err
		}
		if schema.IsDirect(ms) {
			return tmpl.GetMember[any](x, seg.Key)
		}
		return tmpl.GetWrappedMember[tmpl.Template](x, seg.Key)
	}
	return nil, false, fmt.Errorf("%w: %s applied to scalar", data.ErrPath, seg)
}

func member(u *tmpl.Union, key string) (schema.Schema, error) {
	ms, ok := u.Schema().(*schema.Union).Member(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", tmpl.ErrUnknownMember, key)
	}
	return ms, nil
}

// elem converts a decoded value to what a view holding s elements accepts.
func elem(v any, s schema.Schema) (any, error) {
	if schema.IsDirect(s) {
		return v, nil
	}
	return tmpl.Generic(v, s)
}

// assign stores v at the last segment of p below the view root.
func assign(root any, p data.Path, v any, mode tmpl.SetMode) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: cannot set root", data.ErrPath)
	}
	parent, ok, err := navigate(root, p[:len(p)-1], tmpl.GetStrict)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s does not exist", data.ErrPath, p[:len(p)-1])
	}
	last := p[len(p)-1]
	if err := store(parent, last, v, mode); err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}
	return nil
}

func store(parent any, seg data.Segment, v any, mode tmpl.SetMode) error {
	switch x := parent.(type) {
	case *tmpl.Record:
		if !seg.IsKey {
			return fmt.Errorf("%w: index applied to record", data.ErrPath)
		}
		f, err := x.Field(seg.Key)
		if err != nil {
			return err
		}
		if data.IsNull(v) {
			return tmpl.SetDirect[any](x, f, nil, mode)
		}
		if schema.IsDirect(f.Type) {
			return tmpl.SetDirect(x, f, &v, mode)
		}
		w, err := tmpl.Generic(v, f.Type)
		if err != nil {
			return err
		}
		return tmpl.SetWrapped(x, f, w.(tmpl.Template), mode)
	case *tmpl.Map[any]:
		if !seg.IsKey {
			return fmt.Errorf("%w: index applied to map", data.ErrPath)
		}
		e, err := elem(v, x.Schema().(*schema.Map).Values)
		if err != nil {
			return err
		}
		return x.Put(seg.Key, e)
	case *tmpl.Array[any]:
		if seg.IsKey {
			return fmt.Errorf("%w: key applied to array", data.ErrPath)
		}
		e, err := elem(v, x.Schema().(*schema.Array).Items)
		if err != nil {
			return err
		}
		if seg.Index == x.Len() {
			return x.Append(e)
		}
		return x.Set(seg.Index, e)
	case *tmpl.Union:
		if !seg.IsKey {
			return fmt.Errorf("%w: index applied to union", data.ErrPath)
		}
		ms, err := member(x, seg.Key)
		if err != nil {
			return err
		}
		if schema.IsDirect(ms) {
			return tmpl.SelectMember(x, seg.Key, v)
		}
		w, err := tmpl.Generic(v, ms)
		if err != nil {
			return err
		}
		return tmpl.SelectWrappedMember(x, seg.Key, w.(tmpl.Template))
	}
	return fmt.Errorf("%w: %s applied to scalar", data.ErrPath, seg)
}

// tree returns the data behind a navigation result.
func tree(v any) any {
	if t, ok := v.(tmpl.Template); ok {
		return t.Data()
	}
	return v
}
