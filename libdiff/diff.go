// Package libdiff computes differences between data trees.
package libdiff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/datatemplate/data"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op uint8

const (
	Insert Op = iota
	Delete
	Replace
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	}
	return "replace"
}

// Change is one difference between two trees. Text holds a character diff
// when both sides are strings.
type Change struct {
	Path data.Path
	Op   Op
	From any
	To   any
	Text []diffpatch.Diff
}

func (c Change) String() string {
	switch c.Op {
	case Insert:
		return fmt.Sprintf("+ %s: %v", pathString(c.Path), c.To)
	case Delete:
		return fmt.Sprintf("- %s: %v", pathString(c.Path), c.From)
	}
	return fmt.Sprintf("~ %s: %v -> %v", pathString(c.Path), c.From, c.To)
}

func pathString(p data.Path) string {
	if len(p) == 0 {
		return "$"
	}
	return p.String()
}

// Diff returns the changes turning from into to. Maps are compared by key
// and lists by aligning their elements.
func Diff(from, to any) []Change {
	var res []Change
	diff(nil, from, to, &res)
	return res
}

func diff(p data.Path, from, to any, res *[]Change) {
	switch f := from.(type) {
	case *data.Map:
		if t, ok := to.(*data.Map); ok {
			diffMaps(p, f, t, res)
			return
		}
	case *data.List:
		if t, ok := to.(*data.List); ok {
			diffLists(p, f, t, res)
			return
		}
	case string:
		if t, ok := to.(string); ok {
			if f != t {
				*res = append(*res, Change{Path: p, Op: Replace, From: f, To: t, Text: diffStrings(f, t)})
			}
			return
		}
	}
	if !data.Equal(from, to) {
		*res = append(*res, Change{Path: p, Op: Replace, From: from, To: to})
	}
}

func child(p data.Path, s data.Segment) data.Path {
	return append(p[:len(p):len(p)], s)
}

func diffMaps(p data.Path, from, to *data.Map, res *[]Change) {
	for k, fv := range from.All() {
		tv, ok := to.Get(k)
		if !ok {
			*res = append(*res, Change{Path: child(p, data.KeySegment(k)), Op: Delete, From: fv})
			continue
		}
		diff(child(p, data.KeySegment(k)), fv, tv, res)
	}
	for k, tv := range to.All() {
		if !from.Has(k) {
			*res = append(*res, Change{Path: child(p, data.KeySegment(k)), Op: Insert, To: tv})
		}
	}
}

// diffLists aligns the elements by a one rune summary per element: the
// kind for containers, which are then compared recursively, and the kind
// and value for scalars.
func diffLists(p data.Path, from, to *data.List, res *[]Change) {
	m := map[string]rune{}
	fr, tr := summarize(m, from), summarize(m, to)
	diffs := diffpatch.New().DiffMainRunes(fr, tr, false)
	fi, ti := 0, 0
	for _, d := range diffs {
		n := len([]rune(d.Text))
		switch d.Type {
		case diffpatch.DiffDelete:
			for range n {
				v, _ := from.Get(fi)
				*res = append(*res, Change{Path: child(p, data.IndexSegment(fi)), Op: Delete, From: v})
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				v, _ := to.Get(ti)
				*res = append(*res, Change{Path: child(p, data.IndexSegment(ti)), Op: Insert, To: v})
				ti++
			}
		case diffpatch.DiffEqual:
			for range n {
				fv, _ := from.Get(fi)
				tv, _ := to.Get(ti)
				diff(child(p, data.IndexSegment(ti)), fv, tv, res)
				fi++
				ti++
			}
		}
	}
}

func summarize(m map[string]rune, l *data.List) []rune {
	res := make([]rune, 0, l.Len())
	for _, v := range l.All() {
		k, _ := data.KindOf(v)
		key := k.String()
		if !k.IsContainer() {
			key += "-" + strconv.FormatUint(data.Hash(v), 16)
		}
		r, ok := m[key]
		if !ok {
			// private use area, clear of surrogates
			r = rune(0xE000 + len(m))
			m[key] = r
		}
		res = append(res, r)
	}
	return res
}

func diffStrings(from, to string) []diffpatch.Diff {
	dmp := diffpatch.New()
	multiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	return dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, multiLine))
}
