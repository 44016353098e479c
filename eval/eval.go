// Package eval evaluates expressions over typed views.
//
// An expression sees the view's data in native form (maps, slices and plain
// scalars). The whole tree is bound to doc, and when the view is a record or
// map its entries are also bound by name. Entries of the caller's Env take
// precedence over both.
package eval

import (
	"fmt"
	"maps"

	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/debug"
	"github.com/signadot/datatemplate/tmpl"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type Env map[string]any

// DocName is the name the expression environment gives the whole tree.
const DocName = "doc"

// Program is a compiled expression bound to a view.
type Program struct {
	src string
	t   tmpl.Template
	prg *vm.Program
	env Env
}

// Compile compiles src for evaluation over t.
func Compile(src string, t tmpl.Template, env Env) (*Program, error) {
	e := bindings(t, env)
	prg, err := expr.Compile(src, append(exprOpts(t), expr.Env(map[string]any(e)))...)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	return &Program{src: src, t: t, prg: prg, env: e}, nil
}

// Run evaluates p and returns its result as a tree.
func (p *Program) Run() (any, error) {
	out, err := expr.Run(p.prg, map[string]any(p.env))
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", p.src, err)
	}
	if debug.Wrap() {
		debug.Logf("eval", "expr", p.src, "schema", p.t.Schema().String(), "result", out)
	}
	res, err := data.FromNative(out)
	if err != nil {
		return nil, fmt.Errorf("eval %q: result: %w", p.src, err)
	}
	return res, nil
}

// Project compiles and runs src over t.
func Project(src string, t tmpl.Template, env Env) (any, error) {
	p, err := Compile(src, t, env)
	if err != nil {
		return nil, err
	}
	return p.Run()
}

func bindings(t tmpl.Template, env Env) Env {
	native := data.ToNative(t.Data())
	res := Env{}
	if m, ok := native.(map[string]any); ok {
		maps.Copy(res, m)
	}
	res[DocName] = native
	maps.Copy(res, env)
	return res
}
