package main

import (
	"fmt"

	"github.com/signadot/datatemplate/encode"
	"github.com/signadot/datatemplate/eval"
	"github.com/signadot/datatemplate/tmpl"

	"github.com/scott-cotton/cli"
)

func project(cfg *ProjectConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Project.Parse(cc, args)
	if err != nil {
		cfg.Project.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Expr == "" {
		return fmt.Errorf("%w: -expr is required", cli.ErrUsage)
	}
	s, err := loadSchema(cfg.Schema)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	for _, file := range fileArgs(args) {
		docs, err := getObjFiles(cc, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		for i, doc := range docs {
			root, err := view(doc, s)
			if err != nil {
				return fmt.Errorf("%s document %d: %w", file, i, err)
			}
			t, ok := root.(tmpl.Template)
			if !ok {
				return fmt.Errorf("%w: schema %s has no typed view", cli.ErrUsage, s)
			}
			res, err := eval.Project(cfg.Expr, t, cfg.Env)
			if err != nil {
				return fmt.Errorf("%s document %d: %w", file, i, err)
			}
			if err := encode.Encode(res, cc.Out, opts...); err != nil {
				return err
			}
		}
	}
	return nil
}
