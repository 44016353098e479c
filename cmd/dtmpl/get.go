package main

import (
	"fmt"

	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/encode"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	p, err := data.ParsePath(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	mode, err := cfg.getMode()
	if err != nil {
		return err
	}
	s, err := loadSchema(cfg.Schema)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	for _, file := range fileArgs(args[1:]) {
		docs, err := getObjFiles(cc, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		for i, doc := range docs {
			root, err := view(doc, s)
			if err != nil {
				return fmt.Errorf("%s document %d: %w", file, i, err)
			}
			v, ok, err := navigate(root, p, mode)
			if err != nil {
				return fmt.Errorf("error querying %s with %s: %w", file, p, err)
			}
			if !ok {
				continue
			}
			if err := encode.Encode(tree(v), cc.Out, opts...); err != nil {
				return err
			}
		}
	}
	return nil
}
