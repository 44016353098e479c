package main

import (
	"fmt"

	"github.com/signadot/datatemplate/encode"
	"github.com/signadot/datatemplate/libdiff"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 arguments, a patch and a file to which to apply it", cli.ErrUsage)
	}
	p, err := getObjFile(cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding patch %s: %w", args[0], err)
	}
	target, err := getObjFile(cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	var res any
	if cfg.Merge {
		res, err = libdiff.ApplyMergePatch(target, p)
	} else {
		res, err = libdiff.ApplyJSONPatch(target, p)
	}
	if err != nil {
		return fmt.Errorf("error patching %s: %w", args[1], err)
	}
	if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
