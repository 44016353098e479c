package main

import (
	"fmt"
	"strings"

	"github.com/signadot/datatemplate/encode"
	"github.com/signadot/datatemplate/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getObjFile(cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getObjFile(cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	changes := libdiff.Diff(a, b)
	if len(changes) == 0 {
		return nil
	}
	switch {
	case cfg.Merge:
		mp, err := libdiff.MergePatch(a, b)
		if err != nil {
			return err
		}
		if err := encode.Encode(mp, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	case cfg.Lines:
		as, err := render(a)
		if err != nil {
			return err
		}
		bs, err := render(b)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(cc.Out, libdiff.LineDiff(as, bs)); err != nil {
			return err
		}
	default:
		if _, err := fmt.Fprint(cc.Out, libdiff.Render(changes)); err != nil {
			return err
		}
	}
	return cli.ExitCodeErr(1)
}

func encodeString(v any, opts ...encode.EncodeOption) (string, error) {
	var sb strings.Builder
	if err := encode.Encode(v, &sb, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}
