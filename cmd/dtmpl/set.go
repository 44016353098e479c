package main

import (
	"fmt"

	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/encode"
	"github.com/signadot/datatemplate/libdiff"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: set requires a path, a value and at most one file", cli.ErrUsage)
	}
	if cfg.Diff && cfg.Patch {
		return fmt.Errorf("%w: -diff and -patch are exclusive", cli.ErrUsage)
	}
	p, err := data.ParsePath(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	v, err := data.Unmarshal([]byte(args[1]))
	if err != nil {
		return fmt.Errorf("%w: value %q: %w", cli.ErrUsage, args[1], err)
	}
	mode, err := cfg.setMode()
	if err != nil {
		return err
	}
	s, err := loadSchema(cfg.Schema)
	if err != nil {
		return err
	}
	file := fileArgs(args[2:])[0]
	doc, err := getObjFile(cc, file)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	before := copyTree(doc)
	root, err := view(doc, s)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if err := assign(root, p, v, mode); err != nil {
		return err
	}
	after := tree(root)
	switch {
	case cfg.Patch:
		mp, err := libdiff.MergePatch(before, after)
		if err != nil {
			return err
		}
		return encode.Encode(mp, cc.Out, cfg.encOpts(cc.Out)...)
	case cfg.Diff:
		a, err := render(before)
		if err != nil {
			return err
		}
		b, err := render(after)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cc.Out, libdiff.LineDiff(a, b))
		return err
	}
	return encode.Encode(after, cc.Out, cfg.encOpts(cc.Out)...)
}

func copyTree(v any) any {
	switch x := v.(type) {
	case *data.Map:
		return x.Copy()
	case *data.List:
		return x.Copy()
	}
	return v
}

func render(v any) (string, error) {
	return encodeString(v, encode.EncodeFormat(encode.YAMLFormat))
}
