package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/datatemplate/encode"
	"github.com/signadot/datatemplate/eval"
	"github.com/signadot/datatemplate/tmpl"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	J       bool `cli:"name=j aliases=json desc='output json'"`
	Y       bool `cli:"name=y aliases=yaml desc='output yaml'"`
	Indent  int  `cli:"name=indent desc='json indentation'"`
	Verbose bool `cli:"name=v desc='log debug output to stderr'"`

	Main *cli.Command
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	f := encode.YAMLFormat
	if cfg.J {
		f = encode.JSONFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(f),
		encode.Indent(cfg.Indent),
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return res
		}
	}
	if file, ok := w.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type GetConfig struct {
	*MainConfig
	Schema string `cli:"name=schema desc='schema file'"`
	Mode   string `cli:"name=mode desc='get mode: null, default or strict'"`

	Get *cli.Command
}

func (cfg *GetConfig) getMode() (tmpl.GetMode, error) {
	m, err := tmpl.ParseGetMode(cfg.Mode)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return m, nil
}

type SetConfig struct {
	*MainConfig
	Schema string `cli:"name=schema desc='schema file'"`
	Mode   string `cli:"name=mode desc='set mode: ignore, remove, remove-optional or disallow'"`
	Diff   bool   `cli:"name=diff desc='print a line diff instead of the result'"`
	Patch  bool   `cli:"name=patch desc='print a json merge patch instead of the result'"`

	Set *cli.Command
}

func (cfg *SetConfig) setMode() (tmpl.SetMode, error) {
	m, err := tmpl.ParseSetMode(cfg.Mode)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return m, nil
}

type ProjectConfig struct {
	*MainConfig
	Schema string `cli:"name=schema desc='schema file'"`
	Expr   string `cli:"name=expr desc='expression to evaluate'"`
	Env    eval.Env

	Project *cli.Command
}

type JSONSchemaConfig struct {
	*MainConfig
	Schema string `cli:"name=schema desc='schema file'"`

	JSONSchema *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Lines bool `cli:"name=l desc='diff the rendered documents line by line'"`
	Merge bool `cli:"name=merge desc='print a json merge patch'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=merge desc='patch is a json merge patch rather than a json patch'"`

	Patch *cli.Command
}
