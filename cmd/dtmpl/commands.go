package main

import (
	"github.com/signadot/datatemplate/eval"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Indent: 2}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "dtmpl").
		WithSynopsis("dtmpl [opts] command [opts]").
		WithDescription("dtmpl reads and writes documents through schema typed views.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dtmplMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			SetCommand(cfg),
			ProjectCommand(cfg),
			JSONSchemaCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg, Mode: "strict"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithOpts(opts...).
		WithSynopsis("get -schema <file> [-mode m] <path> [files]").
		WithDescription("get a value from documents through typed views").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg, Mode: "disallow"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("set").
		WithAliases("s").
		WithOpts(opts...).
		WithSynopsis("set -schema <file> [-mode m] [-diff|-patch] <path> <value> [file]").
		WithDescription("set a value in a document through typed views").
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
	cfg.Set = cmd
	return cmd
}

func ProjectCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ProjectConfig{MainConfig: mainCfg, Env: eval.Env{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "e",
			Description: "bind a variable for the expression",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(key=val)"),
		})
	cmd := cli.NewCommand("project").
		WithAliases("p").
		WithOpts(opts...).
		WithSynopsis("project -schema <file> -expr <expr> [-e key=val]... [files]").
		WithDescription("evaluate an expression over typed views of documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return project(cfg, cc, args)
		})
	cfg.Project = cmd
	return cmd
}

func envOptTypeFunc(env eval.Env) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := envFunc(env, a); err != nil {
			return nil, err
		}
		return 0, nil
	}
}

func JSONSchemaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &JSONSchemaConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("jsonschema").
		WithAliases("js").
		WithOpts(opts...).
		WithSynopsis("jsonschema -schema <file>").
		WithDescription("print a schema as json schema").
		WithRun(func(cc *cli.Context, args []string) error {
			return jsonSchema(cfg, cc, args)
		})
	cfg.JSONSchema = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithOpts(opts...).
		WithSynopsis("diff [-l|-merge] a b").
		WithDescription("diff two documents, exiting 1 when they differ").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithOpts(opts...).
		WithSynopsis("patch [-merge] <patch> <file>").
		WithDescription("apply a json patch or json merge patch to a document").
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}
