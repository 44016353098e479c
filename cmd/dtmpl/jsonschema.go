package main

import (
	"fmt"

	"github.com/signadot/datatemplate/schema"

	"github.com/goccy/go-json"
	"github.com/scott-cotton/cli"
)

func jsonSchema(cfg *JSONSchemaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.JSONSchema.Parse(cc, args)
	if err != nil {
		cfg.JSONSchema.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: jsonschema takes no arguments", cli.ErrUsage)
	}
	s, err := loadSchema(cfg.Schema)
	if err != nil {
		return err
	}
	d, err := json.MarshalIndent(schema.JSONSchema(s), "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding json schema: %w", err)
	}
	_, err = cc.Out.Write(append(d, '\n'))
	return err
}
