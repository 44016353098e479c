package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/eval"
	"github.com/signadot/datatemplate/schema"

	"github.com/scott-cotton/cli"
)

func readArg(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// getObjFiles decodes every document in path.
func getObjFiles(cc *cli.Context, path string) ([]any, error) {
	d, err := readArg(cc, path)
	if err != nil {
		return nil, err
	}
	return data.UnmarshalAll(d)
}

func getObjFile(cc *cli.Context, path string) (any, error) {
	d, err := readArg(cc, path)
	if err != nil {
		return nil, err
	}
	return data.Unmarshal(d)
}

// loadSchema parses a schema file. Earlier documents may declare named types
// used by later ones; the last document is the result.
func loadSchema(path string) (schema.Schema, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: -schema is required", cli.ErrUsage)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ss, err := schema.NewRegistry().ParseAll(d)
	if err != nil {
		return nil, fmt.Errorf("error parsing schema %s: %w", path, err)
	}
	if len(ss) == 0 {
		return nil, fmt.Errorf("%w: %s holds no schema", schema.ErrParse, path)
	}
	return ss[len(ss)-1], nil
}

func fileArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func envFunc(env eval.Env, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	v, err := data.Unmarshal([]byte(val))
	if err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	tmpEnv := map[string]any(env)
	for i, part := range parts {
		if i == n-1 {
			tmpEnv[part] = data.ToNative(v)
			break
		}
		next, ok := tmpEnv[part].(map[string]any)
		if !ok {
			if tmpEnv[part] != nil {
				return errors.New("cannot set " + key + ": " + part + " is not a map")
			}
			next = map[string]any{}
			tmpEnv[part] = next
		}
		tmpEnv = next
	}
	return nil
}
