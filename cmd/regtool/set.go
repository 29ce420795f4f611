package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a key path and a value", cli.ErrUsage)
	}
	path, val := args[0], args[1]
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	var v any
	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return fmt.Errorf("error decoding value %q: %w", val, err)
	}
	file := "-"
	if len(args) > 2 {
		file = args[2]
	}
	r, err := cfg.load(cc, file)
	if err != nil {
		return err
	}
	r.Set(path, v)
	return cfg.writeRegistry(cc.Out, r)
}
