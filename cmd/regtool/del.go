package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func del(cfg *DelConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Del.Parse(cc, args)
	if err != nil {
		cfg.Del.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: del requires one argument, a key path", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	file := "-"
	if len(args) > 1 {
		file = args[1]
	}
	r, err := cfg.load(cc, file)
	if err != nil {
		return err
	}
	r.Remove(path)
	return cfg.writeRegistry(cc.Out, r)
}
