package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		cfg.Merge.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: merge requires at least two files, got %d", cli.ErrUsage, len(args))
	}
	r, err := cfg.load(cc, args[0])
	if err != nil {
		return err
	}
	for _, file := range args[1:] {
		s, err := cfg.load(cc, file)
		if err != nil {
			return err
		}
		r.Merge(s, cfg.Recursive)
	}
	return cfg.writeRegistry(cc.Out, r)
}
