package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/andrepereiradasilva/registry/tree"
)

func flatten(cfg *FlattenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Flatten.Parse(cc, args)
	if err != nil {
		cfg.Flatten.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	files := args
	if len(files) == 0 {
		files = []string{"-"}
	}
	for i, file := range files {
		r, err := cfg.load(cc, file)
		if err != nil {
			return err
		}
		n, err := tree.FromAny(r.Flatten())
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := cfg.writeNode(cc.Out, n); err != nil {
			return err
		}
	}
	return nil
}
