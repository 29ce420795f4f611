package main

import (
	"github.com/scott-cotton/cli"
)

func keys(cfg *KeysConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Keys.Parse(cc, args)
	if err != nil {
		cfg.Keys.Usage(cc, err)
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
		if i > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		for _, k := range r.Keys() {
			if err := cfg.write(cc.Out, k); err != nil {
				return err
			}
		}
	}
	return nil
}
