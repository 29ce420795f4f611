package main

import (
	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
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
		if err := cfg.writeRegistry(cc.Out, r); err != nil {
			return err
		}
		if i < len(files)-1 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
	}
	return nil
}
