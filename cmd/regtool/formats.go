package main

import (
	"github.com/scott-cotton/cli"

	"github.com/andrepereiradasilva/registry/format"
)

func formats(cfg *FormatsConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Formats.Parse(cc, args); err != nil {
		cfg.Formats.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, name := range format.Default().Names() {
		if err := cfg.write(cc.Out, name); err != nil {
			return err
		}
	}
	return nil
}
