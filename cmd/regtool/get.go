package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/andrepereiradasilva/registry/tree"
	"github.com/andrepereiradasilva/registry/tree/tpath"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a key path", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for i, file := range files {
		if err := getArg(cfg.MainConfig, cc, file, path, i > 0); err != nil {
			return err
		}
	}
	return nil
}

func getArg(cfg *MainConfig, cc *cli.Context, file, path string, sep bool) error {
	r, err := cfg.load(cc, file)
	if err != nil {
		return err
	}
	n, ok := tree.Lookup(r.Root(), tpath.Parse(path, cfg.separator()))
	if !ok {
		// absent paths print nothing
		return nil
	}
	if sep {
		if _, err := cc.Out.Write([]byte("---\n")); err != nil {
			return err
		}
	}
	return cfg.writeNode(cc.Out, n)
}
