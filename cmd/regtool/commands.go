package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json, yaml, toml, ini, hcl, xml",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json, yaml, toml, ini, hcl, xml",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "regtool").
		WithSynopsis("regtool [opts] command [opts]").
		WithDescription("regtool is a tool for working with hierarchical configuration data.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return regMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			SetCommand(cfg),
			DelCommand(cfg),
			KeysCommand(cfg),
			ConvertCommand(cfg),
			MergeCommand(cfg),
			DiffCommand(cfg),
			FlattenCommand(cfg),
			FormatsCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g", "ge").
		WithSynopsis("get <path> [files]").
		WithDescription("get the value at a path from each input").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("set").
		WithAliases("s", "se").
		WithSynopsis("set <path> <value> [file]").
		WithDescription("set the value at a path and print the result").
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
	cfg.Set = cmd
	return cmd
}

func DelCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DelConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Del, "del").
		WithAliases("d", "rm").
		WithSynopsis("del <path> [file]").
		WithDescription("delete the value at a path and print the result").
		WithRun(func(cc *cli.Context, args []string) error {
			return del(cfg, cc, args)
		})
}

func KeysCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &KeysConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Keys, "keys").
		WithAliases("k").
		WithSynopsis("keys [files]").
		WithDescription("list the top-level keys of each input").
		WithRun(func(cc *cli.Context, args []string) error {
			return keys(cfg, cc, args)
		})
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("convert").
		WithAliases("c", "co").
		WithSynopsis("convert [files]").
		WithDescription("re-encode each input in the output format").
		WithRun(func(cc *cli.Context, args []string) error {
			return convert(cfg, cc, args)
		})
	cfg.Convert = cmd
	return cmd
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("merge").
		WithAliases("m", "me").
		WithSynopsis("merge [-r] <files>").
		WithDescription("merge inputs left to right and print the result").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
	cfg.Merge = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("di").
		WithOpts(opts...).
		WithSynopsis("diff a b").
		WithDescription("diff two inputs rendered in the output format").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func FlattenCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FlattenConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Flatten, "flatten").
		WithAliases("f", "fl").
		WithSynopsis("flatten [files]").
		WithDescription("flatten each input to separator-joined key/value pairs").
		WithRun(func(cc *cli.Context, args []string) error {
			return flatten(cfg, cc, args)
		})
}

func FormatsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FormatsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Formats, "formats").
		WithSynopsis("formats").
		WithDescription("list the supported formats").
		WithRun(func(cc *cli.Context, args []string) error {
			return formats(cfg, cc, args)
		})
}
