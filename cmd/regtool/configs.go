package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/andrepereiradasilva/registry"
	"github.com/andrepereiradasilva/registry/format"
	"github.com/andrepereiradasilva/registry/tree"
	"github.com/andrepereiradasilva/registry/tree/tpath"
)

type MainConfig struct {
	Sep string `cli:"name=sep desc='path separator (default .)'"`

	InFormat, OutFormat string

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(dst *string) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		name := strings.ToLower(v)
		if _, err := format.Default().Lookup(name); err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*dst = name
		return name, nil
	})
}

func (cfg *MainConfig) separator() string {
	if cfg.Sep != "" {
		return cfg.Sep
	}
	return tpath.Default
}

func (cfg *MainConfig) regOpts() []registry.Option {
	var opts []registry.Option
	if cfg.Sep != "" {
		opts = append(opts, registry.WithSeparator(cfg.Sep))
	}
	return opts
}

func (cfg *MainConfig) inOpts() []registry.Option {
	opts := cfg.regOpts()
	if cfg.InFormat != "" {
		opts = append(opts, registry.WithFormat(cfg.InFormat))
	}
	return opts
}

func (cfg *MainConfig) outName() string {
	if cfg.OutFormat != "" {
		return cfg.OutFormat
	}
	return "json"
}

func (cfg *MainConfig) outOpts() []registry.Option {
	opts := append(cfg.regOpts(), registry.WithFormat(cfg.outName()))
	if fo := cfg.encodeOpts(); fo != nil {
		opts = append(opts, registry.WithFormatOptions(fo))
	}
	return opts
}

func (cfg *MainConfig) encodeOpts() format.Options {
	if cfg.outName() != "json" {
		return nil
	}
	return format.Options{"indent": "  "}
}

// load reads one document into a registry. "" and "-" mean stdin.
func (cfg *MainConfig) load(cc *cli.Context, file string) (*registry.Registry, error) {
	r := registry.New(cfg.regOpts()...)
	if file == "" || file == "-" {
		data, err := io.ReadAll(cc.In)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		if err := r.LoadString(string(data), cfg.inOpts()...); err != nil {
			return nil, fmt.Errorf("error decoding stdin: %w", err)
		}
		return r, nil
	}
	if err := r.LoadFile(file, cfg.inOpts()...); err != nil {
		return nil, fmt.Errorf("error processing %s: %w", file, err)
	}
	return r, nil
}

func (cfg *MainConfig) write(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	if !strings.HasSuffix(s, "\n") {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

func (cfg *MainConfig) writeRegistry(w io.Writer, r *registry.Registry) error {
	s, err := r.ToString(cfg.outOpts()...)
	if err != nil {
		return err
	}
	return cfg.write(w, s)
}

func (cfg *MainConfig) renderNode(n *tree.Node) (string, error) {
	codec, err := format.Default().Lookup(cfg.outName())
	if err != nil {
		return "", err
	}
	d, err := codec.Encode(n, cfg.encodeOpts())
	if err != nil {
		return "", fmt.Errorf("error encoding result: %w", err)
	}
	return string(d), nil
}

func (cfg *MainConfig) writeNode(w io.Writer, n *tree.Node) error {
	s, err := cfg.renderNode(n)
	if err != nil {
		return err
	}
	return cfg.write(w, s)
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	Set *cli.Command
}

type DelConfig struct {
	*MainConfig

	Del *cli.Command
}

type KeysConfig struct {
	*MainConfig

	Keys *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

type MergeConfig struct {
	*MainConfig
	Recursive bool `cli:"name=r desc='merge recursively'"`

	Merge *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Color   bool `cli:"name=color desc='encode with color'"`

	Diff *cli.Command
}

func (cfg *DiffConfig) colorized(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	colorsSet := false
	for _, opt := range cfg.Diff.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type FlattenConfig struct {
	*MainConfig

	Flatten *cli.Command
}

type FormatsConfig struct {
	*MainConfig

	Formats *cli.Command
}
