package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/andrepereiradasilva/registry/tree"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := renderArg(cfg, cc, args[0])
	if err != nil {
		return err
	}
	b, err := renderArg(cfg, cc, args[1])
	if err != nil {
		return err
	}
	if cfg.Reverse {
		a, b = b, a
	}
	differs, err := diffTexts(cfg, cc.Out, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// renderArg loads one input and renders it with sorted keys, so two
// documents differing only in key order come out identical.
func renderArg(cfg *DiffConfig, cc *cli.Context, file string) (string, error) {
	r, err := cfg.load(cc, file)
	if err != nil {
		return "", err
	}
	n, err := tree.FromAny(r.ToMap())
	if err != nil {
		return "", fmt.Errorf("error processing %s: %w", file, err)
	}
	return cfg.renderNode(n)
}

func diffTexts(cfg *DiffConfig, w io.Writer, a, b string) (bool, error) {
	if !strings.HasSuffix(a, "\n") {
		a += "\n"
	}
	if !strings.HasSuffix(b, "\n") {
		b += "\n"
	}
	if a == b {
		return false, nil
	}
	var (
		eq  func(string, ...any) string = fmt.Sprintf
		ins func(string, ...any) string = fmt.Sprintf
		del func(string, ...any) string = fmt.Sprintf
	)
	if cfg.colorized(w) {
		ins = color.GreenString
		del = color.RedString
	}
	dmp := diffpatch.New()
	ca, cb, lineIndex := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lineIndex)
	for i := range diffs {
		d := &diffs[i]
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			var s string
			switch d.Type {
			case diffpatch.DiffInsert:
				s = ins("+ %s", line)
			case diffpatch.DiffDelete:
				s = del("- %s", line)
			case diffpatch.DiffEqual:
				s = eq("  %s", line)
			}
			if _, err := io.WriteString(w, s+"\n"); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}
