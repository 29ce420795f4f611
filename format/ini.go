package format

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/andrepereiradasilva/registry/tree"
)

// iniCodec maps registry trees onto INI documents: top-level scalars
// live in the default section, top-level Objects become sections.
// Deeper nesting and arrays have no INI shape and fail the encode. INI
// carries no types, so decoded values are retyped from their text
// unless switched off.
//
// Options:
//   - "typed" (bool): retype values on decode, default true
type iniCodec struct{}

func NewINI() Codec { return iniCodec{} }

func (iniCodec) Name() string { return "ini" }

func (iniCodec) Decode(data []byte, opts Options) (*tree.Node, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, err
	}
	typed := opts.Bool("typed", true)
	root := tree.NewObject()
	for _, sec := range f.Sections() {
		target := root
		if sec.Name() != ini.DefaultSection {
			target = tree.NewObject()
			root.SetKey(sec.Name(), target)
		} else if len(sec.Keys()) == 0 {
			continue
		}
		for _, key := range sec.Keys() {
			v := tree.FromString(key.Value())
			if typed {
				v.ReType()
			}
			target.SetKey(key.Name(), v)
		}
	}
	return root, nil
}

func (iniCodec) Encode(root *tree.Node, opts Options) ([]byte, error) {
	if root.Type != tree.ObjectType {
		return nil, errors.New("ini document root must be an object")
	}
	cfg := ini.Empty()
	for i, key := range root.Keys {
		v := root.Values[i]
		if v.Type == tree.ObjectType {
			sec, err := cfg.NewSection(key)
			if err != nil {
				return nil, err
			}
			for j, skey := range v.Keys {
				sv := v.Values[j]
				if !sv.Type.IsLeaf() {
					return nil, fmt.Errorf("ini cannot represent nested value at %s.%s", key, skey)
				}
				if _, err := sec.NewKey(skey, scalarText(sv)); err != nil {
					return nil, err
				}
			}
			continue
		}
		if !v.Type.IsLeaf() {
			return nil, fmt.Errorf("ini cannot represent value at %s", key)
		}
		if _, err := cfg.Section("").NewKey(key, scalarText(v)); err != nil {
			return nil, err
		}
	}
	buf := bytes.NewBuffer(nil)
	if _, err := cfg.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scalarText(n *tree.Node) string {
	switch n.Type {
	case tree.StringType:
		return n.Str
	case tree.NumberType:
		return n.NumberString()
	case tree.BoolType:
		if n.Bool {
			return "true"
		}
		return "false"
	}
	// null
	return ""
}
