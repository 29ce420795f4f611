package format

import (
	"bytes"
	"errors"

	"github.com/BurntSushi/toml"

	"github.com/andrepereiradasilva/registry/tree"
)

// tomlCodec maps registry trees onto TOML documents. The document root
// must be an Object, keys encode sorted, and Null values are dropped
// on encode since TOML has no null.
//
// Options:
//   - "indent" (string): indent unit for nested tables, default two
//     spaces
type tomlCodec struct{}

func NewTOML() Codec { return tomlCodec{} }

func (tomlCodec) Name() string { return "toml" }

func (tomlCodec) Decode(data []byte, opts Options) (*tree.Node, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return tree.FromAny(m)
}

func (tomlCodec) Encode(root *tree.Node, opts Options) ([]byte, error) {
	if root.Type != tree.ObjectType {
		return nil, errors.New("toml document root must be an object")
	}
	v, _ := stripNulls(tree.ToAny(root))
	buf := bytes.NewBuffer(nil)
	enc := toml.NewEncoder(buf)
	enc.Indent = opts.String("indent", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stripNulls removes nil entries recursively; the second result
// reports whether v itself should be dropped.
func stripNulls(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case map[string]any:
		for k, elt := range x {
			cleaned, drop := stripNulls(elt)
			if drop {
				delete(x, k)
				continue
			}
			x[k] = cleaned
		}
		return x, false
	case []any:
		res := x[:0]
		for _, elt := range x {
			cleaned, drop := stripNulls(elt)
			if drop {
				continue
			}
			res = append(res, cleaned)
		}
		return res, false
	default:
		return v, false
	}
}
