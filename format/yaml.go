package format

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/andrepereiradasilva/registry/tree"
)

// yamlCodec decodes and encodes YAML documents. Mappings travel as
// yaml.MapSlice so member order survives the round trip.
//
// Options:
//   - "indent" (int): indentation width, default 2
type yamlCodec struct{}

func NewYAML() Codec { return yamlCodec{} }

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Decode(data []byte, opts Options) (*tree.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return fromYAML(v)
}

func (yamlCodec) Encode(root *tree.Node, opts Options) ([]byte, error) {
	return yaml.MarshalWithOptions(toYAML(root), yaml.Indent(opts.Int("indent", 2)))
}

func fromYAML(v any) (*tree.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		res := tree.NewObject()
		for _, item := range x {
			val, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			res.SetKey(fmt.Sprint(item.Key), val)
		}
		return res, nil
	case []any:
		res := tree.NewArray()
		for _, elt := range x {
			val, err := fromYAML(elt)
			if err != nil {
				return nil, err
			}
			res.Append(val)
		}
		return res, nil
	default:
		return tree.FromAny(v)
	}
}

func toYAML(n *tree.Node) any {
	switch n.Type {
	case tree.ObjectType:
		res := make(yaml.MapSlice, 0, len(n.Keys))
		for i, key := range n.Keys {
			res = append(res, yaml.MapItem{Key: key, Value: toYAML(n.Values[i])})
		}
		return res
	case tree.ArrayType:
		res := make([]any, len(n.Values))
		for i, elt := range n.Values {
			res[i] = toYAML(elt)
		}
		return res
	default:
		return tree.ToAny(n)
	}
}
