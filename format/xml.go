package format

import (
	"fmt"

	"github.com/clbanning/mxj/v2"

	"github.com/andrepereiradasilva/registry/tree"
)

// xmlCodec maps registry trees onto element trees. The document root
// is a single wrapper element; repeated sibling elements decode as an
// Array. XML carries no types, so decoded scalars are retyped from
// their text unless switched off. Member order follows the underlying
// map and is not stable across encodes.
//
// Options:
//   - "root" (string): wrapper element name, default "registry"
//   - "indent" (string): pretty-print with the given indent unit
//   - "typed" (bool): retype scalar text on decode, default true
type xmlCodec struct{}

func NewXML() Codec { return xmlCodec{} }

func (xmlCodec) Name() string { return "xml" }

func (xmlCodec) Decode(data []byte, opts Options) (*tree.Node, error) {
	mv, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, err
	}
	m := map[string]any(mv)
	if len(m) != 1 {
		return nil, fmt.Errorf("xml document has %d roots", len(m))
	}
	var inner any
	for _, v := range m {
		inner = v
	}
	if inner == nil || inner == "" {
		// empty wrapper element
		return tree.NewObject(), nil
	}
	root, err := tree.FromAny(inner)
	if err != nil {
		return nil, err
	}
	if opts.Bool("typed", true) {
		root.Visit(func(n *tree.Node, isPost bool) (bool, error) {
			if !isPost {
				n.ReType()
			}
			return true, nil
		})
	}
	return root, nil
}

func (xmlCodec) Encode(root *tree.Node, opts Options) ([]byte, error) {
	rootName := opts.String("root", "registry")
	mv := mxj.Map{rootName: tree.ToAny(root)}
	if indent := opts.String("indent", ""); indent != "" {
		return mv.XmlIndent("", indent)
	}
	return mv.Xml()
}
