package format

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/andrepereiradasilva/registry/tree"
)

// hclCodec maps registry trees onto HCL configuration syntax.
// Attributes hold scalar and list values, Objects write as blocks, and
// repeated blocks of one type decode as an Array. Labeled blocks nest
// one Object per label, so `server "a" {}` lands under server.a.
// Attribute expressions evaluate without a context: literals and
// operations on literals work, references to variables or functions
// fail the decode.
//
// Options:
//   - "filename" (string): name reported in decode diagnostics,
//     default "registry.hcl"
type hclCodec struct{}

func NewHCL() Codec { return hclCodec{} }

func (hclCodec) Name() string { return "hcl" }

func (hclCodec) Decode(data []byte, opts Options) (*tree.Node, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, opts.String("filename", "registry.hcl"))
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected hcl body type %T", file.Body)
	}
	return fromHCLBody(body)
}

func (hclCodec) Encode(root *tree.Node, opts Options) ([]byte, error) {
	if root.Type != tree.ObjectType {
		return nil, errors.New("hcl document root must be an object")
	}
	f := hclwrite.NewEmptyFile()
	if err := writeHCLBody(f.Body(), root); err != nil {
		return nil, err
	}
	return f.Bytes(), nil
}

// bodyItem orders attributes and blocks by source position, since
// hclsyntax keeps attributes in a map.
type bodyItem struct {
	startByte int
	attr      *hclsyntax.Attribute
	block     *hclsyntax.Block
}

func fromHCLBody(body *hclsyntax.Body) (*tree.Node, error) {
	items := make([]bodyItem, 0, len(body.Attributes)+len(body.Blocks))
	for _, attr := range body.Attributes {
		items = append(items, bodyItem{startByte: attr.SrcRange.Start.Byte, attr: attr})
	}
	for _, block := range body.Blocks {
		items = append(items, bodyItem{startByte: block.TypeRange.Start.Byte, block: block})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].startByte < items[j].startByte })

	obj := tree.NewObject()
	for _, item := range items {
		if item.attr != nil {
			val, diags := item.attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, diags
			}
			n, err := ctyToNode(val)
			if err != nil {
				return nil, err
			}
			obj.SetKey(item.attr.Name, n)
			continue
		}
		if err := addBlock(obj, item.block); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func addBlock(obj *tree.Node, block *hclsyntax.Block) error {
	sub, err := fromHCLBody(block.Body)
	if err != nil {
		return err
	}
	if len(block.Labels) > 0 {
		for i := len(block.Labels) - 1; i >= 0; i-- {
			wrap := tree.NewObject()
			wrap.SetKey(block.Labels[i], sub)
			sub = wrap
		}
		if existing := obj.Get(block.Type); existing != nil && existing.Type == tree.ObjectType {
			tree.Merge(existing, sub, true, true)
			return nil
		}
		obj.SetKey(block.Type, sub)
		return nil
	}
	existing := obj.Get(block.Type)
	switch {
	case existing == nil:
		obj.SetKey(block.Type, sub)
	case existing.Type == tree.ArrayType:
		existing.Append(sub)
	default:
		obj.SetKey(block.Type, tree.FromSlice([]*tree.Node{existing, sub}))
	}
	return nil
}

func ctyToNode(v cty.Value) (*tree.Node, error) {
	if v.IsNull() {
		return tree.Null(), nil
	}
	t := v.Type()
	switch {
	case t == cty.String:
		return tree.FromString(v.AsString()), nil
	case t == cty.Bool:
		return tree.FromBool(v.True()), nil
	case t == cty.Number:
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return tree.FromInt(i), nil
		}
		f, _ := bf.Float64()
		return tree.FromFloat(f), nil
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		arr := tree.NewArray()
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			n, err := ctyToNode(ev)
			if err != nil {
				return nil, err
			}
			arr.Append(n)
		}
		return arr, nil
	case t.IsObjectType() || t.IsMapType():
		obj := tree.NewObject()
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			n, err := ctyToNode(ev)
			if err != nil {
				return nil, err
			}
			obj.SetKey(kv.AsString(), n)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("cannot convert %s value", t.FriendlyName())
}

func nodeToCty(n *tree.Node) (cty.Value, error) {
	switch n.Type {
	case tree.NullType:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case tree.BoolType:
		return cty.BoolVal(n.Bool), nil
	case tree.StringType:
		return cty.StringVal(n.Str), nil
	case tree.NumberType:
		if n.Int64 != nil {
			return cty.NumberIntVal(*n.Int64), nil
		}
		if n.Float64 != nil {
			return cty.NumberFloatVal(*n.Float64), nil
		}
		bf, _, err := big.ParseFloat(n.Num, 10, 512, big.ToNearestEven)
		if err != nil {
			return cty.NilVal, err
		}
		return cty.NumberVal(bf), nil
	case tree.ArrayType:
		if len(n.Values) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elts := make([]cty.Value, len(n.Values))
		for i, elt := range n.Values {
			v, err := nodeToCty(elt)
			if err != nil {
				return cty.NilVal, err
			}
			elts[i] = v
		}
		return cty.TupleVal(elts), nil
	case tree.ObjectType:
		if len(n.Keys) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(n.Keys))
		for i, key := range n.Keys {
			v, err := nodeToCty(n.Values[i])
			if err != nil {
				return cty.NilVal, err
			}
			attrs[key] = v
		}
		return cty.ObjectVal(attrs), nil
	}
	return cty.NilVal, fmt.Errorf("cannot convert node type %s", n.Type)
}

func writeHCLBody(body *hclwrite.Body, obj *tree.Node) error {
	for i, key := range obj.Keys {
		v := obj.Values[i]
		switch {
		case v.Type == tree.ObjectType:
			blk := body.AppendNewBlock(key, nil)
			if err := writeHCLBody(blk.Body(), v); err != nil {
				return err
			}
		case v.Type == tree.ArrayType && len(v.Values) >= 2 && allObjects(v.Values):
			for _, elt := range v.Values {
				blk := body.AppendNewBlock(key, nil)
				if err := writeHCLBody(blk.Body(), elt); err != nil {
					return err
				}
			}
		default:
			cv, err := nodeToCty(v)
			if err != nil {
				return err
			}
			body.SetAttributeValue(key, cv)
		}
	}
	return nil
}

func allObjects(vs []*tree.Node) bool {
	for _, v := range vs {
		if v.Type != tree.ObjectType {
			return false
		}
	}
	return true
}
