package tree

import (
	"maps"
	"slices"
	"strconv"

	"github.com/andrepereiradasilva/registry/tree/tpath"
)

// Flatten walks the tree and returns one entry per scalar leaf, keyed
// by the sep-joined path down to it. Array indices become string keys;
// root-level keys carry no leading separator. Only Scalars are leaves,
// Objects and Arrays are always walked further.
func Flatten(root *Node, sep string) map[string]any {
	if sep == "" {
		sep = tpath.Default
	}
	res := map[string]any{}
	flattenInto(res, root, "", sep)
	return res
}

func flattenInto(res map[string]any, n *Node, prefix, sep string) {
	switch n.Type {
	case ObjectType:
		for i, key := range n.Keys {
			flattenInto(res, n.Values[i], childPath(prefix, key, sep), sep)
		}
	case ArrayType:
		for i, elt := range n.Values {
			flattenInto(res, elt, childPath(prefix, strconv.Itoa(i), sep), sep)
		}
	default:
		if prefix == "" {
			// a scalar root has no addressable path
			return
		}
		res[prefix] = ToAny(n)
	}
}

func childPath(prefix, key, sep string) string {
	if prefix == "" {
		return key
	}
	return prefix + sep + key
}

// Unflatten is the dual of Flatten: it builds a tree from a flat
// path-to-value mapping. Paths insert in sorted order so the result is
// deterministic.
func Unflatten(flat map[string]any, sep string) (*Node, error) {
	root := NewObject()
	for _, path := range slices.Sorted(maps.Keys(flat)) {
		segs := tpath.Parse(path, sep)
		if len(segs) == 0 {
			continue
		}
		v, err := FromAny(flat[path])
		if err != nil {
			return nil, err
		}
		Put(root, segs, v)
	}
	return root, nil
}
