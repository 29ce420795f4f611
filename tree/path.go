package tree

import (
	"slices"
	"strconv"
)

// Lookup descends from root along segs. Objects descend by key, Arrays
// by decimal index. Missing keys, out-of-range indices, and scalar
// intermediates all report not found; so does an empty segs.
func Lookup(root *Node, segs []string) (*Node, bool) {
	if root == nil || len(segs) == 0 {
		return nil, false
	}
	cur := root
	for _, seg := range segs {
		switch cur.Type {
		case ObjectType:
			next := cur.Get(seg)
			if next == nil {
				return nil, false
			}
			cur = next
		case ArrayType:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(cur.Values) {
				return nil, false
			}
			cur = cur.Values[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Put assigns v at segs, creating empty Objects for missing
// intermediate keys. A scalar in the way of the walk is replaced by an
// empty Object; an Array in the way of a non-index key becomes an
// Object keyed by the stringified element indices. Returns the
// assigned node, or nil for an empty segs.
func Put(root *Node, segs []string, v *Node) *Node {
	if root == nil || len(segs) == 0 || v == nil {
		return nil
	}
	cur := root
	for _, seg := range segs[:len(segs)-1] {
		cur = descend(cur, seg)
	}
	return assign(cur, segs[len(segs)-1], v)
}

// descend returns the child of cur named by seg for a write walk,
// coercing cur into a container first when needed.
func descend(cur *Node, seg string) *Node {
	switch cur.Type {
	case ObjectType:
	case ArrayType:
		if i, ok := arrayIndex(seg, len(cur.Values)); ok {
			if i == len(cur.Values) {
				child := NewObject()
				cur.Values = append(cur.Values, child)
				return child
			}
			return cur.Values[i]
		}
		arrayToObject(cur)
	default:
		*cur = Node{Type: ObjectType}
	}
	if child := cur.Get(seg); child != nil {
		return child
	}
	child := NewObject()
	cur.SetKey(seg, child)
	return child
}

func assign(cur *Node, seg string, v *Node) *Node {
	switch cur.Type {
	case ObjectType:
	case ArrayType:
		if i, ok := arrayIndex(seg, len(cur.Values)); ok {
			if i == len(cur.Values) {
				cur.Values = append(cur.Values, v)
			} else {
				cur.Values[i] = v
			}
			return v
		}
		arrayToObject(cur)
	default:
		*cur = Node{Type: ObjectType}
	}
	cur.SetKey(seg, v)
	return v
}

// Delete removes and returns the node at segs, or nil when the path
// does not resolve. Delete never vivifies.
func Delete(root *Node, segs []string) *Node {
	if root == nil || len(segs) == 0 {
		return nil
	}
	parent := root
	if len(segs) > 1 {
		p, ok := Lookup(root, segs[:len(segs)-1])
		if !ok {
			return nil
		}
		parent = p
	}
	last := segs[len(segs)-1]
	switch parent.Type {
	case ObjectType:
		return parent.DeleteKey(last)
	case ArrayType:
		i, err := strconv.Atoi(last)
		if err != nil || i < 0 || i >= len(parent.Values) {
			return nil
		}
		v := parent.Values[i]
		parent.Values = slices.Delete(parent.Values, i, i+1)
		return v
	}
	return nil
}

// arrayIndex parses seg as a decimal index usable against an array of
// length n; i == n means append.
func arrayIndex(seg string, n int) (int, bool) {
	i, err := strconv.Atoi(seg)
	if err != nil || i < 0 || i > n {
		return 0, false
	}
	return i, true
}

// arrayToObject converts an Array to an Object in place, keying each
// element by its stringified index.
func arrayToObject(n *Node) {
	keys := make([]string, len(n.Values))
	for i := range n.Values {
		keys[i] = strconv.Itoa(i)
	}
	n.Type = ObjectType
	n.Keys = keys
}
