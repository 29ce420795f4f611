package tree

import (
	"maps"
	"slices"
	"strconv"
)

// Node is a value in a registry tree. It works as a recursive tagged
// union: the Type field selects which payload fields are meaningful.
//
// Objects keep their entries in insertion order. Keys[i] names the
// value at Values[i], so the two slices always have the same length.
// Arrays use Values alone. Scalars use Str, Bool, or one of
// Int64/Float64 (a number holds exactly one of the two; Num carries
// the literal text when neither can represent it).
type Node struct {
	Type   Type
	Keys   []string
	Values []*Node

	Str     string
	Bool    bool
	Num     string
	Int64   *int64
	Float64 *float64
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{
		Type: StringType,
		Str:  v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

func NewArray() *Node {
	return &Node{Type: ArrayType}
}

// FromMap builds an Object from a key-to-node map. Keys are sorted so
// the result is deterministic.
func FromMap(m map[string]*Node) *Node {
	res := NewObject()
	res.Keys = make([]string, 0, len(m))
	res.Values = make([]*Node, 0, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		res.Keys = append(res.Keys, key)
		res.Values = append(res.Values, m[key])
	}
	return res
}

func FromSlice(vs []*Node) *Node {
	res := NewArray()
	res.Values = slices.Clone(vs)
	return res
}

// Get returns the value stored under key, or nil when the node is not
// an Object or the key is absent.
func (n *Node) Get(key string) *Node {
	if n == nil || n.Type != ObjectType {
		return nil
	}
	for i := range n.Keys {
		if n.Keys[i] == key {
			return n.Values[i]
		}
	}
	return nil
}

// Index returns the position of key in an Object, or -1.
func (n *Node) Index(key string) int {
	if n == nil || n.Type != ObjectType {
		return -1
	}
	for i := range n.Keys {
		if n.Keys[i] == key {
			return i
		}
	}
	return -1
}

// SetKey stores v under key, replacing an existing entry in place or
// appending a new one. The node must be an Object.
func (n *Node) SetKey(key string, v *Node) {
	if i := n.Index(key); i >= 0 {
		n.Values[i] = v
		return
	}
	n.Keys = append(n.Keys, key)
	n.Values = append(n.Values, v)
}

// DeleteKey removes key from an Object, returning the removed value or
// nil when the key is absent.
func (n *Node) DeleteKey(key string) *Node {
	i := n.Index(key)
	if i < 0 {
		return nil
	}
	v := n.Values[i]
	n.Keys = slices.Delete(n.Keys, i, i+1)
	n.Values = slices.Delete(n.Values, i, i+1)
	return v
}

// Append pushes v onto an Array.
func (n *Node) Append(v *Node) {
	n.Values = append(n.Values, v)
}

// Len returns the number of object entries or array elements.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	if n.Type == ObjectType {
		return len(n.Keys)
	}
	return len(n.Values)
}

// IsEmptyScalar reports whether n is treated as absent by value
// lookups: a Null node or a String node holding "".
func (n *Node) IsEmptyScalar() bool {
	if n == nil {
		return true
	}
	switch n.Type {
	case NullType:
		return true
	case StringType:
		return n.Str == ""
	}
	return false
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Type = n.Type
	dst.Keys = slices.Clone(n.Keys)
	dst.Values = make([]*Node, len(n.Values))
	for i, v := range n.Values {
		dst.Values[i] = v.Clone()
	}
	dst.Str = n.Str
	dst.Bool = n.Bool
	dst.Num = n.Num
	if n.Float64 != nil {
		f := *n.Float64
		dst.Float64 = &f
	}
	if n.Int64 != nil {
		i := *n.Int64
		dst.Int64 = &i
	}
	return dst
}

// Visit walks the tree rooted at n. f is called twice per node, before
// and after its children; returning dive=false from the pre call skips
// the children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range n.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

// ReType reinterprets a String node whose text spells a null, bool,
// or number. Formats without native types (XML, INI) decode everything
// as strings and retype afterwards.
func (n *Node) ReType() {
	if n.Type != StringType {
		return
	}
	v := n.Str
	switch v {
	case "null":
		n.Type = NullType
		n.Str = ""
		return
	case "true":
		n.Type = BoolType
		n.Bool = true
		n.Str = ""
		return
	case "false":
		n.Type = BoolType
		n.Str = ""
		return
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err == nil {
		n.Type = NumberType
		n.Int64 = &i
		n.Str = ""
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err == nil {
		n.Type = NumberType
		n.Float64 = &f
		n.Str = ""
	}
}

// NumberString renders a Number node the way it entered the tree:
// Int64 and Float64 format with strconv, the raw literal passes
// through unchanged.
func (n *Node) NumberString() string {
	if n.Int64 != nil {
		return strconv.FormatInt(*n.Int64, 10)
	}
	if n.Float64 != nil {
		return strconv.FormatFloat(*n.Float64, 'g', -1, 64)
	}
	return n.Num
}
