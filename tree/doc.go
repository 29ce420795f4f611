// Package tree provides the node representation for registry data.
//
// # Overview
//
// All registry content (whether decoded from a serialization format,
// bound from Go values, or built programmatically) is held as a tree
// of Node values. The tree is a simple recursive structure readily
// representable in JSON, YAML, and the other supported formats.
//
// # Node Structure
//
// A Node is a recursive tagged union. The Type field selects the
// payload:
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64 or float64, raw literal fallback)
//   - StringType: string value
//   - ObjectType: key-value pairs in insertion order
//   - ArrayType: ordered list of nodes
//
// For ObjectType nodes, Keys[i] is the key for the value at Values[i],
// so there are always as many keys as values. Insertion order is
// preserved and significant: it drives iteration and round-trip
// serialization.
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := tree.FromString("hello")
//	num := tree.FromInt(42)
//	obj := tree.FromMap(map[string]*tree.Node{
//	    "key": tree.FromString("value"),
//	})
//	any, err := tree.FromAny(decoded)
//
// # Path Operations
//
// Lookup, Put, and Delete navigate a tree by pre-split key segments
// (see the tpath subpackage for splitting path strings). Put
// auto-vivifies: missing intermediate keys become empty Objects, and a
// non-container in the way of a write is coerced rather than silently
// ignored.
//
// # Thread Safety
//
// Node structures are not thread-safe. Synchronize access yourself or
// Clone per goroutine.
package tree
