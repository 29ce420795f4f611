package tree

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// FromAny converts a decoded Go value into a node. It covers the kinds
// produced by the format decoders (nil, bool, strings, numbers,
// json.Number, map[string]any, map[any]any, []any) plus nodes and node
// containers. Anything else round-trips through encoding/json, so any
// json-marshalable value is accepted.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x.Clone(), nil
	case map[string]*Node:
		return FromMap(x), nil
	case []*Node:
		return FromSlice(x), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		return fromNumber(x), nil
	case map[string]any:
		res := NewObject()
		for _, key := range slices.Sorted(maps.Keys(x)) {
			val, err := FromAny(x[key])
			if err != nil {
				return nil, err
			}
			res.SetKey(key, val)
		}
		return res, nil
	case map[any]any:
		keys := make([]string, 0, len(x))
		byKey := make(map[string]any, len(x))
		for k, val := range x {
			ks := fmt.Sprint(k)
			keys = append(keys, ks)
			byKey[ks] = val
		}
		sort.Strings(keys)
		res := NewObject()
		for _, key := range keys {
			val, err := FromAny(byKey[key])
			if err != nil {
				return nil, err
			}
			res.SetKey(key, val)
		}
		return res, nil
	case []any:
		res := NewArray()
		res.Values = make([]*Node, len(x))
		for i, elt := range x {
			val, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			res.Values[i] = val
		}
		return res, nil
	default:
		d, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return DecodeJSON(d)
	}
}

func fromNumber(num json.Number) *Node {
	if i, err := num.Int64(); err == nil {
		return FromInt(i)
	}
	// an integer literal beyond int64 keeps its text; float64 would
	// round it
	if !strings.ContainsAny(num.String(), ".eE") {
		return &Node{Type: NumberType, Num: num.String()}
	}
	if f, err := num.Float64(); err == nil {
		return FromFloat(f)
	}
	return &Node{Type: NumberType, Num: num.String()}
}

func fromUint(x uint64) *Node {
	if x > math.MaxInt64 {
		return &Node{Type: NumberType, Num: strconv.FormatUint(x, 10)}
	}
	return FromInt(int64(x))
}

// ToAny converts a node into plain Go values: Objects become
// map[string]any, Arrays []any, numbers int64 or float64 (json.Number
// for literals neither can hold).
func ToAny(n *Node) any {
	switch n.Type {
	case ObjectType:
		res := make(map[string]any, len(n.Keys))
		for i, key := range n.Keys {
			res[key] = ToAny(n.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(n.Values))
		for i, elt := range n.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return n.Str
	case NumberType:
		if n.Int64 != nil {
			return *n.Int64
		}
		if n.Float64 != nil {
			return *n.Float64
		}
		return json.Number(n.Num)
	case BoolType:
		return n.Bool
	case NullType:
		return nil
	default:
		panic("impossible production")
	}
}
