package gobind

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/andrepereiradasilva/registry/tree"
)

// Marshal converts a Go value to a node. Struct fields keep their
// declaration order, map keys encode sorted. Circular references
// through pointers, slices and maps are reported as errors rather
// than followed.
func Marshal(v any) (*tree.Node, error) {
	if v == nil {
		return tree.Null(), nil
	}
	if n, ok := v.(*tree.Node); ok {
		return n.Clone(), nil
	}
	visited := make(map[uintptr]string) // pointer address -> field path where first seen
	return marshalValue(reflect.ValueOf(v), "", visited)
}

func marshalValue(val reflect.Value, fieldPath string, visited map[uintptr]string) (*tree.Node, error) {
	if !val.IsValid() {
		return tree.Null(), nil
	}
	typ := val.Type()
	kind := typ.Kind()

	if kind == reflect.Pointer {
		if val.IsNil() {
			return tree.Null(), nil
		}
		if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
			return marshalText(tm, fieldPath)
		}
		addr := val.Pointer()
		if prev, seen := visited[addr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference, previously seen at %s", prevPath(prev)),
			}
		}
		visited[addr] = fieldPath
		node, err := marshalValue(val.Elem(), fieldPath, visited)
		// the same pointer may legally appear again in a sibling branch
		delete(visited, addr)
		return node, err
	}

	if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
		return marshalText(tm, fieldPath)
	}
	if val.CanAddr() {
		if tm, ok := val.Addr().Interface().(encoding.TextMarshaler); ok {
			return marshalText(tm, fieldPath)
		}
	}

	switch kind {
	case reflect.String:
		return tree.FromString(val.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return tree.FromInt(val.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return tree.FromAny(val.Uint())

	case reflect.Float32, reflect.Float64:
		return tree.FromFloat(val.Float()), nil

	case reflect.Bool:
		return tree.FromBool(val.Bool()), nil

	case reflect.Slice, reflect.Array:
		return marshalSeq(val, fieldPath, visited)

	case reflect.Map:
		return marshalMap(val, fieldPath, visited)

	case reflect.Struct:
		return marshalStruct(val, fieldPath, visited)

	case reflect.Interface:
		if val.IsNil() {
			return tree.Null(), nil
		}
		return marshalValue(val.Elem(), fieldPath, visited)

	default:
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type: %s", typ),
		}
	}
}

func marshalText(tm encoding.TextMarshaler, fieldPath string) (*tree.Node, error) {
	text, err := tm.MarshalText()
	if err != nil {
		return nil, &MarshalError{FieldPath: fieldPath, Message: "MarshalText failed", Err: err}
	}
	return tree.FromString(string(text)), nil
}

func marshalSeq(val reflect.Value, fieldPath string, visited map[uintptr]string) (*tree.Node, error) {
	if val.Kind() == reflect.Slice {
		if val.IsNil() {
			return tree.Null(), nil
		}
		if val.Type().Elem().Kind() == reflect.Uint8 {
			return tree.FromString(string(val.Bytes())), nil
		}
		addr := val.Pointer()
		if prev, seen := visited[addr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference, previously seen at %s", prevPath(prev)),
			}
		}
		visited[addr] = fieldPath
		defer delete(visited, addr)
	}

	elements := make([]*tree.Node, val.Len())
	for i := range elements {
		node, err := marshalValue(val.Index(i), elemPath(fieldPath, i), visited)
		if err != nil {
			return nil, err
		}
		elements[i] = node
	}
	return tree.FromSlice(elements), nil
}

func marshalMap(val reflect.Value, fieldPath string, visited map[uintptr]string) (*tree.Node, error) {
	if val.IsNil() {
		return tree.Null(), nil
	}
	addr := val.Pointer()
	if prev, seen := visited[addr]; seen {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("circular reference, previously seen at %s", prevPath(prev)),
		}
	}
	visited[addr] = fieldPath
	defer delete(visited, addr)

	keys := val.MapKeys()
	names := make([]string, len(keys))
	for i, key := range keys {
		switch key.Kind() {
		case reflect.String:
			names[i] = key.String()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			names[i] = strconv.FormatInt(key.Int(), 10)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			names[i] = strconv.FormatUint(key.Uint(), 10)
		default:
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("map keys must be strings or integers, got %s", val.Type().Key()),
			}
		}
	}
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	if len(keys) > 0 && keys[0].Kind() == reflect.String {
		sort.Slice(order, func(a, b int) bool { return names[order[a]] < names[order[b]] })
	} else {
		sort.Slice(order, func(a, b int) bool {
			x, _ := strconv.ParseInt(names[order[a]], 10, 64)
			y, _ := strconv.ParseInt(names[order[b]], 10, 64)
			return x < y
		})
	}

	obj := tree.NewObject()
	for _, i := range order {
		node, err := marshalValue(val.MapIndex(keys[i]), keyPath(fieldPath, names[i]), visited)
		if err != nil {
			return nil, err
		}
		obj.SetKey(names[i], node)
	}
	return obj, nil
}

// marshalStruct walks fields in declaration order. Anonymous struct
// fields are flattened into the parent object; a flattened name that
// collides with an already present key is an error.
func marshalStruct(val reflect.Value, fieldPath string, visited map[uintptr]string) (*tree.Node, error) {
	typ := val.Type()
	obj := tree.NewObject()

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldVal := val.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct && field.Tag.Get("registry") == "" && field.Tag.Get("json") == "" {
			embedded, err := marshalStruct(fieldVal, fieldPath, visited)
			if err != nil {
				return nil, err
			}
			for j, name := range embedded.Keys {
				if obj.Get(name) != nil {
					return nil, &MarshalError{
						FieldPath: fieldPath,
						Message:   fmt.Sprintf("embedded field %q conflicts with an existing field", name),
					}
				}
				obj.SetKey(name, embedded.Values[j])
			}
			continue
		}

		name, omitEmpty, skip := fieldName(field)
		if skip {
			continue
		}
		if omitEmpty && isEmptyValue(fieldVal) {
			continue
		}
		node, err := marshalValue(fieldVal, keyPath(fieldPath, name), visited)
		if err != nil {
			return nil, err
		}
		obj.SetKey(name, node)
	}
	return obj, nil
}

func keyPath(fieldPath, key string) string {
	if fieldPath == "" {
		return key
	}
	return fieldPath + "." + key
}

func elemPath(fieldPath string, i int) string {
	return fmt.Sprintf("%s[%d]", fieldPath, i)
}

func prevPath(p string) string {
	if p == "" {
		return "the root value"
	}
	return p
}
