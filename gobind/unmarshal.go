package gobind

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/andrepereiradasilva/registry/tree"
)

// Unmarshal fills v, which must be a non-nil pointer, from a node.
// Members without a matching destination are skipped; destination
// fields without a matching member keep their value. A Null member
// zeroes its destination.
func Unmarshal(node *tree.Node, v any) error {
	if v == nil {
		return &UnmarshalError{Message: "destination cannot be nil"}
	}
	if dst, ok := v.(*tree.Node); ok {
		if node == nil {
			return &UnmarshalError{Message: "node is nil"}
		}
		node.CloneTo(dst)
		return nil
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer {
		return &UnmarshalError{Message: "destination must be a pointer"}
	}
	if val.IsNil() {
		return &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	visited := make(map[uintptr]string)
	return unmarshalValue(node, val.Elem(), "", visited)
}

func unmarshalValue(node *tree.Node, val reflect.Value, fieldPath string, visited map[uintptr]string) error {
	if node == nil {
		return &UnmarshalError{FieldPath: fieldPath, Message: "node is nil"}
	}
	typ := val.Type()
	kind := typ.Kind()

	if kind == reflect.Pointer {
		if node.Type == tree.NullType {
			if val.CanSet() {
				val.Set(reflect.Zero(typ))
			}
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		if node.Type == tree.StringType {
			if tu, ok := val.Interface().(encoding.TextUnmarshaler); ok {
				return unmarshalText(tu, node.Str, fieldPath)
			}
		}
		addr := val.Pointer()
		if prev, seen := visited[addr]; seen {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference, previously seen at %s", prevPath(prev)),
			}
		}
		visited[addr] = fieldPath
		err := unmarshalValue(node, val.Elem(), fieldPath, visited)
		delete(visited, addr)
		return err
	}

	if node.Type == tree.NullType {
		if val.CanSet() {
			val.Set(reflect.Zero(typ))
		}
		return nil
	}

	if node.Type == tree.StringType && val.CanAddr() {
		if tu, ok := val.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return unmarshalText(tu, node.Str, fieldPath)
		}
	}

	switch kind {
	case reflect.String:
		if node.Type != tree.StringType {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("expected string, got %s", node.Type),
			}
		}
		if val.CanSet() {
			val.SetString(node.Str)
		}
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return unmarshalInt(node, val, fieldPath)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unmarshalUint(node, val, fieldPath)

	case reflect.Float32, reflect.Float64:
		return unmarshalFloat(node, val, fieldPath)

	case reflect.Bool:
		if node.Type != tree.BoolType {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("expected bool, got %s", node.Type),
			}
		}
		if val.CanSet() {
			val.SetBool(node.Bool)
		}
		return nil

	case reflect.Slice, reflect.Array:
		return unmarshalSeq(node, val, fieldPath, visited)

	case reflect.Map:
		return unmarshalMap(node, val, fieldPath, visited)

	case reflect.Struct:
		return unmarshalStruct(node, val, fieldPath, visited)

	case reflect.Interface:
		if typ.NumMethod() != 0 {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cannot unmarshal into non-empty interface %s", typ),
			}
		}
		if val.CanSet() {
			val.Set(reflect.ValueOf(tree.ToAny(node)))
		}
		return nil

	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type: %s", typ),
		}
	}
}

func unmarshalText(tu encoding.TextUnmarshaler, s, fieldPath string) error {
	if err := tu.UnmarshalText([]byte(s)); err != nil {
		return &UnmarshalError{FieldPath: fieldPath, Message: "UnmarshalText failed", Err: err}
	}
	return nil
}

// unmarshalInt accepts numbers and numeric strings, as text formats
// hand over digits in string form.
func unmarshalInt(node *tree.Node, val reflect.Value, fieldPath string) error {
	var iv int64
	switch {
	case node.Type == tree.NumberType && node.Int64 != nil:
		iv = *node.Int64
	case node.Type == tree.NumberType && node.Num != "":
		parsed, err := strconv.ParseInt(node.Num, 10, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("invalid number: %q", node.Num),
				Err:       err,
			}
		}
		iv = parsed
	case node.Type == tree.NumberType:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("cannot convert %v to integer", tree.ToAny(node)),
		}
	case node.Type == tree.StringType:
		parsed, err := strconv.ParseInt(node.Str, 10, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cannot convert string %q to int", node.Str),
				Err:       err,
			}
		}
		iv = parsed
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}
	if val.OverflowInt(iv) {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("value %d overflows %s", iv, val.Type()),
		}
	}
	if val.CanSet() {
		val.SetInt(iv)
	}
	return nil
}

func unmarshalUint(node *tree.Node, val reflect.Value, fieldPath string) error {
	var uv uint64
	switch {
	case node.Type == tree.NumberType && node.Int64 != nil:
		if *node.Int64 < 0 {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("negative value %d cannot be converted to unsigned integer", *node.Int64),
			}
		}
		uv = uint64(*node.Int64)
	case node.Type == tree.NumberType && node.Num != "":
		parsed, err := strconv.ParseUint(node.Num, 10, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("invalid unsigned number: %q", node.Num),
				Err:       err,
			}
		}
		uv = parsed
	case node.Type == tree.NumberType:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("cannot convert %v to unsigned integer", tree.ToAny(node)),
		}
	case node.Type == tree.StringType:
		parsed, err := strconv.ParseUint(node.Str, 10, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cannot convert string %q to uint", node.Str),
				Err:       err,
			}
		}
		uv = parsed
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}
	if val.OverflowUint(uv) {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("value %d overflows %s", uv, val.Type()),
		}
	}
	if val.CanSet() {
		val.SetUint(uv)
	}
	return nil
}

func unmarshalFloat(node *tree.Node, val reflect.Value, fieldPath string) error {
	var fv float64
	switch {
	case node.Type == tree.NumberType && node.Float64 != nil:
		fv = *node.Float64
	case node.Type == tree.NumberType && node.Int64 != nil:
		fv = float64(*node.Int64)
	case node.Type == tree.NumberType && node.Num != "":
		parsed, err := strconv.ParseFloat(node.Num, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("invalid float: %q", node.Num),
				Err:       err,
			}
		}
		fv = parsed
	case node.Type == tree.StringType:
		parsed, err := strconv.ParseFloat(node.Str, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cannot convert string %q to float", node.Str),
				Err:       err,
			}
		}
		fv = parsed
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}
	if val.CanSet() {
		val.SetFloat(fv)
	}
	return nil
}

func unmarshalSeq(node *tree.Node, val reflect.Value, fieldPath string, visited map[uintptr]string) error {
	typ := val.Type()
	if typ.Kind() == reflect.Slice && typ.Elem().Kind() == reflect.Uint8 && node.Type == tree.StringType {
		if val.CanSet() {
			val.SetBytes([]byte(node.Str))
		}
		return nil
	}
	if node.Type != tree.ArrayType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected array, got %s", node.Type),
		}
	}

	length := len(node.Values)
	if typ.Kind() == reflect.Array {
		if val.Len() != length {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("array length mismatch: have %d, got %d members", val.Len(), length),
			}
		}
	} else {
		if val.IsNil() || val.Cap() < length {
			val.Set(reflect.MakeSlice(typ, length, length))
		} else {
			val.SetLen(length)
		}
	}

	for i := 0; i < length; i++ {
		if err := unmarshalValue(node.Values[i], val.Index(i), elemPath(fieldPath, i), visited); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalMap(node *tree.Node, val reflect.Value, fieldPath string, visited map[uintptr]string) error {
	if node.Type != tree.ObjectType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected object, got %s", node.Type),
		}
	}
	typ := val.Type()
	keyType := typ.Key()
	if val.CanSet() {
		val.Set(reflect.MakeMapWithSize(typ, len(node.Keys)))
	}

	for i, name := range node.Keys {
		keyVal := reflect.New(keyType).Elem()
		switch keyType.Kind() {
		case reflect.String:
			keyVal.SetString(name)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			k, err := strconv.ParseInt(name, 10, 64)
			if err != nil || keyVal.OverflowInt(k) {
				return &UnmarshalError{
					FieldPath: fieldPath,
					Message:   fmt.Sprintf("cannot use member %q as %s map key", name, keyType),
				}
			}
			keyVal.SetInt(k)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			k, err := strconv.ParseUint(name, 10, 64)
			if err != nil || keyVal.OverflowUint(k) {
				return &UnmarshalError{
					FieldPath: fieldPath,
					Message:   fmt.Sprintf("cannot use member %q as %s map key", name, keyType),
				}
			}
			keyVal.SetUint(k)
		default:
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("map keys must be strings or integers, got %s", keyType),
			}
		}

		elemVal := reflect.New(typ.Elem()).Elem()
		if err := unmarshalValue(node.Values[i], elemVal, keyPath(fieldPath, name), visited); err != nil {
			return err
		}
		val.SetMapIndex(keyVal, elemVal)
	}
	return nil
}

type fieldInfo struct {
	index []int
}

// structFields maps member names to field index paths, flattening
// anonymous struct fields the same way marshalStruct does. A named
// field shadows an embedded one of the same name.
func structFields(typ reflect.Type, fieldPath string) (map[string]fieldInfo, error) {
	fields := make(map[string]fieldInfo)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct && field.Tag.Get("registry") == "" && field.Tag.Get("json") == "" {
			embedded, err := structFields(field.Type, fieldPath)
			if err != nil {
				return nil, err
			}
			for name, info := range embedded {
				if _, exists := fields[name]; exists {
					return nil, &UnmarshalError{
						FieldPath: fieldPath,
						Message:   fmt.Sprintf("embedded field %q conflicts with an existing field", name),
					}
				}
				fields[name] = fieldInfo{index: slices.Concat(field.Index, info.index)}
			}
			continue
		}
		name, _, skip := fieldName(field)
		if skip {
			continue
		}
		fields[name] = fieldInfo{index: field.Index}
	}
	return fields, nil
}

func unmarshalStruct(node *tree.Node, val reflect.Value, fieldPath string, visited map[uintptr]string) error {
	if node.Type != tree.ObjectType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected object, got %s", node.Type),
		}
	}
	fields, err := structFields(val.Type(), fieldPath)
	if err != nil {
		return err
	}

	for i, name := range node.Keys {
		info, found := fields[name]
		if !found {
			continue
		}
		fieldVal := val.FieldByIndex(info.index)
		if !fieldVal.IsValid() {
			continue
		}
		if err := unmarshalValue(node.Values[i], fieldVal, keyPath(fieldPath, name), visited); err != nil {
			return err
		}
	}
	return nil
}
