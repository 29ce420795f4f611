package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// DecodeJSON parses a single JSON value into a node. The decode is
// token level so object member order survives, which json.Unmarshal
// into map[string]any would lose.
func DecodeJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	n, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return n, nil
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return FromString(t), nil
	case json.Number:
		return fromNumber(t), nil
	case bool:
		return FromBool(t), nil
	case nil:
		return Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (*Node, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key %v is not a string", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.SetKey(key, val)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (*Node, error) {
	arr := NewArray()
	for dec.More() {
		elt, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr.Append(elt)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// MarshalJSON encodes the node as a plain JSON value rather than an
// envelope describing the Node struct. Object members encode in
// insertion order.
func (n *Node) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encodeJSON(buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) UnmarshalJSON(d []byte) error {
	nn, err := DecodeJSON(d)
	if err != nil {
		return err
	}
	*n = *nn
	return nil
}

func encodeJSON(buf *bytes.Buffer, n *Node) error {
	switch n.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		if n.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case NumberType:
		buf.WriteString(n.NumberString())
	case StringType:
		d, err := json.Marshal(n.Str)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		buf.WriteByte('[')
		for i, elt := range n.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSON(buf, elt); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i, key := range n.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kd, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(kd)
			buf.WriteByte(':')
			if err := encodeJSON(buf, n.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode node type %s", n.Type)
	}
	return nil
}
