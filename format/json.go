package format

import (
	"bytes"
	"encoding/json"

	"github.com/andrepereiradasilva/registry/tree"
)

// jsonCodec is the default format. Object member order survives both
// directions.
//
// Options:
//   - "indent" (string): pretty-print with the given indent unit
type jsonCodec struct{}

func NewJSON() Codec { return jsonCodec{} }

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Decode(data []byte, opts Options) (*tree.Node, error) {
	return tree.DecodeJSON(data)
}

func (jsonCodec) Encode(root *tree.Node, opts Options) ([]byte, error) {
	d, err := root.MarshalJSON()
	if err != nil {
		return nil, err
	}
	indent := opts.String("indent", "")
	if indent == "" {
		return d, nil
	}
	buf := bytes.NewBuffer(nil)
	if err := json.Indent(buf, d, "", indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
