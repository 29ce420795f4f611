package registry

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/andrepereiradasilva/registry/debug"
	"github.com/andrepereiradasilva/registry/format"
	"github.com/andrepereiradasilva/registry/gobind"
	"github.com/andrepereiradasilva/registry/tree"
)

// bind layers src's members into the tree with load semantics: the
// merge is recursive and null or empty-string source values never
// overwrite existing data.
func (r *Registry) bind(src *tree.Node) {
	obj := asObject(src)
	if obj == nil {
		return
	}
	if debug.Bind() {
		debug.Logf("bind %v\n", obj)
	}
	tree.Merge(r.root, obj, true, false)
}

// asObject normalizes a decoded document root: objects pass through,
// arrays become objects keyed by element index, scalars have no
// members and yield nil.
func asObject(n *tree.Node) *tree.Node {
	if n == nil {
		return nil
	}
	switch n.Type {
	case tree.ObjectType:
		return n
	case tree.ArrayType:
		obj := tree.NewObject()
		for i, v := range n.Values {
			obj.SetKey(strconv.Itoa(i), v)
		}
		return obj
	}
	return nil
}

// adopt installs a decoded document root. The first document a
// Registry ever loads replaces the tree wholesale and marks it
// initialized; every later one binds into the existing tree.
func (r *Registry) adopt(node *tree.Node) {
	if r.initialized {
		r.bind(node)
		return
	}
	if obj := asObject(node); obj != nil {
		r.root = obj
	} else {
		r.root = tree.NewObject()
	}
	r.initialized = true
}

// codec resolves the codec for one call: explicit name first, then the
// file extension, then json.
func (r *Registry) codec(o options, path string) (format.Codec, error) {
	formats := r.formats
	if o.formats != nil {
		formats = o.formats
	}
	if formats == nil {
		formats = format.Default()
	}
	if o.formatName != "" {
		return formats.Lookup(o.formatName)
	}
	if path != "" {
		if ext := filepath.Ext(path); ext != "" {
			if c, err := formats.ByExtension(ext); err == nil {
				return c, nil
			}
		}
	}
	return formats.Lookup("json")
}

// LoadMap binds m into the tree; null and empty-string values do not
// overwrite existing data. With Flattened, keys are paths and each
// entry is an individual Set, applied in sorted key order.
func (r *Registry) LoadMap(m map[string]any, opts ...Option) error {
	o := r.view(opts)
	if o.flattened {
		for _, key := range slices.Sorted(maps.Keys(m)) {
			r.Set(key, m[key], opts...)
		}
		r.initialized = true
		return nil
	}
	node, err := gobind.Marshal(m)
	if err != nil {
		return err
	}
	r.bind(node)
	r.initialized = true
	return nil
}

// LoadStruct binds the exported fields of v into the tree through
// gobind reflection. Null and empty-string values do not overwrite
// existing data.
func (r *Registry) LoadStruct(v any, opts ...Option) error {
	node, err := gobind.Marshal(v)
	if err != nil {
		return err
	}
	r.bind(node)
	r.initialized = true
	return nil
}

// LoadString decodes s (json unless WithFormat says otherwise) and
// installs the document: the first load replaces the tree wholesale,
// later loads bind into it. Decode errors come back as the codec
// reported them.
func (r *Registry) LoadString(s string, opts ...Option) error {
	o := r.view(opts)
	codec, err := r.codec(o, "")
	if err != nil {
		return err
	}
	if debug.Format() {
		debug.Logf("decode %s (%d bytes)\n", codec.Name(), len(s))
	}
	node, err := codec.Decode([]byte(s), o.formatOpts)
	if err != nil {
		return err
	}
	r.adopt(node)
	return nil
}

// LoadFile reads path once and loads it like LoadString. The codec
// comes from WithFormat, else the file extension, else json.
func (r *Registry) LoadFile(path string, opts ...Option) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	o := r.view(opts)
	codec, err := r.codec(o, path)
	if err != nil {
		return err
	}
	if debug.Format() {
		debug.Logf("decode %s from %s (%d bytes)\n", codec.Name(), path, len(data))
	}
	node, err := codec.Decode(data, o.formatOpts)
	if err != nil {
		return err
	}
	r.adopt(node)
	return nil
}

// ToMap returns the tree as nested map[string]any / []any values,
// sharing nothing with the Registry.
func (r *Registry) ToMap() map[string]any {
	m, _ := tree.ToAny(r.root).(map[string]any)
	return m
}

// ToStruct fills v, which must be a non-nil pointer, from the tree
// through gobind reflection.
func (r *Registry) ToStruct(v any) error {
	return gobind.Unmarshal(r.root, v)
}

// ToString serializes the tree with the chosen codec (json unless
// WithFormat says otherwise).
func (r *Registry) ToString(opts ...Option) (string, error) {
	o := r.view(opts)
	codec, err := r.codec(o, "")
	if err != nil {
		return "", err
	}
	if debug.Format() {
		debug.Logf("encode %s\n", codec.Name())
	}
	d, err := codec.Encode(r.root, o.formatOpts)
	if err != nil {
		return "", err
	}
	return string(d), nil
}

// String renders the tree as json, or "" when encoding fails.
func (r *Registry) String() string {
	s, err := r.ToString()
	if err != nil {
		return ""
	}
	return s
}

// MarshalJSON encodes the tree as a plain json object.
func (r *Registry) MarshalJSON() ([]byte, error) {
	return r.root.MarshalJSON()
}

// UnmarshalJSON decodes data and installs it with load semantics, so
// repeated unmarshals into one Registry layer rather than replace.
func (r *Registry) UnmarshalJSON(data []byte) error {
	node, err := tree.DecodeJSON(data)
	if err != nil {
		return err
	}
	r.adopt(node)
	return nil
}
