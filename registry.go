package registry

import (
	"iter"
	"slices"

	"github.com/andrepereiradasilva/registry/debug"
	"github.com/andrepereiradasilva/registry/format"
	"github.com/andrepereiradasilva/registry/gobind"
	"github.com/andrepereiradasilva/registry/tree"
	"github.com/andrepereiradasilva/registry/tree/tpath"
)

// Registry is a hierarchical key/value container addressed by
// separated paths. The zero value is not usable; construct with New or
// NewFrom.
type Registry struct {
	root        *tree.Node
	sep         string
	formats     *format.Registry
	initialized bool
}

type options struct {
	sep        string
	formatName string
	formatOpts format.Options
	flattened  bool
	formats    *format.Registry
}

// Option configures a Registry. WithSeparator and WithFormats take
// effect at construction and may also be passed to individual calls;
// WithFormat, WithFormatOptions and Flattened are per-call only.
type Option func(*options)

// WithSeparator sets the path separator. Separators may be longer than
// one character.
func WithSeparator(sep string) Option {
	return func(o *options) { o.sep = sep }
}

// WithFormats injects the codec registry consulted by the load and
// serialize methods. Defaults to format.Default().
func WithFormats(f *format.Registry) Option {
	return func(o *options) { o.formats = f }
}

// WithFormat selects the codec by name for one load or serialize call.
func WithFormat(name string) Option {
	return func(o *options) { o.formatName = name }
}

// WithFormatOptions passes codec-specific options to one load or
// serialize call.
func WithFormatOptions(fo format.Options) Option {
	return func(o *options) { o.formatOpts = fo }
}

// Flattened marks LoadMap input as flat path/value pairs instead of a
// nested map.
func Flattened() Option {
	return func(o *options) { o.flattened = true }
}

// New returns an empty Registry.
func New(opts ...Option) *Registry {
	o := options{sep: tpath.Default}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sep == "" {
		o.sep = tpath.Default
	}
	formats := o.formats
	if formats == nil {
		formats = format.Default()
	}
	return &Registry{root: tree.NewObject(), sep: o.sep, formats: formats}
}

// NewFrom returns a Registry populated from v: nil for empty, another
// Registry for a deep copy of its tree, a string or []byte for a
// serialized document (json unless WithFormat says otherwise), and any
// other value through gobind reflection. Any non-empty source marks
// the result initialized, so a later LoadString or LoadFile merges
// instead of replacing.
func NewFrom(v any, opts ...Option) (*Registry, error) {
	r := New(opts...)
	switch x := v.(type) {
	case nil:
		return r, nil
	case *Registry:
		if x != nil {
			r.root = x.root.Clone()
			r.initialized = true
		}
		return r, nil
	case string:
		if x == "" {
			return r, nil
		}
		if err := r.LoadString(x, opts...); err != nil {
			return nil, err
		}
		return r, nil
	case []byte:
		if len(x) == 0 {
			return r, nil
		}
		if err := r.LoadString(string(x), opts...); err != nil {
			return nil, err
		}
		return r, nil
	default:
		node, err := marshalValue(v)
		if err != nil {
			return nil, err
		}
		r.bind(node)
		r.initialized = true
		return r, nil
	}
}

// marshalValue converts a caller value to a node. Registries store as
// their tree; everything else goes through gobind reflection.
func marshalValue(v any) (*tree.Node, error) {
	if sub, ok := v.(*Registry); ok {
		if sub == nil {
			return tree.Null(), nil
		}
		return sub.root.Clone(), nil
	}
	return gobind.Marshal(v)
}

// view resolves per-call options against the instance defaults.
func (r *Registry) view(opts []Option) options {
	o := options{sep: r.sep}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sep == "" {
		o.sep = tpath.Default
	}
	return o
}

// Get returns the value at path, or def when the path does not resolve
// or resolves to null or the empty string. Containers come back as
// map[string]any and []any.
func (r *Registry) Get(path string, def any, opts ...Option) any {
	o := r.view(opts)
	n, ok := tree.Lookup(r.root, tpath.Parse(path, o.sep))
	if !ok || n.IsEmptyScalar() {
		return def
	}
	return tree.ToAny(n)
}

// Lookup is the comma-ok Get: it reports whether path resolves and
// returns the value without the empty-value defaulting, so a stored
// null comes back as (nil, true).
func (r *Registry) Lookup(path string, opts ...Option) (any, bool) {
	o := r.view(opts)
	n, ok := tree.Lookup(r.root, tpath.Parse(path, o.sep))
	if !ok {
		return nil, false
	}
	return tree.ToAny(n), true
}

// Exists reports whether path resolves to a node, null included.
func (r *Registry) Exists(path string, opts ...Option) bool {
	o := r.view(opts)
	_, ok := tree.Lookup(r.root, tpath.Parse(path, o.sep))
	return ok
}

// Set assigns value at path, vivifying missing intermediate objects,
// and returns the value as stored. Non-object nodes in the way of the
// walk are replaced by objects. An empty path, or a value reflection
// cannot represent (a channel, a cycle), stores nothing and returns
// nil.
func (r *Registry) Set(path string, value any, opts ...Option) any {
	o := r.view(opts)
	segs := tpath.Parse(path, o.sep)
	if len(segs) == 0 {
		return nil
	}
	node, err := marshalValue(value)
	if err != nil {
		return nil
	}
	assigned := tree.Put(r.root, segs, node)
	if assigned == nil {
		return nil
	}
	return tree.ToAny(assigned)
}

// Def returns the value at path like Get and writes the result back,
// so the path exists afterwards.
func (r *Registry) Def(path string, def any, opts ...Option) any {
	value := r.Get(path, def, opts...)
	r.Set(path, value, opts...)
	return value
}

// Append pushes value onto the array at path and returns it as stored.
// An absent path stores the value as given. An existing non-array is
// converted first: an object keeps its member values in order, a
// scalar becomes the sole element.
func (r *Registry) Append(path string, value any, opts ...Option) any {
	o := r.view(opts)
	segs := tpath.Parse(path, o.sep)
	if len(segs) == 0 {
		return nil
	}
	node, err := marshalValue(value)
	if err != nil {
		return nil
	}
	cur, ok := tree.Lookup(r.root, segs)
	if !ok {
		return tree.ToAny(tree.Put(r.root, segs, node))
	}
	if cur.Type != tree.ArrayType {
		arr := tree.NewArray()
		if cur.Type == tree.ObjectType {
			arr.Values = append(arr.Values, cur.Values...)
		} else {
			arr.Append(cur)
		}
		cur = tree.Put(r.root, segs, arr)
	}
	cur.Append(node)
	return tree.ToAny(node)
}

// Remove deletes the node at path and returns its value, or nil when
// the path does not resolve. Remove never vivifies.
func (r *Registry) Remove(path string, opts ...Option) any {
	o := r.view(opts)
	removed := tree.Delete(r.root, tpath.Parse(path, o.sep))
	if removed == nil {
		return nil
	}
	return tree.ToAny(removed)
}

// Merge layers src's tree over this one and returns the receiver, or
// nil when src is nil. Recursive merges descend where both sides hold
// objects; otherwise src wins wholesale, null and empty-string values
// included.
func (r *Registry) Merge(src *Registry, recursive bool) *Registry {
	if src == nil {
		return nil
	}
	if debug.Merge() {
		debug.Logf("merge recursive=%v src %v\n", recursive, src.root)
	}
	tree.Merge(r.root, src.root, recursive, true)
	r.initialized = true
	return r
}

// Extract returns the subtree at path as a new Registry sharing no
// nodes with the receiver. Array subtrees become objects keyed by
// element index, the way decoded array documents do. Returns nil when
// the path does not resolve or holds null or the empty string; other
// scalars yield an empty Registry.
func (r *Registry) Extract(path string, opts ...Option) *Registry {
	o := r.view(opts)
	n, ok := tree.Lookup(r.root, tpath.Parse(path, o.sep))
	if !ok || n.IsEmptyScalar() {
		return nil
	}
	out := &Registry{root: tree.NewObject(), sep: r.sep, formats: r.formats, initialized: true}
	if obj := asObject(n); obj != nil {
		out.root = obj.Clone()
	}
	return out
}

// Flatten returns one entry per scalar leaf keyed by its full path.
func (r *Registry) Flatten(opts ...Option) map[string]any {
	o := r.view(opts)
	return tree.Flatten(r.root, o.sep)
}

// Clone returns a deep copy. The copy keeps the separator, the codec
// registry, and the initialized state.
func (r *Registry) Clone() *Registry {
	return &Registry{
		root:        r.root.Clone(),
		sep:         r.sep,
		formats:     r.formats,
		initialized: r.initialized,
	}
}

// Count returns the number of top-level members.
func (r *Registry) Count() int {
	return r.root.Len()
}

// Keys returns the top-level member names in insertion order.
func (r *Registry) Keys() []string {
	return slices.Clone(r.root.Keys)
}

// All iterates the top-level members in insertion order.
func (r *Registry) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for i, key := range r.root.Keys {
			if !yield(key, tree.ToAny(r.root.Values[i])) {
				return
			}
		}
	}
}

// Root exposes the live tree for direct manipulation. The
// single-writer contract extends to it.
func (r *Registry) Root() *tree.Node {
	return r.root
}

// Separator returns the instance path separator.
func (r *Registry) Separator() string {
	return r.sep
}

// SetSeparator changes the instance path separator. Empty restores the
// default.
func (r *Registry) SetSeparator(sep string) {
	if sep == "" {
		sep = tpath.Default
	}
	r.sep = sep
}

// Equal reports whether both registries hold the same content. Object
// member order, the separator, and codec configuration do not
// participate.
func (r *Registry) Equal(other *Registry) bool {
	if other == nil {
		return false
	}
	return tree.Equal(r.root, other.root)
}
