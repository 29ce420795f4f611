package format

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrDuplicate indicates an attempt to register a name or extension
// that is already taken.
var ErrDuplicate = errors.New("duplicate format registration")

// Registry maps format names to codecs. Codecs construct lazily, once
// per name, and the instance is shared by every subsequent lookup.
// Names and extensions are case-insensitive. A Registry is safe for
// concurrent use.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	byExt   map[string]*entry
}

type entry struct {
	name  string
	ctor  func() Codec
	once  sync.Once
	codec Codec
}

func (e *entry) get() Codec {
	e.once.Do(func() {
		e.codec = e.ctor()
	})
	return e.codec
}

func NewRegistry() *Registry {
	return &Registry{
		entries: map[string]*entry{},
		byExt:   map[string]*entry{},
	}
}

// Register adds a codec constructor under name, reachable also through
// the given file extensions (leading dot optional). The constructor
// runs on first lookup.
func (r *Registry) Register(name string, ctor func() Codec, exts ...string) error {
	if name == "" || ctor == nil {
		return errors.New("invalid format name or constructor")
	}
	name = strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	e := &entry{name: name, ctor: ctor}
	for _, ext := range exts {
		ext = normalizeExt(ext)
		if _, exists := r.byExt[ext]; exists {
			return fmt.Errorf("%w: extension %q", ErrDuplicate, ext)
		}
		r.byExt[ext] = e
	}
	r.entries[name] = e
	return nil
}

// MustRegister panics on registration error. Useful when wiring a
// registry up front.
func (r *Registry) MustRegister(name string, ctor func() Codec, exts ...string) {
	if err := r.Register(name, ctor, exts...); err != nil {
		panic(err)
	}
}

// Lookup returns the codec registered under name.
func (r *Registry) Lookup(name string) (Codec, error) {
	r.mu.Lock()
	e, ok := r.entries[strings.ToLower(name)]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return e.get(), nil
}

// ByExtension returns the codec serving a file extension, with or
// without the leading dot.
func (r *Registry) ByExtension(ext string) (Codec, error) {
	r.mu.Lock()
	e, ok := r.byExt[normalizeExt(ext)]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
	}
	return e.get(), nil
}

// Names returns the registered format names in lexicographic order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.entries))
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the shared registry holding every built-in codec:
// json, yaml, xml, toml, ini, and hcl.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
		defaultReg.MustRegister("json", NewJSON, "json")
		defaultReg.MustRegister("yaml", NewYAML, "yaml", "yml")
		defaultReg.MustRegister("xml", NewXML, "xml")
		defaultReg.MustRegister("toml", NewTOML, "toml")
		defaultReg.MustRegister("ini", NewINI, "ini")
		defaultReg.MustRegister("hcl", NewHCL, "hcl")
	})
	return defaultReg
}
