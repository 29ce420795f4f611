package registry

import (
	jsonpatch "github.com/evanphx/json-patch"

	"github.com/andrepereiradasilva/registry/debug"
	"github.com/andrepereiradasilva/registry/tree"
)

// ApplyPatch applies an RFC 6902 json patch document to the tree. The
// patched document replaces the tree wholesale; a failing operation
// leaves it untouched.
func (r *Registry) ApplyPatch(patch []byte) error {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return err
	}
	doc, err := r.root.MarshalJSON()
	if err != nil {
		return err
	}
	if debug.Patch() {
		debug.Logf("apply patch %s to %s\n", patch, doc)
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return err
	}
	return r.replaceRoot(out)
}

// MergePatch applies an RFC 7386 merge patch document to the tree:
// nulls delete members, objects merge member-wise, everything else
// overwrites.
func (r *Registry) MergePatch(patch []byte) error {
	doc, err := r.root.MarshalJSON()
	if err != nil {
		return err
	}
	if debug.Patch() {
		debug.Logf("merge patch %s into %s\n", patch, doc)
	}
	out, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return err
	}
	return r.replaceRoot(out)
}

// DiffMergePatch returns the RFC 7386 merge patch that turns this
// registry's document into other's, suitable for MergePatch.
func (r *Registry) DiffMergePatch(other *Registry) ([]byte, error) {
	a, err := r.root.MarshalJSON()
	if err != nil {
		return nil, err
	}
	b, err := other.root.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(a, b)
}

// replaceRoot installs a patched document, normalizing non-object
// roots the way decoded documents are normalized.
func (r *Registry) replaceRoot(doc []byte) error {
	node, err := tree.DecodeJSON(doc)
	if err != nil {
		return err
	}
	if obj := asObject(node); obj != nil {
		r.root = obj
	} else {
		r.root = tree.NewObject()
	}
	r.initialized = true
	return nil
}
