package registry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestApplyPatch(t *testing.T) {
	r := mustFrom(t, `{"a": 1, "xs": [1, 2], "old": true}`)
	patch := []byte(`[
		{"op": "replace", "path": "/a", "value": 9},
		{"op": "add", "path": "/xs/-", "value": 3},
		{"op": "remove", "path": "/old"},
		{"op": "add", "path": "/db", "value": {"host": "h"}}
	]`)
	if err := r.ApplyPatch(patch); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	if got := r.Get("a", 0); got != int64(9) {
		t.Errorf("a = %v, want 9", got)
	}
	want := []any{int64(1), int64(2), int64(3)}
	if diff := cmp.Diff(want, r.Get("xs", nil)); diff != "" {
		t.Errorf("xs (-want +got):\n%s", diff)
	}
	if r.Exists("old") {
		t.Error("old survived its remove op")
	}
	if got := r.Get("db.host", ""); got != "h" {
		t.Errorf("db.host = %v, want h", got)
	}
}

func TestApplyPatchTestOp(t *testing.T) {
	r := mustFrom(t, `{"a": 1}`)
	if err := r.ApplyPatch([]byte(`[{"op": "test", "path": "/a", "value": 1}]`)); err != nil {
		t.Errorf("passing test op: %v", err)
	}
	err := r.ApplyPatch([]byte(`[
		{"op": "test", "path": "/a", "value": 2},
		{"op": "replace", "path": "/a", "value": 3}
	]`))
	if err == nil {
		t.Fatal("no error for a failing test op")
	}
	if got := r.Get("a", 0); got != int64(1) {
		t.Errorf("failed patch changed the tree: a = %v", got)
	}
}

func TestApplyPatchErrors(t *testing.T) {
	r := mustFrom(t, `{"a": 1}`)
	if err := r.ApplyPatch([]byte(`{`)); err == nil {
		t.Error("no error for a malformed patch document")
	}
	if err := r.ApplyPatch([]byte(`[{"op": "remove", "path": "/missing"}]`)); err == nil {
		t.Error("no error removing a nonexistent member")
	}
	if got := r.Get("a", 0); got != int64(1) {
		t.Errorf("failed patch changed the tree: a = %v", got)
	}
}

func TestMergePatch(t *testing.T) {
	r := mustFrom(t, `{"name": "app", "db": {"host": "h", "port": 1}}`)
	patch := []byte(`{"db": {"port": 2}, "name": null, "new": "x"}`)
	if err := r.MergePatch(patch); err != nil {
		t.Fatalf("MergePatch: %v", err)
	}
	if r.Exists("name") {
		t.Error("null member not deleted")
	}
	if got := r.Get("db.host", ""); got != "h" {
		t.Errorf("db.host = %v, want h (sibling kept)", got)
	}
	if got := r.Get("db.port", 0); got != int64(2) {
		t.Errorf("db.port = %v, want 2", got)
	}
	if got := r.Get("new", ""); got != "x" {
		t.Errorf("new = %v, want x", got)
	}
}

func TestMergePatchScalarReplacesDocument(t *testing.T) {
	r := mustFrom(t, `{"a": 1}`)
	if err := r.MergePatch([]byte(`5`)); err != nil {
		t.Fatalf("MergePatch: %v", err)
	}
	if r.Count() != 0 {
		t.Errorf("Count = %d, want 0 (scalar document normalizes empty)", r.Count())
	}
}

func TestDiffMergePatch(t *testing.T) {
	a := mustFrom(t, `{"x": 1, "drop": true, "same": "s"}`)
	b := mustFrom(t, `{"x": 2, "add": "n", "same": "s"}`)

	patch, err := a.DiffMergePatch(b)
	if err != nil {
		t.Fatalf("DiffMergePatch: %v", err)
	}
	if err := a.MergePatch(patch); err != nil {
		t.Fatalf("MergePatch: %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("patched registry differs: %s vs %s", a.String(), b.String())
	}

	same := mustFrom(t, `{"k": "v"}`)
	patch, err = same.DiffMergePatch(same.Clone())
	if err != nil {
		t.Fatalf("DiffMergePatch: %v", err)
	}
	if string(patch) != "{}" {
		t.Errorf("patch between equal registries = %s, want {}", patch)
	}
}
