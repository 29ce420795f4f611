package registry

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpandString(t *testing.T) {
	env := map[string]any{
		"name": "app",
		"n":    int64(21),
		"on":   true,
	}
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no expressions", "plain text", "plain text"},
		{"too short", "ab", "ab"},
		{"variable", "${name}", "app"},
		{"embedded", "v=${name}!", "v=app!"},
		{"two expressions", "${name}-${n}", "app-21"},
		{"whitespace trimmed", "${  name  }", "app"},
		{"arithmetic", "${1 + 2}", "3"},
		{"env arithmetic", "${n * 2}", "42"},
		{"division", "${10 / 4}", "2.5"},
		{"string concat", `${name + "!"}`, "app!"},
		{"bool", "${on && true}", "true"},
		{"array renders as json", "${[1, 2]}", "[1,2]"},
		{"nil renders as null", "${nil}", "null"},
		{"escaped closer", `${"a\}b"}`, "a}b"},
		{"escaped backslash", `${"x\\\\y"}`, `x\y`},
		{"dollar without brace", "cost $5", "cost $5"},
		{"closer outside expression", "a}b", "a}b"},
		{"backslash outside expression", `a\b`, `a\b`},
		{"unterminated is literal", "${oops", "${oops"},
		{"unterminated tail", "tail ${x", "tail ${x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExpandString(tc.in, env)
			if err != nil {
				t.Fatalf("ExpandString(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ExpandString(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExpandStringErrors(t *testing.T) {
	if _, err := ExpandString("${1 +}", nil); err == nil || !strings.Contains(err.Error(), "error compiling") {
		t.Errorf("compile error = %v", err)
	}
	if _, err := ExpandString(`${"a" + 1}`, nil); err == nil {
		t.Error("no error for a mistyped expression")
	}
}

func TestExpand(t *testing.T) {
	r := mustFrom(t, `{
		"server": {"host": "db1", "port": 5432},
		"url": "http://${server.host}:${server.port}/",
		"tags": ["${server.host}-a", "plain"],
		"greet": "hi ${user}"
	}`)
	if err := r.Expand(map[string]any{"user": "ana"}); err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got := r.Get("url", ""); got != "http://db1:5432/" {
		t.Errorf("url = %q", got)
	}
	if got := r.Get("greet", ""); got != "hi ana" {
		t.Errorf("greet = %q", got)
	}
	want := []any{"db1-a", "plain"}
	if diff := cmp.Diff(want, r.Get("tags", nil)); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
}

func TestExpandSnapshot(t *testing.T) {
	r := mustFrom(t, `{"base": "/opt", "path": "${base}/bin", "indirect": "${path}"}`)
	if err := r.Expand(nil); err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got := r.Get("path", ""); got != "/opt/bin" {
		t.Errorf("path = %q", got)
	}
	// the environment is a pre-walk snapshot: indirect sees the
	// unexpanded template, not the expanded result
	if got := r.Get("indirect", ""); got != "${base}/bin" {
		t.Errorf("indirect = %q", got)
	}
}

func TestExpandExtraOverlays(t *testing.T) {
	r := mustFrom(t, `{"base": "/opt", "path": "${base}/bin"}`)
	if err := r.Expand(map[string]any{"base": "/usr"}); err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got := r.Get("path", ""); got != "/usr/bin" {
		t.Errorf("path = %q, want /usr/bin", got)
	}
}

func TestExpandError(t *testing.T) {
	r := mustFrom(t, `{"bad": "${1 +}"}`)
	if err := r.Expand(nil); err == nil {
		t.Error("no error for a failing leaf")
	}
}
