package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name  string
		input string
		sep   string
		want  map[string]any
	}{
		{
			name:  "nested objects",
			input: `{"a":{"b":{"c":3}},"top":"v"}`,
			sep:   ".",
			want: map[string]any{
				"a.b.c": int64(3),
				"top":   "v",
			},
		},
		{
			name:  "array indices become keys",
			input: `{"xs":[10,{"k":"v"}]}`,
			sep:   ".",
			want: map[string]any{
				"xs.0":   int64(10),
				"xs.1.k": "v",
			},
		},
		{
			name:  "custom separator",
			input: `{"a":{"b":1}}`,
			sep:   "/",
			want: map[string]any{
				"a/b": int64(1),
			},
		},
		{
			name:  "empty separator means default",
			input: `{"a":{"b":1}}`,
			sep:   "",
			want: map[string]any{
				"a.b": int64(1),
			},
		},
		{
			name:  "null leaves emit nil",
			input: `{"a":null}`,
			sep:   ".",
			want: map[string]any{
				"a": nil,
			},
		},
		{
			name:  "empty containers emit nothing",
			input: `{"a":{},"b":[]}`,
			sep:   ".",
			want:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustDecode(t, tt.input)
			got := Flatten(root, tt.sep)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Flatten (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnflatten(t *testing.T) {
	flat := map[string]any{
		"a.b.c": 3,
		"a.b.d": "x",
		"top":   true,
	}
	root, err := Unflatten(flat, ".")
	if err != nil {
		t.Fatal(err)
	}

	want := mustDecode(t, `{"a":{"b":{"c":3,"d":"x"}},"top":true}`)
	if !Equal(root, want) {
		got, _ := root.MarshalJSON()
		t.Errorf("Unflatten = %s", got)
	}
}

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	root := mustDecode(t, `{"a":{"b":1,"c":"x"},"d":true}`)
	back, err := Unflatten(Flatten(root, "."), ".")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ToAny(root), ToAny(back)); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}
