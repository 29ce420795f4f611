package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeJSONPreservesOrder(t *testing.T) {
	in := `{"zebra":1,"apple":2,"mango":{"z":true,"a":false}}`
	n, err := DecodeJSON([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"zebra", "apple", "mango"}, n.Keys); diff != "" {
		t.Errorf("top-level key order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"z", "a"}, n.Get("mango").Keys); diff != "" {
		t.Errorf("nested key order (-want +got):\n%s", diff)
	}

	out, err := n.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != in {
		t.Errorf("round trip = %s, want %s", out, in)
	}
}

func TestDecodeJSONValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, n *Node)
	}{
		{
			name:  "null",
			input: `null`,
			check: func(t *testing.T, n *Node) {
				if n.Type != NullType {
					t.Errorf("type = %s", n.Type)
				}
			},
		},
		{
			name:  "bool",
			input: `true`,
			check: func(t *testing.T, n *Node) {
				if n.Type != BoolType || !n.Bool {
					t.Errorf("got %s %v", n.Type, n.Bool)
				}
			},
		},
		{
			name:  "integer",
			input: `42`,
			check: func(t *testing.T, n *Node) {
				if n.Type != NumberType || n.Int64 == nil || *n.Int64 != 42 {
					t.Errorf("got %s %v", n.Type, n.Int64)
				}
			},
		},
		{
			name:  "float",
			input: `1.25`,
			check: func(t *testing.T, n *Node) {
				if n.Type != NumberType || n.Float64 == nil || *n.Float64 != 1.25 {
					t.Errorf("got %s %v", n.Type, n.Float64)
				}
			},
		},
		{
			name:  "big integer keeps raw literal",
			input: `123456789012345678901234567890`,
			check: func(t *testing.T, n *Node) {
				if n.Type != NumberType {
					t.Fatalf("type = %s", n.Type)
				}
				// too big for int64; float64 would lose digits on
				// re-encode, the raw literal must survive
				if n.Int64 != nil {
					t.Errorf("Int64 = %v, want nil", *n.Int64)
				}
			},
		},
		{
			name:  "string with escapes",
			input: `"a\"b\nc"`,
			check: func(t *testing.T, n *Node) {
				if n.Str != "a\"b\nc" {
					t.Errorf("Str = %q", n.Str)
				}
			},
		},
		{
			name:  "array",
			input: `[1,"two",null]`,
			check: func(t *testing.T, n *Node) {
				if n.Type != ArrayType || len(n.Values) != 3 {
					t.Fatalf("got %s with %d values", n.Type, len(n.Values))
				}
				if n.Values[2].Type != NullType {
					t.Errorf("third element = %s", n.Values[2].Type)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := DecodeJSON([]byte(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, n)
		})
	}
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ``},
		{name: "truncated object", input: `{"a":`},
		{name: "trailing data", input: `{} {}`},
		{name: "bare garbage", input: `}{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeJSON([]byte(tt.input)); err == nil {
				t.Errorf("DecodeJSON(%q) succeeded, want error", tt.input)
			}
		})
	}
}

func TestMarshalJSONRoundTrip(t *testing.T) {
	inputs := []string{
		`{}`,
		`[]`,
		`{"a":[1,2,{"b":null}],"c":"x","d":1.5,"e":false}`,
		`{"big":123456789012345678901234567890}`,
		`"just a string"`,
	}
	for _, in := range inputs {
		n, err := DecodeJSON([]byte(in))
		if err != nil {
			t.Fatalf("decode %q: %v", in, err)
		}
		out, err := n.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal %q: %v", in, err)
		}
		if string(out) != in {
			t.Errorf("round trip %q = %q", in, out)
		}
	}
}

func TestUnmarshalJSONIntoNode(t *testing.T) {
	var n Node
	if err := n.UnmarshalJSON([]byte(`{"k":7}`)); err != nil {
		t.Fatal(err)
	}
	if v := n.Get("k"); v == nil || *v.Int64 != 7 {
		t.Errorf("k = %v", v)
	}
}
