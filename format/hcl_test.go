package format

import (
	"testing"
)

func TestHCLDecode(t *testing.T) {
	src := `
name = "app"
port = 8080
debug = true
tags = ["a", "b"]

server "alpha" {
  host = "a.example.com"
}

server "beta" {
  host = "b.example.com"
}

listener {
  port = 1
}

listener {
  port = 2
}
`
	root, err := NewHCL().Decode([]byte(src), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"app","port":8080,"debug":true,"tags":["a","b"],` +
		`"server":{"alpha":{"host":"a.example.com"},"beta":{"host":"b.example.com"}},` +
		`"listener":[{"port":1},{"port":2}]}`
	if got := asJSON(t, root); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestHCLDecodeExpressions(t *testing.T) {
	root, err := NewHCL().Decode([]byte("x = 1 + 2\ns = \"v${5}\"\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := asJSON(t, root), `{"x":3,"s":"v5"}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestHCLDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "syntax", src: "a = (\n"},
		{name: "variable reference", src: "a = var.b\n"},
		{name: "function call", src: "a = upper(\"x\")\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewHCL().Decode([]byte(tt.src), nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHCLRoundTrip(t *testing.T) {
	orig := decodeMust(t, `{"name":"app","n":null,"r":1.5,"xs":[1,2],"e":[],`+
		`"one":[{"p":1}],"eo":{},"server":{"alpha":{"host":"h"}},"ls":[{"p":1},{"p":2}]}`)
	d, err := NewHCL().Encode(orig, nil)
	if err != nil {
		t.Fatal(err)
	}
	back, err := NewHCL().Decode(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := asJSON(t, back), asJSON(t, orig); got != want {
		t.Errorf("round trip changed the document:\n%s\n%s", want, got)
	}
}

func TestHCLEncodeScalarRoot(t *testing.T) {
	if _, err := NewHCL().Encode(decodeMust(t, `{"a":1}`).Get("a"), nil); err == nil {
		t.Error("expected error for scalar root")
	}
}
