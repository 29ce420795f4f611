package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestObjectKeyOps(t *testing.T) {
	obj := NewObject()
	obj.SetKey("c", FromInt(1))
	obj.SetKey("a", FromInt(2))
	obj.SetKey("b", FromInt(3))

	wantKeys := []string{"c", "a", "b"}
	if diff := cmp.Diff(wantKeys, obj.Keys); diff != "" {
		t.Fatalf("insertion order (-want +got):\n%s", diff)
	}

	// replacing keeps position
	obj.SetKey("a", FromString("x"))
	if diff := cmp.Diff(wantKeys, obj.Keys); diff != "" {
		t.Fatalf("order after replace (-want +got):\n%s", diff)
	}
	if got := obj.Get("a"); got == nil || got.Str != "x" {
		t.Fatalf("Get(a) = %v, want string x", got)
	}

	if got := obj.Index("b"); got != 2 {
		t.Errorf("Index(b) = %d, want 2", got)
	}
	if got := obj.Index("missing"); got != -1 {
		t.Errorf("Index(missing) = %d, want -1", got)
	}

	removed := obj.DeleteKey("c")
	if removed == nil || removed.Int64 == nil || *removed.Int64 != 1 {
		t.Fatalf("DeleteKey(c) = %v, want number 1", removed)
	}
	if diff := cmp.Diff([]string{"a", "b"}, obj.Keys); diff != "" {
		t.Fatalf("order after delete (-want +got):\n%s", diff)
	}
	if obj.DeleteKey("c") != nil {
		t.Error("DeleteKey on absent key should return nil")
	}
	if obj.Len() != 2 {
		t.Errorf("Len() = %d, want 2", obj.Len())
	}
}

func TestGetOnNonObject(t *testing.T) {
	if FromString("s").Get("a") != nil {
		t.Error("Get on a scalar should return nil")
	}
	var n *Node
	if n.Get("a") != nil {
		t.Error("Get on nil node should return nil")
	}
}

func TestFromMapSortsKeys(t *testing.T) {
	n := FromMap(map[string]*Node{
		"z": FromInt(1),
		"a": FromInt(2),
		"m": FromInt(3),
	})
	if diff := cmp.Diff([]string{"a", "m", "z"}, n.Keys); diff != "" {
		t.Errorf("FromMap keys (-want +got):\n%s", diff)
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := NewObject()
	inner := NewObject()
	inner.SetKey("port", FromInt(8080))
	orig.SetKey("server", inner)
	orig.SetKey("name", FromString("app"))

	cl := orig.Clone()
	if !Equal(orig, cl) {
		t.Fatal("clone should compare equal to the original")
	}

	// mutating the clone must not touch the original
	cl.Get("server").SetKey("port", FromInt(9090))
	cl.SetKey("name", FromString("other"))

	if got := *orig.Get("server").Get("port").Int64; got != 8080 {
		t.Errorf("original port mutated to %d", got)
	}
	if got := orig.Get("name").Str; got != "app" {
		t.Errorf("original name mutated to %q", got)
	}
}

func TestIsEmptyScalar(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want bool
	}{
		{name: "nil node", node: nil, want: true},
		{name: "null", node: Null(), want: true},
		{name: "empty string", node: FromString(""), want: true},
		{name: "non-empty string", node: FromString("x"), want: false},
		{name: "zero number", node: FromInt(0), want: false},
		{name: "false bool", node: FromBool(false), want: false},
		{name: "empty object", node: NewObject(), want: false},
		{name: "empty array", node: NewArray(), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsEmptyScalar(); got != tt.want {
				t.Errorf("IsEmptyScalar() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNumberString(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{name: "int", node: FromInt(42), want: "42"},
		{name: "negative int", node: FromInt(-7), want: "-7"},
		{name: "float", node: FromFloat(1.5), want: "1.5"},
		{name: "raw literal", node: &Node{Type: NumberType, Num: "123456789012345678901234567890"}, want: "123456789012345678901234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.NumberString(); got != tt.want {
				t.Errorf("NumberString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVisit(t *testing.T) {
	root := NewObject()
	arr := FromSlice([]*Node{FromInt(1), FromInt(2)})
	root.SetKey("xs", arr)
	root.SetKey("s", FromString("v"))

	var pre, post int
	err := root.Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost {
			post++
		} else {
			pre++
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	// root, xs, two elements, s
	if pre != 5 || post != 5 {
		t.Errorf("visit counts pre=%d post=%d, want 5/5", pre, post)
	}
}
