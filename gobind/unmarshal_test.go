package gobind

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/andrepereiradasilva/registry/tree"
)

func TestUnmarshalStruct(t *testing.T) {
	type server struct {
		Host  string `registry:"db_host"`
		Port  int    `json:"db_port"`
		Debug bool
		Extra string
	}

	node := mustNode(t, `{"db_host":"db1","db_port":5432,"Debug":true,"unknown":1}`)
	got := server{Extra: "kept"}
	if err := Unmarshal(node, &got); err != nil {
		t.Fatal(err)
	}
	want := server{Host: "db1", Port: 5432, Debug: true, Extra: "kept"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unmarshal (-want +got):\n%s", diff)
	}
}

func TestUnmarshalNullZeroes(t *testing.T) {
	type target struct {
		S string
		P *int
		N int
	}
	seven := 7
	got := target{S: "old", P: &seven, N: 3}
	if err := Unmarshal(mustNode(t, `{"S":null,"P":null}`), &got); err != nil {
		t.Fatal(err)
	}
	if got.S != "" || got.P != nil || got.N != 3 {
		t.Errorf("got %+v, want zeroed S and P with N kept", got)
	}
}

func TestUnmarshalConversions(t *testing.T) {
	t.Run("string to int", func(t *testing.T) {
		var v struct{ N int }
		if err := Unmarshal(mustNode(t, `{"N":"42"}`), &v); err != nil {
			t.Fatal(err)
		}
		if v.N != 42 {
			t.Errorf("N = %d, want 42", v.N)
		}
	})

	t.Run("int to float", func(t *testing.T) {
		var v struct{ F float64 }
		if err := Unmarshal(mustNode(t, `{"F":3}`), &v); err != nil {
			t.Fatal(err)
		}
		if v.F != 3.0 {
			t.Errorf("F = %v, want 3", v.F)
		}
	})

	t.Run("int8 overflow", func(t *testing.T) {
		var v struct{ N int8 }
		err := Unmarshal(mustNode(t, `{"N":400}`), &v)
		if err == nil || !strings.Contains(err.Error(), "overflows") {
			t.Errorf("err = %v, want overflow error", err)
		}
	})

	t.Run("negative to uint", func(t *testing.T) {
		var v struct{ N uint }
		err := Unmarshal(mustNode(t, `{"N":-1}`), &v)
		if err == nil || !strings.Contains(err.Error(), "negative") {
			t.Errorf("err = %v, want negative value error", err)
		}
	})

	t.Run("float to int", func(t *testing.T) {
		var v struct{ N int }
		if err := Unmarshal(mustNode(t, `{"N":1.5}`), &v); err == nil {
			t.Error("expected error for fractional value")
		}
	})

	t.Run("bool from string rejected", func(t *testing.T) {
		var v struct{ B bool }
		if err := Unmarshal(mustNode(t, `{"B":"true"}`), &v); err == nil {
			t.Error("expected error for string into bool")
		}
	})
}

func TestUnmarshalSlices(t *testing.T) {
	var v struct {
		Xs   []int
		Grid [2]string
		Raw  []byte
	}
	node := mustNode(t, `{"Xs":[1,2,3],"Grid":["a","b"],"Raw":"bytes"}`)
	if err := Unmarshal(node, &v); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, v.Xs); diff != "" {
		t.Errorf("Xs (-want +got):\n%s", diff)
	}
	if v.Grid != [2]string{"a", "b"} {
		t.Errorf("Grid = %v", v.Grid)
	}
	if string(v.Raw) != "bytes" {
		t.Errorf("Raw = %q", v.Raw)
	}

	var short struct{ Grid [3]string }
	if err := Unmarshal(mustNode(t, `{"Grid":["a"]}`), &short); err == nil {
		t.Error("expected error for array length mismatch")
	}
}

func TestUnmarshalMaps(t *testing.T) {
	var v struct {
		ByName map[string]int
		ByID   map[int]string
	}
	node := mustNode(t, `{"ByName":{"a":1,"b":2},"ByID":{"2":"two","10":"ten"}}`)
	if err := Unmarshal(node, &v); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]int{"a": 1, "b": 2}, v.ByName); diff != "" {
		t.Errorf("ByName (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[int]string{2: "two", 10: "ten"}, v.ByID); diff != "" {
		t.Errorf("ByID (-want +got):\n%s", diff)
	}

	var bad struct{ ByID map[int]string }
	if err := Unmarshal(mustNode(t, `{"ByID":{"x":"nope"}}`), &bad); err == nil {
		t.Error("expected error for non-numeric key")
	}
}

func TestUnmarshalInterface(t *testing.T) {
	var v struct{ Val any }
	if err := Unmarshal(mustNode(t, `{"Val":{"a":[1,true,"s"]}}`), &v); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"a": []any{int64(1), true, "s"}}
	if diff := cmp.Diff(want, v.Val); diff != "" {
		t.Errorf("Val (-want +got):\n%s", diff)
	}
}

func TestUnmarshalTime(t *testing.T) {
	var v struct{ At time.Time }
	if err := Unmarshal(mustNode(t, `{"At":"2024-03-01T12:00:00Z"}`), &v); err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if !v.At.Equal(want) {
		t.Errorf("At = %v, want %v", v.At, want)
	}
}

func TestUnmarshalDestinationErrors(t *testing.T) {
	node := mustNode(t, `{}`)
	if err := Unmarshal(node, nil); err == nil {
		t.Error("expected error for nil destination")
	}
	var s struct{}
	if err := Unmarshal(node, s); err == nil {
		t.Error("expected error for non-pointer destination")
	}
	var p *struct{}
	if err := Unmarshal(node, p); err == nil {
		t.Error("expected error for nil pointer destination")
	}
}

func TestUnmarshalErrorNamesPath(t *testing.T) {
	var v struct {
		Server struct{ Port int }
	}
	err := Unmarshal(mustNode(t, `{"Server":{"Port":"x"}}`), &v)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Server.Port") {
		t.Errorf("error %q does not carry the field path", err)
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	type pool struct {
		Size int           `registry:"size"`
		TTL  time.Duration `registry:"ttl"`
	}
	type config struct {
		Name    string            `registry:"name"`
		Started time.Time         `registry:"started"`
		Pool    *pool             `registry:"pool"`
		Hosts   []string          `registry:"hosts"`
		Limits  map[string]int    `registry:"limits"`
		Labels  map[string]string `registry:"labels,omitempty"`
	}

	orig := config{
		Name:    "app",
		Started: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Pool:    &pool{Size: 8, TTL: 5 * time.Second},
		Hosts:   []string{"a", "b"},
		Limits:  map[string]int{"rps": 100},
	}

	node, err := Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	var got config
	if err := Unmarshal(node, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}
