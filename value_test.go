package strs

import (
	"encoding/json"
	"testing"
)

func TestFromAnyConvertsDecodedTrees(t *testing.T) {
	value, err := FromAny(map[string]any{
		"s":   "text",
		"n":   3,
		"f":   float32(1.5),
		"b":   true,
		"nil": nil,
		"seq": []string{"a", "b"},
		"m":   map[any]any{"k": "v"},
	})
	if err != nil {
		t.Fatalf("from any: %v", err)
	}
	if value.Kind() != KindMapping || value.Len() != 7 {
		t.Fatalf("unexpected root %s with %d entries", value.Kind(), value.Len())
	}
	if n, ok := value.Get("n").Num(); !ok || n != 3 {
		t.Fatalf("expected number 3, got %v", value.Get("n").Native())
	}
	if f, ok := value.Get("f").Num(); !ok || f != 1.5 {
		t.Fatalf("expected number 1.5, got %v", value.Get("f").Native())
	}
	if value.Get("nil").Kind() != KindNull {
		t.Fatalf("expected null, got %s", value.Get("nil").Kind())
	}
	if value.Get("seq").Index(1).Text() != "b" {
		t.Fatalf("expected sequence element b")
	}
	if got, _ := value.Get("m").Get("k").Str(); got != "v" {
		t.Fatalf("expected nested map entry, got %q", got)
	}
}

func TestFromAnyRejectsNonStringKeys(t *testing.T) {
	if _, err := FromAny(map[any]any{1: "one"}); err == nil {
		t.Fatalf("expected error for integer map key")
	}
	if _, err := FromAny(map[int]string{1: "one"}); err == nil {
		t.Fatalf("expected error for typed integer map key")
	}
	if _, err := FromAny(make(chan int)); err == nil {
		t.Fatalf("expected error for channel")
	}
}

func TestValueText(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{String("hi"), "hi"},
		{Number(3), "3"},
		{Number(2.5), "2.5"},
		{Bool(false), "false"},
		{Null(), "null"},
		{Sequence(String("a"), Number(1)), `["a",1]`},
		{Mapping(map[string]Value{"k": String("v")}), `{"k":"v"}`},
		{Value{}, ""},
	}
	for _, tc := range cases {
		if got := tc.value.Text(); got != tc.want {
			t.Fatalf("Text() = %q, want %q", got, tc.want)
		}
	}
}

func TestValueAccessorsOnWrongKind(t *testing.T) {
	s := String("x")
	if s.Get("k").IsValid() || s.Index(0).IsValid() || s.Len() != 0 || s.Keys() != nil || s.Items() != nil {
		t.Fatalf("container accessors on a scalar should be empty")
	}
	if _, ok := s.Num(); ok {
		t.Fatalf("Num on a string should fail")
	}
	seq := Sequence(String("a"))
	if seq.Index(-1).IsValid() || seq.Index(1).IsValid() {
		t.Fatalf("out of range index should be invalid")
	}
}

func TestValueEqual(t *testing.T) {
	a := Mapping(map[string]Value{"list": Sequence(String("x"), Number(1))})
	b := Mapping(map[string]Value{"list": Sequence(String("x"), Number(1))})
	c := Mapping(map[string]Value{"list": Sequence(String("x"), Number(2))})
	if !a.Equal(b) {
		t.Fatalf("expected equal trees")
	}
	if a.Equal(c) {
		t.Fatalf("expected different trees")
	}
	if String("1").Equal(Number(1)) {
		t.Fatalf("kinds must match")
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	payload := []byte(`{"a":["x",1,true,null],"b":{"c":"d"}}`)
	var value Value
	if err := json.Unmarshal(payload, &value); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored Value
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("unmarshal restored: %v", err)
	}
	if !value.Equal(restored) {
		t.Fatalf("round trip mismatch: %s", raw)
	}
}

func TestMappingCopiesInput(t *testing.T) {
	entries := map[string]Value{"a": String("1")}
	m := Mapping(entries)
	entries["a"] = String("2")
	if got, _ := m.Get("a").Str(); got != "1" {
		t.Fatalf("mapping shares caller map, got %q", got)
	}
}
