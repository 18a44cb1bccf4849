package query

import (
	"reflect"
	"testing"
)

func TestFunctionRegistryRegisterAndCall(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("Double", func(args ...any) (any, error) {
		return args[0].(int) * 2, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register("double", func(...any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := registry.Register("", func(...any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := registry.Register("nil", nil); err == nil {
		t.Fatalf("expected nil function error")
	}

	got, err := registry.Call("DOUBLE", 4)
	if err != nil || got != 8 {
		t.Fatalf("call: got %v err %v", got, err)
	}
	if _, err := registry.Call("missing"); err == nil {
		t.Fatalf("expected missing function error")
	}

	clone := registry.Clone()
	_ = clone.Register("extra", func(...any) (any, error) { return nil, nil })
	if !reflect.DeepEqual(registry.Names(), []string{"double"}) {
		t.Fatalf("clone leaked into original: %v", registry.Names())
	}
}

func TestStringFunctions(t *testing.T) {
	registry := StringFunctions()

	got, err := registry.Call("placeholders", "Bye {{0}}, see {{who}}")
	if err != nil {
		t.Fatalf("placeholders: %v", err)
	}
	if !reflect.DeepEqual(got, []any{"0", "who"}) {
		t.Fatalf("placeholders = %v", got)
	}

	if got, _ := registry.Call("isError", `ERROR-MISSING-STRING: "x"`); got != true {
		t.Fatalf("expected iserror true, got %v", got)
	}
	if got, _ := registry.Call("capitalize", "hola"); got != "Hola" {
		t.Fatalf("capitalize = %v", got)
	}
	if _, err := registry.Call("capitalize", 3); err == nil {
		t.Fatalf("expected type error")
	}
	if _, err := registry.Call("capitalize"); err == nil {
		t.Fatalf("expected arity error")
	}
}
