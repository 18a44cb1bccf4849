package query

import "testing"

func TestLRUCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewLRUCache(2)
	cache.Set("a", 1)
	cache.Set("b", 2)
	if _, ok := cache.Get("a"); !ok {
		t.Fatalf("expected a")
	}
	cache.Set("c", 3)

	if _, ok := cache.Get("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if v, ok := cache.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a to survive, got %v", v)
	}
	if cache.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", cache.Len())
	}
}

func TestLRUCacheReplacesValue(t *testing.T) {
	cache := NewLRUCache(0)
	cache.Set("a", 1)
	cache.Set("a", 2)
	if v, _ := cache.Get("a"); v != 2 || cache.Len() != 1 {
		t.Fatalf("expected replaced value, got %v (len %d)", v, cache.Len())
	}
}

type countingCache struct {
	*LRUCache
	sets int
}

func (c *countingCache) Set(key string, value any) {
	c.sets++
	c.LRUCache.Set(key, value)
}

func TestEvaluatorsReuseCachedPrograms(t *testing.T) {
	cache := &countingCache{LRUCache: NewLRUCache(8)}
	exprEval := NewExprEvaluator(ExprWithProgramCache(cache))
	celEval := NewCELEvaluator(CELWithProgramCache(cache))

	for i := 0; i < 3; i++ {
		if _, err := exprEval.Evaluate(Context{Depth: 1}, "depth == 1"); err != nil {
			t.Fatalf("expr: %v", err)
		}
		if _, err := celEval.Evaluate(Context{Depth: 1}, "depth == 1"); err != nil {
			t.Fatalf("cel: %v", err)
		}
	}
	if cache.sets != 2 {
		t.Fatalf("expected one compile per engine, got %d", cache.sets)
	}
}

func TestCacheSeparatesFunctionRegistries(t *testing.T) {
	cache := &countingCache{LRUCache: NewLRUCache(8)}
	plain := NewExprEvaluator(ExprWithProgramCache(cache))
	withFns := NewExprEvaluator(ExprWithProgramCache(cache), ExprWithFunctionRegistry(StringFunctions()))

	if _, err := plain.Evaluate(Context{Key: "a"}, `key == "a"`); err != nil {
		t.Fatalf("plain: %v", err)
	}
	got, err := withFns.Evaluate(Context{Value: "{{x}}"}, `iserror(value) || len(placeholders(value)) == 1`)
	if err != nil {
		t.Fatalf("with functions: %v", err)
	}
	if got != true {
		t.Fatalf("expected true, got %v", got)
	}
	if _, err := withFns.Evaluate(Context{Key: "a"}, `key == "a"`); err != nil {
		t.Fatalf("with functions: %v", err)
	}
	if cache.sets != 3 {
		t.Fatalf("expected separate cache slots per registry, got %d sets", cache.sets)
	}
}

func TestCacheSeparatesRegistriesSharingNames(t *testing.T) {
	upper := NewFunctionRegistry()
	if err := upper.Register("pick", func(args ...any) (any, error) { return "upper", nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	lower := NewFunctionRegistry()
	if err := lower.Register("pick", func(args ...any) (any, error) { return "lower", nil }); err != nil {
		t.Fatalf("register: %v", err)
	}

	cache := &countingCache{LRUCache: NewLRUCache(8)}
	first := NewExprEvaluator(ExprWithProgramCache(cache), ExprWithFunctionRegistry(upper))
	second := NewExprEvaluator(ExprWithProgramCache(cache), ExprWithFunctionRegistry(lower))

	for _, tc := range []struct {
		evaluator Evaluator
		want      string
	}{
		{evaluator: first, want: "upper"},
		{evaluator: second, want: "lower"},
		{evaluator: first, want: "upper"},
	} {
		got, err := tc.evaluator.Evaluate(Context{Value: "x"}, `pick(value)`)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		if got != tc.want {
			t.Fatalf("got %v, want %v", got, tc.want)
		}
	}
	if cache.sets != 2 {
		t.Fatalf("expected one slot per registry, got %d sets", cache.sets)
	}
}

func TestRegisterChangesFingerprint(t *testing.T) {
	registry := NewFunctionRegistry()
	if registry.fingerprint() != "" {
		t.Fatalf("empty registry should have no fingerprint")
	}
	if err := registry.Register("a", func(args ...any) (any, error) { return nil, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	clone := registry.Clone()
	if clone.fingerprint() != registry.fingerprint() {
		t.Fatalf("clone should share the fingerprint until it changes")
	}
	if err := clone.Register("b", func(args ...any) (any, error) { return nil, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if clone.fingerprint() == registry.fingerprint() {
		t.Fatalf("registering on a clone should change its fingerprint")
	}
}

func TestCELRegistryFunctionsByName(t *testing.T) {
	cel := NewCELEvaluator(CELWithFunctionRegistry(StringFunctions()))
	got, err := cel.Evaluate(Context{Value: "hello"}, `capitalize(value) == "Hello"`)
	if err != nil {
		t.Fatalf("cel: %v", err)
	}
	if got != true {
		t.Fatalf("expected true, got %v", got)
	}
}
