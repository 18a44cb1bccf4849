package query

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	strs "github.com/goliatone/go-strings"
)

// Function represents a callable registered against evaluators.
type Function func(args ...any) (any, error)

// FunctionRegistry stores custom functions keyed by lower-cased name.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
	// revision changes on every Register; clones share it until they diverge.
	revision string
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]Function),
	}
}

// Register stores fn under name guarding against duplicates.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("query: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("query: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	key := strings.ToLower(name)
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("query: function %q already registered", name)
	}
	r.functions[key] = fn
	r.revision = uuid.NewString()
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]Function, len(r.functions)),
		revision:  r.revision,
	}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("query: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("query: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns registered function names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fingerprint identifies the registry contents so programs compiled against
// different function sets, even under the same names, do not share a cache
// slot.
func (r *FunctionRegistry) fingerprint() string {
	if r == nil {
		return ""
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.functions) == 0 {
		return ""
	}
	return r.revision + "\x00"
}

var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// StringFunctions returns a registry preloaded with helpers for string
// tables:
//
//	placeholders(s)  token names used by s, in order of appearance
//	iserror(s)       whether s carries an inline error code
//	capitalize(s)    s with its first rune upper-cased
func StringFunctions() *FunctionRegistry {
	registry := NewFunctionRegistry()
	_ = registry.Register("placeholders", stringFunction("placeholders", func(s string) any {
		matches := placeholderPattern.FindAllStringSubmatch(s, -1)
		names := make([]any, len(matches))
		for i, match := range matches {
			names[i] = match[1]
		}
		return names
	}))
	_ = registry.Register("iserror", stringFunction("iserror", func(s string) any {
		return strs.IsErrorText(s)
	}))
	_ = registry.Register("capitalize", stringFunction("capitalize", func(s string) any {
		return strs.Capitalize(s)
	}))
	return registry
}

func stringFunction(name string, fn func(string) any) Function {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("query: %s expects 1 argument, got %d", name, len(args))
		}
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("query: %s expects a string, got %T", name, args[0])
		}
		return fn(s), nil
	}
}
