package strs

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

const tokenOpen = "{{"

// Substitutions holds the arguments for one GetString call: either an ordered
// list (tokens are zero-based indices) or a set of named values.
type Substitutions struct {
	values Value
}

// Positional builds index-addressed substitutions.
func Positional(args ...any) Substitutions {
	items := make([]Value, len(args))
	for i, arg := range args {
		items[i] = substitutionValue(arg)
	}
	return Substitutions{values: Value{kind: KindSequence, seq: items}}
}

// Named builds name-addressed substitutions.
func Named(args map[string]any) Substitutions {
	entries := make(map[string]Value, len(args))
	for key, arg := range args {
		entries[key] = substitutionValue(arg)
	}
	return Substitutions{values: Value{kind: KindMapping, m: entries}}
}

// IsZero reports whether no arguments were supplied at all.
func (s Substitutions) IsZero() bool {
	return !s.values.IsValid()
}

// empty reports whether substitution should be skipped. An empty mapping
// still substitutes so that missing tokens surface as error codes.
func (s Substitutions) empty() bool {
	return s.IsZero() || (s.values.Kind() == KindSequence && s.values.Len() == 0)
}

func (s Substitutions) lookup(name string) (string, bool) {
	switch s.values.Kind() {
	case KindSequence:
		index, err := strconv.Atoi(name)
		if err != nil || strconv.Itoa(index) != name {
			return "", false
		}
		value := s.values.Index(index)
		if !value.IsValid() {
			return "", false
		}
		return value.Text(), true
	case KindMapping:
		value := s.values.Get(name)
		if !value.IsValid() {
			return "", false
		}
		return value.Text(), true
	default:
		return "", false
	}
}

// Substitute replaces every {{name}} token in template. Tokens without a
// matching argument become ERROR-NO-SUB-<name>. Replaced text is not scanned
// again. With no arguments, or no tokens, template is returned unchanged.
func Substitute(template string, subs Substitutions) string {
	if subs.empty() || !strings.Contains(template, tokenOpen) {
		return template
	}
	return tokenPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := token[len(tokenOpen) : len(token)-2]
		if value, ok := subs.lookup(name); ok {
			return value
		}
		return MissingSubstitution(name)
	})
}

// substitutionsFrom normalizes the trailing arguments of GetString. A single
// slice, map, Value container or Substitutions is used as-is; anything else is
// collected positionally.
func substitutionsFrom(args []any) Substitutions {
	if len(args) == 0 {
		return Substitutions{}
	}
	if len(args) == 1 {
		switch typed := args[0].(type) {
		case Substitutions:
			return typed
		case Value:
			if typed.IsContainer() {
				return Substitutions{values: typed}
			}
		case []any:
			return Positional(typed...)
		case map[string]any:
			return Named(typed)
		case []string:
			items := make([]any, len(typed))
			for i, item := range typed {
				items[i] = item
			}
			return Positional(items...)
		case map[string]string:
			named := make(map[string]any, len(typed))
			for key, item := range typed {
				named[key] = item
			}
			return Named(named)
		default:
			if value, ok := reflectContainer(args[0]); ok {
				return Substitutions{values: value}
			}
		}
	}
	return Positional(args...)
}

func reflectContainer(arg any) (Value, bool) {
	if arg == nil {
		return Value{}, false
	}
	switch reflect.TypeOf(arg).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
	default:
		return Value{}, false
	}
	value, err := FromAny(arg)
	if err != nil || !value.IsContainer() {
		return Value{}, false
	}
	return value, true
}

func substitutionValue(arg any) Value {
	if stringer, ok := arg.(fmt.Stringer); ok {
		return String(stringer.String())
	}
	value, err := FromAny(arg)
	if err != nil {
		return String(fmt.Sprint(arg))
	}
	return value
}
