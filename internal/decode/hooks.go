package decode

import (
	"fmt"
	"strings"

	strs "github.com/goliatone/go-strings"
)

// TrimStrings returns a pre-hook that trims surrounding whitespace from every
// string leaf.
func TrimStrings() PreHook {
	return func(_ Context, raw any) (any, error) {
		return trimTree(raw), nil
	}
}

func trimTree(raw any) any {
	switch typed := raw.(type) {
	case string:
		return strings.TrimSpace(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = trimTree(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = trimTree(item)
		}
		return out
	default:
		return raw
	}
}

// Unwrap returns a pre-hook that descends into key when the payload is a
// mapping holding it, for files that nest their strings under a root such as
// "strings" or a locale name.
func Unwrap(key string) PreHook {
	return func(_ Context, raw any) (any, error) {
		m, ok := raw.(map[string]any)
		if !ok {
			return raw, nil
		}
		if inner, ok := m[key]; ok {
			return inner, nil
		}
		return raw, nil
	}
}

// RequireContainer is a post-hook rejecting payloads whose root is neither a
// mapping nor a sequence.
func RequireContainer() PostHook {
	return func(_ Context, value *strs.Value) error {
		if value == nil || !value.IsContainer() {
			kind := strs.KindInvalid
			if value != nil {
				kind = value.Kind()
			}
			return fmt.Errorf("%w, got %s", strs.ErrInvalidTableRoot, kind)
		}
		return nil
	}
}
