package strs

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindInvalid marks the zero Value. Resolution uses it to signal "not found".
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "invalid"
	}
}

// Value is a JSON-like node. The zero Value is invalid and never produced by
// decoding, so it doubles as the "not found" result of a lookup.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	seq  []Value
	m    map[string]Value
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Sequence returns a sequence Value holding items. The slice is copied.
func Sequence(items ...Value) Value {
	out := make([]Value, len(items))
	copy(out, items)
	return Value{kind: KindSequence, seq: out}
}

// Mapping returns a mapping Value. The map is copied.
func Mapping(entries map[string]Value) Value {
	out := make(map[string]Value, len(entries))
	for key, value := range entries {
		out[key] = value
	}
	return Value{kind: KindMapping, m: out}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds a node.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// IsContainer reports whether v is a sequence or mapping.
func (v Value) IsContainer() bool { return v.kind == KindSequence || v.kind == KindMapping }

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Num returns the numeric payload and whether v is a number.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// Boolean returns the boolean payload and whether v is a bool.
func (v Value) Boolean() (bool, bool) { return v.b, v.kind == KindBool }

// Len returns the number of elements of a sequence or entries of a mapping.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return len(v.m)
	default:
		return 0
	}
}

// Index returns the i-th element of a sequence, or the invalid Value.
func (v Value) Index(i int) Value {
	if v.kind != KindSequence || i < 0 || i >= len(v.seq) {
		return Value{}
	}
	return v.seq[i]
}

// Get returns the entry stored under key in a mapping, or the invalid Value.
func (v Value) Get(key string) Value {
	if v.kind != KindMapping {
		return Value{}
	}
	return v.m[key]
}

// Keys returns the sorted keys of a mapping.
func (v Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for key := range v.m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Items returns a copy of the elements of a sequence.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	out := make([]Value, len(v.seq))
	copy(out, v.seq)
	return out
}

// Text renders a scalar the way it reads inside UI text. Containers render as
// compact JSON.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNull:
		return "null"
	case KindSequence, KindMapping:
		payload, err := json.Marshal(v.Native())
		if err != nil {
			return ""
		}
		return string(payload)
	default:
		return ""
	}
}

// Native converts v back to plain Go values: string, float64, bool, nil,
// []any and map[string]any.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Native()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.m))
		for key, item := range v.m {
			out[key] = item.Native()
		}
		return out
	default:
		return nil
	}
}

// Equal reports deep equality.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.m) != len(other.m) {
			return false
		}
		for key, item := range v.m {
			peer, ok := other.m[key]
			if !ok || !item.Equal(peer) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(payload []byte) error {
	var raw any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// FromAny converts decoded JSON or YAML data into a Value. Maps must be keyed
// by strings (YAML decoders that produce map[any]any are accepted when every
// key is a string). Any integer or float type becomes a Number.
func FromAny(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Null(), nil
	case Value:
		return typed, nil
	case string:
		return String(typed), nil
	case bool:
		return Bool(typed), nil
	case float64:
		return Number(typed), nil
	case json.Number:
		n, err := typed.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("strs: number %q: %w", typed.String(), err)
		}
		return Number(n), nil
	case []any:
		items := make([]Value, len(typed))
		for i, item := range typed {
			value, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("strs: index %d: %w", i, err)
			}
			items[i] = value
		}
		return Value{kind: KindSequence, seq: items}, nil
	case map[string]any:
		entries := make(map[string]Value, len(typed))
		for key, item := range typed {
			value, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("strs: key %q: %w", key, err)
			}
			entries[key] = value
		}
		return Value{kind: KindMapping, m: entries}, nil
	case map[any]any:
		entries := make(map[string]Value, len(typed))
		for key, item := range typed {
			name, ok := key.(string)
			if !ok {
				return Value{}, fmt.Errorf("strs: mapping key %v is %T, want string", key, key)
			}
			value, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("strs: key %q: %w", name, err)
			}
			entries[name] = value
		}
		return Value{kind: KindMapping, m: entries}, nil
	}
	return fromReflect(reflect.ValueOf(raw))
}

func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null(), nil
		}
		items := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			value, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("strs: index %d: %w", i, err)
			}
			items[i] = value
		}
		return Value{kind: KindSequence, seq: items}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, fmt.Errorf("strs: unsupported map key type %s", rv.Type().Key())
		}
		if rv.IsNil() {
			return Null(), nil
		}
		entries := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			value, err := FromAny(iter.Value().Interface())
			if err != nil {
				return Value{}, fmt.Errorf("strs: key %q: %w", key, err)
			}
			entries[key] = value
		}
		return Value{kind: KindMapping, m: entries}, nil
	case reflect.Invalid:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("strs: unsupported value type %s", rv.Type())
	}
}

func formatNumber(n float64) string {
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
