package strs

import "strings"

// KeySeparator splits a key into path segments. There is no escape sequence.
const KeySeparator = "/"

type resolver struct {
	tables    []Table
	selection *selectionState
	random    RandomSource
}

func newResolver(stack *Stack, random RandomSource) *resolver {
	if random == nil {
		random = globalRandom{}
	}
	var tables []Table
	if stack != nil {
		tables = stack.tables
	}
	return &resolver{
		tables:    tables,
		selection: newSelectionState(),
		random:    random,
	}
}

// resolve looks key up starting at table index start. A miss anywhere in the
// path restarts the whole key against the next table, so partial matches
// from different tables never mix. It returns the matching table index, or -1.
func (r *resolver) resolve(key string, start int) (Value, int) {
	if key == "" {
		return Value{}, -1
	}
	segments := strings.Split(key, KeySeparator)
	for index := start; index >= 0 && index < len(r.tables); index++ {
		if value := r.walk(r.tables[index].Root, segments, true); value.IsValid() {
			return value, index
		}
	}
	return Value{}, -1
}

// walk applies segments to root within one table. With consume unset the "!"
// selector picks like "?" and leaves the selection pools untouched.
func (r *resolver) walk(root Value, segments []string, consume bool) Value {
	var parentKey strings.Builder
	node := root
	for _, segment := range segments {
		switch node.Kind() {
		case KindSequence:
			node = r.selectElement(node, segment, parentKey.String(), consume)
		case KindMapping:
			node = node.Get(segment)
		default:
			return Value{}
		}
		if !node.IsValid() {
			return Value{}
		}
		parentKey.WriteString(segment)
	}
	return node
}

// walkTable resolves key inside a single table, without fallback.
func (r *resolver) walkTable(index int, key string) Value {
	if key == "" || index < 0 || index >= len(r.tables) {
		return Value{}
	}
	return r.walk(r.tables[index].Root, strings.Split(key, KeySeparator), true)
}

// peekTable is walkTable without side effects on selection state.
func (r *resolver) peekTable(index int, key string) Value {
	if key == "" || index < 0 || index >= len(r.tables) {
		return Value{}
	}
	return r.walk(r.tables[index].Root, strings.Split(key, KeySeparator), false)
}
