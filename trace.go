package strs

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Trace captures how every table answered a single key lookup.
type Trace struct {
	Key    string       `json:"key"`
	Tables []Provenance `json:"tables"`
}

// Provenance details how a specific table contributed to a traced key.
type Provenance struct {
	Table      string `json:"table"`
	Label      string `json:"label,omitempty"`
	Index      int    `json:"index"`
	SnapshotID string `json:"snapshot_id,omitempty"`
	Path       string `json:"path"`
	Value      Value  `json:"value"`
	Found      bool   `json:"found"`
}

// Winner returns the first table that produced a value.
func (t Trace) Winner() (Provenance, bool) {
	for _, prov := range t.Tables {
		if prov.Found {
			return prov, true
		}
	}
	return Provenance{}, false
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}

// ResolveWithTrace resolves key like Resolve and also records what each table
// holds at key. Selectors draw only for the winning table; lower tables are
// inspected without consuming "!" state.
func (s *Strings) ResolveWithTrace(key string) (Value, Trace, bool) {
	trace := Trace{Key: key, Tables: make([]Provenance, 0, len(s.resolver.tables))}
	var winner Value
	for index, table := range s.resolver.tables {
		var value Value
		if !winner.IsValid() {
			value = s.resolver.walkTable(index, key)
		} else {
			value = s.resolver.peekTable(index, key)
		}
		prov := provenanceFor(table, index, key)
		prov.Value = value
		prov.Found = value.IsValid()
		if prov.Found && !winner.IsValid() {
			winner = value
		}
		trace.Tables = append(trace.Tables, prov)
	}
	return winner, trace, winner.IsValid()
}

// FlattenWithProvenance lists every path GetString can render across all
// tables, attributed to the highest priority table defining it: string and
// scalar leaves plus named objects. Sequence elements use their index as the
// path segment. Results are sorted by path.
func (s *Strings) FlattenWithProvenance() []Provenance {
	seen := map[string]struct{}{}
	var results []Provenance
	for index, table := range s.resolver.tables {
		flattenInto(table.Root, "", func(path string, leaf Value) {
			if _, ok := seen[path]; ok {
				return
			}
			seen[path] = struct{}{}
			prov := provenanceFor(table, index, path)
			prov.Value = leaf
			prov.Found = true
			results = append(results, prov)
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results
}

// Paths returns the sorted leaf paths of FlattenWithProvenance.
func (s *Strings) Paths() []string {
	flat := s.FlattenWithProvenance()
	paths := make([]string, len(flat))
	for i, prov := range flat {
		paths[i] = prov.Path
	}
	return paths
}

func provenanceFor(table Table, index int, path string) Provenance {
	return Provenance{
		Table:      table.label(index),
		Label:      table.Label,
		Index:      index,
		SnapshotID: table.SnapshotID,
		Path:       path,
	}
}

func flattenInto(node Value, prefix string, visit func(path string, leaf Value)) {
	switch node.Kind() {
	case KindMapping:
		if name := node.Get(NameField); prefix != "" && name.Kind() == KindString {
			visit(prefix, name)
		}
		for _, key := range node.Keys() {
			flattenInto(node.Get(key), joinPath(prefix, key), visit)
		}
	case KindSequence:
		for i, item := range node.Items() {
			flattenInto(item, joinPath(prefix, strconv.Itoa(i)), visit)
		}
	case KindInvalid:
	default:
		visit(prefix, node)
	}
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	var b strings.Builder
	b.Grow(len(prefix) + len(KeySeparator) + len(segment))
	b.WriteString(prefix)
	b.WriteString(KeySeparator)
	b.WriteString(segment)
	return b.String()
}
