package strs

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/goliatone/go-strings/pkg/activity"
)

// NameField is the mapping entry GetString falls back to when a key resolves
// to an object instead of a string.
const NameField = "name"

// Strings resolves keys against an ordered stack of tables. It is not safe
// for concurrent use; see Synchronized.
type Strings struct {
	stack    *Stack
	resolver *resolver
	emitter  *activity.Emitter
	cfg      config
}

// New builds a Strings over tables, highest priority first.
func New(tables []Table, opts ...Option) (*Strings, error) {
	stack, err := NewStack(tables...)
	if err != nil {
		return nil, err
	}
	return FromStack(stack, opts...), nil
}

// FromStack builds a Strings over an existing stack.
func FromStack(stack *Stack, opts ...Option) *Strings {
	if stack == nil {
		stack = &Stack{}
	}
	cfg := applyOptions(opts)
	return &Strings{
		stack:    stack,
		resolver: newResolver(stack, cfg.random),
		emitter:  newEmitter(cfg),
		cfg:      cfg,
	}
}

// NewFromData builds a Strings from decoded JSON-like data. data is either one
// table tree (a map) or a list of trees in priority order. A []any is always
// read as a list of tables.
func NewFromData(data any, opts ...Option) (*Strings, error) {
	switch typed := data.(type) {
	case nil:
		return nil, ErrNoTables
	case Table:
		return New([]Table{typed}, opts...)
	case []Table:
		return New(typed, opts...)
	case *Stack:
		return FromStack(typed, opts...), nil
	}
	roots, err := splitTables(data)
	if err != nil {
		return nil, err
	}
	tables := make([]Table, 0, len(roots))
	for i, root := range roots {
		table, err := NewTable("", root)
		if err != nil {
			var tableErr *TableError
			if errors.As(err, &tableErr) {
				tableErr.Index = i
			}
			return nil, err
		}
		tables = append(tables, table)
	}
	return New(tables, opts...)
}

func splitTables(data any) ([]any, error) {
	switch typed := data.(type) {
	case []any:
		return typed, nil
	case []map[string]any:
		roots := make([]any, len(typed))
		for i, root := range typed {
			roots[i] = root
		}
		return roots, nil
	case Value:
		if typed.Kind() == KindSequence {
			items := typed.Items()
			roots := make([]any, len(items))
			for i, item := range items {
				roots[i] = item
			}
			return roots, nil
		}
		return []any{typed}, nil
	}
	if reflect.TypeOf(data).Kind() == reflect.Map {
		return []any{data}, nil
	}
	return nil, &TableError{Index: -1, Err: fmt.Errorf("%w, got %T", ErrInvalidTableRoot, data)}
}

// Stack returns the tables backing s.
func (s *Strings) Stack() *Stack {
	return s.stack
}

// Resolve returns the node at key, falling back across tables on a miss.
func (s *Strings) Resolve(key string) (Value, bool) {
	value, _ := s.resolver.resolve(key, 0)
	return value, value.IsValid()
}

// GetString resolves key to display text. It never fails: problems are
// reported inline as ERROR-MISSING-STRING, BAD-TYPE or ERROR-NO-SUB codes.
//
// subs fills {{name}} tokens. A single slice, map, Value container or
// Substitutions is used directly; otherwise all arguments are positional:
//
//	s.GetString("intro/bye", []string{"Bob", "Susan"})
//	s.GetString("intro/bye", "Bob", "Susan")
//	s.GetString("substitution", map[string]any{"testKey": "whoop"})
func (s *Strings) GetString(key string, subs ...any) string {
	start := time.Now()
	value, index := s.resolver.resolve(key, 0)
	table := s.tableName(index)

	if !value.IsValid() {
		s.report(key, OutcomeMissing, table, start)
		s.emitMissing(key)
		return MissingString(key)
	}

	text, ok := value.Str()
	if !ok {
		name, named := value.Get(NameField).Str()
		if !named {
			s.report(key, OutcomeBadType, table, start)
			s.emitBadType(key, value, index)
			return BadType(key)
		}
		text = name
	}

	args := substitutionsFrom(subs)
	result := Substitute(text, args)
	if missing := missingTokens(text, args); len(missing) > 0 {
		s.report(key, OutcomeMissingSubstitution, table, start)
		s.emitMissingSubstitution(key, missing, index)
		return result
	}
	s.report(key, OutcomeFound, table, start)
	return result
}

// GetStringCount returns the length of the sequence at key, or -1 when key is
// missing or resolves to anything but a sequence.
func (s *Strings) GetStringCount(key string) int {
	value, _ := s.resolver.resolve(key, 0)
	if value.Kind() != KindSequence {
		return -1
	}
	return value.Len()
}

// HasString reports whether key resolves to any node in any table.
func (s *Strings) HasString(key string) bool {
	if key == "" {
		return false
	}
	value, _ := s.resolver.resolve(key, 0)
	return value.IsValid()
}

// FindAllStringKeys lists the children of parentKey across all tables, or of
// the table roots when parentKey is empty. Mappings contribute their keys;
// sequences contribute their element values (not indices); a scalar
// contributes parentKey itself. The union is deduplicated and sorted.
//
// Each table is resolved independently, starting at that table, so a lower
// table can contribute keys even when a higher one also has parentKey.
func (s *Strings) FindAllStringKeys(parentKey string) []string {
	seen := map[string]struct{}{}
	for index := range s.resolver.tables {
		var node Value
		if parentKey == "" {
			node = s.resolver.tables[index].Root
		} else {
			node, _ = s.resolver.resolve(parentKey, index)
		}
		switch node.Kind() {
		case KindInvalid:
			continue
		case KindMapping:
			for _, key := range node.Keys() {
				seen[key] = struct{}{}
			}
		case KindSequence:
			for _, item := range node.Items() {
				seen[item.Text()] = struct{}{}
			}
		default:
			seen[parentKey] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ResetSelections forgets which elements the "!" selector already returned.
func (s *Strings) ResetSelections() {
	s.resolver.selection.reset()
}

func (s *Strings) tableName(index int) string {
	if index < 0 || index >= len(s.resolver.tables) {
		return ""
	}
	return s.resolver.tables[index].label(index)
}

func (s *Strings) report(key string, outcome Outcome, table string, start time.Time) {
	s.cfg.logger.LogResolve(ResolveLogEvent{
		Key:      key,
		Outcome:  outcome,
		Table:    table,
		Duration: time.Since(start),
	})
}

// missingTokens lists, once each, the token names Substitute could not fill.
func missingTokens(template string, args Substitutions) []string {
	if args.empty() {
		return nil
	}
	var missing []string
	seen := map[string]struct{}{}
	for _, match := range tokenPattern.FindAllStringSubmatch(template, -1) {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := args.lookup(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
