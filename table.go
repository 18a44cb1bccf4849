package strs

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Table is one complete string tree, typically one locale of one source.
type Table struct {
	Name       string
	Label      string
	Root       Value
	SnapshotID string
	Metadata   map[string]any
}

// TableOption configures metadata on Table creation.
type TableOption func(*Table)

// WithTableLabel sets a human-friendly label on the table.
func WithTableLabel(label string) TableOption {
	return func(t *Table) {
		t.Label = label
	}
}

// WithSnapshotID sets the snapshot identifier reported by traces. Tables built
// without one get a random UUID.
func WithSnapshotID(id string) TableOption {
	return func(t *Table) {
		t.SnapshotID = id
	}
}

// WithTableMetadata attaches arbitrary metadata to the table. The map is copied
// so the resulting Table remains immutable even if the caller mutates their
// reference.
func WithTableMetadata(metadata map[string]any) TableOption {
	return func(t *Table) {
		t.Metadata = copyMetadata(metadata)
	}
}

var (
	// ErrInvalidTableRoot indicates a table whose root is neither a mapping nor
	// a sequence.
	ErrInvalidTableRoot = errors.New("strs: table root must be a mapping or sequence")
	// ErrDuplicateTableName indicates a stack received two tables with the same
	// non-empty name.
	ErrDuplicateTableName = errors.New("strs: table names must be unique")
	// ErrNoTables indicates construction from nil data.
	ErrNoTables = errors.New("strs: at least one table is required")
)

// NewTable converts root into a Table. root may be a Value or any decoded
// JSON/YAML tree accepted by FromAny.
func NewTable(name string, root any, opts ...TableOption) (Table, error) {
	value, err := FromAny(root)
	if err != nil {
		return Table{}, &TableError{Table: name, Index: -1, Err: err}
	}
	if !value.IsContainer() {
		return Table{}, &TableError{Table: name, Index: -1, Err: fmt.Errorf("%w, got %s", ErrInvalidTableRoot, value.Kind())}
	}
	table := Table{
		Name: name,
		Root: value,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&table)
	}
	if table.SnapshotID == "" {
		table.SnapshotID = uuid.NewString()
	}
	return table, nil
}

// MustTable is like NewTable but panics on error. Intended for fixtures and
// package-level tables.
func MustTable(name string, root any, opts ...TableOption) Table {
	table, err := NewTable(name, root, opts...)
	if err != nil {
		panic(err)
	}
	return table
}

// label returns the most descriptive identifier for the table.
func (t Table) label(index int) string {
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("#%d", index)
}

func (t Table) clone() Table {
	return Table{
		Name:       t.Name,
		Label:      t.Label,
		Root:       t.Root,
		SnapshotID: t.SnapshotID,
		Metadata:   copyMetadata(t.Metadata),
	}
}

// Stack is an immutable list of tables ordered from highest to lowest
// priority.
type Stack struct {
	tables []Table
}

// NewStack validates tables and keeps them in the given order: the first
// table wins.
func NewStack(tables ...Table) (*Stack, error) {
	seen := make(map[string]struct{}, len(tables))
	copied := make([]Table, len(tables))
	for i, table := range tables {
		if !table.Root.IsContainer() {
			return nil, &TableError{Table: table.Name, Index: i, Err: fmt.Errorf("%w, got %s", ErrInvalidTableRoot, table.Root.Kind())}
		}
		if table.Name != "" {
			if _, ok := seen[table.Name]; ok {
				return nil, &TableError{Table: table.Name, Index: i, Err: ErrDuplicateTableName}
			}
			seen[table.Name] = struct{}{}
		}
		copied[i] = table.clone()
	}
	return &Stack{tables: copied}, nil
}

// Tables returns a copy of the tables in priority order.
func (s *Stack) Tables() []Table {
	if s == nil || len(s.tables) == 0 {
		return nil
	}
	out := make([]Table, len(s.tables))
	for i := range s.tables {
		out[i] = s.tables[i].clone()
	}
	return out
}

// Len returns the number of tables in the stack.
func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tables)
}

func copyMetadata(origin map[string]any) map[string]any {
	if len(origin) == 0 {
		return nil
	}
	out := make(map[string]any, len(origin))
	for key, value := range origin {
		out[key] = value
	}
	return out
}
