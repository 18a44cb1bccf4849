package strs

import (
	"errors"
	"testing"
)

func TestNewTableCopiesMetadata(t *testing.T) {
	meta := map[string]any{"owner": "ops"}
	table, err := NewTable("en", map[string]any{"a": "b"},
		WithTableLabel("English"),
		WithTableMetadata(meta),
		WithSnapshotID("en/1"),
	)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}

	meta["owner"] = "mutated"

	if got := table.Metadata["owner"]; got != "ops" {
		t.Fatalf("expected metadata copy to remain 'ops', got %q", got)
	}
	if table.Label != "English" {
		t.Fatalf("label not set, got %q", table.Label)
	}
	if table.SnapshotID != "en/1" {
		t.Fatalf("snapshot id not set, got %q", table.SnapshotID)
	}
}

func TestNewTableDetachesFromSource(t *testing.T) {
	source := map[string]any{"greeting": "hi"}
	table := MustTable("en", source)
	source["greeting"] = "mutated"
	if got, _ := table.Root.Get("greeting").Str(); got != "hi" {
		t.Fatalf("expected table to keep its own copy, got %q", got)
	}
}

func TestNewTableAssignsSnapshotID(t *testing.T) {
	a := MustTable("a", map[string]any{})
	b := MustTable("b", map[string]any{})
	if a.SnapshotID == "" || a.SnapshotID == b.SnapshotID {
		t.Fatalf("expected distinct generated snapshot ids, got %q and %q", a.SnapshotID, b.SnapshotID)
	}
}

func TestNewTableRejectsScalarRoot(t *testing.T) {
	_, err := NewTable("bad", "just text")
	if !errors.Is(err, ErrInvalidTableRoot) {
		t.Fatalf("expected ErrInvalidTableRoot, got %v", err)
	}
	var tableErr *TableError
	if !errors.As(err, &tableErr) || tableErr.Table != "bad" {
		t.Fatalf("expected table error naming 'bad', got %#v", err)
	}
}

func TestNewStackKeepsOrderAndValidates(t *testing.T) {
	es := MustTable("es", map[string]any{"a": "1"})
	en := MustTable("en", map[string]any{"a": "2"})
	unnamed := MustTable("", map[string]any{"a": "3"})
	another := MustTable("", map[string]any{"a": "4"})

	stack, err := NewStack(es, en, unnamed, another)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tables := stack.Tables()
	if stack.Len() != 4 || tables[0].Name != "es" || tables[1].Name != "en" {
		t.Fatalf("unexpected order: %+v", tables)
	}
	if got := tables[2].label(2); got != "#2" {
		t.Fatalf("expected positional label, got %q", got)
	}

	if _, err := NewStack(es, MustTable("es", map[string]any{})); !errors.Is(err, ErrDuplicateTableName) {
		t.Fatalf("expected duplicate table name error, got %v", err)
	}
	if _, err := NewStack(Table{Name: "zero"}); !errors.Is(err, ErrInvalidTableRoot) {
		t.Fatalf("expected zero table to be rejected, got %v", err)
	}
}

func TestStackTablesReturnsCopies(t *testing.T) {
	stack, err := NewStack(MustTable("en", map[string]any{}, WithTableMetadata(map[string]any{"k": "v"})))
	if err != nil {
		t.Fatalf("stack: %v", err)
	}
	tables := stack.Tables()
	tables[0].Metadata["k"] = "mutated"
	if got := stack.Tables()[0].Metadata["k"]; got != "v" {
		t.Fatalf("stack metadata leaked, got %v", got)
	}
}

func TestTableErrorFormatting(t *testing.T) {
	cases := []struct {
		err  *TableError
		want string
	}{
		{&TableError{Table: "en", Index: 1, Err: ErrDuplicateTableName}, `strs: table "en" (index 1): strs: table names must be unique`},
		{&TableError{Table: "en", Index: -1, Err: ErrInvalidTableRoot}, `strs: table "en": strs: table root must be a mapping or sequence`},
		{&TableError{Index: 2, Err: ErrInvalidTableRoot}, `strs: table index 2: strs: table root must be a mapping or sequence`},
		{&TableError{Index: -1, Err: ErrNoTables}, `strs: table <unnamed>: strs: at least one table is required`},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("Error() = %q, want %q", got, tc.want)
		}
	}
	var nilErr *TableError
	if nilErr.Error() != "<nil>" || nilErr.Unwrap() != nil {
		t.Fatalf("nil receiver should be safe")
	}
}
