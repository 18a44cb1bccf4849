package query

import (
	"errors"
	"testing"
)

func TestEntryErrorNamesPathAndTable(t *testing.T) {
	base := errors.New("boom")
	err := entryError(EngineExpr, "kind == nope", Context{Key: "intro/hello", Table: "en"}, base)

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Stage != StageEvaluate || evalErr.Path != "intro/hello" || evalErr.Table != "en" {
		t.Fatalf("unexpected metadata %#v", evalErr)
	}
	if !errors.Is(err, base) {
		t.Fatalf("wrapped error should unwrap to base error")
	}
	want := `query: expr evaluate "kind == nope" on intro/hello (table en): boom`
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestEntryErrorFillsInnerError(t *testing.T) {
	base := errors.New("type mismatch")
	inner := &EvaluationError{Engine: EngineCEL, Err: base}

	err := entryError(EngineExpr, "rule", Context{Key: "choices/0", Table: "es"}, inner)
	if err != inner {
		t.Fatalf("expected the inner error back, got %v", err)
	}
	if inner.Engine != EngineCEL {
		t.Fatalf("inner engine should be kept, got %q", inner.Engine)
	}
	if inner.Stage != StageEvaluate || inner.Expr != "rule" || inner.Path != "choices/0" || inner.Table != "es" {
		t.Fatalf("missing fields should be filled, got %#v", inner)
	}
}

func TestCompileErrorOmitsEntry(t *testing.T) {
	if compileError(EngineExpr, "x", nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	err := compileError(EngineJS, "value ===", errors.New("unexpected end"))
	if got := err.Error(); got != `query: js compile "value ===": unexpected end` {
		t.Fatalf("unexpected message %q", got)
	}
	if again := compileError(EngineExpr, "other", err); again != err {
		t.Fatalf("existing evaluation errors should pass through")
	}
}
