package query

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyExpression is returned for a blank expression.
	ErrEmptyExpression = errors.New("query: expression must not be empty")
	// ErrNoEvaluator indicates no evaluator could be built.
	ErrNoEvaluator = errors.New("query: evaluator not configured")
	// ErrNotBoolean indicates a predicate produced a non-boolean result.
	ErrNotBoolean = errors.New("query: predicate must return a boolean")
)

// Stages at which an expression can fail.
const (
	StageCompile  = "compile"
	StageEvaluate = "evaluate"
)

// EvaluationError reports a failed expression. Path and Table name the entry
// being evaluated and stay empty for compile failures.
type EvaluationError struct {
	Engine string
	Stage  string
	Expr   string
	Path   string
	Table  string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("query: ")
	b.WriteString(e.Engine)
	fmt.Fprintf(&b, " %s %q", e.Stage, e.Expr)
	if e.Path != "" {
		fmt.Fprintf(&b, " on %s", e.Path)
	}
	if e.Table != "" {
		fmt.Fprintf(&b, " (table %s)", e.Table)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func compileError(engine, expr string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}
	return &EvaluationError{Engine: engine, Stage: StageCompile, Expr: expr, Err: err}
}

// entryError attaches the entry in ctx to err. An EvaluationError raised
// deeper keeps its own engine and only gains the fields it lacks.
func entryError(engine, expr string, ctx Context, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		return &EvaluationError{
			Engine: engine,
			Stage:  StageEvaluate,
			Expr:   expr,
			Path:   ctx.Key,
			Table:  ctx.Table,
			Err:    err,
		}
	}
	if evalErr.Engine == "" {
		evalErr.Engine = engine
	}
	if evalErr.Stage == "" {
		evalErr.Stage = StageEvaluate
	}
	if evalErr.Expr == "" {
		evalErr.Expr = expr
	}
	if evalErr.Path == "" {
		evalErr.Path = ctx.Key
	}
	if evalErr.Table == "" {
		evalErr.Table = ctx.Table
	}
	return evalErr
}
