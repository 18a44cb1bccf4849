package query

import "time"

// Context carries the bindings a predicate is evaluated against.
type Context struct {
	Key      string
	Value    any
	Kind     string
	Table    string
	Depth    int
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx Context) withDefaultNow() Context {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx Context) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx Context) withDefaultMaps() Context {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx Context) withDefaults() Context {
	return ctx.withDefaultNow().withDefaultMaps()
}

func (ctx Context) tableLabel() string {
	if ctx.Table != "" {
		return ctx.Table
	}
	return "unknown"
}

// bindings returns the variables shared by every engine, except now.
func (ctx Context) bindings() map[string]any {
	return map[string]any{
		"key":      ctx.Key,
		"value":    ctx.Value,
		"kind":     ctx.Kind,
		"table":    ctx.Table,
		"depth":    ctx.Depth,
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
	}
}

// Evaluator executes expressions against a Context.
type Evaluator interface {
	Evaluate(ctx Context, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx Context) (any, error)
}

// Engine names reported in errors and log events.
const (
	EngineExpr   = "expr"
	EngineCEL    = "cel"
	EngineJS     = "js"
	EngineCustom = "custom"
)

// Named is implemented by evaluators that report their engine name.
type Named interface {
	Engine() string
}

func engineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	if named, ok := e.(Named); ok {
		return named.Engine()
	}
	return EngineCustom
}
