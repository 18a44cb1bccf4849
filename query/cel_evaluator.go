package query

import (
	"fmt"
	"sync"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*celEvaluator)

// CELWithProgramCache shares compiled programs across evaluators.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.cache = cache
	}
}

// CELWithFunctionRegistry declares every registry function as a unary CEL
// function, and call("name", arg) for anything else. A list passed to call is
// spread into positional arguments. Names must not collide with CEL builtins.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(e *celEvaluator) {
		if registry != nil {
			e.registry = registry.Clone()
		}
	}
}

// CELWithEnvOptions appends raw cel-go environment options (extension
// libraries, extra variables). Such evaluators should not share a cache with
// differently configured ones.
func CELWithEnvOptions(opts ...celgo.EnvOption) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.extra = append(e.extra, opts...)
	}
}

type celEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
	extra    []celgo.EnvOption

	envOnce sync.Once
	env     *celgo.Env
	envErr  error
}

// NewCELEvaluator constructs an Evaluator backed by cel-go.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	e := &celEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEvaluator) Engine() string { return EngineCEL }

func (e *celEvaluator) Evaluate(ctx Context, expression string) (any, error) {
	rule, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}
	return rule.Evaluate(ctx)
}

func (e *celEvaluator) Compile(expression string) (CompiledRule, error) {
	if expression == "" {
		return nil, ErrEmptyExpression
	}
	key := cacheKey(EngineCEL, e.registry.fingerprint()+expression)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			if program, ok := cached.(celgo.Program); ok {
				return &celCompiledRule{program: program, expression: expression}, nil
			}
		}
	}

	program, err := e.compile(expression)
	if err != nil {
		return nil, compileError(EngineCEL, expression, err)
	}
	if e.cache != nil {
		e.cache.Set(key, program)
	}
	return &celCompiledRule{program: program, expression: expression}, nil
}

func (e *celEvaluator) compile(expression string) (celgo.Program, error) {
	env, err := e.environment()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	return env.Program(ast)
}

func (e *celEvaluator) environment() (*celgo.Env, error) {
	e.envOnce.Do(func() {
		opts := []celgo.EnvOption{
			celgo.Variable("key", celgo.StringType),
			celgo.Variable("value", celgo.DynType),
			celgo.Variable("kind", celgo.StringType),
			celgo.Variable("table", celgo.StringType),
			celgo.Variable("depth", celgo.IntType),
			celgo.Variable("now", celgo.TimestampType),
			celgo.Variable("args", celgo.DynType),
			celgo.Variable("metadata", celgo.DynType),
		}
		opts = append(opts, e.registryFunctions()...)
		opts = append(opts, e.extra...)
		e.env, e.envErr = celgo.NewEnv(opts...)
	})
	return e.env, e.envErr
}

func (e *celEvaluator) registryFunctions() []celgo.EnvOption {
	registry := e.registry
	if registry == nil {
		return nil
	}
	opts := []celgo.EnvOption{
		celgo.Function("call", celgo.Overload("call_string_dyn",
			[]*celgo.Type{celgo.StringType, celgo.DynType},
			celgo.DynType,
			celgo.BinaryBinding(func(name, arg ref.Val) ref.Val {
				fn, ok := name.Value().(string)
				if !ok {
					return types.NewErr("query: call name must be a string")
				}
				return callRegistry(registry, fn, spread(arg)...)
			}),
		)),
	}
	for _, name := range registry.Names() {
		opts = append(opts, celgo.Function(name, celgo.Overload(name+"_dyn",
			[]*celgo.Type{celgo.DynType},
			celgo.DynType,
			celgo.UnaryBinding(func(arg ref.Val) ref.Val {
				return callRegistry(registry, name, arg.Value())
			}),
		)))
	}
	return opts
}

func spread(arg ref.Val) []any {
	list, ok := arg.Value().([]ref.Val)
	if !ok {
		return []any{arg.Value()}
	}
	out := make([]any, len(list))
	for i, item := range list {
		out[i] = item.Value()
	}
	return out
}

func callRegistry(registry *FunctionRegistry, name string, args ...any) ref.Val {
	result, err := registry.Call(name, args...)
	if err != nil {
		return types.NewErr("%s", err.Error())
	}
	if result == nil {
		return types.NullValue
	}
	return types.DefaultTypeAdapter.NativeToValue(celNative(result))
}

// celNative narrows registry results to types the default adapter converts.
func celNative(result any) any {
	switch typed := result.(type) {
	case []any, []string, string, bool, float64, int64, map[string]any:
		return typed
	case int:
		return int64(typed)
	default:
		return fmt.Sprint(typed)
	}
}

type celCompiledRule struct {
	program    celgo.Program
	expression string
}

func (r *celCompiledRule) Evaluate(ctx Context) (any, error) {
	ctx = ctx.withDefaults()
	out, _, err := r.program.Eval(celActivation(ctx))
	if err != nil {
		return nil, entryError(EngineCEL, r.expression, ctx, err)
	}
	return out.Value(), nil
}

func celActivation(ctx Context) map[string]any {
	activation := ctx.bindings()
	activation["depth"] = int64(ctx.Depth)
	activation["now"] = ctx.timestamp()
	if activation["value"] == nil {
		activation["value"] = types.NullValue
	}
	return activation
}
