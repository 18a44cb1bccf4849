package query

import (
	"fmt"
	"strings"
	"time"

	strs "github.com/goliatone/go-strings"
)

// Option configures Filter and Evaluate.
type Option func(*config)

type config struct {
	evaluator Evaluator
	cache     ProgramCache
	functions *FunctionRegistry
	logger    EvaluatorLogger
	args      map[string]any
	metadata  map[string]any
	now       *time.Time
}

func applyOptions(opts []Option) config {
	cfg := config{logger: noopEvaluatorLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEvaluator replaces the default expr evaluator.
func WithEvaluator(evaluator Evaluator) Option {
	return func(cfg *config) {
		cfg.evaluator = evaluator
	}
}

// WithProgramCache registers a program cache on the default evaluator.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *config) {
		cfg.cache = cache
	}
}

// WithFunctionRegistry exposes registry to the default evaluator.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *config) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name for the default evaluator.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *config) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}

// WithEvaluatorLogger attaches an evaluator logger.
func WithEvaluatorLogger(logger EvaluatorLogger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = noopEvaluatorLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithArgs binds args for every evaluation.
func WithArgs(args map[string]any) Option {
	return func(cfg *config) {
		cfg.args = args
	}
}

// WithMetadata binds metadata for every evaluation.
func WithMetadata(metadata map[string]any) Option {
	return func(cfg *config) {
		cfg.metadata = metadata
	}
}

// WithNow pins the time bound to now.
func WithNow(now time.Time) Option {
	return func(cfg *config) {
		cfg.now = &now
	}
}

func (cfg config) resolveEvaluator() (Evaluator, error) {
	if cfg.evaluator != nil {
		return cfg.evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if cfg.cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cfg.cache))
	}
	if cfg.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(cfg.functions))
	}
	evaluator := NewExprEvaluator(exprOpts...)
	if evaluator == nil {
		return nil, ErrNoEvaluator
	}
	return evaluator, nil
}

// Evaluate runs expr once against ctx. Unset Args, Metadata and Now in ctx are
// filled from the options.
func Evaluate(ctx Context, expr string, opts ...Option) (any, error) {
	if expr == "" {
		return nil, ErrEmptyExpression
	}
	cfg := applyOptions(opts)
	evaluator, err := cfg.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	ctx = cfg.fill(ctx).withDefaults()
	engine := engineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	evalErr = entryError(engine, expr, ctx, evalErr)
	cfg.logger.LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Expr:     expr,
		Entries:  1,
		Duration: time.Since(start),
		Err:      evalErr,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return value, nil
}

// Filter returns the flattened entries of s for which expr evaluates to true,
// sorted by path. The predicate is compiled once. A non-boolean result or an
// evaluation error stops the scan.
func Filter(s *strs.Strings, expr string, opts ...Option) ([]strs.Provenance, error) {
	if s == nil {
		return nil, fmt.Errorf("query: strings must not be nil")
	}
	if expr == "" {
		return nil, ErrEmptyExpression
	}
	cfg := applyOptions(opts)
	evaluator, err := cfg.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	engine := engineName(evaluator)
	start := time.Now()

	entries := s.FlattenWithProvenance()
	matched, filterErr := filterEntries(cfg, evaluator, engine, expr, entries)
	cfg.logger.LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Expr:     expr,
		Entries:  len(entries),
		Matched:  len(matched),
		Duration: time.Since(start),
		Err:      filterErr,
	})
	if filterErr != nil {
		return nil, filterErr
	}
	return matched, nil
}

func filterEntries(cfg config, evaluator Evaluator, engine, expr string, entries []strs.Provenance) ([]strs.Provenance, error) {
	rule, err := evaluator.Compile(expr)
	if err != nil {
		return nil, compileError(engine, expr, err)
	}
	now := time.Now()
	if cfg.now != nil {
		now = *cfg.now
	}
	var matched []strs.Provenance
	for _, entry := range entries {
		ctx := cfg.fill(EntryContext(entry))
		ctx.Now = &now
		result, err := rule.Evaluate(ctx)
		if err != nil {
			return nil, entryError(engine, expr, ctx, err)
		}
		ok, isBool := result.(bool)
		if !isBool {
			return nil, entryError(engine, expr, ctx, fmt.Errorf("%w, got %T", ErrNotBoolean, result))
		}
		if ok {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

// EntryContext binds a flattened entry.
func EntryContext(entry strs.Provenance) Context {
	return Context{
		Key:   entry.Path,
		Value: entry.Value.Native(),
		Kind:  entry.Value.Kind().String(),
		Table: entry.Table,
		Depth: strings.Count(entry.Path, strs.KeySeparator) + 1,
	}
}

func (cfg config) fill(ctx Context) Context {
	if ctx.Args == nil {
		ctx.Args = cfg.args
	}
	if ctx.Metadata == nil {
		ctx.Metadata = cfg.metadata
	}
	if ctx.Now == nil {
		ctx.Now = cfg.now
	}
	return ctx
}
