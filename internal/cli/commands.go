package cli

import (
	"fmt"
	"strconv"

	strs "github.com/goliatone/go-strings"
	"github.com/goliatone/go-strings/internal/decode"
	"github.com/goliatone/go-strings/query"
)

// Get prints the resolved string for a key.
type Get struct {
	Key   string            `arg:"" help:"Slash separated key, e.g. intro/options/copy."`
	Args  []string          `arg:"" optional:"" help:"Positional substitutions."`
	Named map[string]string `short:"s" help:"Named substitution, e.g. -s name=Ana."`
}

func (c *Get) Run(app *App) error {
	s, err := app.Strings()
	if err != nil {
		return err
	}
	var text string
	switch {
	case len(c.Named) > 0:
		subs := make(map[string]any, len(c.Named))
		for k, v := range c.Named {
			subs[k] = v
		}
		text = s.GetString(c.Key, subs)
	case len(c.Args) > 0:
		text = s.GetString(c.Key, c.Args)
	default:
		text = s.GetString(c.Key)
	}
	_, err = fmt.Fprintln(app.out, text)
	return err
}

type Count struct {
	Key string `arg:""`
}

func (c *Count) Run(app *App) error {
	s, err := app.Strings()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(app.out, s.GetStringCount(c.Key))
	return err
}

type Has struct {
	Key   string `arg:""`
	Quiet bool   `short:"q" help:"Do not print true/false."`
}

func (c *Has) Run(app *App) error {
	s, err := app.Strings()
	if err != nil {
		return err
	}
	found := s.HasString(c.Key)
	if !c.Quiet {
		if _, err := fmt.Fprintln(app.out, strconv.FormatBool(found)); err != nil {
			return err
		}
	}
	if !found {
		app.exit(1)
	}
	return nil
}

type Keys struct {
	Parent string `arg:"" optional:""`
}

func (c *Keys) Run(app *App) error {
	s, err := app.Strings()
	if err != nil {
		return err
	}
	return app.lines(s.FindAllStringKeys(c.Parent))
}

type Trace struct {
	Key string `arg:""`
}

func (c *Trace) Run(app *App) error {
	s, err := app.Strings()
	if err != nil {
		return err
	}
	_, trace, _ := s.ResolveWithTrace(c.Key)
	payload, err := trace.ToJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(app.out, string(payload))
	return err
}

type Flatten struct{}

func (c *Flatten) Run(app *App) error {
	s, err := app.Strings()
	if err != nil {
		return err
	}
	return app.entries(s.FlattenWithProvenance())
}

// Query filters flattened entries with an expr, CEL or JS predicate.
type Query struct {
	Expr   string            `arg:"" help:"Boolean predicate over key, value, kind, table, depth, now and args."`
	Engine string            `default:"expr" enum:"expr,cel,js" help:"Expression engine."`
	Arg    map[string]string `help:"Value bound under args, e.g. --arg lang=en."`
}

func (c *Query) Run(app *App) error {
	s, err := app.Strings()
	if err != nil {
		return err
	}
	evaluator, err := c.evaluator()
	if err != nil {
		return err
	}
	args := make(map[string]any, len(c.Arg))
	for k, v := range c.Arg {
		args[k] = v
	}
	entries, err := query.Filter(s, c.Expr,
		query.WithEvaluator(evaluator),
		query.WithArgs(args),
		query.WithEvaluatorLogger(query.SlogEvaluatorLogger(app.logger)),
	)
	if err != nil {
		return err
	}
	return app.entries(entries)
}

func (c *Query) evaluator() (query.Evaluator, error) {
	functions := query.StringFunctions()
	cache := query.NewLRUCache(64)
	switch c.Engine {
	case query.EngineCEL:
		return query.NewCELEvaluator(query.CELWithFunctionRegistry(functions), query.CELWithProgramCache(cache)), nil
	case query.EngineJS:
		if !query.JSAvailable() {
			return nil, fmt.Errorf("cli: js engine requires a build with the js_eval tag")
		}
		return query.NewJSEvaluator(query.JSWithFunctionRegistry(functions), query.JSWithProgramCache(cache)), nil
	default:
		return query.NewExprEvaluator(query.ExprWithFunctionRegistry(functions), query.ExprWithProgramCache(cache)), nil
	}
}

type Suggest struct {
	Key   string `arg:""`
	Limit int    `default:"5" help:"Maximum number of suggestions."`
}

func (c *Suggest) Run(app *App) error {
	s, err := app.Strings()
	if err != nil {
		return err
	}
	return app.lines(s.Suggest(c.Key, c.Limit))
}

type Export struct {
	Format string `default:"json" enum:"json,yaml" short:"f" help:"Output format."`
	Indent int    `default:"2" help:"Indent width; 0 prints compact JSON or flow YAML."`
}

func (c *Export) Run(app *App) error {
	s, err := app.Strings()
	if err != nil {
		return err
	}
	format, err := decode.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	payload, err := decode.Encode(app.ctx, format, s.Merged(), c.Indent)
	if err != nil {
		return err
	}
	if len(payload) > 0 && payload[len(payload)-1] != '\n' {
		payload = append(payload, '\n')
	}
	_, err = app.out.Write(payload)
	return err
}

func (a *App) lines(values []string) error {
	for _, value := range values {
		if _, err := fmt.Fprintln(a.out, value); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) entries(entries []strs.Provenance) error {
	for _, entry := range entries {
		if _, err := fmt.Fprintf(a.out, "%s\t%s\t%s\n", entry.Path, entry.Table, entry.Value.Text()); err != nil {
			return err
		}
	}
	return nil
}
