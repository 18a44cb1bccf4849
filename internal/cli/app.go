package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	strs "github.com/goliatone/go-strings"
	"github.com/goliatone/go-strings/internal/decode"
	"github.com/goliatone/go-strings/pkg/catalog"
)

// ErrNoSource is returned when neither --table nor a catalog directory is set.
var ErrNoSource = errors.New("cli: no tables: pass --table, --dir or --redis")

// App is bound to every command's Run method.
type App struct {
	ctx    context.Context
	cli    *CLI
	cfg    Config
	out    io.Writer
	exit   func(int)
	logger *slog.Logger

	loaded  *strs.Strings
	closers []io.Closer
}

func newApp(ctx context.Context, cli *CLI, cfg Config, out io.Writer, exit func(int), logger *slog.Logger) *App {
	return &App{ctx: ctx, cli: cli, cfg: cfg, out: out, exit: exit, logger: logger}
}

// Strings loads the tables named on the command line once.
func (a *App) Strings() (*strs.Strings, error) {
	if a.loaded != nil {
		return a.loaded, nil
	}
	var (
		s   *strs.Strings
		err error
	)
	if len(a.cli.Table) > 0 {
		s, err = a.fromFiles()
	} else {
		s, err = a.fromCatalog()
	}
	if err != nil {
		return nil, err
	}
	a.loaded = s
	return s, nil
}

func (a *App) options() []strs.Option {
	opts := []strs.Option{strs.WithResolveLogger(strs.SlogResolveLogger(a.logger))}
	if seed := a.seed(); seed != 0 {
		opts = append(opts, strs.WithRandomSource(rand.New(rand.NewPCG(seed, seed))))
	}
	if locales := a.locales(); len(locales) > 0 {
		if tag, err := language.Parse(locales[0]); err == nil {
			opts = append(opts, strs.WithLanguage(tag))
		}
	}
	return opts
}

func (a *App) fromFiles() (*strs.Strings, error) {
	decoder := decode.NewDecoder(decode.WithPostHook(decode.RequireContainer()))
	tables := make([]strs.Table, 0, len(a.cli.Table))
	for _, path := range a.cli.Table {
		format, err := decode.FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		payload, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cli: read table: %w", err)
		}
		table, err := decoder.DecodeTable(decode.Context{Source: path, Format: format}, tableName(path), payload, strs.WithTableLabel(path))
		if err != nil {
			return nil, err
		}
		a.logger.DebugContext(a.ctx, "table loaded", slog.String("path", path), slog.String("table", table.Name))
		tables = append(tables, table)
	}
	return strs.New(tables, a.options()...)
}

func (a *App) fromCatalog() (*strs.Strings, error) {
	var store catalog.Store
	switch {
	case a.cli.Redis:
		client, err := catalog.Connect(a.ctx, a.cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client)
		store = catalog.NewRedisStore(client,
			catalog.WithKeyPrefix(a.cfg.Redis.KeyPrefix),
			catalog.WithTTL(a.cfg.Redis.TTL),
		)
	case firstNonEmpty(a.cli.Dir, a.cfg.Dir) != "":
		store = catalog.NewDirStore(firstNonEmpty(a.cli.Dir, a.cfg.Dir))
	default:
		return nil, ErrNoSource
	}

	resolver := catalog.Resolver{Store: store, Options: a.options(), Logger: a.logger}
	return resolver.Resolve(a.ctx, firstNonEmpty(a.cli.Domain, a.cfg.Domain), a.locales()...)
}

func (a *App) locales() []string {
	if len(a.cli.Locale) > 0 {
		return a.cli.Locale
	}
	return a.cfg.Locales
}

func (a *App) seed() uint64 {
	if a.cli.Seed != 0 {
		return a.cli.Seed
	}
	return a.cfg.Seed
}

func (a *App) close() {
	for _, closer := range a.closers {
		if err := closer.Close(); err != nil {
			a.logger.Warn("close failed", slog.Any("error", err))
		}
	}
}

// tableName derives a table name from a file path: "locales/en.json" -> "en".
func tableName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
