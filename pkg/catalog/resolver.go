package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	strs "github.com/goliatone/go-strings"
)

// DefaultsTable names the lowest priority table added by ResolveWithDefaults.
const DefaultsTable = "defaults"

// Resolver orchestrates locale loads and stacks them into a single Strings.
type Resolver struct {
	Store Store
	// Options are passed to every Strings the resolver builds.
	Options []strs.Option
	// Logger receives one debug line per locale lookup. Nil disables it.
	Logger *slog.Logger
}

// Resolve loads the tables of LocaleChain(locales...) for domain, skipping
// locales the store does not have. The most specific locale wins.
func (r Resolver) Resolve(ctx context.Context, domain string, locales ...string) (*strs.Strings, error) {
	if err := r.validate(domain); err != nil {
		return nil, err
	}
	chain := LocaleChain(locales...)
	if len(chain) == 0 {
		return nil, fmt.Errorf("catalog: at least one locale is required")
	}

	tables, err := r.loadTables(ctx, domain, chain)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w for domain %q (locales %v)", ErrNoTables, domain, chain)
	}
	return r.build(tables)
}

// ResolveWithDefaults is Resolve with defaults stacked below every locale, so
// a domain always resolves even when the store has none of the locales.
func (r Resolver) ResolveWithDefaults(ctx context.Context, domain string, defaults strs.Value, locales ...string) (*strs.Strings, error) {
	if err := r.validate(domain); err != nil {
		return nil, err
	}
	tables, err := r.loadTables(ctx, domain, LocaleChain(locales...))
	if err != nil {
		return nil, err
	}
	defaultsTable, err := strs.NewTable(DefaultsTable, defaults, strs.WithTableLabel("Defaults"))
	if err != nil {
		return nil, fmt.Errorf("catalog: defaults: %w", err)
	}
	return r.build(append(tables, defaultsTable))
}

// Mutate loads one table, applies fn, validates the result, then saves it.
// When meta carries an ETag it must match the stored one.
func (r Resolver) Mutate(ctx context.Context, ref Ref, meta Meta, fn Mutator) (*strs.Strings, Meta, error) {
	if r.Store == nil {
		return nil, Meta{}, fmt.Errorf("catalog: store is required")
	}
	id, err := ref.Identifier()
	if err != nil {
		return nil, Meta{}, err
	}
	if fn == nil {
		return nil, Meta{}, fmt.Errorf("catalog: mutator is required")
	}

	table, loadedMeta, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("catalog: load %q: %w", id, err)
	}
	if !ok {
		table = strs.Mapping(nil)
		loadedMeta = Meta{}
	}

	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return nil, loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	if err := fn(&table); err != nil {
		return nil, loadedMeta, err
	}

	locale := NormalizeLocale(ref.Locale)
	if _, err := strs.NewTable(locale, table); err != nil {
		return nil, loadedMeta, err
	}

	saveMeta := mergeMeta(loadedMeta, meta)
	saveMeta.SnapshotID = meta.SnapshotID
	saveMeta.ETag = ""
	saveMeta.UpdatedAt = time.Time{}
	savedMeta, err := r.Store.Save(ctx, ref, table, saveMeta)
	if err != nil {
		return nil, loadedMeta, fmt.Errorf("catalog: save %q: %w", id, err)
	}

	saved, err := newLocaleTable(ref, table, savedMeta)
	if err != nil {
		return nil, loadedMeta, err
	}
	s, err := r.build([]strs.Table{saved})
	if err != nil {
		return nil, loadedMeta, err
	}
	return s, savedMeta, nil
}

func (r Resolver) validate(domain string) error {
	if r.Store == nil {
		return fmt.Errorf("catalog: store is required")
	}
	if domain == "" {
		return fmt.Errorf("catalog: domain is required")
	}
	return nil
}

func (r Resolver) loadTables(ctx context.Context, domain string, chain []string) ([]strs.Table, error) {
	tables := make([]strs.Table, 0, len(chain))
	for _, locale := range chain {
		ref := Ref{Domain: domain, Locale: locale}
		root, meta, ok, err := r.Store.Load(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("catalog: load %q for locale %q: %w", domain, locale, err)
		}
		r.logLoad(ctx, ref, ok)
		if !ok {
			continue
		}
		table, err := newLocaleTable(ref, root, meta)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func newLocaleTable(ref Ref, root strs.Value, meta Meta) (strs.Table, error) {
	id, err := ref.Identifier()
	if err != nil {
		return strs.Table{}, err
	}
	opts := []strs.TableOption{strs.WithTableLabel(id)}
	if meta.SnapshotID != "" {
		opts = append(opts, strs.WithSnapshotID(meta.SnapshotID))
	}
	if len(meta.Extra) > 0 {
		extra := make(map[string]any, len(meta.Extra))
		for k, v := range meta.Extra {
			extra[k] = v
		}
		opts = append(opts, strs.WithTableMetadata(extra))
	}
	table, err := strs.NewTable(NormalizeLocale(ref.Locale), root, opts...)
	if err != nil {
		return strs.Table{}, fmt.Errorf("catalog: table %q: %w", id, err)
	}
	return table, nil
}

func (r Resolver) build(tables []strs.Table) (*strs.Strings, error) {
	s, err := strs.New(tables, r.Options...)
	if err != nil {
		return nil, fmt.Errorf("catalog: stack: %w", err)
	}
	return s, nil
}

func (r Resolver) logLoad(ctx context.Context, ref Ref, found bool) {
	if r.Logger == nil {
		return
	}
	r.Logger.DebugContext(ctx, "catalog: load",
		slog.String("domain", ref.Domain),
		slog.String("locale", ref.Locale),
		slog.Bool("found", found),
	)
}
