package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	strs "github.com/goliatone/go-strings"
	"github.com/goliatone/go-strings/pkg/catalog"
)

type recordingStore struct {
	*catalog.MemoryStore
	saves int
	err   error
}

func (s *recordingStore) Save(ctx context.Context, ref catalog.Ref, table strs.Value, meta catalog.Meta) (catalog.Meta, error) {
	s.saves++
	if s.err != nil {
		return catalog.Meta{}, s.err
	}
	return s.MemoryStore.Save(ctx, ref, table, meta)
}

func patch(t *testing.T, raw map[string]any) catalog.Mutator {
	return func(v *strs.Value) error {
		*v = strs.MergeValues(mustValue(t, raw), *v)
		return nil
	}
}

func TestResolverMutateSavesAndReturnsStrings(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{MemoryStore: seededStore(t)}
	ref := catalog.Ref{Domain: "app", Locale: "en"}
	_, before, _, err := store.Load(ctx, ref)
	require.NoError(t, err)

	s, meta, err := catalog.Resolver{Store: store}.Mutate(ctx, ref, catalog.Meta{ETag: before.ETag}, patch(t, map[string]any{"farewell": "Later"}))
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, "Later", s.GetString("farewell"))
	assert.Equal(t, "Hello {{name}}", s.GetString("greeting"))
	assert.NotEqual(t, before.ETag, meta.ETag)
	assert.NotEqual(t, before.SnapshotID, meta.SnapshotID)

	reloaded, _, ok, err := store.Load(ctx, ref)
	require.NoError(t, err)
	require.True(t, ok)
	farewell, _ := reloaded.Get("farewell").Str()
	assert.Equal(t, "Later", farewell)
}

func TestResolverMutateETagMismatch(t *testing.T) {
	store := &recordingStore{MemoryStore: seededStore(t)}
	ref := catalog.Ref{Domain: "app", Locale: "en"}

	_, _, err := catalog.Resolver{Store: store}.Mutate(context.Background(), ref, catalog.Meta{ETag: "stale"}, patch(t, map[string]any{"x": "y"}))
	assert.ErrorIs(t, err, catalog.ErrETagMismatch)
	assert.Zero(t, store.saves)
}

func TestResolverMutateCreatesMissingTable(t *testing.T) {
	store := &recordingStore{MemoryStore: catalog.NewMemoryStore()}
	ref := catalog.Ref{Domain: "app", Locale: "fr"}

	s, _, err := catalog.Resolver{Store: store}.Mutate(context.Background(), ref, catalog.Meta{}, patch(t, map[string]any{"greeting": "Salut"}))
	require.NoError(t, err)
	assert.Equal(t, "Salut", s.GetString("greeting"))
	assert.Equal(t, 1, store.saves)
}

func TestResolverMutateRejectsScalarRoot(t *testing.T) {
	store := &recordingStore{MemoryStore: seededStore(t)}
	ref := catalog.Ref{Domain: "app", Locale: "en"}

	_, _, err := catalog.Resolver{Store: store}.Mutate(context.Background(), ref, catalog.Meta{}, func(v *strs.Value) error {
		*v = strs.String("flat")
		return nil
	})
	assert.ErrorIs(t, err, strs.ErrInvalidTableRoot)
	assert.Zero(t, store.saves)
}

func TestResolverMutatePropagatesErrors(t *testing.T) {
	ref := catalog.Ref{Domain: "app", Locale: "en"}
	boom := errors.New("boom")

	store := &recordingStore{MemoryStore: seededStore(t)}
	_, _, err := catalog.Resolver{Store: store}.Mutate(context.Background(), ref, catalog.Meta{}, func(*strs.Value) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, store.saves)

	store = &recordingStore{MemoryStore: seededStore(t), err: boom}
	_, _, err = catalog.Resolver{Store: store}.Mutate(context.Background(), ref, catalog.Meta{}, patch(t, map[string]any{"x": "y"}))
	assert.ErrorIs(t, err, boom)

	_, _, err = catalog.Resolver{Store: store}.Mutate(context.Background(), ref, catalog.Meta{}, nil)
	assert.Error(t, err)
}
