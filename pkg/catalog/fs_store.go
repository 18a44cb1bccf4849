package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	strs "github.com/goliatone/go-strings"
	"github.com/goliatone/go-strings/internal/decode"
)

// TableFileBase is the file name, without extension, each locale is stored under:
// <domain>/<locale>/strings.{json,yaml,yml}.
const TableFileBase = "strings"

var tableExtensions = []string{".json", ".yaml", ".yml"}

// FSStore reads tables from a file tree. Stores built with NewFSStore are
// read-only; NewDirStore can also save, always as indented JSON.
type FSStore struct {
	fsys    fs.FS
	dir     string
	decoder *decode.Decoder
}

// FSStoreOption configures an FSStore.
type FSStoreOption func(*FSStore)

// WithDecoder replaces the decoder used for table files, usually to add hooks.
func WithDecoder(decoder *decode.Decoder) FSStoreOption {
	return func(s *FSStore) {
		if decoder != nil {
			s.decoder = decoder
		}
	}
}

// NewFSStore reads tables from fsys (an embed.FS or fstest.MapFS, for example).
func NewFSStore(fsys fs.FS, opts ...FSStoreOption) *FSStore {
	return newFSStore(fsys, "", opts)
}

// NewDirStore reads and writes tables under dir.
func NewDirStore(dir string, opts ...FSStoreOption) *FSStore {
	return newFSStore(os.DirFS(dir), dir, opts)
}

func newFSStore(fsys fs.FS, dir string, opts []FSStoreOption) *FSStore {
	s := &FSStore{fsys: fsys, dir: dir, decoder: decode.NewDecoder()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *FSStore) Load(_ context.Context, ref Ref) (strs.Value, Meta, bool, error) {
	if _, err := ref.Identifier(); err != nil {
		return strs.Value{}, Meta{}, false, err
	}
	for _, name := range tableFiles(ref) {
		payload, err := fs.ReadFile(s.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return strs.Value{}, Meta{}, false, fmt.Errorf("catalog: read %s: %w", name, err)
		}
		format, err := decode.FormatFromPath(name)
		if err != nil {
			return strs.Value{}, Meta{}, false, err
		}
		value, err := s.decoder.Decode(decode.Context{Source: name, Format: format}, payload)
		if err != nil {
			return strs.Value{}, Meta{}, false, err
		}
		meta := Meta{ETag: ETag(value)}
		if info, err := fs.Stat(s.fsys, name); err == nil {
			meta.UpdatedAt = info.ModTime().UTC()
		}
		meta.SnapshotID = meta.ETag
		return value, meta, true, nil
	}
	return strs.Value{}, Meta{}, false, nil
}

// Save writes table as <domain>/<locale>/strings.json, removing YAML variants
// that would otherwise shadow or be shadowed by it.
func (s *FSStore) Save(ctx context.Context, ref Ref, table strs.Value, meta Meta) (Meta, error) {
	if s.dir == "" {
		return Meta{}, ErrReadOnly
	}
	if _, err := ref.Identifier(); err != nil {
		return Meta{}, err
	}
	files := tableFiles(ref)
	target := filepath.Join(s.dir, filepath.FromSlash(files[0]))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return Meta{}, fmt.Errorf("catalog: mkdir: %w", err)
	}

	payload, err := decode.Encode(ctx, decode.FormatJSON, table, 2)
	if err != nil {
		return Meta{}, fmt.Errorf("catalog: encode %s: %w", files[0], err)
	}
	if err := os.WriteFile(target, append(payload, '\n'), 0o644); err != nil {
		return Meta{}, fmt.Errorf("catalog: write %s: %w", files[0], err)
	}
	for _, name := range files[1:] {
		stale := filepath.Join(s.dir, filepath.FromSlash(name))
		if err := os.Remove(stale); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Meta{}, fmt.Errorf("catalog: remove %s: %w", name, err)
		}
	}

	out := stamp(meta, table)
	out.SnapshotID = out.ETag
	return out, nil
}

func tableFiles(ref Ref) []string {
	locale := NormalizeLocale(ref.Locale)
	files := make([]string, len(tableExtensions))
	for i, ext := range tableExtensions {
		files[i] = path.Join(ref.Domain, locale, TableFileBase+ext)
	}
	return files
}
