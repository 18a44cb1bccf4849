package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	strs "github.com/goliatone/go-strings"
)

var (
	// ErrETagMismatch indicates an optimistic concurrency conflict on Mutate.
	ErrETagMismatch = errors.New("catalog: etag mismatch")
	// ErrReadOnly is returned by stores that cannot persist.
	ErrReadOnly = errors.New("catalog: store is read-only")
	// ErrNoTables indicates that none of the requested locales had a table.
	ErrNoTables = errors.New("catalog: no tables found")
	// ErrInvalidRef indicates a Ref with an empty or malformed component.
	ErrInvalidRef = errors.New("catalog: invalid ref")
)

// Ref identifies one persisted table: one locale of one string domain.
type Ref struct {
	Domain string
	Locale string
}

// Meta is storage-owned metadata used for trace/audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads/saves one table for a single reference.
type Store interface {
	Load(ctx context.Context, ref Ref) (table strs.Value, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, table strs.Value, meta Meta) (Meta, error)
}

// Mutator edits a loaded table in place. It may replace the value entirely.
type Mutator func(*strs.Value) error

// Identifier returns "<domain>/<locale>" with the locale normalised.
func (r Ref) Identifier() (string, error) {
	domain := strings.TrimSpace(r.Domain)
	if domain == "" {
		return "", fmt.Errorf("%w: domain is required", ErrInvalidRef)
	}
	if strings.ContainsAny(domain, "/\\:") || domain == "." || domain == ".." {
		return "", fmt.Errorf("%w: domain %q", ErrInvalidRef, r.Domain)
	}
	locale := NormalizeLocale(r.Locale)
	if locale == "" {
		return "", fmt.Errorf("%w: locale is required", ErrInvalidRef)
	}
	if strings.ContainsAny(locale, "/\\:.") {
		return "", fmt.Errorf("%w: locale %q", ErrInvalidRef, r.Locale)
	}
	return domain + "/" + locale, nil
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}

func cloneMeta(meta Meta) Meta {
	out := meta
	if meta.Extra == nil {
		return out
	}
	out.Extra = make(map[string]string, len(meta.Extra))
	for k, v := range meta.Extra {
		out.Extra[k] = v
	}
	return out
}

// ETag returns the content hash stores attach to a saved table.
func ETag(table strs.Value) string {
	payload, err := json.Marshal(table)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// stamp fills the storage-owned fields of meta before a save.
func stamp(meta Meta, table strs.Value) Meta {
	out := cloneMeta(meta)
	out.ETag = ETag(table)
	if out.SnapshotID == "" {
		out.SnapshotID = uuid.NewString()
	}
	if out.UpdatedAt.IsZero() {
		out.UpdatedAt = time.Now().UTC()
	}
	return out
}
