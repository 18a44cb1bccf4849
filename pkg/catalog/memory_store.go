package catalog

import (
	"context"
	"sync"

	strs "github.com/goliatone/go-strings"
)

// MemoryStore is a minimal in-memory Store intended for tests and examples.
// It uses Ref.Identifier() as its deterministic key.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

type memoryRecord struct {
	table strs.Value
	meta  Meta
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]memoryRecord{}}
}

func (s *MemoryStore) Load(_ context.Context, ref Ref) (strs.Value, Meta, bool, error) {
	key, err := ref.Identifier()
	if err != nil {
		return strs.Value{}, Meta{}, false, err
	}

	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return strs.Value{}, Meta{}, false, nil
	}
	return record.table, cloneMeta(record.meta), true, nil
}

func (s *MemoryStore) Save(_ context.Context, ref Ref, table strs.Value, meta Meta) (Meta, error) {
	key, err := ref.Identifier()
	if err != nil {
		return Meta{}, err
	}
	meta = stamp(meta, table)

	s.mu.Lock()
	s.records[key] = memoryRecord{table: table, meta: cloneMeta(meta)}
	s.mu.Unlock()
	return cloneMeta(meta), nil
}

// Put seeds a table, computing its ETag.
func (s *MemoryStore) Put(ref Ref, root any) error {
	value, err := strs.FromAny(root)
	if err != nil {
		return err
	}
	_, err = s.Save(context.Background(), ref, value, Meta{})
	return err
}
