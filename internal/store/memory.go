package store

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is an in-memory DocumentStore with the same field-level
// merge semantics as the mongo implementation. Used in tests and as a
// view-only fallback when no database is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]any // "collection/id" -> document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]any)}
}

func key(collection, id string) string { return collection + "/" + id }

func (s *MemoryStore) Get(_ context.Context, collection, id string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[key(collection, id)]
	if !ok {
		return nil, nil
	}
	return deepCopy(doc), nil
}

func (s *MemoryStore) Merge(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[key(collection, id)]
	if !ok {
		doc = make(map[string]any)
		s.docs[key(collection, id)] = doc
	}
	for k, v := range fields {
		setField(doc, k, v)
	}
	return nil
}

func (s *MemoryStore) Append(_ context.Context, collection, id, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[key(collection, id)]
	if !ok {
		doc = make(map[string]any)
		s.docs[key(collection, id)] = doc
	}
	arr, _ := doc[field].([]any)
	doc[field] = append(arr, value)
	return nil
}

// setField applies one possibly-dotted field path into the document,
// creating intermediate maps as mongo's $set would.
func setField(doc map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := doc
	for i, part := range parts {
		if i == len(parts)-1 {
			cur[part] = value
			return
		}
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
}

func deepCopy(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch tv := v.(type) {
		case map[string]any:
			out[k] = deepCopy(tv)
		case []any:
			cp := make([]any, len(tv))
			copy(cp, tv)
			out[k] = cp
		default:
			out[k] = v
		}
	}
	return out
}
