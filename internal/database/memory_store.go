package database

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemoryDocumentStore is an in-memory DocumentStore with the same
// versioning semantics as the SQL store. Used by service tests and local
// development without a database.
type MemoryDocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]*memoryDocument
}

type memoryDocument struct {
	version int64
	data    []byte
}

// NewMemoryDocumentStore creates an empty in-memory store
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		collections: make(map[string]map[string]*memoryDocument),
	}
}

// GetByID loads one document and reports its version
func (s *MemoryDocumentStore) GetByID(collection, id string, dest interface{}) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return 0, ErrDocumentNotFound
	}
	if err := json.Unmarshal(doc.data, dest); err != nil {
		return 0, fmt.Errorf("failed to decode document %s/%s: %w", collection, id, err)
	}
	return doc.version, nil
}

// List loads a whole collection ordered by id
func (s *MemoryDocumentStore) List(collection string, dest interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decodeRows(s.sortedRows(collection, nil), dest)
}

// QueryByField matches documents on text equality of a top-level JSON field
func (s *MemoryDocumentStore) QueryByField(collection, field string, value interface{}, dest interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := fmt.Sprint(value)
	match := func(data []byte) bool {
		var fields map[string]interface{}
		if err := json.Unmarshal(data, &fields); err != nil {
			return false
		}
		got, ok := fields[field]
		return ok && fmt.Sprint(got) == want
	}
	return decodeRows(s.sortedRows(collection, match), dest)
}

// Put upserts a document, bumping its version
func (s *MemoryDocumentStore) Put(collection, id string, doc interface{}) (int64, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.ensureCollection(collection)[id]
	version := int64(1)
	if ok {
		version = existing.version + 1
	}
	s.collections[collection][id] = &memoryDocument{version: version, data: data}
	return version, nil
}

// PutVersioned writes only when the stored version matches expectedVersion
func (s *MemoryDocumentStore) PutVersioned(collection, id string, doc interface{}, expectedVersion int64) (int64, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.ensureCollection(collection)[id]
	if expectedVersion == 0 {
		if ok {
			return 0, ErrVersionConflict
		}
		s.collections[collection][id] = &memoryDocument{version: 1, data: data}
		return 1, nil
	}
	if !ok {
		return 0, ErrDocumentNotFound
	}
	if existing.version != expectedVersion {
		return 0, ErrVersionConflict
	}
	s.collections[collection][id] = &memoryDocument{version: expectedVersion + 1, data: data}
	return expectedVersion + 1, nil
}

// DeleteByID removes a document
func (s *MemoryDocumentStore) DeleteByID(collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return ErrDocumentNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryDocumentStore) ensureCollection(collection string) map[string]*memoryDocument {
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]*memoryDocument)
	}
	return s.collections[collection]
}

// sortedRows returns document payloads ordered by id, optionally filtered.
// Caller must hold at least the read lock.
func (s *MemoryDocumentStore) sortedRows(collection string, match func([]byte) bool) [][]byte {
	ids := make([]string, 0, len(s.collections[collection]))
	for id := range s.collections[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([][]byte, 0, len(ids))
	for _, id := range ids {
		data := s.collections[collection][id].data
		if match == nil || match(data) {
			rows = append(rows, data)
		}
	}
	return rows
}
