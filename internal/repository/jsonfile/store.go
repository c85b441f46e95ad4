package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"parking_app/internal/repository"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// DefaultCollections are created when the database file does not exist yet.
var DefaultCollections = []string{
	repository.CollectionUsers,
	repository.CollectionParking,
	repository.CollectionBookings,
}

// Store keeps every collection in memory and rewrites the whole file on each
// write. It is meant for a development store with a few hundred records.
type Store struct {
	mu   sync.RWMutex
	path string
	data map[string][]repository.Document
}

// Open loads path, creating it with empty default collections if missing.
// An empty path keeps the store in memory only.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: make(map[string][]repository.Document)}
	for _, name := range DefaultCollections {
		s.data[name] = []repository.Document{}
	}
	if path == "" {
		return s, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile.Open: %w", err)
	}
	if err := s.load(raw); err != nil {
		return nil, fmt.Errorf("jsonfile.Open %s: %w", path, err)
	}
	return s, nil
}

// NewFromJSON builds an in-memory store from a database document.
func NewFromJSON(raw []byte) (*Store, error) {
	s := &Store{data: make(map[string][]repository.Document)}
	if err := s.load(raw); err != nil {
		return nil, fmt.Errorf("jsonfile.NewFromJSON: %w", err)
	}
	return s, nil
}

func (s *Store) load(raw []byte) error {
	var decoded map[string][]repository.Document
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	for name, docs := range decoded {
		if docs == nil {
			docs = []repository.Document{}
		}
		s.data[name] = docs
	}
	return nil
}

func (s *Store) Collections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) List(ctx context.Context, collection string) ([]repository.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs, ok := s.data[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrUnknownCollection, collection)
	}
	out := make([]repository.Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, clone(doc))
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (repository.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, err := s.indexLocked(collection, id)
	if err != nil {
		return nil, err
	}
	return clone(s.data[collection][idx]), nil
}

func (s *Store) Create(ctx context.Context, collection string, doc repository.Document) (repository.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, ok := s.data[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrUnknownCollection, collection)
	}

	created := clone(doc)
	id := docID(created)
	if id == "" {
		id = uuid.NewString()
	}
	for _, existing := range docs {
		if docID(existing) == id {
			return nil, fmt.Errorf("%w: %s/%s", repository.ErrDuplicateEntry, collection, id)
		}
	}
	created["id"] = id

	s.data[collection] = append(docs, created)
	if err := s.persistLocked(); err != nil {
		s.data[collection] = docs
		return nil, err
	}
	return clone(created), nil
}

// Replace swaps the whole document, keeping the id from the path.
func (s *Store) Replace(ctx context.Context, collection, id string, doc repository.Document) (repository.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.indexLocked(collection, id)
	if err != nil {
		return nil, err
	}
	replaced := clone(doc)
	replaced["id"] = s.data[collection][idx]["id"]
	return s.swapLocked(collection, idx, replaced)
}

// Merge applies a shallow patch. The id cannot be changed.
func (s *Store) Merge(ctx context.Context, collection, id string, patch repository.Document) (repository.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.indexLocked(collection, id)
	if err != nil {
		return nil, err
	}
	merged := clone(s.data[collection][idx])
	for k, v := range patch {
		if k == "id" {
			continue
		}
		merged[k] = v
	}
	return s.swapLocked(collection, idx, merged)
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.indexLocked(collection, id)
	if err != nil {
		return err
	}
	docs := s.data[collection]
	remaining := make([]repository.Document, 0, len(docs)-1)
	remaining = append(remaining, docs[:idx]...)
	remaining = append(remaining, docs[idx+1:]...)
	s.data[collection] = remaining
	if err := s.persistLocked(); err != nil {
		s.data[collection] = docs
		return err
	}
	return nil
}

func (s *Store) swapLocked(collection string, idx int, doc repository.Document) (repository.Document, error) {
	previous := s.data[collection][idx]
	s.data[collection][idx] = doc
	if err := s.persistLocked(); err != nil {
		s.data[collection][idx] = previous
		return nil, err
	}
	return clone(doc), nil
}

func (s *Store) indexLocked(collection, id string) (int, error) {
	docs, ok := s.data[collection]
	if !ok {
		return -1, fmt.Errorf("%w: %s", repository.ErrUnknownCollection, collection)
	}
	for i, doc := range docs {
		if docID(doc) == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s/%s", repository.ErrNotFound, collection, id)
}

// persistLocked writes to a temp file in the same directory and renames it over
// the database so readers never see a half-written file.
func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	encoded, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jsonfile: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return fmt.Errorf("jsonfile: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: close: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: rename: %w", err)
	}
	return nil
}

// docID normalizes numeric ids (json-server style) to their string form.
func docID(doc repository.Document) string {
	switch v := doc["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func clone(doc repository.Document) repository.Document {
	out := make(repository.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
