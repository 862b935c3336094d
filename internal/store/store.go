// Package store persists pipeline artifacts as JSON files in the data
// directory. The inter-pass contract is filesystem JSON: Pass 2 depends
// only on the files Pass 1 wrote, never on shared in-memory state. Writes
// are fully-built-then-written and deterministic, so re-running on
// unchanged inputs produces byte-identical files.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leifuss/hestiavizredux/internal/model"
)

// Store manages all data persistence for the pipeline.
type Store struct {
	DataDir string
}

// New creates the data directory if needed and returns a store over it.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Store{DataDir: dataDir}, nil
}

func bookTextName(n int) string { return fmt.Sprintf("book-%d-text.json", n) }
func bookPlacesName(n int) string { return fmt.Sprintf("book-%d.json", n) }

func (s *Store) writeJSON(name string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.DataDir, name), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.DataDir, name))
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

// WriteBookText stores a book's Pass-1 output (book-<n>-text.json).
func (s *Store) WriteBookText(b *model.BookText) error {
	return s.writeJSON(bookTextName(b.ID), b)
}

// ReadBookText loads a book's Pass-1 output.
func (s *Store) ReadBookText(n int) (*model.BookText, error) {
	var b model.BookText
	if err := s.readJSON(bookTextName(n), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// BookTextExists checks whether a book's text has been extracted.
func (s *Store) BookTextExists(n int) bool {
	_, err := os.Stat(filepath.Join(s.DataDir, bookTextName(n)))
	return err == nil
}

// WriteBooksIndex stores the books.json index.
func (s *Store) WriteBooksIndex(idx *model.BooksIndex) error {
	return s.writeJSON("books.json", idx)
}

// ReadBooksIndex loads the books.json index.
func (s *Store) ReadBooksIndex() (*model.BooksIndex, error) {
	var idx model.BooksIndex
	if err := s.readJSON("books.json", &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// WriteBookPlaces stores a book's Pass-2 place references (book-<n>.json).
func (s *Store) WriteBookPlaces(b *model.BookPlaces) error {
	return s.writeJSON(bookPlacesName(b.ID), b)
}

// BookPlacesExists checks whether a book's place references were written.
func (s *Store) BookPlacesExists(n int) bool {
	_, err := os.Stat(filepath.Join(s.DataDir, bookPlacesName(n)))
	return err == nil
}

// WritePlaces stores the gazetteer (places.json). Map keys marshal in
// sorted order, keeping the output deterministic.
func (s *Store) WritePlaces(places map[string]*model.Place) error {
	return s.writeJSON("places.json", &model.PlacesFile{Places: places})
}

// ReadPlaces loads the gazetteer.
func (s *Store) ReadPlaces() (map[string]*model.Place, error) {
	var pf model.PlacesFile
	if err := s.readJSON("places.json", &pf); err != nil {
		return nil, err
	}
	return pf.Places, nil
}
