package store

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/leifuss/hestiavizredux/internal/model"
)

func TestBookTextRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	book := &model.BookText{
		ID:    1,
		Title: model.BookTitle(1),
		Chapters: []model.Chapter{
			{ID: 1, Text: "Croesus was king.", Places: []model.PlaceMention{
				{PlaceID: "550595", Name: "Sardis", StartOffset: 0, EndOffset: 6},
			}},
			{ID: 17, Text: "Then he arrived."},
		},
	}

	if s.BookTextExists(1) {
		t.Error("book text should not exist before writing")
	}
	if err := s.WriteBookText(book); err != nil {
		t.Fatalf("WriteBookText: %v", err)
	}
	if !s.BookTextExists(1) {
		t.Error("book text should exist after writing")
	}

	got, err := s.ReadBookText(1)
	if err != nil {
		t.Fatalf("ReadBookText: %v", err)
	}
	if got.Title != "Book 1: Clio" {
		t.Errorf("unexpected title %q", got.Title)
	}
	if len(got.Chapters) != 2 || got.Chapters[1].ID != 17 {
		t.Errorf("chapters lost in round trip: %+v", got.Chapters)
	}
	if got.Chapters[0].Places[0].PlaceID != "550595" {
		t.Errorf("mention lost in round trip: %+v", got.Chapters[0].Places)
	}
}

func TestWritePlacesAndIndex(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	uri := "http://pleiades.stoa.org/places/570"
	places := map[string]*model.Place{
		"570": {ID: "570", Name: "Halicarnassus", Lat: 37.1, Lng: 27.8,
			PleiadesURI: &uri, PlaceType: "settlement",
			Occurrences: []model.Occurrence{{Book: 1, Chapter: 17}}},
	}
	if err := s.WritePlaces(places); err != nil {
		t.Fatalf("WritePlaces: %v", err)
	}

	got, err := s.ReadPlaces()
	if err != nil {
		t.Fatalf("ReadPlaces: %v", err)
	}
	if len(got) != 1 || got["570"].Name != "Halicarnassus" {
		t.Errorf("places lost in round trip: %+v", got)
	}

	idx := &model.BooksIndex{Books: []model.BookSummary{
		{ID: 1, Title: model.BookTitle(1), ChapterCount: 216, MaxChapterID: 216, PlaceCount: 3},
	}}
	if err := s.WriteBooksIndex(idx); err != nil {
		t.Fatalf("WriteBooksIndex: %v", err)
	}
	gotIdx, err := s.ReadBooksIndex()
	if err != nil {
		t.Fatalf("ReadBooksIndex: %v", err)
	}
	if len(gotIdx.Books) != 1 || gotIdx.Books[0].ChapterCount != 216 {
		t.Errorf("index lost in round trip: %+v", gotIdx)
	}
}

func TestWritesAreDeterministic(t *testing.T) {
	// Re-running on unchanged inputs must produce byte-identical files.
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	places := map[string]*model.Place{
		"b": {ID: "b", Name: "Beta"},
		"a": {ID: "a", Name: "Alpha"},
		"c": {ID: "c", Name: "Gamma"},
	}
	if err := s.WritePlaces(places); err != nil {
		t.Fatalf("WritePlaces: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(dir, "places.json"))
	if err != nil {
		t.Fatalf("reading places.json: %v", err)
	}

	if err := s.WritePlaces(places); err != nil {
		t.Fatalf("WritePlaces again: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "places.json"))
	if err != nil {
		t.Fatalf("reading places.json: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("repeated writes produced different bytes")
	}
}

func TestWritePlainText(t *testing.T) {
	// SetEscapeHTML(false) keeps quotes and angle-bracket-free prose readable.
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	book := &model.BookText{ID: 2, Title: model.BookTitle(2), Chapters: []model.Chapter{
		{ID: 1, Text: `he said “come & see”`},
	}}
	if err := s.WriteBookText(book); err != nil {
		t.Fatalf("WriteBookText: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "book-2-text.json"))
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if !bytes.Contains(data, []byte("come & see")) {
		t.Errorf("ampersand was escaped: %s", data)
	}
}
