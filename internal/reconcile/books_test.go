package reconcile

import (
	"testing"

	"github.com/leifuss/hestiavizredux/internal/model"
)

func TestBuildBookPlaces(t *testing.T) {
	anns := []model.Annotation{
		{Book: 1, Chapter: 17, PlaceID: "570", Quote: "Halicarnassus", CharOffset: 900},
		{Book: 1, Chapter: 17, PlaceID: "hestia-susa", Quote: "Susa", CharOffset: 850},
		{Book: 1, Chapter: 2, PlaceID: "570", Quote: "Halicarnassus", CharOffset: 100},
		{Book: 2, Chapter: 1, PlaceID: "x", Quote: "X", CharOffset: 5},
		{Book: 12, Chapter: 1, PlaceID: "y", Quote: "Y", CharOffset: 5}, // outside 1..9, dropped
	}

	books := BuildBookPlaces(anns)
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}

	b1 := books[1]
	if b1.Title != "Book 1: Clio" {
		t.Errorf("unexpected title %q", b1.Title)
	}
	if len(b1.Chapters) != 2 {
		t.Fatalf("expected 2 chapters in book 1, got %d", len(b1.Chapters))
	}
	// Chapters sorted by id.
	if b1.Chapters[0].ID != 2 || b1.Chapters[1].ID != 17 {
		t.Errorf("chapters not sorted: %d, %d", b1.Chapters[0].ID, b1.Chapters[1].ID)
	}
	// Places within a chapter sorted by raw offset.
	ch17 := b1.Chapters[1]
	if len(ch17.Places) != 2 {
		t.Fatalf("expected 2 places in chapter 17, got %d", len(ch17.Places))
	}
	if ch17.Places[0].CharOffset != 850 || ch17.Places[1].CharOffset != 900 {
		t.Errorf("places not sorted by offset: %v", ch17.Places)
	}

	if _, ok := books[12]; ok {
		t.Error("book 12 should have been dropped")
	}
}

func TestBuildBookPlacesUnassignedChapter(t *testing.T) {
	anns := []model.Annotation{{Book: 3, PlaceID: "p", Quote: "P", CharOffset: 1}}

	books := BuildBookPlaces(anns)
	if len(books[3].Chapters) != 1 || books[3].Chapters[0].ID != 1 {
		t.Errorf("expected unassigned annotation under chapter 1, got %v", books[3].Chapters)
	}
}

func TestBuildIndex(t *testing.T) {
	info := map[int]ChapterInfo{
		1: {Count: 216, MaxID: 216},
		2: {Count: 182, MaxID: 183},
	}
	books := map[int]*model.BookPlaces{
		1: {ID: 1, Chapters: []model.ChapterPlaces{
			{ID: 1, Places: []model.PlaceRef{{PlaceID: "a"}, {PlaceID: "b"}}},
			{ID: 2, Places: []model.PlaceRef{{PlaceID: "c"}}},
		}},
	}

	idx := BuildIndex(info, books)
	if len(idx.Books) != 9 {
		t.Fatalf("expected 9 index entries, got %d", len(idx.Books))
	}

	b1 := idx.Books[0]
	if b1.ID != 1 || b1.ChapterCount != 216 || b1.MaxChapterID != 216 {
		t.Errorf("unexpected book 1 summary: %+v", b1)
	}
	if b1.PlaceCount != 3 {
		t.Errorf("expected place count 3, got %d", b1.PlaceCount)
	}

	b2 := idx.Books[1]
	if b2.MaxChapterID != 183 {
		t.Errorf("expected max chapter id 183, got %d", b2.MaxChapterID)
	}
	if b2.PlaceCount != 0 {
		t.Errorf("expected place count 0 for book without annotations, got %d", b2.PlaceCount)
	}

	// Books without extracted text get the placeholder counts.
	b3 := idx.Books[2]
	if b3.ChapterCount != 100 || b3.MaxChapterID != 100 {
		t.Errorf("expected placeholder counts for book 3, got %+v", b3)
	}
	if b3.Title != "Book 3: Thalia" {
		t.Errorf("unexpected title %q", b3.Title)
	}
}
