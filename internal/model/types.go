package model

import "fmt"

// BookTitles maps each of the nine Books of Herodotus to its Muse title.
var BookTitles = map[int]string{
	1: "Clio",
	2: "Euterpe",
	3: "Thalia",
	4: "Melpomene",
	5: "Terpsichore",
	6: "Erato",
	7: "Polymnia",
	8: "Urania",
	9: "Calliope",
}

// BookTitle returns the display title for a book, e.g. "Book 1: Clio".
func BookTitle(n int) string {
	return fmt.Sprintf("Book %d: %s", n, BookTitles[n])
}

// PlaceMention is one inline place reference found in a chapter's cleaned
// text. Offsets are byte positions into that chapter's Text and the span
// covers exactly the display name.
type PlaceMention struct {
	PlaceID     string `json:"placeId"`
	Name        string `json:"name"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
}

// Chapter is one segmented chapter of a book with its cleaned text.
type Chapter struct {
	ID     int            `json:"id"`
	Text   string         `json:"text"`
	Places []PlaceMention `json:"places"`
}

// BookText is the Pass-1 output for one book (book-<n>-text.json).
type BookText struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Chapters []Chapter `json:"chapters"`
}

// Annotation is one retained row from the Recogito CSV export. CharOffset
// is the annotator's book-relative offset over a different serialization of
// the text than Pass 1's; Chapter is filled in during reconciliation (zero
// means unassigned).
type Annotation struct {
	UUID       string
	Book       int
	Quote      string
	CharOffset int
	PlaceID    string
	URI        string
	Label      string
	Lat        float64
	Lng        float64
	PlaceType  string
	Verified   bool
	IsEthnic   bool
	Chapter    int
}

// Occurrence is one (book, chapter) appearance of a gazetteer place.
type Occurrence struct {
	Book    int `json:"book"`
	Chapter int `json:"chapter"`
}

// Place is a gazetteer entry deduplicated by place id (places.json).
type Place struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Lat         float64      `json:"lat"`
	Lng         float64      `json:"lng"`
	PleiadesURI *string      `json:"pleiadesUri"`
	PlaceType   string       `json:"placeType"`
	IsEthnic    bool         `json:"isEthnic"`
	Occurrences []Occurrence `json:"occurrences"`
}

// PlacesFile is the top-level shape of places.json.
type PlacesFile struct {
	Places map[string]*Place `json:"places"`
}

// PlaceRef is one place reference inside a chapter of book-<n>.json,
// carrying the annotator's raw character offset.
type PlaceRef struct {
	PlaceID    string `json:"placeId"`
	Name       string `json:"name"`
	CharOffset int    `json:"charOffset"`
}

// ChapterPlaces lists a chapter's place references sorted by offset.
type ChapterPlaces struct {
	ID     int        `json:"id"`
	Places []PlaceRef `json:"places"`
}

// BookPlaces is the Pass-2 output for one book (book-<n>.json).
type BookPlaces struct {
	ID       int             `json:"id"`
	Title    string          `json:"title"`
	Chapters []ChapterPlaces `json:"chapters"`
}

// BookSummary is one entry of the books.json index.
type BookSummary struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	ChapterCount int    `json:"chapterCount"`
	MaxChapterID int    `json:"maxChapterId"`
	PlaceCount   int    `json:"placeCount"`
}

// BooksIndex is the top-level shape of books.json.
type BooksIndex struct {
	Books []BookSummary `json:"books"`
}
