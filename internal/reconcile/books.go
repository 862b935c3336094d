package reconcile

import (
	"sort"

	"github.com/leifuss/hestiavizredux/internal/model"
)

// ChapterInfo summarizes a book's Pass-1 segmentation for the index.
type ChapterInfo struct {
	Count int
	MaxID int
}

// BuildBookPlaces groups annotations into per-book, per-chapter place
// reference lists via an explicit get-or-create container keyed by
// (book, chapter). Books outside 1..9 are dropped. Chapters come out
// sorted by id, places within a chapter by ascending raw offset.
func BuildBookPlaces(anns []model.Annotation) map[int]*model.BookPlaces {
	books := make(map[int]*model.BookPlaces)
	chapters := make(map[int]map[int]*model.ChapterPlaces)

	for _, a := range anns {
		if a.Book < 1 || a.Book > 9 {
			continue
		}

		bk, ok := books[a.Book]
		if !ok {
			bk = &model.BookPlaces{ID: a.Book, Title: model.BookTitle(a.Book)}
			books[a.Book] = bk
			chapters[a.Book] = make(map[int]*model.ChapterPlaces)
		}

		ch := a.Chapter
		if ch == 0 {
			ch = 1
		}
		cp, ok := chapters[a.Book][ch]
		if !ok {
			cp = &model.ChapterPlaces{ID: ch}
			chapters[a.Book][ch] = cp
		}

		cp.Places = append(cp.Places, model.PlaceRef{
			PlaceID:    a.PlaceID,
			Name:       a.Quote,
			CharOffset: a.CharOffset,
		})
	}

	for book, bk := range books {
		ids := make([]int, 0, len(chapters[book]))
		for id := range chapters[book] {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			cp := chapters[book][id]
			sort.SliceStable(cp.Places, func(i, j int) bool {
				return cp.Places[i].CharOffset < cp.Places[j].CharOffset
			})
			bk.Chapters = append(bk.Chapters, *cp)
		}
	}

	return books
}

// BuildIndex assembles the books.json index covering all nine books. A
// book whose Pass-1 text output is absent gets placeholder chapter counts
// of 100, preserving the shape the front-end expects.
func BuildIndex(info map[int]ChapterInfo, books map[int]*model.BookPlaces) *model.BooksIndex {
	idx := &model.BooksIndex{}
	for n := 1; n <= 9; n++ {
		ci, ok := info[n]
		if !ok {
			ci = ChapterInfo{Count: 100, MaxID: 100}
		}

		placeCount := 0
		if bk := books[n]; bk != nil {
			for _, ch := range bk.Chapters {
				placeCount += len(ch.Places)
			}
		}

		idx.Books = append(idx.Books, model.BookSummary{
			ID:           n,
			Title:        model.BookTitle(n),
			ChapterCount: ci.Count,
			MaxChapterID: ci.MaxID,
			PlaceCount:   placeCount,
		})
	}
	return idx
}
