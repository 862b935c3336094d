// Package reconcile implements the second pass: aligning Recogito
// annotation offsets with the chapter boundaries derived in the first pass
// and assembling the final JSON dataset.
package reconcile

import (
	"github.com/leifuss/hestiavizredux/internal/model"
)

// interval is one chapter's [start, end) span over the synthetic
// concatenation of a book's chapter texts.
type interval struct {
	id    int
	start int
	end   int
}

// chapterBoundaries lays the book's chapters end to end, one separator
// character between them, and returns the cumulative intervals.
func chapterBoundaries(b *model.BookText) []interval {
	bounds := make([]interval, 0, len(b.Chapters))
	cum := 0
	for _, ch := range b.Chapters {
		start := cum
		cum += len(ch.Text) + 1
		bounds = append(bounds, interval{id: ch.ID, start: start, end: cum})
	}
	return bounds
}

// AssignChapters maps each annotation's raw offset into the chapter space
// of its book. The CSV offsets run over a different serialization of the
// text than Pass 1 produced, so each book's offsets are rescaled linearly:
// scale = synthetic total length / maximum raw offset in that book. The
// scaled offset is located by interval containment, falling back to the
// last chapter past the end. This is a best-effort alignment: where the two
// serializations diverge locally an annotation can land in the wrong
// chapter, an accepted and bounded source of error that is never
// "corrected" at runtime. Annotations for books without Pass-1 text get
// chapter 1.
func AssignChapters(anns []model.Annotation, books map[int]*model.BookText) {
	byBook := make(map[int][]int)
	for i := range anns {
		byBook[anns[i].Book] = append(byBook[anns[i].Book], i)
	}

	for book, idxs := range byBook {
		bt := books[book]
		if bt == nil || len(bt.Chapters) == 0 {
			for _, i := range idxs {
				anns[i].Chapter = 1
			}
			continue
		}

		bounds := chapterBoundaries(bt)
		total := bounds[len(bounds)-1].end

		maxOffset := 0
		for _, i := range idxs {
			if anns[i].CharOffset > maxOffset {
				maxOffset = anns[i].CharOffset
			}
		}
		scale := 1.0
		if maxOffset > 0 {
			scale = float64(total) / float64(maxOffset)
		}

		for _, i := range idxs {
			scaled := float64(anns[i].CharOffset) * scale
			assigned := bounds[len(bounds)-1].id
			for _, bd := range bounds {
				if float64(bd.start) <= scaled && scaled < float64(bd.end) {
					assigned = bd.id
					break
				}
			}
			anns[i].Chapter = assigned
		}
	}
}
