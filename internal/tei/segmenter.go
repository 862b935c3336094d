package tei

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// chapterNumber matches a candidate chapter marker: a 1-3 digit number
// followed by a period. Whether a candidate is a real boundary depends on
// what precedes it, checked separately in isBoundary.
var chapterNumber = regexp.MustCompile(`([0-9]{1,3})\.`)

// isBoundary reports whether the marker candidate at idx is preceded by a
// single space that itself follows sentence-final punctuation, a quote
// character or a digit. The digit case absorbs footnote numerals that sit
// directly before real chapter numbers. The character set is empirically
// tuned against this text; it is a documented heuristic with known failure
// modes (ambiguous punctuation, OCR artifacts) and must not be reworked
// without re-verifying against the source.
func isBoundary(text string, idx int) bool {
	if idx < 2 || text[idx-1] != ' ' {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:idx-1])
	switch r {
	case '.', '!', '?', '"', '\'', ':', ';', ',', '“', '”':
		return true
	}
	return r >= '0' && r <= '9'
}

// Segment divides a book's cleaned text into chapters keyed by the chapter
// number each marker carries. Text before the first marker becomes chapter
// 1; a later literal "1." marker overwrites it, so chapter ids are not
// guaranteed unique across derivations. Chapters left empty after trimming
// are dropped. When no markers fire at all the whole book becomes chapter 1
// and the second return value is false so the caller can warn.
func Segment(text string) (map[int]string, bool) {
	var markers [][]int
	for _, m := range chapterNumber.FindAllStringSubmatchIndex(text, -1) {
		if isBoundary(text, m[0]) {
			markers = append(markers, m)
		}
	}

	if len(markers) == 0 {
		return map[int]string{1: text}, false
	}

	chapters := make(map[int]string)

	if pre := strings.TrimSpace(text[:markers[0][0]]); pre != "" {
		chapters[1] = pre
	}

	for i, m := range markers {
		num, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		if body := strings.TrimSpace(text[m[1]:end]); body != "" {
			chapters[num] = body
		}
	}

	return chapters, true
}
