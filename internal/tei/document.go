// Package tei implements the first pass of the pipeline: splitting the TEI
// source into books, stripping markup while tracking inline place mentions,
// and segmenting each book into chapters.
package tei

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Document wraps a parsed TEI file.
type Document struct {
	root *xmlquery.Node
}

// Load reads and parses a TEI file from disk.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening TEI file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse parses a TEI document from a reader.
func Parse(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing TEI XML: %w", err)
	}
	return &Document{root: root}, nil
}

// Title returns the document title from the teiHeader, or "" if absent.
// The local-name() form keeps the query working when the document declares
// the TEI namespace.
func (d *Document) Title() string {
	n := xmlquery.FindOne(d.root, "//*[local-name()='titleStmt']/*[local-name()='title']")
	if n == nil {
		return ""
	}
	return strings.Join(strings.Fields(n.InnerText()), " ")
}

// BodyMarkup returns the serialized markup inside the body element, the
// content region holding the narrative prose. A missing body is fatal.
func (d *Document) BodyMarkup() (string, error) {
	body := xmlquery.FindOne(d.root, "//*[local-name()='body']")
	if body == nil {
		return "", errors.New("no body element in TEI document")
	}

	var sb strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(c.OutputXML(true))
	}
	return sb.String(), nil
}

var bookMarker = regexp.MustCompile(`<p>Book (\d+)</p>`)

// SplitBooks divides body markup into raw per-book segments keyed by book
// number, using the literal "Book N" paragraph markers. A segment runs from
// its marker to the next marker or the end of the body. Markers for books
// outside 1..9 are kept in the map and ignored by callers. Zero markers is
// an error: without them the text cannot be processed at all.
func SplitBooks(markup string) (map[int]string, error) {
	ms := bookMarker.FindAllStringSubmatchIndex(markup, -1)
	if len(ms) == 0 {
		return nil, errors.New("no Book markers found in body")
	}

	books := make(map[int]string, len(ms))
	for i, m := range ms {
		num, err := strconv.Atoi(markup[m[2]:m[3]])
		if err != nil {
			continue
		}
		end := len(markup)
		if i+1 < len(ms) {
			end = ms[i+1][0]
		}
		books[num] = markup[m[1]:end]
	}
	return books, nil
}
