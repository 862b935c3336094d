// Package recogito parses the Recogito CSV annotation export consumed by
// the second pass of the pipeline.
package recogito

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/leifuss/hestiavizredux/internal/model"
	"github.com/leifuss/hestiavizredux/internal/placeid"
)

// requiredColumns must all be present in the header; a missing column is a
// structural error that aborts the run.
var requiredColumns = []string{
	"TYPE", "FILE", "ANCHOR", "URI", "QUOTE_TRANSCRIPTION", "VOCAB_LABEL",
	"LAT", "LNG", "PLACE_TYPE", "VERIFICATION_STATUS", "TAGS", "UUID",
}

var (
	bookRe   = regexp.MustCompile(`Book (\d+)`)
	offsetRe = regexp.MustCompile(`char-offset:(\d+)`)
)

// SkipStats accounts for every row that was read but not retained, so each
// skip is attributable to exactly one condition.
type SkipStats struct {
	// Filtered counts rows that are not PLACE annotations or lack a
	// coordinate pair.
	Filtered int
	// MissingBook counts PLACE rows whose FILE field has no "Book N".
	MissingBook int
	// MissingOffset counts PLACE rows whose ANCHOR field has no
	// "char-offset:N" token.
	MissingOffset int
}

// ParseFile reads and parses a Recogito CSV export from disk.
func ParseFile(path string) ([]model.Annotation, SkipStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, SkipStats{}, fmt.Errorf("opening CSV file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads the export row by row, retaining only PLACE annotations that
// carry both coordinates, a book number and a character offset. Malformed
// file structure (missing columns, ragged rows, unparsable coordinates on a
// retained row) fails the whole run; the two per-row skip conditions are
// counted instead.
func Parse(r io.Reader) ([]model.Annotation, SkipStats, error) {
	var stats SkipStats

	reader := csv.NewReader(r)
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("reading CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, stats, fmt.Errorf("CSV missing required column %q", name)
		}
	}

	var anns []model.Annotation
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading CSV row: %w", err)
		}
		line++

		field := func(name string) string { return row[col[name]] }

		if field("TYPE") != "PLACE" || field("LAT") == "" || field("LNG") == "" {
			stats.Filtered++
			continue
		}

		bookMatch := bookRe.FindStringSubmatch(field("FILE"))
		if bookMatch == nil {
			stats.MissingBook++
			continue
		}
		book, _ := strconv.Atoi(bookMatch[1])

		offsetMatch := offsetRe.FindStringSubmatch(field("ANCHOR"))
		if offsetMatch == nil {
			stats.MissingOffset++
			continue
		}
		offset, _ := strconv.Atoi(offsetMatch[1])

		lat, err := strconv.ParseFloat(field("LAT"), 64)
		if err != nil {
			return nil, stats, fmt.Errorf("row %d: bad LAT %q: %w", line, field("LAT"), err)
		}
		lng, err := strconv.ParseFloat(field("LNG"), 64)
		if err != nil {
			return nil, stats, fmt.Errorf("row %d: bad LNG %q: %w", line, field("LNG"), err)
		}

		quote := field("QUOTE_TRANSCRIPTION")
		label := quote
		if v := field("VOCAB_LABEL"); v != "" {
			label = strings.SplitN(v, "|", 2)[0]
		}

		anns = append(anns, model.Annotation{
			UUID:       field("UUID"),
			Book:       book,
			Quote:      quote,
			CharOffset: offset,
			PlaceID:    placeid.Derive(field("URI"), quote),
			URI:        field("URI"),
			Label:      label,
			Lat:        lat,
			Lng:        lng,
			PlaceType:  field("PLACE_TYPE"),
			Verified:   field("VERIFICATION_STATUS") == "VERIFIED",
			IsEthnic:   strings.Contains(strings.ToLower(field("TAGS")), "ethnic"),
		})
	}

	return anns, stats, nil
}
