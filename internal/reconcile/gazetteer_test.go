package reconcile

import (
	"testing"

	"github.com/leifuss/hestiavizredux/internal/model"
)

func TestBuildGazetteerDedupes(t *testing.T) {
	anns := []model.Annotation{
		{PlaceID: "570", Label: "Halicarnassus", Quote: "Halicarnassus", Book: 1, CharOffset: 10,
			Lat: 37.1, Lng: 27.8, PlaceType: "settlement", URI: "http://pleiades.stoa.org/places/570"},
		{PlaceID: "570", Label: "Halikarnassos", Quote: "Halikarnassos", Book: 2, CharOffset: 99,
			Lat: 0, Lng: 0, PlaceType: "other", URI: "http://pleiades.stoa.org/places/570"},
		{PlaceID: "hestia-susa", Quote: "Susa", Book: 1, CharOffset: 50, Lat: 32.2, Lng: 48.3},
	}

	g := BuildGazetteer(anns)
	if g.Len() != 2 {
		t.Fatalf("expected 2 places, got %d", g.Len())
	}

	places := g.Places()

	hal := places["570"]
	if hal == nil {
		t.Fatal("place 570 missing")
	}
	// First-seen annotation supplies the canonical fields.
	if hal.Name != "Halicarnassus" {
		t.Errorf("expected first-seen name, got %q", hal.Name)
	}
	if hal.Lat != 37.1 || hal.Lng != 27.8 {
		t.Errorf("expected first-seen coordinates, got %v,%v", hal.Lat, hal.Lng)
	}
	if hal.PlaceType != "settlement" {
		t.Errorf("expected first-seen type, got %q", hal.PlaceType)
	}
	if len(hal.Occurrences) != 2 {
		t.Errorf("expected 2 occurrences, got %d", len(hal.Occurrences))
	}
	if hal.PleiadesURI == nil || *hal.PleiadesURI != "http://pleiades.stoa.org/places/570" {
		t.Errorf("expected pleiades URI, got %v", hal.PleiadesURI)
	}

	susa := places["hestia-susa"]
	if susa == nil {
		t.Fatal("place hestia-susa missing")
	}
	if susa.Name != "Susa" {
		t.Errorf("expected quote as name fallback, got %q", susa.Name)
	}
	if susa.PleiadesURI != nil {
		t.Errorf("expected nil pleiades URI, got %v", *susa.PleiadesURI)
	}
	if len(susa.Occurrences) != 1 {
		t.Errorf("expected 1 occurrence, got %d", len(susa.Occurrences))
	}
}

func TestBackfillChapters(t *testing.T) {
	anns := []model.Annotation{
		{PlaceID: "570", Quote: "Halicarnassus", Book: 1, CharOffset: 10},
		{PlaceID: "570", Quote: "Halicarnassus", Book: 1, CharOffset: 900},
	}

	g := BuildGazetteer(anns)

	// Chapter assignment happens after the gazetteer is built.
	anns[0].Chapter = 3
	anns[1].Chapter = 42
	g.BackfillChapters(anns)

	occs := g.Places()["570"].Occurrences
	if len(occs) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(occs))
	}
	got := map[int]bool{occs[0].Chapter: true, occs[1].Chapter: true}
	if !got[3] || !got[42] {
		t.Errorf("expected chapters 3 and 42, got %v", occs)
	}
}

func TestUnassignedOccurrenceDefaultsToChapterOne(t *testing.T) {
	anns := []model.Annotation{{PlaceID: "x", Quote: "X", Book: 5, CharOffset: 7}}

	g := BuildGazetteer(anns)
	occs := g.Places()["x"].Occurrences
	if len(occs) != 1 || occs[0].Chapter != 1 {
		t.Errorf("expected default chapter 1, got %v", occs)
	}
	if occs[0].Book != 5 {
		t.Errorf("expected book 5, got %d", occs[0].Book)
	}
}
