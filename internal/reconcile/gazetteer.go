package reconcile

import (
	"strings"

	"github.com/leifuss/hestiavizredux/internal/model"
)

// occurrence is the internal, offset-carrying form of a place occurrence.
// Raw offsets are kept only to match occurrences back to their source
// annotations after chapter assignment; the final output drops them.
type occurrence struct {
	book       int
	chapter    int
	charOffset int
	quote      string
}

type placeRecord struct {
	id        string
	name      string
	lat       float64
	lng       float64
	uri       string
	placeType string
	isEthnic  bool
	occs      []occurrence
}

// Gazetteer is the deduplicated place registry keyed by place id.
type Gazetteer struct {
	places map[string]*placeRecord
}

// BuildGazetteer folds annotations into gazetteer entries. The first
// annotation seen for a place id supplies the canonical name, coordinates,
// type and ethnic flag; every annotation, first included, appends one
// occurrence. Entries are never removed within a run.
func BuildGazetteer(anns []model.Annotation) *Gazetteer {
	g := &Gazetteer{places: make(map[string]*placeRecord)}

	for _, a := range anns {
		rec, ok := g.places[a.PlaceID]
		if !ok {
			name := a.Label
			if name == "" {
				name = a.Quote
			}
			rec = &placeRecord{
				id:        a.PlaceID,
				name:      name,
				lat:       a.Lat,
				lng:       a.Lng,
				uri:       a.URI,
				placeType: a.PlaceType,
				isEthnic:  a.IsEthnic,
			}
			g.places[a.PlaceID] = rec
		}
		rec.occs = append(rec.occs, occurrence{
			book:       a.Book,
			charOffset: a.CharOffset,
			quote:      a.Quote,
		})
	}

	return g
}

// BackfillChapters stamps each occurrence with the chapter its source
// annotation was assigned to, matching on (book, raw offset).
func (g *Gazetteer) BackfillChapters(anns []model.Annotation) {
	for _, a := range anns {
		rec := g.places[a.PlaceID]
		if rec == nil {
			continue
		}
		for i := range rec.occs {
			if rec.occs[i].book == a.Book && rec.occs[i].charOffset == a.CharOffset {
				rec.occs[i].chapter = a.Chapter
			}
		}
	}
}

// Len returns the number of distinct places.
func (g *Gazetteer) Len() int {
	return len(g.places)
}

// Places converts the gazetteer to its output form: raw offsets and quotes
// are dropped from occurrences, unassigned chapters default to 1, and the
// source URI is exposed only when it points at Pleiades.
func (g *Gazetteer) Places() map[string]*model.Place {
	out := make(map[string]*model.Place, len(g.places))
	for id, rec := range g.places {
		p := &model.Place{
			ID:        rec.id,
			Name:      rec.name,
			Lat:       rec.lat,
			Lng:       rec.lng,
			PlaceType: rec.placeType,
			IsEthnic:  rec.isEthnic,
		}
		if strings.Contains(rec.uri, "pleiades") {
			uri := rec.uri
			p.PleiadesURI = &uri
		}
		for _, o := range rec.occs {
			ch := o.chapter
			if ch == 0 {
				ch = 1
			}
			p.Occurrences = append(p.Occurrences, model.Occurrence{Book: o.book, Chapter: ch})
		}
		out[id] = p
	}
	return out
}
