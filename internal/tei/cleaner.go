package tei

import (
	"html"
	"regexp"
	"strings"

	"github.com/leifuss/hestiavizredux/internal/model"
	"github.com/leifuss/hestiavizredux/internal/placeid"
)

var (
	refAttr    = regexp.MustCompile(`ref="([^"]*)"`)
	anyTag     = regexp.MustCompile(`<[^>]*>`)
	wsRun      = regexp.MustCompile(`\s+`)
	placeToken = regexp.MustCompile(`\{\{PLACE:([^:]+):([^}]+)\}\}`)
)

// Clean strips markup from one book's raw segment, producing plain prose in
// which every referenced place name is replaced by a placeholder token
// {{PLACE:<id>:<name>}}. Place names without a ref and person names keep
// their bare display text; editorial notes are deleted entirely. Whitespace
// runs collapse to a single space, the ends are trimmed and character
// entities are decoded. The placeholder tokens survive all of that, which
// is what lets Extract recover exact offsets later.
func Clean(raw string) string {
	var b strings.Builder
	i := 0
	for i < len(raw) {
		if raw[i] != '<' {
			b.WriteByte(raw[i])
			i++
			continue
		}

		gt := strings.IndexByte(raw[i:], '>')
		if gt < 0 {
			// unterminated tag, keep the remainder verbatim
			b.WriteString(raw[i:])
			break
		}
		tag := raw[i+1 : i+gt]

		switch {
		case isElement(tag, "placeName"):
			if selfClosing(tag) {
				i += gt + 1
				continue
			}
			inner, next, ok := elementContent(raw, i+gt+1, "placeName")
			if !ok {
				i += gt + 1
				continue
			}
			name := displayText(inner)
			if m := refAttr.FindStringSubmatch(tag); m != nil && m[1] != "" {
				b.WriteString("{{PLACE:")
				b.WriteString(placeid.Derive(m[1], name))
				b.WriteString(":")
				b.WriteString(name)
				b.WriteString("}}")
			} else {
				// unresolved place, keep the text but record nothing
				b.WriteString(name)
			}
			i = next
		case isElement(tag, "persName"):
			if selfClosing(tag) {
				i += gt + 1
				continue
			}
			inner, next, ok := elementContent(raw, i+gt+1, "persName")
			if !ok {
				i += gt + 1
				continue
			}
			b.WriteString(displayText(inner))
			i = next
		case isElement(tag, "note"):
			if selfClosing(tag) {
				i += gt + 1
				continue
			}
			i = skipElement(raw, i+gt+1, "note")
		default:
			// any other tag is stripped, its text content flows through
			i += gt + 1
		}
	}

	text := wsRun.ReplaceAllString(b.String(), " ")
	text = strings.TrimSpace(text)
	return html.UnescapeString(text)
}

// Extract re-scans a cleaned text slice for placeholder tokens, replacing
// each with its bare display name and recording a mention at its position
// in the returned text. Offsets always index the returned string: the
// substring at [StartOffset, EndOffset) is exactly the mention's name.
// Applied to a chapter slice this localizes mentions to that chapter.
func Extract(text string) (string, []model.PlaceMention) {
	var b strings.Builder
	var mentions []model.PlaceMention

	last := 0
	for _, m := range placeToken.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(text[last:m[0]])
		id := text[m[2]:m[3]]
		name := text[m[4]:m[5]]
		start := b.Len()
		mentions = append(mentions, model.PlaceMention{
			PlaceID:     id,
			Name:        name,
			StartOffset: start,
			EndOffset:   start + len(name),
		})
		b.WriteString(name)
		last = m[1]
	}
	b.WriteString(text[last:])

	return b.String(), mentions
}

// isElement reports whether tag opens the named element ("placeName",
// "placeName ref=..." and the self-closing forms all match).
func isElement(tag, name string) bool {
	if !strings.HasPrefix(tag, name) {
		return false
	}
	rest := tag[len(name):]
	if rest == "" {
		return true
	}
	switch rest[0] {
	case ' ', '\t', '\n', '\r', '/':
		return true
	}
	return false
}

func selfClosing(tag string) bool {
	return strings.HasSuffix(strings.TrimSpace(tag), "/")
}

// elementContent returns the raw content between the current position and
// the matching close tag, plus the position just past it. Nested elements
// of the same name are not expected in this corpus.
func elementContent(raw string, from int, name string) (string, int, bool) {
	close := "</" + name + ">"
	idx := strings.Index(raw[from:], close)
	if idx < 0 {
		return "", 0, false
	}
	return raw[from : from+idx], from + idx + len(close), true
}

// skipElement advances past the matching close tag, counting nested opens
// so nested notes are consumed whole.
func skipElement(raw string, from int, name string) int {
	depth := 1
	i := from
	for i < len(raw) {
		lt := strings.IndexByte(raw[i:], '<')
		if lt < 0 {
			return len(raw)
		}
		i += lt
		gt := strings.IndexByte(raw[i:], '>')
		if gt < 0 {
			return len(raw)
		}
		tag := raw[i+1 : i+gt]
		if strings.HasPrefix(tag, "/") {
			if strings.TrimSpace(tag[1:]) == name {
				depth--
				if depth == 0 {
					return i + gt + 1
				}
			}
		} else if isElement(tag, name) && !selfClosing(tag) {
			depth++
		}
		i += gt + 1
	}
	return len(raw)
}

// displayText strips any nested tags and collapses whitespace, yielding the
// visible text of an inline element.
func displayText(inner string) string {
	return strings.Join(strings.Fields(anyTag.ReplaceAllString(inner, "")), " ")
}
