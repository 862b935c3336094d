// Package placeid derives stable place identifiers from gazetteer URIs.
// Both passes of the pipeline must use the same rule so that text mentions
// and CSV annotations agree on ids.
package placeid

import "strings"

// Derive returns the place id for an annotation. Pleiades URIs yield the
// trailing path segment, GeoNames URIs a "geonames-" prefixed segment, and
// anything else a "hestia-" id generated from the display name. The
// fallback can collide for distinct unidentified places that share a
// transcription; that is an accepted limitation.
func Derive(uri, name string) string {
	if i := strings.LastIndex(uri, "pleiades.stoa.org/places/"); i >= 0 {
		return uri[i+len("pleiades.stoa.org/places/"):]
	}
	if strings.Contains(uri, "geonames.org/") {
		return "geonames-" + uri[strings.LastIndex(uri, "/")+1:]
	}
	return "hestia-" + strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
