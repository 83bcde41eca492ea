package domain

import "strings"

// SunsetProbeAzimuths are the azimuths a view range must cover for a beach
// to be listed as a sunset beach.
var SunsetProbeAzimuths = []float64{270, 250}

// NormalizeSlug turns a user-supplied beach identifier into a slug:
// lower case, with spaces and hyphens replaced by underscores.
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// Matches reports whether q is a case-insensitive substring of the beach's
// name, country, region or slug.
func (b *Beach) Matches(q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(b.Name), q) ||
		strings.Contains(strings.ToLower(b.Country), q) ||
		strings.Contains(strings.ToLower(b.Region), q) ||
		strings.Contains(strings.ToLower(b.Slug), q)
}
