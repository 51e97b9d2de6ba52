package store

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeDiacritics removes diacritical marks from a string (e.g., "Jiří" -> "Jiri").
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// normalizeName normalizes an attendee name for comparison (lowercase, no
// diacritics, spaces for dashes).
func normalizeName(name string) string {
	name = removeDiacritics(name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}

// SearchProfiles returns profiles whose name contains the query after
// normalization, so "novak" finds "Jan Novák".
func (s *Store) SearchProfiles(query string) []AttendeeProfile {
	query = normalizeName(query)
	if query == "" {
		return s.Profiles()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []AttendeeProfile
	for i := range s.profiles {
		if strings.Contains(normalizeName(s.profiles[i].Name), query) {
			out = append(out, s.profiles[i])
		}
	}
	return out
}
