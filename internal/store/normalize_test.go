package store

import (
	"context"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "ANN", "ann"},
		{"diacritics", "Jiří Novák", "jiri novak"},
		{"dashes to spaces", "Marie-Claire", "marie claire"},
		{"trimmed", "  Ann  ", "ann"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeName(tc.input); got != tc.expected {
				t.Errorf("normalizeName(%q) = %q; want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestSearchProfiles(t *testing.T) {
	s := Open(context.Background(), newMemBlobs())
	ctx := context.Background()

	s.UpdateProfile(ctx, ProfilePatch{ID: "1", Name: strPtr("Jan Novák")})
	s.UpdateProfile(ctx, ProfilePatch{ID: "2", Name: strPtr("Marie-Claire Dupont")})
	s.UpdateProfile(ctx, ProfilePatch{ID: "3", Name: strPtr("Ann Lee")})

	tests := []struct {
		query string
		want  []string
	}{
		{"novak", []string{"1"}},
		{"marie claire", []string{"2"}},
		{"ANN", []string{"3"}},
		{"nobody", nil},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			got := s.SearchProfiles(tc.query)
			if len(got) != len(tc.want) {
				t.Fatalf("SearchProfiles(%q) returned %d profiles; want %d", tc.query, len(got), len(tc.want))
			}
			for i := range tc.want {
				if got[i].ID != tc.want[i] {
					t.Errorf("SearchProfiles(%q)[%d] = %s; want %s", tc.query, i, got[i].ID, tc.want[i])
				}
			}
		})
	}

	// Empty query returns everything.
	if got := s.SearchProfiles(""); len(got) != 3 {
		t.Errorf("empty query returned %d profiles; want 3", len(got))
	}
}
