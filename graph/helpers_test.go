package graph

import (
	"testing"
)

func TestNodeIDNamespacing(t *testing.T) {
	// A movie and a genre sharing a raw id must not collide
	if MovieNodeID(7) == GenreNodeID(7) {
		t.Error("movie and genre node IDs collide for the same raw id")
	}
	if MovieNodeID(42) != "movie-42" {
		t.Errorf("MovieNodeID(42) = %q, want %q", MovieNodeID(42), "movie-42")
	}
	if PersonNodeID(3) != "person-3" {
		t.Errorf("PersonNodeID(3) = %q, want %q", PersonNodeID(3), "person-3")
	}
	if KeywordNodeID(9) != "keyword-9" {
		t.Errorf("KeywordNodeID(9) = %q, want %q", KeywordNodeID(9), "keyword-9")
	}
}

func TestPairKeyCanonical(t *testing.T) {
	// Both discovery orders must map to the same key
	ab := PairKey("movie-1", "movie-2")
	ba := PairKey("movie-2", "movie-1")
	if ab != ba {
		t.Errorf("PairKey is order-sensitive: %q vs %q", ab, ba)
	}
	if ab != "movie-1|movie-2" {
		t.Errorf("PairKey = %q, want %q", ab, "movie-1|movie-2")
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		want    int
		wantNil bool
	}{
		{"full_iso_date", "1999-03-31", 1999, false},
		{"year_only", "2010", 2010, false},
		{"empty", "", 0, true},
		{"too_short", "99", 0, true},
		{"garbage", "abcd-01-01", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseYear(tt.date)
			if tt.wantNil {
				if got != nil {
					t.Errorf("ParseYear(%q) = %d, want nil", tt.date, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseYear(%q) = nil, want %d", tt.date, tt.want)
			}
			if *got != tt.want {
				t.Errorf("ParseYear(%q) = %d, want %d", tt.date, *got, tt.want)
			}
		})
	}
}
