package graph

import (
	"fmt"
	"strconv"
)

// Node IDs are namespaced by type so that a movie and a genre sharing a raw
// integer id never collide in the node map.

// MovieNodeID returns the namespaced node ID for a movie.
func MovieNodeID(id int) string { return fmt.Sprintf("movie-%d", id) }

// GenreNodeID returns the namespaced node ID for a genre.
func GenreNodeID(id int) string { return fmt.Sprintf("genre-%d", id) }

// PersonNodeID returns the namespaced node ID for a cast member.
func PersonNodeID(id int) string { return fmt.Sprintf("person-%d", id) }

// KeywordNodeID returns the namespaced node ID for a keyword.
func KeywordNodeID(id int) string { return fmt.Sprintf("keyword-%d", id) }

// PairKey returns the canonical key for an undirected node pair. Both
// discovery orders of the same pair map to the same key, which is how the
// edge set stays deduplicated.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// ParseYear derives a release year from the first four characters of an ISO
// date string. Returns nil when the date is missing or unparseable.
func ParseYear(releaseDate string) *int {
	if len(releaseDate) < 4 {
		return nil
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return nil
	}
	return &year
}
