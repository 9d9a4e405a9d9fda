package graph

import (
	"sort"
	"testing"

	"github.com/cinegraph/cinegraph/dataset"
)

func sampleMovies() []dataset.MovieRecord {
	return []dataset.MovieRecord{
		{
			ID:          1,
			Title:       "Alpha",
			ReleaseDate: "1999-03-31",
			Runtime:     120,
			Genres:      []dataset.Genre{{ID: 18, Name: "Drama"}},
			Cast:        []dataset.CastMember{{ID: 7, Name: "Ada"}},
			Keywords:    []dataset.Keyword{{ID: 100, Name: "heist"}},
		},
		{
			ID:          2,
			Title:       "Beta",
			ReleaseDate: "2004-07-01",
			Genres:      []dataset.Genre{{ID: 18, Name: "Drama"}, {ID: 35, Name: "Comedy"}},
			Cast:        []dataset.CastMember{{ID: 7, Name: "Ada"}, {ID: 8, Name: "Ben"}},
		},
	}
}

func TestBuildEntityGraph(t *testing.T) {
	g := BuildEntityGraph(sampleMovies())

	// 2 movies + 2 genres + 2 people + 1 keyword
	if len(g.Nodes) != 7 {
		t.Errorf("got %d nodes, want 7", len(g.Nodes))
	}
	// movie1: genre+cast+keyword = 3, movie2: 2 genres + 2 cast = 4
	if len(g.Links) != 7 {
		t.Errorf("got %d links, want 7", len(g.Links))
	}

	// Shared genre folds into one node
	var dramaCount int
	for _, n := range g.Nodes {
		if n.ID == GenreNodeID(18) {
			dramaCount++
			if n.Label != "Drama" {
				t.Errorf("genre label = %q, want Drama", n.Label)
			}
		}
		if !n.Visible {
			t.Errorf("node %s not visible on build", n.ID)
		}
	}
	if dramaCount != 1 {
		t.Errorf("genre 18 appears %d times, want 1", dramaCount)
	}

	// Deterministic ordering: nodes sorted by id
	if !sort.SliceIsSorted(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID }) {
		t.Error("nodes not sorted by id")
	}

	if g.Meta.Stats.TotalNodes != len(g.Nodes) || g.Meta.Stats.TotalEdges != len(g.Links) {
		t.Error("meta stats disagree with node/link counts")
	}
}

func TestBuildEntityGraphMovieGenreIDs(t *testing.T) {
	// Movie nodes keep their genre ids so genre clustering works on this view
	g := BuildEntityGraph(sampleMovies())

	alpha := g.NodeByID(MovieNodeID(1))
	if len(alpha.GenreIDs) != 1 || alpha.GenreIDs[0] != 18 {
		t.Errorf("alpha GenreIDs = %v, want [18]", alpha.GenreIDs)
	}
	beta := g.NodeByID(MovieNodeID(2))
	if len(beta.GenreIDs) != 2 || beta.GenreIDs[0] != 18 || beta.GenreIDs[1] != 35 {
		t.Errorf("beta GenreIDs = %v, want [18 35]", beta.GenreIDs)
	}

	// Satellite nodes stay bare
	if drama := g.NodeByID(GenreNodeID(18)); len(drama.GenreIDs) != 0 {
		t.Errorf("genre node carries GenreIDs %v", drama.GenreIDs)
	}
}

func TestBuildEntityGraphDuplicateMovie(t *testing.T) {
	movies := []dataset.MovieRecord{
		{ID: 1, Title: "First", Runtime: 100},
		{ID: 1, Title: "Second", Runtime: 90, Genres: []dataset.Genre{{ID: 18, Name: "Drama"}}},
	}
	g := BuildEntityGraph(movies)

	n := g.NodeByID(MovieNodeID(1))
	if n == nil {
		t.Fatal("movie node missing")
	}
	// First occurrence wins for metadata; later relations still attach
	if n.Label != "First" || n.Runtime != 100 {
		t.Errorf("metadata = %q/%d, want first occurrence First/100", n.Label, n.Runtime)
	}
	if len(g.Links) != 1 {
		t.Errorf("got %d links, want 1 from the second record's genre", len(g.Links))
	}
}

func TestBuildEntityGraphMissingRelations(t *testing.T) {
	// Relation arrays absent from the JSON decode as nil
	g := BuildEntityGraph([]dataset.MovieRecord{{ID: 1, Title: "Bare"}})
	if len(g.Nodes) != 1 || len(g.Links) != 0 {
		t.Errorf("bare movie: %d nodes / %d links, want 1/0", len(g.Nodes), len(g.Links))
	}
}

func TestBuildEntityGraphDedupesRepeatedRelation(t *testing.T) {
	// The same (movie, genre) pair listed twice yields one edge
	movies := []dataset.MovieRecord{{
		ID:     1,
		Title:  "Dup",
		Genres: []dataset.Genre{{ID: 18, Name: "Drama"}, {ID: 18, Name: "Drama"}},
	}}
	g := BuildEntityGraph(movies)
	if len(g.Links) != 1 {
		t.Errorf("got %d links, want 1", len(g.Links))
	}
}

func TestBuildMovieNodes(t *testing.T) {
	nodes := BuildMovieNodes(sampleMovies())
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}

	alpha := nodes[0]
	if alpha.ID != MovieNodeID(1) {
		t.Fatalf("first node = %s, want movie-1", alpha.ID)
	}
	if alpha.Year == nil || *alpha.Year != 1999 {
		t.Error("release year not derived")
	}
	if len(alpha.GenreIDs) != 1 || alpha.GenreIDs[0] != 18 {
		t.Errorf("genre ids = %v, want [18]", alpha.GenreIDs)
	}
	if len(alpha.ActorIDs) != 1 || len(alpha.KeywordIDs) != 1 {
		t.Errorf("relation ids not carried: actors=%v keywords=%v", alpha.ActorIDs, alpha.KeywordIDs)
	}

	beta := nodes[1]
	if len(beta.KeywordIDs) != 0 {
		t.Errorf("missing keywords should stay empty, got %v", beta.KeywordIDs)
	}
}

func TestBuildMovieNodesDedup(t *testing.T) {
	movies := []dataset.MovieRecord{
		{ID: 1, Title: "First"},
		{ID: 1, Title: "Second"},
	}
	nodes := BuildMovieNodes(movies)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if nodes[0].Label != "First" {
		t.Errorf("label = %q, want first occurrence", nodes[0].Label)
	}
}

func TestCollectNodeTypeInfo(t *testing.T) {
	g := BuildEntityGraph(sampleMovies())
	counts := make(map[NodeType]int)
	for _, info := range g.Meta.NodeTypes {
		counts[info.Type] = info.Count
	}
	if counts[NodeMovie] != 2 || counts[NodeGenre] != 2 || counts[NodePerson] != 2 || counts[NodeKeyword] != 1 {
		t.Errorf("type counts = %v", counts)
	}
}
