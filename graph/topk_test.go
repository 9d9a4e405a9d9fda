package graph

import (
	"fmt"
	"testing"
)

func TestTopKLinksCapsNeighbors(t *testing.T) {
	center := movieNode(0, nil, nil, nil)
	nodes := []*Node{center}
	adj := NewAdjacency()

	// Ten neighbors with distinct weights
	for i := 1; i <= 10; i++ {
		n := movieNode(i, nil, nil, nil)
		nodes = append(nodes, n)
		adj.AddPair(center.ID, n.ID, float64(i)/10)
	}

	links := TopKLinks([]*Node{center}, adj, 3, LinkSimilarity)
	if len(links) != 3 {
		t.Fatalf("got %d links, want 3", len(links))
	}
	// The three strongest neighbors survive
	for _, l := range links {
		if l.Weight < 0.8 {
			t.Errorf("weak link %s-%s (%v) survived pruning", l.Source, l.Target, l.Weight)
		}
	}
}

func TestTopKLinksDedupesMutualNomination(t *testing.T) {
	a := movieNode(1, nil, nil, nil)
	b := movieNode(2, nil, nil, nil)
	adj := NewAdjacency()
	adj.AddPair(a.ID, b.ID, 0.7)

	// Both endpoints nominate each other; one link must come out
	links := TopKLinks([]*Node{a, b}, adj, 6, LinkSimilarity)
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	l := links[0]
	if l.Source != "movie-1" || l.Target != "movie-2" {
		t.Errorf("link endpoints %s -> %s, want canonical movie-1 -> movie-2", l.Source, l.Target)
	}
	if l.Weight != 0.7 {
		t.Errorf("weight = %v, want 0.7", l.Weight)
	}
	if l.Type != LinkSimilarity {
		t.Errorf("type = %q, want %q", l.Type, LinkSimilarity)
	}
}

func TestTopKLinksTieBreakByEnumerationOrder(t *testing.T) {
	center := movieNode(0, nil, nil, nil)
	var others []*Node
	adj := NewAdjacency()
	for i := 1; i <= 4; i++ {
		n := movieNode(i, nil, nil, nil)
		others = append(others, n)
		adj.AddPair(center.ID, n.ID, 0.5) // all tied
	}

	links := TopKLinks([]*Node{center}, adj, 2, LinkCoActor)
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}
	// Stable sort keeps the first-recorded neighbors on a tie
	want := map[string]bool{
		PairKey(center.ID, others[0].ID): true,
		PairKey(center.ID, others[1].ID): true,
	}
	for _, l := range links {
		if !want[PairKey(l.Source, l.Target)] {
			t.Errorf("unexpected link %s-%s on tie break", l.Source, l.Target)
		}
	}
}

func TestTopKLinksDefaultK(t *testing.T) {
	center := movieNode(0, nil, nil, nil)
	adj := NewAdjacency()
	for i := 1; i <= DefaultTopK+4; i++ {
		adj.AddPair(center.ID, fmt.Sprintf("movie-%d", i), float64(i))
	}

	links := TopKLinks([]*Node{center}, adj, 0, LinkSimilarity)
	if len(links) != DefaultTopK {
		t.Errorf("k<=0: got %d links, want DefaultTopK %d", len(links), DefaultTopK)
	}
}

func TestTopKLinksEmptyAdjacency(t *testing.T) {
	nodes := []*Node{movieNode(1, nil, nil, nil)}
	links := TopKLinks(nodes, NewAdjacency(), 6, LinkSimilarity)
	if len(links) != 0 {
		t.Errorf("got %d links from empty adjacency, want 0", len(links))
	}
}
