package graph

import (
	"fmt"
	"math"
	"sort"
)

// Similarity scoring for the analytical views. Feature tags are prefixed so
// a genre id and a keyword id with the same integer value never collide.
const (
	genreTagPrefix   = "g:"
	keywordTagPrefix = "k:"
)

// FeatureSet returns the tagged feature strings a movie node exposes for
// similarity scoring: g:<genreID> and k:<keywordID>. Ephemeral; never part
// of persisted state.
func FeatureSet(n *Node) map[string]struct{} {
	features := make(map[string]struct{}, len(n.GenreIDs)+len(n.KeywordIDs))
	for _, id := range n.GenreIDs {
		features[fmt.Sprintf("%s%d", genreTagPrefix, id)] = struct{}{}
	}
	for _, id := range n.KeywordIDs {
		features[fmt.Sprintf("%s%d", keywordTagPrefix, id)] = struct{}{}
	}
	return features
}

// Jaccard returns the Jaccard index of two feature sets: intersection size
// over union size, 0 when either set is empty. Symmetric and bounded in [0,1].
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for feature := range a {
		if _, ok := b[feature]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// SimilarityAdjacency scores every candidate movie pair sharing at least one
// genre or keyword. Candidates come from the inverted indices, so movies with
// no overlap are never compared. Each unordered pair is scored exactly once:
// a node only scores against candidates with a lexically larger id. Only
// pairs scoring above zero are recorded.
func SimilarityAdjacency(nodes []*Node, idx *FeatureIndex) *Adjacency {
	features := make(map[string]map[string]struct{}, len(nodes))
	for _, n := range nodes {
		features[n.ID] = FeatureSet(n)
	}

	adj := NewAdjacency()
	for _, n := range nodes {
		seen := make(map[string]bool)

		consider := func(candidate *Node) {
			if candidate.ID == n.ID || seen[candidate.ID] {
				return
			}
			seen[candidate.ID] = true
			// Canonical ordering: the lexically smaller id does the scoring,
			// so the pair is never scored twice
			if n.ID > candidate.ID {
				return
			}
			score := Jaccard(features[n.ID], features[candidate.ID])
			if score > 0 {
				adj.AddPair(n.ID, candidate.ID, score)
			}
		}

		for _, id := range n.GenreIDs {
			for _, candidate := range idx.Genres[id] {
				consider(candidate)
			}
		}
		for _, id := range n.KeywordIDs {
			for _, candidate := range idx.Keywords[id] {
				consider(candidate)
			}
		}
	}

	return adj
}

// CoActorAdjacency links movies by shared cast. For each actor, every
// unordered pair of that actor's movies accumulates one co-occurrence count;
// the final edge weight is min(1, count/2), so two shared actors saturate
// the edge. The count/2 saturation is long-standing behavior, kept as is.
func CoActorAdjacency(idx *FeatureIndex) *Adjacency {
	counts := make(map[string]int)
	pairs := make(map[string][2]string)
	var order []string

	// Sorted actor ids keep pair discovery order stable across runs
	actorIDs := make([]int, 0, len(idx.Actors))
	for id := range idx.Actors {
		actorIDs = append(actorIDs, id)
	}
	sort.Ints(actorIDs)

	for _, actorID := range actorIDs {
		movies := idx.Actors[actorID]
		for i := 0; i < len(movies); i++ {
			for j := i + 1; j < len(movies); j++ {
				key := PairKey(movies[i].ID, movies[j].ID)
				if _, known := counts[key]; !known {
					pairs[key] = [2]string{movies[i].ID, movies[j].ID}
					order = append(order, key)
				}
				counts[key]++
			}
		}
	}

	adj := NewAdjacency()
	for _, key := range order {
		pair := pairs[key]
		weight := math.Min(1, float64(counts[key])/2)
		adj.AddPair(pair[0], pair[1], weight)
	}

	return adj
}
