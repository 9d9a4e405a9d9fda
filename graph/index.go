package graph

// FeatureIndex holds the three inverted indices used for candidate
// generation: relation id to the movie nodes declaring it. A pure function
// of the node list; rebuilt on every mode computation rather than updated
// incrementally.
type FeatureIndex struct {
	Genres   map[int][]*Node
	Keywords map[int][]*Node
	Actors   map[int][]*Node
}

// BuildFeatureIndex builds the inverted indices from analytical movie nodes.
// Empty input yields empty (non-nil) indices. A movie with no genres
// contributes nothing to the genre index.
func BuildFeatureIndex(nodes []*Node) *FeatureIndex {
	idx := &FeatureIndex{
		Genres:   make(map[int][]*Node),
		Keywords: make(map[int][]*Node),
		Actors:   make(map[int][]*Node),
	}

	for _, node := range nodes {
		for _, id := range node.GenreIDs {
			idx.Genres[id] = append(idx.Genres[id], node)
		}
		for _, id := range node.KeywordIDs {
			idx.Keywords[id] = append(idx.Keywords[id], node)
		}
		for _, id := range node.ActorIDs {
			idx.Actors[id] = append(idx.Actors[id], node)
		}
	}

	return idx
}
