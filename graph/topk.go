package graph

import (
	"sort"
)

// DefaultTopK is the default neighbor cap per node. It bounds the rendered
// edge count to O(K*N) no matter how dense the raw similarity graph is;
// naive pairwise similarity is O(N^2) candidates and would overwhelm the
// layout otherwise.
const DefaultTopK = 6

// TopKLinks prunes each node's adjacency to its K strongest neighbors and
// flattens the result into a deduplicated undirected link list. Sorting is
// stable and descending by weight, so ties resolve by the adjacency's
// original enumeration order. Two nodes can each nominate the other
// independently; the canonical pair key folds those into one link, keeping
// the maximum observed weight.
func TopKLinks(nodes []*Node, adj *Adjacency, k int, linkType LinkType) []*Link {
	if k <= 0 {
		k = DefaultTopK
	}

	linkMap := make(map[string]*Link)
	var order []string

	for _, n := range nodes {
		neighbors := adj.Neighbors(n.ID)
		sort.SliceStable(neighbors, func(i, j int) bool {
			return adj.Weight(n.ID, neighbors[i]) > adj.Weight(n.ID, neighbors[j])
		})
		if len(neighbors) > k {
			neighbors = neighbors[:k]
		}

		for _, other := range neighbors {
			key := PairKey(n.ID, other)
			weight := adj.Weight(n.ID, other)
			if existing, ok := linkMap[key]; ok {
				if weight > existing.Weight {
					existing.Weight = weight
				}
				continue
			}

			source, target := n.ID, other
			if target < source {
				source, target = target, source
			}
			linkMap[key] = &Link{
				Source: source,
				Target: target,
				Type:   linkType,
				Weight: weight,
			}
			order = append(order, key)
		}
	}

	links := make([]*Link, 0, len(linkMap))
	for _, key := range order {
		links = append(links, linkMap[key])
	}
	return links
}
