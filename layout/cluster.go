package layout

import (
	"math"
	"sort"

	"github.com/cinegraph/cinegraph/graph"
)

// GenreAnchors arranges the genre ids found across the node set on a circle
// around the given center, evenly spaced by sorted discovery order. The
// anchors are fixed for the life of a dataset so genre neighborhoods stay
// put across mode switches.
func GenreAnchors(nodes []*graph.Node, cx, cy, radius float64) map[int]Point {
	seen := make(map[int]bool)
	var genreIDs []int
	for _, n := range nodes {
		for _, id := range n.GenreIDs {
			if !seen[id] {
				seen[id] = true
				genreIDs = append(genreIDs, id)
			}
		}
	}
	sort.Ints(genreIDs)

	anchors := make(map[int]Point, len(genreIDs))
	for i, id := range genreIDs {
		angle := 2 * math.Pi * float64(i) / float64(len(genreIDs))
		anchors[id] = Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return anchors
}

// GenreCluster pulls each movie toward the centroid of its genres' anchor
// positions. Always active: it keeps visually related movies together even
// when the active link set is sparse. Nodes without genres are unaffected.
type GenreCluster struct {
	Anchors  map[int]Point
	Strength float64

	nodes []*graph.Node
}

func (g *GenreCluster) Initialize(nodes []*graph.Node) { g.nodes = nodes }

func (g *GenreCluster) Apply(alpha float64) {
	for _, n := range g.nodes {
		if len(n.GenreIDs) == 0 {
			continue
		}

		var cx, cy float64
		count := 0
		for _, id := range n.GenreIDs {
			anchor, ok := g.Anchors[id]
			if !ok {
				continue
			}
			cx += anchor.X
			cy += anchor.Y
			count++
		}
		if count == 0 {
			continue
		}
		cx /= float64(count)
		cy /= float64(count)

		n.VX += (cx - n.X) * g.Strength * alpha
		n.VY += (cy - n.Y) * g.Strength * alpha
	}
}
