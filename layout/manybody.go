package layout

import (
	"math"

	"github.com/cinegraph/cinegraph/graph"
)

// ManyBody applies mutual repulsion between all node pairs. Negative
// strength repels. Interaction is bounded: pairs beyond DistanceMax are
// skipped entirely and pairs closer than DistanceMin are treated as being at
// DistanceMin, which keeps the pairwise pass tractable and the forces
// finite at close range. Datasets here are a few hundred to a few thousand
// nodes, so the O(n^2) pass is acceptable without a quadtree.
type ManyBody struct {
	Strength    float64
	DistanceMin float64
	DistanceMax float64

	nodes []*graph.Node
}

func (m *ManyBody) Initialize(nodes []*graph.Node) { m.nodes = nodes }

func (m *ManyBody) Apply(alpha float64) {
	min2 := m.DistanceMin * m.DistanceMin
	max2 := m.DistanceMax * m.DistanceMax

	for i := 0; i < len(m.nodes); i++ {
		a := m.nodes[i]
		for j := i + 1; j < len(m.nodes); j++ {
			b := m.nodes[j]

			dx := b.X - a.X
			dy := b.Y - a.Y
			d2 := dx*dx + dy*dy

			if max2 > 0 && d2 > max2 {
				continue
			}
			if d2 == 0 {
				// Coincident nodes: nudge apart along a fixed axis
				dx = 1e-6
				d2 = dx * dx
			}
			if min2 > 0 && d2 < min2 {
				d2 = math.Sqrt(d2*min2) + 1e-12
			}

			w := m.Strength * alpha / d2
			a.VX += dx * w
			a.VY += dy * w
			b.VX -= dx * w
			b.VY -= dy * w
		}
	}
}
