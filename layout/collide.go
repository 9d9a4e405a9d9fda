package layout

import (
	"math"

	"github.com/cinegraph/cinegraph/graph"
)

// MovieCollideRadius and SatelliteCollideRadius size the collision circles.
// Movie nodes are drawn larger than satellite entity nodes (genres, people,
// keywords) and get the larger clearance.
const (
	MovieCollideRadius     = 18.0
	SatelliteCollideRadius = 10.0
)

// TypedRadius returns the collision radius for a node based on its type.
func TypedRadius(n *graph.Node) float64 {
	if n.Type == graph.NodeMovie {
		return MovieCollideRadius
	}
	return SatelliteCollideRadius
}

// Collide pushes overlapping nodes apart until their collision circles
// clear. The correction is split between the pair in proportion to the
// square of the other node's radius, so small nodes yield to large ones.
type Collide struct {
	Radius   func(*graph.Node) float64
	Strength float64

	nodes []*graph.Node
	radii []float64
}

func (c *Collide) Initialize(nodes []*graph.Node) {
	c.nodes = nodes
	c.radii = make([]float64, len(nodes))
	for i, n := range nodes {
		c.radii[i] = c.Radius(n)
	}
}

// Apply ignores alpha: overlap is resolved at the same rate throughout the
// simulation so late-stage settling still separates nodes.
func (c *Collide) Apply(alpha float64) {
	for i := 0; i < len(c.nodes); i++ {
		a := c.nodes[i]
		ri := c.radii[i]
		for j := i + 1; j < len(c.nodes); j++ {
			b := c.nodes[j]
			rj := c.radii[j]
			r := ri + rj

			dx := b.X + b.VX - a.X - a.VX
			dy := b.Y + b.VY - a.Y - a.VY
			d2 := dx*dx + dy*dy
			if d2 >= r*r {
				continue
			}

			d := math.Sqrt(d2)
			if d == 0 {
				dx = 1e-6
				d = 1e-6
			}

			overlap := (r - d) / d * c.Strength
			wa := rj * rj / (ri*ri + rj*rj)

			a.VX -= dx * overlap * wa
			a.VY -= dy * overlap * wa
			b.VX += dx * overlap * (1 - wa)
			b.VY += dy * overlap * (1 - wa)
		}
	}
}
