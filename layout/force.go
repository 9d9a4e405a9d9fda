// Package layout implements the physics-based layout engine: a discrete-time
// relaxation over explicit force objects. Forces receive their node set at
// configuration time through Initialize, never through captured state, so
// each force is testable in isolation with fixed positions.
package layout

import (
	"github.com/cinegraph/cinegraph/graph"
)

// Force is one contribution to the simulation step. Apply reads node
// positions and accumulates into node velocities (or, for centering-style
// forces, shifts positions directly), scaled by the simulation's current
// alpha.
type Force interface {
	Initialize(nodes []*graph.Node)
	Apply(alpha float64)
}

// Point is a fixed 2D position.
type Point struct {
	X float64
	Y float64
}

// Center translates all nodes so their centroid sits at the configured
// point. It adjusts positions, not velocities, and ignores alpha.
type Center struct {
	X float64
	Y float64

	nodes []*graph.Node
}

func (c *Center) Initialize(nodes []*graph.Node) { c.nodes = nodes }

func (c *Center) Apply(alpha float64) {
	if len(c.nodes) == 0 {
		return
	}

	var sx, sy float64
	for _, n := range c.nodes {
		sx += n.X
		sy += n.Y
	}
	sx = sx/float64(len(c.nodes)) - c.X
	sy = sy/float64(len(c.nodes)) - c.Y

	for _, n := range c.nodes {
		n.X -= sx
		n.Y -= sy
	}
}

// PositionX pulls each node's horizontal velocity toward a per-node target.
// With a constant target this is plain axis centering; timeline mode supplies
// a per-node target derived from the release year.
type PositionX struct {
	Strength float64
	Target   func(*graph.Node) float64

	nodes []*graph.Node
}

func (p *PositionX) Initialize(nodes []*graph.Node) { p.nodes = nodes }

func (p *PositionX) Apply(alpha float64) {
	for _, n := range p.nodes {
		n.VX += (p.Target(n) - n.X) * p.Strength * alpha
	}
}

// PositionY is the vertical counterpart of PositionX.
type PositionY struct {
	Strength float64
	Target   func(*graph.Node) float64

	nodes []*graph.Node
}

func (p *PositionY) Initialize(nodes []*graph.Node) { p.nodes = nodes }

func (p *PositionY) Apply(alpha float64) {
	for _, n := range p.nodes {
		n.VY += (p.Target(n) - n.Y) * p.Strength * alpha
	}
}

// ConstantTarget adapts a fixed coordinate to the PositionX/PositionY
// target signature.
func ConstantTarget(v float64) func(*graph.Node) float64 {
	return func(*graph.Node) float64 { return v }
}
