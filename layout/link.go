package layout

import (
	"math"

	"github.com/cinegraph/cinegraph/graph"
)

// LinkAttraction is the mode-specific edge force. Each link acts as a spring
// toward the configured rest distance. Effective strength is the
// user-adjustable base strength scaled by the edge's own weight: low-weight
// edges pull proportionally less. Typed entity edges carry no weight and are
// treated as weight 1.
type LinkAttraction struct {
	Links        []*graph.Link
	Distance     float64
	BaseStrength float64

	sources []*graph.Node
	targets []*graph.Node
	weights []float64
}

// Initialize resolves link endpoints against the node set. Links whose
// endpoints are not present are dropped silently; the link set and node set
// always come from the same build, so a miss indicates a filtered node, not
// an error.
func (l *LinkAttraction) Initialize(nodes []*graph.Node) {
	byID := make(map[string]*graph.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	l.sources = l.sources[:0]
	l.targets = l.targets[:0]
	l.weights = l.weights[:0]
	for _, link := range l.Links {
		source, okS := byID[link.Source]
		target, okT := byID[link.Target]
		if !okS || !okT {
			continue
		}
		weight := link.Weight
		if weight == 0 {
			weight = 1
		}
		l.sources = append(l.sources, source)
		l.targets = append(l.targets, target)
		l.weights = append(l.weights, weight)
	}
}

func (l *LinkAttraction) Apply(alpha float64) {
	for i := range l.sources {
		source, target := l.sources[i], l.targets[i]

		dx := target.X + target.VX - source.X - source.VX
		dy := target.Y + target.VY - source.Y - source.VY
		d := math.Sqrt(dx*dx + dy*dy)
		if d == 0 {
			dx = 1e-6
			d = 1e-6
		}

		strength := l.BaseStrength * l.weights[i]
		delta := (d - l.Distance) / d * alpha * strength

		target.VX -= dx * delta * 0.5
		target.VY -= dy * delta * 0.5
		source.VX += dx * delta * 0.5
		source.VY += dy * delta * 0.5
	}
}
