package layout

import (
	"github.com/cinegraph/cinegraph/graph"
)

// NewTimelineX builds the horizontal positional force for timeline mode.
// Release years map linearly onto a span centered on centerX: the earliest
// year sits at the left edge of the span, the latest at the right. Nodes
// with an unparseable year are pulled to the exact center, as is everything
// when the whole dataset shares a single year.
func NewTimelineX(nodes []*graph.Node, centerX, span, strength float64) *PositionX {
	minYear, maxYear := 0, 0
	found := false
	for _, n := range nodes {
		if n.Year == nil {
			continue
		}
		if !found || *n.Year < minYear {
			minYear = *n.Year
		}
		if !found || *n.Year > maxYear {
			maxYear = *n.Year
		}
		found = true
	}

	target := func(n *graph.Node) float64 {
		if n.Year == nil || !found || maxYear == minYear {
			return centerX
		}
		fraction := float64(*n.Year-minYear) / float64(maxYear-minYear)
		return centerX - span/2 + span*fraction
	}

	return &PositionX{Strength: strength, Target: target}
}
