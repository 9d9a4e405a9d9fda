// Package viewport maintains the zoom/pan transform over the rendered graph
// and implements zoom-to-fit.
package viewport

import (
	"github.com/cinegraph/cinegraph/graph"
)

// Transform is the affine screen transform: screen = world*K + (X, Y).
type Transform struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Identity is the untransformed view.
var Identity = Transform{X: 0, Y: 0, K: 1}

const (
	defaultMinScale = 0.2
	defaultMaxScale = 4.0
	defaultPadding  = 40.0
	zoomStep        = 1.3
	// Zoom-to-fit never zooms all the way in; a single tight cluster should
	// still leave context around it.
	fitScaleCap = 2.0
)

// Viewport holds the transform with a bounded scale range.
type Viewport struct {
	width    float64
	height   float64
	minScale float64
	maxScale float64
	padding  float64

	transform Transform
}

// New creates a viewport of the given pixel size with the identity
// transform.
func New(width, height float64) *Viewport {
	return &Viewport{
		width:     width,
		height:    height,
		minScale:  defaultMinScale,
		maxScale:  defaultMaxScale,
		padding:   defaultPadding,
		transform: Identity,
	}
}

// Transform returns the current transform.
func (v *Viewport) Transform() Transform { return v.transform }

// Reset restores the identity transform.
func (v *Viewport) Reset() { v.transform = Identity }

// ZoomIn applies one multiplicative zoom step, keeping the viewport center
// fixed.
func (v *Viewport) ZoomIn() { v.zoomBy(zoomStep) }

// ZoomOut applies one multiplicative zoom step outward.
func (v *Viewport) ZoomOut() { v.zoomBy(1 / zoomStep) }

// Pan shifts the view by a screen-space delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.transform.X += dx
	v.transform.Y += dy
}

func (v *Viewport) zoomBy(factor float64) {
	k := clamp(v.transform.K*factor, v.minScale, v.maxScale)
	if k == v.transform.K {
		return
	}
	// Keep the world point under the viewport center stationary
	cx := (v.width/2 - v.transform.X) / v.transform.K
	cy := (v.height/2 - v.transform.Y) / v.transform.K
	v.transform = Transform{
		X: v.width/2 - k*cx,
		Y: v.height/2 - k*cy,
		K: k,
	}
}

// ZoomToFit frames all given nodes within the viewport: it computes their
// bounding box, picks the largest scale (capped below maximum zoom) that
// fits the box with fixed padding, and centers it. A zero-size bounding box
// (no nodes, a single node, or all-coincident positions) skips the fit and
// leaves the previous transform unchanged; the return value reports whether
// the transform changed.
func (v *Viewport) ZoomToFit(nodes []*graph.Node) bool {
	if len(nodes) == 0 {
		return false
	}

	minX, minY := nodes[0].X, nodes[0].Y
	maxX, maxY := minX, minY
	for _, n := range nodes[1:] {
		if n.X < minX {
			minX = n.X
		}
		if n.X > maxX {
			maxX = n.X
		}
		if n.Y < minY {
			minY = n.Y
		}
		if n.Y > maxY {
			maxY = n.Y
		}
	}

	boxW := maxX - minX
	boxH := maxY - minY
	if boxW <= 0 || boxH <= 0 {
		return false
	}

	k := min(
		(v.width-2*v.padding)/boxW,
		(v.height-2*v.padding)/boxH,
	)
	k = clamp(k, v.minScale, fitScaleCap)

	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	v.transform = Transform{
		X: v.width/2 - k*cx,
		Y: v.height/2 - k*cy,
		K: k,
	}
	return true
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
