package layout

import (
	"math"

	"go.uber.org/zap"

	"github.com/cinegraph/cinegraph/graph"
)

// Force names inside the simulation. The mode transition protocol removes
// and reinstalls forceLink/forceTimeline; the rest are always active.
const (
	forceCharge   = "charge"
	forceCenter   = "center"
	forceX        = "x"
	forceY        = "y"
	forceCollide  = "collide"
	forceCluster  = "cluster"
	forceLink     = "link"
	forceTimeline = "timelineX"
)

// Config tunes the layout engine. Zero values fall back to defaults.
type Config struct {
	Width  float64
	Height float64

	// BaseLinkStrength is the user-adjustable attraction strength; the
	// per-edge weight scales it further.
	BaseLinkStrength float64

	ChargeStrength    float64
	ChargeDistanceMin float64
	ChargeDistanceMax float64
	AxisStrength      float64
	ClusterStrength   float64
	CollideStrength   float64

	// Rest distances for the edge-attraction force. Similarity edges pull
	// slightly further apart than co-actor edges.
	SimilarityLinkDistance float64
	CoActorLinkDistance    float64
	EntityLinkDistance     float64

	TimelineStrength float64
	// TimelineSpanRatio is the fraction of the width the year axis covers.
	TimelineSpanRatio float64
}

// DefaultConfig returns the standard tuning for a desktop-sized viewport.
func DefaultConfig() Config {
	return Config{
		Width:                  1280,
		Height:                 800,
		BaseLinkStrength:       0.5,
		ChargeStrength:         -120,
		ChargeDistanceMin:      8,
		ChargeDistanceMax:      420,
		AxisStrength:           0.05,
		ClusterStrength:        0.08,
		CollideStrength:        0.7,
		SimilarityLinkDistance: 90,
		CoActorLinkDistance:    60,
		EntityLinkDistance:     70,
		TimelineStrength:       0.25,
		TimelineSpanRatio:      0.8,
	}
}

// Engine owns the simulation and applies the layout-mode state machine:
// exactly one of {similarity, coactor, timeline, entity} is active, switched
// only by an explicit mode change through SetMode.
type Engine struct {
	cfg    Config
	sim    *Simulation
	mode   graph.Mode
	links  []*graph.Link
	logger *zap.SugaredLogger
}

// NewEngine creates an engine with the given tuning.
func NewEngine(cfg Config, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		cfg:    cfg,
		logger: logger.Named("layout.engine"),
	}
}

// Configure builds a fresh simulation over the node set and installs the
// always-on forces: bounded repulsion, centering, axis centering on both
// dimensions, typed collision avoidance, and genre clustering. Nodes at the
// origin are seeded on a phyllotaxis spiral so coincident starts separate
// deterministically.
func (e *Engine) Configure(nodes []*graph.Node) {
	cx, cy := e.cfg.Width/2, e.cfg.Height/2
	seedPositions(nodes, cx, cy)

	sim := NewSimulation(nodes)
	sim.SetForce(forceCharge, &ManyBody{
		Strength:    e.cfg.ChargeStrength,
		DistanceMin: e.cfg.ChargeDistanceMin,
		DistanceMax: e.cfg.ChargeDistanceMax,
	})
	sim.SetForce(forceCenter, &Center{X: cx, Y: cy})
	sim.SetForce(forceX, &PositionX{Strength: e.cfg.AxisStrength, Target: ConstantTarget(cx)})
	sim.SetForce(forceY, &PositionY{Strength: e.cfg.AxisStrength, Target: ConstantTarget(cy)})
	sim.SetForce(forceCollide, &Collide{Radius: TypedRadius, Strength: e.cfg.CollideStrength})

	clusterRadius := math.Min(e.cfg.Width, e.cfg.Height) / 3
	sim.SetForce(forceCluster, &GenreCluster{
		Anchors:  GenreAnchors(nodes, cx, cy, clusterRadius),
		Strength: e.cfg.ClusterStrength,
	})

	e.sim = sim
	e.mode = ""
	e.links = nil

	e.logger.Debugw("Engine configured", "nodes", len(nodes))
}

// Simulation returns the active simulation. Nil before Configure.
func (e *Engine) Simulation() *Simulation { return e.sim }

// Mode returns the active layout mode.
func (e *Engine) Mode() graph.Mode { return e.mode }

// Links returns the link set installed by the last SetMode.
func (e *Engine) Links() []*graph.Link { return e.links }

// SetMode runs the mode transition protocol: clear the previous
// mode-specific force, install the new one over the supplied link set, and
// reheat to a moderate energy so the layout visibly re-settles. Timeline
// mode ignores links entirely; its force maps release years onto a bounded
// horizontal span.
func (e *Engine) SetMode(mode graph.Mode, links []*graph.Link) {
	e.sim.RemoveForce(forceLink)
	e.sim.RemoveForce(forceTimeline)

	switch mode {
	case graph.ModeSimilarity:
		e.links = links
		e.sim.SetForce(forceLink, &LinkAttraction{
			Links:        links,
			Distance:     e.cfg.SimilarityLinkDistance,
			BaseStrength: e.cfg.BaseLinkStrength,
		})
	case graph.ModeCoActor:
		e.links = links
		e.sim.SetForce(forceLink, &LinkAttraction{
			Links:        links,
			Distance:     e.cfg.CoActorLinkDistance,
			BaseStrength: e.cfg.BaseLinkStrength,
		})
	case graph.ModeEntity:
		e.links = links
		e.sim.SetForce(forceLink, &LinkAttraction{
			Links:        links,
			Distance:     e.cfg.EntityLinkDistance,
			BaseStrength: e.cfg.BaseLinkStrength,
		})
	case graph.ModeTimeline:
		// Timeline clears links; placement comes from the year axis alone
		e.links = nil
		span := e.cfg.Width * e.cfg.TimelineSpanRatio
		e.sim.SetForce(forceTimeline, NewTimelineX(
			e.sim.Nodes(), e.cfg.Width/2, span, e.cfg.TimelineStrength,
		))
	}

	e.mode = mode
	e.sim.ReheatModerate()

	e.logger.Infow("Layout mode set", "mode", mode, "links", len(e.links))
}

// SetBaseStrength adjusts the edge-attraction base strength and reinstalls
// the link force over the same link set, without recomputing links. Inert in
// timeline mode and before any mode is set.
func (e *Engine) SetBaseStrength(strength float64) {
	e.cfg.BaseLinkStrength = strength
	if e.mode == "" || e.mode == graph.ModeTimeline {
		return
	}
	e.SetMode(e.mode, e.links)
}

// seedPositions places origin-seated nodes on a phyllotaxis spiral around
// the center. Already-positioned nodes (carried over from a previous mode)
// are left alone.
func seedPositions(nodes []*graph.Node, cx, cy float64) {
	const initialRadius = 12.0
	initialAngle := math.Pi * (3 - math.Sqrt(5))

	for i, n := range nodes {
		if n.X != 0 || n.Y != 0 {
			continue
		}
		radius := initialRadius * math.Sqrt(0.5+float64(i))
		angle := float64(i) * initialAngle
		n.X = cx + radius*math.Cos(angle)
		n.Y = cy + radius*math.Sin(angle)
	}
}
