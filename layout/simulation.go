package layout

import (
	"context"
	"math"

	"github.com/cinegraph/cinegraph/graph"
)

// Simulation defaults, matching the usual force-layout tuning: alpha decays
// geometrically toward zero and the run stops once it crosses alphaMin,
// which works out to roughly 300 steps from a cold start.
const (
	defaultAlphaMin      = 0.001
	defaultVelocityDecay = 0.6 // velocity multiplier per step (damping)
	dragAlphaTarget      = 0.3 // energy held while a node is dragged
	reheatAlpha          = 0.3 // moderate energy for mode transitions
)

// Simulation is the discrete-time relaxation over the active force set.
// Each Step integrates all forces into velocity, applies velocity damping,
// and decays the energy term; below the convergence threshold the
// simulation stops advancing and fires the convergence callback. Single
// goroutine only: the caller advances one step per animation frame and
// renders synchronously inside the same step.
type Simulation struct {
	nodes      []*graph.Node
	forces     map[string]Force
	forceOrder []string

	alpha         float64
	alphaMin      float64
	alphaDecay    float64
	alphaTarget   float64
	velocityDecay float64

	converged  bool
	onConverge func()
}

// NewSimulation creates a simulation over the given nodes with no forces.
func NewSimulation(nodes []*graph.Node) *Simulation {
	return &Simulation{
		nodes:         nodes,
		forces:        make(map[string]Force),
		alpha:         1,
		alphaMin:      defaultAlphaMin,
		alphaDecay:    1 - math.Pow(defaultAlphaMin, 1.0/300),
		velocityDecay: defaultVelocityDecay,
	}
}

// Nodes returns the simulated node set.
func (s *Simulation) Nodes() []*graph.Node { return s.nodes }

// Alpha returns the current energy term.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Converged reports whether the simulation has stopped advancing.
func (s *Simulation) Converged() bool { return s.converged }

// OnConverge registers the callback fired once when alpha falls below the
// convergence threshold. The viewport controller hooks zoom-to-fit here.
func (s *Simulation) OnConverge(fn func()) { s.onConverge = fn }

// SetForce installs or replaces a named force, binding it to the node set.
// Installing a force does not by itself re-energize the simulation; callers
// decide whether the change warrants a Reheat.
func (s *Simulation) SetForce(name string, f Force) {
	if _, exists := s.forces[name]; !exists {
		s.forceOrder = append(s.forceOrder, name)
	}
	f.Initialize(s.nodes)
	s.forces[name] = f
}

// RemoveForce uninstalls a named force. Unknown names are a no-op.
func (s *Simulation) RemoveForce(name string) {
	if _, exists := s.forces[name]; !exists {
		return
	}
	delete(s.forces, name)
	for i, n := range s.forceOrder {
		if n == name {
			s.forceOrder = append(s.forceOrder[:i], s.forceOrder[i+1:]...)
			break
		}
	}
}

// Reheat restarts the simulation from the given energy level without
// resetting positions, so a mode switch visibly re-settles instead of
// jumping discontinuously.
func (s *Simulation) Reheat(alpha float64) {
	s.alpha = alpha
	s.converged = false
}

// ReheatModerate is Reheat at the standard mode-transition energy.
func (s *Simulation) ReheatModerate() { s.Reheat(reheatAlpha) }

// Step advances the simulation by one discrete step. Returns false once the
// simulation has converged (and on every call thereafter until reheated).
func (s *Simulation) Step() bool {
	if s.converged {
		return false
	}

	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	for _, name := range s.forceOrder {
		s.forces[name].Apply(s.alpha)
	}

	for _, n := range s.nodes {
		if n.FX != nil {
			n.X = *n.FX
			n.VX = 0
		} else {
			n.VX *= s.velocityDecay
			n.X += n.VX
		}
		if n.FY != nil {
			n.Y = *n.FY
			n.VY = 0
		} else {
			n.VY *= s.velocityDecay
			n.Y += n.VY
		}
	}

	if s.alpha < s.alphaMin && s.alphaTarget < s.alphaMin {
		s.converged = true
		if s.onConverge != nil {
			s.onConverge()
		}
		return false
	}
	return true
}

// Run steps the simulation to convergence, invoking onStep after each step
// (rendering hooks go there). A nil onStep is allowed. Returns early if the
// context is cancelled.
func (s *Simulation) Run(ctx context.Context, onStep func()) error {
	for s.Step() {
		if onStep != nil {
			onStep()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	if onStep != nil {
		onStep()
	}
	return nil
}

// DragStart pins a node at its current position and holds the simulation
// energy elevated so the rest of the layout keeps adapting live.
func (s *Simulation) DragStart(n *graph.Node) {
	fx, fy := n.X, n.Y
	n.FX, n.FY = &fx, &fy
	s.alphaTarget = dragAlphaTarget
	s.converged = false
}

// Drag moves a pinned node.
func (s *Simulation) Drag(n *graph.Node, x, y float64) {
	if n.FX == nil {
		return
	}
	*n.FX = x
	*n.FY = y
}

// DragEnd releases the pin and lets the energy decay toward convergence.
func (s *Simulation) DragEnd(n *graph.Node) {
	n.FX, n.FY = nil, nil
	s.alphaTarget = 0
}
