package graph

// Adjacency is the ephemeral weighted neighbor map built per layout-mode
// computation. It is symmetric by construction: AddPair records both
// directions. When multiple signals produce the same pair, the best (max)
// weight wins, never a sum. Neighbor enumeration preserves insertion order
// so downstream tie-breaking is deterministic.
type Adjacency struct {
	sets map[string]*neighborSet
}

type neighborSet struct {
	order   []string
	weights map[string]float64
}

// NewAdjacency creates an empty adjacency map.
func NewAdjacency() *Adjacency {
	return &Adjacency{sets: make(map[string]*neighborSet)}
}

// AddPair records an undirected weighted pair, keeping the maximum weight if
// the pair was already known.
func (a *Adjacency) AddPair(x, y string, weight float64) {
	a.add(x, y, weight)
	a.add(y, x, weight)
}

func (a *Adjacency) add(from, to string, weight float64) {
	set, ok := a.sets[from]
	if !ok {
		set = &neighborSet{weights: make(map[string]float64)}
		a.sets[from] = set
	}
	if existing, known := set.weights[to]; known {
		if weight > existing {
			set.weights[to] = weight
		}
		return
	}
	set.order = append(set.order, to)
	set.weights[to] = weight
}

// Neighbors returns the neighbor ids of a node in insertion order.
// The returned slice is a copy and safe to reorder.
func (a *Adjacency) Neighbors(id string) []string {
	set, ok := a.sets[id]
	if !ok {
		return nil
	}
	out := make([]string, len(set.order))
	copy(out, set.order)
	return out
}

// Weight returns the recorded weight between two nodes, 0 if unconnected.
func (a *Adjacency) Weight(from, to string) float64 {
	if set, ok := a.sets[from]; ok {
		return set.weights[to]
	}
	return 0
}

// Len returns the number of nodes with at least one neighbor.
func (a *Adjacency) Len() int {
	return len(a.sets)
}
