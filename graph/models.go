package graph

import (
	"time"
)

// NodeType classifies graph nodes. The entity-relationship view uses all
// four; the analytical views use movie nodes only.
type NodeType string

const (
	NodeMovie   NodeType = "movie"
	NodeGenre   NodeType = "genre"
	NodePerson  NodeType = "person"
	NodeKeyword NodeType = "keyword"
)

// LinkType classifies edges. Entity-relationship edges carry the relation
// that produced them; analytical edges carry the mode that computed them.
type LinkType string

const (
	LinkGenre      LinkType = "genre"
	LinkCast       LinkType = "cast"
	LinkKeyword    LinkType = "keyword"
	LinkSimilarity LinkType = "similarity"
	LinkCoActor    LinkType = "coactor"
)

// Node represents an entity in the graph. Identity is the namespaced ID
// string (e.g. "movie-42"); builders enforce at most one node per ID.
// Position and velocity are simulation state and evolve continuously while
// the layout runs; FX/FY pin the node while it is dragged.
type Node struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Type    NodeType `json:"type"`
	Visible bool     `json:"visible"`

	// Movie metadata (entity-relationship view)
	ReleaseDate string `json:"release_date,omitempty"`
	Runtime     int    `json:"runtime,omitempty"`

	// Analytical metadata (movie-only views). Year is nil when the release
	// date is missing or unparseable.
	Year       *int  `json:"year,omitempty"`
	GenreIDs   []int `json:"-"`
	ActorIDs   []int `json:"-"`
	KeywordIDs []int `json:"-"`

	// Simulation state
	X  float64  `json:"x"`
	Y  float64  `json:"y"`
	VX float64  `json:"-"`
	VY float64  `json:"-"`
	FX *float64 `json:"-"`
	FY *float64 `json:"-"`
}

// Link represents a connection between two nodes. An undirected edge between
// A and B appears at most once regardless of discovery order; builders
// enforce this with a canonical ordered key. Weight uses the D3 "value" name
// on the wire.
type Link struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   LinkType `json:"type,omitempty"`
	Weight float64  `json:"value,omitempty"`
	Hidden bool     `json:"hidden,omitempty"`
}

// Graph is the complete structure handed to the layout engine and renderer.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Links []*Link `json:"links"`
	Meta  Meta    `json:"meta"`
}

// Meta contains metadata about the graph.
type Meta struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Stats       Stats          `json:"stats"`
	NodeTypes   []NodeTypeInfo `json:"node_types,omitempty"`
}

// NodeTypeInfo reports how many nodes of a type the graph carries, for the
// frontend legend and the type filter.
type NodeTypeInfo struct {
	Type  NodeType `json:"type"`
	Count int      `json:"count"`
}

// Stats provides graph statistics.
type Stats struct {
	TotalNodes int `json:"total_nodes,omitempty"`
	TotalEdges int `json:"total_edges,omitempty"`
}

// NodeByID returns the node with the given ID, or nil.
func (g *Graph) NodeByID(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
