package graph

import (
	"fmt"
	"sort"
	"time"

	"github.com/cinegraph/cinegraph/dataset"
)

// BuildEntityGraph assembles the entity-relationship view: one node per
// movie/genre/person/keyword encountered and one typed edge per
// (movie, related entity) occurrence. Edges are deduplicated by the
// (source, target, type) triple. A movie id appearing more than once folds
// into a single node; the first occurrence wins for metadata. Absent relation
// arrays decode as nil and simply contribute nothing.
func BuildEntityGraph(movies []dataset.MovieRecord) *Graph {
	nodeMap := make(map[string]*Node)
	linkMap := make(map[string]*Link)

	addNode := func(id, label string, typ NodeType) *Node {
		if existing, exists := nodeMap[id]; exists {
			return existing
		}
		node := &Node{
			ID:      id,
			Label:   label,
			Type:    typ,
			Visible: true,
		}
		nodeMap[id] = node
		return node
	}

	addLink := func(source, target string, typ LinkType) {
		linkID := fmt.Sprintf("%s_%s_%s", source, target, typ)
		if _, exists := linkMap[linkID]; exists {
			return
		}
		linkMap[linkID] = &Link{
			Source: source,
			Target: target,
			Type:   typ,
		}
	}

	for _, movie := range movies {
		movieID := MovieNodeID(movie.ID)
		if _, exists := nodeMap[movieID]; !exists {
			node := &Node{
				ID:          movieID,
				Label:       movie.Title,
				Type:        NodeMovie,
				Visible:     true,
				ReleaseDate: movie.ReleaseDate,
				Runtime:     movie.Runtime,
			}
			// Genre ids ride along so genre clustering acts on this view too
			for _, genre := range movie.Genres {
				node.GenreIDs = append(node.GenreIDs, genre.ID)
			}
			nodeMap[movieID] = node
		}

		for _, genre := range movie.Genres {
			genreID := GenreNodeID(genre.ID)
			addNode(genreID, genre.Name, NodeGenre)
			addLink(movieID, genreID, LinkGenre)
		}

		for _, member := range movie.Cast {
			personID := PersonNodeID(member.ID)
			addNode(personID, member.Name, NodePerson)
			addLink(movieID, personID, LinkCast)
		}

		for _, keyword := range movie.Keywords {
			keywordID := KeywordNodeID(keyword.ID)
			addNode(keywordID, keyword.Name, NodeKeyword)
			addLink(movieID, keywordID, LinkKeyword)
		}
	}

	// Convert maps to slices with deterministic ordering
	// Sort by ID for consistent output across runs
	nodeIDs := make([]string, 0, len(nodeMap))
	for id := range nodeMap {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Strings(nodeIDs)

	graph := &Graph{
		Nodes: make([]*Node, 0, len(nodeMap)),
		Links: make([]*Link, 0, len(linkMap)),
		Meta: Meta{
			GeneratedAt: time.Now(),
		},
	}
	for _, id := range nodeIDs {
		graph.Nodes = append(graph.Nodes, nodeMap[id])
	}

	linkIDs := make([]string, 0, len(linkMap))
	for id := range linkMap {
		linkIDs = append(linkIDs, id)
	}
	sort.Strings(linkIDs)

	for _, id := range linkIDs {
		graph.Links = append(graph.Links, linkMap[id])
	}

	graph.Meta.Stats.TotalNodes = len(graph.Nodes)
	graph.Meta.Stats.TotalEdges = len(graph.Links)
	graph.Meta.NodeTypes = collectNodeTypeInfo(graph.Nodes)

	return graph
}

// BuildMovieNodes assembles the movie-only analytical nodes: one node per
// distinct movie id carrying the raw relation ids and a derived release
// year. Edges are supplied later by the similarity scorer or the co-actor
// scorer depending on the active mode.
func BuildMovieNodes(movies []dataset.MovieRecord) []*Node {
	seen := make(map[int]bool)
	nodes := make([]*Node, 0, len(movies))

	for _, movie := range movies {
		if seen[movie.ID] {
			continue
		}
		seen[movie.ID] = true

		node := &Node{
			ID:          MovieNodeID(movie.ID),
			Label:       movie.Title,
			Type:        NodeMovie,
			Visible:     true,
			ReleaseDate: movie.ReleaseDate,
			Runtime:     movie.Runtime,
			Year:        ParseYear(movie.ReleaseDate),
		}

		for _, genre := range movie.Genres {
			node.GenreIDs = append(node.GenreIDs, genre.ID)
		}
		for _, member := range movie.Cast {
			node.ActorIDs = append(node.ActorIDs, member.ID)
		}
		for _, keyword := range movie.Keywords {
			node.KeywordIDs = append(node.KeywordIDs, keyword.ID)
		}

		nodes = append(nodes, node)
	}

	return nodes
}

// NewMovieGraph wraps analytical movie nodes and a link list into a Graph.
func NewMovieGraph(nodes []*Node, links []*Link) *Graph {
	g := &Graph{
		Nodes: nodes,
		Links: links,
		Meta: Meta{
			GeneratedAt: time.Now(),
		},
	}
	g.Meta.Stats.TotalNodes = len(nodes)
	g.Meta.Stats.TotalEdges = len(links)
	g.Meta.NodeTypes = collectNodeTypeInfo(nodes)
	return g
}

// collectNodeTypeInfo counts nodes by type for the frontend legend.
// Most common types appear first.
func collectNodeTypeInfo(nodes []*Node) []NodeTypeInfo {
	typeCounts := make(map[NodeType]int)
	for _, node := range nodes {
		typeCounts[node.Type]++
	}

	var nodeTypes []NodeTypeInfo
	for nodeType, count := range typeCounts {
		nodeTypes = append(nodeTypes, NodeTypeInfo{Type: nodeType, Count: count})
	}

	sort.Slice(nodeTypes, func(i, j int) bool {
		if nodeTypes[i].Count != nodeTypes[j].Count {
			return nodeTypes[i].Count > nodeTypes[j].Count
		}
		return nodeTypes[i].Type < nodeTypes[j].Type
	})

	return nodeTypes
}
