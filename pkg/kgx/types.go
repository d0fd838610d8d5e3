// Package kgx implements the KGX TSV graph exchange format: typed nodes and
// edges serialized as <name>_nodes.tsv / <name>_edges.tsv pairs.
package kgx

import "strings"

// ListSeparator joins multivalued fields (synonyms, xrefs) in a TSV cell.
const ListSeparator = "|"

// Node is a single graph entity.
type Node struct {
	ID          string // curie, e.g. "HP:0000118"
	Category    string // biolink category curie
	Name        string
	Description string
	Xrefs       []string
	Synonyms    []string
	IRI         string
	ProvidedBy  string
	Deprecated  bool
}

// Edge is a typed relationship between two nodes.
type Edge struct {
	ID              string
	Subject         string
	Predicate       string // biolink predicate curie
	Object          string
	Relation        string
	ProvidedBy      string
	KnowledgeSource string
}

// Key identifies an edge for deduplication. Two edges with the same
// subject, predicate and object are the same statement.
func (e *Edge) Key() string {
	return e.Subject + "\x00" + e.Predicate + "\x00" + e.Object
}

// Graph is an in-memory node/edge set with id-based node lookup.
type Graph struct {
	nodes   []*Node
	edges   []*Edge
	nodeIdx map[string]*Node
	edgeIdx map[string]struct{}
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodeIdx: make(map[string]*Node),
		edgeIdx: make(map[string]struct{}),
	}
}

// AddNode inserts a node, merging it with an existing node of the same id.
// The earlier node's populated fields win; missing fields are filled in and
// xrefs/synonyms are unioned.
func (g *Graph) AddNode(n *Node) {
	existing, ok := g.nodeIdx[n.ID]
	if !ok {
		g.nodes = append(g.nodes, n)
		g.nodeIdx[n.ID] = n
		return
	}
	mergeNode(existing, n)
}

// AddEdge inserts an edge unless an edge with the same key already exists.
// Reports whether the edge was added.
func (g *Graph) AddEdge(e *Edge) bool {
	key := e.Key()
	if _, ok := g.edgeIdx[key]; ok {
		return false
	}
	g.edges = append(g.edges, e)
	g.edgeIdx[key] = struct{}{}
	return true
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodeIdx[id]
	return n, ok
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []*Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

func mergeNode(dst, src *Node) {
	if dst.Category == "" {
		dst.Category = src.Category
	}
	if dst.Name == "" {
		dst.Name = src.Name
	}
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.IRI == "" {
		dst.IRI = src.IRI
	}
	if dst.ProvidedBy == "" {
		dst.ProvidedBy = src.ProvidedBy
	} else if src.ProvidedBy != "" && !strings.Contains(dst.ProvidedBy, src.ProvidedBy) {
		dst.ProvidedBy = dst.ProvidedBy + ListSeparator + src.ProvidedBy
	}
	dst.Xrefs = unionStrings(dst.Xrefs, src.Xrefs)
	dst.Synonyms = unionStrings(dst.Synonyms, src.Synonyms)
	dst.Deprecated = dst.Deprecated || src.Deprecated
}

func unionStrings(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]struct{}, len(a))
	for _, s := range a {
		seen[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := seen[s]; !ok {
			a = append(a, s)
			seen[s] = struct{}{}
		}
	}
	return a
}
