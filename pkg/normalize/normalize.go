// Package normalize cleans up identifiers in the merged graph: canonical
// curie prefix casing and removal of edges left dangling by the merge.
package normalize

import (
	"github.com/rs/zerolog/log"

	"github.com/knowledge-graph-hub/kgphenio/pkg/kgx"
)

// Stats summarizes what a normalization pass changed.
type Stats struct {
	RewrittenNodes int
	RewrittenEdges int
	DroppedEdges   int
}

// Normalizer applies identifier normalization to graphs.
type Normalizer struct {
	prefixes *PrefixMap
}

// New creates a normalizer with the built-in prefix map.
func New() *Normalizer {
	return &Normalizer{prefixes: NewPrefixMap()}
}

// NewWithPrefixMap creates a normalizer with an extended prefix map.
func NewWithPrefixMap(pm *PrefixMap) *Normalizer {
	return &Normalizer{prefixes: pm}
}

// Apply returns a normalized copy of the graph. Node ids, xrefs and edge
// endpoints get canonical prefixes; edges whose endpoints are not in the
// node set are dropped.
func (n *Normalizer) Apply(g *kgx.Graph) (*kgx.Graph, Stats) {
	var stats Stats
	out := kgx.NewGraph()

	for _, node := range g.Nodes() {
		clone := *node
		clone.ID = n.prefixes.Canonical(node.ID)
		if clone.ID != node.ID {
			stats.RewrittenNodes++
		}
		if len(node.Xrefs) > 0 {
			clone.Xrefs = make([]string, len(node.Xrefs))
			for i, xref := range node.Xrefs {
				clone.Xrefs[i] = n.prefixes.Canonical(xref)
			}
		}
		clone.Synonyms = append([]string(nil), node.Synonyms...)
		out.AddNode(&clone)
	}

	for _, edge := range g.Edges() {
		clone := *edge
		clone.Subject = n.prefixes.Canonical(edge.Subject)
		clone.Object = n.prefixes.Canonical(edge.Object)
		clone.Predicate = n.prefixes.Canonical(edge.Predicate)
		clone.Relation = n.prefixes.Canonical(edge.Relation)

		if _, ok := out.Node(clone.Subject); !ok {
			stats.DroppedEdges++
			continue
		}
		if _, ok := out.Node(clone.Object); !ok {
			stats.DroppedEdges++
			continue
		}

		if clone.Subject != edge.Subject || clone.Object != edge.Object {
			stats.RewrittenEdges++
		}
		out.AddEdge(&clone)
	}

	log.Info().
		Int("rewritten_nodes", stats.RewrittenNodes).
		Int("rewritten_edges", stats.RewrittenEdges).
		Int("dropped_edges", stats.DroppedEdges).
		Msg("normalized graph")

	return out, stats
}

// File normalizes a merged TSV pair in place.
func (n *Normalizer) File(dir, name string) (Stats, error) {
	g, err := kgx.ReadGraph(dir, name)
	if err != nil {
		return Stats{}, err
	}

	normalized, stats := n.Apply(g)
	if err := kgx.WriteGraph(normalized, dir, name); err != nil {
		return Stats{}, err
	}

	return stats, nil
}
