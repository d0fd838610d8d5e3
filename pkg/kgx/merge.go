package kgx

// Merge folds src into dst. Nodes merge by id, edges deduplicate by
// (subject, predicate, object). Returns counts of nodes and edges that were
// new to dst.
func Merge(dst, src *Graph) (newNodes, newEdges int) {
	for _, n := range src.Nodes() {
		if _, ok := dst.Node(n.ID); !ok {
			newNodes++
		}
		dst.AddNode(cloneNode(n))
	}
	for _, e := range src.Edges() {
		clone := *e
		if dst.AddEdge(&clone) {
			newEdges++
		}
	}
	return newNodes, newEdges
}

// MergeAll merges the given graphs into one, in order, so the result is
// deterministic for a fixed input order.
func MergeAll(graphs []*Graph) *Graph {
	merged := NewGraph()
	for _, g := range graphs {
		Merge(merged, g)
	}
	return merged
}

func cloneNode(n *Node) *Node {
	clone := *n
	clone.Xrefs = append([]string(nil), n.Xrefs...)
	clone.Synonyms = append([]string(nil), n.Synonyms...)
	return &clone
}
