package kgx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphAddNodeMerges(t *testing.T) {
	g := NewGraph()
	g.AddNode(&Node{ID: "HP:0000118", Category: "biolink:PhenotypicFeature", ProvidedBy: "phenio"})
	g.AddNode(&Node{
		ID:         "HP:0000118",
		Name:       "Phenotypic abnormality",
		Xrefs:      []string{"MP:0000001"},
		ProvidedBy: "upheno",
	})

	require.Equal(t, 1, g.NodeCount())
	n, ok := g.Node("HP:0000118")
	require.True(t, ok)
	assert.Equal(t, "biolink:PhenotypicFeature", n.Category)
	assert.Equal(t, "Phenotypic abnormality", n.Name)
	assert.Equal(t, []string{"MP:0000001"}, n.Xrefs)
	assert.Equal(t, "phenio|upheno", n.ProvidedBy)
}

func TestGraphAddEdgeDedup(t *testing.T) {
	g := NewGraph()
	e := &Edge{Subject: "HP:1", Predicate: "biolink:subclass_of", Object: "HP:2"}

	assert.True(t, g.AddEdge(e))
	assert.False(t, g.AddEdge(&Edge{Subject: "HP:1", Predicate: "biolink:subclass_of", Object: "HP:2", ID: "other"}))
	assert.True(t, g.AddEdge(&Edge{Subject: "HP:1", Predicate: "biolink:related_to", Object: "HP:2"}))
	assert.Equal(t, 2, g.EdgeCount())
}

func TestRoundTrip(t *testing.T) {
	g := NewGraph()
	g.AddNode(&Node{
		ID:       "HP:0000118",
		Category: "biolink:PhenotypicFeature",
		Name:     "Phenotypic abnormality",
		Synonyms: []string{"abnormality", "anomaly"},
	})
	g.AddNode(&Node{ID: "MP:0000001", Category: "biolink:PhenotypicFeature", Deprecated: true})
	g.AddEdge(&Edge{
		ID:        "e1",
		Subject:   "MP:0000001",
		Predicate: "biolink:same_as",
		Object:    "HP:0000118",
		Relation:  "skos:exactMatch",
	})

	dir := t.TempDir()
	require.NoError(t, WriteGraph(g, dir, "test"))

	got, err := ReadGraph(dir, "test")
	require.NoError(t, err)

	require.Equal(t, 2, got.NodeCount())
	require.Equal(t, 1, got.EdgeCount())

	n, ok := got.Node("HP:0000118")
	require.True(t, ok)
	assert.Equal(t, []string{"abnormality", "anomaly"}, n.Synonyms)

	dep, ok := got.Node("MP:0000001")
	require.True(t, ok)
	assert.True(t, dep.Deprecated)

	e := got.Edges()[0]
	assert.Equal(t, "biolink:same_as", e.Predicate)
	assert.Equal(t, "skos:exactMatch", e.Relation)
}

func TestWriteNodesSanitizes(t *testing.T) {
	var buf bytes.Buffer
	err := WriteNodes(&buf, []*Node{{
		ID:   "X:1",
		Name: "has\ttab and\nnewline",
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "has tab and newline")
}

func TestWriteNodesSanitizesListFields(t *testing.T) {
	var buf bytes.Buffer
	err := WriteNodes(&buf, []*Node{{
		ID:       "X:1",
		Xrefs:    []string{"UMLS:C1", "has|pipe"},
		Synonyms: []string{"syn with\ttab"},
	}})
	require.NoError(t, err)

	// The writer's own reader must accept the output.
	var nodes []*Node
	require.NoError(t, ReadNodes(bytes.NewReader(buf.Bytes()), func(n *Node) {
		nodes = append(nodes, n)
	}))
	require.Len(t, nodes, 1)
	assert.Equal(t, []string{"UMLS:C1", "has pipe"}, nodes[0].Xrefs)
	assert.Equal(t, []string{"syn with tab"}, nodes[0].Synonyms)
}

func TestReadNodesHeaderDriven(t *testing.T) {
	// Columns out of canonical order, extra column ignored.
	in := "name\tid\tweird\nAbnormality\tHP:1\tx\n"
	var nodes []*Node
	require.NoError(t, ReadNodes(strings.NewReader(in), func(n *Node) {
		nodes = append(nodes, n)
	}))
	require.Len(t, nodes, 1)
	assert.Equal(t, "HP:1", nodes[0].ID)
	assert.Equal(t, "Abnormality", nodes[0].Name)
}

func TestReadNodesErrors(t *testing.T) {
	err := ReadNodes(strings.NewReader(""), func(*Node) {})
	assert.ErrorContains(t, err, "missing header")

	err = ReadNodes(strings.NewReader("id\nHP:1\textra\n"), func(*Node) {})
	assert.ErrorContains(t, err, "cells")

	err = ReadNodes(strings.NewReader("id\tname\n\tno id here\n"), func(*Node) {})
	assert.ErrorContains(t, err, "without id")
}

func TestMerge(t *testing.T) {
	a := NewGraph()
	a.AddNode(&Node{ID: "HP:1", Category: "biolink:PhenotypicFeature"})
	a.AddEdge(&Edge{Subject: "HP:1", Predicate: "biolink:subclass_of", Object: "HP:2"})

	b := NewGraph()
	b.AddNode(&Node{ID: "HP:1", Name: "named"})
	b.AddNode(&Node{ID: "HP:2"})
	b.AddEdge(&Edge{Subject: "HP:1", Predicate: "biolink:subclass_of", Object: "HP:2"})
	b.AddEdge(&Edge{Subject: "HP:2", Predicate: "biolink:subclass_of", Object: "HP:3"})

	newNodes, newEdges := Merge(a, b)
	assert.Equal(t, 1, newNodes)
	assert.Equal(t, 1, newEdges)
	assert.Equal(t, 2, a.NodeCount())
	assert.Equal(t, 2, a.EdgeCount())

	n, _ := a.Node("HP:1")
	assert.Equal(t, "named", n.Name)
}

func TestMergeAllDoesNotMutateInputs(t *testing.T) {
	a := NewGraph()
	a.AddNode(&Node{ID: "HP:1", Xrefs: []string{"A:1"}})

	b := NewGraph()
	b.AddNode(&Node{ID: "HP:1", Xrefs: []string{"B:1"}})

	merged := MergeAll([]*Graph{a, b})
	n, _ := merged.Node("HP:1")
	assert.Equal(t, []string{"A:1", "B:1"}, n.Xrefs)

	orig, _ := a.Node("HP:1")
	assert.Equal(t, []string{"A:1"}, orig.Xrefs)
}
