package merge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-graph-hub/kgphenio/pkg/kgx"
)

func writeSubgraph(t *testing.T, dir, name string, g *kgx.Graph) SourceFiles {
	t.Helper()
	require.NoError(t, kgx.WriteGraph(g, dir, name))
	return SourceFiles{
		Nodes: filepath.Join(dir, kgx.NodeFileName(name)),
		Edges: filepath.Join(dir, kgx.EdgeFileName(name)),
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "merge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: kg-phenio
output:
  directory: out
sources:
  phenio:
    nodes: data/transformed/phenio/phenio_nodes.tsv
    edges: data/transformed/phenio/phenio_edges.tsv
  upheno:
    nodes: data/transformed/upheno/upheno_nodes.tsv
    edges: data/transformed/upheno/upheno_edges.tsv
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "kg-phenio", cfg.Name)
	assert.Equal(t, "out", cfg.Output.Directory)
	assert.Equal(t, []string{"phenio", "upheno"}, cfg.SourceNames())
}

func TestLoadConfigOmittedOutputDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "merge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: kg-phenio
sources:
  phenio:
    nodes: n.tsv
    edges: e.tsv
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	// Left empty so the caller can supply its configured merged directory.
	assert.Empty(t, cfg.Output.Directory)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	for name, content := range map[string]string{
		"noname.yaml":    "sources:\n  a:\n    nodes: n\n    edges: e\n",
		"nosources.yaml": "name: kg\n",
		"nofiles.yaml":   "name: kg\nsources:\n  a:\n    nodes: n\n",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		_, err := LoadConfig(path)
		assert.Error(t, err, name)
	}
}

func TestMergerRun(t *testing.T) {
	dir := t.TempDir()

	a := kgx.NewGraph()
	a.AddNode(&kgx.Node{ID: "HP:1", Category: "biolink:PhenotypicFeature"})
	a.AddNode(&kgx.Node{ID: "HP:2", Category: "biolink:PhenotypicFeature"})
	a.AddEdge(&kgx.Edge{Subject: "HP:1", Predicate: "biolink:subclass_of", Object: "HP:2"})

	b := kgx.NewGraph()
	b.AddNode(&kgx.Node{ID: "HP:1", Name: "named"})
	b.AddNode(&kgx.Node{ID: "MP:1", Category: "biolink:PhenotypicFeature"})
	b.AddEdge(&kgx.Edge{Subject: "HP:1", Predicate: "biolink:subclass_of", Object: "HP:2"})
	b.AddEdge(&kgx.Edge{Subject: "MP:1", Predicate: "biolink:same_as", Object: "HP:1"})

	cfg := &Config{Name: "kg-phenio"}
	cfg.Output.Directory = filepath.Join(dir, "merged")
	cfg.Sources = map[string]SourceFiles{
		"phenio": writeSubgraph(t, filepath.Join(dir, "phenio"), "phenio", a),
		"upheno": writeSubgraph(t, filepath.Join(dir, "upheno"), "upheno", b),
	}

	report, err := NewMerger(cfg).Run(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalNodes)
	assert.Equal(t, 2, report.TotalEdges)
	assert.Equal(t, 2, report.Sources["phenio"].NewNodes)
	assert.Equal(t, 1, report.Sources["upheno"].NewNodes)
	assert.Equal(t, 1, report.Sources["upheno"].NewEdges)

	merged, err := kgx.ReadGraph(cfg.Output.Directory, "kg-phenio")
	require.NoError(t, err)
	assert.Equal(t, 3, merged.NodeCount())

	// Node fields from the later source fill gaps in the earlier one.
	n, ok := merged.Node("HP:1")
	require.True(t, ok)
	assert.Equal(t, "named", n.Name)
	assert.Equal(t, "biolink:PhenotypicFeature", n.Category)

	// Build report is persisted alongside the graph.
	got, err := ReadReport(filepath.Join(cfg.Output.Directory, "kg-phenio_report.json"))
	require.NoError(t, err)
	assert.Equal(t, report.TotalNodes, got.TotalNodes)
	assert.NotEmpty(t, got.MergedAt)
}

func TestMergerRunMissingSource(t *testing.T) {
	cfg := &Config{Name: "kg"}
	cfg.Output.Directory = t.TempDir()
	cfg.Sources = map[string]SourceFiles{
		"phenio": {Nodes: "does/not/exist_nodes.tsv", Edges: "does/not/exist_edges.tsv"},
	}

	_, err := NewMerger(cfg).Run(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading source phenio")
}
