package kgphenio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-graph-hub/kgphenio/pkg/core"
	"github.com/knowledge-graph-hub/kgphenio/pkg/kgx"
)

func TestValidateManifest(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.CachePath = t.TempDir()

	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	m, err := p.ValidateManifest()
	require.NoError(t, err)
	assert.Equal(t, "kg-phenio", m.Project.Name)
}

func TestValidateManifestInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyproject.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[tool.poetry]
name = "broken"
version = "0.1.0"
`), 0644))

	cfg := core.DefaultConfig()
	cfg.CachePath = t.TempDir()
	cfg.ManifestPath = path

	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	_, err = p.ValidateManifest()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestPipelineMerge(t *testing.T) {
	dir := t.TempDir()

	sub := kgx.NewGraph()
	sub.AddNode(&kgx.Node{ID: "hp:1", Category: "biolink:PhenotypicFeature"})
	sub.AddNode(&kgx.Node{ID: "MP:1", Category: "biolink:PhenotypicFeature"})
	sub.AddEdge(&kgx.Edge{Subject: "hp:1", Predicate: "biolink:same_as", Object: "MP:1"})
	require.NoError(t, kgx.WriteGraph(sub, filepath.Join(dir, "upheno"), "upheno"))

	mergeYaml := filepath.Join(dir, "merge.yaml")
	require.NoError(t, os.WriteFile(mergeYaml, []byte(`
name: kg-phenio
output:
  directory: `+filepath.Join(dir, "merged")+`
sources:
  upheno:
    nodes: `+filepath.Join(dir, "upheno", "upheno_nodes.tsv")+`
    edges: `+filepath.Join(dir, "upheno", "upheno_edges.tsv")+`
`), 0644))

	cfg := core.DefaultConfig()
	cfg.CachePath = t.TempDir()
	cfg.MergeConfig = mergeYaml

	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	report, err := p.Merge(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalNodes)
	assert.Equal(t, 1, report.TotalEdges)

	// Normalization ran on the merged output.
	merged, err := kgx.ReadGraph(filepath.Join(dir, "merged"), "kg-phenio")
	require.NoError(t, err)
	_, ok := merged.Node("HP:1")
	assert.True(t, ok)
	_, ok = merged.Node("hp:1")
	assert.False(t, ok)
}

func TestPipelineMergeUsesConfiguredOutputDir(t *testing.T) {
	dir := t.TempDir()

	sub := kgx.NewGraph()
	sub.AddNode(&kgx.Node{ID: "HP:1", Category: "biolink:PhenotypicFeature"})
	require.NoError(t, kgx.WriteGraph(sub, filepath.Join(dir, "phenio"), "phenio"))

	// No output.directory; the pipeline's merged_dir applies.
	mergeYaml := filepath.Join(dir, "merge.yaml")
	require.NoError(t, os.WriteFile(mergeYaml, []byte(`
name: kg-phenio
sources:
  phenio:
    nodes: `+filepath.Join(dir, "phenio", "phenio_nodes.tsv")+`
    edges: `+filepath.Join(dir, "phenio", "phenio_edges.tsv")+`
`), 0644))

	cfg := core.DefaultConfig()
	cfg.CachePath = t.TempDir()
	cfg.MergeConfig = mergeYaml
	cfg.MergedDir = filepath.Join(dir, "final")

	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	_, err = p.Merge(context.Background(), 1)
	require.NoError(t, err)

	merged, err := kgx.ReadGraph(cfg.MergedDir, "kg-phenio")
	require.NoError(t, err)
	assert.Equal(t, 1, merged.NodeCount())
}

func TestPipelineTransformUnknownSource(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.CachePath = t.TempDir()

	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	err = p.Transform(context.Background(), []string{"hpoa"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source")

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "transform", perr.Op)
	assert.Equal(t, "hpoa", perr.Source)
}

func TestPipelineMergeMissingConfig(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.CachePath = t.TempDir()
	cfg.MergeConfig = filepath.Join(t.TempDir(), "merge.yaml")

	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	_, err = p.Merge(context.Background(), 1)
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "merge", perr.Op)
}
