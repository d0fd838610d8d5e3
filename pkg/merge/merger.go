package merge

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/knowledge-graph-hub/kgphenio/pkg/kgx"
)

// Merger loads the configured subgraphs and produces the merged graph.
type Merger struct {
	config *Config
}

// NewMerger creates a merger for the given config.
func NewMerger(cfg *Config) *Merger {
	return &Merger{config: cfg}
}

// Run loads all subgraphs (up to processes concurrently), merges them in
// source-name order and writes the merged TSV pair plus a build report.
// The merge result is deterministic regardless of load concurrency.
func (m *Merger) Run(ctx context.Context, processes int) (*Report, error) {
	if processes < 1 {
		processes = 1
	}

	names := m.config.SourceNames()
	loaded := make(map[string]*kgx.Graph, len(names))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(processes)

	for _, name := range names {
		name := name
		files := m.config.Sources[name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			graph, err := loadSource(files)
			if err != nil {
				return fmt.Errorf("loading source %s: %w", name, err)
			}
			log.Info().Str("source", name).
				Int("nodes", graph.NodeCount()).Int("edges", graph.EdgeCount()).
				Msg("loaded subgraph")

			mu.Lock()
			loaded[name] = graph
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := kgx.NewGraph()
	report := NewReport(m.config.Name)
	for _, name := range names {
		sub := loaded[name]
		newNodes, newEdges := kgx.Merge(merged, sub)
		report.AddSource(name, SourceStats{
			Nodes:    sub.NodeCount(),
			Edges:    sub.EdgeCount(),
			NewNodes: newNodes,
			NewEdges: newEdges,
		})
	}
	report.Finish(merged.NodeCount(), merged.EdgeCount())

	outDir := m.config.Output.Directory
	if outDir == "" {
		outDir = "data/merged"
	}
	if err := kgx.WriteGraph(merged, outDir, m.config.Name); err != nil {
		return nil, fmt.Errorf("writing merged graph: %w", err)
	}
	if err := report.Write(outDir); err != nil {
		return nil, fmt.Errorf("writing build report: %w", err)
	}

	log.Info().Str("graph", m.config.Name).
		Int("nodes", merged.NodeCount()).Int("edges", merged.EdgeCount()).
		Msg("merged graph written")

	return report, nil
}

func loadSource(files SourceFiles) (*kgx.Graph, error) {
	graph := kgx.NewGraph()

	if err := withFile(files.Nodes, func(r io.Reader) error {
		return kgx.ReadNodes(r, graph.AddNode)
	}); err != nil {
		return nil, err
	}

	if err := withFile(files.Edges, func(r io.Reader) error {
		return kgx.ReadEdges(r, func(e *kgx.Edge) { graph.AddEdge(e) })
	}); err != nil {
		return nil, err
	}

	return graph, nil
}

func withFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
