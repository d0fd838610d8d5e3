// kgphenio.go
package kgphenio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/knowledge-graph-hub/kgphenio/pkg/core"
	"github.com/knowledge-graph-hub/kgphenio/pkg/download"
	"github.com/knowledge-graph-hub/kgphenio/pkg/index"
	"github.com/knowledge-graph-hub/kgphenio/pkg/kgx"
	"github.com/knowledge-graph-hub/kgphenio/pkg/manifest"
	"github.com/knowledge-graph-hub/kgphenio/pkg/merge"
	"github.com/knowledge-graph-hub/kgphenio/pkg/normalize"
	"github.com/knowledge-graph-hub/kgphenio/pkg/registry"
	"github.com/knowledge-graph-hub/kgphenio/pkg/transform"
)

// Re-export the types external tools need to drive a build
type (
	Config      = core.Config
	Manifest    = manifest.Manifest
	Source      = download.Source
	Graph       = kgx.Graph
	Node        = kgx.Node
	Edge        = kgx.Edge
	MergeReport = merge.Report
	// RegistryEntry is the metadata for a source from the sources/ registry.
	// Re-exported so external tools can access it.
	RegistryEntry = registry.Entry
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// Pipeline drives the download / transform / merge build end to end
type Pipeline struct {
	config   *core.Config
	registry *registry.Registry
}

// NewPipeline creates a pipeline from the given configuration
func NewPipeline(cfg *core.Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}

	// Ensure CachePath is set
	if cfg.CachePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			cfg.CachePath = filepath.Join(os.TempDir(), "kgphenio")
		} else {
			cfg.CachePath = filepath.Join(home, ".cache", "kgphenio")
		}
	}

	return &Pipeline{
		config:   cfg,
		registry: registry.New(cfg.CachePath),
	}, nil
}

// SyncRegistry refreshes the cached source registry. Called lazily so
// offline builds keep working from a warm cache.
func (p *Pipeline) SyncRegistry() error {
	if err := index.Sync(p.config.CachePath); err != nil {
		return &Error{Op: "sync", Err: err}
	}
	return nil
}

// RegistryEntry retrieves the full registry entry for a source.
// The cache is synced on first use.
func (p *Pipeline) RegistryEntry(name string) (*RegistryEntry, error) {
	sourcesDir := filepath.Join(p.config.CachePath, "sources")
	if _, err := os.Stat(sourcesDir); os.IsNotExist(err) {
		if err := p.SyncRegistry(); err != nil {
			return nil, err
		}
	}
	return p.registry.Load(name)
}

// ValidateManifest loads and validates the project manifest.
func (p *Pipeline) ValidateManifest() (*Manifest, error) {
	m, err := manifest.Load(p.config.ManifestPath)
	if err != nil {
		return nil, &Error{Op: "validate", Err: err}
	}
	if err := m.Validate(); err != nil {
		return nil, &Error{Op: "validate", Err: fmt.Errorf("%w: %v", ErrInvalidManifest, err)}
	}
	return m, nil
}

// Download fetches all sources from the download list into the raw data
// directory.
func (p *Pipeline) Download(ctx context.Context, ignoreCache bool) error {
	sources, err := download.LoadSources(p.config.DownloadList)
	if err != nil {
		return &Error{Op: "download", Err: err}
	}

	cfg := download.DefaultConfig()
	cfg.OutputDir = p.config.RawDir
	cfg.IgnoreCache = ignoreCache

	if err := download.NewManager(cfg).FetchAll(ctx, sources); err != nil {
		return &Error{Op: "download", Err: err}
	}
	return nil
}

// Transform runs the named source transforms, or all registered sources
// when names is empty.
func (p *Pipeline) Transform(ctx context.Context, names []string) error {
	if len(names) == 0 {
		names = transform.Sources()
	}

	opts := &transform.Options{
		InputDir:  p.config.RawDir,
		OutputDir: p.config.TransformedDir,
		RobotPath: p.config.RobotPath,
	}

	for _, name := range names {
		t, err := transform.New(name, opts)
		if err != nil {
			return &Error{Op: "transform", Source: name, Err: err}
		}
		if err := t.Run(ctx); err != nil {
			t.Close()
			return &Error{Op: "transform", Source: name, Err: err}
		}
		if err := t.Close(); err != nil {
			return &Error{Op: "transform", Source: name, Err: err}
		}
	}

	return nil
}

// Merge loads the transformed subgraphs, merges them, normalizes the result
// in place and returns the build report.
func (p *Pipeline) Merge(ctx context.Context, processes int) (*MergeReport, error) {
	cfg, err := merge.LoadConfig(p.config.MergeConfig)
	if err != nil {
		return nil, &Error{Op: "merge", Err: err}
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = p.config.MergedDir
	}

	report, err := merge.NewMerger(cfg).Run(ctx, processes)
	if err != nil {
		return nil, &Error{Op: "merge", Err: err}
	}
	if report.TotalNodes == 0 {
		return nil, &Error{Op: "merge", Err: ErrEmptyGraph}
	}

	n := normalize.New()
	if pm, err := normalize.LoadPrefixMap(filepath.Join(p.config.CachePath, "prefixes.yaml")); err == nil {
		n = normalize.NewWithPrefixMap(pm)
	}
	if _, err := n.File(cfg.Output.Directory, cfg.Name); err != nil {
		return nil, &Error{Op: "normalize", Err: err}
	}

	return report, nil
}
