// Package transform defines the source transform interface and the registry
// of available sources.
package transform

import "context"

// Transform turns one raw source into a KGX nodes/edges TSV pair.
type Transform interface {
	// Name returns the source name (e.g. "phenio").
	Name() string

	// Run performs the transform.
	Run(ctx context.Context) error

	// Close cleans up resources.
	Close() error
}

// Options configures transform construction, shared by all sources.
type Options struct {
	// InputDir is the raw data directory. Default: data/raw.
	InputDir string

	// OutputDir is the transformed data directory; each source writes into
	// its own subdirectory. Default: data/transformed.
	OutputDir string

	// RobotPath is an explicit ROBOT executable for ontology sources.
	RobotPath string
}
