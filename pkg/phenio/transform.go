// Package phenio transforms the PHENIO ontology into KGX nodes and edges:
// locate the OWL, repair known-bad lines, convert to obographs JSON through
// ROBOT, then emit the TSV pair.
package phenio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/knowledge-graph-hub/kgphenio/pkg/archive"
	"github.com/knowledge-graph-hub/kgphenio/pkg/kgx"
	"github.com/knowledge-graph-hub/kgphenio/pkg/obograph"
	"github.com/knowledge-graph-hub/kgphenio/pkg/robot"
)

// Config configures the PHENIO transform.
type Config struct {
	InputDir  string // raw data directory. Default: data/raw
	OutputDir string // transformed output directory. Default: data/transformed
	RobotPath string // explicit ROBOT executable, empty for auto-detect
}

// Transformer runs the PHENIO transform.
type Transformer struct {
	config *Config
	robot  *robot.Robot
}

// New creates a PHENIO transformer and verifies ROBOT is available.
func New(cfg *Config) (*Transformer, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.InputDir == "" {
		cfg.InputDir = "data/raw"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "data/transformed"
	}

	r, err := robot.Detect(cfg.RobotPath)
	if err != nil {
		return nil, fmt.Errorf("setting up robot: %w", err)
	}
	log.Debug().Str("robot", r.Path).Msg("robot ready")

	return &Transformer{config: cfg, robot: r}, nil
}

// Name returns the source name.
func (t *Transformer) Name() string { return SourceName }

// Run performs the full transform for the ontology input file.
func (t *Transformer) Run(ctx context.Context) error {
	dataFile, err := t.locateOntology()
	if err != nil {
		return err
	}

	removed, err := Repair(dataFile)
	if err != nil {
		return err
	}
	if removed > 0 {
		log.Info().Int("lines", removed).Msg("repaired ontology annotations")
	}

	jsonFile := strings.TrimSuffix(dataFile, filepath.Ext(dataFile)) + ".json"
	if err := t.robot.Convert(ctx, dataFile, jsonFile); err != nil {
		return err
	}

	doc, err := obograph.Load(jsonFile)
	if err != nil {
		return err
	}

	g := doc.ToKGX(SourceName)
	log.Info().Int("nodes", g.NodeCount()).Int("edges", g.EdgeCount()).Msg("transformed phenio")

	outDir := filepath.Join(t.config.OutputDir, SourceName)
	if err := kgx.WriteGraph(g, outDir, SourceName); err != nil {
		return err
	}

	return nil
}

// Close releases resources. The transformer holds none.
func (t *Transformer) Close() error { return nil }

// locateOntology finds the OWL input, decompressing the .tar.gz companion
// when only that is present.
func (t *Transformer) locateOntology() (string, error) {
	dataFile := filepath.Join(t.config.InputDir, OntologyFile)
	if _, err := os.Stat(dataFile); err == nil {
		log.Debug().Str("file", dataFile).Msg("found ontology")
		return dataFile, nil
	}

	compressed := dataFile + ".tar.gz"
	if _, err := os.Stat(compressed); err == nil {
		log.Info().Str("file", compressed).Msg("decompressing ontology")
		if err := archive.ExtractTarGz(compressed, t.config.InputDir); err != nil {
			return "", fmt.Errorf("decompressing %s: %w", compressed, err)
		}
		if _, err := os.Stat(dataFile); err != nil {
			return "", fmt.Errorf("archive %s did not contain %s", compressed, OntologyFile)
		}
		return dataFile, nil
	}

	return "", fmt.Errorf("ontology %s not found in %s", OntologyFile, t.config.InputDir)
}
