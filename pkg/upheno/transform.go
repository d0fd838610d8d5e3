// Package upheno ingests the uPheno cross-species phenotype mapping and
// emits equivalence associations between human (HP) and mouse (MP)
// phenotypes.
package upheno

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/knowledge-graph-hub/kgphenio/pkg/kgx"
	"github.com/knowledge-graph-hub/kgphenio/pkg/obograph"
)

const (
	// SourceName identifies this transform.
	SourceName = "upheno"

	// MappingFile is the expected input file in the raw data directory.
	MappingFile = "upheno_mapping_all.csv"

	category  = "biolink:PhenotypicFeature"
	predicate = "biolink:same_as"
	relation  = "skos:exactMatch"
)

// desiredPrefixes limits the mapping to human and mouse phenotypes.
var desiredPrefixes = map[string]struct{}{
	"HP": {},
	"MP": {},
}

// Config configures the uPheno transform.
type Config struct {
	InputDir    string // default: data/raw
	OutputDir   string // default: data/transformed
	MappingFile string // default: MappingFile inside InputDir
}

// Transformer runs the uPheno mapping transform.
type Transformer struct {
	config *Config
}

// New creates a uPheno transformer.
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
	if cfg.MappingFile == "" {
		cfg.MappingFile = filepath.Join(cfg.InputDir, MappingFile)
	}

	return &Transformer{config: cfg}, nil
}

// Name returns the source name.
func (t *Transformer) Name() string { return SourceName }

// Run reads the mapping rows and writes the nodes/edges TSV pair.
func (t *Transformer) Run(ctx context.Context) error {
	f, err := os.Open(t.config.MappingFile)
	if err != nil {
		return fmt.Errorf("opening mapping: %w", err)
	}
	defer f.Close()

	g, err := transformRows(ctx, f)
	if err != nil {
		return fmt.Errorf("transforming %s: %w", t.config.MappingFile, err)
	}

	log.Info().Int("nodes", g.NodeCount()).Int("edges", g.EdgeCount()).Msg("transformed upheno")

	outDir := filepath.Join(t.config.OutputDir, SourceName)
	return kgx.WriteGraph(g, outDir, SourceName)
}

// Close releases resources. The transformer holds none.
func (t *Transformer) Close() error { return nil }

// transformRows processes the mapping CSV: each row yields two phenotype
// nodes and, when both fall in the desired species, one equivalence edge.
func transformRows(ctx context.Context, r io.Reader) (*kgx.Graph, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}
	for _, col := range []string{"p1", "label_x", "p2", "label_y"} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("mapping is missing column %q", col)
		}
	}

	g := kgx.NewGraph()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		cell := func(col string) string {
			i := index[col]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}

		p1 := mappingNode(cell("p1"), cell("label_x"))
		p2 := mappingNode(cell("p2"), cell("label_y"))
		if p1 == nil || p2 == nil {
			continue
		}

		if !desiredPrefix(p1.ID) || !desiredPrefix(p2.ID) {
			continue
		}

		g.AddNode(p1)
		g.AddNode(p2)
		g.AddEdge(&kgx.Edge{
			ID:         "uuid:" + uuid.NewString(),
			Subject:    p1.ID,
			Predicate:  predicate,
			Object:     p2.ID,
			Relation:   relation,
			ProvidedBy: SourceName,
		})
	}

	return g, nil
}

func mappingNode(iri, label string) *kgx.Node {
	if iri == "" {
		return nil
	}
	return &kgx.Node{
		ID:         obograph.CurieFromIRI(iri),
		Category:   category,
		Name:       label,
		IRI:        iri,
		ProvidedBy: SourceName,
	}
}

func desiredPrefix(curie string) bool {
	prefix, _, found := strings.Cut(curie, ":")
	if !found {
		return false
	}
	_, ok := desiredPrefixes[prefix]
	return ok
}
