// Package obograph decodes the obographs JSON produced by ROBOT and
// converts it to KGX nodes and edges.
package obograph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Document is the top-level obographs container.
type Document struct {
	Graphs []Graph `json:"graphs"`
}

// Graph is a single ontology graph.
type Graph struct {
	ID    string `json:"id"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is an ontology class or property.
type Node struct {
	ID   string `json:"id"` // IRI
	Lbl  string `json:"lbl"`
	Type string `json:"type"` // CLASS, PROPERTY, INDIVIDUAL
	Meta *Meta  `json:"meta,omitempty"`
}

// Edge is a single ontology axiom edge.
type Edge struct {
	Sub  string `json:"sub"`
	Pred string `json:"pred"`
	Obj  string `json:"obj"`
}

// Meta carries node annotations.
type Meta struct {
	Definition *struct {
		Val string `json:"val"`
	} `json:"definition,omitempty"`
	Synonyms []struct {
		Val  string `json:"val"`
		Pred string `json:"pred"`
	} `json:"synonyms,omitempty"`
	Xrefs []struct {
		Val string `json:"val"`
	} `json:"xrefs,omitempty"`
	Deprecated bool `json:"deprecated,omitempty"`
}

// Load reads an obographs JSON file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return doc, nil
}

// Decode parses obographs JSON from a reader.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing obograph json: %w", err)
	}
	if len(doc.Graphs) == 0 {
		return nil, fmt.Errorf("no graphs in document")
	}
	return &doc, nil
}
