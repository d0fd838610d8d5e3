package merge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SourceStats are per-subgraph merge counts.
type SourceStats struct {
	Nodes    int `json:"nodes"`
	Edges    int `json:"edges"`
	NewNodes int `json:"new_nodes"` // nodes first seen in this source
	NewEdges int `json:"new_edges"`
}

// Report records what went into a merged build.
type Report struct {
	Graph      string                 `json:"graph"`
	MergedAt   string                 `json:"merged_at"`
	Sources    map[string]SourceStats `json:"sources"`
	TotalNodes int                    `json:"total_nodes"`
	TotalEdges int                    `json:"total_edges"`
}

// NewReport starts a report for the named graph.
func NewReport(graph string) *Report {
	return &Report{
		Graph:   graph,
		Sources: make(map[string]SourceStats),
	}
}

// AddSource records one source's contribution.
func (r *Report) AddSource(name string, stats SourceStats) {
	r.Sources[name] = stats
}

// Finish stamps totals and the merge time.
func (r *Report) Finish(totalNodes, totalEdges int) {
	r.TotalNodes = totalNodes
	r.TotalEdges = totalEdges
	r.MergedAt = time.Now().UTC().Format(time.RFC3339)
}

// Write saves the report as <graph>_report.json under dir.
func (r *Report) Write(dir string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	path := filepath.Join(dir, r.Graph+"_report.json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// ReadReport loads a previously written build report.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &r, nil
}
