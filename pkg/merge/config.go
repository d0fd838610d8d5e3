// Package merge loads transformed subgraphs and merges them into the final
// knowledge graph.
package merge

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// SourceFiles points at one subgraph's TSV pair.
type SourceFiles struct {
	Nodes string `yaml:"nodes"`
	Edges string `yaml:"edges"`
}

// Config is the parsed merge.yaml.
type Config struct {
	Name   string `yaml:"name"` // merged graph name, e.g. "kg-phenio"
	Output struct {
		Directory string `yaml:"directory"` // empty means the caller's merged-data directory
	} `yaml:"output"`
	Sources map[string]SourceFiles `yaml:"sources"`
}

// LoadConfig reads and validates a merge.yaml.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading merge config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.Name == "" {
		return nil, fmt.Errorf("%s: missing graph name", path)
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("%s: no sources to merge", path)
	}
	for name, files := range cfg.Sources {
		if files.Nodes == "" || files.Edges == "" {
			return nil, fmt.Errorf("%s: source %q needs both nodes and edges files", path, name)
		}
	}

	return &cfg, nil
}

// SourceNames returns the configured source names, sorted, fixing the merge
// order.
func (c *Config) SourceNames() []string {
	names := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
