// internal/cli/merge.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knowledge-graph-hub/kgphenio"
)

var (
	mergeYaml      string
	mergeProcesses int
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge transformed subgraphs into the final graph",
	Long: `Load the subgraphs listed in merge.yaml, merge them into a single
graph, normalize identifiers and write the result with a build report.

Examples:
  kgphenio merge
  kgphenio merge -y merge.yaml -p 4`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeYaml, "yaml", "y", "", "merge config YAML (default merge.yaml)")
	mergeCmd.Flags().IntVarP(&mergeProcesses, "processes", "p", 1, "number of subgraphs to load concurrently")
}

func runMerge(cmd *cobra.Command, args []string) error {
	if mergeYaml != "" {
		config.MergeConfig = mergeYaml
	}

	p, err := kgphenio.NewPipeline(config)
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}

	report, err := p.Merge(context.Background(), mergeProcesses)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Merged %s: %d nodes, %d edges\n", report.Graph, report.TotalNodes, report.TotalEdges)
	for name, stats := range report.Sources {
		fmt.Printf("  %s: %d nodes (%d new), %d edges (%d new)\n",
			name, stats.Nodes, stats.NewNodes, stats.Edges, stats.NewEdges)
	}

	return nil
}
