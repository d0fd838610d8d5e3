// internal/cli/sources.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knowledge-graph-hub/kgphenio"
	"github.com/knowledge-graph-hub/kgphenio/pkg/transform"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List data sources",
	Long:  `List the registered source transforms and their registry metadata.`,
	RunE:  runSources,
}

func runSources(cmd *cobra.Command, args []string) error {
	p, err := kgphenio.NewPipeline(config)
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}

	fmt.Printf("Registered sources:\n")
	for _, name := range transform.Sources() {
		fmt.Printf("  %s", name)
		if entry, err := p.RegistryEntry(name); err == nil {
			fmt.Printf(" - %s", entry.Description)
		}
		fmt.Println()
	}

	return nil
}
