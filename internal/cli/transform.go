// internal/cli/transform.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knowledge-graph-hub/kgphenio"
)

var (
	transformInput  string
	transformOutput string
	transformSrcs   []string
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform raw sources into KGX nodes and edges",
	Long: `Transform each raw source into a nodes/edges TSV pair under the
transformed data directory. Without -s, all registered sources run.

Examples:
  kgphenio transform
  kgphenio transform -s phenio
  kgphenio transform -s phenio -s upheno -i data/raw -o data/transformed`,
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().StringVarP(&transformInput, "input", "i", "", "directory to read raw data from (default data/raw)")
	transformCmd.Flags().StringVarP(&transformOutput, "output", "o", "", "directory to write transformed data to (default data/transformed)")
	transformCmd.Flags().StringArrayVarP(&transformSrcs, "source", "s", nil, "source to transform, repeatable (default all)")
}

func runTransform(cmd *cobra.Command, args []string) error {
	if transformInput != "" {
		config.RawDir = transformInput
	}
	if transformOutput != "" {
		config.TransformedDir = transformOutput
	}

	p, err := kgphenio.NewPipeline(config)
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}

	if err := p.Transform(context.Background(), transformSrcs); err != nil {
		return err
	}

	fmt.Printf("✓ Transformed sources to %s\n", config.TransformedDir)
	return nil
}
