// internal/cli/validate.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knowledge-graph-hub/kgphenio"
)

var validateManifest string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the project manifest",
	Long: `Check pyproject.toml: required metadata present, every dependency
constraint parseable, and the interpreter version range consistent.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateManifest, "manifest", "m", "", "manifest file to validate (default pyproject.toml)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateManifest != "" {
		config.ManifestPath = validateManifest
	}

	p, err := kgphenio.NewPipeline(config)
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}

	m, err := p.ValidateManifest()
	if err != nil {
		return err
	}

	fmt.Printf("✓ %s %s is valid\n", m.Project.Name, m.Project.Version)
	fmt.Printf("  python %s\n", m.Python)
	for _, dep := range m.Dependencies() {
		marker := " "
		if dep.Dev {
			marker = "d"
		}
		constraint := dep.Constraint
		if constraint == "" {
			constraint = dep.Source
		}
		fmt.Printf("  %s %s %s\n", marker, dep.Name, constraint)
	}

	return nil
}
