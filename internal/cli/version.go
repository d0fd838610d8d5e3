// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("kgphenio version 1.0.0")
		fmt.Println("KG-Phenio build pipeline")
		fmt.Println("https://github.com/Knowledge-Graph-Hub/kg-phenio")
	},
}
