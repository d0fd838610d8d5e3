// internal/cli/download.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knowledge-graph-hub/kgphenio"
)

var (
	downloadYaml   string
	downloadOutput string
	ignoreCache    bool
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download source data files",
	Long: `Download the data files listed in download.yaml into the raw data
directory. Files already present are skipped unless --ignore-cache is set.

Examples:
  kgphenio download
  kgphenio download -y my-sources.yaml -o data/raw
  kgphenio download --ignore-cache`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadYaml, "yaml", "y", "", "YAML file listing datasets to download (default download.yaml)")
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "directory to download data to (default data/raw)")
	downloadCmd.Flags().BoolVarP(&ignoreCache, "ignore-cache", "i", false, "ignore cache and download files even if they exist")
}

func runDownload(cmd *cobra.Command, args []string) error {
	if downloadYaml != "" {
		config.DownloadList = downloadYaml
	}
	if downloadOutput != "" {
		config.RawDir = downloadOutput
	}

	p, err := kgphenio.NewPipeline(config)
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}

	if err := p.Download(context.Background(), ignoreCache); err != nil {
		return err
	}

	fmt.Printf("✓ Downloaded sources to %s\n", config.RawDir)
	return nil
}
