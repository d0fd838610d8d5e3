// Package core holds the pipeline configuration shared by the CLI commands.
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds kg-phenio pipeline configuration.
type Config struct {
	RawDir         string `yaml:"raw_dir"`         // where downloads land
	TransformedDir string `yaml:"transformed_dir"` // per-source nodes/edges output
	MergedDir      string `yaml:"merged_dir"`      // merged graph output
	CachePath      string `yaml:"cache_path"`      // synced source registry cache
	ManifestPath   string `yaml:"manifest_path"`   // pyproject.toml location
	DownloadList   string `yaml:"download_list"`   // download.yaml location
	MergeConfig    string `yaml:"merge_config"`    // merge.yaml location
	RobotPath      string `yaml:"robot_path"`      // explicit ROBOT executable
	Debug          bool   `yaml:"debug"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		RawDir:         "data/raw",
		TransformedDir: "data/transformed",
		MergedDir:      "data/merged",
		CachePath:      getDefaultCachePath(),
		ManifestPath:   "pyproject.toml",
		DownloadList:   "download.yaml",
		MergeConfig:    "merge.yaml",
	}
}

// LoadConfig loads configuration from file. A missing file yields defaults;
// fields absent from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".config", "kgphenio", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to file.
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "kgphenio", "config.yaml")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func getDefaultCachePath() string {
	if path := os.Getenv("KGPHENIO_CACHE"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "kgphenio")
	}

	return filepath.Join(home, ".cache", "kgphenio")
}
