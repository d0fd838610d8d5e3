// Package download fetches source data files listed in download.yaml into
// the raw data directory.
package download

import "time"

// Source is one entry of the download list.
type Source struct {
	URL       string `yaml:"url"`
	LocalName string `yaml:"local_name,omitempty"` // defaults to the URL basename
	SHA256    string `yaml:"sha256,omitempty"`     // expected checksum, verified when set
	Tag       string `yaml:"tag,omitempty"`        // source this file belongs to (e.g. "phenio")
}

// Config configures the download manager.
type Config struct {
	// OutputDir is where downloaded files land. Default: data/raw.
	OutputDir string

	// Timeout for a single HTTP request.
	Timeout time.Duration

	// MaxRetries bounds retry attempts per file.
	MaxRetries uint64

	// IgnoreCache forces re-download even when the file already exists.
	IgnoreCache bool

	// Progress enables the per-file progress bar.
	Progress bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:  "data/raw",
		Timeout:    5 * time.Minute,
		MaxRetries: 3,
		Progress:   true,
	}
}
