// Package registry provides lookup into the cached sources/ metadata tree.
package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Entry represents a single sources/<name>/index.toml file.
type Entry struct {
	Name        string            `toml:"name"`
	Description string            `toml:"description"`
	Format      string            `toml:"format"` // owl, csv, tsv
	URL         string            `toml:"url"`
	Prefixes    map[string]string `toml:"prefixes"` // prefix casing this source contributes
}

// Registry provides lookup into the cached sources/ folder.
type Registry struct {
	sourcesDir string
}

// New creates a Registry pointed at the cached sources directory.
func New(cacheDir string) *Registry {
	return &Registry{
		sourcesDir: filepath.Join(cacheDir, "sources"),
	}
}

// Resolve takes a source name and returns its download URL.
func (r *Registry) Resolve(name string) (string, error) {
	entry, err := r.Load(name)
	if err != nil {
		return "", err
	}

	if entry.URL == "" {
		return "", fmt.Errorf("registry: source %q has no url", name)
	}

	return entry.URL, nil
}

// Load reads and parses sources/<name>/index.toml.
// This is the primary method for retrieving source metadata.
func (r *Registry) Load(name string) (*Entry, error) {
	if _, err := os.Stat(r.sourcesDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("registry: sources not found, run sync first")
	}

	path := filepath.Join(r.sourcesDir, name, "index.toml")

	data, err := os.ReadFile(path)
	if err != nil {
		// Check if the directory exists, to give a better error message.
		if _, statErr := os.Stat(filepath.Dir(path)); statErr == nil {
			return nil, fmt.Errorf("registry: found source %q directory, but missing index.toml", name)
		}
		return nil, fmt.Errorf("registry: source %q not found", name)
	}

	var entry Entry
	if _, err := toml.Decode(string(data), &entry); err != nil {
		return nil, fmt.Errorf("registry: failed to parse %q: %w", name, err)
	}

	return &entry, nil
}

// List returns the names of all cached source entries, in directory order.
func (r *Registry) List() ([]string, error) {
	entries, err := os.ReadDir(r.sourcesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("registry: sources not found, run sync first")
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}
