package download

import (
	"fmt"
	"net/url"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// LoadSources reads a download.yaml source list.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source list: %w", err)
	}

	var sources []Source
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for i := range sources {
		if err := fillSource(&sources[i]); err != nil {
			return nil, fmt.Errorf("%s entry %d: %w", path, i+1, err)
		}
	}

	return sources, nil
}

func fillSource(s *Source) error {
	if s.URL == "" {
		return fmt.Errorf("missing url")
	}

	u, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("url %q: %w", s.URL, err)
	}

	if s.LocalName == "" {
		s.LocalName = path.Base(u.Path)
		if s.LocalName == "" || s.LocalName == "." || s.LocalName == "/" {
			return fmt.Errorf("url %q has no usable basename, set local_name", s.URL)
		}
	}

	return nil
}
