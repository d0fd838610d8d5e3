package transform

import (
	"fmt"
	"sort"
)

type factory func(opts *Options) (Transform, error)

// The data sources this build knows how to transform.
var factories = map[string]factory{
	"phenio": newPhenio,
	"upheno": newUpheno,
}

// Sources returns the registered source names, sorted.
func Sources() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New constructs the transform for a source name.
func New(name string, opts *Options) (Transform, error) {
	if opts == nil {
		opts = &Options{}
	}

	fn, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown source %q (available: %v)", name, Sources())
	}

	t, err := fn(opts)
	if err != nil {
		return nil, fmt.Errorf("initializing %s transform: %w", name, err)
	}

	return t, nil
}
