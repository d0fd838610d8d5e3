package normalize

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// canonicalPrefixes maps lowercased curie prefixes to their canonical
// casing. Sources are inconsistent about this; the merged graph is not.
var canonicalPrefixes = map[string]string{
	"hp":        "HP",
	"mp":        "MP",
	"zp":        "ZP",
	"xpo":       "XPO",
	"upheno":    "UPHENO",
	"mondo":     "MONDO",
	"go":        "GO",
	"chebi":     "CHEBI",
	"uberon":    "UBERON",
	"bfo":       "BFO",
	"ro":        "RO",
	"pato":      "PATO",
	"oba":       "OBA",
	"maxo":      "MAXO",
	"ecto":      "ECTO",
	"ncbitaxon": "NCBITaxon",
	"biolink":   "biolink",
	"skos":      "skos",
	"rdfs":      "rdfs",
	"umls":      "UMLS",
}

// PrefixMap resolves curie prefixes to canonical casing.
type PrefixMap struct {
	prefixes map[string]string
}

// NewPrefixMap returns the built-in canonical prefix map.
func NewPrefixMap() *PrefixMap {
	prefixes := make(map[string]string, len(canonicalPrefixes))
	for k, v := range canonicalPrefixes {
		prefixes[k] = v
	}
	return &PrefixMap{prefixes: prefixes}
}

// LoadPrefixMap extends the built-in map with entries from a YAML file of
// the form "prefix: CanonicalPrefix", typically synced from the source
// registry.
func LoadPrefixMap(path string) (*PrefixMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prefix map: %w", err)
	}

	extra := make(map[string]string)
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	pm := NewPrefixMap()
	for k, v := range extra {
		pm.prefixes[strings.ToLower(k)] = v
	}

	return pm, nil
}

// Canonical rewrites a curie's prefix to canonical casing. Unknown prefixes
// and non-curie ids pass through unchanged.
func (pm *PrefixMap) Canonical(curie string) string {
	prefix, rest, found := strings.Cut(curie, ":")
	if !found {
		return curie
	}
	canonical, ok := pm.prefixes[strings.ToLower(prefix)]
	if !ok {
		return curie
	}
	return canonical + ":" + rest
}
