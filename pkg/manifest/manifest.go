// Package manifest reads and validates the project manifest (pyproject.toml).
package manifest

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver"
)

// PythonDependency is the reserved name of the interpreter constraint inside
// the dependencies table. It is not a package dependency.
const PythonDependency = "python"

// Project holds the [tool.poetry] metadata block.
type Project struct {
	Name        string   `toml:"name" validate:"required"`
	Version     string   `toml:"version" validate:"required"`
	Description string   `toml:"description"`
	Authors     []string `toml:"authors"`
	License     string   `toml:"license" validate:"required"`
}

// BuildSystem holds the [build-system] block.
type BuildSystem struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
}

// Dependency is a single declared dependency with its parsed version range.
type Dependency struct {
	Name       string
	Constraint string              // raw constraint as written (e.g. "^1.7.2")
	Range      *semver.Constraints // constraint translated to a semver range
	Source     string              // git/url source for non-registry deps
	Dev        bool
}

// Manifest is a parsed pyproject.toml.
type Manifest struct {
	Project     Project
	Python      string // interpreter version range, e.g. ">=3.9,<3.12"
	BuildSystem BuildSystem

	deps map[string]*Dependency
}

type rawPoetry struct {
	Project
	Dependencies    map[string]interface{} `toml:"dependencies"`
	DevDependencies map[string]interface{} `toml:"dev-dependencies"`
}

type rawManifest struct {
	Tool struct {
		Poetry rawPoetry `toml:"poetry"`
	} `toml:"tool"`
	BuildSystem BuildSystem `toml:"build-system"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return m, nil
}

// Parse decodes manifest TOML. Unknown sections are ignored; a dependency
// declared in both the runtime and dev tables is an error.
func Parse(data []byte) (*Manifest, error) {
	var raw rawManifest
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("decoding toml: %w", err)
	}

	m := &Manifest{
		Project:     raw.Tool.Poetry.Project,
		BuildSystem: raw.BuildSystem,
		deps:        make(map[string]*Dependency),
	}

	for name, value := range raw.Tool.Poetry.Dependencies {
		if name == PythonDependency {
			constraint, _, err := decodeConstraint(value)
			if err != nil {
				return nil, fmt.Errorf("dependency %q: %w", name, err)
			}
			m.Python = constraint
			continue
		}
		if err := m.addDependency(name, value, false); err != nil {
			return nil, err
		}
	}

	for name, value := range raw.Tool.Poetry.DevDependencies {
		if _, exists := m.deps[name]; exists {
			return nil, fmt.Errorf("dependency %q declared in both dependencies and dev-dependencies", name)
		}
		if err := m.addDependency(name, value, true); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Manifest) addDependency(name string, value interface{}, dev bool) error {
	if name == "" {
		return fmt.Errorf("dependency with empty name")
	}

	constraint, source, err := decodeConstraint(value)
	if err != nil {
		return fmt.Errorf("dependency %q: %w", name, err)
	}

	dep := &Dependency{
		Name:       name,
		Constraint: constraint,
		Source:     source,
		Dev:        dev,
	}

	// Source deps (git, url, path) carry no version range to parse.
	if constraint != "" {
		rng, err := ParseConstraint(constraint)
		if err != nil {
			return fmt.Errorf("dependency %q: %w", name, err)
		}
		dep.Range = rng
	}

	m.deps[name] = dep
	return nil
}

// decodeConstraint extracts the constraint string (and optional source) from
// a dependency value, which is either a plain string or an inline table.
func decodeConstraint(value interface{}) (constraint, source string, err error) {
	switch v := value.(type) {
	case string:
		return v, "", nil
	case map[string]interface{}:
		if s, ok := v["version"].(string); ok {
			constraint = s
		}
		for _, key := range []string{"git", "url", "path"} {
			if s, ok := v[key].(string); ok {
				source = s
				break
			}
		}
		if constraint == "" && source == "" {
			return "", "", fmt.Errorf("table value has neither version nor source")
		}
		return constraint, source, nil
	default:
		return "", "", fmt.Errorf("unsupported value type %T", value)
	}
}

// Dependencies returns all declared dependencies in name order.
func (m *Manifest) Dependencies() []*Dependency {
	out := make([]*Dependency, 0, len(m.deps))
	for _, dep := range m.deps {
		out = append(out, dep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Requires looks up a dependency by name.
func (m *Manifest) Requires(name string) (*Dependency, bool) {
	dep, ok := m.deps[name]
	return dep, ok
}

// SatisfiedBy reports whether the given resolved version satisfies the
// declared constraint for name. An unknown name is an error.
func (m *Manifest) SatisfiedBy(name, version string) (bool, error) {
	dep, ok := m.deps[name]
	if !ok {
		return false, fmt.Errorf("no declared dependency %q", name)
	}
	if dep.Range == nil {
		return false, fmt.Errorf("dependency %q has a source constraint, not a version range", name)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("version %q: %w", version, err)
	}

	return dep.Range.Check(v), nil
}
