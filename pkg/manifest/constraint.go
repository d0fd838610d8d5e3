package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver"
)

// ParseConstraint translates a poetry-style constraint into a semver range.
// Poetry syntax is close to semver already (^, ~, comparison operators,
// comma-separated conjunctions, || for alternatives); the differences are
// normalized here.
func ParseConstraint(s string) (*semver.Constraints, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty constraint")
	}

	c, err := semver.NewConstraint(translateConstraint(s))
	if err != nil {
		return nil, fmt.Errorf("constraint %q: %w", s, err)
	}

	return c, nil
}

func translateConstraint(s string) string {
	// Poetry writes exact pins as "==1.2.3".
	s = strings.ReplaceAll(s, "==", "=")
	return s
}

type bound struct {
	version   *semver.Version
	inclusive bool
}

// CheckBounds verifies that a version range is internally consistent: in
// every alternative, the highest lower bound must not exceed the lowest
// upper bound. Returns nil for ranges without explicit bounds (^, ~, exact,
// wildcard), which are consistent by construction.
func CheckBounds(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("empty range")
	}

	for _, group := range strings.Split(s, "||") {
		if err := checkGroupBounds(group); err != nil {
			return err
		}
	}

	return nil
}

func checkGroupBounds(group string) error {
	var lower, upper *bound

	for _, part := range strings.Split(group, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		op, rest := splitOperator(part)
		switch op {
		case ">", ">=":
			v, err := semver.NewVersion(rest)
			if err != nil {
				return fmt.Errorf("bound %q: %w", part, err)
			}
			b := &bound{version: v, inclusive: op == ">="}
			if lower == nil || v.GreaterThan(lower.version) {
				lower = b
			}
		case "<", "<=":
			v, err := semver.NewVersion(rest)
			if err != nil {
				return fmt.Errorf("bound %q: %w", part, err)
			}
			b := &bound{version: v, inclusive: op == "<="}
			if upper == nil || v.LessThan(upper.version) {
				upper = b
			}
		}
	}

	if lower == nil || upper == nil {
		return nil
	}

	if lower.version.GreaterThan(upper.version) {
		return fmt.Errorf("range %q: lower bound %s exceeds upper bound %s",
			strings.TrimSpace(group), lower.version, upper.version)
	}
	if lower.version.Equal(upper.version) && !(lower.inclusive && upper.inclusive) {
		return fmt.Errorf("range %q: bounds at %s exclude every version",
			strings.TrimSpace(group), lower.version)
	}

	return nil
}

func splitOperator(part string) (op, rest string) {
	for _, candidate := range []string{">=", "<=", ">", "<", "!=", "=", "^", "~"} {
		if strings.HasPrefix(part, candidate) {
			return candidate, strings.TrimSpace(strings.TrimPrefix(part, candidate))
		}
	}
	return "", part
}
