package manifest

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the manifest's declared properties:
// required metadata fields are present and non-empty, the project version is
// a valid semantic version, every dependency carries a parseable constraint,
// and the interpreter version range is internally consistent. All failures
// are collected and returned joined.
func (m *Manifest) Validate() error {
	var errs []error

	if err := validate.Struct(m.Project); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = append(errs, fmt.Errorf("metadata: field %s is %s", fe.Field(), fe.Tag()))
			}
		} else {
			errs = append(errs, fmt.Errorf("metadata: %w", err))
		}
	}

	if m.Project.Version != "" {
		if _, err := semver.NewVersion(m.Project.Version); err != nil {
			errs = append(errs, fmt.Errorf("metadata: version %q: %w", m.Project.Version, err))
		}
	}

	if m.Python == "" {
		errs = append(errs, fmt.Errorf("dependencies: no interpreter constraint declared"))
	} else {
		if _, err := ParseConstraint(m.Python); err != nil {
			errs = append(errs, fmt.Errorf("interpreter: %w", err))
		} else if err := CheckBounds(m.Python); err != nil {
			errs = append(errs, fmt.Errorf("interpreter: %w", err))
		}
	}

	for _, dep := range m.Dependencies() {
		if dep.Constraint == "" && dep.Source == "" {
			errs = append(errs, fmt.Errorf("dependency %q: no constraint or source", dep.Name))
			continue
		}
		if dep.Constraint != "" {
			if err := CheckBounds(dep.Constraint); err != nil {
				errs = append(errs, fmt.Errorf("dependency %q: %w", dep.Name, err))
			}
		}
	}

	return errors.Join(errs...)
}
