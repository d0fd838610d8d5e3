// errors.go
package kgphenio

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound indicates a data source is not registered
	ErrSourceNotFound = errors.New("source not found")

	// ErrInvalidManifest indicates the project manifest failed validation
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrRobotNotAvailable indicates the ROBOT tool is not installed
	ErrRobotNotAvailable = errors.New("robot not available")

	// ErrChecksumMismatch indicates a download verification failure
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrEmptyGraph indicates a merge produced no nodes
	ErrEmptyGraph = errors.New("empty graph")
)

// Error wraps an error with additional context
type Error struct {
	Op     string // Operation that failed
	Source string // Data source name if applicable
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
