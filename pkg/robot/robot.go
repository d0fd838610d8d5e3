// Package robot wraps the external ROBOT ontology tool, used to convert
// OWL into obographs JSON ahead of the node/edge transform.
package robot

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// DefaultJavaArgs keeps ROBOT from exhausting the heap on large ontologies.
const DefaultJavaArgs = "-Xmx8g -XX:+UseG1GC"

// Robot is a handle to a detected ROBOT executable.
type Robot struct {
	Path     string
	JavaArgs string
}

// Detect locates a ROBOT executable. An explicit path wins; otherwise the
// working directory is checked for ./robot before falling back to PATH.
func Detect(path string) (*Robot, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("robot not found at %s: %w", path, err)
		}
		return newRobot(path), nil
	}

	local := filepath.Join(".", "robot")
	if info, err := os.Stat(local); err == nil && !info.IsDir() {
		abs, err := filepath.Abs(local)
		if err != nil {
			return nil, err
		}
		return newRobot(abs), nil
	}

	found, err := exec.LookPath("robot")
	if err != nil {
		return nil, fmt.Errorf("robot executable not found on PATH: %w", err)
	}

	return newRobot(found), nil
}

func newRobot(path string) *Robot {
	return &Robot{
		Path:     path,
		JavaArgs: DefaultJavaArgs,
	}
}

// Convert runs "robot convert" from input to output, with the format
// implied by the output extension (.json produces obographs JSON).
func (r *Robot) Convert(ctx context.Context, input, output string) error {
	args := []string{"convert", "--input", input, "--output", output}

	cmd := exec.CommandContext(ctx, r.Path, args...)
	cmd.Env = append(os.Environ(), "ROBOT_JAVA_ARGS="+r.JavaArgs)

	log.Debug().Str("robot", r.Path).Str("input", input).Str("output", output).Msg("running robot convert")

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("robot convert %s: %w: %s", input, err, string(out))
	}

	return nil
}
