package transform

import "github.com/knowledge-graph-hub/kgphenio/pkg/phenio"

func newPhenio(opts *Options) (Transform, error) {
	return phenio.New(&phenio.Config{
		InputDir:  opts.InputDir,
		OutputDir: opts.OutputDir,
		RobotPath: opts.RobotPath,
	})
}
