package transform

import "github.com/knowledge-graph-hub/kgphenio/pkg/upheno"

func newUpheno(opts *Options) (Transform, error) {
	return upheno.New(&upheno.Config{
		InputDir:  opts.InputDir,
		OutputDir: opts.OutputDir,
	})
}
