// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dacolabs/dtogen/internal/schema"
)

// Result is the outcome of generating one definition in a batch.
type Result struct {
	Definition *schema.Definition
	Artifact   *Artifact
	Code       string
	Err        error
}

// GenerateBatch generates every definition concurrently with at most workers runs in flight.
// Failures are isolated: each Result carries its own error and never affects the others.
// Results keep the order of defs. Definitions not started before ctx is done report ctx.Err().
func (g *Generator) GenerateBatch(ctx context.Context, defs []*schema.Definition, workers int) []Result {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(defs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, def := range defs {
		results[i].Definition = def
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			a, err := g.Build(def)
			if err != nil {
				results[i].Err = err
				return nil
			}
			code, err := Render(a)
			results[i].Artifact, results[i].Code, results[i].Err = a, code, err
			return nil
		})
	}
	_ = eg.Wait()
	return results
}
