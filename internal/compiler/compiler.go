// Package compiler runs metaprogramming passes over parsed scripts: every
// unit is collected into its own registry, the registries are merged in
// input order and then each pass rewrites the trees.
package compiler

import (
	"context"

	"github.com/toyz/camp/internal/errors"
)

// Compiler coordinates collection and processing of a set of passes
type Compiler struct {
	passes      []Pass
	haltOnError bool
}

// Option configures a Compiler
type Option func(*Compiler)

// WithHaltOnError stops the run before any rewriting when collection
// reported an error-level diagnostic
func WithHaltOnError(halt bool) Option {
	return func(c *Compiler) {
		c.haltOnError = halt
	}
}

// New creates a compiler running passes in order
func New(passes []Pass, opts ...Option) *Compiler {
	c := &Compiler{passes: passes, haltOnError: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Passes returns the configured passes
func (c *Compiler) Passes() []Pass {
	return c.passes
}

// Collect records the declarations of u and runs every pass's collection
// on it. Units may be collected concurrently.
func (c *Compiler) Collect(u *Unit) {
	CollectDeclarations(u)
	for _, p := range c.passes {
		p.Collect(u)
	}
}

// Run merges the collected units, applies the halt policy and processes
// every pass. The returned context holds the diagnostics even when an
// error is returned.
func (c *Compiler) Run(ctx context.Context, units []*Unit) (*Context, error) {
	run := NewContext()
	for _, u := range units {
		run.Registry.Merge(u.Registry)
		run.Diagnostics.Merge(u.Diagnostics)
	}
	run.Registry.Integrate()

	if c.haltOnError && run.Diagnostics.HasErrors() {
		return run, run.Diagnostics.Errors()
	}

	for _, p := range c.passes {
		if err := ctx.Err(); err != nil {
			return run, errors.Wrap(errors.GenerationErrorCode, "compilation cancelled before "+p.Name(), err)
		}
		p.Process(run)
	}
	run.detachScheduled()
	return run, nil
}

// Compile collects units sequentially and runs the passes
func (c *Compiler) Compile(ctx context.Context, units []*Unit) (*Context, error) {
	for _, u := range units {
		c.Collect(u)
	}
	return c.Run(ctx, units)
}
