// Package testutil compiles JavaScript snippets through a set of passes for
// package tests.
package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/jsparse"
)

// File is one named input
type File struct {
	Name   string
	Source string
}

// Result is the outcome of a test compilation
type Result struct {
	Context *compiler.Context
	Units   []*compiler.Unit
	Err     error
}

// Compile parses files and runs passes over them without halting on
// collection errors, so tests can inspect the diagnostics of every phase
func Compile(t *testing.T, passes []compiler.Pass, files ...File) *Result {
	t.Helper()
	units := make([]*compiler.Unit, 0, len(files))
	for _, f := range files {
		root, err := jsparse.Parse(context.Background(), f.Name, []byte(f.Source))
		require.NoError(t, err, "parse %s", f.Name)
		units = append(units, compiler.NewUnit(f.Name, root))
	}
	c := compiler.New(passes, compiler.WithHaltOnError(false))
	ctx, err := c.Compile(context.Background(), units)
	return &Result{Context: ctx, Units: units, Err: err}
}

// CompileSource compiles a single file named input.js
func CompileSource(t *testing.T, passes []compiler.Pass, src string) *Result {
	t.Helper()
	return Compile(t, passes, File{Name: "input.js", Source: src})
}

// Output prints the unit at index i
func (r *Result) Output(i int) string {
	return jsast.Print(r.Units[i].Root)
}

// Compact prints every unit and collapses whitespace, which keeps
// expectations independent of indentation
func (r *Result) Compact() string {
	var parts []string
	for _, u := range r.Units {
		parts = append(parts, Squash(jsast.Print(u.Root)))
	}
	return strings.Join(parts, "\n")
}

// Keys returns the keys of the reported diagnostics in report order
func (r *Result) Keys() []string {
	return r.Context.Diagnostics.Keys()
}

// Squash collapses runs of whitespace into single spaces
func Squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
