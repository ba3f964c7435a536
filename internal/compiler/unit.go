package compiler

import (
	"github.com/toyz/camp/internal/errors"
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/registry"
)

// Unit is one input file during collection. Each unit collects into its own
// registry so units can be collected concurrently.
type Unit struct {
	Name        string
	Root        *jsast.Node
	Registry    registry.Registry
	Diagnostics *errors.Collector
}

// NewUnit wraps a parsed script
func NewUnit(name string, root *jsast.Node) *Unit {
	return &Unit{
		Name:        name,
		Root:        root,
		Registry:    registry.New(),
		Diagnostics: errors.NewCollector(),
	}
}

// Report records a diagnostic at n
func (u *Unit) Report(n *jsast.Node, t errors.DiagnosticType, args ...interface{}) {
	loc := Location(n)
	if loc.File == "" {
		loc.File = u.Name
	}
	u.Diagnostics.Report(loc, t, args...)
}

// Pass is one metaprogramming target. Collect runs once per unit and may
// only write to the unit; Process runs once per run after all units were
// merged and edits the trees.
type Pass interface {
	Name() string
	Collect(u *Unit)
	Process(ctx *Context)
}
