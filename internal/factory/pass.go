// Package factory replaces runtime dependency resolution with generated
// factories. Every resolve call naming a known constructor becomes a call of
// the constructor's jscomp$newInstance factory, and binder calls become
// getter assignments on the bindings object.
package factory

import (
	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/jsast"
)

// Pass is the factory injection pass
type Pass struct{}

// New creates the factory pass
func New() *Pass {
	return &Pass{}
}

func (p *Pass) Name() string { return "factory" }

// Collect records constructors, aliases, resolve points and binders of u
func (p *Pass) Collect(u *compiler.Unit) {
	collect(u)
}

// Process attaches method injections, then rewrites binders before resolve
// points so a factory is emitted once no matter which site needs it first
func (p *Pass) Process(ctx *compiler.Context) {
	proc := &processor{ctx: ctx}
	proc.attachInjections()
	for _, spec := range ctx.Registry.Injections() {
		if stmt := jsast.StatementOf(spec.Call); stmt != nil {
			ctx.ScheduleDetach(stmt)
		}
	}

	for _, b := range ctx.Registry.Binders() {
		proc.rewriteBinder(b)
	}
	for _, point := range ctx.Registry.ResolvePoints() {
		proc.rewriteResolve(point)
	}
}
