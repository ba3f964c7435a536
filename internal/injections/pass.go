// Package injections implements module based dependency injection: modules
// declare bindings and interceptors in configure, and every module
// initializer has its injector calls replaced by direct construction code.
package injections

import (
	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/matcher"
)

// Pass is the module injection pass
type Pass struct{}

// New creates the injection pass
func New() *Pass {
	return &Pass{}
}

func (p *Pass) Name() string { return "injections" }

// Collect records modules, their bindings and interceptors and the module
// initializers of u
func (p *Pass) Collect(u *compiler.Unit) {
	(&collector{unit: u}).collect()
}

// Process attaches setter injections to their classes, rewrites every
// module and inlines every initializer
func (p *Pass) Process(ctx *compiler.Context) {
	for _, spec := range ctx.Registry.Injections() {
		if class, ok := ctx.Registry.Class(spec.ClassName); ok {
			for _, m := range spec.Methods {
				if name := methodName(m); !class.HasSetter(name) {
					class.Setters = append(class.Setters, name)
				}
			}
		}
		if stmt := jsast.StatementOf(spec.Call); stmt != nil {
			ctx.ScheduleDetach(stmt)
		}
	}

	for _, m := range ctx.Registry.Modules() {
		rewriteModule(ctx, m)
	}
	m := matcher.New()
	for _, init := range ctx.Registry.Initializers() {
		newResolver(ctx, m, init).rewrite()
	}
}
