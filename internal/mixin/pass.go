// Package mixin composes traits into classes. camp.trait declares a bundle
// of members, camp.mixin installs the members of its traits on a class
// prototype, checking for conflicting definitions and unmet requirements.
package mixin

import (
	"slices"

	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/models"
	"github.com/toyz/camp/internal/utils"
)

// Pass is the trait composition pass
type Pass struct {
	states map[string]models.CompositionState
}

// New creates the mixin pass
func New() *Pass {
	return &Pass{states: make(map[string]models.CompositionState)}
}

func (p *Pass) Name() string { return "mixins" }

// Collect records the traits and mixins of u
func (p *Pass) Collect(u *compiler.Unit) {
	collect(u)
}

// Process propagates trait requirements, composes every target class and
// replaces the declarations by plain code. Base classes are composed before
// the classes extending them.
func (p *Pass) Process(ctx *compiler.Context) {
	c := newComposer(ctx)
	c.propagateRequirements()

	targets := utils.NewOrderedRegistry[string, []*models.MixinInfo]()
	for _, m := range ctx.Registry.Mixins() {
		mixins, _ := targets.Get(m.Target)
		targets.Set(m.Target, append(mixins, m))
	}

	names := targets.Keys()
	slices.SortStableFunc(names, func(a, b string) int {
		return len(ctx.Registry.Ancestors(a)) - len(ctx.Registry.Ancestors(b))
	})
	for _, target := range names {
		mixins, _ := targets.Get(target)
		p.states[target] = c.compose(target, mixins).State
	}

	for _, m := range ctx.Registry.Mixins() {
		if m.Statement.IsAttached() {
			m.Statement.Detach()
			ctx.ReportCodeChange()
		}
	}
	c.unwrapTraits()
}

// State returns the composition outcome of target in the last run
func (p *Pass) State(target string) models.CompositionState {
	if s, ok := p.states[target]; ok {
		return s
	}
	return models.CompositionPending
}
