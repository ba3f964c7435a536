package mixin

import (
	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/models"
)

func collect(u *compiler.Unit) {
	jsast.Walk(u.Root, func(n *jsast.Node, scope jsast.Scope) {
		switch {
		case n.IsCall():
			callee := n.Callee()
			switch {
			case callee.MatchesQualifiedName(TraitCall):
				if checkScope(u, n, scope, TraitCall) {
					collectTrait(u, n)
				}
			case callee.MatchesQualifiedName(MixinCall):
				if checkScope(u, n, scope, MixinCall) {
					collectMixin(u, n)
				}
			}
		case n.IsGetProp() && n.MatchesQualifiedName(RequireMarker):
			if !isTraitMember(n) {
				u.Report(n, RequireNotAllowedHere)
			}
		}
	})
}

func checkScope(u *compiler.Unit, call *jsast.Node, scope jsast.Scope, name string) bool {
	if !scope.IsGlobal() {
		u.Report(call, MustBeCalledInGlobalScope, name)
		return false
	}
	return true
}

// isTraitMember reports whether value is a member value of a camp.trait body
func isTraitMember(value *jsast.Node) bool {
	key := value.Parent()
	if key == nil || !key.IsStringKey() || key.FirstChild() != value {
		return false
	}
	body := key.Parent()
	if body == nil || !body.IsObjectLit() {
		return false
	}
	call := body.Parent()
	return call != nil && call.IsCall() && call.Callee().MatchesQualifiedName(TraitCall)
}

// collectTrait records camp.trait([Required, ...], {members}). Both
// arguments are optional; a missing body is created detached and takes the
// place of the call once traits are composed.
func collectTrait(u *compiler.Unit, call *jsast.Node) {
	var requires []string
	arg := call.Argument(0)
	if arg != nil && arg.IsArrayLit() {
		for _, r := range arg.Children() {
			name, ok := r.QualifiedName()
			if !ok || r.Kind == jsast.This {
				u.Report(r, TraitRequiresInvalid)
				return
			}
			requires = append(requires, name)
		}
		arg = arg.Next()
	}

	body := arg
	if body == nil {
		body = jsast.NewObjectLit().CopyPositionFromTree(call)
	} else if !body.IsObjectLit() {
		u.Report(call, TraitBodyInvalid)
		return
	}

	name := lvalueName(call)
	if name == "" {
		return
	}
	u.Registry.AddTrait(models.NewTraitInfo(name, jsast.StatementOf(call), call, body, requires))
}

// lvalueName returns the name value is assigned to: the var, the
// assignment target, or the dotted path of an object literal key
func lvalueName(value *jsast.Node) string {
	decl, ok := jsast.DeclarationOf(value)
	if !ok {
		return ""
	}
	switch d := decl.(type) {
	case jsast.AssignmentDeclaration, jsast.VariableDeclaration:
		return d.Name()
	case jsast.ObjectLiteralMember:
		owner := lvalueName(d.Key.Parent())
		if owner == "" {
			return ""
		}
		return owner + "." + d.Name()
	}
	return ""
}

func collectMixin(u *compiler.Unit, call *jsast.Node) {
	dst := call.Argument(0)
	target := ""
	if dst != nil && dst.Kind != jsast.This {
		target, _ = dst.QualifiedName()
	}
	if target == "" {
		u.Report(reportAt(dst, call), MixinFirstArgumentInvalid)
		return
	}

	src := dst.Next()
	if src == nil || !src.IsArrayLit() {
		u.Report(reportAt(src, call), MixinSecondArgumentInvalid)
		return
	}
	var traits []string
	for _, t := range src.Children() {
		name, ok := t.QualifiedName()
		if !ok || t.Kind == jsast.This {
			u.Report(src, MixinSecondArgumentInvalid)
			return
		}
		traits = append(traits, name)
	}

	overrides := src.Next()
	if overrides != nil && !overrides.IsObjectLit() {
		u.Report(overrides, MixinThirdArgumentInvalid)
		return
	}

	stmt := jsast.StatementOf(call)
	if stmt == nil {
		return
	}
	u.Registry.AddMixin(models.NewMixinInfo(target, traits, stmt, call, overrides))
}

func reportAt(n, fallback *jsast.Node) *jsast.Node {
	if n != nil {
		return n
	}
	return fallback
}
