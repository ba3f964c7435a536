package factory

import (
	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/models"
)

var resolveKinds = map[string]models.ResolveKind{
	ResolveCall:     models.Resolve,
	NewWithCall:     models.Resolve,
	ResolveOnceCall: models.ResolveOnce,
}

func collect(u *compiler.Unit) {
	jsast.Walk(u.Root, func(n *jsast.Node, scope jsast.Scope) {
		switch {
		case n.IsFunction() && scope.IsGlobal():
			collectType(u, n)
		case n.IsCall():
			name, ok := n.Callee().QualifiedName()
			if !ok {
				return
			}
			if kind, isResolve := resolveKinds[name]; isResolve {
				collectResolve(u, n, name, kind)
			} else if name == BinderCall || name == BinderSingletonCall {
				collectBinder(u, n, name, name == BinderSingletonCall)
			}
		}
	})

	// aliases are recognized after the walk so a type declared below its
	// alias still counts; the target is checked again once all units merged
	for _, stmt := range u.Root.Children() {
		collectAlias(u, stmt)
	}
}

func collectType(u *compiler.Unit, fn *jsast.Node) {
	if !jsast.BestJSDoc(fn).IsConstructor() {
		return
	}
	decl, ok := jsast.DeclarationOf(fn)
	if !ok {
		return
	}
	switch decl.(type) {
	case jsast.FunctionDeclaration, jsast.AssignmentDeclaration, jsast.VariableDeclaration:
	default:
		return
	}
	if decl.Name() == "" {
		return
	}
	u.Registry.AddType(models.NewTypeInfo(decl.Name(), fn, jsast.StatementOf(fn)))
}

func collectResolve(u *compiler.Unit, call *jsast.Node, name string, kind models.ResolveKind) {
	target := call.Argument(0)
	typeName := ""
	if target != nil {
		typeName, _ = target.QualifiedName()
	}
	if typeName == "" {
		u.Report(call, ResolveFirstArgumentInvalid, name)
		return
	}
	bindings := call.Argument(1)
	if bindings == nil {
		u.Report(call, ResolveSecondArgumentInvalid, name)
		return
	}
	// The memo slot lives on the bindings object, so it has to be the same
	// object every time the call site runs.
	if kind == models.ResolveOnce && !bindings.IsQualifiedName() {
		u.Report(bindings, BindingsMustBeReference, name)
		return
	}
	u.Registry.AddResolvePoint(&models.ResolvePoint{
		TypeName: typeName,
		Kind:     kind,
		Bindings: bindings,
		Call:     call,
	})
}

func collectBinder(u *compiler.Unit, call *jsast.Node, name string, singleton bool) {
	bindings := call.Argument(0)
	if bindings == nil {
		u.Report(call, BinderFirstArgumentInvalid, name)
		return
	}
	if !bindings.IsQualifiedName() {
		u.Report(bindings, BindingsMustBeReference, name)
		return
	}
	members := call.Argument(1)
	if members == nil || !members.IsObjectLit() {
		u.Report(call, BinderSecondArgumentInvalid, name)
		return
	}

	binder := &models.BinderInfo{Bindings: bindings, Call: call}
	for _, key := range members.Children() {
		if !key.IsStringKey() {
			u.Report(key, BinderMemberInvalid)
			return
		}
		entry, ok := binderEntry(u, key, singleton)
		if !ok {
			return
		}
		binder.Entries = append(binder.Entries, entry)
	}
	u.Registry.AddBinder(binder)
}

// binderEntry reads `key: Ctor` or `key: {to: Ctor, as: Scopes.SINGLETON}`
func binderEntry(u *compiler.Unit, key *jsast.Node, singleton bool) (*models.BinderEntry, bool) {
	entry := &models.BinderEntry{Key: key.Str, Node: key}
	if singleton {
		entry.Scope = models.ScopeSingleton
	}

	value := key.FirstChild()
	if value == nil {
		u.Report(key, BinderMemberInvalid)
		return nil, false
	}
	if name, ok := value.QualifiedName(); ok {
		entry.TypeName = name
		return entry, true
	}
	if !value.IsObjectLit() {
		u.Report(value, BinderMemberInvalid)
		return nil, false
	}

	for _, option := range value.Children() {
		v := option.FirstChild()
		switch {
		case option.IsStringKey() && option.Str == keyTo:
			name, ok := "", false
			if v != nil {
				name, ok = v.QualifiedName()
			}
			if !ok {
				u.Report(option, BinderToInvalid)
				return nil, false
			}
			entry.TypeName = name
		case option.IsStringKey() && option.Str == keyAs:
			if v == nil || !v.MatchesQualifiedName(SingletonScope) {
				u.Report(option, BinderAsInvalid)
				return nil, false
			}
			entry.Scope = models.ScopeSingleton
		default:
			u.Report(option, BinderInnerPropertyInvalid)
			return nil, false
		}
	}
	if entry.TypeName == "" {
		u.Report(value, BinderMustSpecifyConstructor)
		return nil, false
	}
	return entry, true
}

// collectAlias records `a.B = C;` and `var B = C;` at the top level
func collectAlias(u *compiler.Unit, stmt *jsast.Node) {
	switch {
	case stmt.IsExprResult() && stmt.FirstChild().IsAssign():
		assign := stmt.FirstChild()
		name, ok := assign.AssignTarget().QualifiedName()
		target, targetOK := assign.AssignValue().QualifiedName()
		if ok && targetOK && name != target && assign.AssignValue().Kind != jsast.This {
			u.Registry.AddType(models.NewAliasTypeInfo(name, target, stmt))
		}
	case stmt.IsVar() && stmt.ChildCount() == 1:
		decl := stmt.FirstChild()
		init := decl.FirstChild()
		if init == nil {
			return
		}
		if target, ok := init.QualifiedName(); ok && target != decl.Str && init.Kind != jsast.This {
			u.Registry.AddType(models.NewAliasTypeInfo(decl.Str, target, stmt))
		}
	}
}
