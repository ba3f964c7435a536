package compiler

import (
	"strings"

	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/jsdoc"
	"github.com/toyz/camp/internal/models"
)

// Names of the host library functions declarations are recognized through
const (
	InheritsCall        = "goog.inherits"
	BaseCall            = "goog.base"
	SingletonGetterCall = "goog.addSingletonGetter"
	InjectCall          = "camp.injections.Injector.inject"
	prototypeSegment    = ".prototype"
)

// CollectDeclarations records the constructors, prototype members,
// inheritance edges, singleton registrations and method injections of u
func CollectDeclarations(u *Unit) {
	jsast.Walk(u.Root, func(n *jsast.Node, _ jsast.Scope) {
		switch {
		case n.IsFunctionDeclaration():
			collectConstructor(u, n.FunctionName(), n)
		case n.IsVar():
			for _, decl := range n.Children() {
				if init := decl.FirstChild(); init != nil && init.IsFunction() {
					collectConstructor(u, decl.Str, init)
				}
			}
		case n.IsAssign() && n.Parent().IsExprResult():
			collectAssignment(u, n)
		case n.IsCall() && n.Parent().IsExprResult():
			collectCall(u, n)
		}
	})
}

func collectConstructor(u *Unit, name string, fn *jsast.Node) {
	doc := jsast.BestJSDoc(fn)
	if name == "" || !doc.IsConstructor() {
		return
	}
	u.Registry.AddClass(models.NewClassInfo(name, fn))
	if doc.BaseType != "" {
		u.Registry.SetBaseType(name, jsdoc.TypeName(doc.BaseType))
	}
}

func collectAssignment(u *Unit, assign *jsast.Node) {
	target, ok := assign.AssignTarget().QualifiedName()
	if !ok {
		return
	}
	value := assign.AssignValue()
	if value.IsFunction() {
		collectConstructor(u, target, value)
	}
	if class, member, ok := SplitPrototype(target); ok {
		if member != "" {
			u.Registry.AddPrototype(models.NewPrototypeInfo(class, member, value))
			return
		}
		if value.IsObjectLit() {
			for _, key := range value.Children() {
				if key.IsStringKey() {
					u.Registry.AddPrototype(models.NewPrototypeInfo(class, key.Str, key.FirstChild()))
				}
			}
		}
	}
}

func collectCall(u *Unit, call *jsast.Node) {
	args := call.Arguments()
	switch {
	case call.Callee().MatchesQualifiedName(InheritsCall) && len(args) == 2:
		child, ok := args[0].QualifiedName()
		base, baseOK := args[1].QualifiedName()
		if ok && baseOK {
			u.Registry.SetBaseType(child, base)
		}
	case call.Callee().MatchesQualifiedName(SingletonGetterCall) && len(args) == 1:
		if name, ok := args[0].QualifiedName(); ok {
			u.Registry.AddSingletonCall(name, call.Parent())
		}
	case call.Callee().MatchesQualifiedName(InjectCall) && len(args) > 1:
		collectInjection(u, call, args)
	}
}

// collectInjection records Injector.inject(C, 'setA', 'setB(x)'). Malformed
// calls are left to the injection pass to report.
func collectInjection(u *Unit, call *jsast.Node, args []*jsast.Node) {
	name, ok := args[0].QualifiedName()
	if !ok {
		return
	}
	spec := &models.InjectionSpec{ClassName: name, Call: call}
	for _, arg := range args[1:] {
		if !arg.IsString() || arg.Str == "" {
			return
		}
		spec.Methods = append(spec.Methods, arg.Str)
	}
	u.Registry.AddInjection(spec)
}

// SplitPrototype splits "a.B.prototype.m" into ("a.B", "m"). For
// "a.B.prototype" the member is empty.
func SplitPrototype(qname string) (class, member string, ok bool) {
	if strings.HasSuffix(qname, prototypeSegment) {
		return strings.TrimSuffix(qname, prototypeSegment), "", true
	}
	i := strings.LastIndex(qname, prototypeSegment+".")
	if i <= 0 {
		return "", "", false
	}
	member = qname[i+len(prototypeSegment)+1:]
	if strings.Contains(member, ".") {
		return "", "", false
	}
	return qname[:i], member, true
}
