package factory

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/jsdoc"
	"github.com/toyz/camp/internal/models"
)

// methodSpec matches "setFoo" and "setFoo(a, b)"
var methodSpec = regexp.MustCompile(`^\s*([A-Za-z_$][\w$]*)\s*(?:\(([^()]*)\))?\s*$`)

// Getter returns the bindings accessor of a parameter: foo becomes getFoo
func Getter(param string) string {
	if param == "" {
		return getterPrefix
	}
	return getterPrefix + strings.ToUpper(param[:1]) + param[1:]
}

// processor emits factories on demand and rewrites the call sites using them
type processor struct {
	ctx *compiler.Context
}

// types returns the known types of name. Aliases count only when they
// eventually forward to a constructor.
func (p *processor) types(name string) []*models.TypeInfo {
	var found []*models.TypeInfo
	for _, t := range p.ctx.Registry.Types(name) {
		if !t.IsAlias() || p.resolvesToConstructor(t, map[string]bool{name: true}) {
			found = append(found, t)
		}
	}
	return found
}

func (p *processor) resolvesToConstructor(t *models.TypeInfo, seen map[string]bool) bool {
	if seen[t.AliasOf] {
		return false
	}
	seen[t.AliasOf] = true
	for _, target := range p.ctx.Registry.Types(t.AliasOf) {
		if !target.IsAlias() || p.resolvesToConstructor(target, seen) {
			return true
		}
	}
	return false
}

// attachInjections adds the Injector.inject specifications to the types
// they name
func (p *processor) attachInjections() {
	for _, spec := range p.ctx.Registry.Injections() {
		for _, t := range p.ctx.Registry.Types(spec.ClassName) {
			if t.IsAlias() {
				continue
			}
			for _, s := range spec.Methods {
				p.attachInjection(spec, t, s)
			}
		}
	}
}

func (p *processor) attachInjection(spec *models.InjectionSpec, t *models.TypeInfo, s string) {
	m := methodSpec.FindStringSubmatch(s)
	if m == nil {
		p.ctx.Report(spec.Call, InvalidMethodSpecification, s)
		return
	}
	injection := &models.MethodInjection{MethodName: m[1]}
	if strings.Contains(s, "(") {
		injection.Explicit = true
		for _, param := range strings.Split(m[2], ",") {
			param = strings.TrimSpace(param)
			if param == "" {
				continue
			}
			if !jsast.IsIdentifier(param) {
				p.ctx.Report(spec.Call, InvalidMethodSpecification, s)
				return
			}
			injection.ParamNames = append(injection.ParamNames, param)
		}
	} else {
		params, ok := p.prototypeParams(t.Name, injection.MethodName)
		if !ok {
			p.ctx.Report(spec.Call, InjectionTargetNotFound, injection.MethodName, t.Name)
			return
		}
		injection.ParamNames = params
	}

	if _, exists := t.MethodInjection(injection.MethodName); exists {
		p.ctx.Report(spec.Call, InjectionAlreadySpecified, injection.MethodName, t.Name)
		return
	}
	t.MethodInjections = append(t.MethodInjections, injection)
}

// prototypeParams finds method on the prototype chain of class
func (p *processor) prototypeParams(class, method string) ([]string, bool) {
	if info, ok := p.ctx.Registry.Class(class); ok {
		if proto, ok := info.Prototype(method); ok && proto.Function.IsFunction() {
			return proto.ParamNames, true
		}
		return nil, false
	}
	for _, name := range append([]string{class}, p.ctx.Registry.Ancestors(class)...) {
		if proto, ok := p.ctx.Registry.Prototype(name, method); ok && proto.Function.IsFunction() {
			return proto.ParamNames, true
		}
	}
	return nil, false
}

// ensureFactory emits the factory of t once
func (p *processor) ensureFactory(t *models.TypeInfo) {
	if t.HasFactory {
		return
	}
	t.HasFactory = true
	if t.Statement == nil || !t.Statement.IsAttached() || t.Statement.Parent() == nil {
		return
	}

	var stmt *jsast.Node
	if t.IsAlias() {
		for _, target := range p.types(t.AliasOf) {
			p.ensureFactory(target)
		}
		stmt = jsast.NewExprResult(jsast.NewAssign(
			jsast.NewQualifiedName(t.Name+"."+FactoryProperty),
			jsast.NewQualifiedName(t.AliasOf+"."+FactoryProperty)))
	} else {
		stmt = p.factory(t)
	}
	stmt.CopyPositionFromTree(t.Statement)

	after := t.Statement
	if next := after.Next(); next != nil && isInheritsOf(next, t.Name) {
		after = next
	}
	after.Parent().AddChildAfter(stmt, after)
	p.ctx.ReportCodeChange()
}

// factory builds
//
//	T.jscomp$newInstance = function(bindings) {
//	  return new T(bindings.getA(), bindings.getB());
//	};
//
// or, with method injections,
//
//	T.jscomp$newInstance = function(bindings) {
//	  var instance = new T(bindings.getA());
//	  instance.setC && instance.setC(bindings.getC());
//	  return instance;
//	};
func (p *processor) factory(t *models.TypeInfo) *jsast.Node {
	create := jsast.NewNew(jsast.NewQualifiedName(t.Name))
	addBindingArguments(create, t.ParamNames)

	body := jsast.NewBlock()
	if len(t.MethodInjections) == 0 {
		body.AddChildToBack(jsast.NewReturn(create))
	} else {
		body.AddChildToBack(jsast.NewVar(instanceName, create))
		for _, m := range t.MethodInjections {
			method := jsast.NewQualifiedName(instanceName + "." + m.MethodName)
			call := jsast.NewCall(method.Clone())
			addBindingArguments(call, m.ParamNames)
			body.AddChildToBack(jsast.NewExprResult(jsast.NewAnd(method, call)))
		}
		body.AddChildToBack(jsast.NewReturn(jsast.NewName(instanceName)))
	}

	assign := jsast.NewAssign(
		jsast.NewQualifiedName(t.Name+"."+FactoryProperty),
		jsast.NewFunction("", []string{BindingsParam}, body))
	if len(t.ParamNames) > 0 {
		assign.JSDoc = jsdoc.New()
		assign.JSDoc.RecordReturnType("!" + t.Name)
	}
	return jsast.NewExprResult(assign)
}

// addBindingArguments appends bindings.getX() per parameter. A parameter
// named xProvider receives function() { return bindings.getX(); }.
func addBindingArguments(call *jsast.Node, params []string) {
	for _, param := range params {
		if strings.HasSuffix(param, providerSuffix) && len(param) > len(providerSuffix) {
			get := bindingGetter(strings.TrimSuffix(param, providerSuffix))
			call.AddChildToBack(jsast.NewFunction("", nil, jsast.NewBlock(jsast.NewReturn(get))))
			continue
		}
		call.AddChildToBack(bindingGetter(param))
	}
}

func bindingGetter(name string) *jsast.Node {
	return jsast.NewCall(jsast.NewGetProp(jsast.NewName(BindingsParam), Getter(name)))
}

func isInheritsOf(stmt *jsast.Node, name string) bool {
	if !stmt.IsExprResult() || !stmt.FirstChild().IsCall() {
		return false
	}
	call := stmt.FirstChild()
	if !call.Callee().MatchesQualifiedName(compiler.InheritsCall) {
		return false
	}
	child := call.Argument(0)
	return child != nil && child.MatchesQualifiedName(name)
}

// onceVar returns a fresh memo slot on the bindings expression
func (p *processor) onceVar(bindings *jsast.Node) *jsast.Node {
	return jsast.NewGetProp(bindings.Clone(), OnceVarPrefix+strconv.Itoa(p.ctx.NextID(onceCounter)))
}

// factoryCall builds T.jscomp$newInstance(bindings)
func factoryCall(typeName string, bindings *jsast.Node) *jsast.Node {
	return jsast.NewCall(jsast.NewQualifiedName(typeName+"."+FactoryProperty), bindings.Clone())
}

// memoize builds slot || (slot = expr)
func memoize(slot, expr *jsast.Node) *jsast.Node {
	return jsast.NewOr(slot, jsast.NewAssign(slot.Clone(), expr))
}

func (p *processor) rewriteResolve(point *models.ResolvePoint) {
	types := p.types(point.TypeName)
	if len(types) == 0 || !point.Call.IsAttached() {
		return
	}
	for _, t := range types {
		p.ensureFactory(t)
	}

	replacement := factoryCall(point.TypeName, point.Bindings)
	if point.Kind == models.ResolveOnce {
		replacement = memoize(p.onceVar(point.Bindings), replacement)
	}
	point.Call.ReplaceWith(replacement.CopyPositionFromTree(point.Call))
	p.ctx.ReportCodeChange()
}

// rewriteBinder turns the binder call into one getter assignment per key
func (p *processor) rewriteBinder(b *models.BinderInfo) {
	if !b.Call.IsAttached() {
		return
	}
	var assigns []*jsast.Node
	for _, entry := range b.Entries {
		types := p.types(entry.TypeName)
		if len(types) == 0 {
			p.ctx.Report(entry.Node, BinderTypeNotFound, entry.TypeName, entry.Key)
			continue
		}
		for _, t := range types {
			p.ensureFactory(t)
		}

		value := factoryCall(entry.TypeName, b.Bindings)
		if entry.Scope == models.ScopeSingleton {
			value = memoize(p.onceVar(b.Bindings), value)
		}
		getter := jsast.NewFunction("", nil, jsast.NewBlock(jsast.NewReturn(value)))
		assign := jsast.NewAssign(jsast.NewGetProp(b.Bindings.Clone(), Getter(entry.Key)), getter)
		assigns = append(assigns, assign.CopyPositionFromTree(entry.Node))
	}

	stmt := b.Call.Parent()
	if stmt != nil && stmt.IsExprResult() {
		for i := len(assigns) - 1; i >= 0; i-- {
			stmt.Parent().AddChildAfter(jsast.NewExprResult(assigns[i]).CopyPositionFromTree(stmt), stmt)
		}
		stmt.Detach()
	} else {
		exprs := append(assigns, b.Bindings.Clone())
		b.Call.ReplaceWith(jsast.NewComma(exprs...).CopyPositionFromTree(b.Call))
	}
	p.ctx.ReportCodeChange()
}
