package injections

import (
	"strconv"
	"strings"

	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/matcher"
	"github.com/toyz/camp/internal/models"
	"github.com/toyz/camp/internal/utils"
	"github.com/toyz/camp/internal/weaver"
)

// resolver inlines the injector calls of one module initializer. Classes are
// derived for the initializer so interceptors, scopes and enhanced
// constructors of one initializer never leak into another.
type resolver struct {
	ctx     *compiler.Context
	init    *models.ModuleInitializerInfo
	modules []*models.ModuleInfo
	classes *utils.OrderedRegistry[string, *models.ClassInfo]
	weaver  *weaver.Weaver
	matcher *matcher.Matcher

	body      *jsast.Node
	anchor    *jsast.Node
	resolving map[string]bool
}

func newResolver(ctx *compiler.Context, m *matcher.Matcher, init *models.ModuleInitializerInfo) *resolver {
	r := &resolver{
		ctx:       ctx,
		matcher:   m,
		init:      init,
		classes:   utils.NewOrderedRegistry[string, *models.ClassInfo](),
		weaver:    weaver.New(weaver.VariableName),
		body:      init.Function.FunctionBody(),
		resolving: make(map[string]bool),
	}
	r.anchor = r.body.FirstChild()

	for _, name := range init.Modules {
		if m, ok := ctx.Registry.Module(name); ok {
			r.modules = append(r.modules, m)
		}
	}
	for _, class := range ctx.Registry.Classes() {
		if _, isModule := ctx.Registry.Module(class.Name); isModule {
			continue
		}
		r.classes.Set(class.Name, class.Derive())
	}
	return r
}

// rewrite inlines the requests and wraps the initializer into an
// immediately invoked function creating the configured modules
func (r *resolver) rewrite() {
	r.applyScopes()
	r.matchInterceptors()
	r.instantiateEager()

	for _, req := range r.init.Requests {
		expr := r.request(req)
		if expr == nil {
			continue
		}
		req.Call.ReplaceWith(expr.CopyPositionFromTree(req.Call))
		r.ctx.ReportCodeChange()
	}
	r.wrap()
}

func (r *resolver) applyScopes() {
	for _, m := range r.modules {
		for _, b := range m.Bindings() {
			if b.Kind != models.BindingTo || b.Scope == models.ScopePrototype {
				continue
			}
			if class, ok := r.classes.Get(b.ClassName); ok {
				class.Scope = b.Scope
			}
		}
	}
}

func (r *resolver) matchInterceptors() {
	for _, m := range r.modules {
		for _, i := range m.Interceptors {
			if i.Name == "" {
				continue
			}
			for _, class := range r.classes.Values() {
				ancestors := r.ctx.Registry.Ancestors(class.Name)
				for _, p := range class.Prototypes() {
					if p.Function.IsFunction() && r.matcher.Matches(i, class.Name, ancestors, p.MethodName) {
						p.AddInterceptor(i)
					}
				}
			}
		}
	}
}

func (r *resolver) instantiateEager() {
	for _, m := range r.modules {
		for _, b := range m.Bindings() {
			if b.Kind != models.BindingTo {
				continue
			}
			if class, ok := r.classes.Get(b.ClassName); ok && class.IsEager() {
				r.instantiate(class)
			}
		}
	}
}

func (r *resolver) request(req *models.InstanceRequest) *jsast.Node {
	if !req.ByName {
		class, ok := r.classes.Get(req.Target)
		if !ok {
			r.ctx.Report(req.Call, ClassNotFound, req.Target)
			return nil
		}
		return r.instantiate(class)
	}

	for _, m := range r.modules {
		b, ok := m.Binding(req.Target)
		if !ok {
			continue
		}
		switch b.Kind {
		case models.BindingToProvider:
			return r.providerCall(req.Call, m, b, false)
		case models.BindingToInstance:
			return member(jsast.NewName(weaver.VariableName(m.Name)), b.Name)
		default:
			if class, ok := r.classes.Get(b.ClassName); ok {
				return r.instantiate(class)
			}
			r.ctx.Report(req.Call, ClassNotFound, b.ClassName)
			return nil
		}
	}
	r.ctx.Report(req.Call, ClassNotFound, req.Target)
	return nil
}

// wrap rewrites the init call into
//
//	(function() {
//	  var modA = new ModA().configure();
//	  ...body
//	})();
func (r *resolver) wrap() {
	fn := r.init.Function
	fn.FunctionParams().DetachChildren()
	fn.JSDoc = nil

	for i := len(r.init.Modules) - 1; i >= 0; i-- {
		module := r.init.Modules[i]
		create := jsast.NewCall(jsast.NewGetProp(
			jsast.NewNew(jsast.NewQualifiedName(module)), ConfigureMethod))
		v := jsast.NewVar(weaver.VariableName(module), create)
		v.CopyPositionFromTree(r.init.Call)
		r.body.AddChildToFront(v)
	}

	stmt := jsast.StatementOf(r.init.Call)
	if stmt == nil {
		return
	}
	fn.Detach()
	call := jsast.NewExprResult(jsast.NewCall(fn))
	call.CopyPositionFromTree(stmt)
	stmt.ReplaceWith(call)
	r.ctx.ReportCodeChange()
}

// emit inserts generated statements ahead of the original initializer body,
// after everything generated before
func (r *resolver) emit(stmts ...*jsast.Node) {
	for _, stmt := range stmts {
		stmt.CopyPositionFromTree(r.init.Function)
		if r.anchor != nil {
			r.body.AddChildBefore(stmt, r.anchor)
		} else {
			r.body.AddChildToBack(stmt)
		}
	}
}

// instantiate returns the expression creating an instance of class,
// weaving the class first when it has interceptors
func (r *resolver) instantiate(class *models.ClassInfo) *jsast.Node {
	if class.NeedsWeaving() && !class.IsEnhanced() {
		r.emit(r.weaver.Weave(class)...)
	}
	if class.IsSingleton() {
		return r.singleton(class)
	}

	create := r.construct(class)
	if len(r.setters(class)) == 0 {
		return create
	}
	name := instanceVarPrefix + strconv.Itoa(r.ctx.NextID(instanceCounter))
	r.emit(jsast.NewVar(name, nil))
	return r.withSetters(class, name, create)
}

// singleton memoizes the instance in a variable declared ahead of the body.
// Eager instances are created there too; lazy ones on first use.
func (r *resolver) singleton(class *models.ClassInfo) *jsast.Node {
	if v, ok := class.Accessor(singletonAccessor); ok {
		if class.IsEager() {
			return v.Clone()
		}
		return r.lazySingleton(class, v.Str)
	}

	name := singletonVarPrefix + strconv.Itoa(r.ctx.NextID(singletonCounter))
	class.RememberAccessor(singletonAccessor, jsast.NewName(name))

	if !class.IsEager() {
		r.emit(jsast.NewVar(name, nil))
		return r.lazySingleton(class, name)
	}

	create := r.construct(class)
	r.emit(jsast.NewVar(name, create))
	if len(r.setters(class)) > 0 {
		for _, call := range r.setterCalls(class, name) {
			r.emit(jsast.NewExprResult(call))
		}
	}
	return jsast.NewName(name)
}

// lazySingleton builds name || (name = new C(...)) or, with setters,
// name || (name = new C(...), name.setX(...), name)
func (r *resolver) lazySingleton(class *models.ClassInfo, name string) *jsast.Node {
	create := r.construct(class)
	var init *jsast.Node
	if len(r.setters(class)) > 0 {
		init = r.withSetters(class, name, create)
	} else {
		init = jsast.NewAssign(jsast.NewName(name), create)
	}
	return jsast.NewOr(jsast.NewName(name), init)
}

func (r *resolver) construct(class *models.ClassInfo) *jsast.Node {
	create := jsast.NewNew(jsast.NewQualifiedName(class.TargetName()))
	for _, param := range class.ParamNames {
		create.AddChildToBack(r.resolveBinding(class.Constructor, param))
	}
	return create
}

// setters returns the setter methods of class that exist on its prototype
func (r *resolver) setters(class *models.ClassInfo) []*models.PrototypeInfo {
	var found []*models.PrototypeInfo
	for _, name := range class.Setters {
		if p, ok := class.Prototype(name); ok && p.Function.IsFunction() {
			found = append(found, p)
		}
	}
	return found
}

func (r *resolver) setterCalls(class *models.ClassInfo, name string) []*jsast.Node {
	var calls []*jsast.Node
	for _, p := range r.setters(class) {
		call := jsast.NewCall(jsast.NewGetProp(jsast.NewName(name), p.MethodName))
		for _, param := range p.ParamNames {
			call.AddChildToBack(r.resolveBinding(p.Function, param).CopyPositionFromTree(p.Function))
		}
		calls = append(calls, call)
	}
	return calls
}

// withSetters builds (name = create, name.setX(...), name)
func (r *resolver) withSetters(class *models.ClassInfo, name string, create *jsast.Node) *jsast.Node {
	exprs := []*jsast.Node{jsast.NewAssign(jsast.NewName(name), create)}
	exprs = append(exprs, r.setterCalls(class, name)...)
	exprs = append(exprs, jsast.NewName(name))
	return jsast.NewComma(exprs...)
}

// resolveBinding returns the expression supplying param. A parameter named
// xProvider asks for a function returning the value bound to x.
func (r *resolver) resolveBinding(at *jsast.Node, param string) *jsast.Node {
	name, wantsProvider := param, false
	if strings.HasSuffix(param, providerSuffix) && len(param) > len(providerSuffix) {
		name, wantsProvider = strings.TrimSuffix(param, providerSuffix), true
	}

	if r.resolving[name] {
		r.ctx.Report(at, CircularBinding, name)
		return jsast.NewLiteral("null")
	}
	r.resolving[name] = true
	defer delete(r.resolving, name)

	for _, m := range r.modules {
		b, ok := m.Binding(name)
		if !ok {
			continue
		}
		switch b.Kind {
		case models.BindingToProvider:
			return r.providerCall(at, m, b, wantsProvider)
		case models.BindingToInstance:
			if wantsProvider {
				r.ctx.Report(at, BindingIsNotProvider, name)
			}
			return member(jsast.NewName(weaver.VariableName(m.Name)), b.Name)
		default:
			if wantsProvider {
				r.ctx.Report(at, BindingIsNotProvider, name)
			}
			if class, ok := r.classes.Get(b.ClassName); ok {
				return r.instantiate(class)
			}
			r.ctx.Report(at, ClassNotFound, b.ClassName)
			return jsast.NewLiteral("null")
		}
	}
	r.ctx.Report(at, BindingNotFound, name)
	return jsast.NewLiteral("null")
}

// providerCall builds modVar.name(<resolved provider params>), wrapped into
// a function when the caller asked for a provider
func (r *resolver) providerCall(at *jsast.Node, m *models.ModuleInfo, b *models.BindingInfo, wrap bool) *jsast.Node {
	call := jsast.NewCall(member(jsast.NewName(weaver.VariableName(m.Name)), b.Name))
	if b.Expression != nil && b.Expression.IsFunction() {
		for _, param := range b.Expression.ParamNames() {
			call.AddChildToBack(r.resolveBinding(at, param))
		}
	}
	if !wrap {
		return call
	}
	return jsast.NewFunction("", nil, jsast.NewBlock(jsast.NewReturn(call)))
}
