package injections

import (
	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/errors"
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/models"
)

type reportFunc func(n *jsast.Node, t errors.DiagnosticType, args ...interface{})

var bindingMethods = map[string]models.BindingKind{
	"to":         models.BindingTo,
	"toInstance": models.BindingToInstance,
	"toProvider": models.BindingToProvider,
}

var bindingArgumentErrors = map[models.BindingKind]string{
	models.BindingTo:         "The argument of method to must be a constructor function.",
	models.BindingToInstance: "The argument of method toInstance must be a expression.",
	models.BindingToProvider: "The argument of method toProvider must be a function expression.",
}

// collector records the injection surface of one unit
type collector struct {
	unit *compiler.Unit
}

func (c *collector) collect() {
	jsast.Walk(c.unit.Root, func(n *jsast.Node, _ jsast.Scope) {
		if n.IsFunction() {
			c.module(n)
		}
	})
	jsast.Walk(c.unit.Root, func(n *jsast.Node, _ jsast.Scope) {
		switch {
		case n.IsAssign():
			c.configure(n)
		case n.IsCall():
			switch {
			case n.Callee().MatchesQualifiedName(ModuleInitCall):
				c.initializer(n)
			case n.Callee().MatchesQualifiedName(InjectCall):
				c.inject(n)
			}
		}
	})
}

func (c *collector) module(fn *jsast.Node) {
	doc := jsast.BestJSDoc(fn)
	if !doc.IsConstructor() || !doc.ImplementsInterface(ModuleInterface) {
		return
	}
	decl, ok := jsast.DeclarationOf(fn)
	if !ok || decl.Name() == "" {
		return
	}
	c.unit.Registry.AddModule(models.NewModuleInfo(decl.Name(), fn))
}

// configure finds Module.prototype.configure in both the member assignment
// and the object literal form
func (c *collector) configure(assign *jsast.Node) {
	target, ok := assign.AssignTarget().QualifiedName()
	if !ok {
		return
	}
	class, member, ok := compiler.SplitPrototype(target)
	if !ok {
		return
	}
	module, ok := c.unit.Registry.Module(class)
	if !ok {
		return
	}
	value := assign.AssignValue()
	switch {
	case member == ConfigureMethod && value.IsFunction():
		c.configureMethod(module, value)
	case member == "" && value.IsObjectLit():
		for _, key := range value.Children() {
			if key.IsStringKey() && key.Str == ConfigureMethod && key.FirstChild().IsFunction() {
				c.configureMethod(module, key.FirstChild())
			}
		}
	}
}

func (c *collector) configureMethod(module *models.ModuleInfo, fn *jsast.Node) {
	module.Configure = fn
	params := fn.ParamNames()
	if len(params) == 0 {
		return
	}
	binder := receiver{param: params[0], typeName: Binder, methods: binderMethods}
	for _, call := range binder.calls(fn, c.unit.Report) {
		switch call.method {
		case bindMethod:
			c.bind(module, call.node)
		case bindProviderMethod:
			c.bindProvider(module, call.node)
		case bindInterceptorMethod:
			c.bindInterceptor(module, call.node)
		}
	}
}

// bind follows binder.bind('name').to(C).as(scope) outwards from the
// innermost call
func (c *collector) bind(module *models.ModuleInfo, call *jsast.Node) {
	nameNode := call.Argument(0)
	if nameNode == nil || !nameNode.IsString() || nameNode.Str == "" {
		c.unit.Report(call, BindFirstArgumentInvalid)
		return
	}

	binding := &models.BindingInfo{Module: module.Name, Name: nameNode.Str}
	bound := false
	current := call
	for {
		prop := current.Parent()
		if prop == nil || !prop.IsGetProp() || prop.GetPropOwner() != current {
			break
		}
		next := prop.Parent()
		if next == nil || !next.IsCall() || next.Callee() != prop {
			c.unit.Report(prop, AccessedToVirtualMethods, Binder)
			return
		}

		kind, isBinding := bindingMethods[prop.Str]
		switch {
		case isBinding && !bound:
			arg := next.Argument(0)
			if !validBindingTarget(kind, arg) {
				c.unit.Report(next, BindSecondArgumentInvalid, bindingArgumentErrors[kind])
				return
			}
			binding.Kind = kind
			binding.Expression = arg
			if kind == models.BindingTo {
				binding.ClassName, _ = arg.QualifiedName()
			}
			bound = true
		case prop.Str == asMethod && bound:
			if binding.Kind != models.BindingTo {
				c.unit.Report(next, BindingScopeInvalid)
				return
			}
			scope, ok := parseScope(next.Argument(0))
			if !ok {
				c.unit.Report(next, BindingScopeTypeInvalid)
				return
			}
			binding.Scope = scope
		case !bound:
			c.unit.Report(next, BinderBindHasNoSuchMethod, prop.Str)
			return
		default:
			c.unit.Report(next, BinderBindChainHasNoSuchMethod, bindingMethodName(binding.Kind), prop.Str)
			return
		}
		current = next
	}

	if !bound {
		c.unit.Report(call, BindingIncomplete, binding.Name, "to, toInstance, toProvider")
		return
	}
	binding.Call = current
	module.AddBinding(binding)
}

func (c *collector) bindProvider(module *models.ModuleInfo, call *jsast.Node) {
	nameNode := call.Argument(0)
	if nameNode == nil || !nameNode.IsString() || nameNode.Str == "" {
		c.unit.Report(call, BindFirstArgumentInvalid)
		return
	}
	fn := call.Argument(1)
	if fn == nil || !fn.IsFunction() {
		c.unit.Report(call, BindProviderArgumentInvalid)
		return
	}
	module.AddBinding(&models.BindingInfo{
		Module:     module.Name,
		Name:       nameNode.Str,
		Kind:       models.BindingToProvider,
		Expression: fn,
		Call:       call,
	})
}

func (c *collector) bindInterceptor(module *models.ModuleInfo, call *jsast.Node) {
	classMatcher := call.Argument(0)
	if classMatcher == nil || !classMatcher.IsCall() || !classMatcher.Callee().IsGetProp() {
		c.unit.Report(call, BindInterceptorFirstArgumentInvalid)
		return
	}
	methodMatcher := call.Argument(1)
	if methodMatcher == nil || !methodMatcher.IsCall() || !methodMatcher.Callee().IsGetProp() {
		c.unit.Report(call, BindInterceptorSecondArgumentInvalid)
		return
	}
	fn := call.Argument(2)
	if fn == nil || !fn.IsFunction() {
		c.unit.Report(call, BindInterceptorThirdArgumentInvalid)
		return
	}

	interceptor := &models.InterceptorInfo{
		Module:    module.Name,
		JoinPoint: models.JoinPointMethodInvocation,
		Function:  fn,
		Call:      call,
	}
	classOK := c.classMatcher(classMatcher, interceptor)
	methodOK := c.methodMatcher(methodMatcher, interceptor)
	if !classOK || !methodOK {
		return
	}

	if params := fn.ParamNames(); len(params) > 0 {
		invocation := receiver{param: params[0], typeName: MethodInvocation, methods: invocationMethods}
		for _, u := range invocation.calls(fn, c.unit.Report) {
			switch u.method {
			case getClassNameMethod, getConstructorNameMethod:
				interceptor.ClassNameAccess = true
			case getMethodNameMethod:
				interceptor.MethodNameAccess = true
			case getQualifiedNameMethod:
				interceptor.ClassNameAccess = true
				interceptor.MethodNameAccess = true
			}
		}
	}
	module.Interceptors = append(module.Interceptors, interceptor)
}

func (c *collector) classMatcher(call *jsast.Node, interceptor *models.InterceptorInfo) bool {
	name, _ := call.Callee().QualifiedName()
	arg := call.Argument(0)
	switch name {
	case MatchersInNamespace, MatchersInSubnamespace:
		if arg == nil || !arg.IsString() || arg.Str == "" {
			if name == MatchersInNamespace {
				c.unit.Report(call, MatcherInNamespaceArgumentInvalid)
			} else {
				c.unit.Report(call, MatcherInSubnamespaceArgumentInvalid)
			}
			return false
		}
		interceptor.ClassMatchKind = models.ClassMatchInNamespace
		if name == MatchersInSubnamespace {
			interceptor.ClassMatchKind = models.ClassMatchSubNamespace
		}
		interceptor.ClassMatcher = arg.Str
	case MatchersSubclassOf, MatchersInstanceOf:
		className, ok := "", false
		if arg != nil {
			className, ok = arg.QualifiedName()
		}
		if !ok {
			if name == MatchersSubclassOf {
				c.unit.Report(call, MatcherSubclassOfArgumentInvalid)
			} else {
				c.unit.Report(call, MatcherInstanceOfArgumentInvalid)
			}
			return false
		}
		interceptor.ClassMatchKind = models.ClassMatchSubclassOf
		if name == MatchersInstanceOf {
			interceptor.ClassMatchKind = models.ClassMatchInstanceOf
		}
		interceptor.ClassMatcher = className
	case MatchersAny:
		if arg != nil {
			c.unit.Report(call, MatcherAnyHasNoArgument)
			return false
		}
		interceptor.ClassMatchKind = models.ClassMatchAny
	default:
		c.unit.Report(call, BindInterceptorFirstArgumentInvalid)
		return false
	}
	return true
}

func (c *collector) methodMatcher(call *jsast.Node, interceptor *models.InterceptorInfo) bool {
	name, _ := call.Callee().QualifiedName()
	arg := call.Argument(0)
	switch name {
	case MatchersLike:
		if arg == nil || !arg.IsString() || arg.Str == "" {
			c.unit.Report(call, MatcherLikeArgumentInvalid)
			return false
		}
		interceptor.MethodMatchKind = models.MethodMatchLike
		interceptor.MethodMatcher = arg.Str
	case MatchersAny:
		if arg != nil {
			c.unit.Report(call, MatcherAnyHasNoArgument)
			return false
		}
		interceptor.MethodMatchKind = models.MethodMatchAny
	default:
		c.unit.Report(call, BindInterceptorSecondArgumentInvalid)
		return false
	}
	return true
}

func (c *collector) initializer(call *jsast.Node) {
	list := call.Argument(0)
	if list == nil || !list.IsArrayLit() {
		c.unit.Report(call, ModuleInitFirstArgumentInvalid)
		return
	}
	var modules []string
	for _, elem := range list.Children() {
		if name, ok := elem.QualifiedName(); ok {
			modules = append(modules, name)
		}
	}
	if len(modules) == 0 {
		c.unit.Report(call, ModuleInitFirstArgumentEmpty)
	}

	fn := call.Argument(1)
	if fn == nil || !fn.IsFunction() {
		c.unit.Report(call, ModuleInitSecondArgumentInvalid)
		return
	}

	info := &models.ModuleInitializerInfo{Modules: modules, Call: call, Function: fn}
	if params := fn.ParamNames(); len(params) > 0 {
		info.Injector = params[0]
		injector := receiver{param: info.Injector, typeName: Injector, methods: injectorMethods}
		for _, u := range injector.calls(fn, c.unit.Report) {
			if request := c.request(u); request != nil {
				info.Requests = append(info.Requests, request)
			}
		}
	}
	c.unit.Registry.AddInitializer(info)
}

func (c *collector) request(u use) *models.InstanceRequest {
	arg := u.node.Argument(0)
	if u.method == getInstanceMethod {
		if arg != nil {
			if name, ok := arg.QualifiedName(); ok {
				return &models.InstanceRequest{Call: u.node, Target: name}
			}
		}
		c.unit.Report(u.node, GetInstanceTargetInvalid, Injector+"."+getInstanceMethod)
		return nil
	}
	if arg == nil || !arg.IsString() || arg.Str == "" {
		c.unit.Report(u.node, GetInstanceByNameTargetInvalid, Injector+"."+getInstanceByNameMethod)
		return nil
	}
	return &models.InstanceRequest{Call: u.node, Target: arg.Str, ByName: true}
}

// inject only validates; the call itself is recorded with the shared
// declarations
func (c *collector) inject(call *jsast.Node) {
	target := call.Argument(0)
	if target == nil || !target.IsQualifiedName() {
		c.unit.Report(call, InjectFirstArgumentInvalid)
	}
	method := call.Argument(1)
	if method == nil || !method.IsString() || method.Str == "" {
		c.unit.Report(call, InjectSecondArgumentInvalid)
	}
}

func validBindingTarget(kind models.BindingKind, arg *jsast.Node) bool {
	if arg == nil {
		return false
	}
	switch kind {
	case models.BindingTo:
		return arg.IsQualifiedName()
	case models.BindingToProvider:
		return arg.IsFunction()
	}
	return true
}

func parseScope(arg *jsast.Node) (models.Scope, bool) {
	if arg == nil {
		return models.ScopePrototype, false
	}
	if !arg.IsGetProp() || !arg.GetPropOwner().MatchesQualifiedName(ScopesNamespace) {
		return models.ScopePrototype, false
	}
	return models.ParseScope(arg.Str)
}

func bindingMethodName(kind models.BindingKind) string {
	for name, k := range bindingMethods {
		if k == kind {
			return name
		}
	}
	return ""
}
