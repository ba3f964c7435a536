package injections

import "github.com/toyz/camp/internal/compiler"

// Recognized entry points
const (
	ModuleInterface = "camp.injections.Module"
	ModuleInitCall  = "camp.injections.modules.init"
	InjectCall      = compiler.InjectCall

	Injector         = "camp.injections.Injector"
	Binder           = "camp.injections.Binder"
	MethodInvocation = "camp.injections.MethodInvocation"

	MatchersInNamespace    = "camp.injections.Matchers.inNamespace"
	MatchersInSubnamespace = "camp.injections.Matchers.inSubnamespace"
	MatchersSubclassOf     = "camp.injections.Matchers.subclassOf"
	MatchersInstanceOf     = "camp.injections.Matchers.instanceOf"
	MatchersLike           = "camp.injections.Matchers.like"
	MatchersAny            = "camp.injections.Matchers.any"

	ScopesNamespace = "camp.injections.Scopes"

	ConfigureMethod = "configure"
)

// Binder, injector and invocation methods
const (
	bindMethod            = "bind"
	bindProviderMethod    = "bindProvider"
	bindInterceptorMethod = "bindInterceptor"
	asMethod              = "as"

	getInstanceMethod       = "getInstance"
	getInstanceByNameMethod = "getInstanceByName"

	proceedMethod            = "proceed"
	getThisMethod            = "getThis"
	getArgumentsMethod       = "getArguments"
	getClassNameMethod       = "getClassName"
	getConstructorNameMethod = "getConstructorName"
	getMethodNameMethod      = "getMethodName"
	getQualifiedNameMethod   = "getQualifiedName"
)

// Generated identifiers
const (
	InterceptorNamePrefix = "jscomp$interceptor$"

	invocationContext    = "jscomp$methodInvocation$context"
	invocationArgs       = "jscomp$methodInvocation$args"
	invocationClassName  = "jscomp$methodInvocation$className"
	invocationMethodName = "jscomp$methodInvocation$methodName"
	invocationProceed    = "jscomp$methodInvocation$proceed"

	instanceVarPrefix  = "instance$"
	singletonVarPrefix = "singletonInstance"
	providerSuffix     = "Provider"
)

// Id counters shared through the compilation context
const (
	interceptorCounter = "interceptor"
	instanceCounter    = "instance"
	singletonCounter   = "singleton"
)

// singletonAccessor keys the memoized singleton variable of a class
const singletonAccessor = "singleton"

var (
	binderMethods     = []string{bindMethod, bindProviderMethod, bindInterceptorMethod}
	injectorMethods   = []string{getInstanceMethod, getInstanceByNameMethod}
	invocationMethods = []string{
		getClassNameMethod,
		getConstructorNameMethod,
		getMethodNameMethod,
		getQualifiedNameMethod,
		getArgumentsMethod,
		proceedMethod,
		getThisMethod,
	}
)
