package injections

import "github.com/toyz/camp/internal/errors"

// Collection diagnostics
var (
	ModuleInitFirstArgumentInvalid = errors.NewErrorType("JSC_MSG_FIRST_ARGUMENT_OF_MODULE_INITIALIZER_IS_INVALID", errors.StructuralErrorCode,
		"The first argument of "+ModuleInitCall+" must be a Array of "+ModuleInterface+" implementation.")
	ModuleInitFirstArgumentEmpty = errors.NewWarningType("JSC_MSG_FIRST_ARGUMENT_OF_MODULE_INITIALIZER_IS_EMPTY", errors.StructuralErrorCode,
		"The first argument of "+ModuleInitCall+" is empty.")
	ModuleInitSecondArgumentInvalid = errors.NewErrorType("JSC_MSG_SECOND_ARGUMENT_OF_MODULE_INITIALIZER_IS_INVALID", errors.StructuralErrorCode,
		"The second argument of "+ModuleInitCall+" must be a function expression.")

	InjectFirstArgumentInvalid = errors.NewErrorType("JSC_MSG_FIRST_ARGUMENT_OF_INJECT_IS_INVALID", errors.StructuralErrorCode,
		"The first argument of "+InjectCall+" must be a constructor function.")
	InjectSecondArgumentInvalid = errors.NewErrorType("JSC_MSG_SECOND_ARGUMENT_OF_INJECT_IS_INVALID", errors.StructuralErrorCode,
		"The second argument and rest of "+InjectCall+" must be a string expression which is method name of injection target.")

	BindFirstArgumentInvalid = errors.NewErrorType("JSC_MSG_BIND_CALL_FIRST_ARGUMENT_IS_NOT_VALID", errors.StructuralErrorCode,
		"The first argument of function bind must be a string which is key of injection.")
	BindSecondArgumentInvalid = errors.NewErrorType("JSC_MSG_BIND_CALL_SECOND_ARGUMENT_IS_NOT_VALID", errors.StructuralErrorCode,
		"%s")
	BindingIncomplete = errors.NewErrorType("JSC_MSG_BINDING_IS_INCOMPLETE", errors.StructuralErrorCode,
		"The binding %s must be completed with one of %s.")
	BindProviderArgumentInvalid = errors.NewErrorType("JSC_MSG_BIND_PROVIDER_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"The second argument of bindProvider must be a function expression.")

	BindInterceptorFirstArgumentInvalid = errors.NewErrorType("JSC_MSG_BIND_INTERCEPTOR_FIRST_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"The first argument of bindInterceptor must be a one of "+MatchersInNamespace+", "+MatchersInSubnamespace+", "+
			MatchersSubclassOf+", "+MatchersInstanceOf+" or "+MatchersAny+".")
	BindInterceptorSecondArgumentInvalid = errors.NewErrorType("JSC_MSG_BIND_INTERCEPTOR_SECOND_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"The second argument of bindInterceptor must be a one of "+MatchersLike+" or "+MatchersAny+".")
	BindInterceptorThirdArgumentInvalid = errors.NewErrorType("JSC_MSG_BIND_INTERCEPTOR_THIRD_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"The third argument of bindInterceptor must be a function expression which define behavior of the interceptor.")

	MatcherInNamespaceArgumentInvalid = errors.NewErrorType("JSC_MSG_MATCHER_IN_NAMESPACE_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"The first argument of "+MatchersInNamespace+" must be a string expression of namespace.")
	MatcherInSubnamespaceArgumentInvalid = errors.NewErrorType("JSC_MSG_MATCHER_IN_SUBNAMESPACE_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"The first argument of "+MatchersInSubnamespace+" must be a string expression of namespace.")
	MatcherInstanceOfArgumentInvalid = errors.NewErrorType("JSC_MSG_MATCHER_INSTANCE_OF_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"The first argument of "+MatchersInstanceOf+" must be a constructor function.")
	MatcherSubclassOfArgumentInvalid = errors.NewErrorType("JSC_MSG_MATCHER_SUBCLASS_OF_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"The first argument of "+MatchersSubclassOf+" must be a constructor function.")
	MatcherAnyHasNoArgument = errors.NewErrorType("JSC_MSG_MATCHER_ANY_HAS_NO_ARGUMENT", errors.StructuralErrorCode,
		MatchersAny+" has no more than 0 arguments.")
	MatcherLikeArgumentInvalid = errors.NewErrorType("JSC_MSG_MATCHER_LIKE_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"The first argument of "+MatchersLike+" must be a string expression of the target method name.")

	BindingScopeInvalid = errors.NewErrorType("JSC_MSG_BINDING_SCOPE_IS_INVALID", errors.StructuralErrorCode,
		"The binding scope is specifiable only if binding method is 'to'.")
	BindingScopeTypeInvalid = errors.NewErrorType("JSC_MSG_BINDING_SCOPE_TYPE_IS_INVALID", errors.StructuralErrorCode,
		"The argument of "+Binder+".as must be a one of "+ScopesNamespace+".PROTOTYPE, SINGLETON or EAGER_SINGLETON.")
	BinderBindHasNoSuchMethod = errors.NewErrorType("JSC_MSG_BINDER_BIND_HAS_NO_SUCH_METHOD", errors.SemanticErrorCode,
		"The "+Binder+".bind has no such method %s.")
	BinderBindChainHasNoSuchMethod = errors.NewErrorType("JSC_MSG_BINDER_BIND_CHAIN_HAS_NO_SUCH_METHOD", errors.SemanticErrorCode,
		"The "+Binder+".bind.%s has no such method %s.")

	HasNoSuchMethod = errors.NewErrorType("JSC_MSG_HAS_NO_SUCH_METHOD", errors.SemanticErrorCode,
		"The %s has no such method #%s(). Available methods are %s.")
	AccessedToVirtualMethods = errors.NewErrorType("JSC_MSG_ACCESSED_TO_VIRTUAL_METHODS", errors.SemanticErrorCode,
		"The all methods of %s can not use as the function object and can not access to method itself. These are only virtual method because these methods are inlining by compiler.")
	InvalidAccessToEntity = errors.NewErrorType("JSC_MSG_INVALID_ACCESS_TO_ENTITY", errors.SemanticErrorCode,
		"The %s can not use as a object and can not access to itself because that inlined by compiler.")

	GetInstanceTargetInvalid = errors.NewErrorType("JSC_MSG_GET_INSTANCE_TARGET_INVALID", errors.StructuralErrorCode,
		"The argument of %s must be a constructor.")
	GetInstanceByNameTargetInvalid = errors.NewErrorType("JSC_MSG_GET_INSTANCE_BY_NAME_TARGET_INVALID", errors.StructuralErrorCode,
		"The argument of %s must be a string.")
)

// Rewrite diagnostics
var (
	ClassNotFound = errors.NewErrorType("JSC_MSG_CLASS_NOT_FOUND", errors.ResolutionErrorCode,
		"The class %s is not defined.")
	BindingNotFound = errors.NewWarningType("JSC_MSG_BINDING_NOT_FOUND", errors.ResolutionErrorCode,
		"Binding %s is not found.")
	BindingIsNotProvider = errors.NewWarningType("JSC_MSG_BINDING_IS_NOT_A_PROVIDER", errors.ResolutionErrorCode,
		"The parameter is specified as provider but binding %s is not a provider.")
	CircularBinding = errors.NewErrorType("JSC_MSG_CIRCULAR_BINDING", errors.ResolutionErrorCode,
		"The binding %s depends on itself.")
)
