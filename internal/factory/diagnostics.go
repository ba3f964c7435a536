package factory

import "github.com/toyz/camp/internal/errors"

var (
	ResolveFirstArgumentInvalid = errors.NewErrorType("JSC_MSG_RESOLVE_FIRST_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"A first argument of %s must be a constructor.")
	ResolveSecondArgumentInvalid = errors.NewErrorType("JSC_MSG_RESOLVE_SECOND_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"A second argument of %s must be a binding object.")
	BindingsMustBeReference = errors.NewErrorType("JSC_MSG_BINDINGS_MUST_BE_REFERENCE", errors.StructuralErrorCode,
		"The bindings of %s must be a variable or property reference, since instances are stored on the bindings object.")

	InjectionAlreadySpecified = errors.NewErrorType("JSC_MSG_INJECTION_IS_AMBIGUOUS", errors.SemanticErrorCode,
		"The method injection target %s of a constructor %s is already specified.")
	InvalidMethodSpecification = errors.NewErrorType("JSC_MSG_INVALID_METHOD_SPECIFICATION", errors.StructuralErrorCode,
		"The string expression '%s' is invalid method injection specification.")
	InjectionTargetNotFound = errors.NewErrorType("JSC_MSG_METHOD_NOT_FOUND", errors.ResolutionErrorCode,
		"The injection target %s of the constructor %s is not exists in prototype chain or is not parsable. "+
			"Compiler is parse only the prototypes which are the function directly assigned. "+
			"If you declare prototype which is non-trivial style, "+
			"you should specify not only a method name but also parameters "+
			"in 'camp.injections.Injector.inject' call, like 'setFoo(foo,bar,baz)'.")

	BinderFirstArgumentInvalid = errors.NewErrorType("JSC_MSG_BINDER_FIRST_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"A first argument of %s must be a bindings.")
	BinderSecondArgumentInvalid = errors.NewErrorType("JSC_MSG_BINDER_SECOND_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"A second argument of %s must be an object literal.")
	BinderMemberInvalid = errors.NewErrorType("JSC_MSG_BINDER_MEMBER_IS_INVALID", errors.StructuralErrorCode,
		"The properties of object literal of "+BinderCall+" must be a constructor.")
	BinderToInvalid = errors.NewErrorType("JSC_MSG_BINDER_TO_MEMBER_IS_INVALID", errors.StructuralErrorCode,
		"The value of 'to : ...' key of object literal of "+BinderCall+" must be a constructor.")
	BinderAsInvalid = errors.NewErrorType("JSC_MSG_BINDER_AS_MEMBER_IS_INVALID", errors.StructuralErrorCode,
		"The value of 'as : ...' key of object literal of "+BinderCall+" must be a "+SingletonScope+".")
	BinderInnerPropertyInvalid = errors.NewErrorType("JSC_MSG_BIND_OBJECT_LITERAL_INNER_PROPERTY_IS_INVALID", errors.StructuralErrorCode,
		"The keys of object literal of "+BinderCall+" are only allowed 'to : ...' and 'as : ...'.")
	BinderMustSpecifyConstructor = errors.NewErrorType("JSC_MSG_BIND_MUST_SPECIFY_CONSTRUCTOR", errors.StructuralErrorCode,
		"The "+BinderCall+" must specify the constructor.")
	BinderTypeNotFound = errors.NewWarningType("JSC_MSG_BINDER_TYPE_NOT_FOUND", errors.ResolutionErrorCode,
		"The constructor %s bound to %s is not defined, the binding is skipped.")
)
