package mixin

import "github.com/toyz/camp/internal/errors"

var (
	MixinFirstArgumentInvalid = errors.NewErrorType("JSC_MESSAGE_MIXIN_FIRST_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"A first argument of the "+MixinCall+" must be a constructor function.")
	MixinSecondArgumentInvalid = errors.NewErrorType("JSC_MESSAGE_MIXIN_SECOND_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"A second argument of the "+MixinCall+" must be an array literal of traits.")
	MixinThirdArgumentInvalid = errors.NewErrorType("JSC_MESSAGE_MIXIN_THIRD_ARGUMENT_IS_INVALID", errors.StructuralErrorCode,
		"A third argument of the "+MixinCall+" must be an object literal.")
	CircularReference = errors.NewErrorType("JSC_MESSAGE_MIXIN_HAS_CIRCULAR_REFERENCE", errors.SemanticErrorCode,
		"The trait %s can not mixin self.")
	TraitBodyInvalid = errors.NewErrorType("JSC_MESSAGE_TRAIT_MEMBER_DEFINITION_MUST_BE_THE_OBJ_LIT", errors.StructuralErrorCode,
		"The property definitions of "+TraitCall+" must be the object literal.")
	TraitRequiresInvalid = errors.NewErrorType("JSC_MESSAGE_TRAIT_REQUIREMENTS_MUST_BE_THE_ARRAY_LIT", errors.StructuralErrorCode,
		"The requirements of the trait must be the array literal of the trait name.")
	RequiredTraitNotExists = errors.NewErrorType("JSC_MESSAGE_REQUIRED_TRAIT_IS_NOT_EXISTS", errors.SemanticErrorCode,
		"The trait %s required from %s is not exists.")
	UnresolvedMethod = errors.NewErrorType("JSC_MESSAGE_DETECT_UNRESOLVED_METHOD", errors.SemanticErrorCode,
		"The function %s defined in %s conflict with the function of %s.")
	MustBeCalledInGlobalScope = errors.NewErrorType("JSC_MESSAGE_FUNCTION_MUST_BE_CALLED_IN_GLOBAL_SCOPE", errors.SemanticErrorCode,
		"The function %s must be called in the global scope.")
	RequiredPropertyNotImplemented = errors.NewErrorType("JSC_MESSAGE_REQUIRED_PROPERTY_IS_NOT_IMPLEMENTED", errors.SemanticErrorCode,
		"The property %s required by %s (first defined in %s) is not implemented.")
	RequireNotAllowedHere = errors.NewErrorType("JSC_MESSAGE_REQUIRE_IS_NOT_ALLOWED_HERE", errors.StructuralErrorCode,
		"The "+RequireMarker+" is not allowed here.")
)
