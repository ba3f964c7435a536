package models

// ClassMatchKind selects how an interceptor's class matcher is compared
// against a class name
type ClassMatchKind int

const (
	ClassMatchAny ClassMatchKind = iota
	ClassMatchInNamespace
	ClassMatchSubNamespace
	ClassMatchSubclassOf
	ClassMatchInstanceOf
)

// String returns the matcher kind name
func (k ClassMatchKind) String() string {
	switch k {
	case ClassMatchInNamespace:
		return "IN_NAMESPACE"
	case ClassMatchSubNamespace:
		return "SUB_NAMESPACE"
	case ClassMatchSubclassOf:
		return "SUBCLASS_OF"
	case ClassMatchInstanceOf:
		return "INSTANCE_OF"
	default:
		return "ANY"
	}
}

// MethodMatchKind selects how an interceptor's method matcher is compared
// against a method name
type MethodMatchKind int

const (
	MethodMatchAny MethodMatchKind = iota
	MethodMatchLike
)

// String returns the matcher kind name
func (k MethodMatchKind) String() string {
	if k == MethodMatchLike {
		return "LIKE"
	}
	return "ANY"
}

// JoinPoint is the kind of program point an interceptor runs around
type JoinPoint int

const (
	JoinPointMethodInvocation JoinPoint = iota
)

// BindingKind describes what a binding supplies
type BindingKind int

const (
	BindingTo         BindingKind = iota // a constructor, instantiated on demand
	BindingToInstance                    // a fixed value
	BindingToProvider                    // a function called on demand
)

// String returns the binding kind name
func (k BindingKind) String() string {
	switch k {
	case BindingToInstance:
		return "TO_INSTANCE"
	case BindingToProvider:
		return "TO_PROVIDER"
	default:
		return "TO"
	}
}

// Scope is the lifetime of an instantiated binding
type Scope int

const (
	ScopePrototype      Scope = iota // new instance per request
	ScopeSingleton                   // one lazily created instance
	ScopeEagerSingleton              // one instance created when the injector starts
)

// String returns the scope name
func (s Scope) String() string {
	switch s {
	case ScopeSingleton:
		return "SINGLETON"
	case ScopeEagerSingleton:
		return "EAGER_SINGLETON"
	default:
		return "PROTOTYPE"
	}
}

// ParseScope maps a scope constant name to its Scope
func ParseScope(name string) (Scope, bool) {
	switch name {
	case "PROTOTYPE":
		return ScopePrototype, true
	case "SINGLETON":
		return ScopeSingleton, true
	case "EAGER_SINGLETON":
		return ScopeEagerSingleton, true
	}
	return ScopePrototype, false
}

// ResolveKind is the kind of a dependency resolution call site
type ResolveKind int

const (
	Resolve     ResolveKind = iota // construct on every evaluation
	ResolveOnce                    // memoize per call site
)

// String returns the resolve kind name
func (k ResolveKind) String() string {
	if k == ResolveOnce {
		return "RESOLVE_ONCE"
	}
	return "RESOLVE"
}

// CompositionState tracks trait composition of one target class
type CompositionState int

const (
	CompositionPending CompositionState = iota
	CompositionComposing
	CompositionComposed
	CompositionConflict
	CompositionUnsatisfied
)

// String returns the state name
func (s CompositionState) String() string {
	switch s {
	case CompositionComposing:
		return "Composing"
	case CompositionComposed:
		return "Composed"
	case CompositionConflict:
		return "Conflict"
	case CompositionUnsatisfied:
		return "Unsatisfied"
	default:
		return "Pending"
	}
}
