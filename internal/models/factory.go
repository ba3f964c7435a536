package models

import "github.com/toyz/camp/internal/jsast"

// TypeInfo describes a type a static factory can be generated for
type TypeInfo struct {
	Name             string             // qualified type name
	Constructor      *jsast.Node        // constructor function, nil for aliases
	Statement        *jsast.Node        // statement declaring the type
	ParamNames       []string           // constructor parameters
	MethodInjections []*MethodInjection // methods called after construction
	AliasOf          string             // aliased type name, empty unless an alias
	HasFactory       bool               // factory already emitted
}

// NewTypeInfo creates type metadata for a constructor declared by stmt
func NewTypeInfo(name string, constructor, stmt *jsast.Node) *TypeInfo {
	t := &TypeInfo{Name: name, Constructor: constructor, Statement: stmt}
	if constructor != nil && constructor.IsFunction() {
		t.ParamNames = constructor.ParamNames()
	}
	return t
}

// NewAliasTypeInfo creates type metadata that forwards to target's factory
func NewAliasTypeInfo(name, target string, stmt *jsast.Node) *TypeInfo {
	return &TypeInfo{Name: name, Statement: stmt, AliasOf: target}
}

// IsAlias reports whether the type forwards to another type's factory
func (t *TypeInfo) IsAlias() bool {
	return t.AliasOf != ""
}

// MethodInjection returns the injection for method, if declared
func (t *TypeInfo) MethodInjection(method string) (*MethodInjection, bool) {
	for _, m := range t.MethodInjections {
		if m.MethodName == method {
			return m, true
		}
	}
	return nil, false
}

// MethodInjection describes a method called on a new instance with
// resolved arguments
type MethodInjection struct {
	MethodName string   // method to call
	ParamNames []string // binding names passed as arguments
	Explicit   bool     // parameters were written in the specification
}

// ResolvePoint is a call site requesting construction of a type
type ResolvePoint struct {
	TypeName string      // requested type
	Kind     ResolveKind // plain or memoized
	Bindings *jsast.Node // bindings argument expression
	Call     *jsast.Node // the resolve call
}

// BinderEntry is one member of a factory binder object
type BinderEntry struct {
	Key      string      // binding name, accessed as bindings.get<Key>()
	TypeName string      // bound constructor
	Scope    Scope       // lifetime of the bound instance
	Node     *jsast.Node // object literal member
}

// BinderInfo describes a camp.utils.dependencies.binder call
type BinderInfo struct {
	Bindings *jsast.Node    // bindings argument expression
	Entries  []*BinderEntry // members in declaration order
	Call     *jsast.Node    // the binder call
}
