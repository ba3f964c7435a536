package models

import (
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/utils"
)

// ClassInfo describes a constructor discovered during collection
type ClassInfo struct {
	Name          string      // qualified class name
	Constructor   *jsast.Node // constructor function node
	ParamNames    []string    // declared constructor parameters
	Setters       []string    // setter methods called after construction
	Provider      *jsast.Node // provider function supplying instances, if any
	SingletonCall *jsast.Node // goog.addSingletonGetter statement, if any
	BaseType      string      // direct superclass from @extends or goog.inherits
	Scope         Scope       // lifetime requested by a binding

	// EnhancedName is the synthesized subclass that carries interceptors.
	// Empty until the class is weaved.
	EnhancedName string

	prototypes *utils.OrderedRegistry[string, *PrototypeInfo]
	accessors  map[string]*jsast.Node
}

// NewClassInfo creates class metadata for a constructor
func NewClassInfo(name string, constructor *jsast.Node) *ClassInfo {
	info := &ClassInfo{
		Name:        name,
		Constructor: constructor,
		prototypes:  utils.NewOrderedRegistry[string, *PrototypeInfo](),
		accessors:   make(map[string]*jsast.Node),
	}
	if constructor != nil && constructor.IsFunction() {
		info.ParamNames = constructor.ParamNames()
	}
	return info
}

// IsSingleton reports whether one shared instance is created
func (c *ClassInfo) IsSingleton() bool {
	return c.SingletonCall != nil || c.Scope == ScopeSingleton || c.Scope == ScopeEagerSingleton
}

// IsEager reports whether the shared instance is created up front
func (c *ClassInfo) IsEager() bool {
	return c.Scope == ScopeEagerSingleton
}

// IsEnhanced reports whether an enhanced constructor was synthesized
func (c *ClassInfo) IsEnhanced() bool {
	return c.EnhancedName != ""
}

// TargetName returns the constructor name instances are created with
func (c *ClassInfo) TargetName() string {
	if c.EnhancedName != "" {
		return c.EnhancedName
	}
	return c.Name
}

// AddPrototype records a prototype method; a later definition replaces an
// earlier one
func (c *ClassInfo) AddPrototype(p *PrototypeInfo) {
	c.prototypes.Set(p.MethodName, p)
}

// Prototype looks up a method by name
func (c *ClassInfo) Prototype(method string) (*PrototypeInfo, bool) {
	return c.prototypes.Get(method)
}

// Prototypes returns the methods in declaration order
func (c *ClassInfo) Prototypes() []*PrototypeInfo {
	return c.prototypes.Values()
}

// HasInterceptors reports whether any method has a matched interceptor
func (c *ClassInfo) HasInterceptors() bool {
	for _, p := range c.prototypes.Values() {
		if len(p.Interceptors) > 0 {
			return true
		}
	}
	return false
}

// NeedsWeaving reports whether an enhanced constructor must be synthesized
func (c *ClassInfo) NeedsWeaving() bool {
	return c.HasInterceptors() || c.SingletonCall != nil
}

// HasSetter reports whether name is already a setter
func (c *ClassInfo) HasSetter(name string) bool {
	for _, s := range c.Setters {
		if s == name {
			return true
		}
	}
	return false
}

// Accessor returns a previously synthesized accessor node
func (c *ClassInfo) Accessor(name string) (*jsast.Node, bool) {
	n, ok := c.accessors[name]
	return n, ok
}

// RememberAccessor memoizes a synthesized accessor node
func (c *ClassInfo) RememberAccessor(name string, n *jsast.Node) {
	c.accessors[name] = n
}

// Derive returns a copy sharing the collected syntax but with fresh
// per-injector state: no matched interceptors, no enhanced constructor and
// no memoized accessors.
func (c *ClassInfo) Derive() *ClassInfo {
	derived := NewClassInfo(c.Name, nil)
	derived.Constructor = c.Constructor
	derived.ParamNames = append([]string(nil), c.ParamNames...)
	derived.Setters = append([]string(nil), c.Setters...)
	derived.Provider = c.Provider
	derived.SingletonCall = c.SingletonCall
	derived.BaseType = c.BaseType
	derived.Scope = c.Scope
	for _, p := range c.prototypes.Values() {
		derived.AddPrototype(p.Derive(c.Name))
	}
	return derived
}

// PrototypeInfo describes one prototype method of a class
type PrototypeInfo struct {
	ClassName    string             // owning class
	MethodName   string             // method name
	Function     *jsast.Node        // method function node
	ParamNames   []string           // declared parameters
	Interceptors []*InterceptorInfo // matched interceptors in binding order
	Inherited    bool               // copied from a superclass
	Weaved       bool               // wrapper already emitted
	Wrapper      *jsast.Node        // most recently emitted wrapper statement
}

// NewPrototypeInfo creates metadata for a method function
func NewPrototypeInfo(className, methodName string, fn *jsast.Node) *PrototypeInfo {
	p := &PrototypeInfo{ClassName: className, MethodName: methodName, Function: fn}
	if fn != nil && fn.IsFunction() {
		p.ParamNames = fn.ParamNames()
	}
	return p
}

// AddInterceptor appends an interceptor unless it is already matched
func (p *PrototypeInfo) AddInterceptor(i *InterceptorInfo) bool {
	for _, existing := range p.Interceptors {
		if existing == i {
			return false
		}
	}
	p.Interceptors = append(p.Interceptors, i)
	return true
}

// Derive returns a copy owned by className with no interceptors and no
// emitted wrapper
func (p *PrototypeInfo) Derive(className string) *PrototypeInfo {
	return &PrototypeInfo{
		ClassName:  className,
		MethodName: p.MethodName,
		Function:   p.Function,
		ParamNames: append([]string(nil), p.ParamNames...),
		Inherited:  p.Inherited || className != p.ClassName,
	}
}
