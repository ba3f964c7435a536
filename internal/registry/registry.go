package registry

import (
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/models"
	"github.com/toyz/camp/internal/utils"
)

type prototypeKey struct {
	class  string
	method string
}

// registry implements the Registry interface
type registry struct {
	classes      *utils.OrderedRegistry[string, *models.ClassInfo]
	prototypes   *utils.OrderedRegistry[prototypeKey, *models.PrototypeInfo]
	baseTypes    *utils.OrderedRegistry[string, string]
	singletons   *utils.OrderedRegistry[string, *jsast.Node]
	modules      *utils.OrderedRegistry[string, *models.ModuleInfo]
	types        *utils.OrderedRegistry[string, []*models.TypeInfo]
	traits       *utils.OrderedRegistry[string, *models.TraitInfo]
	initializers []*models.ModuleInitializerInfo
	injections   []*models.InjectionSpec
	resolves     []*models.ResolvePoint
	binders      []*models.BinderInfo
	mixins       []*models.MixinInfo
}

// New creates an empty registry
func New() Registry {
	return &registry{
		classes:    utils.NewOrderedRegistry[string, *models.ClassInfo](),
		prototypes: utils.NewOrderedRegistry[prototypeKey, *models.PrototypeInfo](),
		baseTypes:  utils.NewOrderedRegistry[string, string](),
		singletons: utils.NewOrderedRegistry[string, *jsast.Node](),
		modules:    utils.NewOrderedRegistry[string, *models.ModuleInfo](),
		types:      utils.NewOrderedRegistry[string, []*models.TypeInfo](),
		traits:     utils.NewOrderedRegistry[string, *models.TraitInfo](),
	}
}

// AddClass records a class; the last definition of a name wins
func (r *registry) AddClass(info *models.ClassInfo) {
	r.classes.Set(info.Name, info)
}

// Class looks up a class by qualified name
func (r *registry) Class(name string) (*models.ClassInfo, bool) {
	return r.classes.Get(name)
}

// Classes returns all classes in discovery order
func (r *registry) Classes() []*models.ClassInfo {
	return r.classes.Values()
}

// AddPrototype records a prototype member of a class that may be declared
// in another file; Integrate attaches it
func (r *registry) AddPrototype(p *models.PrototypeInfo) {
	r.prototypes.Set(prototypeKey{p.ClassName, p.MethodName}, p)
}

// Prototype looks up a member declared directly on className
func (r *registry) Prototype(className, method string) (*models.PrototypeInfo, bool) {
	return r.prototypes.Get(prototypeKey{className, method})
}

// Members returns the member names declared directly on className
func (r *registry) Members(className string) []string {
	var names []string
	for _, key := range r.prototypes.Keys() {
		if key.class == className {
			names = append(names, key.method)
		}
	}
	return names
}

// SetBaseType records the direct superclass of className
func (r *registry) SetBaseType(className, base string) {
	r.baseTypes.Set(className, base)
}

// BaseType returns the direct superclass of className
func (r *registry) BaseType(className string) (string, bool) {
	return r.baseTypes.Get(className)
}

// Ancestors returns the superclass chain of className, nearest first. A
// cyclic chain stops before repeating a class.
func (r *registry) Ancestors(className string) []string {
	var chain []string
	seen := map[string]bool{className: true}
	for name := className; ; {
		base, ok := r.baseTypes.Get(name)
		if !ok || base == "" || seen[base] {
			return chain
		}
		seen[base] = true
		chain = append(chain, base)
		name = base
	}
}

// AddSingletonCall records a goog.addSingletonGetter statement
func (r *registry) AddSingletonCall(className string, stmt *jsast.Node) {
	r.singletons.Set(className, stmt)
}

// AddModule records a module constructor
func (r *registry) AddModule(info *models.ModuleInfo) {
	r.modules.Set(info.Name, info)
}

// Module looks up a module by class name
func (r *registry) Module(name string) (*models.ModuleInfo, bool) {
	return r.modules.Get(name)
}

// Modules returns all modules in discovery order
func (r *registry) Modules() []*models.ModuleInfo {
	return r.modules.Values()
}

// AddInitializer records a module initializer
func (r *registry) AddInitializer(info *models.ModuleInitializerInfo) {
	r.initializers = append(r.initializers, info)
}

// Initializers returns the module initializers in source order
func (r *registry) Initializers() []*models.ModuleInitializerInfo {
	return r.initializers
}

// AddInjection records an Injector.inject call
func (r *registry) AddInjection(spec *models.InjectionSpec) {
	r.injections = append(r.injections, spec)
}

// Injections returns the inject calls in source order
func (r *registry) Injections() []*models.InjectionSpec {
	return r.injections
}

// AddType records a factory type. Several entries may share a name, as
// with an alias and its target declared under one name.
func (r *registry) AddType(info *models.TypeInfo) {
	existing, _ := r.types.Get(info.Name)
	r.types.Set(info.Name, append(existing, info))
}

// Types returns every type recorded under name
func (r *registry) Types(name string) []*models.TypeInfo {
	types, _ := r.types.Get(name)
	return types
}

// AddResolvePoint records a resolve call site
func (r *registry) AddResolvePoint(p *models.ResolvePoint) {
	r.resolves = append(r.resolves, p)
}

// ResolvePoints returns the resolve call sites in source order
func (r *registry) ResolvePoints() []*models.ResolvePoint {
	return r.resolves
}

// AddBinder records a factory binder call
func (r *registry) AddBinder(b *models.BinderInfo) {
	r.binders = append(r.binders, b)
}

// Binders returns the binder calls in source order
func (r *registry) Binders() []*models.BinderInfo {
	return r.binders
}

// AddTrait records a trait; the last declaration of a name wins
func (r *registry) AddTrait(info *models.TraitInfo) {
	r.traits.Set(info.RefName, info)
}

// Trait looks up a trait by reference name
func (r *registry) Trait(name string) (*models.TraitInfo, bool) {
	return r.traits.Get(name)
}

// Traits returns all traits in declaration order
func (r *registry) Traits() []*models.TraitInfo {
	return r.traits.Values()
}

// AddMixin records a mixin declaration
func (r *registry) AddMixin(info *models.MixinInfo) {
	r.mixins = append(r.mixins, info)
}

// Mixins returns the mixin declarations in source order
func (r *registry) Mixins() []*models.MixinInfo {
	return r.mixins
}

// Merge appends everything other collected, keeping other's order
func (r *registry) Merge(other Registry) {
	o, ok := other.(*registry)
	if !ok {
		return
	}
	r.classes.Merge(o.classes)
	r.prototypes.Merge(o.prototypes)
	r.baseTypes.Merge(o.baseTypes)
	r.singletons.Merge(o.singletons)
	r.modules.Merge(o.modules)
	r.traits.Merge(o.traits)
	o.types.ForEach(func(_ string, types []*models.TypeInfo) {
		for _, t := range types {
			r.AddType(t)
		}
	})
	r.initializers = append(r.initializers, o.initializers...)
	r.injections = append(r.injections, o.injections...)
	r.resolves = append(r.resolves, o.resolves...)
	r.binders = append(r.binders, o.binders...)
	r.mixins = append(r.mixins, o.mixins...)
}

// Integrate links metadata collected in different files: prototype members,
// singleton registrations and base types are attached to their classes, then
// inherited members are propagated down the class hierarchy.
func (r *registry) Integrate() {
	r.prototypes.ForEach(func(key prototypeKey, p *models.PrototypeInfo) {
		if class, ok := r.classes.Get(key.class); ok {
			class.AddPrototype(p)
		}
	})
	r.singletons.ForEach(func(name string, stmt *jsast.Node) {
		if class, ok := r.classes.Get(name); ok {
			class.SingletonCall = stmt
		}
	})
	r.baseTypes.ForEach(func(name, base string) {
		if class, ok := r.classes.Get(name); ok {
			class.BaseType = base
		}
	})
	r.propagateInheritedPrototypes()
}

// propagateInheritedPrototypes gives every class a derived copy of each
// ancestor method it does not declare itself. The nearest ancestor wins.
func (r *registry) propagateInheritedPrototypes() {
	for _, class := range r.classes.Values() {
		for _, ancestor := range r.Ancestors(class.Name) {
			for _, key := range r.prototypes.Keys() {
				if key.class != ancestor {
					continue
				}
				if _, ok := class.Prototype(key.method); ok {
					continue
				}
				p, _ := r.prototypes.Get(key)
				class.AddPrototype(p.Derive(class.Name))
			}
		}
	}
}
