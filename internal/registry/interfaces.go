package registry

import (
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/models"
)

// Registry is the passive store of metadata discovered by collection.
// Lookups report absence instead of creating entries. A Registry is not
// safe for concurrent writers; collect into one registry per file and Merge.
type Registry interface {
	AddClass(info *models.ClassInfo)
	Class(name string) (*models.ClassInfo, bool)
	Classes() []*models.ClassInfo

	AddPrototype(p *models.PrototypeInfo)
	Prototype(className, method string) (*models.PrototypeInfo, bool)
	Members(className string) []string

	SetBaseType(className, base string)
	BaseType(className string) (string, bool)
	Ancestors(className string) []string

	AddSingletonCall(className string, stmt *jsast.Node)

	AddModule(info *models.ModuleInfo)
	Module(name string) (*models.ModuleInfo, bool)
	Modules() []*models.ModuleInfo
	AddInitializer(info *models.ModuleInitializerInfo)
	Initializers() []*models.ModuleInitializerInfo
	AddInjection(spec *models.InjectionSpec)
	Injections() []*models.InjectionSpec

	AddType(info *models.TypeInfo)
	Types(name string) []*models.TypeInfo
	AddResolvePoint(p *models.ResolvePoint)
	ResolvePoints() []*models.ResolvePoint
	AddBinder(b *models.BinderInfo)
	Binders() []*models.BinderInfo

	AddTrait(info *models.TraitInfo)
	Trait(name string) (*models.TraitInfo, bool)
	Traits() []*models.TraitInfo
	AddMixin(info *models.MixinInfo)
	Mixins() []*models.MixinInfo

	Integrate()
	Merge(other Registry)
}
