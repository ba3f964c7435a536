package models

import (
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/utils"
)

// InterceptorInfo is a declarative selector of methods plus the function
// run around them
type InterceptorInfo struct {
	Module           string          // declaring module class
	Name             string          // property the function is installed as on the module
	ClassMatcher     string          // namespace or class name; empty for ANY
	ClassMatchKind   ClassMatchKind  // how ClassMatcher is compared
	MethodMatcher    string          // method name pattern; empty for ANY
	MethodMatchKind  MethodMatchKind // how MethodMatcher is compared
	JoinPoint        JoinPoint       // where the interceptor runs
	ClassNameAccess  bool            // interceptor reads the class name
	MethodNameAccess bool            // interceptor reads the method name
	Function         *jsast.Node     // interceptor function
	Call             *jsast.Node     // bindInterceptor call
}

// BindingInfo associates a dependency name with what supplies it
type BindingInfo struct {
	Module     string      // declaring module class
	Name       string      // binding name
	Kind       BindingKind // what the binding supplies
	Scope      Scope       // requested lifetime for TO bindings
	Expression *jsast.Node // bound constructor, value or provider function
	Call       *jsast.Node // bind(...) chain call
	ClassName  string      // target class for TO bindings
}

// IsProvider reports whether the binding supplies values through a function
func (b *BindingInfo) IsProvider() bool {
	return b.Kind == BindingToProvider
}

// ModuleInfo describes a module constructor and what its configure method
// declares
type ModuleInfo struct {
	Name         string             // module class name
	Constructor  *jsast.Node        // module constructor function
	Configure    *jsast.Node        // configure method function, if found
	Interceptors []*InterceptorInfo // bindInterceptor calls in declaration order

	bindings *utils.OrderedRegistry[string, *BindingInfo]
}

// NewModuleInfo creates module metadata
func NewModuleInfo(name string, constructor *jsast.Node) *ModuleInfo {
	return &ModuleInfo{
		Name:        name,
		Constructor: constructor,
		bindings:    utils.NewOrderedRegistry[string, *BindingInfo](),
	}
}

// AddBinding records a binding; the last binding of a name wins
func (m *ModuleInfo) AddBinding(b *BindingInfo) {
	m.bindings.Set(b.Name, b)
}

// Binding looks up a binding by name
func (m *ModuleInfo) Binding(name string) (*BindingInfo, bool) {
	return m.bindings.Get(name)
}

// Bindings returns the bindings in declaration order
func (m *ModuleInfo) Bindings() []*BindingInfo {
	return m.bindings.Values()
}

// InstanceRequest is a getInstance or getInstanceByName call inside a
// module initializer
type InstanceRequest struct {
	Call   *jsast.Node // the injector call
	Target string      // class name or binding name
	ByName bool        // getInstanceByName
}

// ModuleInitializerInfo describes one camp.injections.modules.init call
type ModuleInitializerInfo struct {
	Modules  []string           // module class names in configuration order
	Call     *jsast.Node        // the init call
	Function *jsast.Node        // initializer callback
	Injector string             // callback parameter naming the injector
	Requests []*InstanceRequest // injector calls in source order
}

// InjectionSpec is a camp.injections.Injector.inject call
type InjectionSpec struct {
	ClassName string      // target class
	Methods   []string    // method specifications as written
	Call      *jsast.Node // the inject call
}
