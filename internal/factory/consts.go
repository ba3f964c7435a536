package factory

// Recognized entry points
const (
	ResolveCall         = "camp.utils.dependencies.resolve"
	ResolveOnceCall     = "camp.utils.dependencies.resolveOnce"
	NewWithCall         = "camp.utils.dependencies.newWith"
	BinderCall          = "camp.utils.dependencies.binder.bind"
	BinderSingletonCall = "camp.utils.dependencies.binder.bindSingleton"
	SingletonScope      = "camp.utils.dependencies.Scopes.SINGLETON"
)

// Generated identifiers
const (
	FactoryProperty = "jscomp$newInstance"
	BindingsParam   = "bindings"
	OnceVarPrefix   = "jscomp$instanceVar"

	instanceName   = "instance"
	getterPrefix   = "get"
	providerSuffix = "Provider"
	onceCounter    = "instanceVar"
)

// Binder member keys
const (
	keyTo = "to"
	keyAs = "as"
)
