package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/camp/internal/jsast"
)

func method(params ...string) *jsast.Node {
	return jsast.NewFunction("", params, nil)
}

func TestClassInfoDeriveDropsPerInjectorState(t *testing.T) {
	ctor := jsast.NewFunction("", []string{"a", "b"}, nil)
	info := NewClassInfo("app.Service", ctor)
	assert.Equal(t, []string{"a", "b"}, info.ParamNames)

	info.AddPrototype(NewPrototypeInfo("app.Service", "run", method("x")))
	p, ok := info.Prototype("run")
	require.True(t, ok)
	p.AddInterceptor(&InterceptorInfo{Name: "jscomp$interceptor$0"})
	p.Weaved = true
	info.EnhancedName = "JSComp$enhanced$app_Service"
	info.RememberAccessor("singleton", jsast.NewName("singletonInstance0"))

	derived := info.Derive()
	assert.Equal(t, info.Name, derived.Name)
	assert.Same(t, ctor, derived.Constructor)
	assert.False(t, derived.IsEnhanced())
	assert.False(t, derived.HasInterceptors())
	_, ok = derived.Accessor("singleton")
	assert.False(t, ok)

	dp, ok := derived.Prototype("run")
	require.True(t, ok)
	assert.False(t, dp.Weaved)
	assert.Equal(t, []string{"x"}, dp.ParamNames)
	assert.Len(t, p.Interceptors, 1, "original keeps its interceptors")
}

func TestClassInfoSingletonAndWeaving(t *testing.T) {
	info := NewClassInfo("a.B", method())
	assert.False(t, info.IsSingleton())
	assert.False(t, info.NeedsWeaving())
	assert.Equal(t, "a.B", info.TargetName())

	info.Scope = ScopeEagerSingleton
	assert.True(t, info.IsSingleton())
	assert.True(t, info.IsEager())
	assert.False(t, info.NeedsWeaving())

	info.SingletonCall = jsast.NewExprResult(jsast.NewCall(jsast.NewQualifiedName("goog.addSingletonGetter")))
	assert.True(t, info.NeedsWeaving())

	info.EnhancedName = "JSComp$enhanced$a_B"
	assert.Equal(t, "JSComp$enhanced$a_B", info.TargetName())
}

func TestPrototypeInterceptorsAreOrderedAndUnique(t *testing.T) {
	p := NewPrototypeInfo("a.B", "m", method())
	first := &InterceptorInfo{Name: "first"}
	second := &InterceptorInfo{Name: "second"}

	assert.True(t, p.AddInterceptor(first))
	assert.True(t, p.AddInterceptor(second))
	assert.False(t, p.AddInterceptor(first))
	require.Len(t, p.Interceptors, 2)
	assert.Equal(t, "first", p.Interceptors[0].Name)

	inherited := p.Derive("a.C")
	assert.True(t, inherited.Inherited)
	assert.Equal(t, "a.C", inherited.ClassName)
	assert.Empty(t, inherited.Interceptors)
}

func TestModuleBindingsKeepDeclarationOrder(t *testing.T) {
	m := NewModuleInfo("app.Module", method())
	m.AddBinding(&BindingInfo{Name: "b", Kind: BindingTo})
	m.AddBinding(&BindingInfo{Name: "a", Kind: BindingToProvider})
	m.AddBinding(&BindingInfo{Name: "b", Kind: BindingToInstance})

	bindings := m.Bindings()
	require.Len(t, bindings, 2)
	assert.Equal(t, "b", bindings[0].Name)
	assert.Equal(t, BindingToInstance, bindings[0].Kind)
	assert.True(t, bindings[1].IsProvider())

	_, ok := m.Binding("missing")
	assert.False(t, ok)
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		name  string
		want  Scope
		valid bool
	}{
		{"SINGLETON", ScopeSingleton, true},
		{"EAGER_SINGLETON", ScopeEagerSingleton, true},
		{"PROTOTYPE", ScopePrototype, true},
		{"SESSION", ScopePrototype, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseScope(tt.name)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
			if ok {
				assert.Equal(t, tt.name, got.String())
			}
		})
	}
}

func traitBody() *jsast.Node {
	return jsast.NewObjectLit(
		jsast.NewStringKey("greet", jsast.NewFunction("", nil, jsast.NewBlock(
			jsast.NewReturn(jsast.NewGetProp(jsast.NewThis(), "name")),
		))),
		jsast.NewStringKey("count", jsast.NewLiteral("0")),
		jsast.NewStringKey("name", jsast.NewQualifiedName(TraitRequireMarker)),
	)
}

func TestNewTraitInfoCollectsProperties(t *testing.T) {
	body := traitBody()
	trait := NewTraitInfo("app.Greeter", nil, nil, body, nil)

	props := trait.Properties()
	require.Len(t, props, 3)
	assert.Equal(t, "greet", props[0].Name)
	assert.True(t, props[0].IsFunction)
	assert.True(t, props[0].ThisAccess)
	assert.True(t, props[0].Implicit)
	assert.Equal(t, DefaultThisType, props[0].ThisType)
	assert.False(t, props[1].IsFunction)
	assert.True(t, props[2].Require)
}

func TestTraitPropertyDeriveReturnsNewValue(t *testing.T) {
	trait := NewTraitInfo("app.Greeter", nil, nil, traitBody(), nil)
	greet, _ := trait.Property("greet")
	greet.MarkPropagated("app.Person")

	moved := greet.Derive("app.Person")
	assert.NotSame(t, greet, moved)
	assert.Equal(t, "app.Person", moved.CurrentHolder)
	assert.Equal(t, "app.Greeter", moved.LastHolder)
	assert.Equal(t, "app.Greeter", moved.TraitName)
	assert.False(t, moved.Implicit)
	assert.False(t, moved.PropagatedInto("app.Person"))

	assert.Equal(t, "app.Greeter", greet.CurrentHolder, "source is untouched")
	assert.True(t, greet.PropagatedInto("app.Person"))

	again := moved.Derive("app.Student")
	assert.Equal(t, "app.Person", again.LastHolder)
	assert.True(t, again.SameOrigin(greet))
}

func TestTraitAddPropertyExtendsBody(t *testing.T) {
	body := traitBody()
	trait := NewTraitInfo("a.T", nil, nil, body, nil)

	key := jsast.NewStringKey("extra", jsast.NewQualifiedName("a.Other.extra"))
	trait.AddProperty(NewTraitProperty("a.Other", key).Derive("a.T"))
	assert.Equal(t, 4, body.ChildCount())
	assert.Same(t, key, body.LastChild())

	replacement := jsast.NewStringKey("count", jsast.NewLiteral("1"))
	trait.AddProperty(NewTraitProperty("a.T", replacement))
	assert.Equal(t, 4, body.ChildCount())
	p, _ := trait.Property("count")
	assert.Same(t, replacement, p.Key)
}

func TestMixinOverrides(t *testing.T) {
	overrides := jsast.NewObjectLit(
		jsast.NewStringKey("greet", jsast.NewFunction("", nil, nil)),
	)
	m := NewMixinInfo("app.Person", []string{"app.Greeter"}, nil, nil, overrides)
	_, ok := m.Override("greet")
	assert.True(t, ok)
	_, ok = m.Override("count")
	assert.False(t, ok)
	assert.Len(t, m.Overrides(), 1)

	empty := NewMixinInfo("app.Person", nil, nil, nil, nil)
	assert.Empty(t, empty.Overrides())
}

func TestTraitImplementationClaims(t *testing.T) {
	one := NewTraitInfo("a.One", nil, nil, traitBody(), nil)
	two := NewTraitInfo("a.Two", nil, nil, traitBody(), nil)
	greetOne, _ := one.Property("greet")
	greetTwo, _ := two.Property("greet")

	impl := NewTraitImplementationInfo("a.Target")
	_, result := impl.Claim(greetOne)
	assert.Equal(t, ClaimNew, result)

	_, result = impl.Claim(greetOne.Derive("a.Mid"))
	assert.Equal(t, ClaimDuplicate, result)

	owner, result := impl.Claim(greetTwo)
	assert.Equal(t, ClaimConflict, result)
	assert.Same(t, greetOne, owner)
}

func TestTraitImplementationObligations(t *testing.T) {
	trait := NewTraitInfo("a.T", nil, nil, traitBody(), nil)
	name, _ := trait.Property("name")

	impl := NewTraitImplementationInfo("a.Target")
	impl.Require(name)
	impl.Require(name.Derive("a.Other"))
	require.Len(t, impl.Unimplemented(), 1)
	assert.Same(t, name, impl.Unimplemented()[0].Property)

	impl.MarkImplemented("name")
	assert.Empty(t, impl.Unimplemented())
}

func TestTypeInfo(t *testing.T) {
	ctor := jsast.NewFunction("", []string{"a"}, nil)
	info := NewTypeInfo("app.Foo", ctor, nil)
	assert.False(t, info.IsAlias())
	assert.Equal(t, []string{"a"}, info.ParamNames)

	info.MethodInjections = append(info.MethodInjections, &MethodInjection{MethodName: "setBar"})
	_, ok := info.MethodInjection("setBar")
	assert.True(t, ok)

	alias := NewAliasTypeInfo("app.FooAlias", "app.Foo", nil)
	assert.True(t, alias.IsAlias())
}
