package mixin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/models"
	"github.com/toyz/camp/internal/testutil"
)

func compile(t *testing.T, src string) (*testutil.Result, *Pass) {
	t.Helper()
	pass := New()
	return testutil.CompileSource(t, []compiler.Pass{pass}, src), pass
}

func TestComposition(t *testing.T) {
	res, pass := compile(t, `
/** @constructor */
app.A = function() {};

var Greeter = camp.trait({
  greet: function() { return 'hi ' + this.name; },
  name: camp.trait.require,
  version: 1
});

var Named = camp.trait({name: 'anon'});

camp.mixin(app.A, [Greeter, Named]);
`)
	require.NoError(t, res.Err)
	assert.Empty(t, res.Keys())
	assert.Equal(t, models.CompositionComposed, pass.State("app.A"))

	out := res.Compact()
	assert.NotContains(t, out, "camp.mixin")
	assert.NotContains(t, out, "camp.trait(")
	assert.Contains(t, out, "var Greeter = { "+
		"greet: function() { return 'hi ' + this.name; }, "+
		"name: camp.trait.require, "+
		"version: 1, "+
		"/** @this {app.A} */ JSComp$$app$A$$greet: function() { return 'hi ' + this.name; } };")
	assert.Contains(t, out, "var Named = {name: 'anon'};")
	assert.Contains(t, out, "app.A.prototype.greet = Greeter.JSComp$$app$A$$greet; "+
		"app.A.prototype.version = Greeter.version; "+
		"app.A.prototype.name = Named.name;")
}

func TestConflictingMembers(t *testing.T) {
	res, pass := compile(t, `
/** @constructor */
function A() {}
var T1 = camp.trait({x: 1, y: 2});
var T2 = camp.trait({y: 3, z: 4});
camp.mixin(A, [T1, T2]);
`)
	require.NoError(t, res.Err)
	require.Equal(t, []string{UnresolvedMethod.Key}, res.Keys())
	assert.Equal(t, "The function y defined in T2 conflict with the function of T1.",
		res.Context.Diagnostics.Diagnostics()[0].Message)
	assert.Equal(t, models.CompositionConflict, pass.State("A"))

	out := res.Compact()
	assert.Contains(t, out, "A.prototype.x = T1.x; A.prototype.z = T2.z;")
	assert.NotContains(t, out, "A.prototype.y")
}

func TestConflictsAcrossMixinCalls(t *testing.T) {
	res, _ := compile(t, `
var T1 = camp.trait({y: 1});
var T2 = camp.trait({y: 2});
camp.mixin(A, [T1]);
camp.mixin(A, [T2]);
`)
	assert.Equal(t, []string{UnresolvedMethod.Key}, res.Keys())
	assert.NotContains(t, res.Compact(), "A.prototype.y")
}

func TestRequirements(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		keys  []string
		state models.CompositionState
	}{
		{
			name: "unimplemented",
			src: `
var T = camp.trait({f: camp.trait.require});
camp.mixin(A, [T]);`,
			keys:  []string{RequiredPropertyNotImplemented.Key},
			state: models.CompositionUnsatisfied,
		},
		{
			name: "implemented by another trait",
			src: `
var T = camp.trait({f: camp.trait.require});
var T2 = camp.trait({f: function() {}});
camp.mixin(A, [T, T2]);`,
			state: models.CompositionComposed,
		},
		{
			name: "implemented by the class",
			src: `
/** @constructor */
function A() {}
A.prototype.f = function() {};
var T = camp.trait({f: camp.trait.require});
camp.mixin(A, [T]);`,
			state: models.CompositionComposed,
		},
		{
			name: "implemented by a base class",
			src: `
/** @constructor */
function Base() {}
Base.prototype.f = function() {};
/**
 * @constructor
 * @extends {Base}
 */
function A() {}
var T = camp.trait({f: camp.trait.require});
camp.mixin(A, [T]);`,
			state: models.CompositionComposed,
		},
		{
			name: "implemented by a trait of a base class",
			src: `
/** @constructor */
function Base() {}
/** @constructor */
function A() {}
goog.inherits(A, Base);
var T = camp.trait({f: camp.trait.require});
var Impl = camp.trait({f: 1});
camp.mixin(A, [T]);
camp.mixin(Base, [Impl]);`,
			state: models.CompositionComposed,
		},
		{
			name: "implemented by an override",
			src: `
var T = camp.trait({f: camp.trait.require});
camp.mixin(A, [T], {f: function() {}});`,
			state: models.CompositionComposed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, pass := compile(t, tt.src)
			require.NoError(t, res.Err)
			if tt.keys == nil {
				assert.Empty(t, res.Keys())
			} else {
				assert.Equal(t, tt.keys, res.Keys())
			}
			assert.Equal(t, tt.state, pass.State("A"))
		})
	}
}

func TestUnimplementedMessage(t *testing.T) {
	res, _ := compile(t, `
var Base = camp.trait({f: camp.trait.require});
var Derived = camp.trait([Base], {});
camp.mixin(A, [Derived]);
`)
	require.Equal(t, []string{RequiredPropertyNotImplemented.Key}, res.Keys())
	assert.Equal(t, "The property f required by Derived (first defined in Base) is not implemented.",
		res.Context.Diagnostics.Diagnostics()[0].Message)
}

func TestTraitRequirementsPropagate(t *testing.T) {
	res, _ := compile(t, `
var Base = camp.trait({
  hello: function() { return 1; },
  name: camp.trait.require
});
var Derived = camp.trait([Base], {name: 'd'});
camp.mixin(A, [Derived]);
`)
	require.NoError(t, res.Err)
	assert.Empty(t, res.Keys())

	out := res.Compact()
	assert.Contains(t, out, "var Base = { hello: function() { return 1; }, name: camp.trait.require };")
	assert.Contains(t, out, "var Derived = {name: 'd', hello: Base.hello};")
	assert.Contains(t, out, "A.prototype.name = Derived.name; A.prototype.hello = Base.hello;")
}

func TestDiamondRequirements(t *testing.T) {
	res, _ := compile(t, `
var Q = camp.trait({x: function() { return this; }});
var R1 = camp.trait([Q]);
var R2 = camp.trait([Q], {});
camp.mixin(A, [R1, R2]);
`)
	require.NoError(t, res.Err)
	assert.Empty(t, res.Keys())

	out := res.Compact()
	assert.Contains(t, out, "var R1 = {x: Q.x};")
	assert.Contains(t, out, "var R2 = {x: Q.x};")
	assert.Equal(t, 1, strings.Count(out, "A.prototype.x = Q.JSComp$$A$$x;"))
}

func TestPropagatedConflict(t *testing.T) {
	res, _ := compile(t, `
var R1 = camp.trait({x: 1});
var R2 = camp.trait({x: 2});
var T = camp.trait([R1, R2], {});
`)
	assert.Equal(t, []string{UnresolvedMethod.Key}, res.Keys())
	assert.Contains(t, res.Compact(), "var T = {x: R1.x};")
}

func TestCircularReferences(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"trait requires itself", "var T = camp.trait([T], {a: 1});", []string{CircularReference.Key}},
		{"traits require each other", "var T1 = camp.trait([T2], {});\nvar T2 = camp.trait([T1], {});",
			[]string{CircularReference.Key, CircularReference.Key}},
		{"class mixes itself", "camp.mixin(A, [A]);", []string{CircularReference.Key}},
		{"trait mixes a trait requiring it", "var T1 = camp.trait({});\nvar T2 = camp.trait([T1], {});\ncamp.mixin(T1, [T2]);",
			[]string{CircularReference.Key}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _ := compile(t, tt.src)
			assert.Equal(t, tt.want, res.Keys())
			assert.NotContains(t, res.Compact(), ".prototype.")
		})
	}
}

func TestOverrides(t *testing.T) {
	res, _ := compile(t, `
var T = camp.trait({
  a: function() { return 1; },
  b: 2,
  'my-key': 3
});
camp.mixin(A, [T], {
  /** @return {number} */
  a: function() { return 3; }
});
`)
	require.NoError(t, res.Err)
	assert.Empty(t, res.Keys())

	out := res.Compact()
	assert.Contains(t, out, "A.prototype.b = T.b; "+
		"A.prototype['my-key'] = T['my-key']; "+
		"/** @return {number} */ A.prototype.a = function() { return 3; };")
	assert.NotContains(t, out, "T.a;")
}

func TestTraitNames(t *testing.T) {
	res, _ := compile(t, `
app.traits = {
  T: camp.trait({x: 1})
};
app.more.U = camp.trait();
camp.mixin(A, [app.traits.T, app.more.U]);
`)
	require.NoError(t, res.Err)
	assert.Empty(t, res.Keys())

	out := res.Compact()
	assert.Contains(t, out, "app.traits = {T: {x: 1}};")
	assert.Contains(t, out, "app.more.U = {};")
	assert.Contains(t, out, "A.prototype.x = app.traits.T.x;")
}

func TestGlobalScope(t *testing.T) {
	res, _ := compile(t, `
function setup() {
  camp.mixin(A, [T]);
  var X = camp.trait({});
}
`)
	assert.Equal(t, []string{MustBeCalledInGlobalScope.Key, MustBeCalledInGlobalScope.Key}, res.Keys())
	out := res.Compact()
	assert.Contains(t, out, "camp.mixin(A, [T]);")
	assert.Contains(t, out, "var X = camp.trait({});")
}

func TestCollectionDiagnostics(t *testing.T) {
	const prelude = "/** @constructor */\nfunction A() {}\nvar T = camp.trait({a: 1});\n"
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"mixin without arguments", "camp.mixin();", MixinFirstArgumentInvalid.Key},
		{"mixin of a string", "camp.mixin('A', [T]);", MixinFirstArgumentInvalid.Key},
		{"mixin without traits", "camp.mixin(A);", MixinSecondArgumentInvalid.Key},
		{"mixin traits not an array", "camp.mixin(A, T);", MixinSecondArgumentInvalid.Key},
		{"mixin trait not a name", "camp.mixin(A, ['T']);", MixinSecondArgumentInvalid.Key},
		{"mixin overrides not an object", "camp.mixin(A, [T], 1);", MixinThirdArgumentInvalid.Key},
		{"mixin of a missing trait", "camp.mixin(A, [Missing]);", RequiredTraitNotExists.Key},
		{"trait body literal", "var U = camp.trait(1);", TraitBodyInvalid.Key},
		{"trait body after requirements", "var U = camp.trait([T], 1);", TraitBodyInvalid.Key},
		{"trait requirement string", "var U = camp.trait(['T'], {});", TraitRequiresInvalid.Key},
		{"trait requires a missing trait", "var U = camp.trait([Missing], {});", RequiredTraitNotExists.Key},
		{"require outside a trait", "var x = camp.trait.require;", RequireNotAllowedHere.Key},
		{"require nested in a member", "var U = camp.trait({a: {b: camp.trait.require}});", RequireNotAllowedHere.Key},
		{"require as an override", "camp.mixin(A, [T], {a: camp.trait.require});", RequireNotAllowedHere.Key},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _ := compile(t, prelude+tt.src)
			assert.Equal(t, []string{tt.want}, res.Keys())
		})
	}
}

func TestSpecializedName(t *testing.T) {
	assert.Equal(t, "JSComp$$app$ui$Button$$render", SpecializedName("app.ui.Button", "render"))
	assert.Equal(t, "JSComp$$A$$f", SpecializedName("A", "f"))
}
