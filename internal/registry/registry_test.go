package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/models"
)

func ctor(params ...string) *jsast.Node {
	return jsast.NewFunction("", params, nil)
}

func TestLookupsReportAbsence(t *testing.T) {
	r := New()

	_, ok := r.Class("a.B")
	assert.False(t, ok)
	_, ok = r.Prototype("a.B", "m")
	assert.False(t, ok)
	_, ok = r.Trait("a.T")
	assert.False(t, ok)
	_, ok = r.Module("a.M")
	assert.False(t, ok)
	assert.Empty(t, r.Types("a.B"))
	assert.Empty(t, r.Ancestors("a.B"))
}

func TestLastWriteWins(t *testing.T) {
	r := New()
	first := models.NewClassInfo("a.B", ctor("x"))
	second := models.NewClassInfo("a.B", ctor("y"))
	r.AddClass(first)
	r.AddClass(models.NewClassInfo("a.C", ctor()))
	r.AddClass(second)

	got, ok := r.Class("a.B")
	require.True(t, ok)
	assert.Same(t, second, got)

	classes := r.Classes()
	require.Len(t, classes, 2)
	assert.Equal(t, "a.B", classes[0].Name, "position of the first registration is kept")
}

func TestTypesAccumulate(t *testing.T) {
	r := New()
	r.AddType(models.NewTypeInfo("a.B", ctor(), nil))
	r.AddType(models.NewAliasTypeInfo("a.B", "a.C", nil))
	assert.Len(t, r.Types("a.B"), 2)
}

func TestAncestorsStopOnCycles(t *testing.T) {
	r := New()
	r.SetBaseType("a.C", "a.B")
	r.SetBaseType("a.B", "a.A")
	r.SetBaseType("a.A", "a.C")

	assert.Equal(t, []string{"a.B", "a.A"}, r.Ancestors("a.C"))
}

func TestMergeKeepsShardOrder(t *testing.T) {
	first := New()
	first.AddClass(models.NewClassInfo("a.One", ctor()))
	first.AddMixin(models.NewMixinInfo("a.One", nil, nil, nil, nil))

	second := New()
	second.AddClass(models.NewClassInfo("a.Two", ctor()))
	second.AddPrototype(models.NewPrototypeInfo("a.One", "run", ctor()))
	second.AddMixin(models.NewMixinInfo("a.Two", nil, nil, nil, nil))
	second.AddType(models.NewTypeInfo("a.Two", ctor(), nil))

	merged := New()
	merged.Merge(first)
	merged.Merge(second)

	classes := merged.Classes()
	require.Len(t, classes, 2)
	assert.Equal(t, "a.One", classes[0].Name)
	assert.Equal(t, "a.Two", classes[1].Name)
	require.Len(t, merged.Mixins(), 2)
	assert.Equal(t, "a.Two", merged.Mixins()[1].Target)
	assert.Len(t, merged.Types("a.Two"), 1)
	assert.Equal(t, []string{"run"}, merged.Members("a.One"))
}

func TestIntegrateAttachesAcrossFiles(t *testing.T) {
	r := New()
	base := models.NewClassInfo("a.Base", ctor())
	derived := models.NewClassInfo("a.Derived", ctor())
	r.AddClass(base)
	r.AddClass(derived)
	r.AddPrototype(models.NewPrototypeInfo("a.Base", "run", ctor("x")))
	r.AddPrototype(models.NewPrototypeInfo("a.Base", "stop", ctor()))
	r.AddPrototype(models.NewPrototypeInfo("a.Derived", "stop", ctor("force")))
	r.AddPrototype(models.NewPrototypeInfo("a.Unknown", "noop", ctor()))
	r.SetBaseType("a.Derived", "a.Base")
	singleton := jsast.NewExprResult(jsast.NewCall(jsast.NewQualifiedName("goog.addSingletonGetter"), jsast.NewQualifiedName("a.Base")))
	r.AddSingletonCall("a.Base", singleton)

	r.Integrate()

	assert.Same(t, singleton, base.SingletonCall)
	assert.Equal(t, "a.Base", derived.BaseType)

	run, ok := derived.Prototype("run")
	require.True(t, ok)
	assert.True(t, run.Inherited)
	assert.Equal(t, "a.Derived", run.ClassName)
	assert.Equal(t, []string{"x"}, run.ParamNames)

	stop, ok := derived.Prototype("stop")
	require.True(t, ok)
	assert.False(t, stop.Inherited, "own declaration is not replaced")
	assert.Equal(t, []string{"force"}, stop.ParamNames)

	baseRun, _ := base.Prototype("run")
	assert.NotSame(t, baseRun, run)
}
