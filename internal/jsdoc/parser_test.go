package jsdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		validate func(t *testing.T, info *Info)
	}{
		{
			name:  "single line constructor",
			input: "/** @constructor */",
			validate: func(t *testing.T, info *Info) {
				assert.True(t, info.Constructor)
				assert.Empty(t, info.Params)
			},
		},
		{
			name: "module declaration",
			input: `/**
 * @constructor
 * @implements {camp.injections.Module}
 */`,
			validate: func(t *testing.T, info *Info) {
				assert.True(t, info.Constructor)
				assert.True(t, info.ImplementsInterface("camp.injections.Module"))
			},
		},
		{
			name: "params and return",
			input: `/**
 * Builds a thing.
 * @param {!foo.Bar} bar the bar
 * @param {string=} opt_name
 * @return {foo.Baz}
 */`,
			validate: func(t *testing.T, info *Info) {
				assert.Equal(t, "Builds a thing.", info.Description)
				assert.Equal(t, []string{"bar", "opt_name"}, info.ParameterNames())
				typ, ok := info.ParameterType("bar")
				require.True(t, ok)
				assert.Equal(t, "!foo.Bar", typ)
				assert.Equal(t, "foo.Baz", info.Return)
			},
		},
		{
			name:  "extends without braces",
			input: "/** @extends foo.Base */",
			validate: func(t *testing.T, info *Info) {
				assert.Equal(t, "foo.Base", info.BaseType)
			},
		},
		{
			name:  "record type",
			input: "/** @type {{a: number}} */",
			validate: func(t *testing.T, info *Info) {
				assert.Equal(t, "{a: number}", info.Type)
			},
		},
		{
			name:  "unknown tags are kept",
			input: "/** @private @const {number} */",
			validate: func(t *testing.T, info *Info) {
				assert.Equal(t, []string{"@private", "@const {number}"}, info.Extra)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Parse(tt.input)
			require.NoError(t, err)
			tt.validate(t, info)
		})
	}
}

func TestParseRejectsPlainComments(t *testing.T) {
	_, err := Parse("/* @constructor */")
	assert.Error(t, err)

	_, err = Parse("// @constructor")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	info := New()
	info.RecordOverride()
	assert.Equal(t, "/** @override */", info.Render(""))

	info = New()
	info.RecordConstructor()
	info.RecordBaseType("!foo.Bar")
	info.RecordParameter("a", "string")
	info.RecordParameter("b", "")
	expected := "/**\n" +
		"   * @constructor\n" +
		"   * @extends {!foo.Bar}\n" +
		"   * @param {string} a\n" +
		"   * @param b\n" +
		"   */"
	assert.Equal(t, expected, info.Render("  "))
}

func TestRenderRoundTrip(t *testing.T) {
	info := New()
	info.RecordConstructor()
	info.RecordThisType("foo.Bar")
	info.RecordReturnType("number")

	parsed, err := Parse(info.Render(""))
	require.NoError(t, err)
	assert.Equal(t, info.Lines(), parsed.Lines())
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "foo.Bar", TypeName("!foo.Bar"))
	assert.Equal(t, "foo.Bar", TypeName("?foo.Bar"))
	assert.Equal(t, "foo.Bar", TypeName("{foo.Bar=}"))
	assert.Equal(t, "Bar", TypeName(" Bar "))
}

func TestCloneIsDeep(t *testing.T) {
	info := New()
	info.RecordParameter("a", "number")
	clone := info.Clone()
	clone.RecordParameter("a", "string")
	clone.RecordParameter("b", "string")

	typ, _ := info.ParameterType("a")
	assert.Equal(t, "number", typ)
	assert.Len(t, info.Params, 1)
	assert.Nil(t, (*Info)(nil).Clone())
}
