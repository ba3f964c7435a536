package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/camp/internal/models"
)

func TestMatchesClass(t *testing.T) {
	tests := []struct {
		name      string
		kind      models.ClassMatchKind
		matcher   string
		className string
		ancestors []string
		want      bool
	}{
		{"namespace exact", models.ClassMatchInNamespace, "app.service", "app.service.Store", nil, true},
		{"namespace excludes children", models.ClassMatchInNamespace, "app", "app.service.Store", nil, false},
		{"namespace of unqualified name", models.ClassMatchInNamespace, "Store", "Store", nil, true},
		{"sub namespace prefix", models.ClassMatchSubNamespace, "app", "app.service.Store", nil, true},
		{"sub namespace miss", models.ClassMatchSubNamespace, "lib", "app.service.Store", nil, false},
		{"subclass direct", models.ClassMatchSubclassOf, "app.Base", "app.Store", []string{"app.Base"}, true},
		{"subclass transitive", models.ClassMatchSubclassOf, "app.Root", "app.Store", []string{"app.Base", "app.Root"}, true},
		{"subclass excludes itself", models.ClassMatchSubclassOf, "app.Store", "app.Store", nil, false},
		{"instance exact", models.ClassMatchInstanceOf, "app.Store", "app.Store", nil, true},
		{"instance excludes subclass", models.ClassMatchInstanceOf, "app.Base", "app.Store", []string{"app.Base"}, false},
		{"any", models.ClassMatchAny, "", "whatever.Thing", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := &models.InterceptorInfo{ClassMatchKind: tt.kind, ClassMatcher: tt.matcher}
			assert.Equal(t, tt.want, MatchesClass(i, tt.className, tt.ancestors))
		})
	}
}

func TestMatchesMethod(t *testing.T) {
	tests := []struct {
		pattern string
		method  string
		want    bool
	}{
		{"get*", "getName", true},
		{"get*", "get", true},
		{"get*", "forget", false},
		{"*Name", "getName", true},
		{"save", "save", true},
		{"save", "saveAll", false},
		{"a.b*", "axb", false},
		{"a.b*", "a.bc", true},
		{"*", "anything", true},
	}

	m := New()
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.method, func(t *testing.T) {
			i := &models.InterceptorInfo{MethodMatchKind: models.MethodMatchLike, MethodMatcher: tt.pattern}
			assert.Equal(t, tt.want, m.MatchesMethod(i, tt.method))
		})
	}

	anyMethod := &models.InterceptorInfo{MethodMatchKind: models.MethodMatchAny}
	assert.True(t, m.MatchesMethod(anyMethod, "whatever"))
}

func TestMatcherCachesPatternsPerInstance(t *testing.T) {
	i := &models.InterceptorInfo{MethodMatchKind: models.MethodMatchLike, MethodMatcher: "get*"}

	first := New()
	assert.True(t, first.MatchesMethod(i, "getName"))
	assert.True(t, first.MatchesMethod(i, "getAge"))
	assert.Equal(t, 1, first.patterns.Size())

	second := New()
	assert.Equal(t, 0, second.patterns.Size())
}

func TestMatchesRequiresBoth(t *testing.T) {
	i := &models.InterceptorInfo{
		ClassMatchKind:  models.ClassMatchInstanceOf,
		ClassMatcher:    "app.Store",
		MethodMatchKind: models.MethodMatchLike,
		MethodMatcher:   "save*",
	}

	m := New()
	assert.True(t, m.Matches(i, "app.Store", nil, "saveItem"))
	assert.False(t, m.Matches(i, "app.Store", nil, "load"))
	assert.False(t, m.Matches(i, "app.Other", nil, "saveItem"))
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, "a.b", Namespace("a.b.C"))
	assert.Equal(t, "C", Namespace("C"))
}
