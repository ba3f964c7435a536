// Package matcher decides which classes and methods an interceptor selects.
package matcher

import (
	"regexp"
	"strings"

	"github.com/toyz/camp/internal/models"
	"github.com/toyz/camp/internal/utils"
)

// Matcher evaluates interceptor matchers. LIKE patterns are compiled once
// per Matcher, so one Matcher is meant to live for one compilation run.
type Matcher struct {
	patterns *utils.Cache[string, *regexp.Regexp]
}

// New creates a Matcher with an empty pattern cache.
func New() *Matcher {
	return &Matcher{patterns: utils.NewCache[string, *regexp.Regexp]()}
}

// Matches reports whether interceptor applies to methodName of className.
// ancestors is the superclass chain of className, nearest first.
func (m *Matcher) Matches(interceptor *models.InterceptorInfo, className string, ancestors []string, methodName string) bool {
	return MatchesClass(interceptor, className, ancestors) && m.MatchesMethod(interceptor, methodName)
}

// MatchesClass evaluates the class matcher alone.
//
// SUBCLASS_OF selects strict subclasses: the matcher class itself is not
// selected, only classes with the matcher somewhere in their ancestors.
func MatchesClass(interceptor *models.InterceptorInfo, className string, ancestors []string) bool {
	switch interceptor.ClassMatchKind {
	case models.ClassMatchInNamespace:
		return Namespace(className) == interceptor.ClassMatcher
	case models.ClassMatchSubNamespace:
		return strings.HasPrefix(className, interceptor.ClassMatcher)
	case models.ClassMatchSubclassOf:
		for _, ancestor := range ancestors {
			if ancestor == interceptor.ClassMatcher {
				return true
			}
		}
		return false
	case models.ClassMatchInstanceOf:
		return className == interceptor.ClassMatcher
	default:
		return true
	}
}

// MatchesMethod evaluates the method matcher alone. A LIKE pattern must
// match the whole method name; '*' matches any run of characters.
func (m *Matcher) MatchesMethod(interceptor *models.InterceptorInfo, methodName string) bool {
	if interceptor.MethodMatchKind != models.MethodMatchLike {
		return true
	}
	re, _ := m.patterns.GetOrCompute(interceptor.MethodMatcher, func() (*regexp.Regexp, error) {
		return compileLike(interceptor.MethodMatcher), nil
	})
	return re.MatchString(methodName)
}

// Namespace returns the part of a qualified name before its last dot, or the
// whole name when it has none.
func Namespace(className string) string {
	if i := strings.LastIndex(className, "."); i > -1 {
		return className[:i]
	}
	return className
}

func compileLike(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}
