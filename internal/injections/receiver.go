package injections

import (
	"regexp"
	"strings"

	"github.com/toyz/camp/internal/jsast"
)

type useKind int

const (
	useCall   useKind = iota // receiver.method(...)
	useAccess                // receiver.method without a call
	useEntity                // receiver itself as a value
	useRaw                   // mentioned in code kept as source text
)

// rawNoise matches the comments and quoted strings of raw source text.
var rawNoise = regexp.MustCompile(`'(?:[^'\\\n]|\\.)*'|"(?:[^"\\\n]|\\.)*"|//[^\n]*|/\*[\s\S]*?\*/`)

// use is one reference to a compiler-inlined receiver parameter such as the
// binder, the injector or the method invocation
type use struct {
	kind   useKind
	method string
	node   *jsast.Node // the call for useCall, otherwise the reference
}

// receiver describes a parameter that only exists at compile time
type receiver struct {
	param    string
	typeName string
	methods  []string
}

func (r receiver) known(method string) bool {
	for _, m := range r.methods {
		if m == method {
			return true
		}
	}
	return false
}

// uses lists the references to r.param inside fn in source order. Nested
// functions redeclaring the parameter are skipped.
func (r receiver) uses(fn *jsast.Node) []use {
	var found []use
	jsast.Inspect(fn.FunctionBody(), func(n *jsast.Node) bool {
		if n.IsFunction() {
			for _, p := range n.ParamNames() {
				if p == r.param {
					return false
				}
			}
			return true
		}
		if n.Kind == jsast.Raw {
			if r.mentionedIn(n.Str) {
				found = append(found, use{kind: useRaw, node: n})
			}
			return true
		}
		if !n.IsName() || n.Str != r.param {
			return true
		}
		parent := n.Parent()
		switch {
		case parent.Kind == jsast.ParamList || parent.IsFunction():
		case parent.IsGetProp() && parent.GetPropOwner() == n:
			if call := parent.Parent(); call != nil && call.IsCall() && call.Callee() == parent {
				found = append(found, use{kind: useCall, method: parent.Str, node: call})
			} else {
				found = append(found, use{kind: useAccess, method: parent.Str, node: parent})
			}
		default:
			found = append(found, use{kind: useEntity, node: n})
		}
		return true
	})
	return found
}

// mentionedIn reports whether raw source text refers to the parameter
// outside of comments and string literals
func (r receiver) mentionedIn(text string) bool {
	if !strings.Contains(text, r.param) {
		return false
	}
	ref := regexp.MustCompile(`(?:^|[^\w$.])` + regexp.QuoteMeta(r.param) + `(?:$|[^\w$])`)
	return ref.MatchString(rawNoise.ReplaceAllString(text, " "))
}

// calls returns the known method calls on the receiver and reports every
// other use through report
func (r receiver) calls(fn *jsast.Node, report reportFunc) []use {
	var calls []use
	for _, u := range r.uses(fn) {
		switch u.kind {
		case useCall:
			if r.known(u.method) {
				calls = append(calls, u)
				continue
			}
			report(u.node, HasNoSuchMethod, r.typeName, u.method, strings.Join(r.methods, ", "))
		case useAccess:
			if r.known(u.method) {
				report(u.node, AccessedToVirtualMethods, r.typeName)
				continue
			}
			report(u.node, HasNoSuchMethod, r.typeName, u.method, strings.Join(r.methods, ", "))
		case useEntity, useRaw:
			report(u.node, InvalidAccessToEntity, r.typeName)
		}
	}
	return calls
}
