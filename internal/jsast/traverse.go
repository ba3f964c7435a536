package jsast

import "regexp"

// Scope describes where a visited node sits.
type Scope struct {
	// Depth is the number of functions enclosing the node; 0 is top level.
	// A Function node reports the depth it is declared at.
	Depth int
}

// IsGlobal reports whether the node is outside every function.
func (s Scope) IsGlobal() bool {
	return s.Depth == 0
}

// Walk visits the subtree rooted at root in post-order. Children are
// snapshotted before they are visited, so the callback may detach or replace
// the node it is given without disturbing the walk.
func Walk(root *Node, visit func(n *Node, scope Scope)) {
	walk(root, 0, visit)
}

func walk(n *Node, depth int, visit func(n *Node, scope Scope)) {
	childDepth := depth
	if n.Kind == Function {
		childDepth++
	}
	for _, c := range n.Children() {
		walk(c, childDepth, visit)
	}
	visit(n, Scope{Depth: depth})
}

// Inspect visits the subtree in pre-order; returning false skips the
// children of the current node.
func Inspect(root *Node, fn func(n *Node) bool) {
	if !fn(root) {
		return
	}
	for _, c := range root.Children() {
		Inspect(c, fn)
	}
}

// DepthOf returns the number of functions enclosing n.
func DepthOf(n *Node) int {
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		if p.Kind == Function {
			depth++
		}
	}
	return depth
}

var thisPattern = regexp.MustCompile(`\bthis\b`)

// ReferencesThis reports whether fn refers to its own receiver. Nested
// function expressions rebind this and are skipped; arrow functions are kept
// as raw source and inherit it, so raw text is searched.
func ReferencesThis(fn *Node) bool {
	if fn.Kind != Function {
		return false
	}
	found := false
	Inspect(fn.FunctionBody(), func(n *Node) bool {
		if found {
			return false
		}
		switch n.Kind {
		case Function:
			return false
		case This:
			found = true
		case Raw:
			found = thisPattern.MatchString(n.Str)
		}
		return !found
	})
	return found
}

// EnclosingFunction returns the nearest Function ancestor of n.
func EnclosingFunction(n *Node) *Node {
	for p := n.parent; p != nil; p = p.parent {
		if p.Kind == Function {
			return p
		}
	}
	return nil
}

// StatementOf returns the statement that contains n, that is the ancestor
// (or n itself) whose parent is a Script or Block.
func StatementOf(n *Node) *Node {
	for c := n; c != nil; c = c.parent {
		if c.IsStatement() {
			return c
		}
	}
	return nil
}

// ScriptOf returns the root Script of n.
func ScriptOf(n *Node) *Node {
	c := n
	for c.parent != nil {
		c = c.parent
	}
	if c.Kind != Script {
		return nil
	}
	return c
}
