// Package jsast is the syntax tree the rewriting passes operate on. Nodes form
// a doubly linked child list with parent pointers, so passes can detach,
// replace and insert statements without re-slicing their parents.
package jsast

import (
	"fmt"
	"strings"

	"github.com/toyz/camp/internal/jsdoc"
)

// Kind identifies the syntactic category of a node.
type Kind int

const (
	Script Kind = iota
	Block
	ExprResult
	Var
	Return
	If
	Function
	ParamList
	Name
	This
	GetProp
	GetElem
	Call
	New
	Assign
	Binary
	Unary
	Hook
	StringLit
	Literal
	ArrayLit
	ObjectLit
	StringKey
	// Raw is source text the passes never look into. It is printed verbatim.
	Raw

	// Statements around nested blocks. Their bodies are always Blocks.
	Throw
	Try
	Catch
	While
	DoWhile
	For
	ForIn
	Switch
	Case
	DefaultCase
	Labeled
	// Empty is an omitted for clause or an array hole.
	Empty
)

var kindNames = [...]string{
	Script:     "Script",
	Block:      "Block",
	ExprResult: "ExprResult",
	Var:        "Var",
	Return:     "Return",
	If:         "If",
	Function:   "Function",
	ParamList:  "ParamList",
	Name:       "Name",
	This:       "This",
	GetProp:    "GetProp",
	GetElem:    "GetElem",
	Call:       "Call",
	New:        "New",
	Assign:     "Assign",
	Binary:     "Binary",
	Unary:      "Unary",
	Hook:       "Hook",
	StringLit:  "StringLit",
	Literal:    "Literal",
	ArrayLit:   "ArrayLit",
	ObjectLit:  "ObjectLit",
	StringKey:  "StringKey",
	Raw:        "Raw",

	Throw:       "Throw",
	Try:         "Try",
	Catch:       "Catch",
	While:       "While",
	DoWhile:     "DoWhile",
	For:         "For",
	ForIn:       "ForIn",
	Switch:      "Switch",
	Case:        "Case",
	DefaultCase: "DefaultCase",
	Labeled:     "Labeled",
	Empty:       "Empty",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Pos is a 1-based source position.
type Pos struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether p was set from source.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is a syntax tree node. The meaning of Str depends on Kind: identifier
// text for Name, property name for GetProp, operator for Assign, Binary and
// Unary, decoded value for StringLit, key for StringKey, declaration keyword
// for Var, source text for Literal and Raw, the binding of a Catch, "in" or
// "of" for ForIn and the label of Labeled.
//
// Child layout of the block statements:
//
//	Try          Block [Catch] [Block]   the last Block is the finally clause
//	Catch        Block
//	While        cond Block
//	DoWhile      Block cond
//	For          init cond update Block  missing clauses are Empty
//	ForIn        left object Block       left is an expression or a Var
//	Switch       discriminant (Case | DefaultCase)...
//	Case         test Block
//	DefaultCase  Block
type Node struct {
	Kind  Kind
	Str   string
	JSDoc *jsdoc.Info
	Pos   Pos

	parent *Node
	first  *Node
	last   *Node
	next   *Node
	prev   *Node
}

// NewNode creates a detached node with the given children.
func NewNode(kind Kind, str string, children ...*Node) *Node {
	n := &Node{Kind: kind, Str: str}
	for _, c := range children {
		n.AddChildToBack(c)
	}
	return n
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) FirstChild() *Node { return n.first }
func (n *Node) LastChild() *Node  { return n.last }
func (n *Node) Next() *Node       { return n.next }

// Children returns a snapshot of the direct children.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.first; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.first; c != nil; c = c.next {
		count++
	}
	return count
}

// ChildAt returns the i-th child or nil.
func (n *Node) ChildAt(i int) *Node {
	c := n.first
	for ; c != nil && i > 0; i-- {
		c = c.next
	}
	return c
}

func (n *Node) HasChildren() bool { return n.first != nil }

func (n *Node) mustBeDetached(child *Node) {
	if child.parent != nil {
		panic(fmt.Sprintf("jsast: %s node already has a parent", child.Kind))
	}
}

// AddChildToBack appends child.
func (n *Node) AddChildToBack(child *Node) {
	n.mustBeDetached(child)
	child.parent = n
	child.prev = n.last
	if n.last != nil {
		n.last.next = child
	} else {
		n.first = child
	}
	n.last = child
}

// AddChildToFront prepends child.
func (n *Node) AddChildToFront(child *Node) {
	n.mustBeDetached(child)
	child.parent = n
	child.next = n.first
	if n.first != nil {
		n.first.prev = child
	} else {
		n.last = child
	}
	n.first = child
}

// AddChildAfter inserts child right after ref, which must be a child of n.
func (n *Node) AddChildAfter(child, ref *Node) {
	n.mustBeDetached(child)
	if ref.parent != n {
		panic("jsast: reference node is not a child")
	}
	child.parent = n
	child.prev = ref
	child.next = ref.next
	if ref.next != nil {
		ref.next.prev = child
	} else {
		n.last = child
	}
	ref.next = child
}

// AddChildBefore inserts child right before ref, which must be a child of n.
func (n *Node) AddChildBefore(child, ref *Node) {
	if ref.prev == nil {
		if ref.parent != n {
			panic("jsast: reference node is not a child")
		}
		n.AddChildToFront(child)
		return
	}
	n.AddChildAfter(child, ref.prev)
}

// AddChildrenAfter inserts children in order after ref.
func (n *Node) AddChildrenAfter(children []*Node, ref *Node) {
	for _, c := range children {
		n.AddChildAfter(c, ref)
		ref = c
	}
}

// RemoveChild unlinks child from n.
func (n *Node) RemoveChild(child *Node) {
	if child.parent != n {
		panic("jsast: node is not a child")
	}
	if child.prev != nil {
		child.prev.next = child.next
	} else {
		n.first = child.next
	}
	if child.next != nil {
		child.next.prev = child.prev
	} else {
		n.last = child.prev
	}
	child.parent, child.prev, child.next = nil, nil, nil
}

// ReplaceChild puts replacement in old's place and detaches old.
func (n *Node) ReplaceChild(old, replacement *Node) {
	n.mustBeDetached(replacement)
	if old.parent != n {
		panic("jsast: node is not a child")
	}
	replacement.parent = n
	replacement.prev = old.prev
	replacement.next = old.next
	if old.prev != nil {
		old.prev.next = replacement
	} else {
		n.first = replacement
	}
	if old.next != nil {
		old.next.prev = replacement
	} else {
		n.last = replacement
	}
	old.parent, old.prev, old.next = nil, nil, nil
}

// ReplaceWith replaces n in its parent.
func (n *Node) ReplaceWith(replacement *Node) {
	if n.parent == nil {
		panic("jsast: cannot replace a detached node")
	}
	n.parent.ReplaceChild(n, replacement)
}

// Detach removes n from its parent, if any, and returns it.
func (n *Node) Detach() *Node {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
	return n
}

// IsAttached reports whether n still hangs off a Script root.
func (n *Node) IsAttached() bool {
	for p := n; p != nil; p = p.parent {
		if p.Kind == Script {
			return true
		}
	}
	return false
}

// DetachChildren removes and returns all children.
func (n *Node) DetachChildren() []*Node {
	children := n.Children()
	for _, c := range children {
		n.RemoveChild(c)
	}
	return children
}

// Clone returns a deep copy of the subtree rooted at n, detached.
func (n *Node) Clone() *Node {
	c := &Node{Kind: n.Kind, Str: n.Str, JSDoc: n.JSDoc.Clone(), Pos: n.Pos}
	for child := n.first; child != nil; child = child.next {
		c.AddChildToBack(child.Clone())
	}
	return c
}

// CopyPositionFrom sets the position of n from src if n has none.
func (n *Node) CopyPositionFrom(src *Node) *Node {
	if !n.Pos.IsValid() {
		n.Pos = src.Pos
	}
	return n
}

// CopyPositionFromTree applies CopyPositionFrom to the whole subtree.
func (n *Node) CopyPositionFromTree(src *Node) *Node {
	n.CopyPositionFrom(src)
	for c := n.first; c != nil; c = c.next {
		c.CopyPositionFromTree(src)
	}
	return n
}

// QualifiedName returns the dotted name of a Name/This/GetProp chain.
func (n *Node) QualifiedName() (string, bool) {
	switch n.Kind {
	case Name:
		return n.Str, n.Str != ""
	case This:
		return "this", true
	case GetProp:
		owner, ok := n.first.QualifiedName()
		if !ok {
			return "", false
		}
		return owner + "." + n.Str, true
	}
	return "", false
}

// MatchesQualifiedName reports whether n is a reference to name.
func (n *Node) MatchesQualifiedName(name string) bool {
	q, ok := n.QualifiedName()
	return ok && q == name
}

// IsQualifiedName reports whether n is a Name/This/GetProp chain.
func (n *Node) IsQualifiedName() bool {
	_, ok := n.QualifiedName()
	return ok
}

func (n *Node) IsName() bool       { return n.Kind == Name }
func (n *Node) IsString() bool     { return n.Kind == StringLit }
func (n *Node) IsFunction() bool   { return n.Kind == Function }
func (n *Node) IsCall() bool       { return n.Kind == Call }
func (n *Node) IsGetProp() bool    { return n.Kind == GetProp }
func (n *Node) IsAssign() bool     { return n.Kind == Assign && n.Str == "=" }
func (n *Node) IsObjectLit() bool  { return n.Kind == ObjectLit }
func (n *Node) IsArrayLit() bool   { return n.Kind == ArrayLit }
func (n *Node) IsExprResult() bool { return n.Kind == ExprResult }
func (n *Node) IsVar() bool        { return n.Kind == Var }
func (n *Node) IsStringKey() bool  { return n.Kind == StringKey }

// IsStatement reports whether n sits directly in a statement list.
func (n *Node) IsStatement() bool {
	return n.parent != nil && (n.parent.Kind == Script || n.parent.Kind == Block)
}

// IsFunctionDeclaration reports whether n is a named function statement.
func (n *Node) IsFunctionDeclaration() bool {
	return n.Kind == Function && n.IsStatement()
}

// Callee returns the target of a Call or New.
func (n *Node) Callee() *Node {
	if n.Kind != Call && n.Kind != New {
		return nil
	}
	return n.first
}

// Arguments returns the argument snapshot of a Call or New.
func (n *Node) Arguments() []*Node {
	if n.Kind != Call && n.Kind != New || n.first == nil {
		return nil
	}
	var args []*Node
	for c := n.first.next; c != nil; c = c.next {
		args = append(args, c)
	}
	return args
}

// Argument returns the i-th call argument or nil.
func (n *Node) Argument(i int) *Node {
	if n.first == nil {
		return nil
	}
	return n.first.next.nth(i)
}

func (n *Node) nth(i int) *Node {
	c := n
	for ; c != nil && i > 0; i-- {
		c = c.next
	}
	return c
}

// FunctionName returns the name child of a Function.
func (n *Node) FunctionName() string {
	if n.Kind != Function || n.first == nil {
		return ""
	}
	return n.first.Str
}

// FunctionParams returns the ParamList of a Function.
func (n *Node) FunctionParams() *Node {
	if n.Kind != Function || n.first == nil {
		return nil
	}
	return n.first.next
}

// FunctionBody returns the Block of a Function.
func (n *Node) FunctionBody() *Node {
	if n.Kind != Function {
		return nil
	}
	return n.last
}

// ParamNames returns the parameter names of a Function.
func (n *Node) ParamNames() []string {
	params := n.FunctionParams()
	if params == nil {
		return nil
	}
	var names []string
	for p := params.first; p != nil; p = p.next {
		names = append(names, p.Str)
	}
	return names
}

// AssignTarget and AssignValue return the two sides of an Assign.
func (n *Node) AssignTarget() *Node { return n.first }
func (n *Node) AssignValue() *Node  { return n.last }

// GetPropOwner returns the object side of a GetProp or GetElem.
func (n *Node) GetPropOwner() *Node { return n.first }

// String renders the subtree on one line for debugging and messages.
func (n *Node) String() string {
	return strings.Join(strings.Fields(Print(n)), " ")
}
