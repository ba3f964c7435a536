package jsast

import "github.com/toyz/camp/internal/jsdoc"

// Declaration is one of the declaration shapes the passes recognize. The set
// is closed: switch on the concrete type.
type Declaration interface {
	// Name is the declared qualified name, empty for anonymous shapes.
	Name() string
	// Value is the declared value node.
	Value() *Node
	// DocTarget is the node whose JSDoc documents the declaration.
	DocTarget() *Node

	declaration()
}

// FunctionDeclaration is a named function statement.
type FunctionDeclaration struct {
	Fn *Node
}

// AssignmentDeclaration is `a.b.c = value`.
type AssignmentDeclaration struct {
	Assign *Node
}

// VariableDeclaration is `var a = value`.
type VariableDeclaration struct {
	Var  *Node
	Decl *Node
}

// ObjectLiteralMember is `{key: value}`.
type ObjectLiteralMember struct {
	Key *Node
}

func (FunctionDeclaration) declaration()   {}
func (AssignmentDeclaration) declaration() {}
func (VariableDeclaration) declaration()   {}
func (ObjectLiteralMember) declaration()   {}

func (d FunctionDeclaration) Name() string     { return d.Fn.FunctionName() }
func (d FunctionDeclaration) Value() *Node     { return d.Fn }
func (d FunctionDeclaration) DocTarget() *Node { return d.Fn }

func (d AssignmentDeclaration) Name() string {
	name, _ := d.Assign.AssignTarget().QualifiedName()
	return name
}
func (d AssignmentDeclaration) Value() *Node     { return d.Assign.AssignValue() }
func (d AssignmentDeclaration) DocTarget() *Node { return d.Assign }

func (d VariableDeclaration) Name() string     { return d.Decl.Str }
func (d VariableDeclaration) Value() *Node     { return d.Decl.FirstChild() }
func (d VariableDeclaration) DocTarget() *Node { return d.Var }

func (d ObjectLiteralMember) Name() string     { return d.Key.Str }
func (d ObjectLiteralMember) Value() *Node     { return d.Key.FirstChild() }
func (d ObjectLiteralMember) DocTarget() *Node { return d.Key }

// DeclarationOf returns the declaration that binds value.
func DeclarationOf(value *Node) (Declaration, bool) {
	if value.IsFunctionDeclaration() {
		return FunctionDeclaration{Fn: value}, true
	}
	parent := value.Parent()
	if parent == nil {
		return nil, false
	}
	switch parent.Kind {
	case Assign:
		if parent.Str == "=" && parent.AssignValue() == value {
			return AssignmentDeclaration{Assign: parent}, true
		}
	case Name:
		if gp := parent.Parent(); gp != nil && gp.Kind == Var {
			return VariableDeclaration{Var: gp, Decl: parent}, true
		}
	case StringKey:
		return ObjectLiteralMember{Key: parent}, true
	}
	return nil, false
}

// BestJSDoc returns the doc comment that applies to n: its own, or the one
// of the declaration binding it.
func BestJSDoc(n *Node) *jsdoc.Info {
	if n.JSDoc != nil {
		return n.JSDoc
	}
	decl, ok := DeclarationOf(n)
	if !ok {
		return nil
	}
	target := decl.DocTarget()
	if target.JSDoc == nil && target.Kind == Assign {
		if stmt := target.Parent(); stmt != nil && stmt.Kind == ExprResult {
			return stmt.JSDoc
		}
	}
	return target.JSDoc
}
