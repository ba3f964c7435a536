package jsast

import "strings"

func NewName(name string) *Node { return NewNode(Name, name) }
func NewThis() *Node            { return NewNode(This, "") }
func NewEmpty() *Node           { return NewNode(Empty, "") }
func NewString(s string) *Node  { return NewNode(StringLit, s) }
func NewLiteral(raw string) *Node {
	return NewNode(Literal, raw)
}

// NewQualifiedName builds a Name/GetProp chain for a dotted name.
func NewQualifiedName(name string) *Node {
	parts := strings.Split(name, ".")
	var n *Node
	if parts[0] == "this" {
		n = NewThis()
	} else {
		n = NewName(parts[0])
	}
	for _, p := range parts[1:] {
		n = NewGetProp(n, p)
	}
	return n
}

func NewGetProp(owner *Node, prop string) *Node {
	return NewNode(GetProp, prop, owner)
}

func NewCall(callee *Node, args ...*Node) *Node {
	return NewNode(Call, "", append([]*Node{callee}, args...)...)
}

func NewNew(ctor *Node, args ...*Node) *Node {
	return NewNode(New, "", append([]*Node{ctor}, args...)...)
}

func NewAssign(target, value *Node) *Node {
	return NewNode(Assign, "=", target, value)
}

func NewBinary(op string, left, right *Node) *Node {
	return NewNode(Binary, op, left, right)
}

func NewOr(left, right *Node) *Node  { return NewBinary("||", left, right) }
func NewAnd(left, right *Node) *Node { return NewBinary("&&", left, right) }
func NewAdd(left, right *Node) *Node { return NewBinary("+", left, right) }

// NewComma folds exprs into a left-nested comma expression.
func NewComma(exprs ...*Node) *Node {
	n := exprs[0]
	for _, e := range exprs[1:] {
		n = NewBinary(",", n, e)
	}
	return n
}

func NewExprResult(expr *Node) *Node {
	return NewNode(ExprResult, "", expr)
}

// NewVar declares a single var binding; init may be nil.
func NewVar(name string, init *Node) *Node {
	nameNode := NewName(name)
	if init != nil {
		nameNode.AddChildToBack(init)
	}
	return NewNode(Var, "var", nameNode)
}

func NewReturn(expr *Node) *Node {
	if expr == nil {
		return NewNode(Return, "")
	}
	return NewNode(Return, "", expr)
}

func NewBlock(stmts ...*Node) *Node {
	return NewNode(Block, "", stmts...)
}

// NewParamList builds a parameter list from names.
func NewParamList(params ...string) *Node {
	list := NewNode(ParamList, "")
	for _, p := range params {
		list.AddChildToBack(NewName(p))
	}
	return list
}

// NewFunction builds a function; an empty name makes a function expression.
func NewFunction(name string, params []string, body *Node) *Node {
	if body == nil {
		body = NewBlock()
	}
	return NewNode(Function, "", NewName(name), NewParamList(params...), body)
}

func NewObjectLit(keys ...*Node) *Node {
	return NewNode(ObjectLit, "", keys...)
}

func NewStringKey(key string, value *Node) *Node {
	return NewNode(StringKey, key, value)
}

func NewArrayLit(elems ...*Node) *Node {
	return NewNode(ArrayLit, "", elems...)
}

func NewRaw(text string) *Node {
	return NewNode(Raw, text)
}
