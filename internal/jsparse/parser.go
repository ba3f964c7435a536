// Package jsparse builds jsast trees from JavaScript source using the
// tree-sitter JavaScript grammar. Constructs the rewriting passes never
// inspect are carried through as raw source text.
package jsparse

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/toyz/camp/internal/errors"
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/jsdoc"
)

// Parse parses src and returns a Script node.
func Parse(ctx context.Context, filename string, src []byte) (*jsast.Node, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.WrapParseError(filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(filename, src, root)
	}

	c := &converter{file: filename, src: src}
	script := c.at(jsast.NewNode(jsast.Script, ""), root)
	c.statements(root, script)
	return script, nil
}

func syntaxError(filename string, src []byte, root *sitter.Node) error {
	bad := firstError(root)
	if bad == nil {
		bad = root
	}
	loc := errors.SourceLocation{
		File:   filename,
		Line:   int(bad.StartPoint().Row) + 1,
		Column: int(bad.StartPoint().Column) + 1,
	}
	if bad.IsMissing() {
		return errors.NewMissingSyntaxError(loc, bad.Type())
	}
	return errors.NewSyntaxError(loc, firstLine(bad.Content(src)))
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == tsError || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstError(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

type converter struct {
	file string
	src  []byte
}

func (c *converter) at(n *jsast.Node, ts *sitter.Node) *jsast.Node {
	n.Pos = jsast.Pos{
		File:   c.file,
		Line:   int(ts.StartPoint().Row) + 1,
		Column: int(ts.StartPoint().Column) + 1,
	}
	return n
}

func (c *converter) text(ts *sitter.Node) string {
	return ts.Content(c.src)
}

func (c *converter) raw(ts *sitter.Node) *jsast.Node {
	return c.at(jsast.NewRaw(c.text(ts)), ts)
}

// pendingDoc is a doc comment waiting for the declaration that follows it.
type pendingDoc struct {
	info *jsdoc.Info
	node *sitter.Node
}

// statements converts the statement children of a program or block.
func (c *converter) statements(ts *sitter.Node, into *jsast.Node) {
	children := make([]*sitter.Node, 0, ts.NamedChildCount())
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		children = append(children, ts.NamedChild(i))
	}
	c.statementList(children, into)
}

// statementList converts statements and the comments between them.
func (c *converter) statementList(children []*sitter.Node, into *jsast.Node) {
	var pending *pendingDoc
	flush := func() {
		if pending != nil {
			into.AddChildToBack(c.raw(pending.node))
			pending = nil
		}
	}

	for _, child := range children {
		if child.Type() == tsComment {
			text := c.text(child)
			if jsdoc.IsDocComment(text) {
				if info, err := jsdoc.Parse(text); err == nil {
					flush()
					pending = &pendingDoc{info: info, node: child}
					continue
				}
			}
			flush()
			into.AddChildToBack(c.raw(child))
			continue
		}

		stmt := c.statement(child)
		if stmt == nil {
			continue
		}
		if pending != nil {
			if target := docTarget(stmt); target != nil {
				target.JSDoc = pending.info
				pending = nil
			}
			flush()
		}
		into.AddChildToBack(stmt)
	}
	flush()
}

// docTarget returns the node a leading doc comment documents.
func docTarget(stmt *jsast.Node) *jsast.Node {
	switch stmt.Kind {
	case jsast.Function, jsast.Var:
		return stmt
	case jsast.ExprResult:
		if expr := stmt.FirstChild(); expr.Kind != jsast.Raw && expr.Kind != jsast.Function {
			return expr
		}
		return stmt
	}
	return nil
}

func (c *converter) statement(ts *sitter.Node) *jsast.Node {
	switch ts.Type() {
	case tsExpressionStatement:
		expr := firstNamed(ts)
		if expr == nil {
			return c.raw(ts)
		}
		return c.at(jsast.NewExprResult(c.expression(expr)), ts)
	case tsVariableDeclaration, tsLexicalDeclaration:
		return c.variable(ts)
	case tsFunctionDeclaration:
		return c.function(ts)
	case tsReturnStatement:
		ret := c.at(jsast.NewReturn(nil), ts)
		if expr := firstNamed(ts); expr != nil {
			ret.AddChildToBack(c.expression(expr))
		}
		return ret
	case tsIfStatement:
		return c.ifStatement(ts)
	case tsStatementBlock:
		block := c.at(jsast.NewBlock(), ts)
		c.statements(ts, block)
		return block
	case tsEmptyStatement:
		return nil
	case tsThrowStatement:
		expr := firstNamed(ts)
		if expr == nil {
			return c.raw(ts)
		}
		return c.at(jsast.NewNode(jsast.Throw, "", c.expression(expr)), ts)
	case tsTryStatement:
		return c.tryStatement(ts)
	case tsWhileStatement:
		cond := ts.ChildByFieldName("condition")
		body := ts.ChildByFieldName("body")
		if cond == nil || body == nil {
			return c.raw(ts)
		}
		return c.at(jsast.NewNode(jsast.While, "", c.expression(cond), c.blockOf(body)), ts)
	case tsDoStatement:
		cond := ts.ChildByFieldName("condition")
		body := ts.ChildByFieldName("body")
		if cond == nil || body == nil {
			return c.raw(ts)
		}
		return c.at(jsast.NewNode(jsast.DoWhile, "", c.blockOf(body), c.expression(cond)), ts)
	case tsForStatement:
		return c.forStatement(ts)
	case tsForInStatement:
		return c.forInStatement(ts)
	case tsSwitchStatement:
		return c.switchStatement(ts)
	case tsLabeledStatement:
		label := ts.ChildByFieldName("label")
		body := ts.ChildByFieldName("body")
		if label == nil || body == nil {
			return c.raw(ts)
		}
		stmt := c.statement(body)
		if stmt == nil {
			return c.raw(ts)
		}
		return c.at(jsast.NewNode(jsast.Labeled, c.text(label), stmt), ts)
	}
	return c.raw(ts)
}

func (c *converter) tryStatement(ts *sitter.Node) *jsast.Node {
	body := ts.ChildByFieldName("body")
	if body == nil {
		return c.raw(ts)
	}
	n := c.at(jsast.NewNode(jsast.Try, "", c.blockOf(body)), ts)
	if handler := ts.ChildByFieldName("handler"); handler != nil {
		handlerBody := handler.ChildByFieldName("body")
		if handlerBody == nil {
			return c.raw(ts)
		}
		binding := ""
		if param := handler.ChildByFieldName("parameter"); param != nil {
			binding = c.text(param)
		}
		n.AddChildToBack(c.at(jsast.NewNode(jsast.Catch, binding, c.blockOf(handlerBody)), handler))
	}
	if finalizer := ts.ChildByFieldName("finalizer"); finalizer != nil {
		finalBody := finalizer.ChildByFieldName("body")
		if finalBody == nil {
			return c.raw(ts)
		}
		n.AddChildToBack(c.blockOf(finalBody))
	}
	return n
}

func (c *converter) forStatement(ts *sitter.Node) *jsast.Node {
	body := ts.ChildByFieldName("body")
	if body == nil {
		return c.raw(ts)
	}
	init := c.forClause(ts.ChildByFieldName("initializer"))
	if init.Kind == jsast.Raw {
		return c.raw(ts)
	}
	n := c.at(jsast.NewNode(jsast.For, "", init), ts)
	n.AddChildToBack(c.forClause(ts.ChildByFieldName("condition")))
	n.AddChildToBack(c.forClause(ts.ChildByFieldName("increment")))
	n.AddChildToBack(c.blockOf(body))
	return n
}

// forClause converts one clause of a for header; an omitted clause is Empty.
func (c *converter) forClause(ts *sitter.Node) *jsast.Node {
	if ts == nil || !ts.IsNamed() {
		return jsast.NewEmpty()
	}
	switch ts.Type() {
	case tsEmptyStatement:
		return jsast.NewEmpty()
	case tsExpressionStatement:
		if expr := firstNamed(ts); expr != nil {
			return c.expression(expr)
		}
		return jsast.NewEmpty()
	case tsVariableDeclaration, tsLexicalDeclaration:
		return c.variable(ts)
	}
	return c.expression(ts)
}

// forInStatement converts for-in and for-of loops. Destructuring and
// for await stay raw.
func (c *converter) forInStatement(ts *sitter.Node) *jsast.Node {
	left := ts.ChildByFieldName("left")
	right := ts.ChildByFieldName("right")
	body := ts.ChildByFieldName("body")
	if left == nil || right == nil || body == nil || hasChildOfType(ts, "await") || ts.ChildByFieldName("value") != nil {
		return c.raw(ts)
	}

	op := "in"
	if operator := ts.ChildByFieldName("operator"); operator != nil {
		op = c.text(operator)
	} else if hasChildOfType(ts, "of") {
		op = "of"
	}

	var target *jsast.Node
	if kind := ts.ChildByFieldName("kind"); kind != nil {
		if left.Type() != tsIdentifier {
			return c.raw(ts)
		}
		target = c.at(jsast.NewNode(jsast.Var, c.text(kind), c.at(jsast.NewName(c.text(left)), left)), left)
	} else {
		target = c.expression(left)
	}
	return c.at(jsast.NewNode(jsast.ForIn, op, target, c.expression(right), c.blockOf(body)), ts)
}

// switchStatement converts a switch. Comments between clauses are kept at
// the front of the clause that follows them.
func (c *converter) switchStatement(ts *sitter.Node) *jsast.Node {
	value := ts.ChildByFieldName("value")
	body := ts.ChildByFieldName("body")
	if value == nil || body == nil {
		return c.raw(ts)
	}
	n := c.at(jsast.NewNode(jsast.Switch, "", c.expression(value)), ts)

	var comments []*sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		clause := body.NamedChild(i)
		var stmts []*sitter.Node
		var node *jsast.Node
		switch clause.Type() {
		case tsComment:
			comments = append(comments, clause)
			continue
		case tsSwitchCase:
			test := clause.ChildByFieldName("value")
			if test == nil {
				return c.raw(ts)
			}
			for j := 0; j < int(clause.NamedChildCount()); j++ {
				if child := clause.NamedChild(j); child.StartByte() >= test.EndByte() {
					stmts = append(stmts, child)
				}
			}
			node = jsast.NewNode(jsast.Case, "", c.expression(test))
		case tsSwitchDefault:
			for j := 0; j < int(clause.NamedChildCount()); j++ {
				stmts = append(stmts, clause.NamedChild(j))
			}
			node = jsast.NewNode(jsast.DefaultCase, "")
		default:
			return c.raw(ts)
		}

		block := c.at(jsast.NewBlock(), clause)
		c.statementList(append(comments, stmts...), block)
		comments = nil
		node.AddChildToBack(block)
		n.AddChildToBack(c.at(node, clause))
	}
	if len(comments) > 0 && n.LastChild() != n.FirstChild() {
		c.statementList(comments, n.LastChild().LastChild())
	}
	return n
}

func (c *converter) variable(ts *sitter.Node) *jsast.Node {
	keyword := "var"
	if ts.ChildCount() > 0 {
		keyword = ts.Child(0).Type()
	}
	v := c.at(jsast.NewNode(jsast.Var, keyword), ts)
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		decl := ts.NamedChild(i)
		if decl.Type() == tsComment {
			continue
		}
		name := decl.ChildByFieldName("name")
		if decl.Type() != tsVariableDeclarator || name == nil || name.Type() != tsIdentifier {
			return c.raw(ts)
		}
		nameNode := c.at(jsast.NewName(c.text(name)), name)
		if value := decl.ChildByFieldName("value"); value != nil {
			nameNode.AddChildToBack(c.expression(value))
		}
		v.AddChildToBack(nameNode)
	}
	return v
}

func (c *converter) ifStatement(ts *sitter.Node) *jsast.Node {
	cond := ts.ChildByFieldName("condition")
	consequence := ts.ChildByFieldName("consequence")
	if cond == nil || consequence == nil {
		return c.raw(ts)
	}
	n := c.at(jsast.NewNode(jsast.If, "", c.expression(cond), c.blockOf(consequence)), ts)
	if alt := ts.ChildByFieldName("alternative"); alt != nil {
		if alt.Type() == tsElseClause {
			alt = firstNamed(alt)
		}
		if alt != nil {
			if alt.Type() == tsIfStatement {
				n.AddChildToBack(c.ifStatement(alt))
			} else {
				n.AddChildToBack(c.blockOf(alt))
			}
		}
	}
	return n
}

// blockOf converts a statement, wrapping it in a Block when needed.
func (c *converter) blockOf(ts *sitter.Node) *jsast.Node {
	stmt := c.statement(ts)
	if stmt != nil && stmt.Kind == jsast.Block {
		return stmt
	}
	block := c.at(jsast.NewBlock(), ts)
	if stmt != nil {
		block.AddChildToBack(stmt)
	}
	return block
}

func (c *converter) function(ts *sitter.Node) *jsast.Node {
	for i := 0; i < int(ts.ChildCount()); i++ {
		switch ts.Child(i).Type() {
		case "async", "*":
			return c.raw(ts)
		}
	}

	name := ""
	if nameNode := ts.ChildByFieldName("name"); nameNode != nil {
		name = c.text(nameNode)
	}
	body := ts.ChildByFieldName("body")
	params := ts.ChildByFieldName("parameters")
	if body == nil || params == nil {
		return c.raw(ts)
	}

	fn := c.at(jsast.NewFunction(name, nil, nil), ts)
	list := fn.FunctionParams()
	c.at(list, params)
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case tsComment:
			continue
		case tsIdentifier:
			list.AddChildToBack(c.at(jsast.NewName(c.text(p)), p))
		default:
			list.AddChildToBack(c.raw(p))
		}
	}
	c.statements(body, c.at(fn.FunctionBody(), body))
	return fn
}

func firstNamed(ts *sitter.Node) *sitter.Node {
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		if child := ts.NamedChild(i); child.Type() != tsComment {
			return child
		}
	}
	return nil
}

func namedChildren(ts *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		if child := ts.NamedChild(i); child.Type() != tsComment {
			out = append(out, child)
		}
	}
	return out
}

func hasChildOfType(ts *sitter.Node, typ string) bool {
	for i := 0; i < int(ts.ChildCount()); i++ {
		if ts.Child(i).Type() == typ {
			return true
		}
	}
	return false
}
