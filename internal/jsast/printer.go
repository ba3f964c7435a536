package jsast

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/toyz/camp/internal/jsdoc"
)

const indentUnit = "  "

// Print renders n as JavaScript source. Output depends only on the tree, so
// printing the same tree twice yields identical text.
func Print(n *Node) string {
	p := &printer{}
	switch n.Kind {
	case Script, Block:
		if n.Kind == Block {
			return p.block(n)
		}
		var b strings.Builder
		for c := n.first; c != nil; c = c.next {
			b.WriteString(p.statement(c))
		}
		return b.String()
	case ExprResult, Var, Return, If, Raw, Throw, Try, While, DoWhile, For, ForIn, Switch, Labeled:
		return p.statement(n)
	case Function:
		if n.IsStatement() {
			return p.statement(n)
		}
	}
	return p.expr(n, 0)
}

type printer struct {
	depth int
}

func (p *printer) indent() string {
	return strings.Repeat(indentUnit, p.depth)
}

func statementDoc(n *Node) *jsdoc.Info {
	switch n.Kind {
	case Function, Var:
		return n.JSDoc
	case ExprResult:
		if n.JSDoc != nil {
			return n.JSDoc
		}
		if n.first != nil && n.first.Kind != Function {
			return n.first.JSDoc
		}
	}
	return nil
}

// statement renders one statement, including its doc comment and newline.
func (p *printer) statement(n *Node) string {
	ind := p.indent()
	var b strings.Builder
	if doc := statementDoc(n); doc != nil && !doc.Empty() {
		b.WriteString(ind)
		b.WriteString(doc.Render(ind))
		b.WriteString("\n")
	}
	b.WriteString(ind)
	b.WriteString(p.statementBody(n))
	b.WriteString("\n")
	return b.String()
}

func (p *printer) statementBody(n *Node) string {
	switch n.Kind {
	case ExprResult:
		s := p.expr(n.first, 0)
		if startsAmbiguously(s) {
			s = "(" + s + ")"
		}
		return s + ";"
	case Var:
		return p.declaration(n, false) + ";"
	case Return:
		if n.first == nil {
			return "return;"
		}
		return "return " + p.expr(n.first, 0) + ";"
	case If:
		return p.ifStatement(n)
	case Throw:
		return "throw " + p.expr(n.first, 0) + ";"
	case Try:
		return p.tryStatement(n)
	case While:
		return "while (" + p.expr(n.first, 0) + ") " + p.block(n.last)
	case DoWhile:
		return "do " + p.block(n.first) + " while (" + p.expr(n.last, 0) + ");"
	case For:
		return p.forStatement(n)
	case ForIn:
		left := n.first
		leftText := p.expr(left, precCall)
		if left.Kind == Var {
			leftText = p.declaration(left, false)
		}
		return "for (" + leftText + " " + n.Str + " " + p.expr(left.next, precAssign) + ") " + p.block(n.last)
	case Switch:
		return p.switchStatement(n)
	case Labeled:
		return n.Str + ": " + p.statementBody(n.first)
	case Function:
		return p.function(n, false)
	case Block:
		return p.block(n)
	case Raw:
		return n.Str
	}
	return p.expr(n, 0) + ";"
}

func (p *printer) ifStatement(n *Node) string {
	cond := n.first
	then := cond.next
	s := "if (" + p.expr(cond, 0) + ") " + p.blockOrStatement(then)
	if elseNode := then.next; elseNode != nil {
		if elseNode.Kind == If {
			s += " else " + p.ifStatement(elseNode)
		} else {
			s += " else " + p.blockOrStatement(elseNode)
		}
	}
	return s
}

// declaration renders a Var without its semicolon. Inside a for header an
// initializer using the in operator is parenthesized.
func (p *printer) declaration(n *Node, forInit bool) string {
	parts := make([]string, 0, n.ChildCount())
	for c := n.first; c != nil; c = c.next {
		if c.first == nil {
			parts = append(parts, c.Str)
			continue
		}
		value := p.expr(c.first, precAssign)
		if forInit && containsIn(c.first) {
			value = "(" + value + ")"
		}
		parts = append(parts, c.Str+" = "+value)
	}
	keyword := n.Str
	if keyword == "" {
		keyword = "var"
	}
	return keyword + " " + strings.Join(parts, ", ")
}

func (p *printer) forStatement(n *Node) string {
	init := n.first
	cond := init.next
	update := cond.next

	var b strings.Builder
	b.WriteString("for (")
	switch {
	case init.Kind == Var:
		b.WriteString(p.declaration(init, true))
	case init.Kind != Empty:
		s := p.expr(init, 0)
		if containsIn(init) {
			s = "(" + s + ")"
		}
		b.WriteString(s)
	}
	b.WriteString(";")
	if cond.Kind != Empty {
		b.WriteString(" " + p.expr(cond, 0))
	}
	b.WriteString(";")
	if update.Kind != Empty {
		b.WriteString(" " + p.expr(update, 0))
	}
	b.WriteString(") ")
	b.WriteString(p.block(n.last))
	return b.String()
}

// containsIn reports whether an in operator appears outside nested functions.
func containsIn(n *Node) bool {
	found := false
	Inspect(n, func(c *Node) bool {
		if found || c.Kind == Function {
			return false
		}
		if c.Kind == Binary && c.Str == "in" {
			found = true
		}
		return !found
	})
	return found
}

func (p *printer) tryStatement(n *Node) string {
	s := "try " + p.block(n.first)
	rest := n.first.next
	if rest != nil && rest.Kind == Catch {
		if rest.Str != "" {
			s += " catch (" + rest.Str + ") "
		} else {
			s += " catch "
		}
		s += p.block(rest.first)
		rest = rest.next
	}
	if rest != nil {
		s += " finally " + p.block(rest)
	}
	return s
}

func (p *printer) switchStatement(n *Node) string {
	var b strings.Builder
	b.WriteString("switch (" + p.expr(n.first, 0) + ") {\n")
	p.depth++
	for c := n.first.next; c != nil; c = c.next {
		b.WriteString(p.indent())
		if c.Kind == Case {
			b.WriteString("case " + p.expr(c.first, 0) + ":\n")
		} else {
			b.WriteString("default:\n")
		}
		p.depth++
		for stmt := c.last.first; stmt != nil; stmt = stmt.next {
			b.WriteString(p.statement(stmt))
		}
		p.depth--
	}
	p.depth--
	b.WriteString(p.indent())
	b.WriteString("}")
	return b.String()
}

func (p *printer) blockOrStatement(n *Node) string {
	if n.Kind == Block {
		return p.block(n)
	}
	p.depth++
	body := p.statement(n)
	p.depth--
	return "{\n" + body + p.indent() + "}"
}

func (p *printer) block(n *Node) string {
	if n.first == nil {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	p.depth++
	for c := n.first; c != nil; c = c.next {
		b.WriteString(p.statement(c))
	}
	p.depth--
	b.WriteString(p.indent())
	b.WriteString("}")
	return b.String()
}

func (p *printer) function(n *Node, withDoc bool) string {
	var b strings.Builder
	if withDoc && n.JSDoc != nil && !n.JSDoc.Empty() {
		b.WriteString(n.JSDoc.Render(p.indent()))
		b.WriteString(" ")
	}
	b.WriteString("function")
	if name := n.FunctionName(); name != "" {
		b.WriteString(" ")
		b.WriteString(name)
	}
	b.WriteString("(")
	var params []string
	if list := n.FunctionParams(); list != nil {
		for c := list.first; c != nil; c = c.next {
			params = append(params, c.Str)
		}
	}
	b.WriteString(strings.Join(params, ", "))
	b.WriteString(") ")
	b.WriteString(p.block(n.FunctionBody()))
	return b.String()
}

func (p *printer) expr(n *Node, min int) string {
	s, prec := p.exprInner(n)
	if prec < min {
		return "(" + s + ")"
	}
	return s
}

// operand renders the object of a member access or the callee of a call.
func (p *printer) operand(n *Node, min int) string {
	if n.Kind == Function || n.Kind == ObjectLit {
		s, _ := p.exprInner(n)
		return "(" + s + ")"
	}
	return p.expr(n, min)
}

const (
	precComma   = 1
	precAssign  = 2
	precHook    = 3
	precUnary   = 15
	precCall    = 17
	precMember  = 18
	precPrimary = 20
)

var binaryPrecedence = map[string]int{
	",":  precComma,
	"||": 4, "??": 4,
	"&&": 5,
	"|":  6,
	"^":  7,
	"&":  8,
	"==": 9, "!=": 9, "===": 9, "!==": 9,
	"<": 10, ">": 10, "<=": 10, ">=": 10, "instanceof": 10, "in": 10,
	"<<": 11, ">>": 11, ">>>": 11,
	"+": 12, "-": 12,
	"*": 13, "/": 13, "%": 13,
	"**": 14,
}

var arrowPattern = regexp.MustCompile(`=>|^yield\b`)

func (p *printer) exprInner(n *Node) (string, int) {
	switch n.Kind {
	case Name:
		return n.Str, precPrimary
	case This:
		return "this", precPrimary
	case StringLit:
		return Quote(n.Str), precPrimary
	case Literal:
		return n.Str, precPrimary
	case Raw:
		if arrowPattern.MatchString(n.Str) {
			return n.Str, precAssign
		}
		return n.Str, precPrimary
	case Empty:
		return "", precPrimary
	case ArrayLit:
		elems := make([]string, 0, n.ChildCount())
		for c := n.first; c != nil; c = c.next {
			elems = append(elems, p.expr(c, precAssign))
		}
		// A trailing hole needs its own comma.
		if n.last != nil && n.last.Kind == Empty {
			return "[" + strings.Join(elems, ", ") + ",]", precPrimary
		}
		return "[" + strings.Join(elems, ", ") + "]", precPrimary
	case ObjectLit:
		return p.object(n), precPrimary
	case Function:
		return p.function(n, true), precPrimary
	case GetProp:
		return p.operand(n.first, precCall) + "." + n.Str, precMember
	case GetElem:
		return p.operand(n.first, precCall) + "[" + p.expr(n.last, 0) + "]", precMember
	case Call:
		return p.operand(n.first, precCall) + "(" + p.args(n) + ")", precCall
	case New:
		return "new " + p.operand(n.first, precMember) + "(" + p.args(n) + ")", precMember
	case Assign:
		return p.expr(n.first, precCall) + " " + n.Str + " " + p.expr(n.last, precAssign), precAssign
	case Binary:
		prec, ok := binaryPrecedence[n.Str]
		if !ok {
			prec = precAssign + 1
		}
		leftMin, rightMin := prec, prec+1
		if n.Str == "**" {
			leftMin, rightMin = prec+1, prec
		}
		left := p.expr(n.first, leftMin)
		right := p.expr(n.last, rightMin)
		if n.Str == "," {
			return left + ", " + right, prec
		}
		return left + " " + n.Str + " " + right, prec
	case Unary:
		operand := p.expr(n.first, precUnary)
		if isWordOperator(n.Str) || needsSeparation(n.Str, operand) {
			return n.Str + " " + operand, precUnary
		}
		return n.Str + operand, precUnary
	case Hook:
		cond := n.first
		then := cond.next
		return p.expr(cond, 4) + " ? " + p.expr(then, precAssign) + " : " + p.expr(then.next, precAssign), precHook
	}
	panic(fmt.Sprintf("jsast: cannot print %s as an expression", n.Kind))
}

func (p *printer) args(n *Node) string {
	var args []string
	for c := n.first.next; c != nil; c = c.next {
		args = append(args, p.expr(c, precAssign))
	}
	return strings.Join(args, ", ")
}

func (p *printer) object(n *Node) string {
	if n.first == nil {
		return "{}"
	}

	multiline := false
	for c := n.first; c != nil; c = c.next {
		if c.JSDoc != nil || c.Kind != StringKey || (c.first != nil && c.first.Kind == Function) {
			multiline = true
			break
		}
	}

	if !multiline {
		parts := make([]string, 0, n.ChildCount())
		for c := n.first; c != nil; c = c.next {
			parts = append(parts, formatKey(c.Str)+": "+p.expr(c.first, precAssign))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}

	var b strings.Builder
	b.WriteString("{\n")
	p.depth++
	ind := p.indent()
	for c := n.first; c != nil; c = c.next {
		if c.JSDoc != nil && !c.JSDoc.Empty() {
			b.WriteString(ind)
			b.WriteString(c.JSDoc.Render(ind))
			b.WriteString("\n")
		}
		b.WriteString(ind)
		if c.Kind == StringKey {
			b.WriteString(formatKey(c.Str))
			b.WriteString(": ")
			b.WriteString(p.expr(c.first, precAssign))
		} else {
			b.WriteString(p.expr(c, precAssign))
		}
		if c.next != nil {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	p.depth--
	b.WriteString(p.indent())
	b.WriteString("}")
	return b.String()
}

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_$][\w$]*$`)
var numberPattern = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)

// IsIdentifier reports whether s can be written as a bare identifier.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

func formatKey(key string) string {
	if IsIdentifier(key) || numberPattern.MatchString(key) {
		return key
	}
	return Quote(key)
}

// needsSeparation keeps "- -x" and "+ +x" from fusing into "--x" or "++x".
func needsSeparation(op, operand string) bool {
	return (op == "-" || op == "+") && strings.HasPrefix(operand, op)
}

func isWordOperator(op string) bool {
	switch op {
	case "typeof", "void", "delete", "await":
		return true
	}
	return false
}

// startsAmbiguously reports whether an expression statement would be read
// as a declaration or block.
func startsAmbiguously(s string) bool {
	if strings.HasPrefix(s, "{") {
		return true
	}
	if !strings.HasPrefix(s, "function") {
		return false
	}
	rest := s[len("function"):]
	return rest == "" || rest[0] == '(' || rest[0] == ' ' || rest[0] == '*'
}

// Quote renders s as a single-quoted JavaScript string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
