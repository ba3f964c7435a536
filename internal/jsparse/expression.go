package jsparse

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/jsdoc"
)

func (c *converter) expression(ts *sitter.Node) *jsast.Node {
	switch ts.Type() {
	case tsParenthesizedExpression:
		inner := firstNamed(ts)
		if inner == nil {
			return c.raw(ts)
		}
		return c.expression(inner)
	case tsIdentifier, tsPropertyIdentifier, tsShorthandPropertyIdent, tsUndefined, tsSuper:
		return c.at(jsast.NewName(c.text(ts)), ts)
	case tsThis:
		return c.at(jsast.NewThis(), ts)
	case tsString:
		value, ok := decodeString(c.text(ts))
		if !ok {
			return c.at(jsast.NewLiteral(c.text(ts)), ts)
		}
		return c.at(jsast.NewString(value), ts)
	case tsNumber, tsTrue, tsFalse, tsNull:
		return c.at(jsast.NewLiteral(c.text(ts)), ts)
	case tsFunction, tsFunctionExpression:
		return c.function(ts)
	case tsMemberExpression:
		return c.member(ts)
	case tsSubscriptExpression:
		obj := ts.ChildByFieldName("object")
		index := ts.ChildByFieldName("index")
		if obj == nil || index == nil || hasChildOfType(ts, tsOptionalChain) {
			return c.raw(ts)
		}
		return c.at(jsast.NewNode(jsast.GetElem, "", c.expression(obj), c.expression(index)), ts)
	case tsCallExpression:
		return c.call(ts)
	case tsNewExpression:
		ctor := ts.ChildByFieldName("constructor")
		if ctor == nil {
			return c.raw(ts)
		}
		n := c.at(jsast.NewNew(c.expression(ctor)), ts)
		if args := ts.ChildByFieldName("arguments"); args != nil {
			c.arguments(args, n)
		}
		return n
	case tsAssignmentExpression, tsAugmentedAssignment:
		left := ts.ChildByFieldName("left")
		right := ts.ChildByFieldName("right")
		if left == nil || right == nil {
			return c.raw(ts)
		}
		op := "="
		if ts.Type() == tsAugmentedAssignment {
			op = c.operator(ts, left, right)
		}
		return c.at(jsast.NewNode(jsast.Assign, op, c.expression(left), c.expression(right)), ts)
	case tsBinaryExpression:
		left := ts.ChildByFieldName("left")
		right := ts.ChildByFieldName("right")
		if left == nil || right == nil {
			return c.raw(ts)
		}
		return c.at(jsast.NewBinary(c.operator(ts, left, right), c.expression(left), c.expression(right)), ts)
	case tsUnaryExpression:
		arg := ts.ChildByFieldName("argument")
		op := ts.ChildByFieldName("operator")
		if arg == nil || op == nil {
			return c.raw(ts)
		}
		return c.at(jsast.NewNode(jsast.Unary, c.text(op), c.expression(arg)), ts)
	case tsTernaryExpression:
		cond := ts.ChildByFieldName("condition")
		then := ts.ChildByFieldName("consequence")
		otherwise := ts.ChildByFieldName("alternative")
		if cond == nil || then == nil || otherwise == nil {
			return c.raw(ts)
		}
		return c.at(jsast.NewNode(jsast.Hook, "", c.expression(cond), c.expression(then), c.expression(otherwise)), ts)
	case tsSequenceExpression:
		parts := namedChildren(ts)
		if len(parts) < 2 {
			return c.raw(ts)
		}
		exprs := make([]*jsast.Node, 0, len(parts))
		for _, p := range parts {
			exprs = append(exprs, c.expression(p))
		}
		return c.at(jsast.NewComma(exprs...), ts)
	case tsArray:
		return c.array(ts)
	case tsObject:
		return c.object(ts)
	}
	return c.raw(ts)
}

// array converts an array literal. A comma with no element before it is a
// hole and becomes an Empty element.
func (c *converter) array(ts *sitter.Node) *jsast.Node {
	arr := c.at(jsast.NewArrayLit(), ts)
	expectElem := true
	for i := 0; i < int(ts.ChildCount()); i++ {
		child := ts.Child(i)
		switch {
		case child.Type() == tsComment:
		case child.Type() == ",":
			if expectElem {
				arr.AddChildToBack(c.at(jsast.NewEmpty(), child))
			}
			expectElem = true
		case child.IsNamed():
			arr.AddChildToBack(c.expression(child))
			expectElem = false
		}
	}
	return arr
}

// operator returns the operator token between left and right.
func (c *converter) operator(ts, left, right *sitter.Node) string {
	if op := ts.ChildByFieldName("operator"); op != nil {
		return c.text(op)
	}
	return strings.TrimSpace(string(c.src[left.EndByte():right.StartByte()]))
}

func (c *converter) member(ts *sitter.Node) *jsast.Node {
	obj := ts.ChildByFieldName("object")
	prop := ts.ChildByFieldName("property")
	if obj == nil || prop == nil || prop.Type() == tsPrivatePropertyIdentifier || hasChildOfType(ts, tsOptionalChain) {
		return c.raw(ts)
	}
	return c.at(jsast.NewGetProp(c.expression(obj), c.text(prop)), ts)
}

func (c *converter) call(ts *sitter.Node) *jsast.Node {
	fn := ts.ChildByFieldName("function")
	args := ts.ChildByFieldName("arguments")
	if fn == nil || args == nil || args.Type() != tsArguments || hasChildOfType(ts, tsOptionalChain) {
		return c.raw(ts)
	}
	n := c.at(jsast.NewCall(c.expression(fn)), ts)
	c.arguments(args, n)
	return n
}

func (c *converter) arguments(ts *sitter.Node, into *jsast.Node) {
	for _, arg := range namedChildren(ts) {
		into.AddChildToBack(c.expression(arg))
	}
}

func (c *converter) object(ts *sitter.Node) *jsast.Node {
	obj := c.at(jsast.NewObjectLit(), ts)
	var pending *jsdoc.Info
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		member := ts.NamedChild(i)
		if member.Type() == tsComment {
			text := c.text(member)
			if jsdoc.IsDocComment(text) {
				if info, err := jsdoc.Parse(text); err == nil {
					pending = info
				}
			}
			continue
		}

		var key *jsast.Node
		switch member.Type() {
		case tsPair:
			key = c.pair(member)
		case tsShorthandPropertyIdent:
			name := c.text(member)
			key = c.at(jsast.NewStringKey(name, c.at(jsast.NewName(name), member)), member)
		case tsMethodDefinition:
			key = c.method(member)
		}
		if key == nil {
			obj.AddChildToBack(c.raw(member))
			pending = nil
			continue
		}
		key.JSDoc = pending
		pending = nil
		obj.AddChildToBack(key)
	}
	return obj
}

func (c *converter) pair(ts *sitter.Node) *jsast.Node {
	keyNode := ts.ChildByFieldName("key")
	value := ts.ChildByFieldName("value")
	if keyNode == nil || value == nil {
		return nil
	}
	var key string
	switch keyNode.Type() {
	case tsPropertyIdentifier, tsIdentifier, tsNumber:
		key = c.text(keyNode)
	case tsString:
		var ok bool
		if key, ok = decodeString(c.text(keyNode)); !ok {
			return nil
		}
	default:
		return nil
	}
	return c.at(jsast.NewStringKey(key, c.expression(value)), ts)
}

// method converts `name(a, b) {...}` into a key holding a function.
func (c *converter) method(ts *sitter.Node) *jsast.Node {
	name := ts.ChildByFieldName("name")
	if name == nil || name.Type() != tsPropertyIdentifier {
		return nil
	}
	for i := 0; i < int(ts.ChildCount()); i++ {
		switch ts.Child(i).Type() {
		case "get", "set", "async", "static", "*":
			return nil
		}
	}
	fn := c.function(ts)
	if fn.Kind != jsast.Function {
		return nil
	}
	fn.FirstChild().Str = ""
	return c.at(jsast.NewStringKey(c.text(name), fn), ts)
}

// decodeString returns the value of a quoted JavaScript string literal.
// It reports false when the literal holds a lone surrogate, which has no
// UTF-8 encoding.
func decodeString(lit string) (string, bool) {
	if len(lit) < 2 {
		return lit, true
	}
	body := lit[1 : len(lit)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, true
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 >= len(body) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch esc := body[i]; esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
		case '\r':
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case 'x':
			if r, ok := parseHex(body, i+1, 2); ok {
				b.WriteRune(r)
				i += 2
			} else {
				b.WriteByte(esc)
			}
		case 'u':
			r, n, ok := unicodeEscape(body, i+1)
			if !ok {
				b.WriteByte(esc)
				continue
			}
			i += n
			if utf16.IsSurrogate(r) {
				if i+2 >= len(body) || body[i+1] != '\\' || body[i+2] != 'u' {
					return "", false
				}
				low, m, ok := unicodeEscape(body, i+3)
				if !ok {
					return "", false
				}
				if r = utf16.DecodeRune(r, low); r == utf8.RuneError {
					return "", false
				}
				i += 2 + m
			}
			b.WriteRune(r)
		default:
			b.WriteByte(esc)
		}
	}
	return b.String(), true
}

// unicodeEscape reads the code point of a \u escape whose hex digits start at
// start, either XXXX or {X...}. It returns the code point and the number of
// bytes consumed.
func unicodeEscape(s string, start int) (rune, int, bool) {
	if start < len(s) && s[start] == '{' {
		end := strings.IndexByte(s[start:], '}')
		if end < 2 {
			return 0, 0, false
		}
		v, err := strconv.ParseUint(s[start+1:start+end], 16, 32)
		if err != nil || v > unicode.MaxRune {
			return 0, 0, false
		}
		return rune(v), end + 1, true
	}
	r, ok := parseHex(s, start, 4)
	return r, 4, ok
}

func parseHex(s string, start, length int) (rune, bool) {
	if start+length > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+length], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
