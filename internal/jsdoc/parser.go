package jsdoc

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// comment is the grammar root: free description words followed by tags.
type comment struct {
	Description []string `parser:"@(Ident | Text | Type | Punct)*"`
	Tags        []*tag   `parser:"@@*"`
}

type tag struct {
	Name  string   `parser:"@Tag"`
	Type  string   `parser:"@Type?"`
	Words []string `parser:"@(Ident | Text | Type | Punct)*"`
}

var (
	parserOnce sync.Once
	docParser  *participle.Parser[comment]
)

func getParser() *participle.Parser[comment] {
	parserOnce.Do(func() {
		lex := lexer.MustSimple([]lexer.SimpleRule{
			{Name: "Tag", Pattern: `@[a-zA-Z]+`},
			{Name: "Type", Pattern: `\{(?:[^{}]|\{[^{}]*\})*\}`},
			{Name: "Ident", Pattern: `[a-zA-Z_$][\w$.]*`},
			{Name: "Text", Pattern: `[^\s@{}][^\s{}]*`},
			{Name: "Punct", Pattern: `[{}@]`},
			{Name: "Whitespace", Pattern: `\s+`},
		})

		docParser = participle.MustBuild[comment](
			participle.Lexer(lex),
			participle.Elide("Whitespace"),
			participle.UseLookahead(2),
		)
	})
	return docParser
}

// IsDocComment reports whether text is a /** ... */ comment.
func IsDocComment(text string) bool {
	return strings.HasPrefix(text, "/**") && strings.HasSuffix(text, "*/") && len(text) >= 5
}

// Parse parses the text of a /** ... */ comment.
func Parse(text string) (*Info, error) {
	if !IsDocComment(text) {
		return nil, fmt.Errorf("not a doc comment: %.20q", text)
	}

	parsed, err := getParser().ParseString("", stripDelimiters(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse doc comment: %w", err)
	}

	info := New()
	info.Description = strings.Join(parsed.Description, " ")
	for _, t := range parsed.Tags {
		applyTag(info, t)
	}
	return info, nil
}

func applyTag(info *Info, t *tag) {
	typ := unbrace(t.Type)
	name := strings.TrimPrefix(t.Name, "@")

	switch name {
	case "constructor":
		info.Constructor = true
	case "interface", "record":
		info.Interface = true
	case "extends", "base":
		if typ == "" && len(t.Words) > 0 {
			typ = t.Words[0]
		}
		info.BaseType = typ
	case "implements":
		if typ == "" && len(t.Words) > 0 {
			typ = t.Words[0]
		}
		info.Implements = append(info.Implements, typ)
	case "param":
		if len(t.Words) == 0 {
			return
		}
		info.RecordParameter(t.Words[0], typ)
	case "return", "returns":
		info.Return = typ
	case "this":
		info.This = typ
	case "type":
		info.Type = typ
	case "override":
		info.Override = true
	default:
		line := t.Name
		if t.Type != "" {
			line += " " + t.Type
		}
		if len(t.Words) > 0 {
			line += " " + strings.Join(t.Words, " ")
		}
		info.Extra = append(info.Extra, line)
	}
}

func stripDelimiters(text string) string {
	body := strings.TrimSuffix(strings.TrimPrefix(text, "/**"), "*/")
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func unbrace(typ string) string {
	if strings.HasPrefix(typ, "{") && strings.HasSuffix(typ, "}") {
		return strings.TrimSpace(typ[1 : len(typ)-1])
	}
	return typ
}
