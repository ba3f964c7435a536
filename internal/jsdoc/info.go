// Package jsdoc models the type annotations carried by JSDoc comments and
// provides the builder operations used when synthesizing annotated code.
package jsdoc

import (
	"strings"
)

// Param is one documented function parameter.
type Param struct {
	Name string
	Type string
}

// Info is the parsed form of a /** ... */ comment. Type expressions are kept
// as written, without the surrounding braces.
type Info struct {
	Description string
	Constructor bool
	Interface   bool
	BaseType    string
	Implements  []string
	Params      []Param
	Return      string
	This        string
	Type        string
	Override    bool

	// Extra holds tags this package does not model, rendered verbatim.
	Extra []string
}

// New returns an empty Info.
func New() *Info {
	return &Info{}
}

// RecordConstructor marks the annotated function as a constructor.
func (i *Info) RecordConstructor() {
	i.Constructor = true
}

// RecordBaseType records the @extends type.
func (i *Info) RecordBaseType(typ string) {
	i.BaseType = typ
}

// RecordImplementedInterface appends an @implements type.
func (i *Info) RecordImplementedInterface(typ string) {
	i.Implements = append(i.Implements, typ)
}

// RecordParameter records the type of a named parameter. Recording the same
// name twice replaces the earlier type.
func (i *Info) RecordParameter(name, typ string) {
	for idx := range i.Params {
		if i.Params[idx].Name == name {
			i.Params[idx].Type = typ
			return
		}
	}
	i.Params = append(i.Params, Param{Name: name, Type: typ})
}

// RecordReturnType records the @return type.
func (i *Info) RecordReturnType(typ string) {
	i.Return = typ
}

// RecordThisType records the @this type.
func (i *Info) RecordThisType(typ string) {
	i.This = typ
}

// RecordOverride marks the annotated member as an override.
func (i *Info) RecordOverride() {
	i.Override = true
}

// ParameterType returns the documented type for name.
func (i *Info) ParameterType(name string) (string, bool) {
	if i == nil {
		return "", false
	}
	for _, p := range i.Params {
		if p.Name == name {
			return p.Type, true
		}
	}
	return "", false
}

// ParameterNames returns documented parameter names in declaration order.
func (i *Info) ParameterNames() []string {
	if i == nil {
		return nil
	}
	names := make([]string, 0, len(i.Params))
	for _, p := range i.Params {
		names = append(names, p.Name)
	}
	return names
}

// IsConstructor reports whether i documents a constructor. It is nil safe.
func (i *Info) IsConstructor() bool {
	return i != nil && i.Constructor
}

// ImplementsInterface reports whether i lists typ under @implements.
func (i *Info) ImplementsInterface(typ string) bool {
	if i == nil {
		return false
	}
	for _, impl := range i.Implements {
		if TypeName(impl) == typ {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of i.
func (i *Info) Clone() *Info {
	if i == nil {
		return nil
	}
	c := *i
	c.Implements = append([]string(nil), i.Implements...)
	c.Params = append([]Param(nil), i.Params...)
	c.Extra = append([]string(nil), i.Extra...)
	return &c
}

// Empty reports whether rendering i would produce no lines.
func (i *Info) Empty() bool {
	return len(i.Lines()) == 0
}

// Lines returns the comment body, one entry per line, in a fixed tag order.
func (i *Info) Lines() []string {
	if i == nil {
		return nil
	}
	var lines []string
	if i.Description != "" {
		lines = append(lines, strings.Split(i.Description, "\n")...)
	}
	if i.Constructor {
		lines = append(lines, "@constructor")
	}
	if i.Interface {
		lines = append(lines, "@interface")
	}
	if i.BaseType != "" {
		lines = append(lines, "@extends {"+i.BaseType+"}")
	}
	for _, impl := range i.Implements {
		lines = append(lines, "@implements {"+impl+"}")
	}
	for _, p := range i.Params {
		if p.Type == "" {
			lines = append(lines, "@param "+p.Name)
			continue
		}
		lines = append(lines, "@param {"+p.Type+"} "+p.Name)
	}
	if i.Return != "" {
		lines = append(lines, "@return {"+i.Return+"}")
	}
	if i.This != "" {
		lines = append(lines, "@this {"+i.This+"}")
	}
	if i.Type != "" {
		lines = append(lines, "@type {"+i.Type+"}")
	}
	if i.Override {
		lines = append(lines, "@override")
	}
	lines = append(lines, i.Extra...)
	return lines
}

// Render formats i as a block comment. Multi-line comments put indent before
// every continuation line so they line up under the opening delimiter.
func (i *Info) Render(indent string) string {
	lines := i.Lines()
	switch len(lines) {
	case 0:
		return ""
	case 1:
		return "/** " + lines[0] + " */"
	}

	var b strings.Builder
	b.WriteString("/**\n")
	for _, line := range lines {
		b.WriteString(indent)
		if line == "" {
			b.WriteString(" *\n")
			continue
		}
		b.WriteString(" * ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString(" */")
	return b.String()
}

// TypeName strips nullability and optionality markers from a simple type
// expression so it can be compared with a qualified class name.
func TypeName(typ string) string {
	typ = strings.TrimSpace(typ)
	typ = strings.TrimPrefix(typ, "{")
	typ = strings.TrimSuffix(typ, "}")
	typ = strings.TrimLeft(typ, "!?")
	typ = strings.TrimSuffix(typ, "=")
	return strings.TrimSpace(typ)
}
