package compiler

import (
	"github.com/toyz/camp/internal/errors"
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/registry"
)

// Context is the state of one compilation run. It is created per run and
// passed explicitly to every pass.
type Context struct {
	Registry    registry.Registry
	Diagnostics *errors.Collector

	changes  int
	counters map[string]int
	detached []*jsast.Node
}

// NewContext creates an empty run context
func NewContext() *Context {
	return &Context{
		Registry:    registry.New(),
		Diagnostics: errors.NewCollector(),
		counters:    make(map[string]int),
	}
}

// Report records a diagnostic at n
func (c *Context) Report(n *jsast.Node, t errors.DiagnosticType, args ...interface{}) {
	c.Diagnostics.Report(Location(n), t, args...)
}

// ReportCodeChange notes that a pass edited the tree
func (c *Context) ReportCodeChange() {
	c.changes++
}

// Changes returns the number of edits reported so far
func (c *Context) Changes() int {
	return c.changes
}

// NextID returns the next value of the named counter, starting at 0. Ids
// are unique per counter for the whole run.
func (c *Context) NextID(counter string) int {
	id := c.counters[counter]
	c.counters[counter] = id + 1
	return id
}

// ScheduleDetach marks a statement to be removed once every pass ran
func (c *Context) ScheduleDetach(n *jsast.Node) {
	for _, d := range c.detached {
		if d == n {
			return
		}
	}
	c.detached = append(c.detached, n)
}

func (c *Context) detachScheduled() {
	for _, n := range c.detached {
		if n.IsAttached() {
			n.Detach()
			c.ReportCodeChange()
		}
	}
	c.detached = nil
}

// Location converts a node position into a diagnostic location
func Location(n *jsast.Node) errors.SourceLocation {
	if n == nil {
		return errors.SourceLocation{}
	}
	for c := n; c != nil; c = c.Parent() {
		if c.Pos.IsValid() {
			return errors.SourceLocation{File: c.Pos.File, Line: c.Pos.Line, Column: c.Pos.Column}
		}
	}
	return errors.SourceLocation{File: n.Pos.File}
}
