package errors

import (
	"fmt"
	"sync"
)

// Severity of a reported diagnostic
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// DiagnosticType declares one kind of problem a pass can report. Format is a
// fmt format string filled from the arguments given at the report site.
type DiagnosticType struct {
	Key      string
	Severity Severity
	Code     ErrorCode
	Format   string
}

// NewErrorType declares an error-level diagnostic.
func NewErrorType(key string, code ErrorCode, format string) DiagnosticType {
	return DiagnosticType{Key: key, Severity: SeverityError, Code: code, Format: format}
}

// NewWarningType declares a warning-level diagnostic.
func NewWarningType(key string, code ErrorCode, format string) DiagnosticType {
	return DiagnosticType{Key: key, Severity: SeverityWarning, Code: code, Format: format}
}

// Render formats the message for args
func (t DiagnosticType) Render(args ...interface{}) string {
	if len(args) == 0 {
		return t.Format
	}
	return fmt.Sprintf(t.Format, args...)
}

// Diagnostic is one reported problem
type Diagnostic struct {
	Type     DiagnosticType
	Location SourceLocation
	Message  string
}

// String returns the diagnostic the way it is printed to users
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: [%s] %s", d.Location, d.Type.Key, d.Message)
}

// Err converts the diagnostic into a BaseError
func (d Diagnostic) Err() *BaseError {
	return New(d.Type.Code, d.Message).
		WithLocation(d.Location).
		WithContext("diagnostic", d.Type.Key).
		WithContext("severity", d.Type.Severity.String())
}

// Reporter is the sink passes report diagnostics to
type Reporter interface {
	Report(loc SourceLocation, t DiagnosticType, args ...interface{})
}

// Collector accumulates diagnostics in report order. It is safe for
// concurrent use.
type Collector struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Report implements Reporter
func (c *Collector) Report(loc SourceLocation, t DiagnosticType, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Type:     t,
		Location: loc,
		Message:  t.Render(args...),
	})
}

// Merge appends every diagnostic of other, preserving its order
func (c *Collector) Merge(other *Collector) {
	if other == nil || other == c {
		return
	}
	items := other.Diagnostics()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = append(c.diagnostics, items...)
}

// Diagnostics returns a snapshot of the collected diagnostics
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.diagnostics...)
}

// ErrorCount returns the number of error-level diagnostics
func (c *Collector) ErrorCount() int {
	return c.count(SeverityError)
}

// WarningCount returns the number of warning-level diagnostics
func (c *Collector) WarningCount() int {
	return c.count(SeverityWarning)
}

func (c *Collector) count(s Severity) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.diagnostics {
		if d.Type.Severity == s {
			n++
		}
	}
	return n
}

// HasErrors returns true if any error-level diagnostic was reported
func (c *Collector) HasErrors() bool {
	return c.ErrorCount() > 0
}

// Keys returns the diagnostic keys in report order
func (c *Collector) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.diagnostics))
	for _, d := range c.diagnostics {
		keys = append(keys, d.Type.Key)
	}
	return keys
}

// Errors returns the error-level diagnostics as a MultipleErrors, or nil
// when there are none
func (c *Collector) Errors() *MultipleErrors {
	var multiple *MultipleErrors
	for _, d := range c.Diagnostics() {
		if d.Type.Severity == SeverityError {
			AddToMultiple(&multiple, d.Err())
		}
	}
	return multiple
}
