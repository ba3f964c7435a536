package errors

import (
	"fmt"
	"strings"
)

// CampError is implemented by every error camp returns to its caller
type CampError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode classifies an error or a diagnostic
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	SyntaxErrorCode
	ConfigurationErrorCode
	FileSystemErrorCode

	// Reported by the passes through diagnostics
	StructuralErrorCode
	SemanticErrorCode
	ResolutionErrorCode

	GenerationErrorCode
)

var codeNames = map[ErrorCode]string{
	SyntaxErrorCode:        "SyntaxError",
	ConfigurationErrorCode: "ConfigurationError",
	FileSystemErrorCode:    "FileSystemError",
	StructuralErrorCode:    "StructuralError",
	SemanticErrorCode:      "SemanticError",
	ResolutionErrorCode:    "ResolutionError",
	GenerationErrorCode:    "GenerationError",
}

func (e ErrorCode) String() string {
	if name, ok := codeNames[e]; ok {
		return name
	}
	return "UnknownError"
}

// SourceLocation is a 1-based position in an input file. Line and Column
// are zero when unknown.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return "unknown location"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty reports whether the location names no file
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError is the CampError every constructor in this package returns.
// Error prints the location and message only; the cause stays reachable
// through Unwrap.
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

func (e *BaseError) Error() string {
	if e.Loc.IsEmpty() {
		return e.Message
	}
	return e.Loc.String() + ": " + e.Message
}

func (e *BaseError) ErrorCode() ErrorCode     { return e.Code }
func (e *BaseError) Location() SourceLocation { return e.Loc }
func (e *BaseError) Suggestions() []string    { return e.Hints }
func (e *BaseError) Unwrap() error            { return e.Cause }

// Context returns the key/value details attached with WithContext
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return map[string]interface{}{}
	}
	return e.ContextData
}

// WithLocation sets where the error happened
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithContext attaches a detail printed by the reporter
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion adds a hint on how to fix the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an error with message whose cause is err
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{Code: code, Message: message, Cause: cause}
}

// MultipleErrors carries every error-level diagnostic of a run. Its code,
// location and cause are those of the first error.
type MultipleErrors struct {
	Errors []CampError
}

func (e *MultipleErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}
	lines := make([]string, 0, len(e.Errors)+1)
	lines = append(lines, fmt.Sprintf("%d errors:", len(e.Errors)))
	for _, err := range e.Errors {
		lines = append(lines, "  "+err.Error())
	}
	return strings.Join(lines, "\n")
}

func (e *MultipleErrors) first() CampError {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0]
}

func (e *MultipleErrors) ErrorCode() ErrorCode {
	if first := e.first(); first != nil {
		return first.ErrorCode()
	}
	return UnknownErrorCode
}

func (e *MultipleErrors) Location() SourceLocation {
	if first := e.first(); first != nil {
		return first.Location()
	}
	return SourceLocation{}
}

func (e *MultipleErrors) Unwrap() error {
	if first := e.first(); first != nil {
		return first
	}
	return nil
}

// Context merges the details of all errors, keyed by error index
func (e *MultipleErrors) Context() map[string]interface{} {
	merged := make(map[string]interface{})
	for i, err := range e.Errors {
		for k, v := range err.Context() {
			merged[fmt.Sprintf("error_%d_%s", i, k)] = v
		}
	}
	return merged
}

func (e *MultipleErrors) Suggestions() []string {
	var hints []string
	for _, err := range e.Errors {
		hints = append(hints, err.Suggestions()...)
	}
	return hints
}

// UnwrapAll returns the collected errors as plain errors
func (e *MultipleErrors) UnwrapAll() []error {
	all := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		all[i] = err
	}
	return all
}

func (e *MultipleErrors) Add(err CampError) {
	e.Errors = append(e.Errors, err)
}

func (e *MultipleErrors) Count() int {
	return len(e.Errors)
}
