package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/camp/internal/errors"
	"github.com/toyz/camp/internal/utils"
)

// DiagnosticReporter prints engine diagnostics and run failures
type DiagnosticReporter struct {
	out       io.Writer
	level     utils.DiagnosticLevel
	useColors bool
}

// NewDiagnosticReporter creates a reporter writing to the error output of
// diagnostics and honoring its level and color settings
func NewDiagnosticReporter(diagnostics *utils.DiagnosticSystem) *DiagnosticReporter {
	return &DiagnosticReporter{
		out:       diagnostics.ErrorOutput(),
		level:     diagnostics.Level(),
		useColors: diagnostics.UseColors(),
	}
}

func (r *DiagnosticReporter) verbose() bool {
	return r.level >= utils.DiagnosticVerbose
}

func (r *DiagnosticReporter) colored(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.useColors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// ReportDiagnostics prints every diagnostic as file:line:col: [KEY] message.
// Warnings are hidden below the warn level.
func (r *DiagnosticReporter) ReportDiagnostics(diagnostics []errors.Diagnostic) {
	for _, d := range diagnostics {
		if d.Type.Severity == errors.SeverityWarning && r.level < utils.DiagnosticWarn {
			continue
		}
		if r.level < utils.DiagnosticError {
			continue
		}

		fmt.Fprintf(r.out, "%s: ", d.Location)
		if d.Type.Severity == errors.SeverityError {
			r.colored(color.FgRed, color.Bold).Fprintf(r.out, "[%s]", d.Type.Key)
		} else {
			r.colored(color.FgYellow, color.Bold).Fprintf(r.out, "[%s]", d.Type.Key)
		}
		fmt.Fprintf(r.out, " %s\n", d.Message)

		if r.verbose() {
			fmt.Fprintf(r.out, "    %s %s\n", d.Type.Severity, d.Type.Code)
		}
	}
}

// ReportWarning prints a short warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	if r.level < utils.DiagnosticWarn {
		return
	}
	r.colored(color.FgYellow, color.Bold).Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints a run failure with its location, context and hints
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil || r.level < utils.DiagnosticError {
		return
	}
	fmt.Fprintf(r.out, "\nERROR: Rewrite Failed\n")
	fmt.Fprintf(r.out, "=====================\n\n")

	if campErr := findCampError(err); campErr != nil {
		r.reportCampError(campErr)
	} else {
		fmt.Fprintf(r.out, "Message: %s\n", err.Error())
	}
	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) reportCampError(err errors.CampError) {
	if multi, ok := err.(*errors.MultipleErrors); ok {
		title := fmt.Sprintf("%d errors reported", multi.Count())
		fmt.Fprintf(r.out, "%s\n", title)
		fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)))
		for _, e := range multi.UnwrapAll() {
			fmt.Fprintf(r.out, "  - %s\n", e.Error())
		}
		return
	}

	typeName := err.ErrorCode().String()
	fmt.Fprintf(r.out, "Type: %s\n", typeName)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(typeName)+6))
	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())

	if err.Unwrap() != nil {
		fmt.Fprintf(r.out, "Underlying cause: %s\n\n", err.Unwrap().Error())
	}

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc)
	}

	if ctx := err.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}
	if hints := err.Suggestions(); len(hints) > 0 {
		r.printSuggestions(hints)
	}
	if r.verbose() {
		r.printErrorChain(err.Unwrap())
	}
}

// printContext prints context keys in a stable order
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
	fmt.Fprintf(r.out, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, suggestion)
	}
	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) printErrorChain(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(r.out, "Error Chain:\n")
	for level := 1; err != nil; level++ {
		fmt.Fprintf(r.out, "    %d. %s\n", level, err.Error())
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
	}
	fmt.Fprintf(r.out, "\n")
}

// findCampError searches the wrap chain of err for a CampError
func findCampError(err error) errors.CampError {
	for err != nil {
		if campErr, ok := err.(errors.CampError); ok {
			return campErr
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil
		}
		err = unwrapper.Unwrap()
	}
	return nil
}

// GenerationSummary describes a finished run
type GenerationSummary struct {
	FilesScanned   int
	UnitsWritten   int
	UnitsUnchanged int
	Errors         int
	Warnings       int
	Modules        int
	Factories      int
	Traits         int
	Mixins         int
	CodeChanges    int
	GeneratedFiles []string
}

// Stats returns the summary as the table printed at the end of a run
func (s GenerationSummary) Stats() map[string]interface{} {
	return map[string]interface{}{
		"Files scanned":     s.FilesScanned,
		"Units written":     s.UnitsWritten,
		"Units unchanged":   s.UnitsUnchanged,
		"Errors":            s.Errors,
		"Warnings":          s.Warnings,
		"Modules":           s.Modules,
		"Resolution points": s.Factories,
		"Traits":            s.Traits,
		"Mixins":            s.Mixins,
		"Code changes":      s.CodeChanges,
	}
}
