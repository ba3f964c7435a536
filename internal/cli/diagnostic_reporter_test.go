package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/camp/internal/errors"
	"github.com/toyz/camp/internal/utils"
)

var (
	testError   = errors.NewErrorType("JSC_TEST_ERROR", errors.SemanticErrorCode, "Bad %s.")
	testWarning = errors.NewWarningType("JSC_TEST_WARNING", errors.ResolutionErrorCode, "Odd %s.")
)

func reporterAt(level utils.DiagnosticLevel) (*DiagnosticReporter, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	ds := utils.NewDiagnosticSystem(level)
	ds.SetOutput(&out, &errOut)
	return NewDiagnosticReporter(ds), &errOut
}

func sampleDiagnostics() []errors.Diagnostic {
	c := errors.NewCollector()
	c.Report(errors.SourceLocation{File: "a.js", Line: 3, Column: 5}, testError, "thing")
	c.Report(errors.SourceLocation{File: "b.js", Line: 1, Column: 1}, testWarning, "other")
	return c.Diagnostics()
}

func TestDiagnosticReporter_ReportDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		level    utils.DiagnosticLevel
		contains []string
		absent   []string
	}{
		{
			name:     "info shows both",
			level:    utils.DiagnosticInfo,
			contains: []string{"a.js:3:5: [JSC_TEST_ERROR] Bad thing.\n", "b.js:1:1: [JSC_TEST_WARNING] Odd other.\n"},
			absent:   []string{"SemanticError"},
		},
		{
			name:     "quiet hides warnings",
			level:    utils.DiagnosticError,
			contains: []string{"[JSC_TEST_ERROR]"},
			absent:   []string{"JSC_TEST_WARNING"},
		},
		{
			name:   "silent hides everything",
			level:  utils.DiagnosticSilent,
			absent: []string{"JSC_TEST_ERROR", "JSC_TEST_WARNING"},
		},
		{
			name:     "verbose adds severity and code",
			level:    utils.DiagnosticVerbose,
			contains: []string{"error SemanticError", "warning ResolutionError"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter, out := reporterAt(tt.level)
			reporter.ReportDiagnostics(sampleDiagnostics())
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestDiagnosticReporter_ReportWarning(t *testing.T) {
	reporter, out := reporterAt(utils.DiagnosticInfo)
	reporter.ReportWarning("This is a test warning")
	assert.Equal(t, "! This is a test warning\n", out.String())

	quiet, quietOut := reporterAt(utils.DiagnosticError)
	quiet.ReportWarning("hidden")
	assert.Empty(t, quietOut.String())
}

func TestDiagnosticReporter_ReportError(t *testing.T) {
	t.Run("camp error", func(t *testing.T) {
		reporter, out := reporterAt(utils.DiagnosticInfo)
		err := errors.Wrap(errors.FileSystemErrorCode, "failed to write file 'out/a.js'", fmt.Errorf("disk full")).
			WithLocation(errors.SourceLocation{File: "a.js", Line: 2}).
			WithContext("output_path", "out/a.js").
			WithSuggestion("free some space")
		reporter.ReportError(fmt.Errorf("run: %w", err))

		output := out.String()
		assert.Contains(t, output, "ERROR: Rewrite Failed")
		assert.Contains(t, output, "Type: FileSystemError")
		assert.Contains(t, output, "Message: a.js:2: failed to write file 'out/a.js'")
		assert.Contains(t, output, "Underlying cause: disk full")
		assert.Contains(t, output, "Location: a.js:2")
		assert.Contains(t, output, "Output Path: out/a.js")
		assert.Contains(t, output, "1. free some space")
		assert.NotContains(t, output, "Error Chain:")
	})

	t.Run("multiple errors", func(t *testing.T) {
		reporter, out := reporterAt(utils.DiagnosticInfo)
		c := errors.NewCollector()
		c.Report(errors.SourceLocation{File: "a.js", Line: 1, Column: 1}, testError, "one")
		c.Report(errors.SourceLocation{File: "a.js", Line: 2, Column: 1}, testError, "two")
		reporter.ReportError(c.Errors())

		output := out.String()
		assert.Contains(t, output, "2 errors reported")
		assert.Contains(t, output, "  - a.js:1:1: Bad one.")
		assert.Contains(t, output, "  - a.js:2:1: Bad two.")
	})

	t.Run("plain error", func(t *testing.T) {
		reporter, out := reporterAt(utils.DiagnosticInfo)
		reporter.ReportError(fmt.Errorf("boom"))
		assert.Contains(t, out.String(), "Message: boom")
	})

	t.Run("verbose chain", func(t *testing.T) {
		reporter, out := reporterAt(utils.DiagnosticVerbose)
		reporter.ReportError(errors.Wrap(errors.SyntaxErrorCode, "failed to parse a.js", fmt.Errorf("outer: %w", fmt.Errorf("inner"))))
		assert.Contains(t, out.String(), "Error Chain:\n    1. outer: inner\n    2. inner\n")
	})
}

func TestGenerationSummary_Stats(t *testing.T) {
	stats := GenerationSummary{FilesScanned: 3, UnitsWritten: 2, Traits: 1}.Stats()
	assert.Equal(t, 3, stats["Files scanned"])
	assert.Equal(t, 2, stats["Units written"])
	assert.Equal(t, 1, stats["Traits"])
	assert.Equal(t, 0, stats["Mixins"])
}
