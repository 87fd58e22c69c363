package formatter

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"expcollapse/internal/types"
)

func TestGenerateFormattedDiagnostics(t *testing.T) {
	color.NoColor = true

	diagnostics := []types.Diagnostic{
		{
			Rule:     "collapsed",
			Severity: types.SeverityInfo,
			Filename: "b.ini",
			Section:  "canvas.html",
			Key:      "expected",
			Line:     12,
			Message:  "collapsed 4 clauses to 2 over 8 configurations",
		},
		{
			Rule:     "validation-failure",
			Severity: types.SeverityWarning,
			Filename: "a.ini",
			Section:  "video.html",
			Key:      "expected",
			Line:     3,
			Message:  "keeping original clause list",
		},
		{
			Rule:     "duplicate-outcome",
			Severity: types.SeverityWarning,
			Filename: "b.ini",
			Section:  "canvas.html",
			Key:      "expected",
			Line:     4,
			Message:  "key still carries multiple clauses with outcome \"FAIL\"",
		},
	}

	out := GenerateFormattedDiagnostics(diagnostics)

	// files in path order, lines ascending within a file
	assert.Regexp(t, `(?s)a\.ini.*b\.ini:4.*b\.ini:12`, out)
	assert.Contains(t, out, "warning: validation-failure")
	assert.Contains(t, out, " --> a.ini:3 [video.html] expected")
	assert.Contains(t, out, "info: collapsed")
	assert.Contains(t, out, "  | collapsed 4 clauses to 2 over 8 configurations")
}

func TestGenerateFormattedDiagnosticsEmpty(t *testing.T) {
	assert.Empty(t, GenerateFormattedDiagnostics(nil))
}
