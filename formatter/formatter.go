package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"expcollapse/internal/types"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warnStyle    = color.New(color.FgYellow, color.Bold)
	infoStyle    = color.New(color.FgGreen)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgBlue, color.Bold)
	messageStyle = color.New(color.FgWhite)
)

// GenerateFormattedDiagnostics renders diagnostics grouped by file, in
// file order and ascending line order within a file.
func GenerateFormattedDiagnostics(diagnostics []types.Diagnostic) string {
	byFile := make(map[string][]types.Diagnostic)
	for _, d := range diagnostics {
		byFile[d.Filename] = append(byFile[d.Filename], d)
	}

	files := make([]string, 0, len(byFile))
	for filename := range byFile {
		files = append(files, filename)
	}
	sort.Strings(files)

	var builder strings.Builder
	for _, filename := range files {
		ds := byFile[filename]
		sort.SliceStable(ds, func(i, j int) bool { return ds[i].Line < ds[j].Line })
		for _, d := range ds {
			builder.WriteString(formatDiagnostic(d))
		}
	}
	return builder.String()
}

func formatDiagnostic(d types.Diagnostic) string {
	var b strings.Builder
	b.WriteString(severityStyle(d.Severity).Sprint(d.Severity.String() + ": "))
	b.WriteString(ruleStyle.Sprint(d.Rule))
	b.WriteString("\n")
	b.WriteString(lineStyle.Sprint(" --> "))
	b.WriteString(fileStyle.Sprint(d.Filename))
	b.WriteString(lineStyle.Sprintf(":%d", d.Line))
	if d.Section != "" {
		b.WriteString(fmt.Sprintf(" [%s]", d.Section))
	}
	if d.Key != "" {
		b.WriteString(" " + d.Key)
	}
	b.WriteString("\n")
	b.WriteString(lineStyle.Sprint("  | "))
	b.WriteString(messageStyle.Sprint(d.Message))
	b.WriteString("\n\n")
	return b.String()
}

func severityStyle(s types.Severity) *color.Color {
	switch s {
	case types.SeverityError:
		return errorStyle
	case types.SeverityWarning:
		return warnStyle
	default:
		return infoStyle
	}
}
