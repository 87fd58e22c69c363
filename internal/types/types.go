package types

import "fmt"

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "?"
	}
}

// Diagnostic reports one noteworthy event from processing an annotation
// file: a per-key validation failure, a key that still carries duplicate
// outcomes, or a summary of a collapsed block.
type Diagnostic struct {
	Rule     string // e.g. "validation-failure", "duplicate-outcome", "collapsed"
	Severity Severity
	Filename string
	Section  string // test path the key belongs to, "/"-joined for subtests
	Key      string
	Line     int // 1-based line number of the key in the file
	Message  string
}

// Location renders the file/line/section coordinates of the diagnostic.
func (d Diagnostic) Location() string {
	loc := fmt.Sprintf("%s:%d", d.Filename, d.Line)
	if d.Section != "" {
		loc += " [" + d.Section + "]"
	}
	if d.Key != "" {
		loc += " " + d.Key
	}
	return loc
}
