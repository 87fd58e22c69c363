package manifest

import (
	"fmt"

	"expcollapse/internal/cond"
	"expcollapse/internal/minify"
	"expcollapse/internal/registry"
)

// Operator precedence in the condition grammar, loosest first. Used to
// decide where rendered subexpressions need parentheses.
const (
	precNone = iota
	precOr
	precAnd
	precUnary
)

// Render renders a condition back into the annotation dialect. Boolean
// dimensions are rendered bare (or "not"-prefixed), numeric domain values
// unquoted, and comparisons are parenthesized whenever they are combined
// with other terms, matching the corpus convention.
func Render(e cond.Expr, reg *registry.Registry) string {
	return render(e, reg, precNone)
}

func render(e cond.Expr, reg *registry.Registry, ctx int) string {
	switch e := e.(type) {
	case cond.CompareExpr:
		if d, ok := reg.Lookup(e.Dim); ok && d.Boolean {
			if e.Value == "true" {
				return e.Dim
			}
			return "not " + e.Dim
		}
		s := e.Dim + " == " + renderValue(e.Value)
		if ctx != precNone {
			s = "(" + s + ")"
		}
		return s

	case cond.AndExpr:
		s := render(e.Left, reg, precAnd) + " and " + render(e.Right, reg, precAnd)
		if ctx > precAnd {
			s = "(" + s + ")"
		}
		return s

	case cond.OrExpr:
		s := render(e.Left, reg, precOr) + " or " + render(e.Right, reg, precOr)
		if ctx > precOr {
			s = "(" + s + ")"
		}
		return s

	case cond.NotExpr:
		return "not " + render(e.Operand, reg, precUnary)

	case cond.TrueExpr:
		return "true"

	default:
		panic(fmt.Sprintf("manifest: unknown expression type %T", e))
	}
}

// renderValue quotes a domain value unless it is a bare integer, which the
// dialect writes unquoted (bits == 64).
func renderValue(v string) string {
	if v != "" && allDigits(v) {
		return v
	}
	return `"` + v + `"`
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// RenderClause renders one clause as an "if condition: outcome" line,
// without indentation.
func RenderClause(c minify.Clause, reg *registry.Registry) string {
	return "if " + Render(c.Cond, reg) + ": " + c.Outcome
}

// RenderBlock renders a clause list as the value lines of a key block,
// each prefixed with the given indentation.
func RenderBlock(list minify.ClauseList, reg *registry.Registry, indent string) []string {
	lines := make([]string, 0, list.Len())
	for _, c := range list.Clauses {
		lines = append(lines, indent+RenderClause(c, reg))
	}
	if list.HasDefault {
		lines = append(lines, indent+list.Default)
	}
	return lines
}
