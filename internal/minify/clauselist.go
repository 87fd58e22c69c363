package minify

import (
	"sort"

	"expcollapse/internal/cond"
	"expcollapse/internal/registry"
)

// Clause is one (condition, outcome) entry in a decision list.
type Clause struct {
	Cond    cond.Expr
	Text    string // source text of the condition; empty for synthesized clauses
	Outcome string
}

// ClauseList is an ordered sequence of clauses plus an optional default
// outcome. Evaluation scans clauses in order and returns the outcome of
// the first whose condition matches; if none match, the default applies.
type ClauseList struct {
	Clauses    []Clause
	Default    string
	HasDefault bool
}

// Evaluate returns the outcome for the given point. ok is false when no
// clause matches and the list has no default.
func (l ClauseList) Evaluate(p registry.Point) (outcome string, ok bool) {
	outcome, _, ok = l.evaluateTrace(p)
	return outcome, ok
}

// evaluateTrace additionally reports which clause decided the outcome:
// the clause index, or -1 when the default applied.
func (l ClauseList) evaluateTrace(p registry.Point) (outcome string, clause int, ok bool) {
	for i, c := range l.Clauses {
		if cond.Eval(c.Cond, p) {
			return c.Outcome, i, true
		}
	}
	if l.HasDefault {
		return l.Default, -1, true
	}
	return "", -1, false
}

// Len returns the clause count, counting the default line as one.
func (l ClauseList) Len() int {
	n := len(l.Clauses)
	if l.HasDefault {
		n++
	}
	return n
}

// Dims returns the sorted set of dimension names referenced anywhere in
// the list. This bounds the space the minimizer enumerates.
func (l ClauseList) Dims() []string {
	set := make(map[string]bool)
	for _, c := range l.Clauses {
		for _, name := range cond.Dims(c.Cond) {
			set[name] = true
		}
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Outcomes returns the distinct outcome tokens across clauses and default,
// in first-appearance order.
func (l ClauseList) Outcomes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range l.Clauses {
		if !seen[c.Outcome] {
			seen[c.Outcome] = true
			out = append(out, c.Outcome)
		}
	}
	if l.HasDefault && !seen[l.Default] {
		out = append(out, l.Default)
	}
	return out
}
