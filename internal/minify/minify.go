package minify

import (
	"fmt"
	"sort"

	"expcollapse/internal/cond"
	"expcollapse/internal/registry"
)

// Result reports the outcome of minimizing one clause list.
type Result struct {
	List    ClauseList
	Changed bool
	Points  int // size of the enumerated configuration space
}

// ValidationError reports that a synthesized clause list failed the
// re-evaluation check against the original. The caller keeps the original
// list; the error exists for diagnostics only.
type ValidationError struct {
	Point registry.Point
	Want  string
	Got   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("synthesized list disagrees with original at {%s}: want %q, got %q",
		e.Point.Key(), e.Want, e.Got)
}

// outcomeKey identifies one outcome class. Matched distinguishes real
// outcomes from the pseudo-class of points no clause or default covers;
// the two are never merged.
type outcomeKey struct {
	value   string
	matched bool
}

// class is the set of enumerated points sharing one outcome.
type class struct {
	key         outcomeKey
	points      []int // indices into the enumerated point slice
	firstClause int   // lowest original clause index deciding any point; len(clauses) for default-only classes
}

// Minimize computes the smallest clause list behaviorally identical to the
// original over its enumerated configuration space. The original is
// returned unchanged when it is already minimal (ties keep the original to
// avoid diff churn), when the space is empty, or when validation fails.
func Minimize(list ClauseList, reg *registry.Registry) (Result, error) {
	if len(list.Clauses) == 0 {
		return Result{List: list}, nil
	}

	dims := reg.SortNames(list.Dims())
	points := reg.Enumerate(dims)
	if len(points) == 0 {
		return Result{List: list}, nil
	}

	// Materialize the truth table and partition points by outcome.
	classes := partition(list, points)

	// Select the default class and synthesize covering conditions for the
	// rest.
	def, defOK := selectDefault(list, classes)

	synth := ClauseList{}
	if defOK {
		synth.Default = def
		synth.HasDefault = true
	}
	for _, cl := range orderedClasses(classes, def, defOK) {
		cubes := coverClass(cl, points, dims)
		exprs := make([]cond.Expr, len(cubes))
		for i, cb := range cubes {
			exprs[i] = cb.expr(dims)
		}
		synth.Clauses = append(synth.Clauses, Clause{
			Cond:    cond.Or(exprs...),
			Outcome: cl.key.value,
		})
	}

	// Never emit an unverified result.
	for _, p := range points {
		want, wantOK := list.Evaluate(p)
		got, gotOK := synth.Evaluate(p)
		if want != got || wantOK != gotOK {
			return Result{List: list, Points: len(points)}, &ValidationError{
				Point: p,
				Want:  describeOutcome(want, wantOK),
				Got:   describeOutcome(got, gotOK),
			}
		}
	}

	if synth.Len() >= list.Len() {
		return Result{List: list, Points: len(points)}, nil
	}
	return Result{List: synth, Changed: true, Points: len(points)}, nil
}

func describeOutcome(value string, ok bool) string {
	if !ok {
		return "<unmatched>"
	}
	return value
}

// partition groups enumerated points into outcome classes, in first
// appearance order over the deterministic point enumeration.
func partition(list ClauseList, points []registry.Point) []*class {
	index := make(map[outcomeKey]*class)
	var classes []*class
	for i, p := range points {
		value, clauseIdx, ok := list.evaluateTrace(p)
		key := outcomeKey{value: value, matched: ok}
		if !ok {
			key.value = ""
		}
		cl := index[key]
		if cl == nil {
			cl = &class{key: key, firstClause: len(list.Clauses)}
			index[key] = cl
			classes = append(classes, cl)
		}
		cl.points = append(cl.points, i)
		if ok && clauseIdx >= 0 && clauseIdx < cl.firstClause {
			cl.firstClause = clauseIdx
		}
	}
	return classes
}

// selectDefault picks the outcome of the new default line, if any.
//
// When the original list has no default, points it leaves unmatched must
// stay unmatched: an explicit default would capture them and change
// semantics. Only when every point is matched may the largest class be
// promoted to a default. With an original default present, the largest
// class wins; ties prefer the original default's outcome, then the
// lexicographically smallest token, so output is reproducible.
func selectDefault(list ClauseList, classes []*class) (string, bool) {
	if !list.HasDefault {
		for _, cl := range classes {
			if !cl.key.matched {
				return "", false
			}
		}
	}

	best := ""
	bestSize := -1
	for _, cl := range classes {
		switch {
		case len(cl.points) > bestSize:
			best = cl.key.value
			bestSize = len(cl.points)
		case len(cl.points) == bestSize:
			if list.HasDefault && cl.key.value == list.Default && best != list.Default {
				best = cl.key.value
			} else if (!list.HasDefault || best != list.Default) && cl.key.value < best {
				best = cl.key.value
			}
		}
	}
	return best, true
}

// orderedClasses returns the non-default classes in emission order: the
// position of each class's earliest deciding clause in the original list,
// with the outcome token as tie-break. Synthesized conditions are pairwise
// disjoint over the space, so order does not affect semantics, only the
// stability of the output.
func orderedClasses(classes []*class, def string, defOK bool) []*class {
	out := make([]*class, 0, len(classes))
	for _, cl := range classes {
		if !cl.key.matched {
			continue // unmatched points are represented by the absence of a default
		}
		if defOK && cl.key.value == def {
			continue
		}
		out = append(out, cl)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].firstClause != out[j].firstClause {
			return out[i].firstClause < out[j].firstClause
		}
		return out[i].key.value < out[j].key.value
	})
	return out
}
