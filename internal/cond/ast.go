package cond

import "sort"

// Expr represents a boolean condition over configuration points.
type Expr interface {
	isExpr()
	String() string
}

// CompareExpr tests one dimension for equality against a domain value.
type CompareExpr struct {
	Dim   string
	Value string
}

func (CompareExpr) isExpr() {}
func (e CompareExpr) String() string {
	return e.Dim + " == " + `"` + e.Value + `"`
}

// AndExpr is the conjunction of two conditions.
type AndExpr struct {
	Left  Expr
	Right Expr
}

func (AndExpr) isExpr() {}
func (e AndExpr) String() string {
	return "(" + e.Left.String() + " and " + e.Right.String() + ")"
}

// OrExpr is the disjunction of two conditions.
type OrExpr struct {
	Left  Expr
	Right Expr
}

func (OrExpr) isExpr() {}
func (e OrExpr) String() string {
	return "(" + e.Left.String() + " or " + e.Right.String() + ")"
}

// NotExpr negates a condition.
type NotExpr struct {
	Operand Expr
}

func (NotExpr) isExpr() {}
func (e NotExpr) String() string {
	return "(not " + e.Operand.String() + ")"
}

// TrueExpr matches every configuration point.
type TrueExpr struct{}

func (TrueExpr) isExpr() {}
func (TrueExpr) String() string {
	return "true"
}

// Helper functions to construct AST nodes

// Compare creates an equality test of a dimension against a value.
func Compare(dim, value string) Expr {
	return CompareExpr{Dim: dim, Value: value}
}

// And creates a conjunction. With no operands it yields True.
func And(exprs ...Expr) Expr {
	if len(exprs) == 0 {
		return TrueExpr{}
	}
	result := exprs[0]
	for _, e := range exprs[1:] {
		result = AndExpr{Left: result, Right: e}
	}
	return result
}

// Or creates a disjunction of one or more conditions.
func Or(exprs ...Expr) Expr {
	result := exprs[0]
	for _, e := range exprs[1:] {
		result = OrExpr{Left: result, Right: e}
	}
	return result
}

// Not creates a negation.
func Not(e Expr) Expr {
	return NotExpr{Operand: e}
}

// True creates the always-matching condition.
func True() Expr {
	return TrueExpr{}
}

// Dims returns the sorted set of dimension names referenced by the condition.
func Dims(e Expr) []string {
	set := make(map[string]bool)
	collectDims(e, set)
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectDims(e Expr, set map[string]bool) {
	switch e := e.(type) {
	case CompareExpr:
		set[e.Dim] = true
	case AndExpr:
		collectDims(e.Left, set)
		collectDims(e.Right, set)
	case OrExpr:
		collectDims(e.Left, set)
		collectDims(e.Right, set)
	case NotExpr:
		collectDims(e.Operand, set)
	case TrueExpr:
	}
}
