package cond

import (
	"fmt"

	"expcollapse/internal/registry"
)

// Eval decides whether the condition matches the given point. It is a pure
// total function: conditions only reference dimensions the point covers,
// so a missing dimension is an internal invariant failure, not an error.
func Eval(e Expr, p registry.Point) bool {
	switch e := e.(type) {
	case CompareExpr:
		return p.Value(e.Dim) == e.Value
	case AndExpr:
		return Eval(e.Left, p) && Eval(e.Right, p)
	case OrExpr:
		return Eval(e.Left, p) || Eval(e.Right, p)
	case NotExpr:
		return !Eval(e.Operand, p)
	case TrueExpr:
		return true
	default:
		panic(fmt.Sprintf("cond: unknown expression type %T", e))
	}
}
