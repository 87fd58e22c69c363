// Package minify implements the decision-list minimizer.
//
// A clause list maps build/runtime configurations to an expected outcome:
// ordered (condition, outcome) clauses evaluated first-match-wins, plus an
// optional default. Minimization enumerates the configuration space the
// list is actually sensitive to, computes the outcome at every point, and
// synthesizes the smallest ordered list that evaluates identically
// everywhere. A synthesized list is only accepted after it has been
// re-evaluated against the original over the full space; on any mismatch
// the original is returned unchanged.
package minify
