package manifest

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"expcollapse/internal/minify"
	"expcollapse/internal/registry"
	"expcollapse/internal/types"
)

// Result is the outcome of transforming one annotation file.
type Result struct {
	Content     string
	Changed     bool
	Keys        int // conditional blocks considered
	Collapsed   int // blocks actually rewritten
	Diagnostics []types.Diagnostic
}

// Transform reads one file's full content, minimizes every conditional
// block independently, and reassembles the output preserving every byte
// outside replaced blocks. A ParseError anywhere is fatal and yields no
// output. A per-key validation failure is recoverable: that key keeps its
// original lines and a diagnostic is recorded.
func Transform(path, content string, reg *registry.Registry, logger *zap.Logger) (*Result, error) {
	f, err := Parse(path, content, reg)
	if err != nil {
		return nil, err
	}

	result := &Result{Keys: len(f.Blocks)}

	// Splice from the bottom up so earlier block line ranges stay valid.
	for i := len(f.Blocks) - 1; i >= 0; i-- {
		b := f.Blocks[i]
		res, err := minify.Minimize(b.List, reg)

		var vErr *minify.ValidationError
		if errors.As(err, &vErr) {
			result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
				Rule:     "validation-failure",
				Severity: types.SeverityWarning,
				Filename: path,
				Section:  b.Section,
				Key:      b.Key,
				Line:     b.KeyLine + 1,
				Message:  vErr.Error(),
			})
			if logger != nil {
				logger.Warn("keeping original clause list",
					zap.String("file", path),
					zap.String("section", b.Section),
					zap.String("key", b.Key),
					zap.Error(vErr))
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("minimizing %s [%s] %s: %w", path, b.Section, b.Key, err)
		}

		final := b.List
		if res.Changed {
			final = res.List
			rendered := RenderBlock(res.List, reg, b.Indent)
			f.Lines = append(f.Lines[:b.Start], append(rendered, f.Lines[b.End:]...)...)
			result.Collapsed++
			result.Changed = true
			result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
				Rule:     "collapsed",
				Severity: types.SeverityInfo,
				Filename: path,
				Section:  b.Section,
				Key:      b.Key,
				Line:     b.KeyLine + 1,
				Message: fmt.Sprintf("collapsed %d clauses to %d over %d configurations",
					b.List.Len(), res.List.Len(), res.Points),
			})
			if logger != nil {
				logger.Debug("collapsed clause list",
					zap.String("file", path),
					zap.String("section", b.Section),
					zap.String("key", b.Key),
					zap.Int("before", b.List.Len()),
					zap.Int("after", res.List.Len()),
					zap.Int("points", res.Points))
			}
		}

		if dup := duplicateOutcome(final); dup != "" {
			result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
				Rule:     "duplicate-outcome",
				Severity: types.SeverityWarning,
				Filename: path,
				Section:  b.Section,
				Key:      b.Key,
				Line:     b.KeyLine + 1,
				Message:  fmt.Sprintf("key still carries multiple clauses with outcome %q", dup),
			})
		}
	}

	result.Content = f.Content()

	// The reassembled file must parse in the same dialect; anything else is
	// a bug, and the broken content must never reach the caller.
	if _, err := Parse(path, result.Content, reg); err != nil {
		return nil, fmt.Errorf("reassembled output failed to parse: %w", err)
	}
	return result, nil
}

// duplicateOutcome returns an outcome token shared by two or more clauses
// of the final list, or "" when all clause outcomes are distinct. The
// minimizer gives every outcome class a single clause, so a surviving
// duplicate means the key resisted collapsing.
func duplicateOutcome(list minify.ClauseList) string {
	seen := make(map[string]bool, len(list.Clauses))
	for _, c := range list.Clauses {
		if seen[c.Outcome] {
			return c.Outcome
		}
		seen[c.Outcome] = true
	}
	return ""
}
