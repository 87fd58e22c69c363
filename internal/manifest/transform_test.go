package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"expcollapse/internal/cond"
	"expcollapse/internal/minify"
	"expcollapse/internal/registry"
	"expcollapse/internal/types"
)

func TestTransformCollapsesBlocks(t *testing.T) {
	t.Parallel()
	reg := registry.Default()
	logger := zaptest.NewLogger(t)

	input := strings.Join([]string{
		"# imported expectations, do not edit by hand",
		"[canvas.html]",
		"  [sub-pixel-rendering]",
		"    expected:",
		"      if (os == \"win\") and (bits == 32): FAIL",
		"      if (os == \"win\") and (bits == 64): FAIL",
		"      if os == \"linux\": PASS",
		"      PASS",
		"",
		"  [antialiasing]",
		"    expected: FAIL",
		"",
	}, "\n")

	want := strings.Join([]string{
		"# imported expectations, do not edit by hand",
		"[canvas.html]",
		"  [sub-pixel-rendering]",
		"    expected:",
		"      if os == \"win\": FAIL",
		"      PASS",
		"",
		"  [antialiasing]",
		"    expected: FAIL",
		"",
	}, "\n")

	res, err := Transform("canvas.ini", input, reg, logger)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, 1, res.Keys)
	assert.Equal(t, 1, res.Collapsed)
	assert.Equal(t, want, res.Content)

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, "collapsed", d.Rule)
	assert.Equal(t, types.SeverityInfo, d.Severity)
	assert.Equal(t, "canvas.html/sub-pixel-rendering", d.Section)
	assert.Equal(t, "expected", d.Key)
	assert.Equal(t, 4, d.Line)
}

func TestTransformMinimalInputUntouched(t *testing.T) {
	t.Parallel()
	reg := registry.Default()

	input := strings.Join([]string{
		"[a.html]",
		"  expected:",
		"    if os == \"win\": FAIL",
		"    PASS",
		"",
	}, "\n")

	res, err := Transform("a.ini", input, reg, nil)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, 0, res.Collapsed)
	assert.Equal(t, input, res.Content, "unchanged files must be byte-identical")
}

func TestTransformIdempotent(t *testing.T) {
	t.Parallel()
	reg := registry.Default()

	input := strings.Join([]string{
		"[a.html]",
		"  expected:",
		"    if (os == \"win\") and debug: FAIL",
		"    if (os == \"win\") and not debug: FAIL",
		"    if os == \"linux\": PASS",
		"",
	}, "\n")

	first, err := Transform("a.ini", input, reg, nil)
	require.NoError(t, err)
	require.True(t, first.Changed)

	second, err := Transform("a.ini", first.Content, reg, nil)
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Equal(t, first.Content, second.Content)
}

func TestTransformMultipleBlocksBottomUp(t *testing.T) {
	t.Parallel()
	reg := registry.Default()

	// Both blocks shrink. The first block's replacement must not shift the
	// second block's lines out from under it.
	input := strings.Join([]string{
		"[a.html]",
		"  expected:",
		"    if (os == \"win\") and debug: FAIL",
		"    if (os == \"win\") and not debug: FAIL",
		"[b.html]",
		"  expected:",
		"    if bits == 32: TIMEOUT",
		"    if bits == 64: TIMEOUT",
		"",
	}, "\n")

	want := strings.Join([]string{
		"[a.html]",
		"  expected:",
		"    if os == \"win\": FAIL",
		"[b.html]",
		"  expected:",
		"    TIMEOUT",
		"",
	}, "\n")

	res, err := Transform("ab.ini", input, reg, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Keys)
	assert.Equal(t, 2, res.Collapsed)
	assert.Equal(t, want, res.Content)
}

func TestTransformFatalParseError(t *testing.T) {
	t.Parallel()
	reg := registry.Default()

	input := "[a.html]\n  expected:\n    if cpu == \"arm\": FAIL\n"
	res, err := Transform("a.ini", input, reg, nil)
	assert.Nil(t, res, "no partial output on a fatal error")
	var pErr *ParseError
	require.ErrorAs(t, err, &pErr)
	assert.ErrorIs(t, err, cond.ErrUnknownDimension)
}

func TestDuplicateOutcome(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", duplicateOutcome(minify.ClauseList{Clauses: []minify.Clause{
		{Cond: cond.Compare("os", "win"), Outcome: "FAIL"},
		{Cond: cond.Compare("os", "mac"), Outcome: "PASS"},
	}}))
	assert.Equal(t, "FAIL", duplicateOutcome(minify.ClauseList{Clauses: []minify.Clause{
		{Cond: cond.Compare("os", "win"), Outcome: "FAIL"},
		{Cond: cond.Compare("os", "mac"), Outcome: "FAIL"},
	}}))
}
