package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expcollapse/internal/cond"
	"expcollapse/internal/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New([]registry.Dimension{
		{Name: "os", Values: []string{"win", "linux", "mac"}},
		{Name: "bits", Values: []string{"32", "64"}},
		{Name: "debug", Boolean: true},
	}, nil)
	require.NoError(t, err)
	return reg
}

func TestParseLocatesBlocks(t *testing.T) {
	t.Parallel()
	content := strings.Join([]string{
		"# corpus expectations",
		"[top.html]",
		"  [child]",
		"    expected:",
		"      if os == \"win\": FAIL",
		"      if debug: TIMEOUT",
		"      PASS",
		"    max-asserts: 3",
		"  [sibling]",
		"    expected:",
		"      if bits == 64: CRASH",
		"",
	}, "\n")

	f, err := Parse("a.ini", content, testRegistry(t))
	require.NoError(t, err)
	require.Len(t, f.Blocks, 2)

	b := f.Blocks[0]
	assert.Equal(t, "top.html/child", b.Section)
	assert.Equal(t, "expected", b.Key)
	assert.Equal(t, 3, b.KeyLine)
	assert.Equal(t, 4, b.Start)
	assert.Equal(t, 7, b.End)
	assert.Equal(t, "      ", b.Indent)
	require.Len(t, b.List.Clauses, 2)
	assert.Equal(t, `os == "win"`, b.List.Clauses[0].Text)
	assert.Equal(t, "FAIL", b.List.Clauses[0].Outcome)
	assert.Equal(t, cond.Compare("debug", "true"), b.List.Clauses[1].Cond)
	assert.True(t, b.List.HasDefault)
	assert.Equal(t, "PASS", b.List.Default)

	b = f.Blocks[1]
	assert.Equal(t, "top.html/sibling", b.Section)
	assert.False(t, b.List.HasDefault)
	require.Len(t, b.List.Clauses, 1)
	assert.Equal(t, "CRASH", b.List.Clauses[0].Outcome)
}

func TestParseSectionNesting(t *testing.T) {
	t.Parallel()
	content := strings.Join([]string{
		"[a]",
		"  [b]",
		"    k:",
		"      if debug: FAIL",
		"  [c]",
		"    k:",
		"      if debug: FAIL",
		"[d]",
		"  k:",
		"    if debug: FAIL",
	}, "\n")

	f, err := Parse("a.ini", content, testRegistry(t))
	require.NoError(t, err)
	require.Len(t, f.Blocks, 3)
	assert.Equal(t, "a/b", f.Blocks[0].Section)
	assert.Equal(t, "a/c", f.Blocks[1].Section)
	assert.Equal(t, "d", f.Blocks[2].Section)
}

func TestParseSkipsInlineValues(t *testing.T) {
	t.Parallel()
	content := "[a]\n  disabled: https://bugs.example/1234\n  expected:\n    if debug: FAIL\n"
	f, err := Parse("a.ini", content, testRegistry(t))
	require.NoError(t, err)
	require.Len(t, f.Blocks, 1)
	assert.Equal(t, "expected", f.Blocks[0].Key)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{
			name:    "unrecognized line",
			content: "[a]\n  what is this\n",
			line:    2,
		},
		{
			name:    "empty section header",
			content: "[]\n",
			line:    1,
		},
		{
			name:    "clause after default",
			content: "[a]\n  k:\n    PASS\n    if debug: FAIL\n",
			line:    4,
		},
		{
			name:    "multiple defaults",
			content: "[a]\n  k:\n    PASS\n    FAIL\n",
			line:    4,
		},
		{
			name:    "inconsistent indentation",
			content: "[a]\n  k:\n    if debug: FAIL\n      PASS\n",
			line:    4,
		},
		{
			name:    "malformed clause",
			content: "[a]\n  k:\n    if debug FAIL\n",
			line:    3,
		},
		{
			name:    "bad condition syntax",
			content: "[a]\n  k:\n    if os == : FAIL\n",
			line:    3,
		},
	}
	reg := testRegistry(t)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse("a.ini", tt.content, reg)
			var pErr *ParseError
			require.ErrorAs(t, err, &pErr)
			assert.Equal(t, tt.line, pErr.Line)
			assert.Equal(t, "a.ini", pErr.Path)
		})
	}
}

func TestParseUnknownDimensionIsFatal(t *testing.T) {
	t.Parallel()
	content := "[a]\n  k:\n    if cpu == \"arm\": FAIL\n"
	_, err := Parse("a.ini", content, testRegistry(t))
	var pErr *ParseError
	require.ErrorAs(t, err, &pErr)
	assert.ErrorIs(t, err, cond.ErrUnknownDimension)
}

func TestContentRoundTrip(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	for _, content := range []string{
		"[a]\n  k:\n    if debug: FAIL\n",
		"[a]\n  k:\n    if debug: FAIL", // no trailing newline
		"# only a comment\n",
		"",
	} {
		f, err := Parse("a.ini", content, reg)
		require.NoError(t, err)
		assert.Equal(t, content, f.Content())
	}
}
