package cond

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expcollapse/internal/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New([]registry.Dimension{
		{Name: "os", Values: []string{"win", "linux", "mac"}},
		{Name: "bits", Values: []string{"32", "64"}},
		{Name: "debug", Boolean: true},
		{Name: "webrender", Boolean: true},
	}, nil)
	require.NoError(t, err)
	return reg
}

func TestParseComparisons(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	tests := []struct {
		name     string
		input    string
		expected Expr
	}{
		{
			name:     "string comparison",
			input:    `os == "win"`,
			expected: Compare("os", "win"),
		},
		{
			name:     "integer comparison",
			input:    "bits == 64",
			expected: Compare("bits", "64"),
		},
		{
			name:     "parenthesized comparison",
			input:    `(os == "linux")`,
			expected: Compare("os", "linux"),
		},
		{
			name:     "bare boolean dimension",
			input:    "debug",
			expected: Compare("debug", "true"),
		},
		{
			name:     "negated boolean dimension",
			input:    "not debug",
			expected: Not(Compare("debug", "true")),
		},
		{
			name:     "not equal desugars to negation",
			input:    `os != "mac"`,
			expected: Not(Compare("os", "mac")),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			expr, err := Parse(tt.input, reg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, expr)
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	// and binds tighter than or
	expr, err := Parse(`os == "win" and debug or os == "mac"`, reg)
	require.NoError(t, err)
	assert.Equal(t,
		Or(And(Compare("os", "win"), Compare("debug", "true")), Compare("os", "mac")),
		expr)

	// parentheses override precedence
	expr, err = Parse(`os == "win" and (debug or webrender)`, reg)
	require.NoError(t, err)
	assert.Equal(t,
		And(Compare("os", "win"), Or(Compare("debug", "true"), Compare("webrender", "true"))),
		expr)

	// not binds tighter than and
	expr, err = Parse("not debug and webrender", reg)
	require.NoError(t, err)
	assert.Equal(t,
		And(Not(Compare("debug", "true")), Compare("webrender", "true")),
		expr)
}

func TestParseChainedConjunction(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	expr, err := Parse(`(os == "win") and (bits == 32) and not webrender and debug`, reg)
	require.NoError(t, err)
	assert.Equal(t,
		And(
			Compare("os", "win"),
			Compare("bits", "32"),
			Not(Compare("webrender", "true")),
			Compare("debug", "true"),
		),
		expr)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	tests := []struct {
		name    string
		input   string
		unknown bool
	}{
		{name: "unknown dimension", input: `cpu == "arm"`, unknown: true},
		{name: "value outside domain", input: `os == "beos"`, unknown: true},
		{name: "unbalanced parenthesis", input: `(os == "win"`},
		{name: "trailing garbage", input: `os == "win" win`},
		{name: "missing literal", input: "os =="},
		{name: "bare non-boolean dimension", input: "os"},
		{name: "empty input", input: ""},
		{name: "dangling and", input: "debug and"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.input, reg)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			if tt.unknown {
				assert.ErrorIs(t, err, ErrUnknownDimension)
			}
		})
	}
}

func TestDims(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	expr, err := Parse(`os == "win" and (bits == 64 or not debug) and os == "linux"`, reg)
	require.NoError(t, err)
	assert.Equal(t, []string{"bits", "debug", "os"}, Dims(expr))
}
