package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expcollapse/internal/registry"
)

func TestEngineRun(t *testing.T) {
	t.Parallel()
	engine := NewEngine(registry.Default(), nil)

	input := "[a.html]\n  expected:\n    if bits == 32: TIMEOUT\n    if bits == 64: TIMEOUT\n"
	path := filepath.Join(t.TempDir(), "a.ini")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))

	res, err := engine.Run(path)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "[a.html]\n  expected:\n    TIMEOUT\n", res.Content)

	_, err = engine.Run(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func TestEngineRunSource(t *testing.T) {
	t.Parallel()
	engine := NewEngine(registry.Default(), nil)

	res, err := engine.RunSource([]byte("[a.html]\n  expected:\n    if debug: FAIL\n"))
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, 1, res.Keys)
}

func TestEngineRegistry(t *testing.T) {
	t.Parallel()
	reg := registry.Default()
	engine := NewEngine(reg, nil)
	assert.Same(t, reg, engine.Registry())
}
