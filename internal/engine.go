package internal

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"expcollapse/internal/manifest"
	"expcollapse/internal/registry"
)

// Engine manages the collapsing process: one immutable dimension registry
// shared read-only across every file and key it transforms.
type Engine struct {
	registry *registry.Registry
	logger   *zap.Logger
}

// NewEngine creates a new collapse engine around the given registry.
// The logger may be nil; the engine then stays silent and only reports
// through diagnostics.
func NewEngine(reg *registry.Registry, logger *zap.Logger) *Engine {
	return &Engine{registry: reg, logger: logger}
}

// Registry exposes the engine's dimension registry, e.g. for printing.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Run reads the annotation file at filePath and returns its collapsed
// content. The file on disk is not modified; persisting the result is the
// caller's responsibility.
func (e *Engine) Run(filePath string) (*manifest.Result, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return manifest.Transform(filePath, string(content), e.registry, e.logger)
}

// RunSource collapses annotation content that did not come from a file.
func (e *Engine) RunSource(source []byte) (*manifest.Result, error) {
	return manifest.Transform("<source>", string(source), e.registry, e.logger)
}
