package collapse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"expcollapse/internal"
	"expcollapse/internal/manifest"
	"expcollapse/internal/registry"
)

// Engine is the seam between file discovery and the per-file transform.
type Engine interface {
	Run(filePath string) (*manifest.Result, error)
	RunSource(source []byte) (*manifest.Result, error)
}

// FileResult pairs one file with its collapsed content, or with the fatal
// error that prevented any output for it.
type FileResult struct {
	Path   string
	Result *manifest.Result
	Err    error
}

// New creates a collapse engine backed by the registry configuration at
// configurationPath; an empty path selects the built-in registry.
func New(configurationPath string, logger *zap.Logger) (*internal.Engine, error) {
	reg, err := registry.Load(configurationPath)
	if err != nil {
		return nil, err
	}
	return internal.NewEngine(reg, logger), nil
}

// ProcessFiles collapses every annotation file reachable from the given
// paths. Each file is independent: a fatal parse error in one is recorded
// in its FileResult and the rest still produce output.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	paths []string,
) ([]FileResult, error) {
	var all []FileResult
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, engine, path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, results...)
	}
	return all, nil
}

// ProcessPath collapses one file, or every annotation file under one
// directory. Directory walks run on a bounded worker pool; per-file
// minimization is a pure in-memory computation, so files parallelize
// freely over the shared read-only registry.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	path string,
) ([]FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, fmt.Errorf("%s is not an annotation file", path)
		}
		result, err := engine.Run(path)
		return []FileResult{{Path: path, Result: result, Err: err}}, nil
	}

	var files []string
	err = filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}
	sort.Strings(files)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)
	resultChan := make(chan FileResult, len(files))

	started := 0
	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			started++
			go func(fp string) {
				defer func() { <-sem }()

				result, err := engine.Run(fp)
				if err != nil && logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				resultChan <- FileResult{Path: fp, Result: result, Err: err}
				bar.Add(1)
			}(filePath)
		}
	}

	results := make([]FileResult, 0, started)
	for i := 0; i < started; i++ {
		results = append(results, <-resultChan)
	}
	fmt.Println()

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

// ProcessFile collapses a single file through the engine.
func ProcessFile(engine Engine, filePath string) (*manifest.Result, error) {
	return engine.Run(filePath)
}

// ProcessSource collapses in-memory annotation content.
func ProcessSource(engine Engine, source []byte) (*manifest.Result, error) {
	return engine.RunSource(source)
}

var desiredExtensions = map[string]bool{
	".ini": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}
