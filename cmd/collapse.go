package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"expcollapse/collapse"
	"expcollapse/formatter"
	"expcollapse/internal/types"
)

var dryRun bool

var collapseCmd = &cobra.Command{
	Use:   "collapse [paths...]",
	Short: "Collapse clause lists and rewrite annotation files in place",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths, or '-' for stdin")
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := collapse.New(cfgFile, logger)
		if err != nil {
			logger.Fatal("Failed to initialize collapse engine", zap.Error(err))
		}

		if len(args) == 1 && args[0] == "-" {
			runCollapseStdin(logger, engine)
			return
		}
		runCollapse(ctx, logger, engine, args, dryRun)
	},
}

func init() {
	collapseCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing any file")
}

// runCollapseStdin implements the filter mode: one file's content on
// stdin, collapsed content on stdout, diagnostics on stderr.
func runCollapseStdin(logger *zap.Logger, engine collapse.Engine) {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		logger.Fatal("Failed to read stdin", zap.Error(err))
	}
	result, err := collapse.ProcessSource(engine, source)
	if err != nil {
		logger.Fatal("Failed to collapse input", zap.Error(err))
	}
	fmt.Fprint(os.Stderr, formatter.GenerateFormattedDiagnostics(result.Diagnostics))
	fmt.Print(result.Content)
}

func runCollapse(ctx context.Context, logger *zap.Logger, engine collapse.Engine, paths []string, dryRun bool) {
	results, err := collapse.ProcessFiles(ctx, logger, engine, paths)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	var diagnostics []types.Diagnostic
	fatal := 0
	changed := 0
	for _, r := range results {
		if r.Err != nil {
			fatal++
			fmt.Fprintf(os.Stderr, "%s: left untouched: %v\n", r.Path, r.Err)
			continue
		}
		diagnostics = append(diagnostics, r.Result.Diagnostics...)
		if !r.Result.Changed {
			continue
		}
		changed++
		if dryRun {
			fmt.Printf("Would collapse %d of %d keys in %s\n", r.Result.Collapsed, r.Result.Keys, r.Path)
			continue
		}
		if err := os.WriteFile(r.Path, []byte(r.Result.Content), 0o644); err != nil {
			logger.Error("Error writing file", zap.String("file", r.Path), zap.Error(err))
			fatal++
			continue
		}
		fmt.Printf("Collapsed %d of %d keys in %s\n", r.Result.Collapsed, r.Result.Keys, r.Path)
	}

	fmt.Print(formatter.GenerateFormattedDiagnostics(diagnostics))

	if changed == 0 && fatal == 0 {
		fmt.Println("Nothing to collapse")
	}
	if fatal > 0 {
		os.Exit(1)
	}
}
