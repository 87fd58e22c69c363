package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"expcollapse/collapse"
	"expcollapse/formatter"
	"expcollapse/internal/types"
)

// checkCmd: verify without writing, for CI gates.
var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report collapsible clause lists without rewriting anything",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := collapse.New(cfgFile, logger)
		if err != nil {
			logger.Fatal("Failed to initialize collapse engine", zap.Error(err))
		}

		runCheck(ctx, logger, engine, args)
	},
}

func runCheck(ctx context.Context, logger *zap.Logger, engine collapse.Engine, paths []string) {
	results, err := collapse.ProcessFiles(ctx, logger, engine, paths)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	var diagnostics []types.Diagnostic
	dirty := 0
	for _, r := range results {
		if r.Err != nil {
			dirty++
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			continue
		}
		diagnostics = append(diagnostics, r.Result.Diagnostics...)
		if r.Result.Changed {
			dirty++
			fmt.Printf("%s: %d of %d keys can be collapsed\n", r.Path, r.Result.Collapsed, r.Result.Keys)
		}
	}

	fmt.Print(formatter.GenerateFormattedDiagnostics(diagnostics))

	if dirty > 0 {
		os.Exit(1)
	}
	fmt.Println("All annotation files are minimal")
}
