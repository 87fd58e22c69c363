package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "expcollapse [paths...]",
	Short:            "expcollapse - collapse redundant clauses in test expectation files",
	TraverseChildren: true, // Prioritize subcommands
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(verbose)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'expcollapse' is entered
			_ = cmd.Help()
			return
		}
		// Format: expcollapse [path1 path2 ...] => behaves like the collapse subcommand
		collapseCmd.Run(collapseCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger. Verbosity only changes how much
// diagnostic detail is surfaced, never the collapsed output itself.
func newLogger(verbose bool) *zap.Logger {
	if verbose {
		l, _ := zap.NewDevelopment()
		return l
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	l, _ := config.Build()
	return l
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to the dimension registry configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for the whole run")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Surface per-key diagnostic detail")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(collapseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dimsCmd)
}
