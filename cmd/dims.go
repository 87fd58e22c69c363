package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"expcollapse/internal/registry"
)

// dimsCmd: print the dimension registry in effect.
var dimsCmd = &cobra.Command{
	Use:   "dims",
	Short: "Print the recognized configuration dimensions and their domains",
	Run: func(cmd *cobra.Command, args []string) {
		reg, err := registry.Load(cfgFile)
		if err != nil {
			logger.Error("Failed to load registry", zap.Error(err))
			os.Exit(1)
		}
		for _, d := range reg.Dimensions() {
			if d.Boolean {
				fmt.Printf("%-12s boolean\n", d.Name)
				continue
			}
			fmt.Printf("%-12s %s\n", d.Name, strings.Join(d.Values, ", "))
		}
	},
}
