package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"expcollapse/internal/registry"
)

// initCmd: expcollapse init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new dimension registry configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		path := cfgFile
		if path == "" {
			path = defaultConfigPath
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

const defaultConfigPath = ".expcollapse.yaml"

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = defaultConfigPath
	}

	// Seed the file with the built-in registry
	config := registry.DefaultConfig()
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(configurationPath, d, 0o644)
}
