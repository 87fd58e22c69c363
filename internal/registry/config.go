package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of a registry, loaded from a yaml file.
type Config struct {
	Name       string      `yaml:"name"`
	Dimensions []Dimension `yaml:"dimensions"`
	Invalid    []Combo     `yaml:"invalid,omitempty"`
}

// Load reads a registry configuration file. An empty path yields the
// built-in default registry.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry config: %w", err)
	}
	defer f.Close()

	var config Config
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse registry config %s: %w", path, err)
	}
	r, err := New(config.Dimensions, config.Invalid)
	if err != nil {
		return nil, fmt.Errorf("invalid registry config %s: %w", path, err)
	}
	return r, nil
}

// DefaultConfig returns the built-in registry in its on-disk shape, used by
// the init command to seed a config file.
func DefaultConfig() Config {
	return Config{
		Name:       "expcollapse",
		Dimensions: defaultDimensions(),
		Invalid:    defaultInvalid(),
	}
}
