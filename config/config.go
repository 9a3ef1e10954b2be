// Package config loads the runtime's startup configuration document: a
// small YAML file whose values take precedence over environment variables
// and built-in defaults. A -listen flag given on the command line takes
// precedence over the file's listen value.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the runtime bootstrap configuration (spec.md §6 expansion).
// Every field has a zero value that means "use the built-in default" so a
// partial file is valid.
type Config struct {
	Listen              string `yaml:"listen"`
	LogLevel            string `yaml:"logLevel"`
	DefaultEdgeCapacity int    `yaml:"defaultEdgeCapacity"`
}

// Load reads and parses a YAML config document from path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
