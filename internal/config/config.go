// Package config loads optional run configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is searched in the working directory when no explicit
// config path is given.
const DefaultPath = ".pysize.yaml"

// Config holds tunables layered under command-line flags.
type Config struct {
	// Python is the interpreter used to create virtual environments.
	Python string `yaml:"python"`
	// BarResolutionMB is the megabytes one '#' represents in the report.
	BarResolutionMB int `yaml:"bar_resolution_mb"`
	// NameWidth is the console column width for package names.
	NameWidth int `yaml:"name_width"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Python:          "python3",
		BarResolutionMB: 25,
		NameWidth:       24,
	}
}

// Load reads the config file at path layered over defaults. An empty
// path means DefaultPath, and its absence is not an error; an explicit
// path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
