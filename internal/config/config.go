// Package config handles configuration loading and shared data structures.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Database Database `yaml:"database,omitempty"`
	Index    Index    `yaml:"index,omitempty"`
	Geometry Geometry `yaml:"geometry,omitempty"`
}

// Database holds PostGIS connection settings.
type Database struct {
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	Name     string `yaml:"name,omitempty"`
}

// Index holds in-memory index persistence settings.
type Index struct {
	File string `yaml:"file,omitempty"`
}

// Geometry holds default parameters for trace operations.
type Geometry struct {
	ResampleSpacing float64 `yaml:"resample_spacing,omitempty"`
	PartitionLength float64 `yaml:"partition_length,omitempty"`
}

// Default returns a configuration with built-in defaults.
func Default() *Config {
	return &Config{
		Database: Database{
			Host: "localhost",
			Port: 5432,
			User: "postgres",
			Name: "quakegeo",
		},
		Index: Index{
			File: "sites.gob",
		},
		Geometry: Geometry{
			ResampleSpacing: 1.0,
			PartitionLength: 10.0,
		},
	}
}

// Load reads and parses the YAML configuration file from the specified
// path, layering it over the built-in defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}
