// SPDX-License-Identifier: MIT

// Package config loads the run configuration of the fairground demo from
// YAML. Fields missing from the file keep their Default values.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates a configuration value outside its domain.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Deterministic defaults.
const (
	DefaultCatalog    = "data/rides.json"
	DefaultPopulation = 256 * 1024
	DefaultWorkers    = 1
	DefaultNoiseScale = 0.1
	DefaultLogLevel   = "info"
)

// Config describes one demo run.
type Config struct {
	// Seed of the run's random stream; 0 selects rng.DefaultSeed.
	Seed uint64 `yaml:"seed"`
	// Population is the number of simulated patrons.
	Population int `yaml:"population"`
	// FullSet uses every catalog attraction instead of a random half.
	FullSet bool `yaml:"full_set"`
	// Catalog is the path of the attraction catalog (.json, .json.zst, .db).
	Catalog string `yaml:"catalog"`
	// Workers evaluates that many attractions concurrently.
	Workers int `yaml:"workers"`
	// NoiseScale is the standard deviation of the preference noise.
	NoiseScale float64 `yaml:"noise_scale"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		Population: DefaultPopulation,
		Catalog:    DefaultCatalog,
		Workers:    DefaultWorkers,
		NoiseScale: DefaultNoiseScale,
		LogLevel:   DefaultLogLevel,
	}
}

// Load reads path over Default() and validates the result.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err = yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err = c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Validate reports the first out-of-domain field as ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Population < 0:
		return fmt.Errorf("population %d: %w", c.Population, ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("workers %d: %w", c.Workers, ErrInvalidConfig)
	case c.NoiseScale < 0 || math.IsNaN(c.NoiseScale) || math.IsInf(c.NoiseScale, 0):
		return fmt.Errorf("noise_scale %v: %w", c.NoiseScale, ErrInvalidConfig)
	case c.Catalog == "":
		return fmt.Errorf("catalog: empty path: %w", ErrInvalidConfig)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: %w", c.LogLevel, ErrInvalidConfig)
	}

	return nil
}
