// Package config loads session configuration from YAML: feature toggles,
// execution limits, and the RNG seed.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Features enables or disables the gated parts of the node catalog.
type Features struct {
	Combat   bool `yaml:"combat"`
	Trade    bool `yaml:"trade"`
	Needs    bool `yaml:"needs"`
	Dialogue bool `yaml:"dialogue"`
}

// Limits bounds runaway scripts.
type Limits struct {
	MaxEventDepth int `yaml:"max_event_depth"`
	MaxRunSteps   int `yaml:"max_run_steps"`
}

// Config is the top-level session configuration.
type Config struct {
	Features Features `yaml:"features"`
	Limits   Limits   `yaml:"limits"`
	Seed     int64    `yaml:"seed"`
}

// Default returns the configuration used when no file is given: every
// feature on, standard limits, time-based seed.
func Default() Config {
	return Config{
		Features: Features{Combat: true, Trade: true, Needs: true, Dialogue: true},
		Limits:   Limits{MaxEventDepth: 8, MaxRunSteps: 1000},
	}
}

// Load reads a YAML config file. Missing fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Limits.MaxEventDepth <= 0 {
		cfg.Limits.MaxEventDepth = 8
	}
	if cfg.Limits.MaxRunSteps <= 0 {
		cfg.Limits.MaxRunSteps = 1000
	}
	return cfg, nil
}

// FeatureMap flattens the toggles into the form the engine and catalog take.
func (c Config) FeatureMap() map[string]bool {
	return map[string]bool{
		"combat":   c.Features.Combat,
		"trade":    c.Features.Trade,
		"needs":    c.Features.Needs,
		"dialogue": c.Features.Dialogue,
	}
}
