package thermite

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the playground tunables. The geometric tolerance and the
// pixels-per-meter ratio are threaded through from here rather than living
// as process globals.
type Config struct {
	// PTMRatio converts pixel coordinates from the input layer into world
	// units. The geometry core itself is unit-agnostic.
	PTMRatio float64 `yaml:"ptm_ratio"`

	// Epsilon is the geometric tolerance in world units.
	Epsilon float64 `yaml:"epsilon"`

	// SplitBound multiplies n*n into the decomposition split budget.
	SplitBound int `yaml:"split_bound"`

	Gravity Vector  `yaml:"gravity"`
	Damping float64 `yaml:"damping"`
	Density float64 `yaml:"density"`

	Blast BlastProfile `yaml:"blast"`
}

func DefaultConfig() Config {
	return Config{
		PTMRatio:   32,
		Epsilon:    DefaultEpsilon,
		SplitBound: defaultSplitBound,
		Gravity:    Vector{0, -10},
		Damping:    1.0,
		Density:    1.0,
		Blast:      SimpleBlast,
	}
}

// LoadConfig reads a YAML file over the defaults. A missing key keeps its
// default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.PTMRatio <= 0 {
		return fmt.Errorf("ptm_ratio %v must be positive", c.PTMRatio)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon %v must be positive", c.Epsilon)
	}
	if c.SplitBound <= 0 {
		return fmt.Errorf("split_bound %d must be positive", c.SplitBound)
	}
	if c.Blast.Segments < 3 {
		return fmt.Errorf("blast segments %d must be at least 3", c.Blast.Segments)
	}
	return nil
}
