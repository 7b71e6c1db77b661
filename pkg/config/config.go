// Package config provides configuration loading and management for the
// grating analysis tool. It handles loading configuration from YAML files
// and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gratinginterferometry/pkg/grating"
	"gratinginterferometry/pkg/harmonic"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration loaded from YAML
type Config struct {
	// Analysis parameters
	Analysis struct {
		// HarmonicPeriod is [vertical, horizontal] harmonic spacing in spectrum
		// pixels. Zero or negative marks a 1D grating on that axis.
		HarmonicPeriod [2]int `yaml:"harmonicPeriod"`

		// SearchRegion is the peak search half-width for extraction
		SearchRegion int `yaml:"searchRegion"`

		// VisibilitySearchRegion is the peak search half-width for visibility
		VisibilitySearchRegion int `yaml:"visibilitySearchRegion"`

		// Unwrap enables unwrapping of the differential phase maps
		Unwrap bool `yaml:"unwrap"`
	} `yaml:"analysis"`

	// Output parameters
	Output struct {
		// Verbose enables informational messages
		Verbose bool `yaml:"verbose"`

		// LogLevel is one of debug, info, warn, error
		LogLevel string `yaml:"logLevel"`

		// Console selects the human readable log writer instead of JSON
		Console bool `yaml:"console"`
	} `yaml:"output"`

	// Synthetic grating rendered by the command line tool
	Synthetic struct {
		Rows      int     `yaml:"rows"`
		Cols      int     `yaml:"cols"`
		PeriodX   float64 `yaml:"periodX"`
		PeriodY   float64 `yaml:"periodY"`
		Offset    float64 `yaml:"offset"`
		Amplitude float64 `yaml:"amplitude"`
		PhaseX    float64 `yaml:"phaseX"`
		PhaseY    float64 `yaml:"phaseY"`
	} `yaml:"synthetic"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Analysis.HarmonicPeriod = [2]int{0, 0}
	cfg.Analysis.SearchRegion = harmonic.DefaultSearchRegion
	cfg.Analysis.VisibilitySearchRegion = grating.DefaultVisibilitySearchRegion
	cfg.Analysis.Unwrap = true

	cfg.Output.Verbose = false
	cfg.Output.LogLevel = "info"
	cfg.Output.Console = true

	cfg.Synthetic.Rows = 256
	cfg.Synthetic.Cols = 256
	cfg.Synthetic.PeriodX = 8
	cfg.Synthetic.PeriodY = 8
	cfg.Synthetic.Offset = 100
	cfg.Synthetic.Amplitude = 20

	return cfg
}

// Validate checks the values that would make the analysis fail early
func (c *Config) Validate() error {
	if c.Analysis.SearchRegion <= 0 {
		return fmt.Errorf("%w: searchRegion must be positive, got %d", ErrInvalidConfig, c.Analysis.SearchRegion)
	}
	if c.Analysis.VisibilitySearchRegion <= 0 {
		return fmt.Errorf("%w: visibilitySearchRegion must be positive, got %d", ErrInvalidConfig, c.Analysis.VisibilitySearchRegion)
	}
	if c.Synthetic.Rows <= 0 || c.Synthetic.Cols <= 0 {
		return fmt.Errorf("%w: synthetic image must have positive size, got %dx%d", ErrInvalidConfig, c.Synthetic.Rows, c.Synthetic.Cols)
	}
	return nil
}

// Period returns the configured harmonic period
func (c *Config) Period() harmonic.Period {
	return harmonic.Period{Vertical: c.Analysis.HarmonicPeriod[0], Horizontal: c.Analysis.HarmonicPeriod[1]}
}

// Params converts the configuration to analyzer parameters
func (c *Config) Params() grating.Params {
	return grating.Params{
		SearchRegion:           c.Analysis.SearchRegion,
		VisibilitySearchRegion: c.Analysis.VisibilitySearchRegion,
		Unwrap:                 c.Analysis.Unwrap,
		Verbose:                c.Output.Verbose,
	}
}

// Fringes returns the synthetic grating description
func (c *Config) Fringes() grating.Fringes {
	s := c.Synthetic
	return grating.Fringes{
		Rows: s.Rows, Cols: s.Cols,
		PeriodX: s.PeriodX, PeriodY: s.PeriodY,
		Offset: s.Offset, Amplitude: s.Amplitude,
		PhaseX: s.PhaseX, PhaseY: s.PhaseY,
	}
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	// Start with default configuration
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
