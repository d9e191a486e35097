// Package loader handles configuration file loading and validation.
//
// This package is responsible for:
//   - Loading the optional snowgrid.yaml configuration file
//   - Expanding environment variables
//   - Applying defaults for unset fields
//   - Validating the resulting configuration
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tmeis/snowgrid/config"
	"github.com/tmeis/snowgrid/internal/errors"
)

// Config is the complete application configuration.
type Config struct {
	// InputDir is the directory of per-pit observation XML files.
	InputDir string `yaml:"input_dir"`

	// Output is the aggregated profile dataset path.
	Output string `yaml:"output"`

	// LayerOutput is the stratigraphy dataset path.
	LayerOutput string `yaml:"layer_output"`

	// WriteLayers enables writing the stratigraphy dataset alongside the
	// profile dataset.
	WriteLayers bool `yaml:"write_layers"`

	// Compression selects the Parquet codec: zstd, snappy, lz4, gzip, none.
	Compression string `yaml:"compression"`

	// UTCOffsetHours is the camp timezone offset for rendering
	// observation timestamps.
	UTCOffsetHours int `yaml:"utc_offset_hours"`

	// QueryLimit caps rows returned by explore queries.
	QueryLimit int `yaml:"query_limit"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the configuration with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		InputDir:       config.DefaultInputDir,
		Output:         config.DefaultProfileOutput,
		LayerOutput:    config.DefaultLayerOutput,
		WriteLayers:    false,
		Compression:    config.DefaultCompression,
		UTCOffsetHours: config.DefaultUTCOffsetHours,
		QueryLimit:     config.DefaultQueryLimit,
		Log: LogConfig{
			Level: config.DefaultLogLevel,
			JSON:  config.DefaultLogJSON,
		},
	}
}

// Load loads configuration from a YAML file. Values unset in the file
// keep their defaults. Environment variable references in the file are
// expanded before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validCompressions lists the accepted Parquet codec names.
var validCompressions = map[string]bool{
	"zstd": true, "snappy": true, "lz4": true, "gzip": true, "none": true,
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "input_dir must not be empty")
	}
	if c.Output == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "output must not be empty")
	}
	if c.WriteLayers && c.LayerOutput == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "layer_output must not be empty when write_layers is set")
	}
	if !validCompressions[c.Compression] {
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown compression %q", c.Compression)
	}
	if c.UTCOffsetHours < -12 || c.UTCOffsetHours > 14 {
		return errors.Wrapf(errors.ErrInvalidConfig, "utc_offset_hours %d out of range", c.UTCOffsetHours)
	}
	if c.QueryLimit <= 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "query_limit must be positive")
	}
	return nil
}
