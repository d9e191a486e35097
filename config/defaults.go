// Package config provides configuration defaults and utilities
// for the snowgrid application.
//
// This package defines all configurable constants with documented defaults.
// Users can override these values via snowgrid.yaml or CLI flags.
package config

// =============================================================================
// Input Defaults
// =============================================================================

const (
	// DefaultInputDir is where per-pit observation XML files are read from.
	// One file per snow pit. Override via config: input_dir or flag: -input
	DefaultInputDir = "./snow_pit_obs"
)

// =============================================================================
// Output Defaults
// =============================================================================

const (
	// DefaultProfileOutput is the aggregated profile dataset path.
	// Override via config: output or flag: -output
	DefaultProfileOutput = "snowpit_profiles.parquet"

	// DefaultLayerOutput is the layer dataset path, written only when
	// layer output is enabled.
	// Override via config: layer_output or flag: -layer-output
	DefaultLayerOutput = "snowpit_layers.parquet"

	// DefaultCompression is the Parquet compression codec.
	// One of: zstd, snappy, lz4, gzip, none.
	// Override via config: compression
	DefaultCompression = "zstd"
)

// =============================================================================
// Field Campaign Defaults
// =============================================================================

const (
	// DefaultUTCOffsetHours is the camp timezone offset applied when
	// rendering observation timestamps (MST, UTC-7). Raw epoch values in
	// the input are stored unchanged.
	// Override via config: utc_offset_hours
	DefaultUTCOffsetHours = -7

	// DepthUnits is the normalized depth unit for all profile axes.
	DepthUnits = "cm"

	// TemperatureUnits is the normalized temperature unit.
	TemperatureUnits = "C"

	// DensityUnits is the normalized density unit.
	DensityUnits = "kg/m3"

	// GrainSizeUnits is the normalized grain size unit.
	GrainSizeUnits = "mm"
)

// =============================================================================
// Logging Defaults
// =============================================================================

const (
	// DefaultLogLevel is the minimum level emitted.
	// Override via config: log.level
	DefaultLogLevel = "info"

	// DefaultLogJSON selects JSON log output when true, text otherwise.
	// Override via config: log.json
	DefaultLogJSON = false
)

// =============================================================================
// Query Defaults
// =============================================================================

const (
	// DefaultQueryLimit caps rows returned by ad-hoc explore queries so an
	// accidental SELECT * over a large season stays readable.
	// Override via config: query_limit
	DefaultQueryLimit = 1000
)
