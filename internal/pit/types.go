// Package pit defines the domain types for snow pit observations.
//
// A Record is the immutable result of parsing one observation file. The
// grid package aligns Records onto shared dimensions; nothing mutates a
// Record after the parser returns it.
package pit

import (
	"math"
	"time"
)

// Sample is one depth-indexed measurement within a profile.
type Sample struct {
	// DepthCm is the measurement depth in centimeters, measured from the
	// surface or ground per the observer's measureFrom convention.
	DepthCm float64

	// Value is the measured quantity in the profile's normalized unit.
	Value float64
}

// Profile is a depth-ordered series of samples for one physical property.
type Profile []Sample

// Depths returns the depth axis of the profile.
func (p Profile) Depths() []float64 {
	depths := make([]float64, len(p))
	for i, s := range p {
		depths[i] = s.DepthCm
	}
	return depths
}

// ValueAt returns the value measured at the given depth. The second
// return is false when the profile has no sample at that depth.
func (p Profile) ValueAt(depthCm float64) (float64, bool) {
	for _, s := range p {
		if s.DepthCm == depthCm {
			return s.Value, true
		}
	}
	return math.NaN(), false
}

// Layer describes one stratigraphic layer of the pit.
// Numeric fields that were blank in the source are NaN.
type Layer struct {
	Number               int
	StartDepthCm         float64
	EndDepthCm           float64
	GrainType            string
	GrainTypeSecondary   string
	GrainSizeMm          float64
	GrainSizeSecondaryMm float64
	Hardness             string
	HardnessSecondary    string
}

// Observation holds the pit-level observation metadata.
type Observation struct {
	Latitude   float64
	Longitude  float64
	ElevationM float64
	Aspect     string
	Sky        string
	Precip     string
	WindSpeed  string
	WindDir    string
	Range      string
	State      string
	Notes      string

	// Unit attributes as recorded in the source file, kept for
	// validation against the normalized units.
	DepthUnits   string
	TempUnits    string
	DensityUnits string
}

// Observer identifies who dug and recorded the pit.
type Observer struct {
	Username    string
	First       string
	Last        string
	Name        string
	Email       string
	Affiliation string
	MeasureFrom string
}

// Record is one parsed snow pit observation.
type Record struct {
	// ID is the pit identifier (the location name in the source file).
	ID string

	// Time is the observation time.
	Time time.Time

	// SnowHeightCm is the total height of the snowpack.
	SnowHeightCm float64

	// Temperature is the temperature profile in Celsius.
	Temperature Profile

	// Density is the density profile in kg/m3. Its depth axis may be
	// shorter than the temperature axis.
	Density Profile

	// Layers is the pit stratigraphy, surface first.
	Layers []Layer

	Obs      Observation
	Observer Observer

	// SourceFile is the file this record was parsed from, for log context.
	SourceFile string
}
