package snowpilot

import (
	"encoding/xml"
)

// pitDocument represents a SnowPilot export whose root element wraps the
// pit observation (e.g. <Pit_Data>).
type pitDocument struct {
	XMLName     xml.Name
	Observation pitObservationXML `xml:"Pit_Observation"`
}

// pitObservationXML represents the Pit_Observation element. All scalar
// observation metadata lives in attributes; measurement sections are
// nested elements.
type pitObservationXML struct {
	Timestamp        string `xml:"timestamp,attr"`
	HeightOfSnowpack string `xml:"heightOfSnowpack,attr"`
	DepthUnits       string `xml:"depthUnits,attr"`
	RhoUnits         string `xml:"rhoUnits,attr"`
	CoordType        string `xml:"coordType,attr"`
	ElvUnits         string `xml:"elvUnits,attr"`
	PitNotes         string `xml:"pitNotes,attr"`
	Precip           string `xml:"precip,attr"`
	Sky              string `xml:"sky,attr"`
	Aspect           string `xml:"aspect,attr"`
	WindSpeed        string `xml:"windspeed,attr"`
	WindDir          string `xml:"winDir,attr"`
	Longitude        string `xml:"longitude,attr"`
	Latitude         string `xml:"lat,attr"`
	HardnessScaling  string `xml:"hardnessScaling,attr"`
	Range            string `xml:"range,attr"`
	State            string `xml:"state,attr"`

	Location           locationXML       `xml:"Location"`
	User               userXML           `xml:"User"`
	TemperatureProfile tempProfileXML    `xml:"Temperature_Profile"`
	DensityProfile     densityProfileXML `xml:"Density_Profile"`
	Layers             []layerXML        `xml:"Layer"`
}

// locationXML carries the pit identifier and elevation.
type locationXML struct {
	Name      string `xml:"name,attr"`
	Elevation string `xml:"elv,attr"`
}

// userXML carries observer identity and unit conventions.
type userXML struct {
	Username    string `xml:"username,attr"`
	First       string `xml:"first,attr"`
	Last        string `xml:"last,attr"`
	Name        string `xml:"name,attr"`
	Email       string `xml:"email,attr"`
	Affiliation string `xml:"affil,attr"`
	MeasureFrom string `xml:"measureFrom,attr"`
	DepthUnits  string `xml:"depthUnits,attr"`
	TempUnits   string `xml:"tempUnits,attr"`
	ElvUnits    string `xml:"elvUnits,attr"`
	CoordType   string `xml:"coordType,attr"`
	UseSymbols  string `xml:"useSymbols,attr"`
}

// tempProfileXML holds the packed temperature profile string:
// semicolon-separated depth:value pairs, e.g. "0:-2.5;10:-3.1".
type tempProfileXML struct {
	Profile string `xml:"temp_profile,attr"`
}

// densityProfileXML holds the packed density profile string, same pair
// encoding as the temperature profile.
type densityProfileXML struct {
	Profile string `xml:"profile,attr"`
}

// layerXML represents one stratigraphic Layer element.
type layerXML struct {
	LayerNumber        string `xml:"layerNumber,attr"`
	StartDepth         string `xml:"startDepth,attr"`
	EndDepth           string `xml:"endDepth,attr"`
	GrainType          string `xml:"grainType,attr"`
	GrainTypeSecondary string `xml:"grainType1,attr"`
	GrainSize          string `xml:"grainSize,attr"`
	GrainSizeSecondary string `xml:"grainSize1,attr"`
	Hardness           string `xml:"hardness1,attr"`
	HardnessSecondary  string `xml:"hardness2,attr"`
}
