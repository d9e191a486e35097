// Package snowpilot parses SnowPilot snow pit observation XML files into
// domain records.
//
// The format is attribute-heavy: observation metadata is carried as
// attributes of Pit_Observation, and the measurement profiles are packed
// strings of semicolon-separated depth:value pairs. A file that cannot
// yield a pit identifier, an observation time, and a parsable temperature
// profile is malformed.
package snowpilot

import (
	"encoding/xml"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tmeis/snowgrid/config"
	"github.com/tmeis/snowgrid/internal/errors"
	"github.com/tmeis/snowgrid/internal/pit"
	"github.com/tmeis/snowgrid/internal/validation"
)

// Parser parses SnowPilot XML documents.
type Parser struct {
	loc *time.Location
}

// NewParser creates a parser rendering observation times in the default
// field campaign timezone.
func NewParser() *Parser {
	return NewParserInZone(time.FixedZone("MST", config.DefaultUTCOffsetHours*3600))
}

// NewParserInZone creates a parser rendering observation times in loc.
func NewParserInZone(loc *time.Location) *Parser {
	return &Parser{loc: loc}
}

// ParseFile parses one observation file into a Record.
func (p *Parser) ParseFile(path string) (*pit.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open observation file")
	}
	defer f.Close()

	return p.Parse(f, path)
}

// Parse parses an observation document read from r. The source name is
// recorded on the Record for log context.
func (p *Parser) Parse(r io.Reader, source string) (*pit.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read observation file")
	}

	obs, err := decodeObservation(data)
	if err != nil {
		return nil, err
	}

	rec, err := p.buildRecord(obs)
	if err != nil {
		return nil, err
	}
	rec.SourceFile = source

	if err := validation.ValidateRecord(rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// decodeObservation unmarshals the document, accepting both a wrapped
// export (<Pit_Data><Pit_Observation .../></Pit_Data>) and a bare
// Pit_Observation root.
func decodeObservation(data []byte) (*pitObservationXML, error) {
	var doc pitDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewMalformed(err.Error())
	}
	if doc.Observation.Timestamp != "" || doc.Observation.Location.Name != "" {
		return &doc.Observation, nil
	}

	if doc.XMLName.Local == "Pit_Observation" {
		var obs pitObservationXML
		if err := xml.Unmarshal(data, &obs); err != nil {
			return nil, errors.NewMalformed(err.Error())
		}
		return &obs, nil
	}

	return nil, errors.NewMissingField("Pit_Observation")
}

func (p *Parser) buildRecord(obs *pitObservationXML) (*pit.Record, error) {
	id := strings.TrimSpace(obs.Location.Name)
	if id == "" {
		return nil, errors.NewMissingField("Location name")
	}

	ts, err := parseTimestampMs(obs.Timestamp)
	if err != nil {
		return nil, err
	}

	height, err := strconv.ParseFloat(strings.TrimSpace(obs.HeightOfSnowpack), 64)
	if err != nil {
		return nil, errors.NewMalformed("heightOfSnowpack: " + obs.HeightOfSnowpack)
	}

	temperature, err := parseProfile(obs.TemperatureProfile.Profile)
	if err != nil {
		return nil, errors.Wrap(err, "temperature profile")
	}

	density, err := parseProfile(obs.DensityProfile.Profile)
	if err != nil {
		return nil, errors.Wrap(err, "density profile")
	}

	rec := &pit.Record{
		ID:           id,
		Time:         time.UnixMilli(ts).In(p.loc),
		SnowHeightCm: height,
		Temperature:  temperature,
		Density:      density,
		Layers:       buildLayers(obs.Layers),
		Obs: pit.Observation{
			Latitude:     optionalFloat(obs.Latitude),
			Longitude:    optionalFloat(obs.Longitude),
			ElevationM:   optionalFloat(obs.Location.Elevation),
			Aspect:       strings.TrimSpace(obs.Aspect),
			Sky:          strings.TrimSpace(obs.Sky),
			Precip:       strings.TrimSpace(obs.Precip),
			WindSpeed:    strings.TrimSpace(obs.WindSpeed),
			WindDir:      strings.TrimSpace(obs.WindDir),
			Range:        strings.TrimSpace(obs.Range),
			State:        strings.TrimSpace(obs.State),
			Notes:        strings.TrimSpace(obs.PitNotes),
			DepthUnits:   strings.TrimSpace(obs.DepthUnits),
			TempUnits:    strings.TrimSpace(obs.User.TempUnits),
			DensityUnits: strings.TrimSpace(obs.RhoUnits),
		},
		Observer: pit.Observer{
			Username:    strings.TrimSpace(obs.User.Username),
			First:       strings.TrimSpace(obs.User.First),
			Last:        strings.TrimSpace(obs.User.Last),
			Name:        strings.TrimSpace(obs.User.Name),
			Email:       strings.TrimSpace(obs.User.Email),
			Affiliation: strings.TrimSpace(obs.User.Affiliation),
			MeasureFrom: strings.TrimSpace(obs.User.MeasureFrom),
		},
	}

	return rec, nil
}

// parseTimestampMs parses the epoch-milliseconds timestamp attribute.
func parseTimestampMs(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.NewMissingField("timestamp")
	}
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ts <= 0 {
		return 0, errors.NewMalformed("timestamp: " + s)
	}
	return ts, nil
}

// parseProfile unpacks a "depth:value;depth:value" profile string.
func parseProfile(s string) (pit.Profile, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.ErrInvalidProfile
	}

	var profile pit.Profile
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ":")
		if len(parts) != 2 {
			return nil, errors.Wrapf(errors.ErrInvalidProfile, "pair %q", pair)
		}
		depth, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidProfile, "depth %q", parts[0])
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidProfile, "value %q", parts[1])
		}
		profile = append(profile, pit.Sample{DepthCm: depth, Value: value})
	}

	if len(profile) == 0 {
		return nil, errors.ErrInvalidProfile
	}
	return profile, nil
}

func buildLayers(layers []layerXML) []pit.Layer {
	out := make([]pit.Layer, 0, len(layers))
	for i, l := range layers {
		number := i + 1
		if n, err := strconv.Atoi(strings.TrimSpace(l.LayerNumber)); err == nil {
			number = n
		}
		out = append(out, pit.Layer{
			Number:               number,
			StartDepthCm:         optionalFloat(l.StartDepth),
			EndDepthCm:           optionalFloat(l.EndDepth),
			GrainType:            strings.TrimSpace(l.GrainType),
			GrainTypeSecondary:   strings.TrimSpace(l.GrainTypeSecondary),
			GrainSizeMm:          optionalFloat(l.GrainSize),
			GrainSizeSecondaryMm: optionalFloat(l.GrainSizeSecondary),
			Hardness:             strings.TrimSpace(l.Hardness),
			HardnessSecondary:    strings.TrimSpace(l.HardnessSecondary),
		})
	}
	return out
}

// optionalFloat parses a numeric attribute, returning NaN for blank or
// unparsable values. Blank layer attributes are common in the source
// files and map to explicit no-data markers.
func optionalFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
