// Package validation provides centralized input validation for snowgrid.
package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/tmeis/snowgrid/internal/errors"
	"github.com/tmeis/snowgrid/internal/pit"
)

// =============================================================================
// Pit ID Validation
// =============================================================================

// IDRules defines the validation rules for pit identifiers.
type IDRules struct {
	MinLength int
	MaxLength int
}

// DefaultIDRules returns the default rules for pit identifiers.
func DefaultIDRules() IDRules {
	return IDRules{
		MinLength: 1,
		MaxLength: 255,
	}
}

// ValidateID validates a pit identifier. Identifiers become file-adjacent
// labels in the output dataset, so control characters and path separators
// are rejected.
func ValidateID(id string, rules IDRules) error {
	if len(id) < rules.MinLength {
		return fmt.Errorf("pit id too short: minimum %d characters required", rules.MinLength)
	}
	if len(id) > rules.MaxLength {
		return fmt.Errorf("pit id too long: maximum %d characters allowed", rules.MaxLength)
	}

	for i, r := range id {
		if r < 32 || r == 127 {
			return fmt.Errorf("pit id cannot contain control characters at position %d", i)
		}
		if r == '/' || r == '\\' {
			return fmt.Errorf("pit id cannot contain path separators at position %d", i)
		}
	}

	return nil
}

// =============================================================================
// Unit Validation
// =============================================================================

// normalized units accepted from the source files; blank attributes pass
// (older exports omit them).
var (
	acceptedDepthUnits   = map[string]bool{"": true, "cm": true}
	acceptedTempUnits    = map[string]bool{"": true, "c": true, "celsius": true}
	acceptedDensityUnits = map[string]bool{"": true, "kg/m3": true, "kgpm3": true}
)

// ValidateUnits checks the unit attributes recorded on the observation
// against the dataset's normalized units. A file recorded in other units
// cannot be silently aligned and is treated as malformed.
func ValidateUnits(obs pit.Observation) error {
	if !acceptedDepthUnits[strings.ToLower(obs.DepthUnits)] {
		return errors.Wrapf(errors.ErrUnitMismatch, "depth units %q", obs.DepthUnits)
	}
	if !acceptedTempUnits[strings.ToLower(obs.TempUnits)] {
		return errors.Wrapf(errors.ErrUnitMismatch, "temperature units %q", obs.TempUnits)
	}
	if !acceptedDensityUnits[strings.ToLower(obs.DensityUnits)] {
		return errors.Wrapf(errors.ErrUnitMismatch, "density units %q", obs.DensityUnits)
	}
	return nil
}

// =============================================================================
// Profile Validation
// =============================================================================

// ValidateProfile checks that a profile's depth axis is usable: finite,
// non-negative depths with no duplicates.
func ValidateProfile(name string, p pit.Profile) error {
	seen := make(map[float64]bool, len(p))
	for _, s := range p {
		if math.IsNaN(s.DepthCm) || math.IsInf(s.DepthCm, 0) {
			return fmt.Errorf("%s profile: non-finite depth", name)
		}
		if s.DepthCm < 0 {
			return fmt.Errorf("%s profile: negative depth %g", name, s.DepthCm)
		}
		if seen[s.DepthCm] {
			return fmt.Errorf("%s profile: duplicate depth %g", name, s.DepthCm)
		}
		seen[s.DepthCm] = true
	}
	return nil
}

// =============================================================================
// Record Validation
// =============================================================================

// ValidateRecord applies all record-level rules. Any failure marks the
// source file malformed; the caller skips it.
func ValidateRecord(rec *pit.Record) error {
	v := errors.NewValidationErrors()

	if err := ValidateID(rec.ID, DefaultIDRules()); err != nil {
		v.Add(errors.Wrap(errors.ErrMalformedRecord, err.Error()))
	}
	if rec.Time.IsZero() {
		v.AddMissing("timestamp")
	}
	if len(rec.Temperature) == 0 {
		v.AddMissing("temperature profile")
	}
	if rec.SnowHeightCm < 0 || math.IsNaN(rec.SnowHeightCm) {
		v.AddField("heightOfSnowpack", fmt.Sprintf("%g", rec.SnowHeightCm))
	}
	if err := ValidateUnits(rec.Obs); err != nil {
		v.Add(err)
	}
	if err := ValidateProfile("temperature", rec.Temperature); err != nil {
		v.Add(errors.Wrap(errors.ErrMalformedRecord, err.Error()))
	}
	if err := ValidateProfile("density", rec.Density); err != nil {
		v.Add(errors.Wrap(errors.ErrMalformedRecord, err.Error()))
	}

	return v.Err()
}
