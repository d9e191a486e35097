// Package grid aligns parsed pit records onto shared dimensions.
//
// The aggregate is indexed on (pit, depth). The depth axis is the sorted
// union of every depth measured in any pit; each pit contributes exactly
// one cell for every axis depth, with explicit no-data markers where it
// has no measurement. The result is rectangular by construction: pits x
// depths, never a ragged set of rows.
package grid

import (
	"math"
	"sort"

	"github.com/tmeis/snowgrid/internal/errors"
	"github.com/tmeis/snowgrid/internal/pit"
)

// Cell is one value on the grid. Valid is false where the pit has no
// measurement at the cell's depth; Value is NaN there.
type Cell struct {
	Value float64
	Valid bool
}

// Entry is one pit aligned onto the shared depth axis. Temperature and
// Density have the same length as the dataset's depth axis.
type Entry struct {
	Record      *pit.Record
	Temperature []Cell
	Density     []Cell
}

// Dataset is the rectangular aggregate of all pits.
type Dataset struct {
	// Depths is the shared depth axis in centimeters, ascending.
	Depths []float64

	// Entries holds one aligned entry per pit, sorted by pit id then
	// observation time so the aggregate is independent of input order.
	Entries []Entry
}

// Build aligns records onto the shared grid. Records are not mutated.
func Build(records []*pit.Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, errors.ErrNoValidData
	}

	sorted := make([]*pit.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ID != sorted[j].ID {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].Time.Before(sorted[j].Time)
	})

	depths := unionDepths(sorted)

	ds := &Dataset{
		Depths:  depths,
		Entries: make([]Entry, 0, len(sorted)),
	}
	for _, rec := range sorted {
		ds.Entries = append(ds.Entries, Entry{
			Record:      rec,
			Temperature: alignProfile(rec.Temperature, depths),
			Density:     alignProfile(rec.Density, depths),
		})
	}

	return ds, nil
}

// unionDepths collects the sorted union of all measured depths across all
// profiles of all records.
func unionDepths(records []*pit.Record) []float64 {
	set := make(map[float64]struct{})
	for _, rec := range records {
		for _, s := range rec.Temperature {
			set[s.DepthCm] = struct{}{}
		}
		for _, s := range rec.Density {
			set[s.DepthCm] = struct{}{}
		}
	}

	depths := make([]float64, 0, len(set))
	for d := range set {
		depths = append(depths, d)
	}
	sort.Float64s(depths)
	return depths
}

// alignProfile places a profile's samples onto the axis, filling the
// depths the profile did not measure with no-data cells.
func alignProfile(p pit.Profile, depths []float64) []Cell {
	byDepth := make(map[float64]float64, len(p))
	for _, s := range p {
		byDepth[s.DepthCm] = s.Value
	}

	cells := make([]Cell, len(depths))
	for i, d := range depths {
		if v, ok := byDepth[d]; ok {
			cells[i] = Cell{Value: v, Valid: true}
		} else {
			cells[i] = Cell{Value: math.NaN(), Valid: false}
		}
	}
	return cells
}

// NumPits returns the number of pits on the grid.
func (d *Dataset) NumPits() int {
	return len(d.Entries)
}

// NumDepths returns the length of the shared depth axis.
func (d *Dataset) NumDepths() int {
	return len(d.Depths)
}

// PitIDs returns the pit identifiers in grid order.
func (d *Dataset) PitIDs() []string {
	ids := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		ids[i] = e.Record.ID
	}
	return ids
}
