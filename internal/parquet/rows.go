package parquet

import (
	"github.com/tmeis/snowgrid/internal/grid"
	"github.com/tmeis/snowgrid/internal/pit"
)

// ProfileRow is one (pit, depth) cell of the gridded dataset in Parquet
// format. Pit-level metadata is denormalized onto every row so the file
// is self-describing for columnar query tools.
type ProfileRow struct {
	PitID            string  `parquet:"pit_id,zstd"`
	TimeMs           int64   `parquet:"time_ms"`
	DepthCm          float64 `parquet:"depth_cm"`
	TemperatureC     float64 `parquet:"temperature_c"`
	TemperatureValid bool    `parquet:"temperature_valid"`
	DensityKgM3      float64 `parquet:"density_kg_m3"`
	DensityValid     bool    `parquet:"density_valid"`
	SnowHeightCm     float64 `parquet:"snow_height_cm"`
	Latitude         float64 `parquet:"latitude"`
	Longitude        float64 `parquet:"longitude"`
	ElevationM       float64 `parquet:"elevation_m"`
	Aspect           string  `parquet:"aspect,optional,zstd"`
	Sky              string  `parquet:"sky,optional,zstd"`
	Precip           string  `parquet:"precip,optional,zstd"`
	WindSpeed        string  `parquet:"wind_speed,optional,zstd"`
	WindDir          string  `parquet:"wind_dir,optional,zstd"`
	Observer         string  `parquet:"observer,optional,zstd"`
	Affiliation      string  `parquet:"affiliation,optional,zstd"`
	Notes            string  `parquet:"notes,optional,zstd"`
}

// LayerRow is one stratigraphic layer in Parquet format.
type LayerRow struct {
	PitID                string  `parquet:"pit_id,zstd"`
	TimeMs               int64   `parquet:"time_ms"`
	LayerNumber          int32   `parquet:"layer_number"`
	StartDepthCm         float64 `parquet:"start_depth_cm"`
	EndDepthCm           float64 `parquet:"end_depth_cm"`
	GrainType            string  `parquet:"grain_type,optional,zstd"`
	GrainTypeSecondary   string  `parquet:"grain_type_secondary,optional,zstd"`
	GrainSizeMm          float64 `parquet:"grain_size_mm"`
	GrainSizeSecondaryMm float64 `parquet:"grain_size_secondary_mm"`
	Hardness             string  `parquet:"hardness,optional,zstd"`
	HardnessSecondary    string  `parquet:"hardness_secondary,optional,zstd"`
}

// ProfileRows flattens the gridded dataset into rows, one per (pit,
// depth) combination. Row order follows the grid: pits sorted by id and
// time, depths ascending, making repeated runs byte-stable.
func ProfileRows(ds *grid.Dataset) []ProfileRow {
	rows := make([]ProfileRow, 0, len(ds.Entries)*len(ds.Depths))
	for _, e := range ds.Entries {
		rec := e.Record
		for i, depth := range ds.Depths {
			rows = append(rows, ProfileRow{
				PitID:            rec.ID,
				TimeMs:           rec.Time.UnixMilli(),
				DepthCm:          depth,
				TemperatureC:     e.Temperature[i].Value,
				TemperatureValid: e.Temperature[i].Valid,
				DensityKgM3:      e.Density[i].Value,
				DensityValid:     e.Density[i].Valid,
				SnowHeightCm:     rec.SnowHeightCm,
				Latitude:         rec.Obs.Latitude,
				Longitude:        rec.Obs.Longitude,
				ElevationM:       rec.Obs.ElevationM,
				Aspect:           rec.Obs.Aspect,
				Sky:              rec.Obs.Sky,
				Precip:           rec.Obs.Precip,
				WindSpeed:        rec.Obs.WindSpeed,
				WindDir:          rec.Obs.WindDir,
				Observer:         observerLabel(rec.Observer),
				Affiliation:      rec.Observer.Affiliation,
				Notes:            rec.Obs.Notes,
			})
		}
	}
	return rows
}

// LayerRows flattens the stratigraphy of every pit on the grid.
func LayerRows(ds *grid.Dataset) []LayerRow {
	var rows []LayerRow
	for _, e := range ds.Entries {
		rec := e.Record
		for _, l := range rec.Layers {
			rows = append(rows, LayerRow{
				PitID:                rec.ID,
				TimeMs:               rec.Time.UnixMilli(),
				LayerNumber:          int32(l.Number),
				StartDepthCm:         l.StartDepthCm,
				EndDepthCm:           l.EndDepthCm,
				GrainType:            l.GrainType,
				GrainTypeSecondary:   l.GrainTypeSecondary,
				GrainSizeMm:          l.GrainSizeMm,
				GrainSizeSecondaryMm: l.GrainSizeSecondaryMm,
				Hardness:             l.Hardness,
				HardnessSecondary:    l.HardnessSecondary,
			})
		}
	}
	return rows
}

// observerLabel prefers the observer's username, falling back to the
// full or display name.
func observerLabel(o pit.Observer) string {
	if o.Username != "" {
		return o.Username
	}
	if o.First != "" || o.Last != "" {
		switch {
		case o.First == "":
			return o.Last
		case o.Last == "":
			return o.First
		default:
			return o.First + " " + o.Last
		}
	}
	return o.Name
}
