package query

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/tmeis/snowgrid/internal/errors"
	"github.com/tmeis/snowgrid/internal/parquet"
)

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.parquet")

	w, err := parquet.NewProfileWriter(path, parquet.DefaultOptions())
	if err != nil {
		t.Fatalf("NewProfileWriter: %v", err)
	}
	rows := []parquet.ProfileRow{
		{PitID: "KP_01", TimeMs: 1675188000000, DepthCm: 0, TemperatureC: -8.5, TemperatureValid: true, DensityKgM3: 180, DensityValid: true, SnowHeightCm: 120},
		{PitID: "KP_01", TimeMs: 1675188000000, DepthCm: 10, TemperatureC: -6.2, TemperatureValid: true, DensityKgM3: math.NaN(), DensityValid: false, SnowHeightCm: 120},
		{PitID: "KP_02", TimeMs: 1675274400000, DepthCm: 0, TemperatureC: -10.0, TemperatureValid: true, DensityKgM3: 150, DensityValid: true, SnowHeightCm: 95},
	}
	if err := w.Write(rows); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func TestOpenMissingDataset(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.parquet"), "", 100)
	if !errors.Is(err, errors.ErrNoDataset) {
		t.Fatalf("expected ErrNoDataset, got %v", err)
	}
}

func TestQueryProfiles(t *testing.T) {
	path := writeDataset(t)

	svc, err := Open(path, "", 100)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer svc.Close()

	ctx := context.Background()

	result, err := svc.Query(ctx, "SELECT COUNT(DISTINCT pit_id) AS pits FROM profiles")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(result.Rows) != 1 || result.Rows[0][0] != "2" {
		t.Errorf("expected 2 distinct pits, got %+v", result.Rows)
	}

	result, err = svc.Query(ctx,
		"SELECT pit_id, MIN(temperature_c) FROM profiles WHERE temperature_valid GROUP BY pit_id ORDER BY pit_id")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.Rows[0][0] != "KP_01" || result.Rows[0][1] != "-8.5" {
		t.Errorf("unexpected first row: %v", result.Rows[0])
	}
}

func TestQueryLimit(t *testing.T) {
	path := writeDataset(t)

	svc, err := Open(path, "", 2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer svc.Close()

	result, err := svc.Query(context.Background(), "SELECT * FROM profiles")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Errorf("expected limit of 2 rows, got %d", len(result.Rows))
	}
}

func TestColumns(t *testing.T) {
	path := writeDataset(t)

	svc, err := Open(path, "", 100)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer svc.Close()

	cols, err := svc.Columns(context.Background(), "profiles")
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}

	want := map[string]bool{"pit_id": false, "depth_cm": false, "temperature_c": false}
	for _, c := range cols {
		if _, ok := want[c]; ok {
			want[c] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("column %s missing from metadata", name)
		}
	}

	if got := svc.Tables(); len(got) != 1 || got[0] != "profiles" {
		t.Errorf("expected only the profiles view, got %v", got)
	}
}
