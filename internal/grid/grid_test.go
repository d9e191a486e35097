package grid

import (
	"math"
	"testing"
	"time"

	"github.com/tmeis/snowgrid/internal/errors"
	"github.com/tmeis/snowgrid/internal/pit"
)

func testRecord(id string, ts int64, temp, density pit.Profile) *pit.Record {
	return &pit.Record{
		ID:           id,
		Time:         time.UnixMilli(ts),
		SnowHeightCm: 100,
		Temperature:  temp,
		Density:      density,
	}
}

func TestBuildUnionAxis(t *testing.T) {
	records := []*pit.Record{
		testRecord("B", 2000,
			pit.Profile{{DepthCm: 0, Value: -1}, {DepthCm: 20, Value: -2}},
			pit.Profile{{DepthCm: 0, Value: 200}}),
		testRecord("A", 1000,
			pit.Profile{{DepthCm: 0, Value: -3}, {DepthCm: 10, Value: -4}},
			pit.Profile{{DepthCm: 5, Value: 150}}),
	}

	ds, err := Build(records)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	wantDepths := []float64{0, 5, 10, 20}
	if len(ds.Depths) != len(wantDepths) {
		t.Fatalf("expected %d depths, got %d", len(wantDepths), len(ds.Depths))
	}
	for i, d := range wantDepths {
		if ds.Depths[i] != d {
			t.Errorf("depth[%d]: expected %g, got %g", i, d, ds.Depths[i])
		}
	}

	// Entries sorted by pit id regardless of input order.
	if ids := ds.PitIDs(); ids[0] != "A" || ids[1] != "B" {
		t.Errorf("expected sorted pit ids, got %v", ids)
	}
}

func TestBuildRectangular(t *testing.T) {
	records := []*pit.Record{
		testRecord("A", 1000,
			pit.Profile{{DepthCm: 0, Value: -3}, {DepthCm: 10, Value: -4}},
			pit.Profile{{DepthCm: 0, Value: 150}}),
		testRecord("B", 2000,
			pit.Profile{{DepthCm: 20, Value: -1}},
			nil),
	}

	ds, err := Build(records)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, e := range ds.Entries {
		if len(e.Temperature) != ds.NumDepths() || len(e.Density) != ds.NumDepths() {
			t.Fatalf("entry %s not rectangular: temp=%d density=%d depths=%d",
				e.Record.ID, len(e.Temperature), len(e.Density), ds.NumDepths())
		}
	}

	// A measured temperature at 0 and 10 but not 20.
	a := ds.Entries[0]
	if !a.Temperature[0].Valid || !a.Temperature[1].Valid {
		t.Error("expected A temperature valid at 0 and 10")
	}
	if a.Temperature[2].Valid || !math.IsNaN(a.Temperature[2].Value) {
		t.Error("expected no-data marker for A temperature at 20")
	}

	// B has no density profile at all: every density cell is no-data.
	b := ds.Entries[1]
	for i, c := range b.Density {
		if c.Valid || !math.IsNaN(c.Value) {
			t.Errorf("expected no-data density cell at index %d for B", i)
		}
	}
}

func TestBuildOrderIndependent(t *testing.T) {
	a := testRecord("A", 1000,
		pit.Profile{{DepthCm: 0, Value: -3}}, pit.Profile{{DepthCm: 0, Value: 100}})
	b := testRecord("B", 2000,
		pit.Profile{{DepthCm: 10, Value: -1}}, pit.Profile{{DepthCm: 10, Value: 200}})
	c := testRecord("C", 3000,
		pit.Profile{{DepthCm: 5, Value: -2}}, pit.Profile{{DepthCm: 5, Value: 300}})

	ds1, err := Build([]*pit.Record{a, b, c})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ds2, err := Build([]*pit.Record{c, a, b})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if ds1.NumPits() != ds2.NumPits() || ds1.NumDepths() != ds2.NumDepths() {
		t.Fatal("shape depends on input order")
	}
	for i := range ds1.Entries {
		e1, e2 := ds1.Entries[i], ds2.Entries[i]
		if e1.Record.ID != e2.Record.ID {
			t.Fatalf("entry order depends on input order: %s vs %s", e1.Record.ID, e2.Record.ID)
		}
		for j := range ds1.Depths {
			if e1.Temperature[j].Valid != e2.Temperature[j].Valid {
				t.Fatal("cell validity depends on input order")
			}
		}
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	records := []*pit.Record{
		testRecord("B", 2000, pit.Profile{{DepthCm: 0, Value: -1}}, nil),
		testRecord("A", 1000, pit.Profile{{DepthCm: 5, Value: -2}}, nil),
	}

	if _, err := Build(records); err != nil {
		t.Fatalf("Build: %v", err)
	}

	if records[0].ID != "B" || records[1].ID != "A" {
		t.Error("Build reordered the caller's slice")
	}
}

func TestBuildEmpty(t *testing.T) {
	_, err := Build(nil)
	if !errors.Is(err, errors.ErrNoValidData) {
		t.Fatalf("expected ErrNoValidData, got %v", err)
	}
}

func TestPitIDsDuplicateLocation(t *testing.T) {
	// Same location dug twice on different days stays two entries,
	// ordered by time.
	records := []*pit.Record{
		testRecord("KP_01", 2000, pit.Profile{{DepthCm: 0, Value: -1}}, nil),
		testRecord("KP_01", 1000, pit.Profile{{DepthCm: 0, Value: -2}}, nil),
	}

	ds, err := Build(records)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ds.NumPits() != 2 {
		t.Fatalf("expected 2 entries, got %d", ds.NumPits())
	}
	if !ds.Entries[0].Record.Time.Before(ds.Entries[1].Record.Time) {
		t.Error("expected entries ordered by time within a pit id")
	}
}
