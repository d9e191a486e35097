// Package pipeline orchestrates the batch aggregation run: scan the
// input directory, parse each observation file, align the survivors onto
// the shared grid, and write the output dataset.
//
// The run is a single linear pass. A malformed file is skipped with a
// warning; a missing input directory or an empty parse result aborts the
// run before any output is written.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tmeis/snowgrid/internal/errors"
	"github.com/tmeis/snowgrid/internal/grid"
	"github.com/tmeis/snowgrid/internal/loader"
	"github.com/tmeis/snowgrid/internal/logging"
	"github.com/tmeis/snowgrid/internal/parquet"
	"github.com/tmeis/snowgrid/internal/pit"
	"github.com/tmeis/snowgrid/internal/snowpilot"
)

// Result summarizes one aggregation run.
type Result struct {
	PitsAggregated int
	FilesSkipped   int
	ProfileRows    int64
	LayerRows      int64
	OutputPath     string
	LayerPath      string
}

// Run executes one aggregation over the configured input directory.
func Run(ctx context.Context, cfg *loader.Config) (*Result, error) {
	log := logging.Component("pipeline")

	records, skipped, err := parseDirectory(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.Wrap(errors.ErrNoValidData, cfg.InputDir)
	}

	ds, err := grid.Build(records)
	if err != nil {
		return nil, err
	}
	log.Info("aggregated onto grid",
		"pits", ds.NumPits(), "depths", ds.NumDepths(), "skipped", skipped)

	result := &Result{
		PitsAggregated: ds.NumPits(),
		FilesSkipped:   skipped,
		OutputPath:     cfg.Output,
	}

	opts := parquet.Options{Compression: parquet.ParseCompressionType(cfg.Compression)}

	if err := writeProfiles(ds, cfg.Output, opts, result); err != nil {
		return nil, err
	}
	log.Info("wrote profile dataset", "path", cfg.Output, "rows", result.ProfileRows)

	if cfg.WriteLayers {
		if err := writeLayers(ds, cfg.LayerOutput, opts, result); err != nil {
			return nil, err
		}
		result.LayerPath = cfg.LayerOutput
		log.Info("wrote layer dataset", "path", cfg.LayerOutput, "rows", result.LayerRows)
	}

	return result, nil
}

// parseDirectory parses every regular file in the input directory,
// skipping malformed ones with a warning.
func parseDirectory(ctx context.Context, cfg *loader.Config, log *slog.Logger) ([]*pit.Record, int, error) {
	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrInputNotFound, cfg.InputDir)
	}

	parser := snowpilot.NewParserInZone(time.FixedZone("", cfg.UTCOffsetHours*3600))

	var records []*pit.Record
	skipped := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, skipped, err
		}
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(cfg.InputDir, entry.Name())
		rec, err := parser.ParseFile(path)
		if err != nil {
			skipped++
			log.Warn("skipping malformed file", "file", path, "error", err)
			continue
		}
		log.Debug("parsed pit", "file", path, "pit", rec.ID)
		records = append(records, rec)
	}

	return records, skipped, nil
}

func writeProfiles(ds *grid.Dataset, path string, opts parquet.Options, result *Result) error {
	w, err := parquet.NewProfileWriter(path, opts)
	if err != nil {
		return errors.Wrap(err, "create profile dataset")
	}

	if err := w.Write(parquet.ProfileRows(ds)); err != nil {
		w.Close()
		return errors.Wrap(err, "write profile dataset")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "close profile dataset")
	}

	result.ProfileRows = w.RowCount()
	return nil
}

func writeLayers(ds *grid.Dataset, path string, opts parquet.Options, result *Result) error {
	w, err := parquet.NewLayerWriter(path, opts)
	if err != nil {
		return errors.Wrap(err, "create layer dataset")
	}

	if err := w.Write(parquet.LayerRows(ds)); err != nil {
		w.Close()
		return errors.Wrap(err, "write layer dataset")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "close layer dataset")
	}

	result.LayerRows = w.RowCount()
	return nil
}
