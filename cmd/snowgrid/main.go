// snowgrid aggregates a directory of snow pit observation files into a
// single labeled columnar dataset, with read-only analysis commands over
// the result.
//
// Usage:
//
//	snowgrid [flags]           aggregate the input directory (default)
//	snowgrid [flags] stats     print summary statistics for the dataset
//	snowgrid [flags] explore   interactive SQL shell over the dataset
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tmeis/snowgrid/internal/errors"
	"github.com/tmeis/snowgrid/internal/explore"
	"github.com/tmeis/snowgrid/internal/loader"
	"github.com/tmeis/snowgrid/internal/logging"
	"github.com/tmeis/snowgrid/internal/parquet"
	"github.com/tmeis/snowgrid/internal/pipeline"
	"github.com/tmeis/snowgrid/internal/query"
	"github.com/tmeis/snowgrid/internal/stats"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfgPath := flag.String("config", "snowgrid.yaml", "config file path")
	input := flag.String("input", "", "input directory (overrides config)")
	output := flag.String("output", "", "profile dataset path (overrides config)")
	layers := flag.Bool("layers", false, "also write the layer dataset")
	layerOutput := flag.String("layer-output", "", "layer dataset path (overrides config)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error (overrides config)")
	logJSON := flag.Bool("log-json", false, "log as JSON")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("snowgrid", Version)
		return
	}

	cfg, err := loader.Load(*cfgPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = loader.DefaultConfig()
		} else {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI overrides
	if *input != "" {
		cfg.InputDir = *input
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *layers {
		cfg.WriteLayers = true
	}
	if *layerOutput != "" {
		cfg.LayerOutput = *layerOutput
		cfg.WriteLayers = true
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logJSON {
		cfg.Log.JSON = true
	}

	logging.Init(logging.ParseLevel(cfg.Log.Level), cfg.Log.JSON)
	log := logging.Component("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var runErr error
	switch cmd := flag.Arg(0); cmd {
	case "", "aggregate":
		runErr = runAggregate(ctx, cfg)
	case "stats":
		runErr = runStats(cfg)
	case "explore":
		runErr = runExplore(ctx, cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		flag.Usage()
		os.Exit(2)
	}

	if runErr != nil {
		log.Error("run failed", "error", runErr)
		os.Exit(1)
	}
}

func runAggregate(ctx context.Context, cfg *loader.Config) error {
	log := logging.Component("main")
	log.Info("snowgrid starting", "version", Version, "input", cfg.InputDir)

	result, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}

	log.Info("aggregation complete",
		"pits", result.PitsAggregated,
		"skipped", result.FilesSkipped,
		"rows", result.ProfileRows,
		"output", result.OutputPath)
	return nil
}

func runStats(cfg *loader.Config) error {
	r, err := parquet.NewProfileReader(cfg.Output)
	if err != nil {
		return errors.Wrap(errors.ErrNoDataset, cfg.Output)
	}
	defer r.Close()

	rows, err := r.ReadAll()
	if err != nil {
		return errors.Wrap(err, "read dataset")
	}

	stats.FromRows(rows).Render(os.Stdout)
	return nil
}

func runExplore(ctx context.Context, cfg *loader.Config) error {
	svc, err := query.Open(cfg.Output, cfg.LayerOutput, cfg.QueryLimit)
	if err != nil {
		return err
	}
	defer svc.Close()

	explore.New(ctx, svc).Run(ctx)
	return nil
}
