package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tmeis/snowgrid/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snowgrid.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.InputDir != "./snow_pit_obs" {
		t.Errorf("unexpected default input dir: %q", cfg.InputDir)
	}
	if cfg.Output != "snowpit_profiles.parquet" {
		t.Errorf("unexpected default output: %q", cfg.Output)
	}
	if cfg.WriteLayers {
		t.Error("layer output should be off by default")
	}
	if cfg.Compression != "zstd" {
		t.Errorf("unexpected default compression: %q", cfg.Compression)
	}
	if cfg.UTCOffsetHours != -7 {
		t.Errorf("unexpected default UTC offset: %d", cfg.UTCOffsetHours)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
input_dir: /data/pits
output: /data/out/profiles.parquet
write_layers: true
compression: snappy
log:
  level: debug
  json: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.InputDir != "/data/pits" {
		t.Errorf("input_dir not applied: %q", cfg.InputDir)
	}
	if cfg.Output != "/data/out/profiles.parquet" {
		t.Errorf("output not applied: %q", cfg.Output)
	}
	if !cfg.WriteLayers {
		t.Error("write_layers not applied")
	}
	if cfg.Compression != "snappy" {
		t.Errorf("compression not applied: %q", cfg.Compression)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Errorf("log config not applied: %+v", cfg.Log)
	}

	// Unset fields keep their defaults.
	if cfg.LayerOutput != "snowpit_layers.parquet" {
		t.Errorf("layer_output default lost: %q", cfg.LayerOutput)
	}
	if cfg.QueryLimit != 1000 {
		t.Errorf("query_limit default lost: %d", cfg.QueryLimit)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("CAMPAIGN_DIR", "/mnt/campaign")
	path := writeConfig(t, "input_dir: ${CAMPAIGN_DIR}/pits\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InputDir != "/mnt/campaign/pits" {
		t.Errorf("env not expanded: %q", cfg.InputDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty input dir", func(c *Config) { c.InputDir = "" }},
		{"empty output", func(c *Config) { c.Output = "" }},
		{"layers without path", func(c *Config) { c.WriteLayers = true; c.LayerOutput = "" }},
		{"unknown compression", func(c *Config) { c.Compression = "brotli" }},
		{"offset out of range", func(c *Config) { c.UTCOffsetHours = 30 }},
		{"non-positive query limit", func(c *Config) { c.QueryLimit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "input_dir: [unterminated\n")
	_, err := Load(path)
	if !errors.Is(err, errors.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
