package parquet

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress"

	"github.com/tmeis/snowgrid/config"
	"github.com/tmeis/snowgrid/internal/errors"
)

// Options configures the Parquet writer.
type Options struct {
	// Compression algorithm
	Compression CompressionType
}

// CompressionType represents a Parquet compression algorithm.
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionSnappy
	CompressionZstd
	CompressionLZ4
	CompressionGzip
)

// DefaultOptions returns default Parquet options.
func DefaultOptions() Options {
	return Options{
		Compression: ParseCompressionType(config.DefaultCompression),
	}
}

// ParseCompressionType parses a compression type string.
func ParseCompressionType(s string) CompressionType {
	switch s {
	case "snappy":
		return CompressionSnappy
	case "zstd":
		return CompressionZstd
	case "lz4":
		return CompressionLZ4
	case "gzip":
		return CompressionGzip
	case "none", "":
		return CompressionNone
	default:
		return CompressionZstd
	}
}

// getCompression returns the parquet-go compression codec.
func getCompression(ct CompressionType) compress.Codec {
	switch ct {
	case CompressionSnappy:
		return &parquet.Snappy
	case CompressionZstd:
		return &parquet.Zstd
	case CompressionLZ4:
		return &parquet.Lz4Raw
	case CompressionGzip:
		return &parquet.Gzip
	default:
		return &parquet.Uncompressed
	}
}

// unitMetadata returns the file-level key/value metadata recording the
// dataset's normalized units.
func unitMetadata() []parquet.WriterOption {
	return []parquet.WriterOption{
		parquet.KeyValueMetadata("depth_units", config.DepthUnits),
		parquet.KeyValueMetadata("temperature_units", config.TemperatureUnits),
		parquet.KeyValueMetadata("density_units", config.DensityUnits),
		parquet.KeyValueMetadata("grain_size_units", config.GrainSizeUnits),
	}
}

// ProfileWriter writes gridded profile rows to a Parquet file.
type ProfileWriter struct {
	mu       sync.Mutex
	path     string
	file     *os.File
	writer   *parquet.GenericWriter[ProfileRow]
	rowCount int64
	closed   bool
}

// NewProfileWriter creates a new profile Parquet writer.
func NewProfileWriter(path string, opts Options) (*ProfileWriter, error) {
	f, err := createOutput(path)
	if err != nil {
		return nil, err
	}

	writerOpts := append(unitMetadata(),
		parquet.Compression(getCompression(opts.Compression)))

	return &ProfileWriter{
		path:   path,
		file:   f,
		writer: parquet.NewGenericWriter[ProfileRow](f, writerOpts...),
	}, nil
}

// Write writes profile rows to the Parquet file.
func (w *ProfileWriter) Write(rows []ProfileRow) error {
	if len(rows) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return errors.ErrWriterClosed
	}

	n, err := w.writer.Write(rows)
	if err != nil {
		return fmt.Errorf("write rows: %w", err)
	}

	w.rowCount += int64(n)
	return nil
}

// Close flushes and closes the writer.
func (w *ProfileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close writer: %w", err)
	}

	return w.file.Close()
}

// RowCount returns the number of rows written.
func (w *ProfileWriter) RowCount() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rowCount
}

// Path returns the file path.
func (w *ProfileWriter) Path() string {
	return w.path
}

// LayerWriter writes stratigraphy rows to a Parquet file.
type LayerWriter struct {
	mu       sync.Mutex
	path     string
	file     *os.File
	writer   *parquet.GenericWriter[LayerRow]
	rowCount int64
	closed   bool
}

// NewLayerWriter creates a new layer Parquet writer.
func NewLayerWriter(path string, opts Options) (*LayerWriter, error) {
	f, err := createOutput(path)
	if err != nil {
		return nil, err
	}

	writerOpts := append(unitMetadata(),
		parquet.Compression(getCompression(opts.Compression)))

	return &LayerWriter{
		path:   path,
		file:   f,
		writer: parquet.NewGenericWriter[LayerRow](f, writerOpts...),
	}, nil
}

// Write writes layer rows to the Parquet file.
func (w *LayerWriter) Write(rows []LayerRow) error {
	if len(rows) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return errors.ErrWriterClosed
	}

	n, err := w.writer.Write(rows)
	if err != nil {
		return fmt.Errorf("write rows: %w", err)
	}

	w.rowCount += int64(n)
	return nil
}

// Close flushes and closes the writer.
func (w *LayerWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close writer: %w", err)
	}

	return w.file.Close()
}

// RowCount returns the number of rows written.
func (w *LayerWriter) RowCount() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rowCount
}

// Path returns the file path.
func (w *LayerWriter) Path() string {
	return w.path
}

// createOutput creates the output file, making parent directories as
// needed.
func createOutput(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	return f, nil
}
