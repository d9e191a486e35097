package parquet

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// ProfileReader reads gridded profile rows from a Parquet file.
type ProfileReader struct {
	file   *os.File
	reader *parquet.GenericReader[ProfileRow]
	path   string
}

// NewProfileReader creates a new profile Parquet reader.
func NewProfileReader(path string) (*ProfileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	reader := parquet.NewGenericReader[ProfileRow](f)

	return &ProfileReader{
		file:   f,
		reader: reader,
		path:   path,
	}, nil
}

// ReadAll reads all profile rows from the file.
func (r *ProfileReader) ReadAll() ([]ProfileRow, error) {
	rows := make([]ProfileRow, r.reader.NumRows())

	n, err := r.reader.Read(rows)
	if err != nil && err != io.EOF {
		return nil, err
	}

	return rows[:n], nil
}

// NumRows returns the total number of rows in the file.
func (r *ProfileReader) NumRows() int64 {
	return r.reader.NumRows()
}

// Close closes the reader.
func (r *ProfileReader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// Path returns the file path.
func (r *ProfileReader) Path() string {
	return r.path
}

// LayerReader reads stratigraphy rows from a Parquet file.
type LayerReader struct {
	file   *os.File
	reader *parquet.GenericReader[LayerRow]
	path   string
}

// NewLayerReader creates a new layer Parquet reader.
func NewLayerReader(path string) (*LayerReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	reader := parquet.NewGenericReader[LayerRow](f)

	return &LayerReader{
		file:   f,
		reader: reader,
		path:   path,
	}, nil
}

// ReadAll reads all layer rows from the file.
func (r *LayerReader) ReadAll() ([]LayerRow, error) {
	rows := make([]LayerRow, r.reader.NumRows())

	n, err := r.reader.Read(rows)
	if err != nil && err != io.EOF {
		return nil, err
	}

	return rows[:n], nil
}

// NumRows returns the total number of rows in the file.
func (r *LayerReader) NumRows() int64 {
	return r.reader.NumRows()
}

// Close closes the reader.
func (r *LayerReader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// Path returns the file path.
func (r *LayerReader) Path() string {
	return r.path
}
