// Package parquet implements Parquet file reading and writing for the
// aggregated snow pit dataset.
//
// The package provides:
//   - ProfileWriter/ProfileReader for the gridded profile dataset
//   - LayerWriter/LayerReader for the stratigraphy dataset
//   - Support for multiple compression algorithms (snappy, zstd, lz4, gzip)
//   - Type conversion between grid entries and Parquet rows
//
// Dataset units are fixed by normalization and recorded as file-level
// key/value metadata so downstream array tooling can label axes.
package parquet
