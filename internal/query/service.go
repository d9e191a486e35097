// Package query provides read-only SQL access to the output dataset.
//
// It uses DuckDB with read_parquet views over the written files, so the
// stats and explore commands see exactly what any external consumer of
// the dataset sees.
package query

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/tmeis/snowgrid/internal/errors"
)

// Service runs queries over the output Parquet files.
type Service struct {
	db     *sql.DB
	limit  int
	tables []string
}

// Result is one query result, stringified for display.
type Result struct {
	Columns []string
	Rows    [][]string
}

// Open creates a query service over the profile dataset and, when the
// path is non-empty and present, the layer dataset. The datasets are
// exposed as the views "profiles" and "layers".
func Open(profilePath, layerPath string, limit int) (*Service, error) {
	if _, err := os.Stat(profilePath); err != nil {
		return nil, errors.Wrap(errors.ErrNoDataset, profilePath)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Service{db: db, limit: limit}

	if err := s.createView("profiles", profilePath); err != nil {
		db.Close()
		return nil, err
	}
	s.tables = append(s.tables, "profiles")

	if layerPath != "" {
		if _, err := os.Stat(layerPath); err == nil {
			if err := s.createView("layers", layerPath); err != nil {
				db.Close()
				return nil, err
			}
			s.tables = append(s.tables, "layers")
		}
	}

	return s, nil
}

func (s *Service) createView(name, path string) error {
	stmt := fmt.Sprintf("CREATE VIEW %s AS SELECT * FROM read_parquet('%s')",
		name, strings.ReplaceAll(path, "'", "''"))
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("create view %s: %w", name, err)
	}
	return nil
}

// Tables returns the view names available to queries.
func (s *Service) Tables() []string {
	return s.tables
}

// Columns returns the column names of a view.
func (s *Service) Columns(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT column_name FROM information_schema.columns WHERE table_name = ? ORDER BY ordinal_position",
		table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

// Query executes a read-only SQL statement and returns stringified
// results, capped at the service's row limit.
func (s *Service) Query(ctx context.Context, sqlText string) (*Result, error) {
	rows, err := s.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: cols}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if len(result.Rows) >= s.limit {
			break
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		result.Rows = append(result.Rows, row)
	}

	return result, rows.Err()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case float64:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Close closes the underlying database.
func (s *Service) Close() error {
	return s.db.Close()
}
