package metadata

import (
	"context"
	"fmt"
)

// Database represents a PostgreSQL database
type Database struct {
	Name  string
	Owner string
	Size  string
}

// ListDatabases returns every database that accepts connections
func ListDatabases(ctx context.Context, q Querier) ([]Database, error) {
	query := `
		SELECT
			datname as name,
			pg_catalog.pg_get_userbyid(datdba) as owner,
			pg_catalog.pg_size_pretty(pg_catalog.pg_database_size(datname)) as size
		FROM pg_catalog.pg_database
		WHERE datistemplate = false AND datallowconn
		ORDER BY datname;
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}

	databases := make([]Database, 0, len(rows))
	for _, row := range rows {
		databases = append(databases, Database{
			Name:  toString(row["name"]),
			Owner: toString(row["owner"]),
			Size:  toString(row["size"]),
		})
	}

	return databases, nil
}
