package metadata

import (
	"context"
	"fmt"

	"github.com/rebeliceyang/pgdesk/internal/models"
)

// DefaultSchema is used when no schema is selected
const DefaultSchema = "public"

// Schema represents a PostgreSQL schema
type Schema struct {
	Name  string
	Owner string
}

// ListSchemas returns the user schemas of the current database
func ListSchemas(ctx context.Context, q Querier) ([]Schema, error) {
	query := `
		SELECT
			nspname as name,
			pg_catalog.pg_get_userbyid(nspowner) as owner
		FROM pg_catalog.pg_namespace
		WHERE nspname NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
		  AND nspname NOT LIKE 'pg_temp_%'
		  AND nspname NOT LIKE 'pg_toast_temp_%'
		ORDER BY nspname;
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	schemas := make([]Schema, 0, len(rows))
	for _, row := range rows {
		schemas = append(schemas, Schema{
			Name:  toString(row["name"]),
			Owner: toString(row["owner"]),
		})
	}

	return schemas, nil
}

// ListTables returns one page of the tables in a schema, ordered by name.
// A limit of zero or less returns every table.
func ListTables(ctx context.Context, q Querier, schema string, limit, offset int) ([]models.TableMeta, error) {
	if schema == "" {
		schema = DefaultSchema
	}

	query := `
		SELECT
			n.nspname as schema,
			c.relname as name,
			GREATEST(c.reltuples, 0)::bigint as estimate,
			pg_catalog.pg_size_pretty(pg_catalog.pg_total_relation_size(c.oid)) as size
		FROM pg_catalog.pg_class c
		JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relkind IN ('r', 'p')
		ORDER BY c.relname
	`
	args := []interface{}{schema}
	if limit > 0 {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables of %s: %w", schema, err)
	}

	tables := make([]models.TableMeta, 0, len(rows))
	for _, row := range rows {
		tables = append(tables, models.TableMeta{
			Schema:        toString(row["schema"]),
			Name:          toString(row["name"]),
			EstimatedRows: toInt64(row["estimate"]),
			Size:          toString(row["size"]),
		})
	}

	return tables, nil
}
