package metadata

import (
	"context"

	"github.com/rebeliceyang/pgdesk/internal/models"
	"golang.org/x/sync/errgroup"
)

// Index represents a PostgreSQL index
type Index struct {
	Name       string
	Definition string
}

// ListTableIndexes returns all indexes for a specific table
func ListTableIndexes(ctx context.Context, q Querier, schema, table string) ([]Index, error) {
	query := `
		SELECT indexname, indexdef
		FROM pg_indexes
		WHERE schemaname = $1 AND tablename = $2
		ORDER BY indexname;
	`

	rows, err := q.Query(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}

	indexes := make([]Index, 0, len(rows))
	for _, row := range rows {
		indexes = append(indexes, Index{
			Name:       toString(row["indexname"]),
			Definition: toString(row["indexdef"]),
		})
	}

	return indexes, nil
}

// TableDetail is what the preview pane shows for a table
type TableDetail struct {
	Schema      string
	Table       string
	Columns     []models.ColumnInfo
	Constraints []models.Constraint
	Indexes     []Index
}

// DescribeTable loads columns, constraints and indexes of a table concurrently
func DescribeTable(ctx context.Context, q Querier, schema, table string) (*TableDetail, error) {
	if schema == "" {
		schema = DefaultSchema
	}
	detail := &TableDetail{Schema: schema, Table: table}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cols, err := GetTableColumns(gctx, q, schema, table)
		detail.Columns = cols
		return err
	})
	g.Go(func() error {
		cons, err := GetConstraints(gctx, q, schema, table)
		detail.Constraints = cons
		return err
	})
	g.Go(func() error {
		idx, err := ListTableIndexes(gctx, q, schema, table)
		detail.Indexes = idx
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}
