package metadata

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the per-database schema queries of LoadDatabaseAndSchema
const DefaultConcurrency = 4

// Catalog builds the database/schema structure the workspace selector shows
type Catalog struct {
	resolver    Resolver
	concurrency int
	logger      *log.Logger
}

// NewCatalog creates a catalog reader
func NewCatalog(resolver Resolver, concurrency int, logger *log.Logger) *Catalog {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Catalog{
		resolver:    resolver,
		concurrency: concurrency,
		logger:      logger.WithPrefix("catalog"),
	}
}

// DatabaseAndSchema loads the databases and schemas of a data source.
// Connections that do not list all databases get the flat schema list of
// their configured database.
func (c *Catalog) DatabaseAndSchema(ctx context.Context, conn *models.Connection) (*models.DatabaseAndSchema, error) {
	q, err := c.resolver.Querier(ctx, conn.ID, conn.Config.Database)
	if err != nil {
		return nil, err
	}

	if !conn.Config.ListAllDatabases {
		schemas, err := ListSchemas(ctx, q)
		if err != nil {
			return nil, err
		}
		return &models.DatabaseAndSchema{Schemas: toModelSchemas(schemas)}, nil
	}

	return c.LoadDatabaseAndSchema(ctx, conn.ID, q)
}

// LoadDatabaseAndSchema lists the databases reachable through q and loads
// the schemas of each one. Database order is preserved. A database whose
// schemas cannot be read keeps nil schemas.
func (c *Catalog) LoadDatabaseAndSchema(ctx context.Context, dataSourceID string, q Querier) (*models.DatabaseAndSchema, error) {
	dbs, err := ListDatabases(ctx, q)
	if err != nil {
		return nil, err
	}

	result := &models.DatabaseAndSchema{Databases: make([]models.Database, len(dbs))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, db := range dbs {
		result.Databases[i].Name = db.Name
		g.Go(func() error {
			dq, err := c.resolver.Querier(gctx, dataSourceID, db.Name)
			if err != nil {
				c.logger.Warn("skipping schemas", "database", db.Name, "err", err)
				return nil
			}
			schemas, err := ListSchemas(gctx, dq)
			if err != nil {
				c.logger.Warn("skipping schemas", "database", db.Name, "err", err)
				return nil
			}
			result.Databases[i].Schemas = toModelSchemas(schemas)
			return nil
		})
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to load schemas: %w", err)
	}
	return result, nil
}

func toModelSchemas(schemas []Schema) []models.Schema {
	out := make([]models.Schema, len(schemas))
	for i, s := range schemas {
		out[i] = models.Schema{Name: s.Name}
	}
	return out
}
