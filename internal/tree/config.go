// Package tree loads the children of table tree nodes on demand.
package tree

import (
	"context"
	"errors"
	"fmt"

	"github.com/rebeliceyang/pgdesk/internal/db/metadata"
	"github.com/rebeliceyang/pgdesk/internal/models"
)

// ErrUnknownNodeType is returned for node types without a loader
var ErrUnknownNodeType = errors.New("unknown tree node type")

// Params are the arguments of a GetChildren call
type Params struct {
	models.WorkspaceParams

	PageNo   int
	PageSize int

	// ExtraParams carries the workspace the request was made for
	ExtraParams models.WorkspaceParams

	// TableName is set when loading the children of a table node
	TableName string
}

// Offset returns the row offset for the 1-based page number
func (p Params) Offset() int {
	if p.PageNo <= 1 || p.PageSize <= 0 {
		return 0
	}
	return (p.PageNo - 1) * p.PageSize
}

// schema returns the schema to load from, defaulting to public
func (p Params) schema() string {
	if p.SchemaName == "" {
		return metadata.DefaultSchema
	}
	return p.SchemaName
}

// NodeConfig describes how to load the children of one node type
type NodeConfig struct {
	GetChildren func(ctx context.Context, p Params) ([]*models.TreeNode, error)
}

// Config maps node types to their loaders
type Config map[models.TreeNodeType]NodeConfig

// NewConfig returns the loaders for the tables container and table nodes
func NewConfig(resolver metadata.Resolver) Config {
	return Config{
		models.TreeNodeTypeTables: {
			GetChildren: func(ctx context.Context, p Params) ([]*models.TreeNode, error) {
				q, err := resolver.Querier(ctx, p.DataSourceID, p.DatabaseName)
				if err != nil {
					return nil, err
				}
				tables, err := metadata.ListTables(ctx, q, p.schema(), p.PageSize, p.Offset())
				if err != nil {
					return nil, err
				}
				return models.BuildTableNodes(p.DatabaseName, p.schema(), tables), nil
			},
		},
		models.TreeNodeTypeTable: {
			GetChildren: func(ctx context.Context, p Params) ([]*models.TreeNode, error) {
				if p.TableName == "" {
					return nil, fmt.Errorf("table name is required")
				}
				q, err := resolver.Querier(ctx, p.DataSourceID, p.DatabaseName)
				if err != nil {
					return nil, err
				}
				cols, err := metadata.GetTableColumns(ctx, q, p.schema(), p.TableName)
				if err != nil {
					return nil, err
				}
				return models.BuildColumnNodes(p.DatabaseName, p.schema(), p.TableName, cols), nil
			},
		},
	}
}

// GetChildren loads the children of a node of the given type
func (c Config) GetChildren(ctx context.Context, nodeType models.TreeNodeType, p Params) ([]*models.TreeNode, error) {
	nc, ok := c[nodeType]
	if !ok || nc.GetChildren == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, nodeType)
	}
	return nc.GetChildren(ctx, p)
}
