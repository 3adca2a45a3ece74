package tree

import (
	"context"
	"errors"
	"testing"

	"github.com/rebeliceyang/pgdesk/internal/db/metadata"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQuerier struct {
	rows []map[string]interface{}
	args []interface{}
}

func (q *recordingQuerier) Query(_ context.Context, _ string, args ...interface{}) ([]map[string]interface{}, error) {
	q.args = args
	return q.rows, nil
}

type fakeResolver struct {
	q        metadata.Querier
	err      error
	source   string
	database string
}

func (r *fakeResolver) Querier(_ context.Context, dataSourceID, database string) (metadata.Querier, error) {
	r.source, r.database = dataSourceID, database
	return r.q, r.err
}

func TestConfig_Tables(t *testing.T) {
	q := &recordingQuerier{rows: []map[string]interface{}{
		{"schema": "billing", "name": "invoices", "estimate": int64(42), "size": "16 kB"},
	}}
	resolver := &fakeResolver{q: q}
	ws := models.WorkspaceParams{DataSourceID: "ds-1", DatabaseName: "shop", SchemaName: "billing"}

	nodes, err := NewConfig(resolver).GetChildren(context.Background(), models.TreeNodeTypeTables, Params{
		WorkspaceParams: ws,
		PageNo:          1,
		PageSize:        999,
		ExtraParams:     ws,
	})
	require.NoError(t, err)

	assert.Equal(t, "ds-1", resolver.source)
	assert.Equal(t, "shop", resolver.database)
	assert.Equal(t, []interface{}{"billing", 999, 0}, q.args)
	require.Len(t, nodes, 1)
	assert.Equal(t, "table:shop.billing.invoices", nodes[0].ID)
	assert.Equal(t, models.TreeNodeTypeTable, nodes[0].Type)
}

func TestConfig_TablesDefaultSchemaAndPaging(t *testing.T) {
	q := &recordingQuerier{}

	_, err := NewConfig(&fakeResolver{q: q}).GetChildren(context.Background(), models.TreeNodeTypeTables, Params{
		WorkspaceParams: models.WorkspaceParams{DataSourceID: "ds-1", DatabaseName: "shop"},
		PageNo:          3,
		PageSize:        10,
	})
	require.NoError(t, err)

	assert.Equal(t, []interface{}{"public", 10, 20}, q.args)
}

func TestConfig_TableColumns(t *testing.T) {
	q := &recordingQuerier{rows: []map[string]interface{}{
		{"column_name": "id", "data_type": "integer"},
		{"column_name": "total", "data_type": "numeric"},
	}}

	nodes, err := NewConfig(&fakeResolver{q: q}).GetChildren(context.Background(), models.TreeNodeTypeTable, Params{
		WorkspaceParams: models.WorkspaceParams{DataSourceID: "ds-1", DatabaseName: "shop", SchemaName: "public"},
		TableName:       "orders",
	})
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	assert.Equal(t, "total (numeric)", nodes[1].Label)
	assert.Equal(t, []interface{}{"public", "orders"}, q.args)
}

func TestConfig_Errors(t *testing.T) {
	cfg := NewConfig(&fakeResolver{err: errors.New("no route to host")})
	ctx := context.Background()

	_, err := cfg.GetChildren(ctx, models.TreeNodeTypeColumn, Params{})
	assert.ErrorIs(t, err, ErrUnknownNodeType)

	_, err = cfg.GetChildren(ctx, models.TreeNodeTypeTable, Params{})
	assert.Error(t, err)

	_, err = cfg.GetChildren(ctx, models.TreeNodeTypeTables, Params{})
	assert.EqualError(t, err, "no route to host")
}
