package metadata

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQuerier answers queries by matching a fragment of the SQL text
type fakeQuerier struct {
	mu      sync.Mutex
	answers map[string][]map[string]interface{}
	errs    map[string]error
	calls   []call
}

type call struct {
	sql  string
	args []interface{}
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...interface{}) ([]map[string]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{sql: sql, args: args})
	for frag, err := range f.errs {
		if strings.Contains(sql, frag) {
			return nil, err
		}
	}
	for frag, rows := range f.answers {
		if strings.Contains(sql, frag) {
			return rows, nil
		}
	}
	return nil, nil
}

type fakeResolver struct {
	byDatabase map[string]Querier
}

func (r *fakeResolver) Querier(_ context.Context, _ string, database string) (Querier, error) {
	q, ok := r.byDatabase[database]
	if !ok {
		return nil, errors.New("database does not exist")
	}
	return q, nil
}

func schemaRows(names ...string) []map[string]interface{} {
	rows := make([]map[string]interface{}, len(names))
	for i, n := range names {
		rows[i] = map[string]interface{}{"name": n, "owner": "postgres"}
	}
	return rows
}

func TestListTables(t *testing.T) {
	q := &fakeQuerier{answers: map[string][]map[string]interface{}{
		"pg_class": {
			{"schema": "public", "name": "customers", "estimate": int64(1200), "size": "96 kB"},
			{"schema": "public", "name": "orders", "estimate": int64(0), "size": "8192 bytes"},
		},
	}}

	tables, err := ListTables(context.Background(), q, "", 999, 0)
	require.NoError(t, err)

	require.Len(t, tables, 2)
	assert.Equal(t, models.TableMeta{Schema: "public", Name: "customers", EstimatedRows: 1200, Size: "96 kB"}, tables[0])
	require.Len(t, q.calls, 1)
	assert.Equal(t, []interface{}{"public", 999, 0}, q.calls[0].args)
	assert.Contains(t, q.calls[0].sql, "LIMIT $2 OFFSET $3")
}

func TestListTablesWithoutLimit(t *testing.T) {
	q := &fakeQuerier{}

	tables, err := ListTables(context.Background(), q, "billing", 0, 0)
	require.NoError(t, err)

	assert.Empty(t, tables)
	assert.Equal(t, []interface{}{"billing"}, q.calls[0].args)
	assert.NotContains(t, q.calls[0].sql, "LIMIT")
}

func TestGetTableColumns(t *testing.T) {
	q := &fakeQuerier{answers: map[string][]map[string]interface{}{
		"information_schema.columns": {
			{"column_name": "id", "data_type": "integer", "udt_name": "int4", "nullable": false, "primary_key": true, "is_array": false, "column_default": "nextval('orders_id_seq'::regclass)"},
			{"column_name": "payload", "data_type": "jsonb", "udt_name": "jsonb", "nullable": true, "primary_key": false, "is_array": false, "column_default": nil},
		},
	}}

	cols, err := GetTableColumns(context.Background(), q, "public", "orders")
	require.NoError(t, err)

	require.Len(t, cols, 2)
	assert.True(t, cols[0].PrimaryKey)
	require.NotNil(t, cols[0].Default)
	assert.Nil(t, cols[1].Default)
	assert.True(t, cols[1].IsJsonb)
	assert.True(t, cols[1].Nullable)
}

func TestDescribeTable(t *testing.T) {
	q := &fakeQuerier{answers: map[string][]map[string]interface{}{
		"information_schema.columns": {{"column_name": "id", "data_type": "integer"}},
		"pg_constraint": {{
			"constraint_name": "orders_pkey",
			"constraint_type": "p",
			"definition":      "PRIMARY KEY (id)",
			"columns":         []interface{}{"id"},
			"foreign_table":   "",
			"foreign_columns": []interface{}{},
		}},
		"pg_indexes": {{"indexname": "orders_pkey", "indexdef": "CREATE UNIQUE INDEX orders_pkey ON public.orders USING btree (id)"}},
	}}

	detail, err := DescribeTable(context.Background(), q, "", "orders")
	require.NoError(t, err)

	assert.Equal(t, "public", detail.Schema)
	assert.Len(t, detail.Columns, 1)
	require.Len(t, detail.Constraints, 1)
	assert.Equal(t, []string{"id"}, detail.Constraints[0].Columns)
	assert.Equal(t, "PK", FormatConstraintType(detail.Constraints[0].Type))
	assert.Len(t, detail.Indexes, 1)
}

func TestDescribeTableError(t *testing.T) {
	boom := errors.New("permission denied")
	q := &fakeQuerier{errs: map[string]error{"pg_indexes": boom}}

	_, err := DescribeTable(context.Background(), q, "public", "orders")

	assert.ErrorIs(t, err, boom)
}

func TestCatalog_LoadDatabaseAndSchemaKeepsOrder(t *testing.T) {
	root := &fakeQuerier{answers: map[string][]map[string]interface{}{
		"pg_database": {{"name": "analytics"}, {"name": "broken"}, {"name": "shop"}},
	}}
	resolver := &fakeResolver{byDatabase: map[string]Querier{
		"postgres":  root,
		"analytics": &fakeQuerier{answers: map[string][]map[string]interface{}{"pg_namespace": schemaRows("public", "raw")}},
		"broken":    &fakeQuerier{errs: map[string]error{"pg_namespace": errors.New("permission denied")}},
		"shop":      &fakeQuerier{answers: map[string][]map[string]interface{}{"pg_namespace": schemaRows("billing", "public")}},
	}}
	catalog := NewCatalog(resolver, 2, nil)

	das, err := catalog.DatabaseAndSchema(context.Background(), models.NewConnection(models.ConnectionConfig{
		ID:               "1",
		ListAllDatabases: true,
	}))
	require.NoError(t, err)

	require.Len(t, das.Databases, 3)
	assert.Equal(t, "analytics", das.Databases[0].Name)
	assert.Equal(t, []models.Schema{{Name: "public"}, {Name: "raw"}}, das.Databases[0].Schemas)
	assert.Equal(t, "broken", das.Databases[1].Name)
	assert.Nil(t, das.Databases[1].Schemas)
	assert.Equal(t, []models.Schema{{Name: "billing"}, {Name: "public"}}, das.Databases[2].Schemas)
	assert.Empty(t, das.Schemas)
}

func TestCatalog_FlatSchemas(t *testing.T) {
	resolver := &fakeResolver{byDatabase: map[string]Querier{
		"shop": &fakeQuerier{answers: map[string][]map[string]interface{}{"pg_namespace": schemaRows("public", "billing")}},
	}}
	catalog := NewCatalog(resolver, 0, nil)

	das, err := catalog.DatabaseAndSchema(context.Background(), models.NewConnection(models.ConnectionConfig{ID: "1", Database: "shop"}))
	require.NoError(t, err)

	assert.True(t, das.Flat())
	assert.Equal(t, []models.Schema{{Name: "public"}, {Name: "billing"}}, das.Schemas)
}

func TestCatalog_UnreachableSource(t *testing.T) {
	catalog := NewCatalog(&fakeResolver{}, 0, nil)

	_, err := catalog.DatabaseAndSchema(context.Background(), models.NewConnection(models.ConnectionConfig{ID: "1"}))

	assert.Error(t, err)
}
