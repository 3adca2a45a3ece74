package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoot_FlattenShowsTopLevel(t *testing.T) {
	nodes := BuildTableNodes("shop", "public", []TableMeta{{Name: "orders"}, {Name: "users"}})
	root := NewRoot(nodes)

	visible := root.Flatten()

	require.Len(t, visible, 2)
	assert.Equal(t, "orders", visible[0].Label)
	assert.Same(t, root, visible[0].Parent)
	assert.True(t, root.Loaded)
}

func TestTreeNode_ExpandShowsColumns(t *testing.T) {
	root := NewRoot(BuildTableNodes("shop", "public", []TableMeta{{Name: "users"}}))
	users := root.FindByID("table:shop.public.users")
	require.NotNil(t, users)

	RefreshTreeChildren(users, BuildColumnNodes("shop", "public", "users", []ColumnInfo{
		{Name: "id", DataType: "integer"},
		{Name: "email", DataType: "text"},
	}))

	assert.Len(t, root.Flatten(), 1)

	users.Toggle()
	visible := root.Flatten()
	require.Len(t, visible, 3)
	assert.Equal(t, "id (integer)", visible[1].Label)
	assert.Equal(t, 2, visible[1].GetDepth())
	assert.Equal(t, []string{"users", "email (text)"}, visible[2].GetPath())
	assert.True(t, users.IsAncestorOf(visible[2]))
}

func TestTreeNode_ToggleColumnIsNoop(t *testing.T) {
	col := BuildColumnNodes("shop", "public", "users", []ColumnInfo{{Name: "id", DataType: "integer"}})[0]

	col.Toggle()

	assert.False(t, col.Expanded)
	assert.False(t, col.Selectable)
}

func TestTreeNode_ToggleUnloadedTable(t *testing.T) {
	table := NewTreeNode("table:a.b.c", TreeNodeTypeTable, "c")

	table.Toggle()
	assert.True(t, table.Expanded, "unloaded table may have children")

	table.Toggle()
	RefreshTreeChildren(table, nil)
	table.Toggle()
	assert.False(t, table.Expanded, "loaded table without columns stays collapsed")
}

func TestParseNodeID(t *testing.T) {
	nodeType, parts := ParseNodeID("table:shop.public.users")
	assert.Equal(t, "table", nodeType)
	assert.Equal(t, []string{"shop", "public", "users"}, parts)

	nodeType, parts = ParseNodeID("garbage")
	assert.Empty(t, nodeType)
	assert.Nil(t, parts)
}
