package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

func init() {
	// Initialize bubblezone for tests that call View() methods
	zone.NewGlobal()
}

func buildTestTables(names ...string) *models.TreeNode {
	metas := make([]models.TableMeta, len(names))
	for i, n := range names {
		metas[i] = models.TableMeta{Schema: "public", Name: n, EstimatedRows: int64(i * 1500)}
	}
	return models.NewRoot(models.BuildTableNodes("shop", "public", metas))
}

func TestNewTreeView(t *testing.T) {
	root := buildTestTables("orders")

	tv := NewTreeView(root, theme.DefaultTheme())

	if tv.Root != root {
		t.Error("Root not set correctly")
	}
	if tv.CursorIndex != 0 {
		t.Errorf("Expected initial cursor index 0, got %d", tv.CursorIndex)
	}
}

func TestTreeView_EmptyState(t *testing.T) {
	tv := NewTreeView(nil, theme.DefaultTheme())
	tv.EmptyText = "Nothing here"

	if view := tv.View(); !strings.Contains(view, "Nothing here") {
		t.Error("Expected empty state message for nil root")
	}

	tv.SetRoot(models.NewRoot(nil))
	if view := tv.View(); !strings.Contains(view, "Nothing here") {
		t.Error("Expected empty state message for empty root")
	}
}

func TestTreeView_RendersRowCounts(t *testing.T) {
	tv := NewTreeView(buildTestTables("orders", "customers"), theme.DefaultTheme())
	tv.Width = 40

	view := tv.View()

	if !strings.Contains(view, "orders") || !strings.Contains(view, "customers") {
		t.Errorf("Expected both tables in view, got:\n%s", view)
	}
	if !strings.Contains(view, "~1,500") {
		t.Errorf("Expected humanized row count in view, got:\n%s", view)
	}
}

func TestTreeView_NavigationUpDown(t *testing.T) {
	tv := NewTreeView(buildTestTables("a", "b", "c"), theme.DefaultTheme())

	tv, _ = tv.Update(tea.KeyMsg{Type: tea.KeyDown})
	tv, _ = tv.Update(tea.KeyMsg{Type: tea.KeyDown})
	if tv.CursorIndex != 2 {
		t.Errorf("Expected cursor at 2, got %d", tv.CursorIndex)
	}

	// Move down at bottom (should stay at 2)
	tv, _ = tv.Update(tea.KeyMsg{Type: tea.KeyDown})
	if tv.CursorIndex != 2 {
		t.Errorf("Expected cursor to stay at 2 at bottom, got %d", tv.CursorIndex)
	}

	tv, _ = tv.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if tv.CursorIndex != 0 {
		t.Errorf("Expected cursor at 0 after g, got %d", tv.CursorIndex)
	}

	tv, _ = tv.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if tv.CursorIndex != 2 {
		t.Errorf("Expected cursor at 2 after G, got %d", tv.CursorIndex)
	}
}

func TestTreeView_ExpandEmitsMsg(t *testing.T) {
	tv := NewTreeView(buildTestTables("orders"), theme.DefaultTheme())

	tv, cmd := tv.Update(tea.KeyMsg{Type: tea.KeyRight})
	if cmd == nil {
		t.Fatal("Expected a command when expanding an unloaded table")
	}

	msg, ok := cmd().(TreeNodeExpandedMsg)
	if !ok {
		t.Fatalf("Expected TreeNodeExpandedMsg, got %T", cmd())
	}
	if !msg.Expanded || msg.Node.Label != "orders" {
		t.Errorf("Unexpected expand message: %+v", msg)
	}

	// Loaded with columns, the table shows them below
	models.RefreshTreeChildren(msg.Node, models.BuildColumnNodes("shop", "public", "orders", []models.ColumnInfo{
		{Name: "id", DataType: "integer", PrimaryKey: true},
	}))
	if n := len(tv.VisibleNodes()); n != 2 {
		t.Fatalf("Expected 2 visible nodes after expand, got %d", n)
	}

	// Left on a column moves to its table
	tv, _ = tv.Update(tea.KeyMsg{Type: tea.KeyDown})
	tv, _ = tv.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if tv.CursorIndex != 0 {
		t.Errorf("Expected cursor back on table, got %d", tv.CursorIndex)
	}

	// Left on the expanded table collapses it
	_, cmd = tv.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if cmd == nil {
		t.Fatal("Expected a command when collapsing")
	}
	if msg := cmd().(TreeNodeExpandedMsg); msg.Expanded {
		t.Error("Expected collapse message")
	}
}

func TestTreeView_EnterSelectsTable(t *testing.T) {
	tv := NewTreeView(buildTestTables("orders"), theme.DefaultTheme())

	_, cmd := tv.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected a command on enter")
	}
	msg, ok := cmd().(TreeNodeSelectedMsg)
	if !ok || msg.Node.Type != models.TreeNodeTypeTable {
		t.Errorf("Expected table selection, got %+v", msg)
	}
}

func TestTreeView_Filter(t *testing.T) {
	tv := NewTreeView(buildTestTables("orders", "order_items", "customers"), theme.DefaultTheme())

	tv.SetFilter("t:order")
	if !tv.Filtering() {
		t.Error("Expected filter to be active")
	}
	if n := len(tv.VisibleNodes()); n != 2 {
		t.Errorf("Expected 2 filtered nodes, got %d", n)
	}

	tv.SetFilter("")
	if tv.Filtering() {
		t.Error("Expected filter to be cleared")
	}
	if n := len(tv.VisibleNodes()); n != 3 {
		t.Errorf("Expected all 3 nodes after clearing filter, got %d", n)
	}
}

func TestTreeView_Scrolling(t *testing.T) {
	tv := NewTreeView(buildTestTables("a", "b", "c", "d", "e", "f"), theme.DefaultTheme())
	tv.Height = 3

	for i := 0; i < 5; i++ {
		tv, _ = tv.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	tv.View()

	if tv.ScrollOffset != 3 {
		t.Errorf("Expected scroll offset 3, got %d", tv.ScrollOffset)
	}
	if node := tv.GetCurrentNode(); node == nil || node.Label != "f" {
		t.Errorf("Expected cursor on 'f', got %v", node)
	}
}

func TestTreeView_SetCursorToNode(t *testing.T) {
	tv := NewTreeView(buildTestTables("a", "b"), theme.DefaultTheme())

	if !tv.SetCursorToNode("table:shop.public.b") {
		t.Fatal("Expected node to be found")
	}
	if tv.CursorIndex != 1 {
		t.Errorf("Expected cursor at 1, got %d", tv.CursorIndex)
	}
	if tv.SetCursorToNode("table:shop.public.missing") {
		t.Error("Expected missing node not to be found")
	}
}
