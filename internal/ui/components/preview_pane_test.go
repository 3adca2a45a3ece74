package components

import (
	"strings"
	"testing"

	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

func TestWrapText(t *testing.T) {
	lines := wrapText("select *\nfrom a_very_long_table_name", 10)

	want := []string{"select *", "from a_ver", "y_long_tab", "le_name"}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %v", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestPreviewPane_ShowTable(t *testing.T) {
	def := "nextval('orders_id_seq')"
	p := NewPreviewPane(theme.DefaultTheme())
	p.Width = 60

	p.ShowTable("public.orders", []models.ColumnInfo{
		{Name: "id", DataType: "bigint", PrimaryKey: true, Default: &def},
		{Name: "note", DataType: "text", Nullable: true},
	}, []models.Constraint{{Name: "orders_pkey", Definition: "PRIMARY KEY (id)"}})

	for _, want := range []string{"id", "bigint NOT NULL PK DEFAULT nextval", "note", "orders_pkey  PRIMARY KEY (id)"} {
		if !strings.Contains(p.Content, want) {
			t.Errorf("Expected %q in content, got:\n%s", want, p.Content)
		}
	}
	if view := p.View(); !strings.Contains(view, "public.orders") {
		t.Errorf("Expected title in view, got:\n%s", view)
	}
}

func TestPreviewPane_ShowConsole(t *testing.T) {
	p := NewPreviewPane(theme.DefaultTheme())
	p.ShowConsole(models.Console{Name: "daily revenue", DDL: "select 1"})

	if p.Content != "select 1" {
		t.Errorf("Expected raw query as content, got %q", p.Content)
	}
	if view := p.View(); !strings.Contains(view, "daily revenue") {
		t.Errorf("Expected console name in view, got:\n%s", view)
	}
}

func TestPreviewPane_Scroll(t *testing.T) {
	p := NewPreviewPane(theme.DefaultTheme())
	p.Height = 5 // two border rows, one header row, two content rows
	p.set("numbers", "1\n2\n3\n4", false)

	p.ScrollUp()
	if p.scrollY != 0 {
		t.Errorf("Expected no scroll above the top, got %d", p.scrollY)
	}

	p.ScrollDown()
	p.ScrollDown()
	p.ScrollDown()
	if p.scrollY != 2 {
		t.Errorf("Expected scroll to stop at 2, got %d", p.scrollY)
	}

	p.Clear()
	if p.scrollY != 0 || p.Content != "" {
		t.Error("Clear should reset content and scroll")
	}
}
