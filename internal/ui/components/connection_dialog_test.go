package components

import (
	"strings"
	"testing"

	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

func TestConnectionDialog_Select(t *testing.T) {
	d := NewConnectionDialog(theme.DefaultTheme(), []models.ConnectionConfig{
		{ID: "a", Alias: "local", Host: "localhost", Port: 5432, Database: "shop", User: "app"},
		{ID: "b", Alias: "staging", Host: "db.internal", Port: 5432, Database: "shop", User: "app"},
	})
	d.Width, d.Height = 60, 10
	d.States = map[string]models.ConnectionState{"a": models.Connected, "b": models.Failed}

	d.MoveSelection(1)
	d.MoveSelection(1)

	cfg, ok := d.GetSelected()
	if !ok || cfg.ID != "b" {
		t.Fatalf("Expected staging to be selected, got %+v", cfg)
	}
	view := d.View()
	if !strings.Contains(view, "staging") || !strings.Contains(view, "●") || !strings.Contains(view, "✗") {
		t.Errorf("Expected both connections with their state markers, got:\n%s", view)
	}
}

func TestConnectionDialog_ManualConfig(t *testing.T) {
	d := NewConnectionDialog(theme.DefaultTheme(), nil)
	d.ManualMode = true

	if _, err := d.GetManualConfig(); err == nil {
		t.Error("Expected an error for an empty form")
	}

	d.HandleInput("db.example.com")
	d.MoveSelection(2) // database
	d.HandleInput("shopx")
	d.HandleBackspace()
	d.MoveSelection(1) // user
	d.HandleInput("app")

	cfg, err := d.GetManualConfig()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Host != "db.example.com" || cfg.Database != "shop" || cfg.User != "app" || cfg.Port != 5432 {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.ID == "" {
		t.Error("Expected a derived connection id")
	}

	d.Port = "abc"
	if _, err := d.GetManualConfig(); err == nil {
		t.Error("Expected an error for an invalid port")
	}
}

func TestConnectionDialog_ManualFieldsWrap(t *testing.T) {
	d := NewConnectionDialog(theme.DefaultTheme(), nil)
	d.ManualMode = true

	d.MoveSelection(-1)

	if d.ActiveField != 4 {
		t.Errorf("Expected wrap to the password field, got %d", d.ActiveField)
	}
}
